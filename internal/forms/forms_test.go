package forms_test

import (
	"testing"

	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/stretchr/testify/require"
)

type resetForm struct {
	Password string `validate:"required"`
	Confirm  string `validate:"eqfield=Password"`
}

type companyForm struct {
	CompanyName string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	messages := forms.Messages{
		"Password":        "Please enter a new password",
		"Confirm.eqfield": "Passwords do not match",
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, forms.Validate(resetForm{Password: "a", Confirm: "a"}, messages))
	})

	t.Run("registered message", func(t *testing.T) {
		err := forms.Validate(resetForm{}, messages)
		require.ErrorIs(t, err, errors.ErrValidation)
		require.EqualError(t, err, "Please enter a new password")
	})

	t.Run("tag specific message", func(t *testing.T) {
		err := forms.Validate(resetForm{Password: "a", Confirm: "b"}, messages)
		require.EqualError(t, err, "Passwords do not match")

		var formErr *forms.Error
		require.ErrorAs(t, err, &formErr)
		require.Equal(t, "Confirm", formErr.Field)
	})

	t.Run("default messages", func(t *testing.T) {
		require.EqualError(t, forms.Validate(companyForm{}, nil), "Company name is required.")
		require.EqualError(t, forms.Validate(companyForm{CompanyName: "x", Price: -1}, nil), "Price is invalid.")
	})
}

func TestInvalid(t *testing.T) {
	err := forms.Invalid("Role", "You don't have permission to create admin users.")
	require.ErrorIs(t, err, errors.ErrValidation)
	require.EqualError(t, err, "You don't have permission to create admin users.")
}

func TestForbidden(t *testing.T) {
	err := forms.Forbidden("Role", "You don't have permission to create admin users.")
	require.ErrorIs(t, err, errors.ErrForbiddenAction)
	require.NotErrorIs(t, err, errors.ErrValidation)

	var formErr *forms.Error
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, "Role", formErr.Field)
}
