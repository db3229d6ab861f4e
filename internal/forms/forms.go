package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Messages maps "Field.tag" or "Field" to the text shown to the operator.
type Messages map[string]string

// Error is a form that failed validation before any request was made.
type Error struct {
	Field   string
	Message string
	kind    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.kind != nil {
		return e.kind
	}
	return errors.ErrValidation
}

// Invalid builds a validation error for rules that a struct tag cannot express.
func Invalid(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Forbidden rejects a well formed form the operator is not allowed to submit.
func Forbidden(field, message string) error {
	return &Error{Field: field, Message: message, kind: errors.ErrForbiddenAction}
}

// Validate checks form against its validate tags and reports the first failure
// in field order.
func Validate(form any, messages Messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrapf(err, "validating form")
	}

	fe := fieldErrs[0]
	return &Error{Field: fe.StructField(), Message: messageFor(fe, messages)}
}

func messageFor(fe validator.FieldError, messages Messages) string {
	if msg, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.StructField()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", humanize(fe.StructField()))
	case "eqfield":
		return fmt.Sprintf("%s does not match.", humanize(fe.StructField()))
	default:
		return fmt.Sprintf("%s is invalid.", humanize(fe.StructField()))
	}
}

// humanize turns "CompanyName" into "Company name".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
