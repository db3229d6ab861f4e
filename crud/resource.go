package crud

import (
	"context"

	"github.com/jrsteele09/go-catalog-admin/token"
)

// Record is a backend entity shown as one row of a list.
type Record interface {
	RecordID() string
	RecordName() string
}

// Resource binds a Controller to one backend collection. F is the form type
// submitted for create and update.
type Resource[T Record, F any] interface {
	Kind() string  // url and session key, e.g. "categories"
	Label() string // singular display name, e.g. "Category"
	List(ctx context.Context, accessToken string) ([]T, error)
	Create(ctx context.Context, accessToken string, form F) error
	Update(ctx context.Context, accessToken, id string, form F) error
	Delete(ctx context.Context, accessToken, id string) error
	// Validate runs before any request. id is empty for create.
	Validate(actor *token.Claims, id string, form F) error
}

// Warner is implemented by resources that flag risky but allowed updates.
type Warner[F any] interface {
	Warnings(actor *token.Claims, id string, form F) []string
}

// DeleteGuard is implemented by resources that refuse some deletes outright.
type DeleteGuard interface {
	CheckDelete(ctx context.Context, actor *token.Claims, accessToken, id string) error
}
