package catalog

import (
	"context"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
)

// Backend is the part of the API client the catalog resources need.
type Backend interface {
	Do(ctx context.Context, req apiclient.Request) error
	Upload(ctx context.Context, token string, file apiclient.ImageFile) (string, error)
}
