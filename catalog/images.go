package catalog

import (
	"context"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/rs/zerolog/log"
)

// MaxProductImages is the most image URLs a product can hold.
const MaxProductImages = 5

// uploadImage uploads an optional single image and returns its URL, or "" when
// no file was picked.
func uploadImage(ctx context.Context, api Backend, token string, file *apiclient.ImageFile) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", nil
	}
	return api.Upload(ctx, token, *file)
}

// productImageURLs keeps existing URLs first and fills the remaining slots with
// new uploads in submission order. Files past the limit are never uploaded.
// The first failed upload aborts with its error.
func productImageURLs(ctx context.Context, api Backend, token string, existing []string, files []apiclient.ImageFile) ([]string, error) {
	urls := make([]string, 0, MaxProductImages)
	for _, u := range existing {
		if u != "" && len(urls) < MaxProductImages {
			urls = append(urls, u)
		}
	}

	for i, f := range files {
		if len(f.Data) == 0 {
			continue
		}
		if len(urls) == MaxProductImages {
			log.Debug().Int("dropped", len(files)-i).Msg("product image limit reached")
			break
		}
		url, err := api.Upload(ctx, token, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
