package apiclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const pathUploadImage = "/admin/upload-image"

// ImageFile is one file picked in an entity form.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Upload sends one image as multipart field "file" and returns the stored URL.
func (c *Client) Upload(ctx context.Context, token string, file ImageFile) (string, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetMultipartField("file", file.Name, contentType, bytes.NewReader(file.Data)).
		Post(pathUploadImage)
	if err != nil {
		log.Warn().Err(err).Str("file", file.Name).Msg("image upload unreachable")
		return "", &NetworkError{Err: err}
	}
	if err := checkResponse(resp); err != nil {
		log.Warn().Err(err).Str("file", file.Name).Msg("image upload rejected")
		return "", err
	}

	url := gjson.Get(resp.String(), "url").String()
	if url == "" {
		return "", errors.Wrapf(errors.ErrBackendRejected, "upload of %s returned no url", file.Name)
	}
	return url, nil
}
