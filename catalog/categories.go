package catalog

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/token"
)

type Category struct {
	ID       apiclient.ID `json:"id"`
	Name     string       `json:"name"`
	ImageURL string       `json:"image_url,omitempty"`
	IsActive bool         `json:"is_active"`
}

func (c Category) RecordID() string   { return c.ID.String() }
func (c Category) RecordName() string { return c.Name }
func (c Category) Active() bool       { return c.IsActive }

type CategoryForm struct {
	Name     string `validate:"required"`
	Image    *apiclient.ImageFile
	IsActive bool
}

type categoryPayload struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	IsActive bool   `json:"is_active"`
}

var categoryMessages = forms.Messages{
	"Name": "Category name is required.",
}

// Categories is the category collection.
type Categories struct {
	api Backend
}

func NewCategories(api Backend) *Categories {
	return &Categories{api: api}
}

func (c *Categories) Kind() string  { return "categories" }
func (c *Categories) Label() string { return "Category" }

func (c *Categories) List(ctx context.Context, accessToken string) ([]Category, error) {
	var out []Category
	err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/categories", Token: accessToken, Result: &out})
	return out, err
}

func (c *Categories) Create(ctx context.Context, accessToken string, form CategoryForm) error {
	return c.save(ctx, http.MethodPost, "/admin/categories", accessToken, form)
}

// Update keeps the stored image unless a new one was picked.
func (c *Categories) Update(ctx context.Context, accessToken, id string, form CategoryForm) error {
	return c.save(ctx, http.MethodPut, "/admin/categories/"+id, accessToken, form)
}

func (c *Categories) Delete(ctx context.Context, accessToken, id string) error {
	return c.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: "/admin/categories/" + id, Token: accessToken})
}

func (c *Categories) Validate(_ *token.Claims, _ string, form CategoryForm) error {
	return forms.Validate(form, categoryMessages)
}

func (c *Categories) save(ctx context.Context, method, path, accessToken string, form CategoryForm) error {
	imageURL, err := uploadImage(ctx, c.api, accessToken, form.Image)
	if err != nil {
		return err
	}
	return c.api.Do(ctx, apiclient.Request{
		Method: method,
		Path:   path,
		Token:  accessToken,
		JSON:   categoryPayload{Name: form.Name, ImageURL: imageURL, IsActive: form.IsActive},
	})
}
