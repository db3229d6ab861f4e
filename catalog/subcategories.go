package catalog

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/token"
)

type Subcategory struct {
	ID           apiclient.ID `json:"id"`
	Name         string       `json:"name"`
	CategoryID   apiclient.ID `json:"category_id"`
	CategoryName string       `json:"category_name,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	IsActive     bool         `json:"is_active"`
}

func (s Subcategory) RecordID() string   { return s.ID.String() }
func (s Subcategory) RecordName() string { return s.Name }
func (s Subcategory) Active() bool       { return s.IsActive }

type SubcategoryForm struct {
	Name       string `validate:"required"`
	CategoryID string `validate:"required"`
	Image      *apiclient.ImageFile
	IsActive   bool
}

type subcategoryPayload struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	ImageURL   string `json:"image_url,omitempty"`
	IsActive   bool   `json:"is_active"`
}

var subcategoryMessages = forms.Messages{
	"Name":       "Subcategory name is required.",
	"CategoryID": "Parent category is required.",
}

// Subcategories is the subcategory collection.
type Subcategories struct {
	api Backend
}

func NewSubcategories(api Backend) *Subcategories {
	return &Subcategories{api: api}
}

func (s *Subcategories) Kind() string  { return "subcategories" }
func (s *Subcategories) Label() string { return "Subcategory" }

func (s *Subcategories) List(ctx context.Context, accessToken string) ([]Subcategory, error) {
	var out []Subcategory
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/subcategories", Token: accessToken, Result: &out})
	return out, err
}

// OfCategory lists the subcategories under one category, for the product form.
func (s *Subcategories) OfCategory(ctx context.Context, accessToken, categoryID string) ([]Subcategory, error) {
	var out []Subcategory
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/categories/" + categoryID + "/subcategories",
		Token:  accessToken,
		Result: &out,
	})
	return out, err
}

func (s *Subcategories) Create(ctx context.Context, accessToken string, form SubcategoryForm) error {
	return s.save(ctx, http.MethodPost, "/admin/subcategories", accessToken, form)
}

func (s *Subcategories) Update(ctx context.Context, accessToken, id string, form SubcategoryForm) error {
	return s.save(ctx, http.MethodPut, "/admin/subcategories/"+id, accessToken, form)
}

func (s *Subcategories) Delete(ctx context.Context, accessToken, id string) error {
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: "/admin/subcategories/" + id, Token: accessToken})
}

func (s *Subcategories) Validate(_ *token.Claims, _ string, form SubcategoryForm) error {
	return forms.Validate(form, subcategoryMessages)
}

func (s *Subcategories) save(ctx context.Context, method, path, accessToken string, form SubcategoryForm) error {
	imageURL, err := uploadImage(ctx, s.api, accessToken, form.Image)
	if err != nil {
		return err
	}
	return s.api.Do(ctx, apiclient.Request{
		Method: method,
		Path:   path,
		Token:  accessToken,
		JSON: subcategoryPayload{
			Name:       form.Name,
			CategoryID: form.CategoryID,
			ImageURL:   imageURL,
			IsActive:   form.IsActive,
		},
	})
}

// InCategory matches subcategories by parent category name; "All" or "" keeps everything.
func InCategory(name string) crud.Filter[Subcategory] {
	return crud.Equals(name, func(s Subcategory) string { return s.CategoryName })
}
