package catalog

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/tidwall/gjson"
)

type Product struct {
	ID            apiclient.ID `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Dimensions    string       `json:"dimensions,omitempty"`
	Usage         string       `json:"usage,omitempty"`
	Benefits      string       `json:"benefits,omitempty"`
	Price         float64      `json:"price"`
	CategoryID    apiclient.ID `json:"category_id"`
	SubcategoryID apiclient.ID `json:"subcategory_id,omitempty"`
	ImageURLs     []string     `json:"image_urls"`
	IsActive      bool         `json:"is_active"`
}

func (p Product) RecordID() string   { return p.ID.String() }
func (p Product) RecordName() string { return p.Name }
func (p Product) Active() bool       { return p.IsActive }

// ProductForm carries both the images the product already has and newly picked
// files. Existing images keep their place ahead of new ones.
type ProductForm struct {
	Name           string `validate:"required"`
	Description    string `validate:"required"`
	Dimensions     string
	Usage          string
	Benefits       string
	Price          float64 `validate:"gte=0"`
	CategoryID     string `validate:"required"`
	SubcategoryID  string
	ExistingImages []string
	Images         []apiclient.ImageFile
	IsActive       bool
}

type productPayload struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Dimensions    string   `json:"dimensions"`
	Usage         string   `json:"usage"`
	Benefits      string   `json:"benefits"`
	Price         float64  `json:"price"`
	CategoryID    string   `json:"category_id,omitempty"`
	SubcategoryID string   `json:"subcategory_id,omitempty"`
	ImageURLs     []string `json:"image_urls"`
	IsActive      bool     `json:"is_active"`
}

var productMessages = forms.Messages{
	"Name":        "Product name is required.",
	"Description": "Product description is required.",
	"CategoryID":  "Category is required.",
	"Price":       "Price cannot be negative.",
}

const msgProductImageRequired = "At least one product image is required."

// Products is the product collection.
type Products struct {
	api Backend
}

func NewProducts(api Backend) *Products {
	return &Products{api: api}
}

func (p *Products) Kind() string  { return "products" }
func (p *Products) Label() string { return "Product" }

// List accepts either a bare array or an {"items": [...]} envelope.
func (p *Products) List(ctx context.Context, accessToken string) ([]Product, error) {
	var raw json.RawMessage
	if err := p.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/products", Token: accessToken, Result: &raw}); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	body := gjson.ParseBytes(raw)
	if body.IsObject() {
		body = body.Get("items")
	}
	if !body.IsArray() {
		return nil, errors.Wrapf(errors.ErrBackendRejected, "unexpected products response")
	}

	var out []Product
	if err := json.Unmarshal([]byte(body.Raw), &out); err != nil {
		return nil, errors.Wrapf(err, "decoding products")
	}
	return out, nil
}

func (p *Products) Create(ctx context.Context, accessToken string, form ProductForm) error {
	return p.save(ctx, http.MethodPost, "/admin/products", accessToken, form)
}

func (p *Products) Update(ctx context.Context, accessToken, id string, form ProductForm) error {
	return p.save(ctx, http.MethodPut, "/admin/products/"+id, accessToken, form)
}

func (p *Products) Delete(ctx context.Context, accessToken, id string) error {
	return p.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: "/admin/products/" + id, Token: accessToken})
}

// Validate requires an image only for new products.
func (p *Products) Validate(_ *token.Claims, id string, form ProductForm) error {
	if err := forms.Validate(form, productMessages); err != nil {
		return err
	}
	if id == "" && !hasImage(form) {
		return forms.Invalid("Images", msgProductImageRequired)
	}
	return nil
}

func (p *Products) save(ctx context.Context, method, path, accessToken string, form ProductForm) error {
	urls, err := productImageURLs(ctx, p.api, accessToken, form.ExistingImages, form.Images)
	if err != nil {
		return err
	}
	return p.api.Do(ctx, apiclient.Request{
		Method: method,
		Path:   path,
		Token:  accessToken,
		JSON: productPayload{
			Name:          form.Name,
			Description:   form.Description,
			Dimensions:    form.Dimensions,
			Usage:         form.Usage,
			Benefits:      form.Benefits,
			Price:         form.Price,
			CategoryID:    form.CategoryID,
			SubcategoryID: form.SubcategoryID,
			ImageURLs:     urls,
			IsActive:      form.IsActive,
		},
	})
}

func hasImage(form ProductForm) bool {
	for _, f := range form.Images {
		if len(f.Data) > 0 {
			return true
		}
	}
	return false
}

// InCategoryID matches products by category id; "All" or "" keeps everything.
func InCategoryID(id string) crud.Filter[Product] {
	return crud.Equals(id, func(p Product) string { return p.CategoryID.String() })
}
