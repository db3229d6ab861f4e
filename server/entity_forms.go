package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/catalog"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/jrsteele09/go-catalog-admin/users"
)

const maxUploadMemory = 32 << 20

// parseEntityForm accepts both multipart (forms with image inputs) and url-encoded bodies.
func parseEntityForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formText(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func formChecked(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "on", "true", "1":
		return true
	}
	return false
}

// formFiles reads every non-empty file sent under name.
func formFiles(r *http.Request, name string) ([]apiclient.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var files []apiclient.ImageFile
	for _, fh := range r.MultipartForm.File[name] {
		if fh.Size == 0 || fh.Filename == "" {
			continue
		}
		file, err := readFormFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readFormFile(fh *multipart.FileHeader) (apiclient.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return apiclient.ImageFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apiclient.ImageFile{}, err
	}
	return apiclient.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formImage returns the first file sent under name, nil when none was chosen.
func formImage(r *http.Request, name string) (*apiclient.ImageFile, error) {
	files, err := formFiles(r, name)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

func parseCategoryForm(r *http.Request) (catalog.CategoryForm, error) {
	image, err := formImage(r, "image")
	if err != nil {
		return catalog.CategoryForm{}, forms.Invalid("Image", "Could not read the uploaded image.")
	}
	return catalog.CategoryForm{
		Name:     formText(r, "name"),
		Image:    image,
		IsActive: formChecked(r, "is_active"),
	}, nil
}

func parseSubcategoryForm(r *http.Request) (catalog.SubcategoryForm, error) {
	image, err := formImage(r, "image")
	if err != nil {
		return catalog.SubcategoryForm{}, forms.Invalid("Image", "Could not read the uploaded image.")
	}
	return catalog.SubcategoryForm{
		Name:       formText(r, "name"),
		CategoryID: formText(r, "category_id"),
		Image:      image,
		IsActive:   formChecked(r, "is_active"),
	}, nil
}

func parseProductForm(r *http.Request) (catalog.ProductForm, error) {
	var price float64
	if raw := formText(r, "price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return catalog.ProductForm{}, forms.Invalid("Price", "Price must be a number.")
		}
		price = p
	}

	images, err := formFiles(r, "images")
	if err != nil {
		return catalog.ProductForm{}, forms.Invalid("Images", "Could not read the uploaded images.")
	}

	var existing []string
	for _, url := range r.Form["existing_images"] {
		if url = strings.TrimSpace(url); url != "" {
			existing = append(existing, url)
		}
	}

	return catalog.ProductForm{
		Name:           formText(r, "name"),
		Description:    formText(r, "description"),
		Dimensions:     formText(r, "dimensions"),
		Usage:          formText(r, "usage"),
		Benefits:       formText(r, "benefits"),
		Price:          price,
		CategoryID:     formText(r, "category_id"),
		SubcategoryID:  formText(r, "subcategory_id"),
		ExistingImages: existing,
		Images:         images,
		IsActive:       formChecked(r, "is_active"),
	}, nil
}

func parseUserForm(r *http.Request) (users.Form, error) {
	return users.Form{
		FirstName:          formText(r, "first_name"),
		LastName:           formText(r, "last_name"),
		Email:              formText(r, "email"),
		Phone:              formText(r, "phone"),
		Password:           r.FormValue("password"),
		Role:               token.Role(formText(r, "role")),
		IsActive:           formChecked(r, "is_active"),
		IsSuperAdmin:       formChecked(r, "is_super_admin"),
		City:               formText(r, "city"),
		State:              formText(r, "state"),
		CompanyName:        formText(r, "company_name"),
		GSTIN:              formText(r, "gstin"),
		PreviousRole:       token.Role(formText(r, "previous_role")),
		PreviousSuperAdmin: formChecked(r, "previous_super_admin"),
	}, nil
}
