package catalog_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/catalog"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// backend is an httptest catalog API that records mutations and uploads.
type backend struct {
	mu         sync.Mutex
	uploads    []string
	mutations  []string
	bodies     []string
	failUpload string
	routes     map[string]string
}

func (b *backend) handler(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Path == "/admin/upload-image" {
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `{"detail":"no file"}`, http.StatusBadRequest)
			return
		}
		if header.Filename == b.failUpload {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"detail":"Image too large"}`))
			return
		}
		b.uploads = append(b.uploads, header.Filename)
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/` + header.Filename + `"}`))
		return
	}

	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		b.mutations = append(b.mutations, r.Method+" "+r.URL.Path)
		b.bodies = append(b.bodies, string(body))
		w.WriteHeader(http.StatusOK)
		return
	}

	body, ok := b.routes[r.URL.Path]
	if !ok {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newBackend(t *testing.T, routes map[string]string) (*backend, *apiclient.Client) {
	t.Helper()
	b := &backend{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(b.handler))
	t.Cleanup(srv.Close)
	return b, apiclient.New(srv.URL, 5*time.Second)
}

func image(name string) apiclient.ImageFile {
	return apiclient.ImageFile{Name: name, ContentType: "image/png", Data: []byte("\x89PNG" + name)}
}

const productsJSON = `[
	{"id":1,"name":"Oak Chair","description":"d","price":10,"category_id":"c1","image_urls":[],"is_active":true},
	{"id":2,"name":"Steel Lamp","description":"d","price":20,"category_id":"c2","image_urls":[],"is_active":true},
	{"id":3,"name":"Desk Lamp","description":"d","price":30,"category_id":"c2","image_urls":[],"is_active":false},
	{"id":4,"name":"Pine Table","description":"d","price":40,"category_id":"c1","image_urls":[],"is_active":true},
	{"id":5,"name":"Rug","description":"d","price":50,"category_id":"c3","image_urls":[],"is_active":true}
]`

func names(ps []catalog.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestProducts_List(t *testing.T) {
	ctx := context.Background()

	t.Run("bare array filtered by name keeps order", func(t *testing.T) {
		_, api := newBackend(t, map[string]string{"/products": productsJSON})
		products, err := catalog.NewProducts(api).List(ctx, "tok")
		require.NoError(t, err)
		require.Len(t, products, 5)
		require.Equal(t, apiclient.ID("1"), products[0].ID)

		lamps := crud.Apply(products, crud.NameContains[catalog.Product]("lamp"))
		require.Equal(t, []string{"Steel Lamp", "Desk Lamp"}, names(lamps))
	})

	t.Run("items envelope", func(t *testing.T) {
		_, api := newBackend(t, map[string]string{"/products": `{"items":` + productsJSON + `,"total":5}`})
		products, err := catalog.NewProducts(api).List(ctx, "tok")
		require.NoError(t, err)
		require.Len(t, products, 5)

		active := crud.Apply(products, catalog.InCategoryID("c2"), crud.Status[catalog.Product](crud.StatusActive))
		require.Equal(t, []string{"Steel Lamp"}, names(active))
	})

	t.Run("unexpected shape", func(t *testing.T) {
		_, api := newBackend(t, map[string]string{"/products": `{"count":5}`})
		_, err := catalog.NewProducts(api).List(ctx, "tok")
		require.ErrorIs(t, err, errors.ErrBackendRejected)
	})
}

func TestProducts_Images(t *testing.T) {
	ctx := context.Background()
	form := catalog.ProductForm{Name: "Sofa", Description: "Three seater", CategoryID: "c1", Price: 499.5, IsActive: true}

	t.Run("six new images are capped at five in order", func(t *testing.T) {
		b, api := newBackend(t, nil)
		f := form
		f.Images = []apiclient.ImageFile{image("1.png"), image("2.png"), image("3.png"), image("4.png"), image("5.png"), image("6.png")}

		require.NoError(t, catalog.NewProducts(api).Create(ctx, "tok", f))
		require.Equal(t, []string{"1.png", "2.png", "3.png", "4.png", "5.png"}, b.uploads)
		require.Equal(t, []string{"POST /admin/products"}, b.mutations)

		var urls []string
		for _, u := range gjson.Get(b.bodies[0], "image_urls").Array() {
			urls = append(urls, u.String())
		}
		require.Equal(t, []string{
			"https://cdn.example.com/1.png",
			"https://cdn.example.com/2.png",
			"https://cdn.example.com/3.png",
			"https://cdn.example.com/4.png",
			"https://cdn.example.com/5.png",
		}, urls)
		require.Equal(t, 499.5, gjson.Get(b.bodies[0], "price").Float())
		require.False(t, gjson.Get(b.bodies[0], "subcategory_id").Exists())
	})

	t.Run("existing images come first", func(t *testing.T) {
		b, api := newBackend(t, nil)
		f := form
		f.ExistingImages = []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png", "https://cdn.example.com/c.png"}
		f.Images = []apiclient.ImageFile{image("new1.png"), image("new2.png"), image("new3.png")}

		require.NoError(t, catalog.NewProducts(api).Update(ctx, "tok", "9", f))
		require.Equal(t, []string{"new1.png", "new2.png"}, b.uploads)
		require.Equal(t, []string{"PUT /admin/products/9"}, b.mutations)
		require.Equal(t, "https://cdn.example.com/a.png", gjson.Get(b.bodies[0], "image_urls.0").String())
		require.Equal(t, "https://cdn.example.com/new2.png", gjson.Get(b.bodies[0], "image_urls.4").String())
		require.Equal(t, int64(5), gjson.Get(b.bodies[0], "image_urls.#").Int())
	})

	t.Run("failed upload aborts the mutation", func(t *testing.T) {
		b, api := newBackend(t, nil)
		b.failUpload = "2.png"
		f := form
		f.Images = []apiclient.ImageFile{image("1.png"), image("2.png"), image("3.png")}

		err := catalog.NewProducts(api).Create(ctx, "tok", f)
		require.ErrorIs(t, err, errors.ErrBackendRejected)
		require.Equal(t, "Error 413: Image too large", apiclient.Message(err))
		require.Equal(t, []string{"1.png"}, b.uploads)
		require.Empty(t, b.mutations)
	})
}

func TestProducts_Validate(t *testing.T) {
	products := catalog.NewProducts(nil)

	err := products.Validate(nil, "", catalog.ProductForm{Description: "x", CategoryID: "c1"})
	require.ErrorIs(t, err, errors.ErrValidation)
	require.Equal(t, "Product name is required.", err.Error())

	err = products.Validate(nil, "", catalog.ProductForm{Name: "x", Description: "x"})
	require.Equal(t, "Category is required.", err.Error())

	err = products.Validate(nil, "", catalog.ProductForm{Name: "x", Description: "x", CategoryID: "c1"})
	require.Equal(t, "At least one product image is required.", err.Error())

	require.NoError(t, products.Validate(nil, "7", catalog.ProductForm{Name: "x", Description: "x", CategoryID: "c1"}))
}

func TestCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("create uploads the image first", func(t *testing.T) {
		b, api := newBackend(t, nil)
		img := image("chairs.png")
		err := catalog.NewCategories(api).Create(ctx, "tok", catalog.CategoryForm{Name: "Chairs", Image: &img, IsActive: true})
		require.NoError(t, err)
		require.Equal(t, []string{"chairs.png"}, b.uploads)
		require.Equal(t, "https://cdn.example.com/chairs.png", gjson.Get(b.bodies[0], "image_url").String())
		require.True(t, gjson.Get(b.bodies[0], "is_active").Bool())
	})

	t.Run("update without image keeps the stored one", func(t *testing.T) {
		b, api := newBackend(t, nil)
		require.NoError(t, catalog.NewCategories(api).Update(ctx, "tok", "c1", catalog.CategoryForm{Name: "Seating"}))
		require.Empty(t, b.uploads)
		require.Equal(t, []string{"PUT /admin/categories/c1"}, b.mutations)
		require.False(t, gjson.Get(b.bodies[0], "image_url").Exists())
	})

	t.Run("delete", func(t *testing.T) {
		b, api := newBackend(t, nil)
		require.NoError(t, catalog.NewCategories(api).Delete(ctx, "tok", "c1"))
		require.Equal(t, []string{"DELETE /admin/categories/c1"}, b.mutations)
	})

	t.Run("validate", func(t *testing.T) {
		err := catalog.NewCategories(nil).Validate(nil, "", catalog.CategoryForm{})
		require.Equal(t, "Category name is required.", err.Error())
	})
}

func TestSubcategories(t *testing.T) {
	ctx := context.Background()
	_, api := newBackend(t, map[string]string{
		"/subcategories": `[
			{"id":"s1","name":"Dining Chairs","category_id":"c1","category_name":"Chairs","is_active":true},
			{"id":"s2","name":"Floor Lamps","category_id":"c2","category_name":"Lamps","is_active":true},
			{"id":"s3","name":"Office Chairs","category_id":"c1","category_name":"Chairs","is_active":false}
		]`,
		"/categories/c2/subcategories": `[{"id":"s2","name":"Floor Lamps","category_id":"c2","category_name":"Lamps","is_active":true}]`,
	})
	subs := catalog.NewSubcategories(api)

	all, err := subs.List(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, all, 3)

	chairs := crud.Apply(all, catalog.InCategory("Chairs"))
	require.Len(t, chairs, 2)
	require.Equal(t, "s1", chairs[0].RecordID())
	require.Len(t, crud.Apply(all, catalog.InCategory(crud.StatusAll)), 3)

	lamps, err := subs.OfCategory(ctx, "tok", "c2")
	require.NoError(t, err)
	require.Equal(t, "Floor Lamps", lamps[0].Name)

	err = subs.Validate(nil, "", catalog.SubcategoryForm{Name: "Stools"})
	require.Equal(t, "Parent category is required.", err.Error())
}
