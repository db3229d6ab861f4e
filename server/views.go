package server

import (
	"html/template"
	"net/url"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/catalog"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/navigation"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/token"
)

// AdminLayoutData is the model for admin_layout.html
type AdminLayoutData struct {
	AppName    string
	PageTitle  string
	ActivePage navigation.Page
	Menu       []navigation.MenuItem
	UserName   string
	Role       token.Role
	Notices    []sessions.Notice
	Content    template.HTML
}

type dashboardData struct {
	Metrics   apiclient.DashboardMetrics
	LoadError string
	IsAdmin   bool
}

type accessDeniedView struct {
	Message string
}

// listFilter holds the query parameters of a list page.
type listFilter struct {
	Query    string
	Status   string
	Category string
	Role     string
}

func filterFrom(q url.Values) listFilter {
	f := listFilter{
		Query:    q.Get("q"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Role:     q.Get("role"),
	}
	if f.Status == "" {
		f.Status = crud.StatusAll
	}
	return f
}

type rowView[T crud.Record] struct {
	Record   T
	ID       string
	Editing  bool
	Deleting bool
	Error    string
	Question string
}

// listView is the model shared by the four entity pages.
type listView[T crud.Record] struct {
	Kind          string
	Label         string
	FormOpen      bool
	FormError     string
	Rows          []rowView[T]
	Count         int
	LoadError     string
	Filter        listFilter
	ReturnQuery   string
	DeleteWarning string
	Statuses      []string

	Categories       []catalog.Category
	Subcategories    []catalog.Subcategory
	CategoryNames    map[apiclient.ID]string
	SubcategoryNames map[apiclient.ID]string

	Roles              []token.Role
	CanGrantSuperAdmin bool
	SelfID             string
	MaxImages          int
}

var statuses = []string{crud.StatusAll, crud.StatusActive, crud.StatusInactive}

// newListView lays out records with the row state, inline errors and delete
// questions held on the session.
func newListView[T crud.Record, F any](c *crud.Controller[T, F], s *sessions.Session, records []T, loadErr error, f listFilter, rawQuery string) listView[T] {
	v := listView[T]{
		Kind:          c.Kind(),
		Label:         c.Label(),
		FormOpen:      s.FormOpen(c.Kind()),
		FormError:     s.FormError(crud.NewFormKey(c.Kind())),
		Filter:        f,
		ReturnQuery:   rawQuery,
		DeleteWarning: crud.DeleteWarning,
		Statuses:      statuses,
	}
	if loadErr != nil {
		v.LoadError = apiclient.Message(loadErr)
	}

	v.Rows = make([]rowView[T], 0, len(records))
	for _, rec := range records {
		id := rec.RecordID()
		state := s.Row(c.Kind(), id)
		row := rowView[T]{
			Record:   rec,
			ID:       id,
			Editing:  state == sessions.RowEditing,
			Deleting: state == sessions.RowConfirmingDelete,
			Error:    s.FormError(crud.RowFormKey(c.Kind(), id)),
		}
		if row.Deleting {
			row.Question = crud.DeleteConfirmation(c.Label(), rec.RecordName())
		}
		v.Rows = append(v.Rows, row)
	}
	v.Count = len(v.Rows)
	return v
}

func categoryNames(categories []catalog.Category) map[apiclient.ID]string {
	names := make(map[apiclient.ID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func subcategoryNames(subcategories []catalog.Subcategory) map[apiclient.ID]string {
	names := make(map[apiclient.ID]string, len(subcategories))
	for _, sc := range subcategories {
		names[sc.ID] = sc.Name
	}
	return names
}
