package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/catalog"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/navigation"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/users"
	"github.com/rs/zerolog/log"
)

// AdminPageHandler renders one of the menu pages (GET /admin/{page})
func (s *Server) AdminPageHandler() http.HandlerFunc {
	layoutTmpl := mustParseTemplate("admin_layout.html")
	deniedTmpl := mustParseTemplate("admin_access_denied_content.html")
	contentTmpls := map[navigation.Page]*template.Template{
		navigation.PageDashboard:     mustParseTemplate("admin_dashboard_content.html"),
		navigation.PageCategories:    mustParseTemplate("admin_categories_content.html"),
		navigation.PageSubcategories: mustParseTemplate("admin_subcategories_content.html"),
		navigation.PageProducts:      mustParseTemplate("admin_products_content.html"),
		navigation.PageUsers:         mustParseTemplate("admin_users_content.html"),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)

		page, err := navigation.Resolve(r.PathValue("page"), session.Claims)
		if err != nil {
			log.Warn().Err(err).Str("user", session.Claims.Subject).Msg("page access denied")
			s.renderAdminPage(w, http.StatusForbidden, layoutTmpl, session, page, deniedTmpl, accessDeniedView{Message: navigation.MsgAccessDenied})
			return
		}
		session.CurrentPage = string(page)

		var data any
		switch page {
		case navigation.PageCategories:
			data = s.categoriesView(r, session)
		case navigation.PageSubcategories:
			data = s.subcategoriesView(r, session)
		case navigation.PageProducts:
			data = s.productsView(r, session)
		case navigation.PageUsers:
			data = s.usersView(r, session)
		default:
			data = s.dashboardView(r, session)
		}
		s.renderAdminPage(w, http.StatusOK, layoutTmpl, session, page, contentTmpls[page], data)
	}
}

// renderAdminPage renders the content template, then the layout around it
func (s *Server) renderAdminPage(w http.ResponseWriter, status int, layoutTmpl *template.Template, session *sessions.Session, page navigation.Page, contentTmpl *template.Template, data any) {
	content, err := executeToHTML(contentTmpl, data)
	if err != nil {
		log.Err(err).Str("template", contentTmpl.Name()).Msg("Failed to render content")
		http.Error(w, "Failed to render content", http.StatusInternalServerError)
		return
	}

	renderHTML(w, status, layoutTmpl, AdminLayoutData{
		AppName:    s.config.GetAppName(),
		PageTitle:  page.Label(),
		ActivePage: page,
		Menu:       navigation.Menu(session.Claims),
		UserName:   session.Claims.DisplayName(),
		Role:       session.Claims.Role,
		Notices:    session.TakeNotices(),
		Content:    content,
	})
}

func (s *Server) dashboardView(r *http.Request, session *sessions.Session) dashboardData {
	v := dashboardData{IsAdmin: session.Claims.IsAdmin()}
	metrics, err := s.api.DashboardMetrics(r.Context(), session.AccessToken)
	if err != nil {
		log.Err(err).Msg("dashboard metrics failed")
		v.LoadError = "Failed to load dashboard metrics"
		return v
	}
	v.Metrics = metrics
	return v
}

func (s *Server) categoriesView(r *http.Request, session *sessions.Session) listView[catalog.Category] {
	f := filterFrom(r.URL.Query())
	records, err := s.categories.List(r.Context(), session,
		crud.NameContains[catalog.Category](f.Query),
		crud.Status[catalog.Category](f.Status),
	)
	return newListView(s.categories, session, records, err, f, r.URL.RawQuery)
}

func (s *Server) subcategoriesView(r *http.Request, session *sessions.Session) listView[catalog.Subcategory] {
	f := filterFrom(r.URL.Query())
	records, err := s.subcategories.List(r.Context(), session,
		crud.NameContains[catalog.Subcategory](f.Query),
		crud.Status[catalog.Subcategory](f.Status),
		catalog.InCategory(f.Category),
	)
	v := newListView(s.subcategories, session, records, err, f, r.URL.RawQuery)
	v.Categories = s.categoryOptions(r, session)
	return v
}

func (s *Server) productsView(r *http.Request, session *sessions.Session) listView[catalog.Product] {
	f := filterFrom(r.URL.Query())
	records, err := s.products.List(r.Context(), session,
		crud.NameContains[catalog.Product](f.Query),
		crud.Status[catalog.Product](f.Status),
		catalog.InCategoryID(f.Category),
	)
	v := newListView(s.products, session, records, err, f, r.URL.RawQuery)
	v.Categories = s.categoryOptions(r, session)
	v.CategoryNames = categoryNames(v.Categories)
	v.Subcategories = s.subcategoryOptions(r, session, f.Category)
	v.SubcategoryNames = subcategoryNames(v.Subcategories)
	v.MaxImages = catalog.MaxProductImages
	return v
}

func (s *Server) usersView(r *http.Request, session *sessions.Session) listView[users.User] {
	f := filterFrom(r.URL.Query())
	records, err := s.users.List(r.Context(), session,
		crud.NameContains[users.User](f.Query),
		crud.Status[users.User](f.Status),
		users.WithRole(f.Role),
	)
	v := newListView(s.users, session, records, err, f, r.URL.RawQuery)
	v.Roles = users.Roles
	v.CanGrantSuperAdmin = session.Claims.IsSuperAdmin
	v.SelfID = session.Claims.ID()
	return v
}

// categoryOptions feeds the category selects; a failure leaves them empty.
func (s *Server) categoryOptions(r *http.Request, session *sessions.Session) []catalog.Category {
	categories, err := s.categories.List(r.Context(), session)
	if err != nil {
		return nil
	}
	return categories
}

// subcategoryOptions narrows to one category when the list is filtered by it.
func (s *Server) subcategoryOptions(r *http.Request, session *sessions.Session, categoryID string) []catalog.Subcategory {
	if categoryID == "" || categoryID == crud.StatusAll {
		subcategories, err := s.subcategories.List(r.Context(), session)
		if err != nil {
			return nil
		}
		return subcategories
	}
	subcategories, err := s.subcategoryAPI.OfCategory(r.Context(), session.AccessToken, categoryID)
	if err != nil {
		log.Err(err).Str("category", categoryID).Msg("subcategories of category failed")
		return nil
	}
	return subcategories
}
