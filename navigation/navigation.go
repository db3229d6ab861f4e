package navigation

import (
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/token"
)

// Page is a menu key.
type Page string

const (
	PageDashboard     Page = "dashboard"
	PageCategories    Page = "categories"
	PageSubcategories Page = "subcategories"
	PageProducts      Page = "products"
	PageUsers         Page = "users"
)

const MsgAccessDenied = "Access denied. You don't have permission to view this page."

type MenuItem struct {
	Page      Page
	Label     string
	AdminOnly bool
}

var menu = []MenuItem{
	{Page: PageDashboard, Label: "Dashboard"},
	{Page: PageCategories, Label: "Categories"},
	{Page: PageSubcategories, Label: "Subcategories"},
	{Page: PageProducts, Label: "Products"},
	{Page: PageUsers, Label: "Users", AdminOnly: true},
}

// Parse maps a raw key to a page; unknown keys land on the dashboard.
func Parse(key string) Page {
	for _, item := range menu {
		if string(item.Page) == key {
			return item.Page
		}
	}
	return PageDashboard
}

// Menu lists the entries the operator may see.
func Menu(claims *token.Claims) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.AdminOnly && !claims.IsAdmin() {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Resolve picks the page to render for key. Admin-only pages return ErrAccessDenied
// for everyone else; the caller shows MsgAccessDenied and keeps the session.
func Resolve(key string, claims *token.Claims) (Page, error) {
	page := Parse(key)
	for _, item := range menu {
		if item.Page == page && item.AdminOnly && !claims.IsAdmin() {
			return page, errors.Wrapf(errors.ErrAccessDenied, "page %s", page)
		}
	}
	return page, nil
}

func (p Page) Label() string {
	for _, item := range menu {
		if item.Page == p {
			return item.Label
		}
	}
	return string(p)
}
