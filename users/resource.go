package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/token"
)

const (
	MsgNamesRequired        = "First name and last name are required."
	MsgCreateAdminForbidden = "You don't have permission to create admin users."
	MsgPromoteForbidden     = "Only super admins can promote users to admin."
	MsgDemoteForbidden      = "Only super admins can change an admin's role."
	MsgSuperAdminForbidden  = "Only super admins can change super admin privileges."
	MsgKeepOwnSuperAdmin    = "You cannot remove your own super admin privileges."
	MsgDeleteSelf           = "You cannot delete your own account."
	MsgDeleteAdmin          = "Only super admins can delete admin accounts."
	MsgOwnRoleChange        = "Changing your own role might restrict your access to this page."
)

var messages = forms.Messages{
	"FirstName": MsgNamesRequired,
	"LastName":  MsgNamesRequired,
	"Email":     "Email is required.",
	"Role":      "Role must be customer, back_office or admin.",
}

// Backend is the part of the API client the user resource needs.
type Backend interface {
	Do(ctx context.Context, req apiclient.Request) error
}

// Users is the user collection under /admin/users. Only admins reach it.
type Users struct {
	api Backend
}

func NewUsers(api Backend) *Users {
	return &Users{api: api}
}

func (u *Users) Kind() string  { return "users" }
func (u *Users) Label() string { return "User" }

func (u *Users) List(ctx context.Context, accessToken string) ([]User, error) {
	var out []User
	err := u.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/admin/users", Token: accessToken, Result: &out})
	return out, err
}

func (u *Users) Create(ctx context.Context, accessToken string, form Form) error {
	return u.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/admin/users", Token: accessToken, JSON: payloadFrom(form)})
}

// Update sends the password only when a new one was entered.
func (u *Users) Update(ctx context.Context, accessToken, id string, form Form) error {
	return u.api.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: "/admin/users/" + id, Token: accessToken, JSON: payloadFrom(form)})
}

func (u *Users) Delete(ctx context.Context, accessToken, id string) error {
	return u.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: "/admin/users/" + id, Token: accessToken})
}

func (u *Users) Validate(actor *token.Claims, id string, form Form) error {
	if err := forms.Validate(form, messages); err != nil {
		return err
	}
	if id == "" {
		return validateCreate(actor, form)
	}
	return validateUpdate(actor, id, form)
}

func validateCreate(actor *token.Claims, form Form) error {
	required := []struct {
		field, value, message string
	}{
		{"Password", form.Password, "Password is required."},
		{"City", form.City, "City is required."},
		{"State", form.State, "State is required."},
		{"CompanyName", form.CompanyName, "Company name is required."},
		{"GSTIN", form.GSTIN, "GSTIN is required."},
		{"Phone", form.Phone, "Phone is required."},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return forms.Invalid(r.field, r.message)
		}
	}

	super := isSuperAdmin(actor)
	switch {
	case form.Role == token.RoleAdmin && !super:
		return forms.Forbidden("Role", MsgCreateAdminForbidden)
	case form.IsSuperAdmin && !super:
		return forms.Forbidden("IsSuperAdmin", MsgSuperAdminForbidden)
	}
	return nil
}

func validateUpdate(actor *token.Claims, id string, form Form) error {
	self := isSelf(actor, id)
	if self && form.PreviousSuperAdmin && !form.IsSuperAdmin {
		return forms.Forbidden("IsSuperAdmin", MsgKeepOwnSuperAdmin)
	}
	if isSuperAdmin(actor) {
		return nil
	}

	switch {
	case form.IsSuperAdmin != form.PreviousSuperAdmin:
		return forms.Forbidden("IsSuperAdmin", MsgSuperAdminForbidden)
	case form.Role == token.RoleAdmin && form.PreviousRole != token.RoleAdmin:
		return forms.Forbidden("Role", MsgPromoteForbidden)
	case form.PreviousRole == token.RoleAdmin && form.Role != token.RoleAdmin && !self:
		return forms.Forbidden("Role", MsgDemoteForbidden)
	}
	return nil
}

// Warnings flags an operator changing their own role.
func (u *Users) Warnings(actor *token.Claims, id string, form Form) []string {
	if isSelf(actor, id) && form.PreviousRole != "" && form.Role != form.PreviousRole {
		return []string{MsgOwnRoleChange}
	}
	return nil
}

// CheckDelete refuses self deletion, and deleting an admin unless the operator
// is a super admin.
func (u *Users) CheckDelete(ctx context.Context, actor *token.Claims, accessToken, id string) error {
	if isSelf(actor, id) {
		return forms.Forbidden("ID", MsgDeleteSelf)
	}
	if isSuperAdmin(actor) {
		return nil
	}

	all, err := u.List(ctx, accessToken)
	if err != nil {
		return err
	}
	for _, user := range all {
		if user.RecordID() != id {
			continue
		}
		if user.Role == token.RoleAdmin {
			return forms.Forbidden("ID", MsgDeleteAdmin)
		}
		return nil
	}
	return errors.Wrapf(errors.ErrNotFound, "user %s", id)
}

func isSelf(actor *token.Claims, id string) bool {
	return actor.ID() != "" && actor.ID() == id
}

func isSuperAdmin(actor *token.Claims) bool {
	return actor != nil && actor.IsSuperAdmin
}
