package users

import (
	"strings"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/token"
)

// Roles offered when creating or editing a user, in display order.
var Roles = []token.Role{token.RoleCustomer, token.RoleBackOffice, token.RoleAdmin}

type User struct {
	ID           apiclient.ID `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Role         token.Role   `json:"role"`
	IsActive     bool         `json:"is_active"`
	IsSuperAdmin bool         `json:"is_super_admin"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	CompanyName  string       `json:"company_name,omitempty"`
	GSTIN        string       `json:"gstin,omitempty"`
}

func (u User) RecordID() string { return u.ID.String() }

// RecordName is the full name, falling back to the email.
func (u User) RecordName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

func (u User) Active() bool { return u.IsActive }

// WithRole matches users by role; "All" or "" keeps everything.
func WithRole(role string) crud.Filter[User] {
	return crud.Equals(role, func(u User) string { return string(u.Role) })
}

// Form is the create / edit user form. PreviousRole and PreviousSuperAdmin hold
// the values the record had when the edit form was opened.
type Form struct {
	FirstName          string `validate:"required"`
	LastName           string `validate:"required"`
	Email              string `validate:"required"`
	Phone              string
	Password           string
	Role               token.Role `validate:"oneof=customer back_office admin"`
	IsActive           bool
	IsSuperAdmin       bool
	City               string
	State              string
	CompanyName        string
	GSTIN              string
	PreviousRole       token.Role
	PreviousSuperAdmin bool
}

type payload struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Password     string     `json:"password,omitempty"`
	Role         token.Role `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsSuperAdmin bool       `json:"is_super_admin"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	CompanyName  string     `json:"company_name"`
	GSTIN        string     `json:"gstin"`
}

func payloadFrom(f Form) payload {
	return payload{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.Email,
		Phone:        f.Phone,
		Password:     f.Password,
		Role:         f.Role,
		IsActive:     f.IsActive,
		IsSuperAdmin: f.IsSuperAdmin,
		City:         f.City,
		State:        f.State,
		CompanyName:  f.CompanyName,
		GSTIN:        f.GSTIN,
	}
}
