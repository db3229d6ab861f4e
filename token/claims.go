package token

import (
	"strings"
	"time"
)

// Role is the backend role carried in the access token.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBackOffice Role = "back_office"
	RoleCustomer   Role = "customer"
)

// CanAccessConsole reports whether the role is allowed into the admin console at all.
func (r Role) CanAccessConsole() bool {
	return r == RoleAdmin || r == RoleBackOffice
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBackOffice, RoleCustomer:
		return true
	}
	return false
}

// Claims are the fields the console reads from an access token. They are derived
// from the raw token and recomputed whenever the token changes.
type Claims struct {
	Subject      string    `json:"sub"`
	UserID       string    `json:"user_id,omitempty"`
	Role         Role      `json:"role"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	IsSuperAdmin bool      `json:"is_super_admin,omitempty"`
	ExpiresAt    time.Time `json:"exp,omitempty"` // zero when the token has no exp claim
}

func (c *Claims) HasExpiry() bool {
	return c != nil && !c.ExpiresAt.IsZero()
}

// DisplayName is "first last", falling back to the email address.
func (c *Claims) DisplayName() string {
	if c == nil {
		return ""
	}
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// ID is the operator's user record id: user_id when the token carries one,
// otherwise sub.
func (c *Claims) ID() string {
	if c == nil {
		return ""
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// IsExpired treats missing claims as expired and a token without exp as never expiring.
func IsExpired(c *Claims, now time.Time) bool {
	if c == nil {
		return true
	}
	if !c.HasExpiry() {
		return false
	}
	return now.After(c.ExpiresAt)
}

// ExpiresWithin reports whether a token with an expiry has less than d left.
func ExpiresWithin(c *Claims, now time.Time, d time.Duration) bool {
	if !c.HasExpiry() {
		return false
	}
	return c.ExpiresAt.Sub(now) < d
}
