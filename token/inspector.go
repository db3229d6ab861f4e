package token

import (
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
)

// Inspector decodes access tokens issued by the backend. By default the signature
// is not checked; claims are used for display and menu gating only and the backend
// authorises every request itself.
type Inspector struct {
	secret []byte
}

type InspectorOption func(*Inspector)

// WithHMACSecret turns on HS256 signature verification.
func WithHMACSecret(secret string) InspectorOption {
	return func(i *Inspector) {
		if secret != "" {
			i.secret = []byte(secret)
		}
	}
}

func NewInspector(opts ...InspectorOption) *Inspector {
	i := &Inspector{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Inspector) Verifying() bool {
	return len(i.secret) > 0
}

// Decode reads the claims from a raw JWT. Expiry is not enforced here, callers use IsExpired.
func (i *Inspector) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.Wrapf(errors.ErrMalformedToken, "empty token")
	}

	var (
		parsed *jwtlib.Token
		err    error
	)
	if i.Verifying() {
		parsed, err = jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, i.key,
			jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
			jwtlib.WithoutClaimsValidation(),
		)
	} else {
		parsed, _, err = jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMalformedToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrapf(errors.ErrMalformedToken, "error extracting claims")
	}
	return claimsFromMap(mapClaims), nil
}

func (i *Inspector) key(*jwtlib.Token) (interface{}, error) {
	return i.secret, nil
}

func claimsFromMap(m jwtlib.MapClaims) *Claims {
	c := &Claims{
		Role:      Role(stringClaim(m, "role")),
		FirstName: stringClaim(m, "first_name"),
		LastName:  stringClaim(m, "last_name"),
		Email:     stringClaim(m, "email"),
		UserID:    stringClaim(m, "user_id"),
	}
	c.Subject, _ = m.GetSubject()
	if c.Subject == "" {
		c.Subject = c.UserID
	}
	if superAdmin, ok := m["is_super_admin"].(bool); ok {
		c.IsSuperAdmin = superAdmin
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

// stringClaim tolerates numeric ids, which some backends emit for user_id.
func stringClaim(m jwtlib.MapClaims, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
