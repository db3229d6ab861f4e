package tokenfake

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Secret signs every token minted here.
const Secret = "tokenfake-secret"

// NewToken signs claims with HS256 using Secret.
func NewToken(claims jwtlib.MapClaims) string {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		panic(err)
	}
	return signed
}

// OperatorToken returns a token for an operator with the given role expiring at exp.
func OperatorToken(subject, role string, exp time.Time) string {
	return NewToken(jwtlib.MapClaims{
		"sub":            subject,
		"role":           role,
		"first_name":     "Asha",
		"last_name":      "Rao",
		"email":          subject + "@example.com",
		"is_super_admin": false,
		"exp":            exp.Unix(),
	})
}
