package config

import (
	"strings"
	"time"
)

type APIConfig interface {
	GetAPIURL() string
	GetAPITimeout() time.Duration
}

type TokenConfig interface {
	GetJWTSecret() string
	GetVerifySignature() bool
	GetRefreshThreshold() time.Duration
}

type API struct{}

var _ APIConfig = API{}

func (API) GetAPIURL() string {
	return strings.TrimRight(GetEnv("API_URL", "http://localhost:8000"), "/")
}

func (API) GetAPITimeout() time.Duration {
	return GetEnvDuration("API_TIMEOUT", 30*time.Second)
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// GetVerifySignature only takes effect when a JWT secret is also configured.
func (Token) GetVerifySignature() bool {
	return GetEnvBool("JWT_VERIFY_SIGNATURE", false)
}

func (Token) GetRefreshThreshold() time.Duration {
	return GetEnvDuration("TOKEN_REFRESH_THRESHOLD", 5*time.Minute)
}
