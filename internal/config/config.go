package config

import (
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	APIConfig
	TokenConfig
	SessionConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	API
	Token
	Session
	Cors
}

// New loads a .env file when one is present and returns the environment backed config.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
