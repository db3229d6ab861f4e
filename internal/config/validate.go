package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type snapshot struct {
	Port         string `validate:"required"`
	APIURL       string `validate:"required,url"`
	SessionStore string `validate:"oneof=memory redis"`
	RedisAddr    string `validate:"required_if=SessionStore redis"`
	LogLevel     string `validate:"oneof=trace debug info warn error fatal panic"`
}

// Validate checks that the settings needed to start the server are usable.
func Validate(c Config) error {
	s := snapshot{
		Port:         c.GetPort(),
		APIURL:       c.GetAPIURL(),
		SessionStore: c.GetSessionStore(),
		RedisAddr:    c.GetRedisAddr(),
		LogLevel:     c.GetLogLevel(),
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
