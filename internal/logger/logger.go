package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level       string
	Env         string
	ServiceName string
}

// Init replaces the global zerolog logger. DEV gets a human readable console writer,
// every other environment logs JSON to stdout.
func Init(cfg *Config) {
	InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg *Config, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(getLogLevelFromString(cfg.Level))

	out := w
	if strings.EqualFold(cfg.Env, "DEV") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Int("pid", os.Getpid()).
		Str("env", cfg.Env).
		Str("service", cfg.ServiceName).
		Logger()
}

func getLogLevelFromString(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
