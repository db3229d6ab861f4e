package logger_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/go-catalog-admin/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestInit_JSONOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.InitWithWriter(&logger.Config{Level: "info", Env: "PROD", ServiceName: "catalog-admin"}, &buf)

	log.Info().Str("page", "products").Msg("rendered")

	line := buf.String()
	require.Equal(t, "info", gjson.Get(line, "level").String())
	require.Equal(t, "catalog-admin", gjson.Get(line, "service").String())
	require.Equal(t, "PROD", gjson.Get(line, "env").String())
	require.Equal(t, "products", gjson.Get(line, "page").String())
	require.Equal(t, "rendered", gjson.Get(line, "message").String())
}

func TestInit_LevelFiltering(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.InitWithWriter(&logger.Config{Level: "warn", Env: "PROD", ServiceName: "catalog-admin"}, &buf)

	log.Info().Msg("dropped")
	require.Empty(t, buf.String())

	log.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}
