package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/brewery/internal/config"
)

func TestNew(t *testing.T) {
	type Config struct {
		Log        config.Log
		HTTP       config.HTTP
		Pagination config.Pagination
		Postgres   config.Postgres
	}

	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "localhost")
		t.Setenv("POSTGRES_USER", "brewery")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DB", "brewery")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8080), cfg.HTTP.Port)
		assert.Equal(t, config.ByteSize(1000*1000), cfg.HTTP.MaxBodySize)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsOrigins)
		assert.Equal(t, 25, cfg.Pagination.DefaultPageSize)
		assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
		assert.Equal(t, 5432, cfg.Postgres.Port)
		assert.Equal(t, time.Hour, cfg.Postgres.MaxConnLifetime)
		assert.True(t, cfg.Postgres.AutoMigrate)
	})

	t.Run("Should fail when required variable is missing", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})

	t.Run("Should parse overrides", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("POSTGRES_USER", "brewery")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DB", "brewery")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("HTTP_MAX_BODY_SIZE", "64KB")
		t.Setenv("HTTP_CORS_ORIGINS", "https://a.example,https://b.example")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, config.ByteSize(64*1000), cfg.HTTP.MaxBodySize)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CorsOrigins)
	})

	t.Run("Should reject unknown log format", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("POSTGRES_USER", "brewery")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DB", "brewery")
		t.Setenv("LOG_FORMAT", "xml")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})
}

func TestByteSize(t *testing.T) {
	var b config.ByteSize

	require.NoError(t, b.UnmarshalText([]byte("2MB")))
	assert.Equal(t, config.ByteSize(2*1000*1000), b)

	assert.Error(t, b.UnmarshalText([]byte("lots")))
	assert.Error(t, b.UnmarshalText([]byte("0")))
}

func TestPaginationValidate(t *testing.T) {
	assert.NoError(t, config.Pagination{DefaultPageSize: 25, MaxPageSize: 100}.Validate())
	assert.Error(t, config.Pagination{DefaultPageSize: 0, MaxPageSize: 100}.Validate())
	assert.Error(t, config.Pagination{DefaultPageSize: 25, MaxPageSize: 0}.Validate())
	assert.Error(t, config.Pagination{DefaultPageSize: 200, MaxPageSize: 100}.Validate())
}

func TestLogFormat(t *testing.T) {
	var f config.LogFormat

	require.NoError(t, f.UnmarshalText([]byte(" text ")))
	assert.Equal(t, config.LogFormatText, f)
	assert.Equal(t, "TEXT", f.String())

	assert.Equal(t, "LogFormat(7)", config.LogFormat(7).String())
}
