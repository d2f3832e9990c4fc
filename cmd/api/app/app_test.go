package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-service/internal/config"
)

func TestInitLogger(t *testing.T) {
	cfg := &config.Config{
		Logger: config.LoggerConfig{
			Level:          "debug",
			Format:         "json",
			OutputPath:     "stdout",
			ServiceName:    "bookshelf-service",
			ServiceVersion: "test",
		},
	}

	l, err := initLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, l)

	// Must not panic when used.
	l.Info("logger initialized")
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/bookshelf")
	assert.Equal(t, "/etc/bookshelf", getConfigPath())

	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, ".", getConfigPath())
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.Equal(t, "production", getEnvironment())

	t.Setenv("APP_ENV", "")
	assert.Equal(t, "development", getEnvironment())
}
