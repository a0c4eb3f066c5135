package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "public/historico", cfg.HistoricoDir)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.ReciboPDF)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("RECIBO_PDF", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.ReciboPDF)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Marte/Olympus")

	_, err := Load()
	assert.ErrorContains(t, err, "TIMEZONE")
}
