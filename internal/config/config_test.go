package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"APP_ENV", "ENV", "PORT", "DB_URI", "DATABASE_URL", "DB_NAME", "FRONTEND_URL", "QR_SCALE"} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 2, cfg.QRScale)
	assert.Equal(t, AllowedOrigins, cfg.AllowedOrigins)
	assert.Empty(t, cfg.DatabaseURI)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/frontline")
	t.Setenv("FRONTEND_URL", "https://frontline.example/")
	t.Setenv("QR_SCALE", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/frontline", cfg.DatabaseURI)
	assert.Equal(t, "https://frontline.example", cfg.FrontendURL)
	assert.Equal(t, 4, cfg.QRScale)
}

func TestLoad_DBURIWinsOverDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URI", "mongodb://primary")
	t.Setenv("DATABASE_URL", "mongodb://secondary")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary", cfg.DatabaseURI)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {"PORT": "http"},
		"port out of range": {"PORT": "70000"},
		"bad qr scale":      {"QR_SCALE": "big"},
		"zero qr scale":     {"QR_SCALE": "0"},
		"prod without url":  {"APP_ENV": "production"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnreadableEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = Load()
	assert.ErrorContains(t, err, "load .env")
}
