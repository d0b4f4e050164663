package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_NAME", "APP_VERSION", "PORT", "API_PREFIX", "CORS_ORIGINS",
		"GEMINI_API_KEY", "GEMINI_BASE_URL", "GEMINI_MODEL",
		"MAX_FILE_SIZE_MB", "MAX_FLASHCARDS", "MAX_MCQS",
		"REQUEST_TIMEOUT_SECONDS", "LOG_LEVEL", "TLS_CERT_PATH", "TLS_KEY_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "cardforge", cfg.AppName)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 10, cfg.MaxFileSizeMB)
	assert.Equal(t, 20, cfg.MaxFlashcards)
	assert.Equal(t, 20, cfg.MaxMCQs)
	assert.Equal(t, 120, cfg.RequestTimeoutSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ProviderKey)
	assert.False(t, cfg.UseTLS())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MAX_FILE_SIZE_MB", "25")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret", cfg.ProviderKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 25, cfg.MaxFileSizeMB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadIgnoresInvalidInts(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE_MB", "not-a-number")
	t.Setenv("MAX_FLASHCARDS", "-3")

	cfg := Load()

	assert.Equal(t, 10, cfg.MaxFileSizeMB)
	assert.Equal(t, 20, cfg.MaxFlashcards)
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := Config{MaxFileSizeMB: 2}
	assert.Equal(t, int64(2<<20), cfg.MaxFileSizeBytes())
}

func TestUseTLS(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certPath, []byte("cert"), 0o600))
	require.NoError(t, os.WriteFile(keyPath, []byte("key"), 0o600))

	assert.True(t, Config{TLSCertPath: certPath, TLSKeyPath: keyPath}.UseTLS())
	assert.False(t, Config{TLSCertPath: certPath}.UseTLS())
	assert.False(t, Config{TLSCertPath: certPath, TLSKeyPath: filepath.Join(dir, "missing.key")}.UseTLS())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, ,b,"))
	assert.Empty(t, splitList(""))
}
