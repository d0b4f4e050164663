package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	AppName    string
	AppVersion string
	Port       string
	APIPrefix  string

	CORSOrigins []string

	ProviderKey     string
	ProviderBaseURL string
	Model           string

	MaxFileSizeMB int
	MaxFlashcards int
	MaxMCQs       int

	RequestTimeoutSeconds int

	LogLevel string

	TLSCertPath string
	TLSKeyPath  string
}

// Load reads configuration from the environment, providing sensible defaults.
func Load() Config {
	// Load .env file if it exists (useful for development)
	_ = godotenv.Load()

	return Config{
		AppName:               getEnv("APP_NAME", "cardforge"),
		AppVersion:            getEnv("APP_VERSION", "1.0.0"),
		Port:                  getEnv("PORT", "8000"),
		APIPrefix:             getEnv("API_PREFIX", "/api/v1"),
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "*")),
		ProviderKey:           os.Getenv("GEMINI_API_KEY"),
		ProviderBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		Model:                 getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		MaxFileSizeMB:         getEnvInt("MAX_FILE_SIZE_MB", 10),
		MaxFlashcards:         getEnvInt("MAX_FLASHCARDS", 20),
		MaxMCQs:               getEnvInt("MAX_MCQS", 20),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 120),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		TLSCertPath:           os.Getenv("TLS_CERT_PATH"),
		TLSKeyPath:            os.Getenv("TLS_KEY_PATH"),
	}
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (c Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// UseTLS reports whether both certificate files are configured and readable.
func (c Config) UseTLS() bool {
	if c.TLSCertPath == "" || c.TLSKeyPath == "" {
		return false
	}
	if _, err := os.Stat(c.TLSCertPath); err != nil {
		return false
	}
	if _, err := os.Stat(c.TLSKeyPath); err != nil {
		return false
	}
	return true
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
