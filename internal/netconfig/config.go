package netconfig

import (
	"os"
)

// Config holds quiz server endpoint settings.
type Config struct {
	APIBaseURL string
	WSBaseURL  string
	APIKey     string
}

// NewConfigFromEnv reads QUIZ_* environment variables (with defaults).
func NewConfigFromEnv() Config {
	api := getEnv("QUIZ_API_URL", "http://localhost:8000")
	return Config{
		APIBaseURL: api,
		WSBaseURL:  getEnv("QUIZ_WS_URL", api),
		APIKey:     getEnv("QUIZ_API_KEY", "secret"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
