package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the activity service.
type Config struct {
	Port string

	// Upstream endpoints. Overridable so tests and self-hosted
	// mirrors can point the adapters elsewhere.
	GitHubAPIURL       string
	GitHubToken        string
	LeetCodeGraphQLURL string
	LeetCodeAPIURL     string
	LeetCodeMirrorURL  string

	UpstreamTimeout time.Duration
	DefaultLimit    int
	MaxLimit        int
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for production. A local .env file is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		GitHubAPIURL:       getEnvOrDefault("GITHUB_API_URL", "https://api.github.com"),
		GitHubToken:        os.Getenv("GITHUB_TOKEN"),
		LeetCodeGraphQLURL: getEnvOrDefault("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql/"),
		LeetCodeAPIURL:     getEnvOrDefault("LEETCODE_API_URL", "https://leetcode.com/api/submissions"),
		LeetCodeMirrorURL:  getEnvOrDefault("LEETCODE_MIRROR_URL", "https://alfa-leetcode-api.onrender.com"),
		UpstreamTimeout:    time.Duration(getEnvIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		DefaultLimit:       getEnvIntOrDefault("DEFAULT_LIMIT", 4),
		MaxLimit:           getEnvIntOrDefault("MAX_LIMIT", 50),
	}

	log.Printf("[INFO] Config: GitHubAPIURL=%s, LeetCodeGraphQLURL=%s, UpstreamTimeout=%v, DefaultLimit=%d, MaxLimit=%d",
		cfg.GitHubAPIURL, cfg.LeetCodeGraphQLURL, cfg.UpstreamTimeout, cfg.DefaultLimit, cfg.MaxLimit)

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
