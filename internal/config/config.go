package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	JSONBinAPIKey      string
	JSONBinBaseURL     string
	UsersBinID         string
	PastesCollectionID string
	JWTSecret          string
	RedisURI           string
	Port               string
	FrontendURL        string
	AllowedOrigins     []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s); must include production frontend origin
	Host               string   // Raw HOST env (e.g. https://api.example.com)
	AllowedHost        string   // Hostname only for strict host check (production only)
	Environment        string   // ENV: production, development, etc.
}

// Load reads configuration from the environment. Store credentials and the
// signing secret are required; there are no fallback secrets.
func Load() (*Config, error) {
	var missing []string
	requireEnv := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	apiKey := requireEnv("JSONBIN_API_KEY")
	usersBinID := requireEnv("USERS_BIN_ID")
	collectionID := requireEnv("JSONBIN_COLLECTION_ID")
	jwtSecret := requireEnv("JWT_SECRET")
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = stripToHostname(host)
	}

	// CORS: allow multiple origins so the production frontend works alongside local dev
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		JSONBinAPIKey:      apiKey,
		JSONBinBaseURL:     getEnv("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3"),
		UsersBinID:         usersBinID,
		PastesCollectionID: collectionID,
		JWTSecret:          jwtSecret,
		RedisURI:           getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:               getEnv("PORT", "8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:     allowedOrigins,
		Host:               host,
		AllowedHost:        allowedHost,
		Environment:        env,
	}, nil
}

// stripToHostname reduces a URL or host:port to the bare hostname.
func stripToHostname(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if idx := strings.Index(s, "/"); idx != -1 {
		s = s[:idx]
	}
	if idx := strings.Index(s, ":"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
