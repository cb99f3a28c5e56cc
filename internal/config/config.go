package config

import (
	"os"
	"time"
)

type Config struct {
	// Supabase project (auth + managed Postgres)
	SupabaseURL string
	SupabaseKey string
	DatabaseURL string

	// SecretKey is the project JWT secret. When set, access tokens are
	// pre-checked locally before the remote user lookup.
	SecretKey string

	// Application
	Environment string

	// Server
	Host        string
	Port        string
	CORSOrigins string

	AuthTimeout time.Duration
}

func Load() *Config {
	return &Config{
		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		SecretKey: getEnv("SECRET_KEY", ""),

		Environment: getEnv("ENVIRONMENT", "development"),

		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		AuthTimeout: parseDuration(getEnv("AUTH_TIMEOUT", "10s")),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
