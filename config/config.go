package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the application needs from the environment.
// It is built once at startup and passed down explicitly; nothing reads
// the environment after Load returns.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// BaseURL is the externally reachable root of the application,
	// used to build absolute password-reset links.
	BaseURL string

	// SecretKey signs session cookies and password-reset tokens.
	SecretKey string

	// DatabaseURL is the Postgres connection string. When empty the
	// application falls back to the in-memory store.
	DatabaseURL string

	SMTP SMTP
}

// SMTP holds outbound mail settings.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load reads a .env file if one exists, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		SecretKey:   getenv("SECRET_KEY", "supersecretkey"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
		},
	}

	if cfg.SecretKey == "supersecretkey" {
		log.Println("SECRET_KEY not set, using insecure default")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
