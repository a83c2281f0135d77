package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting. It is built once in main and
// handed to constructors; business logic never reads the environment.
type Config struct {
	DatabaseURL    string
	AppHost        string
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration

	Azure AzureConfig
}

// AzureConfig holds the Azure AD app registration used for the OAuth2
// login flow. Optional; local username/password login works without it.
type AzureConfig struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	RedirectURI  string
}

func (a AzureConfig) Enabled() bool {
	return a.ClientID != "" && a.TenantID != ""
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AppHost:        getEnvOrDefault("APP_HOST", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RequestTimeout: 15 * time.Second,
		Azure: AzureConfig{
			ClientID:     os.Getenv("AZURE_CLIENT_ID"),
			ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
			TenantID:     os.Getenv("AZURE_TENANT_ID"),
			RedirectURI:  os.Getenv("AZURE_REDIRECT_URI"),
		},
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
