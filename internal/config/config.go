package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv  = "dev"
	defaultPort    = "5000"
	defaultQRScale = "2"
)

// AllowedOrigins is the fixed cross-origin allow list.
var AllowedOrigins = []string{
	"https://frontline-client-two.vercel.app",
	"http://localhost:5173",
}

type Config struct {
	AppEnv         string
	Port           string
	DatabaseURI    string
	DatabaseName   string
	FrontendURL    string
	AllowedOrigins []string
	QRScale        int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win. A
// .env file that exists but cannot be parsed is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURI = strings.TrimSpace(os.Getenv("DB_URI"))
	if cfg.DatabaseURI == "" {
		cfg.DatabaseURI = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	cfg.DatabaseName = strings.TrimSpace(os.Getenv("DB_NAME"))
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(os.Getenv("FRONTEND_URL")), "/")
	cfg.AllowedOrigins = append([]string(nil), AllowedOrigins...)

	var err error
	cfg.QRScale, err = parseIntEnv("QR_SCALE", defaultQRScale)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}
	if cfg.QRScale <= 0 {
		return fmt.Errorf("QR_SCALE must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.FrontendURL == "" {
		return fmt.Errorf("in prod/release FRONTEND_URL must be set")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
