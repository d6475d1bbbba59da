// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "3333".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// APIBaseURL is the public URL of this API, used to build the
	// confirmation links sent by email. Required, no trailing slash.
	APIBaseURL string

	// FrontEndBaseURL is the web client URL confirmations redirect to.
	// Required, no trailing slash.
	FrontEndBaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AutoMigrate applies pending migrations at startup. Defaults to true.
	AutoMigrate bool

	Mail Mail
}

// Mail configures outbound email.
type Mail struct {
	FromName    string
	FromAddress string

	// SMTPEnabled selects the SMTP transport. When false, emails are only logged.
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	// SMTPTLS dials with implicit TLS instead of STARTTLS.
	SMTPTLS bool

	// PreviewURL is the web UI of a mail catcher such as Mailpit. When set,
	// every sent email logs a link to it.
	PreviewURL string
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment. Variables already set win. A missing file
// is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Every missing or invalid variable is reported in the returned error.
func Load() (Config, error) {
	var errs error

	cfg := Config{
		Port:        getEnv("PORT", "3333"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		Mail: Mail{
			FromName:     getEnv("MAIL_FROM_NAME", "plann.er team"),
			FromAddress:  getEnv("MAIL_FROM_ADDRESS", "hello@plann.er"),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			PreviewURL:   strings.TrimRight(os.Getenv("MAIL_PREVIEW_URL"), "/"),
		},
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		errs = multierr.Append(errs, errors.New("DATABASE_URL is required"))
	}

	var err error
	cfg.APIBaseURL, err = baseURL("API_BASE_URL")
	errs = multierr.Append(errs, err)
	cfg.FrontEndBaseURL, err = baseURL("FRONT_END_BASE_URL")
	errs = multierr.Append(errs, err)

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("PORT must be a TCP port, got %q", cfg.Port))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel))
	}

	cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", true)
	errs = multierr.Append(errs, err)
	cfg.Mail.SMTPEnabled, err = getBool("SMTP_ENABLED", false)
	errs = multierr.Append(errs, err)
	cfg.Mail.SMTPTLS, err = getBool("SMTP_TLS", false)
	errs = multierr.Append(errs, err)
	cfg.Mail.SMTPPort, err = getInt("SMTP_PORT", 1025)
	errs = multierr.Append(errs, err)

	if cfg.Mail.SMTPEnabled && cfg.Mail.SMTPHost == "" {
		errs = multierr.Append(errs, errors.New("SMTP_HOST is required when SMTP_ENABLED is true"))
	}

	if errs != nil {
		return Config{}, fmt.Errorf("config: %w", errs)
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// baseURL reads a required absolute http(s) URL and trims its trailing slash.
func baseURL(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, v)
	}
	return strings.TrimRight(v, "/"), nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
