// Package config loads settings from the environment (and an optional .env
// file) and opens the shared resources built from them.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	GinMode     string `mapstructure:"GIN_MODE"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure  bool          `mapstructure:"COOKIE_SECURE"`
	ResetTokenTTL time.Duration `mapstructure:"RESET_TOKEN_TTL"`
	BcryptCost    int           `mapstructure:"BCRYPT_COST"`

	MediaRoot          string `mapstructure:"MEDIA_ROOT"`
	SiteURL            string `mapstructure:"SITE_URL"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	MetricsAPIKey     string `mapstructure:"METRICS_API_KEY"`
	AuthRatePerMinute int    `mapstructure:"AUTH_RATE_PER_MINUTE"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"GIN_MODE":             "release",
	"STORE_DRIVER":         "postgres",
	"DATABASE_URL":         "",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "",
	"DB_NAME":              "teazen",
	"DB_SSLMODE":           "disable",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"SESSION_SECRET":       "",
	"SESSION_TTL":          "336h",
	"COOKIE_SECURE":        false,
	"RESET_TOKEN_TTL":      "72h",
	"BCRYPT_COST":          12,
	"MEDIA_ROOT":           "./uploads",
	"SITE_URL":             "http://localhost:8080",
	"CORS_ALLOWED_ORIGINS": "",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"METRICS_API_KEY":      "",
	"AUTH_RATE_PER_MINUTE": 10,
	"SMTP_HOST":            "",
	"SMTP_PORT":            587,
	"SMTP_USER":            "",
	"SMTP_PASSWORD":        "",
	"MAIL_FROM":            "TeaZen <no-reply@teazen.local>",
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET must be set")
	}
	switch c.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// DSN prefers DATABASE_URL and otherwise assembles one from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) SMTPEnabled() bool { return c.SMTPHost != "" }
