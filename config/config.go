// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Database – either set DatabaseURL directly (postgres:// or sqlite://),
	// or the individual PostgreSQL fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Admin credential – AdminPINHash (bcrypt) wins over the plain AdminPIN.
	AdminPIN     string
	AdminPINHash string

	// Lifetime of an admin session from login.
	SessionTTL time.Duration

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// MySQL – used only by cmd/migrate.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("DB_USER", "kingbet")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "kingbet")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SESSION_MAX_AGE", "24h")
	v.SetDefault("PORT", ":8000")
	v.SetDefault("TLS_DOMAINS", "kingbet.app,www.kingbet.app")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		AdminPIN:     v.GetString("ADMIN_PIN"),
		AdminPINHash: v.GetString("ADMIN_PIN_HASH"),
		SessionTTL:   v.GetDuration("SESSION_MAX_AGE"),
		Debug:        v.GetBool("DEBUG"),
		Port:         v.GetString("PORT"),
		TLSDomains:   splitTrimmed(v.GetString("TLS_DOMAINS")),
		MySQLDSN:     v.GetString("MYSQL_DSN"),
	}

	cfg.validate()
	return cfg
}

// DSN returns the full database connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.AdminPIN == "" && c.AdminPINHash == "" {
		log.Fatal("config: ADMIN_PIN or ADMIN_PIN_HASH must be set")
	}
	if c.SessionTTL <= 0 {
		log.Fatal("config: SESSION_MAX_AGE must be a positive duration")
	}
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
