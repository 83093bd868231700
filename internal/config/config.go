package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Roster   RosterConfig
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port      int
	Env       string
	LogLevel  string
	StaticDir string
	CacheFile string
}

// RosterConfig holds the roster site settings: the single-location identity
// of this deployment plus the manager credential table (username to bcrypt
// hash), which is injected here and consumed by the authenticator.
type RosterConfig struct {
	CompanyName string
	SystemTitle string
	LocationID  string
	Timezone    string
	Users       map[string]string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staff_roster"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:      appPort,
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		StaticDir: getEnv("STATIC_DIR", "web"),
		CacheFile: getEnv("CACHE_FILE", "data/roster-cache.json"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Roster site configuration
	users, err := parseUsers(getEnv("ROSTER_USERS", ""))
	if err != nil {
		return nil, err
	}
	config.Roster = RosterConfig{
		CompanyName: getEnv("COMPANY_NAME", "Shriajj Pty Ltd"),
		SystemTitle: getEnv("SYSTEM_TITLE", "Staff Roster Management System"),
		LocationID:  getEnv("LOCATION_ID", "main"),
		Timezone:    getEnv("TIMEZONE", "Australia/Melbourne"),
		Users:       users,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.Roster.Users) == 0 {
		return fmt.Errorf("ROSTER_USERS is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string, preferring an
// explicit DATABASE_URL over the per-field settings.
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

var hostPattern = regexp.MustCompile(`@([^:/@]+)`)

// StoreEndpoint derives the remote-store endpoint advertised on /api/config:
// the host of the connection string when one is set, else a fixed default.
func (c *Config) StoreEndpoint() string {
	if c.Database.URL != "" {
		if m := hostPattern.FindStringSubmatch(c.Database.URL); m != nil {
			return m[1]
		}
	}
	return c.Database.Host
}

// parseUsers reads the credential table from "user:bcrypthash" pairs
// separated by commas. Hashes only; plaintext passwords never live in config.
func parseUsers(raw string) (map[string]string, error) {
	users := make(map[string]string)
	if raw == "" {
		return users, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		name, hash, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("invalid ROSTER_USERS entry %q", pair)
		}
		users[name] = hash
	}
	return users, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
