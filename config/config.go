// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the API server configuration.
type Config struct {
	Store StoreConfig

	// JWT signing secret (required).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
	PublicURL  string
	StaticDir  string
	LogFile    string

	// Catalog and timeline
	RacesFile            string
	IncludePreDebutSlots bool
}

// StoreConfig selects and configures the plan key-value store.
type StoreConfig struct {
	Driver string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	SQLitePath string
	MySQLDSN   string
}

// CLIConfig holds configuration for the local umaplan command.
type CLIConfig struct {
	Store                StoreConfig
	RacesFile            string
	PublicURL            string
	PlanKey              string
	IncludePreDebutSlots bool
	Debug                bool
	LogFile              string
}

// RefreshConfig holds configuration for the race data refresh job.
type RefreshConfig struct {
	SourceURL  string
	OutputFile string
	Timeout    time.Duration
	Debug      bool
	LogFile    string
}

// Load reads server configuration from a .env file (if present) and then
// from environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()
	setStoreDefaults(v, "postgres")

	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "umaplan.app,www.umaplan.app")
	v.SetDefault("PUBLIC_URL", "http://localhost:9000/")
	v.SetDefault("RACES_FILE", "data/races.json")
	v.SetDefault("INCLUDE_PRE_DEBUT_SLOTS", false)
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		Store:                storeConfig(v),
		JWTSecret:            v.GetString("JWT_SECRET"),
		Debug:                v.GetBool("DEBUG"),
		Port:                 v.GetString("PORT"),
		TLSDomains:           splitTrimmed(v.GetString("TLS_DOMAINS")),
		PublicURL:            v.GetString("PUBLIC_URL"),
		StaticDir:            v.GetString("STATIC_DIR"),
		LogFile:              v.GetString("LOG_FILE"),
		RacesFile:            v.GetString("RACES_FILE"),
		IncludePreDebutSlots: v.GetBool("INCLUDE_PRE_DEBUT_SLOTS"),
	}

	cfg.validate()
	return cfg
}

// LoadCLI reads configuration for the local command. The store defaults to
// a SQLite file under the user config directory.
func LoadCLI() *CLIConfig {
	v := newViper()
	setStoreDefaults(v, "sqlite")

	v.SetDefault("RACES_FILE", "data/races.json")
	v.SetDefault("PUBLIC_URL", "https://umaplan.app/")
	v.SetDefault("PLAN_KEY", "local")
	v.SetDefault("INCLUDE_PRE_DEBUT_SLOTS", false)
	v.SetDefault("DEBUG", false)

	cfg := &CLIConfig{
		Store:                storeConfig(v),
		RacesFile:            v.GetString("RACES_FILE"),
		PublicURL:            v.GetString("PUBLIC_URL"),
		PlanKey:              v.GetString("PLAN_KEY"),
		IncludePreDebutSlots: v.GetBool("INCLUDE_PRE_DEBUT_SLOTS"),
		Debug:                v.GetBool("DEBUG"),
		LogFile:              v.GetString("LOG_FILE"),
	}

	if err := cfg.Store.Validate(); err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

// LoadRefresh reads configuration for cmd/refresh.
func LoadRefresh() *RefreshConfig {
	v := newViper()

	v.SetDefault("REFRESH_SOURCE_URL", "https://gametora.com/umamusume/races")
	v.SetDefault("RACES_FILE", "data/races.json")
	v.SetDefault("REFRESH_TIMEOUT", "30s")
	v.SetDefault("DEBUG", false)

	cfg := &RefreshConfig{
		SourceURL:  v.GetString("REFRESH_SOURCE_URL"),
		OutputFile: v.GetString("RACES_FILE"),
		Timeout:    v.GetDuration("REFRESH_TIMEOUT"),
		Debug:      v.GetBool("DEBUG"),
		LogFile:    v.GetString("LOG_FILE"),
	}
	if cfg.SourceURL == "" {
		log.Fatal("config: REFRESH_SOURCE_URL must be set")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c StoreConfig) PostgresDSN() string {
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

// Validate checks that the selected driver has what it needs.
func (c StoreConfig) Validate() error {
	switch c.Driver {
	case "postgres":
		if c.DatabaseURL == "" && c.DBPass == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASS must be set for the postgres store")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for the sqlite store")
		}
	case "mysql":
		if c.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN must be set for the mysql store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Driver)
	}
	return nil
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	if err := c.Store.Validate(); err != nil {
		log.Fatal("config: ", err)
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
}

func setStoreDefaults(v *viper.Viper, driver string) {
	v.SetDefault("STORE_DRIVER", driver)
	v.SetDefault("DB_USER", "umaplan")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "umaplan")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", defaultSQLitePath())
}

func storeConfig(v *viper.Viper) StoreConfig {
	return StoreConfig{
		Driver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
	}
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "umaplan.db"
	}
	return filepath.Join(dir, "umaplan", "umaplan.db")
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
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
