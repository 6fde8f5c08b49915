package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cart snapshot backends
const (
	CartStoreRedis    = "redis"
	CartStoreDatabase = "database"
)

// Order history sources
const (
	OrderSourceSupabase = "supabase"
	OrderSourceDatabase = "database"
)

type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Supabase SupabaseConfig
	Session  SessionConfig
	Cart     CartConfig
	Orders   OrdersConfig
	Redis    RedisConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SupabaseConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type CartConfig struct {
	Store       string
	Key         string // fixed storage key, namespaced per session
	TTL         time.Duration
	CleanupCron string
}

type OrdersConfig struct {
	Source string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Catalog: CatalogConfig{
			BaseURL: strings.TrimRight(getEnv("CATALOG_API_URL", "http://localhost:5000/api"), "/"),
			Timeout: parseDuration(getEnv("CATALOG_TIMEOUT", "10s"), 10*time.Second),
		},
		Supabase: SupabaseConfig{
			URL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			AnonKey: getEnv("SUPABASE_ANON_KEY", ""),
			Timeout: parseDuration(getEnv("SUPABASE_TIMEOUT", "15s"), 15*time.Second),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "change-me-session-secret"),
			CookieName: getEnv("SESSION_COOKIE", "nors_session"),
			TTL:        parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
			Secure:     parseBool(getEnv("SESSION_SECURE", "false")),
		},
		Cart: CartConfig{
			Store:       strings.ToLower(getEnv("CART_STORE", CartStoreRedis)),
			Key:         getEnv("CART_KEY", "norsCart"),
			TTL:         parseDuration(getEnv("CART_TTL", "720h"), 720*time.Hour),
			CleanupCron: getEnv("CART_CLEANUP_CRON", "0 3 * * *"),
		},
		Orders: OrdersConfig{
			Source: strings.ToLower(getEnv("ORDER_SOURCE", OrderSourceSupabase)),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "nors_bakery"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects backend selections the server cannot wire.
func (c *Config) Validate() error {
	switch c.Cart.Store {
	case CartStoreRedis, CartStoreDatabase:
	default:
		return fmt.Errorf("invalid CART_STORE %q (want %q or %q)", c.Cart.Store, CartStoreRedis, CartStoreDatabase)
	}
	switch c.Orders.Source {
	case OrderSourceSupabase, OrderSourceDatabase:
	default:
		return fmt.Errorf("invalid ORDER_SOURCE %q (want %q or %q)", c.Orders.Source, OrderSourceSupabase, OrderSourceDatabase)
	}
	if c.Cart.Key == "" {
		return fmt.Errorf("CART_KEY must not be empty")
	}
	return nil
}

// NeedsDatabase reports whether any configured backend lives in Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.Cart.Store == CartStoreDatabase || c.Orders.Source == OrderSourceDatabase
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
