// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Feed     FeedConfig
	Checkout CheckoutConfig
	Security SecurityConfig
	External ExternalConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// FeedConfig contains the upstream catalog data feed configuration
type FeedConfig struct {
	PricingURL  string
	ProductURLs []string
	Timeout     time.Duration
}

// CheckoutConfig contains cart and checkout business configuration
type CheckoutConfig struct {
	ShippingCost decimal.Decimal
	TaxRates     map[string]decimal.Decimal
	CartTTL      time.Duration
	PageSize     int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	PayPal PayPalConfig
}

// PayPalConfig contains PayPal payment configuration
type PayPalConfig struct {
	ClientID    string
	Secret      string
	BaseURL     string
	Currency    string
	Environment string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Jewelry Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Feed: FeedConfig{
			PricingURL:  getEnv("FEED_PRICING_URL", "http://localhost:9000/data/pricing.json"),
			ProductURLs: getEnvAsSlice("FEED_PRODUCT_URLS", []string{"http://localhost:9000/data/products.json"}),
			Timeout:     getEnvAsDuration("FEED_TIMEOUT", 10*time.Second),
		},
		Checkout: CheckoutConfig{
			ShippingCost: getEnvAsDecimal("CHECKOUT_SHIPPING_COST", decimal.NewFromInt(50)),
			TaxRates:     getEnvAsRates("CHECKOUT_TAX_RATES", map[string]decimal.Decimal{"IL": decimal.NewFromFloat(0.10)}),
			CartTTL:      getEnvAsDuration("CART_TTL", 24*time.Hour),
			PageSize:     getEnvAsInt("CATALOG_PAGE_SIZE", 24),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
		},
		External: ExternalConfig{
			PayPal: PayPalConfig{
				ClientID:    getEnv("PAYPAL_CLIENT_ID", ""),
				Secret:      getEnv("PAYPAL_SECRET", ""),
				BaseURL:     getEnv("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
				Currency:    getEnv("PAYPAL_CURRENCY", "USD"),
				Environment: getEnv("PAYPAL_ENVIRONMENT", "sandbox"),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Feed.PricingURL == "" {
		return fmt.Errorf("FEED_PRICING_URL is required")
	}
	if len(c.Feed.ProductURLs) == 0 {
		return fmt.Errorf("FEED_PRODUCT_URLS requires at least one document URL")
	}

	if c.Checkout.ShippingCost.IsNegative() {
		return fmt.Errorf("CHECKOUT_SHIPPING_COST cannot be negative")
	}
	if c.Checkout.PageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsRates parses a "STATE=RATE,STATE=RATE" list, e.g. "IL=0.10,IN=0.07"
func getEnvAsRates(key string, defaultValue map[string]decimal.Decimal) map[string]decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		rates[strings.ToUpper(strings.TrimSpace(parts[0]))] = rate
	}

	if len(rates) == 0 {
		return defaultValue
	}
	return rates
}
