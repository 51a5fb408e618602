package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment
type Config struct {
	Env  string
	Port string

	Mongo struct {
		URL          string
		Database     string
		Timeout      time.Duration
		Transactions bool
	}

	JWT struct {
		Secret                  string
		AccessExpirationMinutes int
	}

	DefaultWalletMoney   int64
	DefaultAddress       string
	DefaultPaymentOption string

	Redis struct {
		Addr       string
		Password   string
		ProductTTL time.Duration
	}

	Email struct {
		Provider       string
		Sender         string
		PostmarkToken  string
		SendGridAPIKey string
	}

	CORSOrigins []string
}

// Load reads the .env file if present and builds a Config from the environment
func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8082"),
		DefaultAddress:       getEnv("DEFAULT_ADDRESS", "ADDRESS_NOT_SET"),
		DefaultPaymentOption: getEnv("DEFAULT_PAYMENT_OPTION", "PAYMENT_OPTION_DEFAULT"),
	}

	cfg.Mongo.URL = os.Getenv("MONGODB_URL")
	if cfg.Mongo.URL == "" {
		return nil, fmt.Errorf("MONGODB_URL must be set")
	}
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", "qkart")

	var err error
	if cfg.Mongo.Timeout, err = getDuration("MONGODB_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Mongo.Transactions, err = getBool("MONGODB_TRANSACTIONS", false); err != nil {
		return nil, err
	}

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWT.AccessExpirationMinutes, err = getInt("JWT_ACCESS_EXPIRATION_MINUTES", 240); err != nil {
		return nil, err
	}

	wallet, err := getInt("DEFAULT_WALLET_MONEY", 500)
	if err != nil {
		return nil, err
	}
	cfg.DefaultWalletMoney = int64(wallet)

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.ProductTTL, err = getDuration("REDIS_PRODUCT_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	cfg.Email.Provider = strings.ToLower(os.Getenv("EMAIL_PROVIDER"))
	cfg.Email.Sender = os.Getenv("EMAIL_SENDER")
	cfg.Email.PostmarkToken = os.Getenv("POSTMARK_API_TOKEN")
	cfg.Email.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	switch cfg.Email.Provider {
	case "":
	case "postmark":
		if cfg.Email.PostmarkToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN must be set when EMAIL_PROVIDER=postmark")
		}
	case "sendgrid":
		if cfg.Email.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY must be set when EMAIL_PROVIDER=sendgrid")
		}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.Email.Provider)
	}

	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	return cfg, nil
}

// IsTest reports whether the server runs under the test environment
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
