package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Every field can be
// set through the environment variable named in its tag.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	// Storage selects where carts, coupons and orders live: "database"
	// (postgres/mysql plus redis) or "memory".
	Storage       string        `mapstructure:"STORAGE"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CartTTL       time.Duration `mapstructure:"CART_TTL"`

	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	MongoCollection string `mapstructure:"MONGO_COLLECTION"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	CORSOrigins   string `mapstructure:"CORS_ORIGINS"`

	StoreName             string        `mapstructure:"STORE_NAME"`
	WhatsAppNumber        string        `mapstructure:"WHATSAPP_NUMBER"`
	CurrencyLocale        string        `mapstructure:"CURRENCY_LOCALE"`
	ShippingFee           int64         `mapstructure:"SHIPPING_FEE"`
	FreeShippingThreshold int64         `mapstructure:"FREE_SHIPPING_THRESHOLD"`
	UserDiscountPercent   int           `mapstructure:"USER_DISCOUNT_PERCENT"`
	OrderPrefix           string        `mapstructure:"ORDER_PREFIX"`
	CartKeyPrefix         string        `mapstructure:"CART_KEY_PREFIX"`
	CatalogTimeout        time.Duration `mapstructure:"CATALOG_TIMEOUT"`

	MessagingSink string `mapstructure:"MESSAGING_SINK"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom      string `mapstructure:"SMTP_FROM"`
	OrderEmailTo  string `mapstructure:"ORDER_EMAIL_TO"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogDir   string `mapstructure:"LOG_DIR"`
}

var defaults = map[string]interface{}{
	"PORT":                    "8080",
	"ENV":                     "development",
	"DB_DRIVER":               "postgres",
	"DB_HOST":                 "localhost",
	"DB_PORT":                 "5432",
	"DB_USER":                 "postgres",
	"DB_PASSWORD":             "",
	"DB_NAME":                 "storefront",
	"DB_SSLMODE":              "disable",
	"STORAGE":                 "database",
	"REDIS_ADDR":              "localhost:6379",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"CART_TTL":                "720h",
	"MONGO_URI":               "",
	"MONGO_DATABASE":          "storefront",
	"MONGO_COLLECTION":        "checkout_audit",
	"JWT_SECRET":              "",
	"SESSION_SECRET":          "",
	"CORS_ORIGINS":            "*",
	"STORE_NAME":              "SeArys Store",
	"WHATSAPP_NUMBER":         "",
	"CURRENCY_LOCALE":         "es-CO",
	"SHIPPING_FEE":            5000,
	"FREE_SHIPPING_THRESHOLD": 50000,
	"USER_DISCOUNT_PERCENT":   5,
	"ORDER_PREFIX":            "WEB",
	"CART_KEY_PREFIX":         "searys_tienda_cart",
	"CATALOG_TIMEOUT":         "10s",
	"MESSAGING_SINK":          "whatsapp",
	"SMTP_HOST":               "",
	"SMTP_PORT":               587,
	"SMTP_USERNAME":           "",
	"SMTP_PASSWORD":           "",
	"SMTP_FROM":               "",
	"ORDER_EMAIL_TO":          "",
	"LOG_LEVEL":               "info",
	"LOG_DIR":                 "logs",
}

// LoadConfig reads .env (when present), an optional config file and the
// environment, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.Storage {
	case "database", "memory":
	default:
		return fmt.Errorf("unsupported STORAGE %q", c.Storage)
	}
	switch c.MessagingSink {
	case "whatsapp", "email":
	default:
		return fmt.Errorf("unsupported MESSAGING_SINK %q", c.MessagingSink)
	}
	if c.ShippingFee < 0 || c.FreeShippingThreshold < 0 {
		return errors.New("shipping amounts must not be negative")
	}
	if c.UserDiscountPercent < 0 || c.UserDiscountPercent > 100 {
		return fmt.Errorf("USER_DISCOUNT_PERCENT %d out of range", c.UserDiscountPercent)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OrderDestination is where checkout messages are sent for the configured sink.
func (c *Config) OrderDestination() string {
	if c.MessagingSink == "email" {
		return c.OrderEmailTo
	}
	return c.WhatsAppNumber
}
