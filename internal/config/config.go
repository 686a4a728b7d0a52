package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the settings shared by the store API and the products app.
type Config struct {
	AppPort      string
	ProductsPort string

	DatabaseDriver        string
	DatabaseDSN           string
	DatabaseMaxRetries    int
	DatabaseMaxRetryDelay time.Duration
	AutoMigrate           bool

	RabbitMQURL      string
	RabbitMQExchange string
	EventsAudit      bool

	LogLevel  logrus.Level
	LogFormat string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("PRODUCTS_PORT", ":7071")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=storeapi port=5432 sslmode=disable")
	v.SetDefault("DATABASE_MAX_RETRIES", 5)
	v.SetDefault("DATABASE_MAX_RETRY_DELAY", "10s")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "store.events")
	v.SetDefault("EVENTS_AUDIT", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads an optional .env file, then the environment, and returns the
// resulting Config.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(v.GetString("DATABASE_DRIVER"))
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	level, err := logrus.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(v.GetString("LOG_FORMAT"))
	if format != "json" && format != "text" {
		return nil, fmt.Errorf("unsupported LOG_FORMAT %q", format)
	}

	retries := v.GetInt("DATABASE_MAX_RETRIES")
	if retries < 0 {
		return nil, fmt.Errorf("DATABASE_MAX_RETRIES must not be negative, got %d", retries)
	}

	return &Config{
		AppPort:               v.GetString("APP_PORT"),
		ProductsPort:          v.GetString("PRODUCTS_PORT"),
		DatabaseDriver:        driver,
		DatabaseDSN:           v.GetString("DATABASE_DSN"),
		DatabaseMaxRetries:    retries,
		DatabaseMaxRetryDelay: v.GetDuration("DATABASE_MAX_RETRY_DELAY"),
		AutoMigrate:           v.GetBool("AUTO_MIGRATE"),
		RabbitMQURL:           v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:      v.GetString("RABBITMQ_EXCHANGE"),
		EventsAudit:           v.GetBool("EVENTS_AUDIT"),
		LogLevel:              level,
		LogFormat:             format,
	}, nil
}
