package cmd

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/jobs"
	"storefront/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OrderNumberPrefix string
	BusinessUTCOffset time.Duration

	IdentityVerifierSecret  string
	SessionSecret           string
	SessionTTL              time.Duration
	IdentityFallbackOnError bool

	ConflictRetryAttempts int

	RabbitMQURL      string
	RabbitMQExchange string

	RiderRecountSchedule string
}

// LoadConfig reads the environment, after merging an optional .env file.
func LoadConfig() (Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ORDER_NUMBER_PREFIX", "DKN")
	v.SetDefault("BUSINESS_UTC_OFFSET_MINUTES", int(kernel.DefaultBusinessOffset/time.Minute))
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("IDENTITY_FALLBACK_ON_ERROR", true)
	v.SetDefault("CONFLICT_RETRY_ATTEMPTS", 3)
	v.SetDefault("RABBITMQ_EXCHANGE", "orders")
	v.SetDefault("RIDER_RECOUNT_SCHEDULE", jobs.DefaultRecountSchedule)

	config := Config{
		HTTPPort:                v.GetString("HTTP_PORT"),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetString("DB_PORT"),
		DBUser:                  v.GetString("DB_USER"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBName:                  v.GetString("DB_NAME"),
		DBSslMode:               v.GetString("DB_SSLMODE"),
		OrderNumberPrefix:       v.GetString("ORDER_NUMBER_PREFIX"),
		BusinessUTCOffset:       time.Duration(v.GetInt("BUSINESS_UTC_OFFSET_MINUTES")) * time.Minute,
		IdentityVerifierSecret:  v.GetString("IDENTITY_VERIFIER_SECRET"),
		SessionSecret:           v.GetString("SESSION_SECRET"),
		SessionTTL:              v.GetDuration("SESSION_TTL"),
		IdentityFallbackOnError: v.GetBool("IDENTITY_FALLBACK_ON_ERROR"),
		ConflictRetryAttempts:   v.GetInt("CONFLICT_RETRY_ATTEMPTS"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:        v.GetString("RABBITMQ_EXCHANGE"),
		RiderRecountSchedule:    v.GetString("RIDER_RECOUNT_SCHEDULE"),
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var secretErr, sessionErr, ttlErr, retryErr error
	if c.IdentityVerifierSecret == "" {
		secretErr = errs.NewValueIsRequiredError("IDENTITY_VERIFIER_SECRET")
	}
	if c.SessionSecret == "" {
		sessionErr = errs.NewValueIsRequiredError("SESSION_SECRET")
	}
	if c.SessionTTL <= 0 {
		ttlErr = errs.NewValueIsOutOfRangeError("SESSION_TTL", c.SessionTTL.String(), "1s", "unbounded")
	}
	if c.ConflictRetryAttempts < 1 {
		retryErr = errs.NewValueIsOutOfRangeError("CONFLICT_RETRY_ATTEMPTS", c.ConflictRetryAttempts, 1, "unbounded")
	}
	return errors.Join(secretErr, sessionErr, ttlErr, retryErr)
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
