package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
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
	Port     int
	Env      string
	LogLevel string
}

// AdminConfig holds the bootstrap admin credential used by the login endpoint.
// The password is stored as a bcrypt hash, never in plain text.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// PayrollConfig exposes the tunable calculation knobs so thresholds are not
// buried in arithmetic.
type PayrollConfig struct {
	SessionBonusThreshold float64
	SessionBonusFactor    int64
	FixedBonusThreshold   float64
	FixedBonusRate        string
	WeeksPerMonth         int64
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "tpq"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Admin = AdminConfig{
		Username:     getEnv("ADMIN_USERNAME", "admin"),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Payroll calculation knobs; defaults match the documented policy.
	sessionThreshold, err := strconv.ParseFloat(getEnv("PAYROLL_SESSION_BONUS_THRESHOLD", "90"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_SESSION_BONUS_THRESHOLD: %w", err)
	}
	fixedThreshold, err := strconv.ParseFloat(getEnv("PAYROLL_FIXED_BONUS_THRESHOLD", "95"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_FIXED_BONUS_THRESHOLD: %w", err)
	}
	weeksPerMonth, err := strconv.ParseInt(getEnv("PAYROLL_WEEKS_PER_MONTH", "4"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WEEKS_PER_MONTH: %w", err)
	}

	config.Payroll = PayrollConfig{
		SessionBonusThreshold: sessionThreshold,
		SessionBonusFactor:    2,
		FixedBonusThreshold:   fixedThreshold,
		FixedBonusRate:        getEnv("PAYROLL_FIXED_BONUS_RATE", "0.05"),
		WeeksPerMonth:         weeksPerMonth,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
