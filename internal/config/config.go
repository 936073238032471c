package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Storage  StorageConfig
	GenAI    GenAIConfig
	Parser   attendance.Rules
	Payroll  payroll.Rules
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type StorageConfig struct {
	BasePath string
}

// GenAIConfig configures the optional external-model fallback. An empty
// APIKey disables the fallback entirely.
type GenAIConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
	// .env is optional outside local development
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
		Name:     getEnv("DB_NAME", "paysheet"),
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

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./exports"),
	}

	config.GenAI = GenAIConfig{
		APIKey: getEnv("GENAI_API_KEY", ""),
		Model:  getEnv("GENAI_MODEL", "gemini-2.0-flash"),
	}

	// Free-text parser rules
	parserRules := attendance.DefaultRules()
	parserRules.DefaultStartTime = getEnv("PARSER_DEFAULT_START_TIME", parserRules.DefaultStartTime)
	if parserRules.GraceMinutes, err = getEnvInt("PARSER_GRACE_MINUTES", parserRules.GraceMinutes); err != nil {
		return nil, err
	}
	if parserRules.PenaltyPerMinute, err = getEnvDecimal("PARSER_LATE_PENALTY_PER_MINUTE", parserRules.PenaltyPerMinute); err != nil {
		return nil, err
	}
	if parserRules.DayRate, err = getEnvDecimal("PARSER_DAY_RATE", parserRules.DayRate); err != nil {
		return nil, err
	}
	config.Parser = parserRules

	// Structured payroll rules
	payrollRules := payroll.DefaultRules()
	if payrollRules.StandardWorkHours, err = getEnvFloat("PAYROLL_STANDARD_HOURS", payrollRules.StandardWorkHours); err != nil {
		return nil, err
	}
	if payrollRules.OvertimeMultiplier, err = getEnvDecimal("PAYROLL_OVERTIME_MULTIPLIER", payrollRules.OvertimeMultiplier); err != nil {
		return nil, err
	}
	if payrollRules.GraceMinutes, err = getEnvInt("PAYROLL_GRACE_MINUTES", payrollRules.GraceMinutes); err != nil {
		return nil, err
	}
	if payrollRules.LateDeduction, err = getEnvDecimal("PAYROLL_LATE_DEDUCTION", payrollRules.LateDeduction); err != nil {
		return nil, err
	}
	if payrollRules.OfflineDeduction, err = getEnvDecimal("PAYROLL_OFFLINE_DEDUCTION", payrollRules.OfflineDeduction); err != nil {
		return nil, err
	}
	config.Payroll = payrollRules

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
	if c.Payroll.StandardWorkHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_HOURS must be positive")
	}
	if c.Parser.GraceMinutes < 0 || c.Payroll.GraceMinutes < 0 {
		return fmt.Errorf("grace minutes must not be negative")
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

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
