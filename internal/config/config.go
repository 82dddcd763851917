// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gurkanbulca/opsboard/internal/database"
	"github.com/gurkanbulca/opsboard/internal/middleware"
)

const (
	DataSourceMock     = "mock"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Server     ServerConfig
	Data       DataConfig
	Database   DatabaseConfig
	Log        LogConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	GRPCPort         string
	HTTPPort         string
	Environment      string
	EnableReflection bool
	AutoMigrate      bool
}

// DataConfig selects where boards are loaded from.
type DataConfig struct {
	Source       string
	FixturesPath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type ValidationConfig struct {
	MaxTitleLength         int
	MaxDescriptionLength   int
	MaxCommentLength       int
	MaxChecklistTextLength int
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "development")
	return &Config{
		Server: ServerConfig{
			GRPCPort:         getEnv("GRPC_PORT", "50051"),
			HTTPPort:         getEnv("HTTP_PORT", "8080"),
			Environment:      env,
			EnableReflection: getEnvAsBool("ENABLE_REFLECTION", env == "development"),
			AutoMigrate:      getEnvAsBool("AUTO_MIGRATE", false),
		},
		Data: DataConfig{
			Source:       strings.ToLower(getEnv("DATA_SOURCE", DataSourceMock)),
			FixturesPath: getEnv("FIXTURES_PATH", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "opsboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", env == "development"),
		},
		Validation: ValidationConfig{
			MaxTitleLength:         getEnvAsInt("MAX_TITLE_LENGTH", 200),
			MaxDescriptionLength:   getEnvAsInt("MAX_DESCRIPTION_LENGTH", 5000),
			MaxCommentLength:       getEnvAsInt("MAX_COMMENT_LENGTH", 5000),
			MaxChecklistTextLength: getEnvAsInt("MAX_CHECKLIST_TEXT_LENGTH", 500),
		},
	}, nil
}

// ValidateConfig checks values that would otherwise fail late at startup.
func (c *Config) ValidateConfig() error {
	var errs []string

	if c.Server.GRPCPort == "" {
		errs = append(errs, "GRPC_PORT is required")
	}
	if c.Server.HTTPPort == "" {
		errs = append(errs, "HTTP_PORT is required")
	}
	if c.Server.GRPCPort != "" && c.Server.GRPCPort == c.Server.HTTPPort {
		errs = append(errs, "GRPC_PORT and HTTP_PORT must differ")
	}

	switch c.Data.Source {
	case DataSourceMock:
	case DataSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, "DB_HOST and DB_NAME are required for the postgres data source")
		}
	default:
		errs = append(errs, fmt.Sprintf("DATA_SOURCE must be %q or %q, got %q", DataSourceMock, DataSourcePostgres, c.Data.Source))
	}

	v := c.Validation
	if v.MaxTitleLength <= 0 || v.MaxDescriptionLength <= 0 || v.MaxCommentLength <= 0 || v.MaxChecklistTextLength <= 0 {
		errs = append(errs, "MAX_* lengths must be positive")
	}

	if c.IsProduction() && c.Server.EnableReflection {
		errs = append(errs, "gRPC reflection must be disabled in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ToValidationConfig converts to the request validator settings.
func (c *Config) ToValidationConfig() *middleware.ValidationConfig {
	return &middleware.ValidationConfig{
		MaxTitleLength:         c.Validation.MaxTitleLength,
		MaxDescriptionLength:   c.Validation.MaxDescriptionLength,
		MaxCommentLength:       c.Validation.MaxCommentLength,
		MaxChecklistTextLength: c.Validation.MaxChecklistTextLength,
	}
}

// ToDatabaseConfig converts to the connection settings used by database.Open.
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		DBName:   c.Database.DBName,
		SSLMode:  c.Database.SSLMode,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
