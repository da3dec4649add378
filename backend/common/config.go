package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Version is overwritten at build time via -ldflags.
var Version = "v0.0.0"

// Config holds every runtime setting of the gateway.
type Config struct {
	Port int `validate:"min=1,max=65535"`

	DBHost     string `validate:"required"`
	DBPort     int    `validate:"min=1,max=65535"`
	DBName     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBSSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`

	CCAppURL string `validate:"required,url"`
	AppURL   string `validate:"required,url"`

	FrontendDir   string
	LogLevel      string        `validate:"oneof=trace debug info warn warning error fatal panic"`
	GinMode       string        `validate:"omitempty,oneof=debug release test"`
	HealthTimeout time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the local-development defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          5000,
		DBHost:        "localhost",
		DBPort:        5432,
		DBName:        "sbml_models",
		DBUser:        "sbml",
		DBSSLMode:     "disable",
		CCAppURL:      "http://localhost:8080",
		AppURL:        "http://localhost:8081",
		FrontendDir:   "frontend",
		LogLevel:      "info",
		HealthTimeout: 2 * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, an optional ini file,
// a .env file in the working directory and finally the process environment.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}
	if configPath != "" {
		configMap, err := parseIniConfig(configPath)
		if err != nil {
			return nil, err
		}
		if err := applyConfigMap(cfg, configMap); err != nil {
			return nil, fmt.Errorf("apply config file %s: %w", configPath, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyConfigMap(cfg, environmentConfigMap()); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints declared on Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string. The password is only
// included when one is configured; the default deployment relies on
// trust authentication.
func (c *Config) DSN() string {
	parts := []string{
		"host=" + c.DBHost,
		fmt.Sprintf("port=%d", c.DBPort),
		"user=" + c.DBUser,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSSLMode,
	}
	if c.DBPassword != "" {
		parts = append(parts, "password="+c.DBPassword)
	}
	return strings.Join(parts, " ")
}
