package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// configKeys lists every setting that may come from the ini file or the environment.
var configKeys = []string{
	"PORT",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"DB_USER",
	"DB_PASSWORD",
	"DB_SSLMODE",
	"CCAPP_URL",
	"APP_URL",
	"FRONTEND_DIR",
	"LOG_LEVEL",
	"GIN_MODE",
	"HEALTH_TIMEOUT",
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func environmentConfigMap() map[string]string {
	configMap := make(map[string]string)
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			configMap[key] = strings.TrimSpace(value)
		}
	}
	return configMap
}

func applyConfigMap(cfg *Config, configMap map[string]string) error {
	setString := func(key string, dst *string) {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			*dst = configValue
		}
	}
	setInt := func(key string, dst *int) error {
		configValue, ok := configMap[key]
		if !ok || configValue == "" {
			return nil
		}
		parsed, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*dst = parsed
		return nil
	}

	if err := setInt("PORT", &cfg.Port); err != nil {
		return err
	}
	if err := setInt("DB_PORT", &cfg.DBPort); err != nil {
		return err
	}
	setString("DB_HOST", &cfg.DBHost)
	setString("DB_NAME", &cfg.DBName)
	setString("DB_USER", &cfg.DBUser)
	setString("DB_SSLMODE", &cfg.DBSSLMode)
	setString("CCAPP_URL", &cfg.CCAppURL)
	setString("APP_URL", &cfg.AppURL)
	setString("FRONTEND_DIR", &cfg.FrontendDir)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("GIN_MODE", &cfg.GinMode)

	// An empty password is meaningful (trust-mode store), so presence wins.
	if configValue, ok := configMap["DB_PASSWORD"]; ok {
		cfg.DBPassword = configValue
	}

	if configValue, ok := configMap["HEALTH_TIMEOUT"]; ok && configValue != "" {
		timeout, err := time.ParseDuration(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for HEALTH_TIMEOUT: %w", err)
		}
		cfg.HealthTimeout = timeout
	}

	return nil
}
