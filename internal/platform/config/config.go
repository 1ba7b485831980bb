package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment     string `yaml:"environment"`
	LogLevel        string `yaml:"log_level"`
	TraceLevel      string `yaml:"trace_level"`
	StrictYtdYear   bool   `yaml:"strict_ytd_year"`
	Workers         int    `yaml:"workers"`
	MetricsEnabled  bool   `yaml:"metrics_enabled"`
	MetricsTextfile string `yaml:"metrics_textfile"`
	ProrationPolicy string `yaml:"proration_policy"`
}

// Load reads PAYCALC_* environment variables and, when PAYCALC_CONFIG names
// a YAML file, overlays the keys present in that file.
func Load() (Config, error) {
	cfg := Config{
		Environment:     getEnv("PAYCALC_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		TraceLevel:      getEnv("PAYCALC_TRACE_LEVEL", "audit"),
		StrictYtdYear:   getEnvBool("PAYCALC_STRICT_YTD_YEAR", false),
		Workers:         getEnvInt("PAYCALC_WORKERS", 4),
		MetricsEnabled:  getEnvBool("PAYCALC_METRICS_ENABLED", true),
		MetricsTextfile: getEnv("PAYCALC_METRICS_TEXTFILE", ""),
		ProrationPolicy: getEnv("PAYCALC_PRORATION", "calendar_days"),
	}
	if path := os.Getenv("PAYCALC_CONFIG"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch strings.ToLower(c.TraceLevel) {
	case "none", "audit", "debug":
	default:
		return fmt.Errorf("PAYCALC_TRACE_LEVEL must be one of none, audit, debug")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.ProrationPolicy) {
	case "calendar_days", "workdays", "thirty_day_month":
	default:
		return fmt.Errorf("PAYCALC_PRORATION must be one of calendar_days, workdays, thirty_day_month")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("PAYCALC_WORKERS must be positive")
	}
	if c.Environment == "production" && !c.StrictYtdYear {
		return fmt.Errorf("PAYCALC_STRICT_YTD_YEAR must be enabled in production")
	}
	return nil
}
