// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration. Values come from
// built-in defaults, then an optional YAML file, then environment
// variables. It provides a centralized Config struct used across the
// application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"promptwizard/internal/ai"
)

// DefaultConfigName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultConfigName = "promptwizard"

// defaultDBPassword is the development password production refuses to use.
const defaultDBPassword = "changeme"

// defaultModels is the model each provider uses when none is configured.
var defaultModels = map[string]string{
	ai.ProviderOpenAI:  "gpt-4o",
	ai.ProviderGemini:  "gemini-2.5-flash",
	ai.ProviderClaude:  "claude-sonnet-4-6",
	ai.ProviderMistral: "mistral-large-latest",
}

// providerNames lists the providers config knows how to read.
var providerNames = []string{ai.ProviderOpenAI, ai.ProviderGemini, ai.ProviderClaude, ai.ProviderMistral}

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string // "debug", "info", "warn", "error"; empty picks by Env

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider  string
	AIProviders map[string]ai.ProviderConfig
	AICacheTTL  time.Duration
	AIRateLimit int // requests per client per minute on AI endpoints

	// S3-compatible storage for library backups
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

// newViper returns a viper instance with every default registered. Keys
// map one to one onto upper-case environment variables.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "")

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_user", "promptwizard")
	v.SetDefault("postgres_password", defaultDBPassword)
	v.SetDefault("postgres_db", "promptwizard")

	v.SetDefault("valkey_host", "localhost")
	v.SetDefault("valkey_port", "6379")
	v.SetDefault("valkey_password", "")

	v.SetDefault("ai_provider", ai.ProviderGemini)
	v.SetDefault("ai_cache_ttl", "10m")
	v.SetDefault("ai_rate_limit", 20)
	for _, name := range providerNames {
		v.SetDefault(name+"_api_key", "")
		v.SetDefault(name+"_model", defaultModels[name])
		v.SetDefault(name+"_base_url", "")
	}

	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_bucket", "")

	v.AutomaticEnv()
	return v
}

// Load reads configuration. cfgFile names an explicit YAML file; when empty,
// ./promptwizard.yaml is used if present. Returns an error if the file is
// unreadable or critical values are missing in production mode.
func Load(cfgFile string) (*Config, error) {
	v := newViper()

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{
		Host:     v.GetString("app_host"),
		Port:     v.GetString("app_port"),
		Env:      v.GetString("app_env"),
		LogLevel: strings.ToLower(v.GetString("log_level")),

		DBHost:     v.GetString("postgres_host"),
		DBPort:     v.GetString("postgres_port"),
		DBUser:     v.GetString("postgres_user"),
		DBPassword: v.GetString("postgres_password"),
		DBName:     v.GetString("postgres_db"),

		ValkeyHost:     v.GetString("valkey_host"),
		ValkeyPort:     v.GetString("valkey_port"),
		ValkeyPassword: v.GetString("valkey_password"),

		AIProvider:  strings.ToLower(v.GetString("ai_provider")),
		AIProviders: make(map[string]ai.ProviderConfig, len(providerNames)),
		AICacheTTL:  v.GetDuration("ai_cache_ttl"),
		AIRateLimit: v.GetInt("ai_rate_limit"),

		S3Endpoint:  v.GetString("s3_endpoint"),
		S3Region:    v.GetString("s3_region"),
		S3AccessKey: v.GetString("s3_access_key"),
		S3SecretKey: v.GetString("s3_secret_key"),
		S3Bucket:    v.GetString("s3_bucket"),
	}

	for _, name := range providerNames {
		cfg.AIProviders[name] = ai.ProviderConfig{
			APIKey:  v.GetString(name + "_api_key"),
			Model:   v.GetString(name + "_model"),
			BaseURL: v.GetString(name + "_base_url"),
		}
	}

	if cfg.AIRateLimit <= 0 {
		return nil, fmt.Errorf("AI_RATE_LIMIT must be positive, got %d", cfg.AIRateLimit)
	}
	if cfg.AICacheTTL <= 0 {
		return nil, fmt.Errorf("AI_CACHE_TTL must be positive, got %s", cfg.AICacheTTL)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LogLevel to a slog level. Unset or unknown values fall
// back to debug in development and info everywhere else.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if c.IsDev() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// StorageConfigured reports whether backups can be uploaded.
func (c *Config) StorageConfigured() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}
