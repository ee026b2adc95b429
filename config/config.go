// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/dongbac/feedback-backend/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// StorageConfig holds paths and limits for the feedback log and the upload
// directory.
type StorageConfig struct {
	LogFile        string `mapstructure:"LOG_FILE" yaml:"log_file"`
	UploadDir      string `mapstructure:"UPLOAD_DIR" yaml:"upload_dir"`
	MaxUploadFiles int    `mapstructure:"MAX_UPLOAD_FILES" yaml:"max_upload_files"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES" yaml:"max_upload_bytes"`
}

// SMTPConfig holds configuration for the outbound notification mail relay.
// Username and Password are both required for delivery; if either is empty
// the notifier runs disabled.
type SMTPConfig struct {
	Host           string `mapstructure:"HOST" yaml:"host"`
	Port           int    `mapstructure:"PORT" yaml:"port"`
	Username       string `mapstructure:"USERNAME" yaml:"username"`
	Password       string `mapstructure:"PASSWORD" yaml:"password"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// Enabled reports whether notification delivery is configured. Missing
// credentials mean "notification disabled", not a failure.
func (c *SMTPConfig) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

// Config aggregates all application configuration sections.
type Config struct {
	Server  ServerConfig  `mapstructure:"SERVER" yaml:"server"`
	Storage StorageConfig `mapstructure:"STORAGE" yaml:"storage"`
	SMTP    SMTPConfig    `mapstructure:"SMTP" yaml:"smtp"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("STORAGE.LOG_FILE", "data/feedback.csv")
	v.SetDefault("STORAGE.UPLOAD_DIR", "data/uploads")
	v.SetDefault("STORAGE.MAX_UPLOAD_FILES", 10)
	v.SetDefault("STORAGE.MAX_UPLOAD_BYTES", int64(10*1024*1024))
	v.SetDefault("SMTP.HOST", "smtp.gmail.com")
	v.SetDefault("SMTP.PORT", 587)
	v.SetDefault("SMTP.USERNAME", "")
	v.SetDefault("SMTP.PASSWORD", "")
	v.SetDefault("SMTP.TIMEOUT_SECONDS", 10)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		// Storage config
		{"STORAGE.LOG_FILE", "FEEDBACK_LOG_FILE"},
		{"STORAGE.UPLOAD_DIR", "FEEDBACK_UPLOAD_DIR"},
		{"STORAGE.MAX_UPLOAD_FILES", "FEEDBACK_MAX_UPLOAD_FILES"},
		{"STORAGE.MAX_UPLOAD_BYTES", "FEEDBACK_MAX_UPLOAD_BYTES"},
		// SMTP config
		{"SMTP.HOST", "FEEDBACK_SMTP_HOST"},
		{"SMTP.PORT", "FEEDBACK_SMTP_PORT"},
		{"SMTP.USERNAME", "FEEDBACK_SMTP_USER"},
		{"SMTP.PASSWORD", "FEEDBACK_SMTP_PASS"},
		{"SMTP.TIMEOUT_SECONDS", "FEEDBACK_SMTP_TIMEOUT_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"log_file", v.GetString("STORAGE.LOG_FILE"),
		"upload_dir", v.GetString("STORAGE.UPLOAD_DIR"),
		"smtp_host", v.GetString("SMTP.HOST"),
		"smtp_user", logger.MaskEmail(v.GetString("SMTP.USERNAME")),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if cfg.Storage.LogFile == "" {
		return fmt.Errorf("feedback log file path is required")
	}
	if cfg.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if cfg.Storage.MaxUploadFiles <= 0 {
		return fmt.Errorf("max upload files must be positive")
	}
	if cfg.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	return validateSMTPConfig(&cfg.SMTP, log)
}

// validateSMTPConfig validates the mail relay configuration. Incomplete
// credentials disable notification with a warning rather than failing
// startup: persistence is authoritative, notification is advisory.
func validateSMTPConfig(cfg *SMTPConfig, log *zap.SugaredLogger) error {
	if !cfg.Enabled() {
		log.Warn("SMTP credentials not set, notification delivery is disabled")
		return nil
	}

	if cfg.Host == "" {
		return fmt.Errorf("smtp host is required when credentials are set")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("smtp port %d is out of range", cfg.Port)
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("smtp timeout must be positive")
	}

	return nil
}
