package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the process-wide settings read once at cold start.
// It is immutable after Load and passed into the handler explicitly.
type Config struct {
	// LogBucket is the S3 bucket receiving audit log objects.
	LogBucket string `yaml:"log_bucket"`
	// InstanceID is the default EC2 instance to act on when the alarm
	// carries no InstanceId dimension.
	InstanceID string `yaml:"instance_id"`
	// Region is the ambient AWS region, used as a fallback when the alarm
	// message carries no region of its own.
	Region string `yaml:"region"`
	// LogLevel is the minimum level for structured logs (debug, info, ...).
	LogLevel string `yaml:"log_level"`
}

const (
	// UnknownInstanceID marks an unresolved target instance. The handler
	// never calls EC2 for it.
	UnknownInstanceID = "unknown"

	// Environment variable names. The Lambda console sets these; the local
	// CLI may rely on a settings file instead.
	envLogBucket  = "LOG_BUCKET"
	envInstanceID = "INSTANCE_ID"
	envRegion     = "AWS_REGION"
	envLogLevel   = "LOG_LEVEL"
)

// ErrLogBucketRequired is returned when no destination bucket is configured.
var ErrLogBucketRequired = errors.New("log bucket must be provided")

// FromEnv builds configuration from environment variables only.
func FromEnv() (*Config, error) {
	return Load("")
}

// Load reads configuration from an optional YAML settings file and overlays
// environment variables on top. Environment always wins, so the deployed
// Lambda behaves identically with or without a file present.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}

		if err := yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	overlayEnv(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and applies defaults.
func Validate(cfg *Config) error {
	if cfg.LogBucket == "" {
		return ErrLogBucketRequired
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID = UnknownInstanceID
	}

	return nil
}

// overlayEnv copies non-empty environment values over the file-provided ones.
func overlayEnv(cfg *Config) {
	if v := os.Getenv(envLogBucket); v != "" {
		cfg.LogBucket = v
	}

	if v := os.Getenv(envInstanceID); v != "" {
		cfg.InstanceID = v
	}

	if v := os.Getenv(envRegion); v != "" {
		cfg.Region = v
	}

	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
