package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and defaulting for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing bucket.
	cfg := new(Config)

	err := Validate(cfg)
	require.ErrorIs(t, err, ErrLogBucketRequired)

	// Bucket set, instance defaults to unknown.
	cfg = &Config{LogBucket: "audit-logs"}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, UnknownInstanceID, cfg.InstanceID)

	// Explicit instance survives validation.
	cfg = &Config{
		LogBucket:  "audit-logs",
		InstanceID: "i-0123456789abcdef0",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, "i-0123456789abcdef0", cfg.InstanceID)
}

// TestFromEnv ensures environment variables populate the configuration.
// No t.Parallel: t.Setenv mutates process state.
func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_BUCKET", "audit-logs")
	t.Setenv("INSTANCE_ID", "i-0fabfab0fabfab0fa")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "audit-logs", cfg.LogBucket)
	require.Equal(t, "i-0fabfab0fabfab0fa", cfg.InstanceID)
	require.Equal(t, "eu-west-1", cfg.Region)
	require.Equal(t, "debug", cfg.LogLevel)
}

// TestLoadOverlay ensures environment values override file-provided ones.
func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	contents := []byte("log_bucket: file-bucket\ninstance_id: i-file\nregion: us-east-1\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv("LOG_BUCKET", "env-bucket")
	t.Setenv("INSTANCE_ID", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-bucket", cfg.LogBucket)
	require.Equal(t, "i-file", cfg.InstanceID)
	require.Equal(t, "us-east-1", cfg.Region)
}

// TestLoadMissingFile ensures a bad settings path surfaces as an error.
func TestLoadMissingFile(t *testing.T) {
	t.Setenv("LOG_BUCKET", "env-bucket")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
