package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/config"
)

type sample struct {
	Name string `yaml:"name" env:"SAMPLE_NAME" env-default:"default-name"`
	Port int    `yaml:"port" env:"SAMPLE_PORT" env-default:"8080"`
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")

	cfg, err := config.Load[sample](context.Background(), "test", "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := config.Load[sample](context.Background(), "test", path)
	require.NoError(t, err)
	assert.Equal(t, "default-name", cfg.Name)
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nport: 9000\n"), 0o600))
	t.Setenv("SAMPLE_PORT", "9100")

	cfg, err := config.Load[sample](context.Background(), "test", path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not-an-int\n"), 0o600))

	_, err := config.Load[sample](context.Background(), "test", path)
	require.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "not-a-number")

	_, err := config.Load[sample](context.Background(), "test", "")
	require.Error(t, err)
}
