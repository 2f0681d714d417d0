package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloudstub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, time.Hour, time.Duration(cfg.IngestionDelay))
	assert.Empty(t, cfg.Fixtures)
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
listen: "0.0.0.0:9000"
ingestionDelay: 15m
fixtures:
  - fixtures/
  - extra.yaml
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.IngestionDelay))
	assert.Equal(t, []string{"fixtures/", "extra.yaml"}, cfg.Fixtures)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `listen: ":8080"`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, time.Hour, time.Duration(cfg.IngestionDelay))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Load(writeConfig(t, "listen: [broken"))
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = Load(writeConfig(t, "ingestionDelay: soon"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}
