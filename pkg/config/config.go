package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cloudstub/cloudstub/pkg/logs"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// DefaultListen is the address the emulator binds when none is configured.
const DefaultListen = "127.0.0.1:4566"

// Duration wraps time.Duration so YAML configs can say "1h" or "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config is the emulator's file configuration. CLI flags override any
// field set here.
type Config struct {
	// Listen is the HTTP bind address.
	Listen string `yaml:"listen,omitempty"`

	// IngestionDelay is the simulated visibility lag between event
	// ingestion and stream metadata updates.
	IngestionDelay Duration `yaml:"ingestionDelay,omitempty"`

	// Fixtures are snapshot files or directories loaded at startup,
	// in order.
	Fixtures []string `yaml:"fixtures,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Listen:         DefaultListen,
		IngestionDelay: Duration(logs.DefaultIngestionDelay),
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.IngestionDelay <= 0 {
		cfg.IngestionDelay = Duration(logs.DefaultIngestionDelay)
	}
	return cfg, nil
}
