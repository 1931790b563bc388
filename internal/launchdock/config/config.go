// Package config loads the launcher plugin settings.
//
// Settings come from an optional YAML file, validated against the embedded
// JSON Schema, and are then overridden by LAUNCHDOCK_* environment variables.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/bdobrica/launchdock/common/environment"
	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "launchdock://config.schema.json"

// Config is the full plugin configuration.
type Config struct {
	Command     string        `yaml:"command"`
	AllSuffix   string        `yaml:"all_suffix"`
	DockerHost  string        `yaml:"docker_host"`
	Icon        string        `yaml:"icon"`
	Terminal    []string      `yaml:"terminal"`
	StopTimeout time.Duration `yaml:"stop_timeout"`
	Refresh     Refresh       `yaml:"refresh"`
	Log         Log           `yaml:"log"`
	Audit       Audit         `yaml:"audit"`
	Metrics     Metrics       `yaml:"metrics"`
}

// Refresh controls how the container listing is retried and refreshed.
type Refresh struct {
	Attempts     int           `yaml:"attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	// Interval enables a background refresh loop when positive.
	Interval time.Duration `yaml:"interval"`
}

// Log selects the log level, format and destination.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File is appended to; empty means stderr.
	File string `yaml:"file"`
}

// Audit enables the action audit trail when Path is set.
type Audit struct {
	Path string `yaml:"path"`
}

// Metrics enables the Prometheus listener when Addr is set.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Command:     "dps",
		AllSuffix:   "-all",
		Icon:        lifecycle.DefaultIcon,
		Terminal:    []string{"x-terminal-emulator", "-e"},
		StopTimeout: runtime.DefaultStopTimeout,
		Refresh: Refresh{
			Attempts:     3,
			InitialDelay: 200 * time.Millisecond,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in that order. An empty path skips the file; a path that does
// not exist is logged and skipped as well.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("config: file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := Apply(&cfg, data); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply validates a YAML document and decodes it over cfg. Fields absent
// from the document keep their current values.
func Apply(cfg *Config, data []byte) error {
	if err := validateDocument(data); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// validateDocument checks the raw document against the embedded schema.
// The YAML tree is re-encoded as JSON so the validator sees JSON types.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}

	schema, err := jsonschema.CompileString(schemaURL, schemaJSON)
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Command = environment.StringOr(environment.Name("COMMAND"), cfg.Command)
	cfg.AllSuffix = environment.StringOr(environment.Name("ALL_SUFFIX"), cfg.AllSuffix)
	cfg.DockerHost = environment.StringOr(environment.Name("DOCKER_HOST"), cfg.DockerHost)
	cfg.Icon = environment.StringOr(environment.Name("ICON"), cfg.Icon)
	cfg.Terminal = environment.FieldsOr(environment.Name("TERMINAL"), cfg.Terminal)
	cfg.StopTimeout = environment.DurationOr(environment.Name("STOP_TIMEOUT"), cfg.StopTimeout)
	cfg.Refresh.Attempts = environment.IntOr(environment.Name("REFRESH_ATTEMPTS"), cfg.Refresh.Attempts)
	cfg.Refresh.InitialDelay = environment.DurationOr(environment.Name("REFRESH_INITIAL_DELAY"), cfg.Refresh.InitialDelay)
	cfg.Refresh.Interval = environment.DurationOr(environment.Name("REFRESH_INTERVAL"), cfg.Refresh.Interval)
	cfg.Log.Level = environment.StringOr(environment.Name("LOG_LEVEL"), cfg.Log.Level)
	cfg.Log.Format = environment.StringOr(environment.Name("LOG_FORMAT"), cfg.Log.Format)
	cfg.Log.File = environment.StringOr(environment.Name("LOG_FILE"), cfg.Log.File)
	cfg.Audit.Path = environment.StringOr(environment.Name("AUDIT_PATH"), cfg.Audit.Path)
	cfg.Metrics.Addr = environment.StringOr(environment.Name("METRICS_ADDR"), cfg.Metrics.Addr)
}

// Validate checks the merged configuration. The schema covers the file;
// this covers values that may also arrive from the environment.
func (c *Config) Validate() error {
	if c.Command == "" || strings.ContainsAny(c.Command, " \t") {
		return fmt.Errorf("command must be a single non-empty word, got %q", c.Command)
	}
	if c.AllSuffix == "" || strings.ContainsAny(c.AllSuffix, " \t") {
		return fmt.Errorf("all_suffix must be a single non-empty word, got %q", c.AllSuffix)
	}
	if c.StopTimeout < 0 {
		return fmt.Errorf("stop_timeout must not be negative")
	}
	if c.Refresh.Attempts < 1 {
		return fmt.Errorf("refresh.attempts must be at least 1, got %d", c.Refresh.Attempts)
	}
	if c.Refresh.InitialDelay < 0 || c.Refresh.Interval < 0 {
		return fmt.Errorf("refresh delays must not be negative")
	}
	return nil
}
