// Package config provides unified configuration loading for wormquest.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains all wormquest configuration settings.
type Config struct {
	// Engine contains signal propagation settings.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Scoring contains validation weight settings.
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`

	// Session contains live-editing session settings.
	Session SessionConfig `json:"session" yaml:"session"`

	// Store contains persistence settings.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// EngineConfig configures the stimulus propagation engine.
type EngineConfig struct {
	// InitialActivation is the activation level assigned to entry neurons.
	InitialActivation float64 `json:"initial_activation" yaml:"initial_activation"`

	// ActivationThreshold is the accumulated level at which a neuron fires.
	ActivationThreshold float64 `json:"activation_threshold" yaml:"activation_threshold"`

	// DequeueBudgetFactor bounds propagation work to factor * neuron count.
	DequeueBudgetFactor int `json:"dequeue_budget_factor" yaml:"dequeue_budget_factor"`
}

// ScoringConfig configures how validation components combine into the
// overall score. Weights are normalized at use if they do not sum to 1.
type ScoringConfig struct {
	AccuracyWeight     float64 `json:"accuracy_weight" yaml:"accuracy_weight"`
	CompletenessWeight float64 `json:"completeness_weight" yaml:"completeness_weight"`
	PathwayWeight      float64 `json:"pathway_weight" yaml:"pathway_weight"`
}

// SessionConfig configures the debounced validation scheduler.
type SessionConfig struct {
	// DebounceWindow is the quiescence period after the last edit before
	// a validation run fires.
	DebounceWindow time.Duration `json:"debounce_window" yaml:"debounce_window"`
}

// StoreConfig configures circuit persistence.
type StoreConfig struct {
	// Path is the directory holding the SQLite database. Empty means
	// ~/.wormquest.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// InMemory selects the non-persistent store. Useful for tests and
	// throwaway sessions.
	InMemory bool `json:"in_memory" yaml:"in_memory"`
}

// LoggingConfig configures wormquest's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" additionally records per-run propagation detail to
	// .wormquest/runs.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			InitialActivation:   10,
			ActivationThreshold: 5,
			DequeueBudgetFactor: 2,
		},
		Scoring: ScoringConfig{
			AccuracyWeight:     0.4,
			CompletenessWeight: 0.4,
			PathwayWeight:      0.2,
		},
		Session: SessionConfig{
			DebounceWindow: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.wormquest/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".wormquest", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Engine.InitialActivation <= 0 {
		return fmt.Errorf("initial_activation must be positive, got %f", c.Engine.InitialActivation)
	}

	if c.Engine.ActivationThreshold <= 0 {
		return fmt.Errorf("activation_threshold must be positive, got %f", c.Engine.ActivationThreshold)
	}

	if c.Engine.DequeueBudgetFactor < 1 {
		return fmt.Errorf("dequeue_budget_factor must be at least 1, got %d", c.Engine.DequeueBudgetFactor)
	}

	for name, w := range map[string]float64{
		"accuracy_weight":     c.Scoring.AccuracyWeight,
		"completeness_weight": c.Scoring.CompletenessWeight,
		"pathway_weight":      c.Scoring.PathwayWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}
	if c.Scoring.AccuracyWeight+c.Scoring.CompletenessWeight+c.Scoring.PathwayWeight == 0 {
		return fmt.Errorf("scoring weights must not all be zero")
	}

	if c.Session.DebounceWindow < 0 {
		return fmt.Errorf("debounce_window must be non-negative, got %v", c.Session.DebounceWindow)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// StoreDir resolves the directory for persistent state, creating nothing.
func (c *Config) StoreDir() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".wormquest"), nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("WORMQUEST_INITIAL_ACTIVATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Engine.InitialActivation = f
		}
	}

	if v := os.Getenv("WORMQUEST_ACTIVATION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Engine.ActivationThreshold = f
		}
	}

	if v := os.Getenv("WORMQUEST_DEQUEUE_BUDGET_FACTOR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.DequeueBudgetFactor = n
		}
	}

	if v := os.Getenv("WORMQUEST_DEBOUNCE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Session.DebounceWindow = d
		}
	}

	if v := os.Getenv("WORMQUEST_STORE_PATH"); v != "" {
		config.Store.Path = v
	}

	if v := os.Getenv("WORMQUEST_STORE_IN_MEMORY"); v != "" {
		config.Store.InMemory = v == "true" || v == "1"
	}

	if v := os.Getenv("WORMQUEST_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
