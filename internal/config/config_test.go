package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	config := Default()

	// Engine defaults
	if config.Engine.InitialActivation != 10 {
		t.Errorf("expected InitialActivation 10, got %f", config.Engine.InitialActivation)
	}
	if config.Engine.ActivationThreshold != 5 {
		t.Errorf("expected ActivationThreshold 5, got %f", config.Engine.ActivationThreshold)
	}
	if config.Engine.DequeueBudgetFactor != 2 {
		t.Errorf("expected DequeueBudgetFactor 2, got %d", config.Engine.DequeueBudgetFactor)
	}

	// Scoring defaults
	if config.Scoring.AccuracyWeight != 0.4 {
		t.Errorf("expected AccuracyWeight 0.4, got %f", config.Scoring.AccuracyWeight)
	}
	if config.Scoring.CompletenessWeight != 0.4 {
		t.Errorf("expected CompletenessWeight 0.4, got %f", config.Scoring.CompletenessWeight)
	}
	if config.Scoring.PathwayWeight != 0.2 {
		t.Errorf("expected PathwayWeight 0.2, got %f", config.Scoring.PathwayWeight)
	}

	// Session defaults
	if config.Session.DebounceWindow != 300*time.Millisecond {
		t.Errorf("expected DebounceWindow 300ms, got %v", config.Session.DebounceWindow)
	}

	// Logging defaults
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  initial_activation: 12
  activation_threshold: 6
  dequeue_budget_factor: 3

session:
  debounce_window: 500ms

store:
  path: /tmp/wormquest-test
  in_memory: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Engine.InitialActivation != 12 {
		t.Errorf("expected InitialActivation 12, got %f", config.Engine.InitialActivation)
	}
	if config.Engine.ActivationThreshold != 6 {
		t.Errorf("expected ActivationThreshold 6, got %f", config.Engine.ActivationThreshold)
	}
	if config.Engine.DequeueBudgetFactor != 3 {
		t.Errorf("expected DequeueBudgetFactor 3, got %d", config.Engine.DequeueBudgetFactor)
	}
	if config.Session.DebounceWindow != 500*time.Millisecond {
		t.Errorf("expected DebounceWindow 500ms, got %v", config.Session.DebounceWindow)
	}
	if config.Store.Path != "/tmp/wormquest-test" {
		t.Errorf("expected Store.Path '/tmp/wormquest-test', got '%s'", config.Store.Path)
	}
	if !config.Store.InMemory {
		t.Error("expected Store.InMemory to be true")
	}

	// Fields absent from the file keep their defaults.
	if config.Scoring.AccuracyWeight != 0.4 {
		t.Errorf("expected default AccuracyWeight 0.4, got %f", config.Scoring.AccuracyWeight)
	}
}

func TestEnvOverrides(t *testing.T) {
	origThreshold := os.Getenv("WORMQUEST_ACTIVATION_THRESHOLD")
	origWindow := os.Getenv("WORMQUEST_DEBOUNCE_WINDOW")
	origInMemory := os.Getenv("WORMQUEST_STORE_IN_MEMORY")
	defer func() {
		os.Setenv("WORMQUEST_ACTIVATION_THRESHOLD", origThreshold)
		os.Setenv("WORMQUEST_DEBOUNCE_WINDOW", origWindow)
		os.Setenv("WORMQUEST_STORE_IN_MEMORY", origInMemory)
	}()

	os.Setenv("WORMQUEST_ACTIVATION_THRESHOLD", "7.5")
	os.Setenv("WORMQUEST_DEBOUNCE_WINDOW", "1s")
	os.Setenv("WORMQUEST_STORE_IN_MEMORY", "true")

	config := Default()
	applyEnvOverrides(config)

	if config.Engine.ActivationThreshold != 7.5 {
		t.Errorf("expected ActivationThreshold 7.5, got %f", config.Engine.ActivationThreshold)
	}
	if config.Session.DebounceWindow != time.Second {
		t.Errorf("expected DebounceWindow 1s, got %v", config.Session.DebounceWindow)
	}
	if !config.Store.InMemory {
		t.Error("expected Store.InMemory to be true")
	}
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	origLogLevel := os.Getenv("WORMQUEST_LOG_LEVEL")
	defer os.Setenv("WORMQUEST_LOG_LEVEL", origLogLevel)

	os.Setenv("WORMQUEST_LOG_LEVEL", "debug")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_InvalidEngine(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero initial activation", func(c *Config) { c.Engine.InitialActivation = 0 }},
		{"negative threshold", func(c *Config) { c.Engine.ActivationThreshold = -1 }},
		{"zero budget factor", func(c *Config) { c.Engine.DequeueBudgetFactor = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_InvalidScoring(t *testing.T) {
	config := Default()
	config.Scoring.AccuracyWeight = -0.1
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for negative weight")
	}

	config = Default()
	config.Scoring.AccuracyWeight = 0
	config.Scoring.CompletenessWeight = 0
	config.Scoring.PathwayWeight = 0
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for all-zero weights")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	config := Default()
	config.Logging.Level = "verbose"
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for invalid log level")
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestStoreDir(t *testing.T) {
	config := Default()
	config.Store.Path = "/data/worms"

	dir, err := config.StoreDir()
	if err != nil {
		t.Fatalf("StoreDir: %v", err)
	}
	if dir != "/data/worms" {
		t.Errorf("StoreDir = %q, want explicit path", dir)
	}

	config.Store.Path = ""
	dir, err = config.StoreDir()
	if err != nil {
		t.Fatalf("StoreDir (default): %v", err)
	}
	if filepath.Base(dir) != ".wormquest" {
		t.Errorf("default StoreDir = %q, want a .wormquest directory", dir)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
engine:
  initial_activation: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
