package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with persistent flags for testing
// subcommands in isolation.
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "wormquest",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", "", "Data directory")
	return rootCmd
}

// isolateHome points HOME at a temp directory so tests never touch the
// real ~/.wormquest. MUST be called by any test that opens a store.
func isolateHome(t *testing.T, tmpDir string) {
	t.Helper()
	tmpHome := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	t.Cleanup(func() {
		os.Setenv("HOME", oldHome)
	})
}

// execute runs a subcommand under a fresh test root and captures stdout.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(sub)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// backwardCircuitYAML is a complete reversal circuit matching the
// reference wiring for backward movement.
const backwardCircuitYAML = `name: reversal
neurons:
  - id: PLML
    type: sensory
  - id: PLMR
    type: sensory
  - id: AVDL
    type: interneuron
  - id: AVAL
    type: command
  - id: AVAR
    type: command
  - id: VA1
    type: motor
  - id: DA1
    type: motor
connections:
  - from: PLML
    to: AVAL
    kind: chemical_excitatory
    weight: 8
  - from: PLMR
    to: AVAR
    kind: chemical_excitatory
    weight: 8
  - from: PLML
    to: AVDL
    kind: chemical_excitatory
    weight: 6
  - from: AVDL
    to: AVAL
    kind: chemical_excitatory
    weight: 7
  - from: AVAL
    to: VA1
    kind: chemical_excitatory
    weight: 10
  - from: AVAR
    to: DA1
    kind: chemical_excitatory
    weight: 10
  - from: AVAL
    to: AVAR
    kind: electrical
    weight: 5
`

// writeBackwardCircuit writes the reversal circuit to a YAML file and
// returns its path.
func writeBackwardCircuit(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "reversal.yaml")
	if err := os.WriteFile(path, []byte(backwardCircuitYAML), 0644); err != nil {
		t.Fatalf("Failed to write circuit file: %v", err)
	}
	return path
}

func TestNewVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
}

func TestNewInitCmd(t *testing.T) {
	cmd := newInitCmd()
	if cmd.Use != "init" {
		t.Errorf("Use = %q, want %q", cmd.Use, "init")
	}
}

func TestNewSimulateCmd(t *testing.T) {
	cmd := newSimulateCmd()
	if cmd.Use != "simulate" {
		t.Errorf("Use = %q, want %q", cmd.Use, "simulate")
	}
	if cmd.Flags().Lookup("stimulus") == nil {
		t.Error("missing --stimulus flag")
	}
	if cmd.Flags().Lookup("circuit") == nil {
		t.Error("missing --circuit flag")
	}
}

func TestNewValidateCmd(t *testing.T) {
	cmd := newValidateCmd()
	if cmd.Use != "validate" {
		t.Errorf("Use = %q, want %q", cmd.Use, "validate")
	}
	if cmd.Flags().Lookup("behavior") == nil {
		t.Error("missing --behavior flag")
	}
}

func TestNewSessionCmd(t *testing.T) {
	cmd := newSessionCmd()
	if cmd.Use != "session" {
		t.Errorf("Use = %q, want %q", cmd.Use, "session")
	}
	if cmd.Flags().Lookup("window") == nil {
		t.Error("missing --window flag")
	}
}

func TestInitCreatesConfig(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	out, err := execute(t, newInitCmd(), "init", "--root", tmpDir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if out == "" {
		t.Error("expected output")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
}
