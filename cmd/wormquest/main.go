package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/config"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/logging"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/store"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wormquest",
		Short: "Build and validate C. elegans neural circuits",
		Long: `WormQuest simulates signal propagation through student-built neural
circuits and scores them against the reference C. elegans connectome.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", "", "Data directory (default ~/.wormquest)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		slog.SetDefault(logging.NewLogger(cfg.Logging.Level, os.Stderr))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newSimulateCmd(),
		newValidateCmd(),
		newSuggestCmd(),
		newBehaviorsCmd(),
		newSessionCmd(),
		newGraphCmd(),
		newMCPServerCmd(),
		// Circuit editing and persistence
		newCircuitCmd(),
		newListCmd(),
		newImportCmd(),
		newExportCmd(),
		newDeleteCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wormquest version %s\n", version)
		},
	}
}

// loadConfig loads the user config, falling back to defaults when the
// config file is absent or unreadable.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.Default()
	}
	return cfg
}

// dataDir resolves the persistence directory: the --root flag when set,
// otherwise the configured store path.
func dataDir(cmd *cobra.Command, cfg *config.Config) (string, error) {
	root, _ := cmd.Flags().GetString("root")
	if root != "" {
		return root, nil
	}
	return cfg.StoreDir()
}

// openStore opens the circuit store for a command invocation. Callers must
// Close it.
func openStore(cmd *cobra.Command, cfg *config.Config) (store.CircuitStore, error) {
	if cfg.Store.InMemory {
		return store.NewMemoryCircuitStore(), nil
	}
	dir, err := dataDir(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteCircuitStore(dir)
}

// loadSnapshot resolves a circuit from either an inline file (--circuit)
// or a stored name (--name). Exactly one must be provided; the file wins
// when both are set.
func loadSnapshot(cmd *cobra.Command, file, name string) (*circuit.Snapshot, error) {
	var doc *models.CircuitDocument

	switch {
	case file != "":
		var err error
		doc, err = models.ReadCircuitDocument(file)
		if err != nil {
			return nil, fmt.Errorf("read circuit: %w", err)
		}
	case name != "":
		cfg := loadConfig()
		cs, err := openStore(cmd, cfg)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer cs.Close()

		doc, err = cs.LoadCircuit(cmd.Context(), name)
		if err != nil {
			return nil, fmt.Errorf("load circuit: %w", err)
		}
		if doc == nil {
			return nil, fmt.Errorf("circuit %q not found", name)
		}
	default:
		return nil, fmt.Errorf("either --circuit or --name is required")
	}

	c, err := circuit.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("build circuit: %w", err)
	}
	return c.Snapshot(), nil
}
