package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the wormquest data directory",
		Long: `Create the data directory and a starter config.yaml.

By default circuits and run history live under ~/.wormquest. Pass --root
to place them elsewhere, e.g. inside a classroom workspace.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg := loadConfig()
			dir, err := dataDir(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve data directory: %w", err)
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}

			configPath := filepath.Join(dir, "config.yaml")
			created := false
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				content := fmt.Sprintf(`# WormQuest configuration
# created: %s

engine:
  initial_activation: 10
  activation_threshold: 5
  dequeue_budget_factor: 2

scoring:
  accuracy_weight: 0.4
  completeness_weight: 0.4
  pathway_weight: 0.2

session:
  debounce_window: 300ms

logging:
  level: info
`, time.Now().Format(time.RFC3339))
				if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("write config.yaml: %w", err)
				}
				created = true
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status":         "initialized",
					"dir":            dir,
					"config_created": created,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized wormquest in %s\n", dir)
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			}
			return nil
		},
	}
}
