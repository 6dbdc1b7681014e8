package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored circuits",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg := loadConfig()
			cs, err := openStore(cmd, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer cs.Close()

			names, err := cs.ListCircuits(cmd.Context())
			if err != nil {
				return fmt.Errorf("list circuits: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"circuits": names,
					"count":    len(names),
				})
			}

			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No circuits stored. Create one with 'wormquest circuit new'.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
