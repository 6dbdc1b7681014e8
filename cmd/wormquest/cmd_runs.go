package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [circuit]",
		Short: "Show validation run history",
		Long: `Show recorded validation runs, newest first.

With a circuit name, only that circuit's runs are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			cfg := loadConfig()
			cs, err := openStore(cmd, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer cs.Close()

			runs, err := cs.ListRuns(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %-18s score %3d (%s)\n",
					r.CreatedAt.Format(time.RFC3339), r.Circuit, r.Behavior, r.OverallScore, r.Grade)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Show at most this many runs (0 = all)")

	return cmd
}
