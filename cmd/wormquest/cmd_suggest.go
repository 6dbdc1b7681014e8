package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/suggest"
)

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest next steps for a circuit under construction",
		Long: `Suggest reference connections the circuit is ready for, plus candidate
pathways to pursue.

With --behavior, connection suggestions target that behavior's reference.
Pathway suggestions always span the whole connectome.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			file, _ := cmd.Flags().GetString("circuit")
			name, _ := cmd.Flags().GetString("name")
			behaviorStr, _ := cmd.Flags().GetString("behavior")

			snap, err := loadSnapshot(cmd, file, name)
			if err != nil {
				return err
			}

			conn, err := connectome.Default()
			if err != nil {
				return fmt.Errorf("load connectome: %w", err)
			}

			connections := []models.ConnectionSuggestion{}
			if behaviorStr != "" {
				behavior, err := models.ParseBehavior(behaviorStr)
				if err != nil {
					return err
				}
				connections = suggest.RecommendConnections(snap, behavior, conn)
			}
			pathways := suggest.SuggestPathways(snap, conn)

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"connections": connections,
					"pathways":    pathways,
				})
			}

			if len(connections) == 0 && len(pathways) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions; the circuit covers everything it can reach.")
				return nil
			}

			for _, c := range connections {
				fmt.Fprintf(cmd.OutOrStdout(), "Connect %s -> %s (%s, weight %.1f)\n",
					c.From, c.To, c.Kind, c.Weight)
			}
			for _, p := range pathways {
				fmt.Fprintf(cmd.OutOrStdout(), "Pathway %s: add %s\n",
					p.PathwayName, strings.Join(p.MissingNeurons, ", "))
			}
			return nil
		},
	}

	cmd.Flags().String("circuit", "", "Path to a circuit file (JSON or YAML)")
	cmd.Flags().String("name", "", "Name of a stored circuit")
	cmd.Flags().String("behavior", "", "Target behavior for connection suggestions")

	return cmd
}
