package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
)

func newBehaviorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "behaviors",
		Short: "List the behaviors the reference connectome can validate",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			conn, err := connectome.Default()
			if err != nil {
				return fmt.Errorf("load connectome: %w", err)
			}

			behaviors := conn.Behaviors()

			if jsonOut {
				out := make([]map[string]interface{}, 0, len(behaviors))
				for _, b := range behaviors {
					ref, _ := conn.ForBehavior(b)
					out = append(out, map[string]interface{}{
						"behavior":             string(b),
						"stimulus":             string(ref.Stimulus),
						"required_neurons":     ref.RequiredNeuronIDs(),
						"required_connections": len(ref.RequiredConnections),
						"pathways":             len(ref.Pathways),
					})
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"version":   conn.Version,
					"behaviors": out,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Connectome version %s\n\n", conn.Version)
			for _, b := range behaviors {
				ref, _ := conn.ForBehavior(b)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (stimulus: %s)\n", b, ref.Stimulus)
				fmt.Fprintf(cmd.OutOrStdout(), "  Required neurons: %s\n", strings.Join(ref.RequiredNeuronIDs(), ", "))
				fmt.Fprintf(cmd.OutOrStdout(), "  Required connections: %d\n", len(ref.RequiredConnections))
				for _, p := range ref.Pathways {
					fmt.Fprintf(cmd.OutOrStdout(), "  Pathway %s: %s\n", p.Name, strings.Join(p.Neurons, " -> "))
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
