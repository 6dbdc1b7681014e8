package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render a circuit as a graph",
		Long: `Render a circuit in DOT (Graphviz) or JSON format.

Examples:
  wormquest graph --name my-reflex
  wormquest graph --circuit reflex.yaml --format json
  wormquest graph --name my-reflex --output reflex.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("circuit")
			name, _ := cmd.Flags().GetString("name")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			snap, err := loadSnapshot(cmd, file, name)
			if err != nil {
				return err
			}

			var rendered []byte
			switch visualization.Format(format) {
			case visualization.FormatDOT:
				rendered = []byte(visualization.RenderDOT(snap))
			case visualization.FormatJSON:
				rendered, err = json.MarshalIndent(visualization.RenderJSON(snap), "", "  ")
				if err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				rendered = append(rendered, '\n')
			default:
				return fmt.Errorf("unknown format %q (want dot or json)", format)
			}

			if output != "" {
				if err := os.WriteFile(output, rendered, 0644); err != nil {
					return fmt.Errorf("write graph: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Graph written to %s\n", output)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}

	cmd.Flags().String("circuit", "", "Path to a circuit file (JSON or YAML)")
	cmd.Flags().String("name", "", "Name of a stored circuit")
	cmd.Flags().String("format", string(visualization.FormatDOT), "Output format: dot or json")
	cmd.Flags().String("output", "", "Write to a file instead of stdout")

	return cmd
}
