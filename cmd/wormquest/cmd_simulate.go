package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/propagation"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Propagate a stimulus through a circuit",
		Long: `Propagate a stimulus through a circuit and classify the resulting
behavior.

The circuit comes from either a file (--circuit, JSON or YAML) or a
stored circuit (--name). Stimuli: touch_head, touch_tail, smell_food, none.

Examples:
  wormquest simulate --circuit reflex.yaml --stimulus touch_tail
  wormquest simulate --name my-reflex --stimulus touch_head --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			file, _ := cmd.Flags().GetString("circuit")
			name, _ := cmd.Flags().GetString("name")
			stimulusStr, _ := cmd.Flags().GetString("stimulus")

			stimulus, err := models.ParseStimulus(stimulusStr)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(cmd, file, name)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			engine := propagation.NewEngine(propagation.Config{
				InitialActivation:   cfg.Engine.InitialActivation,
				ActivationThreshold: cfg.Engine.ActivationThreshold,
				DequeueBudgetFactor: cfg.Engine.DequeueBudgetFactor,
			})

			result := engine.Simulate(snap, stimulus)

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stimulus: %s\n", stimulus)
			fmt.Fprintf(cmd.OutOrStdout(), "Behavior: %s\n", result.Behavior)
			fmt.Fprintf(cmd.OutOrStdout(), "Active neurons (%d): %s\n", len(result.ActiveNeurons), strings.Join(result.ActiveNeurons, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "Signal path: %s\n", strings.Join(result.SignalPath, " -> "))
			if result.Truncated {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: propagation budget exhausted; result is best-effort.")
			}
			return nil
		},
	}

	cmd.Flags().String("circuit", "", "Path to a circuit file (JSON or YAML)")
	cmd.Flags().String("name", "", "Name of a stored circuit")
	cmd.Flags().String("stimulus", "", "Stimulus to apply (touch_head, touch_tail, smell_food, none)")
	cmd.MarkFlagRequired("stimulus")

	return cmd
}
