package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/propagation"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/store"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/validation"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score a circuit against the reference connectome",
		Long: `Score a circuit against the reference connectome for a target behavior.

The target comes from --behavior, or is inferred by simulating --stimulus
first. Runs over stored circuits are recorded in the run history.

Examples:
  wormquest validate --name my-reflex --behavior backward_movement
  wormquest validate --circuit reflex.yaml --stimulus touch_tail --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			file, _ := cmd.Flags().GetString("circuit")
			name, _ := cmd.Flags().GetString("name")
			behaviorStr, _ := cmd.Flags().GetString("behavior")
			stimulusStr, _ := cmd.Flags().GetString("stimulus")

			if behaviorStr == "" && stimulusStr == "" {
				return fmt.Errorf("either --behavior or --stimulus is required")
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
			validator := validation.NewValidator(validation.Config{
				AccuracyWeight:     cfg.Scoring.AccuracyWeight,
				CompletenessWeight: cfg.Scoring.CompletenessWeight,
				PathwayWeight:      cfg.Scoring.PathwayWeight,
				GradeCutoffs:       validation.DefaultConfig().GradeCutoffs,
			})

			conn, err := connectome.Default()
			if err != nil {
				return fmt.Errorf("load connectome: %w", err)
			}

			var behavior models.Behavior
			var stimulus models.Stimulus
			if stimulusStr != "" {
				stimulus, err = models.ParseStimulus(stimulusStr)
				if err != nil {
					return err
				}
				behavior = engine.Simulate(snap, stimulus).Behavior
			}
			if behaviorStr != "" {
				behavior, err = models.ParseBehavior(behaviorStr)
				if err != nil {
					return err
				}
			}

			result := validator.Validate(snap, behavior, conn)

			// Validation of a stored circuit against a real reference is a
			// graded attempt; keep it in the history.
			if name != "" && result.HasReference {
				if err := recordRun(cmd, name, stimulus, result); err != nil {
					return fmt.Errorf("record run: %w", err)
				}
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			if !result.HasReference {
				fmt.Fprintf(cmd.OutOrStdout(), "No reference circuit exists for %q; nothing to score.\n", behavior)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Behavior: %s\n", result.Behavior)
			fmt.Fprintf(cmd.OutOrStdout(), "Overall: %d (%s)\n", result.OverallScore, result.Grade)
			fmt.Fprintf(cmd.OutOrStdout(), "  Accuracy:     %d\n", result.AccuracyScore)
			fmt.Fprintf(cmd.OutOrStdout(), "  Completeness: %d\n", result.CompletenessScore)
			fmt.Fprintf(cmd.OutOrStdout(), "  Pathways:     %d\n", result.PathwayScore)
			if len(result.Badges) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Badges: %s\n", strings.Join(result.Badges, ", "))
			}
			if len(result.MissingNeurons) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Missing neurons: %s\n", strings.Join(result.MissingNeurons, ", "))
			}
			for _, p := range result.MissingConnections {
				fmt.Fprintf(cmd.OutOrStdout(), "Missing connection: %s -> %s\n", p.From, p.To)
			}
			for _, p := range result.ExtraConnections {
				fmt.Fprintf(cmd.OutOrStdout(), "Extra connection: %s -> %s\n", p.From, p.To)
			}
			for _, f := range result.Feedback {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().String("circuit", "", "Path to a circuit file (JSON or YAML)")
	cmd.Flags().String("name", "", "Name of a stored circuit")
	cmd.Flags().String("behavior", "", "Target behavior (backward_movement, forward_movement, omega_turn)")
	cmd.Flags().String("stimulus", "", "Stimulus to simulate first; its predicted behavior becomes the target")

	return cmd
}

func recordRun(cmd *cobra.Command, name string, stimulus models.Stimulus, result models.ValidationResult) error {
	cfg := loadConfig()
	cs, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer cs.Close()

	_, err = cs.RecordRun(cmd.Context(), store.RunRecord{
		Circuit:      name,
		Stimulus:     stimulus,
		Behavior:     result.Behavior,
		OverallScore: result.OverallScore,
		Grade:        result.Grade,
	})
	return err
}
