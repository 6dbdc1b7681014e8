package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/logging"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/propagation"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/session"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/validation"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Edit a stored circuit with live validation",
		Long: `Open a live-editing session over a stored circuit. Edit commands are
read line by line from stdin; after each burst of edits settles, the
circuit is re-simulated and re-scored automatically. A new edit while a
run is pending supersedes it, so only the latest circuit state is graded.

Edit commands:
  add <id> <type>                    add a neuron
  connect <from> <to> <kind> <w>     add a connection
  disconnect <from> <to>             remove a connection
  remove <id>                        remove a neuron and its connections
  quit                               save and exit (EOF works too)

The circuit is saved back to the store on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			stimulusStr, _ := cmd.Flags().GetString("stimulus")
			windowStr, _ := cmd.Flags().GetString("window")

			stimulus, err := models.ParseStimulus(stimulusStr)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			window := cfg.Session.DebounceWindow
			if windowStr != "" {
				window, err = time.ParseDuration(windowStr)
				if err != nil {
					return fmt.Errorf("invalid window %q", windowStr)
				}
			}

			cs, err := openStore(cmd, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer cs.Close()

			doc, err := cs.LoadCircuit(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("load circuit: %w", err)
			}
			if doc == nil {
				return fmt.Errorf("circuit %q not found", name)
			}
			c, err := circuit.FromDocument(doc)
			if err != nil {
				return fmt.Errorf("build circuit: %w", err)
			}

			conn, err := connectome.Default()
			if err != nil {
				return fmt.Errorf("load connectome: %w", err)
			}

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

			dir, err := dataDir(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve data directory: %w", err)
			}
			runLog := logging.NewRunLogger(dir, cfg.Logging.Level)
			defer runLog.Close()

			// Fired runs print from the scheduler's timer goroutine.
			var outMu sync.Mutex
			out := cmd.OutOrStdout()

			sched := session.NewScheduler(window, func(snap *circuit.Snapshot) {
				sim := engine.Simulate(snap, stimulus)
				result := validator.Validate(snap, sim.Behavior, conn)

				outMu.Lock()
				defer outMu.Unlock()
				if result.HasReference {
					fmt.Fprintf(out, "[run] behavior=%s score=%d grade=%s\n",
						result.Behavior, result.OverallScore, result.Grade)
				} else {
					fmt.Fprintf(out, "[run] behavior=%s (no reference to score)\n", sim.Behavior)
				}
				runLog.Log(map[string]any{
					"circuit":        name,
					"stimulus":       string(stimulus),
					"behavior":       string(sim.Behavior),
					"active_neurons": sim.ActiveNeurons,
					"overall_score":  result.OverallScore,
					"truncated":      sim.Truncated,
				})
			})
			defer sched.Cancel()

			fmt.Fprintf(out, "Editing %q (%d neurons). Type edits, 'quit' to save and exit.\n", name, c.Len())

			var last *session.Run
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" {
					break
				}

				if err := applyEdit(c, line); err != nil {
					outMu.Lock()
					fmt.Fprintf(out, "error: %v\n", err)
					outMu.Unlock()
					continue
				}
				last = sched.Submit(c.Snapshot())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read edits: %w", err)
			}

			// Let the final run land before saving.
			if last != nil {
				<-last.Done()
			}

			if err := cs.SaveCircuit(cmd.Context(), c.ToDocument()); err != nil {
				return fmt.Errorf("save circuit: %w", err)
			}
			fmt.Fprintf(out, "Saved %q (%d neurons).\n", name, c.Len())
			return nil
		},
	}

	cmd.Flags().String("name", "", "Name of the stored circuit to edit")
	cmd.Flags().String("stimulus", "", "Stimulus applied on every run")
	cmd.Flags().String("window", "", "Quiescence window before a run fires (e.g. 300ms)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("stimulus")

	return cmd
}

// applyEdit parses and applies one edit command line.
func applyEdit(c *circuit.Circuit, line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "add":
		if len(fields) != 3 {
			return fmt.Errorf("usage: add <id> <type>")
		}
		ntype, err := models.ParseNeuronType(fields[2])
		if err != nil {
			return err
		}
		return c.AddNeuron(models.Neuron{ID: fields[1], Type: ntype})

	case "connect":
		if len(fields) != 5 {
			return fmt.Errorf("usage: connect <from> <to> <kind> <weight>")
		}
		kind, err := models.ParseSynapseKind(fields[3])
		if err != nil {
			return err
		}
		weight, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", fields[4])
		}
		return c.AddConnection(fields[1], fields[2], kind, weight)

	case "disconnect":
		if len(fields) != 3 {
			return fmt.Errorf("usage: disconnect <from> <to>")
		}
		c.RemoveConnection(fields[1], fields[2])
		return nil

	case "remove":
		if len(fields) != 2 {
			return fmt.Errorf("usage: remove <id>")
		}
		c.RemoveNeuron(fields[1])
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}
