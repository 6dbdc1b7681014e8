package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/store"
)

func newCircuitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuit",
		Short: "Create and edit stored circuits",
	}

	cmd.AddCommand(
		newCircuitNewCmd(),
		newCircuitAddNeuronCmd(),
		newCircuitConnectCmd(),
		newCircuitDisconnectCmd(),
		newCircuitRemoveNeuronCmd(),
		newCircuitShowCmd(),
	)

	return cmd
}

func newCircuitNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name := args[0]

			cfg := loadConfig()
			cs, err := openStore(cmd, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer cs.Close()

			existing, err := cs.LoadCircuit(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("load circuit: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("circuit %q already exists", name)
			}

			doc := circuit.New(name).ToDocument()
			if err := cs.SaveCircuit(cmd.Context(), doc); err != nil {
				return fmt.Errorf("save circuit: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "created",
					"name":   name,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created circuit %q\n", name)
			return nil
		},
	}
}

func newCircuitAddNeuronCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-neuron [name] [neuron-id]",
		Short: "Add a neuron to a stored circuit",
		Long: `Add a neuron to a stored circuit.

The neuron type must be one of: sensory, interneuron, command, motor.

Example:
  wormquest circuit add-neuron my-reflex PLML --type sensory`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			typeStr, _ := cmd.Flags().GetString("type")
			label, _ := cmd.Flags().GetString("label")

			ntype, err := models.ParseNeuronType(typeStr)
			if err != nil {
				return err
			}

			return editCircuit(cmd, args[0], func(c *circuit.Circuit) error {
				if err := c.AddNeuron(models.Neuron{ID: args[1], Type: ntype, Name: label}); err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
						"status": "added",
						"neuron": args[1],
						"type":   string(ntype),
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s neuron %s\n", ntype, args[1])
				return nil
			})
		},
	}

	cmd.Flags().String("type", "", "Neuron type (sensory, interneuron, command, motor)")
	cmd.Flags().String("label", "", "Human-readable neuron name")
	cmd.MarkFlagRequired("type")

	return cmd
}

func newCircuitConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [name] [from] [to]",
		Short: "Add a connection between two neurons",
		Long: `Add a connection between two neurons in a stored circuit.

The kind must be one of: chemical_excitatory, chemical_inhibitory,
electrical. Electrical gap junctions conduct in both directions.

Example:
  wormquest circuit connect my-reflex PLML AVAL --kind chemical_excitatory --weight 8`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			kindStr, _ := cmd.Flags().GetString("kind")
			weightStr, _ := cmd.Flags().GetString("weight")

			kind, err := models.ParseSynapseKind(kindStr)
			if err != nil {
				return err
			}
			weight, err := strconv.ParseFloat(weightStr, 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", weightStr)
			}

			return editCircuit(cmd, args[0], func(c *circuit.Circuit) error {
				if err := c.AddConnection(args[1], args[2], kind, weight); err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
						"status": "connected",
						"from":   args[1],
						"to":     args[2],
						"kind":   string(kind),
						"weight": weight,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Connected %s -> %s (%s, weight %.1f)\n", args[1], args[2], kind, weight)
				return nil
			})
		},
	}

	cmd.Flags().String("kind", string(models.SynapseExcitatory), "Synapse kind")
	cmd.Flags().String("weight", "1", "Connection weight")

	return cmd
}

func newCircuitDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [name] [from] [to]",
		Short: "Remove a connection between two neurons",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return editCircuit(cmd, args[0], func(c *circuit.Circuit) error {
				c.RemoveConnection(args[1], args[2])
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
						"status": "disconnected",
						"from":   args[1],
						"to":     args[2],
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Disconnected %s -> %s\n", args[1], args[2])
				return nil
			})
		},
	}
}

func newCircuitRemoveNeuronCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-neuron [name] [neuron-id]",
		Short: "Remove a neuron and its connections",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return editCircuit(cmd, args[0], func(c *circuit.Circuit) error {
				c.RemoveNeuron(args[1])
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
						"status": "removed",
						"neuron": args[1],
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed neuron %s\n", args[1])
				return nil
			})
		},
	}
}

func newCircuitShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a stored circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name := args[0]

			cfg := loadConfig()
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

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(doc)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Circuit: %s\n", doc.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Neurons: %d\n", len(doc.Neurons))
			for _, n := range doc.Neurons {
				if n.Name != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s) — %s\n", n.ID, n.Type, n.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", n.ID, n.Type)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connections: %d\n", len(doc.Connections))
			for _, conn := range doc.Connections {
				arrow := "->"
				if conn.Kind == models.SynapseElectrical {
					arrow = "<->"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s (%s, weight %.1f)\n", conn.From, arrow, conn.To, conn.Kind, conn.Weight)
			}
			return nil
		},
	}
}

// editCircuit loads a stored circuit, applies an edit, and saves it back.
// The edit callback also handles output so failed edits print nothing.
func editCircuit(cmd *cobra.Command, name string, edit func(*circuit.Circuit) error) error {
	cfg := loadConfig()
	cs, err := openStore(cmd, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer cs.Close()

	return editStoredCircuit(cmd, cs, name, edit)
}

func editStoredCircuit(cmd *cobra.Command, cs store.CircuitStore, name string, edit func(*circuit.Circuit) error) error {
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
	if err := edit(c); err != nil {
		return err
	}

	if err := cs.SaveCircuit(cmd.Context(), c.ToDocument()); err != nil {
		return fmt.Errorf("save circuit: %w", err)
	}
	return nil
}
