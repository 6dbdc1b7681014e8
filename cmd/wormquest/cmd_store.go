package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a circuit file into the store",
		Long: `Import a circuit from a JSON or YAML file into the store.

The stored name comes from the document's name field, or --name when set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name, _ := cmd.Flags().GetString("name")

			doc, err := models.ReadCircuitDocument(args[0])
			if err != nil {
				return fmt.Errorf("read circuit: %w", err)
			}
			if name != "" {
				doc.Name = name
			}
			if doc.Name == "" {
				return fmt.Errorf("circuit has no name; pass --name")
			}

			cfg := loadConfig()
			cs, err := openStore(cmd, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer cs.Close()

			if err := cs.SaveCircuit(cmd.Context(), doc); err != nil {
				return fmt.Errorf("save circuit: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status":      "imported",
					"name":        doc.Name,
					"neurons":     len(doc.Neurons),
					"connections": len(doc.Connections),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d neurons, %d connections)\n",
				doc.Name, len(doc.Neurons), len(doc.Connections))
			return nil
		},
	}

	cmd.Flags().String("name", "", "Store under this name instead of the document's")

	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [name] [file]",
		Short: "Export a stored circuit to a file",
		Long:  `Write a stored circuit to a JSON or YAML file, chosen by extension.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name, path := args[0], args[1]

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

			if err := models.WriteCircuitDocument(path, doc); err != nil {
				return fmt.Errorf("write circuit: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "exported",
					"name":   name,
					"file":   path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", name, path)
			return nil
		},
	}

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored circuit",
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

			if err := cs.DeleteCircuit(cmd.Context(), name); err != nil {
				return fmt.Errorf("delete circuit: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "deleted",
					"name":   name,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", name)
			return nil
		},
	}
}
