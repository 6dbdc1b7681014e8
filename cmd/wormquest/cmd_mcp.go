package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/mcp"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/propagation"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/validation"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Run the Model Context Protocol server, exposing circuit simulation,
validation, and suggestion tools to MCP clients over stdio.

The server runs until the client disconnects or the process receives
SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inMemory, _ := cmd.Flags().GetBool("in-memory")

			cfg := loadConfig()
			dir, err := dataDir(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve data directory: %w", err)
			}

			srv, err := mcp.NewServer(&mcp.Config{
				Name:     "wormquest",
				Version:  version,
				Root:     dir,
				InMemory: inMemory || cfg.Store.InMemory,
				Engine: propagation.Config{
					InitialActivation:   cfg.Engine.InitialActivation,
					ActivationThreshold: cfg.Engine.ActivationThreshold,
					DequeueBudgetFactor: cfg.Engine.DequeueBudgetFactor,
				},
				Scoring: validation.Config{
					AccuracyWeight:     cfg.Scoring.AccuracyWeight,
					CompletenessWeight: cfg.Scoring.CompletenessWeight,
					PathwayWeight:      cfg.Scoring.PathwayWeight,
					GradeCutoffs:       validation.DefaultConfig().GradeCutoffs,
				},
			})
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			return srv.Run(context.Background())
		},
	}

	cmd.Flags().Bool("in-memory", false, "Use a non-persistent circuit store")

	return cmd
}
