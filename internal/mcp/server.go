package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/propagation"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/store"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/validation"
)

// Server wraps the MCP SDK server and exposes circuit simulation,
// validation, and suggestion tools over stdio.
type Server struct {
	server     *sdk.Server
	store      store.CircuitStore
	engine     *propagation.Engine
	validator  *validation.Validator
	connectome *connectome.Connectome
	audit      *AuditLogger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "wormquest")
	Version string // Server version
	Root    string // Directory for persistent state and the audit log

	// InMemory selects the non-persistent circuit store.
	InMemory bool

	Engine  propagation.Config
	Scoring validation.Config
}

// NewServer creates a new MCP server with wormquest tools.
func NewServer(cfg *Config) (*Server, error) {
	conn, err := connectome.Default()
	if err != nil {
		return nil, fmt.Errorf("loading reference connectome: %w", err)
	}

	var circuitStore store.CircuitStore
	if cfg.InMemory {
		circuitStore = store.NewMemoryCircuitStore()
	} else {
		circuitStore, err = store.NewSQLiteCircuitStore(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("opening circuit store: %w", err)
		}
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:     mcpServer,
		store:      circuitStore,
		engine:     propagation.NewEngine(cfg.Engine),
		validator:  validation.NewValidator(cfg.Scoring),
		connectome: conn,
		audit:      NewAuditLogger(cfg.Root),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.audit.Close()
	if closeErr := s.store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	s.audit.Close()
	return s.store.Close()
}
