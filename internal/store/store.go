// Package store persists circuits and validation-run history. The core
// engines never touch storage; the CLI and MCP surfaces act as the
// persistence collaborator and go through a CircuitStore.
package store

import (
	"context"
	"time"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// RunRecord is one recorded engine run over a named circuit.
type RunRecord struct {
	ID           string          `json:"id"`
	Circuit      string          `json:"circuit"`
	Stimulus     models.Stimulus `json:"stimulus"`
	Behavior     models.Behavior `json:"behavior"`
	OverallScore int             `json:"overall_score"`
	Grade        models.Grade    `json:"grade"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CircuitStore persists circuit documents keyed by name, plus an append-only
// run history.
type CircuitStore interface {
	// SaveCircuit upserts a document under doc.Name.
	SaveCircuit(ctx context.Context, doc *models.CircuitDocument) error

	// LoadCircuit returns the document for name, or nil if absent.
	LoadCircuit(ctx context.Context, name string) (*models.CircuitDocument, error)

	// ListCircuits returns all stored circuit names, sorted.
	ListCircuits(ctx context.Context) ([]string, error)

	// DeleteCircuit removes a stored circuit. Absent names are a no-op.
	DeleteCircuit(ctx context.Context, name string) error

	// RecordRun appends a run record and returns its ID (assigned when
	// the record carries none).
	RecordRun(ctx context.Context, rec RunRecord) (string, error)

	// ListRuns returns runs for a circuit, newest first. An empty circuit
	// name returns every run.
	ListRuns(ctx context.Context, circuitName string) ([]RunRecord, error)

	Close() error
}
