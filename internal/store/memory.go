package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// MemoryCircuitStore implements CircuitStore for testing and development.
type MemoryCircuitStore struct {
	mu       sync.RWMutex
	circuits map[string]*models.CircuitDocument
	runs     []RunRecord
}

// NewMemoryCircuitStore creates an in-memory store.
func NewMemoryCircuitStore() *MemoryCircuitStore {
	return &MemoryCircuitStore{
		circuits: make(map[string]*models.CircuitDocument),
	}
}

// SaveCircuit upserts a document under doc.Name.
func (s *MemoryCircuitStore) SaveCircuit(ctx context.Context, doc *models.CircuitDocument) error {
	if doc.Name == "" {
		return fmt.Errorf("circuit name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so later edits to the caller's document don't leak in.
	cp := *doc
	cp.Neurons = append([]models.Neuron(nil), doc.Neurons...)
	cp.Connections = append([]models.Connection(nil), doc.Connections...)
	s.circuits[doc.Name] = &cp
	return nil
}

// LoadCircuit returns the document for name, or nil if absent.
func (s *MemoryCircuitStore) LoadCircuit(ctx context.Context, name string) (*models.CircuitDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.circuits[name]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.Neurons = append([]models.Neuron(nil), doc.Neurons...)
	cp.Connections = append([]models.Connection(nil), doc.Connections...)
	return &cp, nil
}

// ListCircuits returns all stored circuit names, sorted.
func (s *MemoryCircuitStore) ListCircuits(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.circuits))
	for name := range s.circuits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteCircuit removes a stored circuit. Absent names are a no-op.
func (s *MemoryCircuitStore) DeleteCircuit(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.circuits, name)
	return nil
}

// RecordRun appends a run record and returns its ID.
func (s *MemoryCircuitStore) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, rec)
	return rec.ID, nil
}

// ListRuns returns runs for a circuit, newest first.
func (s *MemoryCircuitStore) ListRuns(ctx context.Context, circuitName string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		if circuitName == "" || rec.Circuit == circuitName {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Close is a no-op for in-memory storage.
func (s *MemoryCircuitStore) Close() error {
	return nil
}
