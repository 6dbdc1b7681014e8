package store

import (
	"context"
	"testing"
	"time"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// newStores returns one instance of each CircuitStore implementation.
func newStores(t *testing.T) map[string]CircuitStore {
	t.Helper()

	sqliteStore, err := NewSQLiteCircuitStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteCircuitStore: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]CircuitStore{
		"memory": NewMemoryCircuitStore(),
		"sqlite": sqliteStore,
	}
}

func sampleDocument(name string) *models.CircuitDocument {
	return &models.CircuitDocument{
		Name: name,
		Neurons: []models.Neuron{
			{ID: "AVAL", Type: models.NeuronTypeCommand},
			{ID: "VA1", Type: models.NeuronTypeMotor},
		},
		Connections: []models.Connection{
			{From: "AVAL", To: "VA1", Kind: models.SynapseExcitatory, Weight: 10},
		},
	}
}

func TestSaveLoadCircuit(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SaveCircuit(ctx, sampleDocument("tap")); err != nil {
				t.Fatalf("SaveCircuit: %v", err)
			}

			doc, err := s.LoadCircuit(ctx, "tap")
			if err != nil {
				t.Fatalf("LoadCircuit: %v", err)
			}
			if doc == nil {
				t.Fatal("LoadCircuit returned nil for stored circuit")
			}
			if len(doc.Neurons) != 2 || len(doc.Connections) != 1 {
				t.Errorf("loaded %d neurons, %d connections", len(doc.Neurons), len(doc.Connections))
			}
			if doc.Connections[0].Kind != models.SynapseExcitatory {
				t.Errorf("kind = %q", doc.Connections[0].Kind)
			}

			// Absent circuit loads as nil, nil.
			doc, err = s.LoadCircuit(ctx, "absent")
			if err != nil || doc != nil {
				t.Errorf("LoadCircuit(absent) = %v, %v; want nil, nil", doc, err)
			}
		})
	}
}

func TestSaveCircuitUpserts(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SaveCircuit(ctx, sampleDocument("tap")); err != nil {
				t.Fatalf("SaveCircuit: %v", err)
			}

			updated := sampleDocument("tap")
			updated.Neurons = updated.Neurons[:1]
			updated.Connections = nil
			if err := s.SaveCircuit(ctx, updated); err != nil {
				t.Fatalf("SaveCircuit(update): %v", err)
			}

			doc, err := s.LoadCircuit(ctx, "tap")
			if err != nil {
				t.Fatalf("LoadCircuit: %v", err)
			}
			if len(doc.Neurons) != 1 || len(doc.Connections) != 0 {
				t.Errorf("update not applied: %+v", doc)
			}

			names, err := s.ListCircuits(ctx)
			if err != nil {
				t.Fatalf("ListCircuits: %v", err)
			}
			if len(names) != 1 {
				t.Errorf("upsert duplicated the circuit: %v", names)
			}
		})
	}
}

func TestSaveCircuitRequiresName(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SaveCircuit(ctx, &models.CircuitDocument{}); err == nil {
				t.Error("expected error for unnamed circuit")
			}
		})
	}
}

func TestListAndDeleteCircuits(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"beta", "alpha"} {
				if err := s.SaveCircuit(ctx, sampleDocument(n)); err != nil {
					t.Fatalf("SaveCircuit(%s): %v", n, err)
				}
			}

			names, err := s.ListCircuits(ctx)
			if err != nil {
				t.Fatalf("ListCircuits: %v", err)
			}
			if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
				t.Errorf("names = %v, want sorted [alpha beta]", names)
			}

			if err := s.DeleteCircuit(ctx, "alpha"); err != nil {
				t.Fatalf("DeleteCircuit: %v", err)
			}
			if err := s.DeleteCircuit(ctx, "absent"); err != nil {
				t.Errorf("DeleteCircuit(absent) should be a no-op, got %v", err)
			}

			names, _ = s.ListCircuits(ctx)
			if len(names) != 1 || names[0] != "beta" {
				t.Errorf("names after delete = %v", names)
			}
		})
	}
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			records := []RunRecord{
				{Circuit: "tap", Stimulus: models.StimulusTouchTail, Behavior: models.BehaviorBackward, OverallScore: 40, Grade: models.GradeD, CreatedAt: base},
				{Circuit: "tap", Stimulus: models.StimulusTouchTail, Behavior: models.BehaviorBackward, OverallScore: 80, Grade: models.GradeB, CreatedAt: base.Add(time.Minute)},
				{Circuit: "other", Stimulus: models.StimulusSmellFood, Behavior: models.BehaviorOmegaTurn, OverallScore: 100, Grade: models.GradeAPlus, CreatedAt: base.Add(2 * time.Minute)},
			}
			for _, rec := range records {
				id, err := s.RecordRun(ctx, rec)
				if err != nil {
					t.Fatalf("RecordRun: %v", err)
				}
				if id == "" {
					t.Error("RecordRun returned empty ID")
				}
			}

			runs, err := s.ListRuns(ctx, "tap")
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			if len(runs) != 2 {
				t.Fatalf("ListRuns(tap) = %d records, want 2", len(runs))
			}
			// Newest first.
			if runs[0].OverallScore != 80 || runs[1].OverallScore != 40 {
				t.Errorf("runs not newest-first: %+v", runs)
			}
			if runs[0].Grade != models.GradeB {
				t.Errorf("grade = %s, want B", runs[0].Grade)
			}

			all, err := s.ListRuns(ctx, "")
			if err != nil {
				t.Fatalf("ListRuns(all): %v", err)
			}
			if len(all) != 3 {
				t.Errorf("ListRuns(all) = %d records, want 3", len(all))
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewSQLiteCircuitStore(dir)
	if err != nil {
		t.Fatalf("NewSQLiteCircuitStore: %v", err)
	}
	if err := s.SaveCircuit(ctx, sampleDocument("tap")); err != nil {
		t.Fatalf("SaveCircuit: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteCircuitStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	doc, err := reopened.LoadCircuit(ctx, "tap")
	if err != nil {
		t.Fatalf("LoadCircuit after reopen: %v", err)
	}
	if doc == nil || len(doc.Neurons) != 2 {
		t.Errorf("circuit lost across reopen: %+v", doc)
	}
}
