package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// SQLiteCircuitStore implements CircuitStore using SQLite for persistence.
type SQLiteCircuitStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteCircuitStore opens (creating if needed) the database at
// dir/circuits.db.
func NewSQLiteCircuitStore(dir string) (*SQLiteCircuitStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "circuits.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteCircuitStore{db: db, dbPath: dbPath}, nil
}

// SaveCircuit upserts a document under doc.Name.
func (s *SQLiteCircuitStore) SaveCircuit(ctx context.Context, doc *models.CircuitDocument) error {
	if doc.Name == "" {
		return fmt.Errorf("circuit name is required")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding circuit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO circuits (name, document, created_at, updated_at)
		VALUES (?, ?, datetime('now'), datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = datetime('now')`,
		doc.Name, string(data))
	if err != nil {
		return fmt.Errorf("saving circuit %s: %w", doc.Name, err)
	}
	return nil
}

// LoadCircuit returns the document for name, or nil if absent.
func (s *SQLiteCircuitStore) LoadCircuit(ctx context.Context, name string) (*models.CircuitDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM circuits WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading circuit %s: %w", name, err)
	}

	var doc models.CircuitDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decoding circuit %s: %w", name, err)
	}
	return &doc, nil
}

// ListCircuits returns all stored circuit names, sorted.
func (s *SQLiteCircuitStore) ListCircuits(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM circuits ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing circuits: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning circuit name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteCircuit removes a stored circuit. Absent names are a no-op.
func (s *SQLiteCircuitStore) DeleteCircuit(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM circuits WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting circuit %s: %w", name, err)
	}
	return nil
}

// RecordRun appends a run record and returns its ID.
func (s *SQLiteCircuitStore) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, circuit, stimulus, behavior, overall_score, grade, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Circuit, string(rec.Stimulus), string(rec.Behavior),
		rec.OverallScore, string(rec.Grade), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return rec.ID, nil
}

// ListRuns returns runs for a circuit, newest first. An empty circuit name
// returns every run.
func (s *SQLiteCircuitStore) ListRuns(ctx context.Context, circuitName string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, circuit, stimulus, behavior, overall_score, grade, created_at
		FROM runs`
	args := []any{}
	if circuitName != "" {
		query += ` WHERE circuit = ?`
		args = append(args, circuitName)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	out := make([]RunRecord, 0)
	for rows.Next() {
		var rec RunRecord
		var stimulus, behavior, grade, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Circuit, &stimulus, &behavior,
			&rec.OverallScore, &grade, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Stimulus = models.Stimulus(stimulus)
		rec.Behavior = models.Behavior(behavior)
		rec.Grade = models.Grade(grade)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteCircuitStore) Close() error {
	return s.db.Close()
}
