// Package circuit implements the mutable neuron graph edited by a learner.
// All mutation goes through the Circuit API so the graph invariants hold at
// all times: both endpoints of a connection exist, no duplicate (from, to)
// pairs, no self-loops, weights stay within bounds. Engines never consume a
// Circuit directly; they take an immutable Snapshot.
package circuit

import (
	"fmt"
	"sort"
	"sync"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// Circuit is a mutable neuron graph owned by a single editing session.
// It is safe for concurrent use; engines consume snapshots, so a run in
// progress is unaffected by concurrent mutation.
type Circuit struct {
	mu          sync.RWMutex
	name        string
	neurons     map[string]models.Neuron
	connections map[models.EdgePair]models.Connection
	version     uint64
}

// New creates an empty circuit.
func New(name string) *Circuit {
	return &Circuit{
		name:        name,
		neurons:     make(map[string]models.Neuron),
		connections: make(map[models.EdgePair]models.Connection),
	}
}

// FromDocument builds a circuit from a serialized document. Every element
// is funneled through the mutation API, so an invalid document is rejected
// with the same structured errors the editor would see.
func FromDocument(doc *models.CircuitDocument) (*Circuit, error) {
	c := New(doc.Name)
	for _, n := range doc.Neurons {
		if err := c.AddNeuron(n); err != nil {
			return nil, fmt.Errorf("loading neuron %s: %w", n.ID, err)
		}
	}
	for _, conn := range doc.Connections {
		if err := c.AddConnection(conn.From, conn.To, conn.Kind, conn.Weight); err != nil {
			return nil, fmt.Errorf("loading connection %s->%s: %w", conn.From, conn.To, err)
		}
	}
	return c, nil
}

// Name returns the circuit's name.
func (c *Circuit) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Version returns a counter that increases on every successful mutation.
// Callers use it to discard stale simulation and validation results.
func (c *Circuit) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Len returns the number of neurons in the circuit.
func (c *Circuit) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.neurons)
}

// AddNeuron adds a neuron. Fails with CodeDuplicateID if the ID exists.
func (c *Circuit) AddNeuron(n models.Neuron) error {
	if n.ID == "" {
		return &MutationError{Code: CodeUnknownEndpoint, Detail: "empty neuron ID"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.neurons[n.ID]; exists {
		return &MutationError{Code: CodeDuplicateID, From: n.ID}
	}

	c.neurons[n.ID] = n
	c.version++
	return nil
}

// RemoveNeuron deletes a neuron and cascades over every incident
// connection. Removing an absent neuron is a no-op.
func (c *Circuit) RemoveNeuron(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.neurons[id]; !exists {
		return
	}

	delete(c.neurons, id)
	for pair := range c.connections {
		if pair.From == id || pair.To == id {
			delete(c.connections, pair)
		}
	}
	c.version++
}

// AddConnection adds a synapse between two existing neurons.
// Fails with CodeUnknownEndpoint if either endpoint is absent,
// CodeDuplicateEdge if the (from, to) pair exists, CodeInvalidWeight if the
// weight is outside [MinWeight, MaxWeight], and CodeSelfLoop when from == to.
// Self-loops are rejected for every kind including electrical: the reference
// dataset has no same-cell gap junctions, so the exception is not taken.
func (c *Circuit) AddConnection(from, to string, kind models.SynapseKind, weight float64) error {
	if from == to {
		return &MutationError{Code: CodeSelfLoop, From: from, To: to}
	}
	if weight < models.MinWeight || weight > models.MaxWeight {
		return &MutationError{
			Code: CodeInvalidWeight,
			From: from, To: to,
			Detail: fmt.Sprintf("%g (bounds %d..%d)", weight, models.MinWeight, models.MaxWeight),
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.neurons[from]; !ok {
		return &MutationError{Code: CodeUnknownEndpoint, From: from, To: to, Detail: from}
	}
	if _, ok := c.neurons[to]; !ok {
		return &MutationError{Code: CodeUnknownEndpoint, From: from, To: to, Detail: to}
	}

	pair := models.EdgePair{From: from, To: to}
	if _, exists := c.connections[pair]; exists {
		return &MutationError{Code: CodeDuplicateEdge, From: from, To: to}
	}

	c.connections[pair] = models.Connection{From: from, To: to, Kind: kind, Weight: weight}
	c.version++
	return nil
}

// RemoveConnection deletes the connection identified by (from, to).
// Removing an absent connection is a no-op.
func (c *Circuit) RemoveConnection(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pair := models.EdgePair{From: from, To: to}
	if _, exists := c.connections[pair]; !exists {
		return
	}
	delete(c.connections, pair)
	c.version++
}

// Neuron returns the neuron with the given ID, if present.
func (c *Circuit) Neuron(id string) (models.Neuron, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.neurons[id]
	return n, ok
}

// Outgoing returns connections leaving the neuron, sorted by (from, to).
func (c *Circuit) Outgoing(id string) []models.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Connection
	for pair, conn := range c.connections {
		if pair.From == id {
			out = append(out, conn)
		}
	}
	sortConnections(out)
	return out
}

// Incoming returns connections arriving at the neuron, sorted by (from, to).
func (c *Circuit) Incoming(id string) []models.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var in []models.Connection
	for pair, conn := range c.connections {
		if pair.To == id {
			in = append(in, conn)
		}
	}
	sortConnections(in)
	return in
}

// Neighbors returns the IDs of every neuron connected to id in either
// direction, sorted ascending, without duplicates.
func (c *Circuit) Neighbors(id string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for pair := range c.connections {
		if pair.From == id {
			seen[pair.To] = true
		}
		if pair.To == id {
			seen[pair.From] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for n := range seen {
		ids = append(ids, n)
	}
	sort.Strings(ids)
	return ids
}

// ToDocument serializes the circuit to its wire format with neurons and
// connections in deterministic order.
func (c *Circuit) ToDocument() *models.CircuitDocument {
	snap := c.Snapshot()
	return &models.CircuitDocument{
		Name:        snap.Name,
		Neurons:     snap.Neurons(),
		Connections: snap.Connections(),
	}
}

func sortConnections(conns []models.Connection) {
	sort.Slice(conns, func(i, j int) bool {
		return conns[i].Pair().Less(conns[j].Pair())
	})
}
