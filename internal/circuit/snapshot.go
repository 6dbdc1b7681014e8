package circuit

import (
	"sort"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// Snapshot is an immutable copy of a circuit at a point in time. Engines
// consume snapshots only, so a run in progress is unaffected by concurrent
// edits. Snapshots are safe to share across goroutines without locking.
type Snapshot struct {
	Name    string
	Version uint64

	neurons     map[string]models.Neuron
	connections map[models.EdgePair]models.Connection
}

// Snapshot returns an immutable deep copy of the circuit.
func (c *Circuit) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	neurons := make(map[string]models.Neuron, len(c.neurons))
	for id, n := range c.neurons {
		neurons[id] = n
	}
	connections := make(map[models.EdgePair]models.Connection, len(c.connections))
	for pair, conn := range c.connections {
		connections[pair] = conn
	}

	return &Snapshot{
		Name:        c.name,
		Version:     c.version,
		neurons:     neurons,
		connections: connections,
	}
}

// Len returns the number of neurons in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.neurons)
}

// HasNeuron reports whether the snapshot contains the neuron.
func (s *Snapshot) HasNeuron(id string) bool {
	_, ok := s.neurons[id]
	return ok
}

// Neuron returns the neuron with the given ID, if present.
func (s *Snapshot) Neuron(id string) (models.Neuron, bool) {
	n, ok := s.neurons[id]
	return n, ok
}

// HasConnection reports whether the snapshot contains the (from, to) edge.
func (s *Snapshot) HasConnection(from, to string) bool {
	_, ok := s.connections[models.EdgePair{From: from, To: to}]
	return ok
}

// Neurons returns all neurons sorted ascending by ID.
func (s *Snapshot) Neurons() []models.Neuron {
	ids := s.NeuronIDs()
	out := make([]models.Neuron, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.neurons[id])
	}
	return out
}

// NeuronIDs returns all neuron IDs sorted ascending.
func (s *Snapshot) NeuronIDs() []string {
	ids := make([]string, 0, len(s.neurons))
	for id := range s.neurons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Connections returns all connections sorted by (from, to).
func (s *Snapshot) Connections() []models.Connection {
	out := make([]models.Connection, 0, len(s.connections))
	for _, conn := range s.connections {
		out = append(out, conn)
	}
	sortConnections(out)
	return out
}

// Incident returns every connection a propagation step from id must
// consider: chemical synapses leaving id, plus electrical synapses touching
// id from either side (gap junctions conduct symmetrically). Sorted by
// (from, to) for deterministic traversal.
func (s *Snapshot) Incident(id string) []models.Connection {
	var out []models.Connection
	for pair, conn := range s.connections {
		switch {
		case pair.From == id:
			out = append(out, conn)
		case pair.To == id && conn.Kind == models.SynapseElectrical:
			out = append(out, conn)
		}
	}
	sortConnections(out)
	return out
}
