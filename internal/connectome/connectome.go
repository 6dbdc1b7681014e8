// Package connectome holds the curated reference connectome the validator
// scores circuits against. The dataset is embedded at build time, loaded
// once into a process-wide immutable value, and never mutated at runtime.
// It may be shared across concurrent invocations without locking.
package connectome

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

//go:embed data/connectome.yaml
var datasetYAML []byte

// Pathway is a named, biologically meaningful set of neurons that must
// jointly be present for full pathway credit.
type Pathway struct {
	Name    string   `yaml:"name"`
	Neurons []string `yaml:"neurons"`
}

// BehaviorReference is the curated ground truth for one behavior.
type BehaviorReference struct {
	Behavior models.Behavior `yaml:"behavior"`

	// Stimulus records which stimulus canonically elicits the behavior.
	// Informational; the propagation engine owns the entry table.
	Stimulus models.Stimulus `yaml:"stimulus"`

	RequiredNeurons     []models.Neuron     `yaml:"required_neurons"`
	RequiredConnections []models.Connection `yaml:"required_connections"`
	Pathways            []Pathway           `yaml:"pathways"`
}

// RequiredNeuronIDs returns the IDs of all required neurons, sorted.
func (r *BehaviorReference) RequiredNeuronIDs() []string {
	ids := make([]string, 0, len(r.RequiredNeurons))
	for _, n := range r.RequiredNeurons {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}

// RequiredPairs returns required connections keyed by (from, to) identity.
func (r *BehaviorReference) RequiredPairs() map[models.EdgePair]models.Connection {
	pairs := make(map[models.EdgePair]models.Connection, len(r.RequiredConnections))
	for _, conn := range r.RequiredConnections {
		pairs[conn.Pair()] = conn
	}
	return pairs
}

// Connectome is the versioned, read-only reference dataset.
type Connectome struct {
	Version   string
	behaviors map[models.Behavior]*BehaviorReference
}

// dataset is the on-disk shape of the embedded YAML.
type dataset struct {
	Version   string               `yaml:"version"`
	Behaviors []*BehaviorReference `yaml:"behaviors"`
}

// Load parses the embedded dataset. Most callers want Default instead.
func Load() (*Connectome, error) {
	var ds dataset
	if err := yaml.Unmarshal(datasetYAML, &ds); err != nil {
		return nil, fmt.Errorf("parsing embedded connectome: %w", err)
	}
	if ds.Version == "" {
		return nil, fmt.Errorf("embedded connectome has no version")
	}

	behaviors := make(map[models.Behavior]*BehaviorReference, len(ds.Behaviors))
	for _, ref := range ds.Behaviors {
		if _, err := models.ParseBehavior(string(ref.Behavior)); err != nil {
			return nil, fmt.Errorf("embedded connectome: %w", err)
		}
		if _, dup := behaviors[ref.Behavior]; dup {
			return nil, fmt.Errorf("embedded connectome: duplicate behavior %s", ref.Behavior)
		}
		behaviors[ref.Behavior] = ref
	}

	return &Connectome{Version: ds.Version, behaviors: behaviors}, nil
}

var (
	defaultOnce sync.Once
	defaultConn *Connectome
	defaultErr  error
)

// Default returns the process-wide connectome, loading it on first use.
func Default() (*Connectome, error) {
	defaultOnce.Do(func() {
		defaultConn, defaultErr = Load()
	})
	return defaultConn, defaultErr
}

// ForBehavior returns the reference for a behavior. A missing behavior is a
// legitimate miss the validator degrades on, not an error.
func (c *Connectome) ForBehavior(b models.Behavior) (*BehaviorReference, bool) {
	ref, ok := c.behaviors[b]
	return ref, ok
}

// Behaviors returns every behavior with a reference, sorted by name.
func (c *Connectome) Behaviors() []models.Behavior {
	out := make([]models.Behavior, 0, len(c.behaviors))
	for b := range c.behaviors {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Neuron looks up canonical metadata for a cell across all behaviors.
func (c *Connectome) Neuron(id string) (models.Neuron, bool) {
	for _, b := range c.Behaviors() {
		for _, n := range c.behaviors[b].RequiredNeurons {
			if n.ID == id {
				return n, true
			}
		}
	}
	return models.Neuron{}, false
}
