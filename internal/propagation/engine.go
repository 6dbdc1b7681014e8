// Package propagation implements the stimulus propagation engine. A
// stimulus selects entry neurons from a fixed table; activation then
// spreads outward in breadth-first order over weighted synapses until the
// frontier is exhausted or the dequeue budget runs out. The run is fully
// deterministic: ties within a BFS layer break by ascending neuron ID,
// never by map iteration order, and nothing on this path draws randomness.
package propagation

import (
	"sort"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// Config holds tunable parameters for the propagation engine.
type Config struct {
	// InitialActivation is the level assigned to entry neurons. Default: 10.
	InitialActivation float64

	// ActivationThreshold is the cumulative level at which a neuron
	// becomes active and joins the frontier. Default: 5.
	ActivationThreshold float64

	// DequeueBudgetFactor bounds a run to factor x |neurons| dequeues.
	// Exceeding the budget yields a best-effort result with Truncated
	// set, never a failure. Default: 2.
	DequeueBudgetFactor int
}

// DefaultConfig returns the default propagation configuration.
func DefaultConfig() Config {
	return Config{
		InitialActivation:   10,
		ActivationThreshold: 5,
		DequeueBudgetFactor: 2,
	}
}

// entryTable maps each stimulus to its canonical entry cells. The sets are
// a reduced teaching analogue: alongside the touch receptor cells they
// include the dominant command pair for the elicited behavior, so that
// small circuits built without sensory cells still respond to touch.
// Kept in ascending ID order.
var entryTable = map[models.Stimulus][]string{
	models.StimulusTouchHead: {"ALML", "ALMR", "AVBL", "AVBR", "AVM"},
	models.StimulusTouchTail: {"AVAL", "AVAR", "PLML", "PLMR"},
	models.StimulusSmellFood: {"AWAL", "AWAR", "AWCL", "AWCR"},
	models.StimulusNone:      nil,
}

// EntryNeurons returns the canonical entry cells for a stimulus.
func EntryNeurons(stimulus models.Stimulus) []string {
	table := entryTable[stimulus]
	out := make([]string, len(table))
	copy(out, table)
	return out
}

// Engine propagates stimuli through circuit snapshots. The engine itself is
// stateless; all mutable state lives in per-run maps, so a single Engine may
// serve concurrent runs.
type Engine struct {
	config Config
}

// NewEngine creates a propagation engine.
func NewEngine(config Config) *Engine {
	if config.InitialActivation == 0 {
		config.InitialActivation = DefaultConfig().InitialActivation
	}
	if config.ActivationThreshold == 0 {
		config.ActivationThreshold = DefaultConfig().ActivationThreshold
	}
	return &Engine{config: config}
}

// Simulate propagates the stimulus through the snapshot and classifies the
// resulting behavior. The same snapshot and stimulus always produce a
// bit-identical result.
func (e *Engine) Simulate(snap *circuit.Snapshot, stimulus models.Stimulus) models.SimulationResult {
	entry := e.entrySet(snap, stimulus)
	if len(entry) == 0 {
		return models.SimulationResult{
			Behavior:      models.BehaviorNoMovement,
			ActiveNeurons: []string{},
			SignalPath:    []string{},
		}
	}

	level := make(map[string]float64, snap.Len())
	active := make(map[string]bool, snap.Len())
	enqueued := make(map[string]bool, snap.Len())
	visited := make(map[string]bool, snap.Len())

	for _, id := range entry {
		level[id] = e.config.InitialActivation
		enqueued[id] = true
		if level[id] >= e.config.ActivationThreshold {
			active[id] = true
		}
	}

	budget := e.config.DequeueBudgetFactor * snap.Len()
	dequeues := 0
	truncated := false
	path := make([]string, 0, snap.Len())

	layer := entry
	for len(layer) > 0 && !truncated {
		var next []string

		for _, id := range layer {
			if dequeues >= budget {
				truncated = true
				break
			}
			dequeues++
			visited[id] = true
			path = append(path, id)

			for _, conn := range snap.Incident(id) {
				target, delta := contribution(id, conn)
				level[target] += delta

				// A neuron joins the frontier the first time its
				// cumulative level crosses the threshold. Once active
				// it stays active; later inhibition does not retract it.
				if !active[target] && level[target] >= e.config.ActivationThreshold {
					active[target] = true
					if !enqueued[target] {
						enqueued[target] = true
						next = append(next, target)
					}
				}
			}
		}

		// Layer tie-break: ascending ID, pinned for reproducibility.
		sort.Strings(next)
		layer = next
	}

	activeIDs := make([]string, 0, len(active))
	for id := range active {
		activeIDs = append(activeIDs, id)
	}
	sort.Strings(activeIDs)

	return models.SimulationResult{
		Behavior:      Classify(active),
		ActiveNeurons: activeIDs,
		SignalPath:    path,
		Truncated:     truncated,
	}
}

// entrySet intersects the stimulus entry table with the snapshot's neurons,
// ascending ID order.
func (e *Engine) entrySet(snap *circuit.Snapshot, stimulus models.Stimulus) []string {
	var entry []string
	for _, id := range entryTable[stimulus] {
		if snap.HasNeuron(id) {
			entry = append(entry, id)
		}
	}
	sort.Strings(entry)
	return entry
}

// contribution resolves the target and signed signal delta of one synapse
// relative to the neuron being dequeued. Excitatory synapses add their
// weight, inhibitory subtract it, and electrical gap junctions conduct the
// weight additively toward whichever side is not the source.
func contribution(source string, conn models.Connection) (target string, delta float64) {
	target = conn.To
	if conn.Kind == models.SynapseElectrical && conn.To == source {
		target = conn.From
	}

	switch conn.Kind {
	case models.SynapseInhibitory:
		return target, -conn.Weight
	default:
		return target, conn.Weight
	}
}
