// Package models defines the core data types shared across the circuit
// simulation and validation engine: neurons, synaptic connections, stimuli,
// behaviors, and the result structures produced by the engines.
package models

import "fmt"

// NeuronType categorizes a neuron's role in the circuit.
type NeuronType string

const (
	NeuronTypeSensory     NeuronType = "sensory"     // Receives external stimuli
	NeuronTypeInterneuron NeuronType = "interneuron" // Relays signals between neurons
	NeuronTypeCommand     NeuronType = "command"     // Drives behavior selection
	NeuronTypeMotor       NeuronType = "motor"       // Drives muscle output
)

// ParseNeuronType maps a string to a NeuronType.
// Unknown values return an error.
func ParseNeuronType(s string) (NeuronType, error) {
	switch NeuronType(s) {
	case NeuronTypeSensory, NeuronTypeInterneuron, NeuronTypeCommand, NeuronTypeMotor:
		return NeuronType(s), nil
	}
	return "", fmt.Errorf("unknown neuron type: %q", s)
}

// Neuron is a single cell in a circuit. Identity is the ID, which follows
// canonical connectome naming (e.g. "AVAL", "PLMR"). Neurons are immutable
// once created; edits go through remove/add on the owning circuit.
type Neuron struct {
	ID          string     `json:"id" yaml:"id"`
	Type        NeuronType `json:"type" yaml:"type"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Function    string     `json:"function,omitempty" yaml:"function,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// SynapseKind categorizes how a connection transmits signal.
type SynapseKind string

const (
	// SynapseExcitatory adds weight-scaled signal to the target.
	SynapseExcitatory SynapseKind = "chemical_excitatory"
	// SynapseInhibitory subtracts weight-scaled signal from the target.
	SynapseInhibitory SynapseKind = "chemical_inhibitory"
	// SynapseElectrical is a gap junction: signal flows symmetrically in
	// both directions and is always additive.
	SynapseElectrical SynapseKind = "electrical"
)

// ParseSynapseKind maps a string to a SynapseKind.
// Unknown values return an error.
func ParseSynapseKind(s string) (SynapseKind, error) {
	switch SynapseKind(s) {
	case SynapseExcitatory, SynapseInhibitory, SynapseElectrical:
		return SynapseKind(s), nil
	}
	return "", fmt.Errorf("unknown synapse kind: %q", s)
}

// Weight bounds for a connection. Weights are bounded magnitudes; the sign
// of a contribution comes from the synapse kind, never from the weight.
const (
	MinWeight = 1
	MaxWeight = 15
)

// Connection is a synapse between two neurons in the same circuit.
// Chemical synapses are directed from From to To; electrical synapses are
// stored with the same orientation but propagate in both directions.
type Connection struct {
	From   string      `json:"from" yaml:"from"`
	To     string      `json:"to" yaml:"to"`
	Kind   SynapseKind `json:"kind" yaml:"kind"`
	Weight float64     `json:"weight" yaml:"weight"`
}

// Pair returns the (from, to) identity of the connection.
func (c Connection) Pair() EdgePair {
	return EdgePair{From: c.From, To: c.To}
}

// EdgePair identifies a connection by its endpoints, kind-agnostic.
type EdgePair struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Less orders edge pairs by (From, To) ascending, for deterministic output.
func (p EdgePair) Less(o EdgePair) bool {
	if p.From != o.From {
		return p.From < o.From
	}
	return p.To < o.To
}

// Stimulus is an external input applied to a circuit.
type Stimulus string

const (
	StimulusTouchHead Stimulus = "touch_head"
	StimulusTouchTail Stimulus = "touch_tail"
	StimulusSmellFood Stimulus = "smell_food"
	StimulusNone      Stimulus = "none"
)

// Stimuli lists all stimuli in declaration order.
func Stimuli() []Stimulus {
	return []Stimulus{StimulusTouchHead, StimulusTouchTail, StimulusSmellFood, StimulusNone}
}

// ParseStimulus maps a string to a Stimulus. Unknown values return an error.
func ParseStimulus(s string) (Stimulus, error) {
	switch Stimulus(s) {
	case StimulusTouchHead, StimulusTouchTail, StimulusSmellFood, StimulusNone:
		return Stimulus(s), nil
	}
	return "", fmt.Errorf("unknown stimulus: %q", s)
}

// Behavior is a predicted or target circuit behavior.
type Behavior string

const (
	BehaviorForward    Behavior = "forward_movement"
	BehaviorBackward   Behavior = "backward_movement"
	BehaviorOmegaTurn  Behavior = "omega_turn"
	BehaviorNoMovement Behavior = "no_movement"
)

// ParseBehavior maps a string to a Behavior. Unknown values return an error.
func ParseBehavior(s string) (Behavior, error) {
	switch Behavior(s) {
	case BehaviorForward, BehaviorBackward, BehaviorOmegaTurn, BehaviorNoMovement:
		return Behavior(s), nil
	}
	return "", fmt.Errorf("unknown behavior: %q", s)
}
