package models

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestParseStimulus(t *testing.T) {
	tests := []struct {
		in      string
		want    Stimulus
		wantErr bool
	}{
		{"touch_head", StimulusTouchHead, false},
		{"touch_tail", StimulusTouchTail, false},
		{"smell_food", StimulusSmellFood, false},
		{"none", StimulusNone, false},
		{"poke", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStimulus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStimulus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStimulus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSynapseKind(t *testing.T) {
	for _, valid := range []string{"chemical_excitatory", "chemical_inhibitory", "electrical"} {
		if _, err := ParseSynapseKind(valid); err != nil {
			t.Errorf("ParseSynapseKind(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseSynapseKind("telepathic"); err == nil {
		t.Error("ParseSynapseKind(telepathic) expected error, got nil")
	}
}

func TestParseBehavior(t *testing.T) {
	for _, valid := range []string{"forward_movement", "backward_movement", "omega_turn", "no_movement"} {
		if _, err := ParseBehavior(valid); err != nil {
			t.Errorf("ParseBehavior(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseBehavior("moonwalk"); err == nil {
		t.Error("ParseBehavior(moonwalk) expected error, got nil")
	}
}

func TestEdgePairLess(t *testing.T) {
	a := EdgePair{From: "AVAL", To: "VA1"}
	b := EdgePair{From: "AVAR", To: "DA1"}
	c := EdgePair{From: "AVAL", To: "VA2"}

	if !a.Less(b) {
		t.Error("AVAL->VA1 should sort before AVAR->DA1")
	}
	if !a.Less(c) {
		t.Error("AVAL->VA1 should sort before AVAL->VA2")
	}
	if b.Less(a) {
		t.Error("AVAR->DA1 should not sort before AVAL->VA1")
	}
}

func TestSimulationResultSerializable(t *testing.T) {
	r := SimulationResult{
		Behavior:      BehaviorBackward,
		ActiveNeurons: []string{"AVAL", "VA1"},
		SignalPath:    []string{"AVAL", "VA1"},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back SimulationResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Behavior != r.Behavior || len(back.SignalPath) != 2 {
		t.Errorf("round-trip mismatch: %+v", back)
	}
}

func TestCircuitDocumentRoundTrip(t *testing.T) {
	doc := &CircuitDocument{
		Name: "tap-withdrawal",
		Neurons: []Neuron{
			{ID: "AVAL", Type: NeuronTypeCommand, Name: "AVA left"},
			{ID: "VA1", Type: NeuronTypeMotor},
		},
		Connections: []Connection{
			{From: "AVAL", To: "VA1", Kind: SynapseExcitatory, Weight: 10},
		},
	}

	for _, ext := range []string{".json", ".yaml"} {
		path := filepath.Join(t.TempDir(), "circuit"+ext)
		if err := WriteCircuitDocument(path, doc); err != nil {
			t.Fatalf("write %s: %v", ext, err)
		}

		got, err := ReadCircuitDocument(path)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if got.Name != doc.Name {
			t.Errorf("%s: name = %q, want %q", ext, got.Name, doc.Name)
		}
		if len(got.Neurons) != 2 || len(got.Connections) != 1 {
			t.Errorf("%s: got %d neurons, %d connections", ext, len(got.Neurons), len(got.Connections))
		}
		if got.Connections[0].Kind != SynapseExcitatory {
			t.Errorf("%s: kind = %q", ext, got.Connections[0].Kind)
		}
	}
}

func TestReadCircuitDocumentUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.toml")
	if err := WriteCircuitDocument(path, &CircuitDocument{}); err == nil {
		t.Error("write: expected error for unsupported extension")
	}
	if _, err := ReadCircuitDocument(path); err == nil {
		t.Error("read: expected error for unsupported extension")
	}
}
