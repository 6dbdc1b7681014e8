package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CircuitDocument is the serializable wire format for a circuit, consumed
// from and produced to the editor and persistence collaborators. It carries
// no behavior of its own; invariants are enforced when a document is loaded
// into a circuit.
type CircuitDocument struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Neurons     []Neuron     `json:"neurons" yaml:"neurons"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

// ReadCircuitDocument loads a circuit document from a JSON or YAML file,
// chosen by extension (.json, .yaml, .yml).
func ReadCircuitDocument(path string) (*CircuitDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading circuit file: %w", err)
	}

	var doc CircuitDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing circuit JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing circuit YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported circuit file extension: %s", filepath.Ext(path))
	}

	return &doc, nil
}

// WriteCircuitDocument writes a circuit document to a JSON or YAML file,
// chosen by extension.
func WriteCircuitDocument(path string, doc *CircuitDocument) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported circuit file extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding circuit document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing circuit file: %w", err)
	}
	return nil
}
