// Package mcp provides an MCP (Model Context Protocol) server for wormquest.
package mcp

import (
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// SimulateInput defines the input for the worm_simulate tool.
type SimulateInput struct {
	Name     string                  `json:"name,omitempty" jsonschema:"Name of a stored circuit to simulate"`
	Circuit  *models.CircuitDocument `json:"circuit,omitempty" jsonschema:"Inline circuit document (neurons and connections); takes precedence over name"`
	Stimulus string                  `json:"stimulus" jsonschema:"Stimulus to apply: touch_head touch_tail smell_food or none"`
}

// SimulateOutput defines the output for the worm_simulate tool.
type SimulateOutput struct {
	Behavior      string   `json:"behavior" jsonschema:"Classified behavior for the run"`
	ActiveNeurons []string `json:"active_neurons" jsonschema:"Neurons that crossed the activation threshold, sorted by ID"`
	SignalPath    []string `json:"signal_path" jsonschema:"Neuron visitation order, entry neurons first"`
	Truncated     bool     `json:"truncated,omitempty" jsonschema:"True when the propagation budget was exhausted and the result is best-effort"`
	Message       string   `json:"message" jsonschema:"Human-readable result summary"`
}

// ValidateInput defines the input for the worm_validate tool.
type ValidateInput struct {
	Name     string                  `json:"name,omitempty" jsonschema:"Name of a stored circuit to validate"`
	Circuit  *models.CircuitDocument `json:"circuit,omitempty" jsonschema:"Inline circuit document; takes precedence over name"`
	Behavior string                  `json:"behavior,omitempty" jsonschema:"Target behavior to score against; inferred by simulation when stimulus is given"`
	Stimulus string                  `json:"stimulus,omitempty" jsonschema:"Stimulus to simulate first; the predicted behavior becomes the target when behavior is empty"`
}

// ValidateOutput defines the output for the worm_validate tool.
type ValidateOutput struct {
	HasReference      bool     `json:"has_reference" jsonschema:"False when no curated reference exists for the behavior; scores are suppressed"`
	Behavior          string   `json:"behavior" jsonschema:"Behavior the circuit was scored against"`
	OverallScore      int      `json:"overall_score"`
	AccuracyScore     int      `json:"accuracy_score"`
	CompletenessScore int      `json:"completeness_score"`
	PathwayScore      int      `json:"pathway_score"`
	Grade             string   `json:"grade"`
	Badges            []string `json:"badges"`
	Feedback          []string `json:"feedback"`

	CorrectConnections []models.EdgePair `json:"correct_connections"`
	MissingConnections []models.EdgePair `json:"missing_connections"`
	ExtraConnections   []models.EdgePair `json:"extra_connections"`
	MissingNeurons     []string          `json:"missing_neurons"`

	// SimulatedBehavior is set when a stimulus was provided and a
	// simulation ran before scoring.
	SimulatedBehavior string `json:"simulated_behavior,omitempty"`

	Message string `json:"message" jsonschema:"Human-readable result summary"`
}

// SuggestInput defines the input for the worm_suggest tool.
type SuggestInput struct {
	Name     string                  `json:"name,omitempty" jsonschema:"Name of a stored circuit"`
	Circuit  *models.CircuitDocument `json:"circuit,omitempty" jsonschema:"Inline circuit document; takes precedence over name"`
	Behavior string                  `json:"behavior,omitempty" jsonschema:"Behavior to recommend connections for; pathway hints are behavior-independent"`
}

// SuggestOutput defines the output for the worm_suggest tool.
type SuggestOutput struct {
	Connections []models.ConnectionSuggestion `json:"connections" jsonschema:"Reference connections whose endpoints exist but whose edge is missing"`
	Pathways    []models.PathwaySuggestion    `json:"pathways" jsonschema:"Partially built reference pathways with their missing neurons"`
	Message     string                        `json:"message" jsonschema:"Human-readable result summary"`
}

// BehaviorsInput defines the input for the worm_behaviors tool.
type BehaviorsInput struct{}

// BehaviorsOutput defines the output for the worm_behaviors tool.
type BehaviorsOutput struct {
	Version   string            `json:"version" jsonschema:"Reference connectome dataset version"`
	Behaviors []BehaviorSummary `json:"behaviors"`
	Count     int               `json:"count"`
}

// BehaviorSummary provides a list view of one reference behavior.
type BehaviorSummary struct {
	Behavior            string   `json:"behavior"`
	Stimulus            string   `json:"stimulus" jsonschema:"Stimulus that canonically elicits the behavior"`
	RequiredNeurons     int      `json:"required_neurons"`
	RequiredConnections int      `json:"required_connections"`
	Pathways            []string `json:"pathways"`
}
