package models

// SimulationResult is the outcome of propagating a stimulus through a
// circuit. It is produced fresh on every run and never mutated afterward;
// callers discard stale results when the circuit changes.
type SimulationResult struct {
	// Behavior is the classified behavior for the run.
	Behavior Behavior `json:"behavior" yaml:"behavior"`

	// ActiveNeurons lists every neuron that crossed the activation
	// threshold, sorted ascending by ID.
	ActiveNeurons []string `json:"active_neurons" yaml:"active_neurons"`

	// SignalPath is the BFS visitation order, entry neurons first.
	SignalPath []string `json:"signal_path" yaml:"signal_path"`

	// Truncated is set when the dequeue budget was exhausted and the
	// result is best-effort. A diagnostic, not a failure.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// Grade is a letter grade derived from the overall validation score.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// ValidationResult is the outcome of scoring a circuit against the
// reference connectome for a target behavior. All scores are in [0, 100].
// Recomputed on every call; the core never persists it.
type ValidationResult struct {
	// HasReference is false when the connectome carries no reference for
	// the target behavior. In that case all scores are zero and callers
	// must suppress scoring rather than treat the result as failure.
	HasReference bool `json:"has_reference" yaml:"has_reference"`

	Behavior Behavior `json:"behavior" yaml:"behavior"`

	OverallScore      int `json:"overall_score" yaml:"overall_score"`
	AccuracyScore     int `json:"accuracy_score" yaml:"accuracy_score"`
	CompletenessScore int `json:"completeness_score" yaml:"completeness_score"`
	PathwayScore      int `json:"pathway_score" yaml:"pathway_score"`

	Grade  Grade    `json:"grade" yaml:"grade"`
	Badges []string `json:"badges" yaml:"badges"`

	// Feedback is an ordered list of diagnostic strings derived purely
	// from the numeric breakdown.
	Feedback []string `json:"feedback" yaml:"feedback"`

	// CorrectConnections and MissingConnections partition the reference's
	// required connections; ExtraConnections are wired but not required
	// (flagged, not penalized as wrong). All sorted by (from, to).
	CorrectConnections []EdgePair `json:"correct_connections" yaml:"correct_connections"`
	MissingConnections []EdgePair `json:"missing_connections" yaml:"missing_connections"`
	ExtraConnections   []EdgePair `json:"extra_connections" yaml:"extra_connections"`

	// MissingNeurons are required neurons absent from the circuit,
	// sorted ascending by ID.
	MissingNeurons []string `json:"missing_neurons" yaml:"missing_neurons"`
}

// ConnectionSuggestion recommends a reference connection whose endpoints
// already exist in the circuit but whose edge is absent.
type ConnectionSuggestion struct {
	From   string      `json:"from" yaml:"from"`
	To     string      `json:"to" yaml:"to"`
	Kind   SynapseKind `json:"kind" yaml:"kind"`
	Weight float64     `json:"weight" yaml:"weight"`
}

// PathwaySuggestion reports a reference pathway that is partially present
// in the circuit, with the neurons still missing.
type PathwaySuggestion struct {
	PathwayName    string   `json:"pathway_name" yaml:"pathway_name"`
	MissingNeurons []string `json:"missing_neurons" yaml:"missing_neurons"`
}
