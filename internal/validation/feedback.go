package validation

import (
	"fmt"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// buildFeedback renders the ordered diagnostic strings for a scored
// circuit. Templates are driven purely by the numeric breakdown; nothing
// here calls out to any narrative or AI service.
func buildFeedback(b Breakdown) []string {
	feedback := []string{overallLine(b.Overall)}

	if b.Missing > 0 {
		feedback = append(feedback, fmt.Sprintf(
			"Your circuit wires %d of %d required connections; %d still missing.",
			b.Correct, b.RequiredConnections, b.Missing))
	} else if b.RequiredConnections > 0 {
		feedback = append(feedback, fmt.Sprintf(
			"All %d required connections are wired.", b.RequiredConnections))
	}

	if b.Extra > 0 {
		feedback = append(feedback, fmt.Sprintf(
			"%d extra connection(s) fall outside the minimal reference for this behavior. They are flagged, not penalized as wrong.",
			b.Extra))
	}

	if b.MissingNeurons > 0 {
		feedback = append(feedback, fmt.Sprintf(
			"%d required neuron(s) are absent from the circuit.", b.MissingNeurons))
	}

	feedback = append(feedback, fmt.Sprintf(
		"%d of %d reference pathways are fully represented.",
		b.PathwaysCovered, b.PathwaysTotal))

	return feedback
}

// overallLine summarizes the overall score in one sentence.
func overallLine(overall int) string {
	switch {
	case overall >= 95:
		return fmt.Sprintf("Outstanding! Overall score %d/100 — this circuit matches the reference connectome.", overall)
	case overall >= 85:
		return fmt.Sprintf("Excellent work. Overall score %d/100.", overall)
	case overall >= 70:
		return fmt.Sprintf("Good circuit. Overall score %d/100 — a few connections short of the reference.", overall)
	case overall >= 50:
		return fmt.Sprintf("Solid start. Overall score %d/100 — keep wiring toward the reference pathways.", overall)
	case overall >= 30:
		return fmt.Sprintf("Overall score %d/100. Compare your wiring against the required connections.", overall)
	default:
		return fmt.Sprintf("Overall score %d/100. Start from the sensory cells and wire toward the command neurons.", overall)
	}
}

// noReferenceFeedback explains a validation that could not be scored.
func noReferenceFeedback(behavior models.Behavior) []string {
	return []string{fmt.Sprintf(
		"No curated reference exists for behavior %q; scoring is suppressed.", behavior)}
}
