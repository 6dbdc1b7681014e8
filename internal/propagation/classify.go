package propagation

import "github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"

// Command cell groups inspected by the behavior decision table.
var (
	backwardCommand = []string{"AVAL", "AVAR"}
	forwardCommand  = []string{"AVBL", "AVBR"}
	turnCommand     = []string{"AIBL", "AIBR", "RIVL", "RIVR"}
)

// classificationRule matches when at least one cell in AnyActive is active
// and no cell in NoneActive is.
type classificationRule struct {
	Behavior   models.Behavior
	AnyActive  []string
	NoneActive []string
}

// classificationRules is the behavior decision table in declared priority
// order. Order mirrors command-neuron dominance: the reversal command pair
// suppresses forward drive, and turn cells only decide when neither command
// pair does. Both command pairs active, or neither, resolves to no_movement
// by falling through the table, never by comparing activation magnitudes.
var classificationRules = []classificationRule{
	{
		Behavior:   models.BehaviorBackward,
		AnyActive:  backwardCommand,
		NoneActive: forwardCommand,
	},
	{
		Behavior:   models.BehaviorForward,
		AnyActive:  forwardCommand,
		NoneActive: backwardCommand,
	},
	{
		Behavior:   models.BehaviorOmegaTurn,
		AnyActive:  turnCommand,
		NoneActive: append(append([]string{}, backwardCommand...), forwardCommand...),
	},
}

// Classify maps the set of active neurons to a behavior by walking the
// decision table in priority order.
func Classify(active map[string]bool) models.Behavior {
	for _, rule := range classificationRules {
		if rule.matches(active) {
			return rule.Behavior
		}
	}
	return models.BehaviorNoMovement
}

func (r classificationRule) matches(active map[string]bool) bool {
	anyHit := false
	for _, id := range r.AnyActive {
		if active[id] {
			anyHit = true
			break
		}
	}
	if !anyHit {
		return false
	}
	for _, id := range r.NoneActive {
		if active[id] {
			return false
		}
	}
	return true
}
