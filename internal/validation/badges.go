package validation

// Badge identifiers shown to the learner.
const (
	BadgeConnectomeMaster = "Connectome Master"
	BadgeCompleteCircuit  = "Complete Circuit"
	BadgePerfectAccuracy  = "Perfect Accuracy"
	BadgePathwayPioneer   = "Pathway Pioneer"
	BadgeFirstSynapse     = "First Synapse"
)

// badgeRule unlocks a badge from the numeric breakdown alone. Rules are
// declarative and evaluated fresh on every validation; no state accumulates
// between calls.
type badgeRule struct {
	ID       string
	Unlocked func(b Breakdown) bool
}

var badgeRules = []badgeRule{
	{BadgeFirstSynapse, func(b Breakdown) bool {
		return b.Correct >= 1
	}},
	{BadgeCompleteCircuit, func(b Breakdown) bool {
		return b.Missing == 0 && b.RequiredConnections > 0
	}},
	{BadgePerfectAccuracy, func(b Breakdown) bool {
		return b.Accuracy == 100 && b.Correct > 0
	}},
	{BadgePathwayPioneer, func(b Breakdown) bool {
		return b.Pathway == 100 && b.PathwaysTotal > 0
	}},
	{BadgeConnectomeMaster, func(b Breakdown) bool {
		return b.Overall >= 90
	}},
}

// unlockedBadges evaluates every badge rule against the breakdown.
func unlockedBadges(b Breakdown) []string {
	badges := make([]string, 0, len(badgeRules))
	for _, rule := range badgeRules {
		if rule.Unlocked(b) {
			badges = append(badges, rule.ID)
		}
	}
	return badges
}
