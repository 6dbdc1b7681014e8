// Package validation scores a learner's circuit against the curated
// reference connectome. Scoring is pure and idempotent: the same snapshot,
// behavior, and connectome always produce an identical result, and nothing
// is accumulated between calls.
package validation

import (
	"math"
	"sort"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// Config holds the scoring weights and grade cutoffs.
type Config struct {
	// Component weights; normalized to sum to 1 if they do not.
	AccuracyWeight     float64
	CompletenessWeight float64
	PathwayWeight      float64

	// GradeCutoffs map a minimum overall score to a grade, checked in
	// order. Must be monotonic descending; anything below the last
	// cutoff grades F.
	GradeCutoffs []GradeCutoff
}

// GradeCutoff is one row of the grade table.
type GradeCutoff struct {
	MinScore int
	Grade    models.Grade
}

// DefaultConfig returns the documented scoring configuration:
// overall = 0.4 x accuracy + 0.4 x completeness + 0.2 x pathway,
// grades >=95 A+, >=85 A, >=70 B, >=50 C, >=30 D, else F.
func DefaultConfig() Config {
	return Config{
		AccuracyWeight:     0.4,
		CompletenessWeight: 0.4,
		PathwayWeight:      0.2,
		GradeCutoffs: []GradeCutoff{
			{95, models.GradeAPlus},
			{85, models.GradeA},
			{70, models.GradeB},
			{50, models.GradeC},
			{30, models.GradeD},
		},
	}
}

// Validator scores circuit snapshots. Stateless and safe for concurrent use.
type Validator struct {
	config Config
}

// NewValidator creates a validator, normalizing the component weights.
func NewValidator(config Config) *Validator {
	total := config.AccuracyWeight + config.CompletenessWeight + config.PathwayWeight
	if total <= 0 {
		config = DefaultConfig()
	} else if total != 1.0 {
		config.AccuracyWeight /= total
		config.CompletenessWeight /= total
		config.PathwayWeight /= total
	}
	if len(config.GradeCutoffs) == 0 {
		config.GradeCutoffs = DefaultConfig().GradeCutoffs
	}
	return &Validator{config: config}
}

// Validate scores the snapshot against the reference for the target
// behavior. A behavior without a reference yields a distinguished result
// with HasReference false so callers suppress the scores, rather than an F.
func (v *Validator) Validate(snap *circuit.Snapshot, behavior models.Behavior, conn *connectome.Connectome) models.ValidationResult {
	ref, ok := conn.ForBehavior(behavior)
	if !ok {
		return models.ValidationResult{
			HasReference:       false,
			Behavior:           behavior,
			Badges:             []string{},
			Feedback:           noReferenceFeedback(behavior),
			CorrectConnections: []models.EdgePair{},
			MissingConnections: []models.EdgePair{},
			ExtraConnections:   []models.EdgePair{},
			MissingNeurons:     []string{},
		}
	}

	required := ref.RequiredPairs()

	// Partition: every required connection is either correct or missing;
	// everything wired beyond the reference is extra (flagged, not wrong).
	correct := make([]models.EdgePair, 0, len(required))
	extra := make([]models.EdgePair, 0)
	for _, wired := range snap.Connections() {
		pair := wired.Pair()
		if _, want := required[pair]; want {
			correct = append(correct, pair)
		} else {
			extra = append(extra, pair)
		}
	}
	missing := make([]models.EdgePair, 0, len(required))
	for pair := range required {
		if !snap.HasConnection(pair.From, pair.To) {
			missing = append(missing, pair)
		}
	}
	sortPairs(correct)
	sortPairs(missing)
	sortPairs(extra)

	missingNeurons := make([]string, 0)
	for _, id := range ref.RequiredNeuronIDs() {
		if !snap.HasNeuron(id) {
			missingNeurons = append(missingNeurons, id)
		}
	}

	covered := 0
	for _, p := range ref.Pathways {
		if pathwayCovered(snap, p) {
			covered++
		}
	}

	accuracy := ratio(len(correct), len(correct)+len(extra))
	completeness := ratio(len(correct), len(required))
	pathway := ratio(covered, len(ref.Pathways))
	overall := int(math.Round(
		v.config.AccuracyWeight*accuracy +
			v.config.CompletenessWeight*completeness +
			v.config.PathwayWeight*pathway))

	breakdown := Breakdown{
		Overall:             overall,
		Accuracy:            int(math.Round(accuracy)),
		Completeness:        int(math.Round(completeness)),
		Pathway:             int(math.Round(pathway)),
		Correct:             len(correct),
		Missing:             len(missing),
		Extra:               len(extra),
		RequiredConnections: len(required),
		PathwaysCovered:     covered,
		PathwaysTotal:       len(ref.Pathways),
		MissingNeurons:      len(missingNeurons),
	}

	return models.ValidationResult{
		HasReference:       true,
		Behavior:           behavior,
		OverallScore:       overall,
		AccuracyScore:      breakdown.Accuracy,
		CompletenessScore:  breakdown.Completeness,
		PathwayScore:       breakdown.Pathway,
		Grade:              v.grade(overall),
		Badges:             unlockedBadges(breakdown),
		Feedback:           buildFeedback(breakdown),
		CorrectConnections: correct,
		MissingConnections: missing,
		ExtraConnections:   extra,
		MissingNeurons:     missingNeurons,
	}
}

// grade maps an overall score to a letter grade via the cutoff table.
func (v *Validator) grade(overall int) models.Grade {
	for _, cut := range v.config.GradeCutoffs {
		if overall >= cut.MinScore {
			return cut.Grade
		}
	}
	return models.GradeF
}

// Breakdown is the numeric summary the badge rules and feedback templates
// are derived from. Derived data only, no graph references.
type Breakdown struct {
	Overall             int
	Accuracy            int
	Completeness        int
	Pathway             int
	Correct             int
	Missing             int
	Extra               int
	RequiredConnections int
	PathwaysCovered     int
	PathwaysTotal       int
	MissingNeurons      int
}

// ratio returns 100*num/den guarded against a zero denominator.
func ratio(num, den int) float64 {
	if den < 1 {
		den = 1
	}
	return 100 * float64(num) / float64(den)
}

func pathwayCovered(snap *circuit.Snapshot, p connectome.Pathway) bool {
	for _, id := range p.Neurons {
		if !snap.HasNeuron(id) {
			return false
		}
	}
	return true
}

func sortPairs(pairs []models.EdgePair) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })
}
