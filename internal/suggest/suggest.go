// Package suggest derives actionable hints from the gap between a
// learner's circuit and the reference connectome. Both derivations are
// pure and read-only; they never mutate the circuit.
package suggest

import (
	"sort"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/connectome"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// RecommendConnections returns, for the target behavior, every reference
// connection whose endpoints already exist in the circuit but whose edge is
// absent, carrying the reference kind and weight. Sorted by (from, to).
// A behavior without a reference yields no recommendations.
func RecommendConnections(snap *circuit.Snapshot, behavior models.Behavior, conn *connectome.Connectome) []models.ConnectionSuggestion {
	out := make([]models.ConnectionSuggestion, 0)

	ref, ok := conn.ForBehavior(behavior)
	if !ok {
		return out
	}

	for _, rc := range ref.RequiredConnections {
		if !snap.HasNeuron(rc.From) || !snap.HasNeuron(rc.To) {
			continue
		}
		if snap.HasConnection(rc.From, rc.To) {
			continue
		}
		out = append(out, models.ConnectionSuggestion{
			From:   rc.From,
			To:     rc.To,
			Kind:   rc.Kind,
			Weight: rc.Weight,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// SuggestPathways returns, across all behaviors, every reference pathway
// with at least one but not all member neurons present in the circuit,
// listing the missing members. Sorted by pathway name.
func SuggestPathways(snap *circuit.Snapshot, conn *connectome.Connectome) []models.PathwaySuggestion {
	out := make([]models.PathwaySuggestion, 0)

	for _, behavior := range conn.Behaviors() {
		ref, _ := conn.ForBehavior(behavior)
		for _, p := range ref.Pathways {
			present := 0
			missing := make([]string, 0)
			for _, id := range p.Neurons {
				if snap.HasNeuron(id) {
					present++
				} else {
					missing = append(missing, id)
				}
			}
			if present == 0 || len(missing) == 0 {
				continue
			}
			sort.Strings(missing)
			out = append(out, models.PathwaySuggestion{
				PathwayName:    p.Name,
				MissingNeurons: missing,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PathwayName < out[j].PathwayName })
	return out
}
