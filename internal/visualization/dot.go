// Package visualization renders circuit graphs in various output formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// nodeColors maps neuron types to DOT colors.
var nodeColors = map[models.NeuronType]string{
	models.NeuronTypeSensory:     "steelblue",
	models.NeuronTypeInterneuron: "goldenrod",
	models.NeuronTypeCommand:     "tomato",
	models.NeuronTypeMotor:       "mediumseagreen",
}

// edgeStyles maps synapse kinds to DOT styles.
var edgeStyles = map[models.SynapseKind]string{
	models.SynapseExcitatory: "solid",
	models.SynapseInhibitory: "dashed",
	models.SynapseElectrical: "bold",
}

// RenderDOT produces a Graphviz DOT representation of the circuit snapshot.
// Gap junctions render undirected (dir=none); chemical synapses keep their
// direction, inhibitory ones with a tee arrowhead.
func RenderDOT(snap *circuit.Snapshot) string {
	var b strings.Builder
	b.WriteString("digraph wormquest {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=ellipse, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, neuron := range snap.Neurons() {
		color := nodeColors[neuron.Type]
		if color == "" {
			color = "lightgray"
		}

		label := neuron.ID
		if neuron.Name != "" {
			label = fmt.Sprintf("%s\\n%s", neuron.ID, truncate(neuron.Name, 30))
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=%q];\n",
			neuron.ID, label, color, string(neuron.Type)))
	}
	b.WriteString("\n")

	for _, conn := range snap.Connections() {
		style := edgeStyles[conn.Kind]
		if style == "" {
			style = "solid"
		}

		attrs := fmt.Sprintf("label=\"%.0f\", style=%s", conn.Weight, style)
		switch conn.Kind {
		case models.SynapseElectrical:
			attrs += ", dir=none"
		case models.SynapseInhibitory:
			attrs += ", arrowhead=tee"
		}

		b.WriteString(fmt.Sprintf("  %q -> %q [%s];\n", conn.From, conn.To, attrs))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-marshalable graph representation with nodes and
// edges arrays.
func RenderJSON(snap *circuit.Snapshot) map[string]interface{} {
	neurons := snap.Neurons()
	jsonNodes := make([]map[string]interface{}, 0, len(neurons))
	for _, neuron := range neurons {
		jsonNodes = append(jsonNodes, map[string]interface{}{
			"id":       neuron.ID,
			"type":     string(neuron.Type),
			"name":     neuron.Name,
			"function": neuron.Function,
		})
	}

	connections := snap.Connections()
	jsonEdges := make([]map[string]interface{}, 0, len(connections))
	for _, conn := range connections {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"from":   conn.From,
			"to":     conn.To,
			"kind":   string(conn.Kind),
			"weight": conn.Weight,
		})
	}

	return map[string]interface{}{
		"name":       snap.Name,
		"nodes":      jsonNodes,
		"edges":      jsonEdges,
		"node_count": len(jsonNodes),
		"edge_count": len(jsonEdges),
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
