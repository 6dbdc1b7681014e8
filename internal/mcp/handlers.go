package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/store"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/suggest"
)

// registerTools registers all wormquest MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "worm_simulate",
		Description: "Propagate a stimulus through a circuit and classify the resulting behavior",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "worm_validate",
		Description: "Score a circuit against the curated reference connectome for a target behavior",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "worm_suggest",
		Description: "Recommend missing reference connections and partially built pathways for a circuit",
	}, s.handleSuggest)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "worm_behaviors",
		Description: "List the behaviors the reference connectome can validate, with their required circuitry",
	}, s.handleBehaviors)
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() {
	s.server.AddResource(&sdk.Resource{
		URI:         "wormquest://connectome/behaviors",
		Name:        "wormquest-reference-behaviors",
		Description: "The behaviors the curated reference connectome can validate, with required neurons and pathways.",
		MIMEType:    "text/markdown",
	}, s.handleConnectomeResource)
}

// handleConnectomeResource returns the reference behavior catalog formatted
// for context injection.
func (s *Server) handleConnectomeResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	var sb strings.Builder
	sb.WriteString("# Reference Connectome\n\n")
	sb.WriteString(fmt.Sprintf("Dataset version %s.\n\n", s.connectome.Version))

	for _, behavior := range s.connectome.Behaviors() {
		ref, _ := s.connectome.ForBehavior(behavior)
		sb.WriteString(fmt.Sprintf("## %s\n\n", behavior))
		sb.WriteString(fmt.Sprintf("Elicited by `%s`.\n\n", ref.Stimulus))

		sb.WriteString("Required neurons:\n")
		for _, n := range ref.RequiredNeurons {
			if n.Name != "" {
				sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", n.ID, n.Type, n.Name))
			} else {
				sb.WriteString(fmt.Sprintf("- **%s** (%s)\n", n.ID, n.Type))
			}
		}

		if len(ref.Pathways) > 0 {
			sb.WriteString("\nPathways:\n")
			for _, p := range ref.Pathways {
				sb.WriteString(fmt.Sprintf("- %s: %s\n", p.Name, strings.Join(p.Neurons, " → ")))
			}
		}
		sb.WriteString("\n")
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      "wormquest://connectome/behaviors",
				MIMEType: "text/markdown",
				Text:     sb.String(),
			},
		},
	}, nil
}

// resolveSnapshot materializes the circuit a tool call refers to: an inline
// document takes precedence, otherwise the named stored circuit is loaded.
func (s *Server) resolveSnapshot(ctx context.Context, name string, doc *models.CircuitDocument) (*circuit.Snapshot, error) {
	if doc == nil {
		if name == "" {
			return nil, fmt.Errorf("either circuit or name is required")
		}
		stored, err := s.store.LoadCircuit(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("loading circuit %q: %w", name, err)
		}
		if stored == nil {
			return nil, fmt.Errorf("circuit %q not found", name)
		}
		doc = stored
	}

	c, err := circuit.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("building circuit: %w", err)
	}
	return c.Snapshot(), nil
}

// handleSimulate implements the worm_simulate tool.
func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (_ *sdk.CallToolResult, _ SimulateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("worm_simulate", start, retErr, sanitizeToolParams(map[string]interface{}{
			"name": args.Name, "circuit": args.Circuit, "stimulus": args.Stimulus,
		}))
	}()

	stimulus, err := models.ParseStimulus(args.Stimulus)
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	snap, err := s.resolveSnapshot(ctx, args.Name, args.Circuit)
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	result := s.engine.Simulate(snap, stimulus)

	msg := fmt.Sprintf("Stimulus %s activated %d of %d neurons; predicted behavior: %s.",
		stimulus, len(result.ActiveNeurons), snap.Len(), result.Behavior)
	if result.Truncated {
		msg += " Propagation budget was exhausted; the result is best-effort."
	}

	return nil, SimulateOutput{
		Behavior:      string(result.Behavior),
		ActiveNeurons: result.ActiveNeurons,
		SignalPath:    result.SignalPath,
		Truncated:     result.Truncated,
		Message:       msg,
	}, nil
}

// handleValidate implements the worm_validate tool.
func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (_ *sdk.CallToolResult, _ ValidateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("worm_validate", start, retErr, sanitizeToolParams(map[string]interface{}{
			"name": args.Name, "circuit": args.Circuit, "behavior": args.Behavior, "stimulus": args.Stimulus,
		}))
	}()

	snap, err := s.resolveSnapshot(ctx, args.Name, args.Circuit)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	var simulated models.Behavior
	if args.Stimulus != "" {
		stimulus, err := models.ParseStimulus(args.Stimulus)
		if err != nil {
			return nil, ValidateOutput{}, err
		}
		simulated = s.engine.Simulate(snap, stimulus).Behavior
	}

	behavior := simulated
	if args.Behavior != "" {
		behavior, err = models.ParseBehavior(args.Behavior)
		if err != nil {
			return nil, ValidateOutput{}, err
		}
	}
	if behavior == "" {
		return nil, ValidateOutput{}, fmt.Errorf("either behavior or stimulus is required")
	}

	result := s.validator.Validate(snap, behavior, s.connectome)

	msg := fmt.Sprintf("Scored %d/100 (%s) for %s.", result.OverallScore, result.Grade, behavior)
	if !result.HasReference {
		msg = fmt.Sprintf("No curated reference exists for %s; scoring was skipped.", behavior)
	}

	// Stored circuits accumulate a run history; inline documents do not.
	if args.Name != "" && result.HasReference {
		stimulus, _ := models.ParseStimulus(args.Stimulus)
		if _, err := s.store.RecordRun(ctx, store.RunRecord{
			Circuit:      args.Name,
			Stimulus:     stimulus,
			Behavior:     behavior,
			OverallScore: result.OverallScore,
			Grade:        result.Grade,
		}); err != nil {
			return nil, ValidateOutput{}, fmt.Errorf("recording run: %w", err)
		}
	}

	return nil, ValidateOutput{
		HasReference:       result.HasReference,
		Behavior:           string(result.Behavior),
		OverallScore:       result.OverallScore,
		AccuracyScore:      result.AccuracyScore,
		CompletenessScore:  result.CompletenessScore,
		PathwayScore:       result.PathwayScore,
		Grade:              string(result.Grade),
		Badges:             result.Badges,
		Feedback:           result.Feedback,
		CorrectConnections: result.CorrectConnections,
		MissingConnections: result.MissingConnections,
		ExtraConnections:   result.ExtraConnections,
		MissingNeurons:     result.MissingNeurons,
		SimulatedBehavior:  string(simulated),
		Message:            msg,
	}, nil
}

// handleSuggest implements the worm_suggest tool.
func (s *Server) handleSuggest(ctx context.Context, req *sdk.CallToolRequest, args SuggestInput) (_ *sdk.CallToolResult, _ SuggestOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("worm_suggest", start, retErr, sanitizeToolParams(map[string]interface{}{
			"name": args.Name, "circuit": args.Circuit, "behavior": args.Behavior,
		}))
	}()

	snap, err := s.resolveSnapshot(ctx, args.Name, args.Circuit)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	connections := []models.ConnectionSuggestion{}
	if args.Behavior != "" {
		behavior, err := models.ParseBehavior(args.Behavior)
		if err != nil {
			return nil, SuggestOutput{}, err
		}
		connections = suggest.RecommendConnections(snap, behavior, s.connectome)
	}

	pathways := suggest.SuggestPathways(snap, s.connectome)

	msg := fmt.Sprintf("%d connection recommendations, %d pathway hints.", len(connections), len(pathways))
	if args.Behavior == "" {
		msg += " Provide a behavior to get connection recommendations."
	}

	return nil, SuggestOutput{
		Connections: connections,
		Pathways:    pathways,
		Message:     msg,
	}, nil
}

// handleBehaviors implements the worm_behaviors tool.
func (s *Server) handleBehaviors(ctx context.Context, req *sdk.CallToolRequest, args BehaviorsInput) (_ *sdk.CallToolResult, _ BehaviorsOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("worm_behaviors", start, retErr, nil)
	}()

	behaviors := s.connectome.Behaviors()
	summaries := make([]BehaviorSummary, 0, len(behaviors))
	for _, behavior := range behaviors {
		ref, _ := s.connectome.ForBehavior(behavior)
		pathways := make([]string, 0, len(ref.Pathways))
		for _, p := range ref.Pathways {
			pathways = append(pathways, p.Name)
		}
		summaries = append(summaries, BehaviorSummary{
			Behavior:            string(behavior),
			Stimulus:            string(ref.Stimulus),
			RequiredNeurons:     len(ref.RequiredNeurons),
			RequiredConnections: len(ref.RequiredConnections),
			Pathways:            pathways,
		})
	}

	return nil, BehaviorsOutput{
		Version:   s.connectome.Version,
		Behaviors: summaries,
		Count:     len(summaries),
	}, nil
}
