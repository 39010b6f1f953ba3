package parser

import (
	"context"
	"log"

	"itinera/internal/port"
)

const (
	agentClassifier = "classifier"
	agentExtractor  = "extractor"
	agentValidator  = "validator"
	agentComplete   = "complete"
)

// Pipeline runs the three parsing stages strictly in sequence. It never
// aborts on a stage's soft failure: even a fully degraded run proceeds
// through all three stages and returns a terminal state with accumulated
// errors, leaving the confidence threshold decision to the caller.
type Pipeline struct {
	catalog port.ModelCatalog
}

// New creates a Pipeline backed by the given model catalog.
func New(catalog port.ModelCatalog) *Pipeline {
	return &Pipeline{catalog: catalog}
}

// ParseDocument runs classifier → extractor → validator over rawText using
// the model selected by modelID and returns the final state. It always
// terminates with a well-formed state and never returns an error.
func (p *Pipeline) ParseDocument(ctx context.Context, rawText, modelID string) State {
	model := p.catalog.Model(modelID)

	log.Printf("parser.ParseDocument: starting with model %q", modelID)

	st := NewState(rawText)

	st = Classify(ctx, model, st.withAgent(agentClassifier)).withAgent(agentExtractor)
	st = Extract(ctx, model, st).withAgent(agentValidator)
	st = Validate(ctx, model, st).withAgent(agentComplete)

	log.Printf("parser.ParseDocument: completed type=%s confidence=%.2f errors=%d",
		st.DocumentType, st.Confidence, len(st.Errors))

	return st
}
