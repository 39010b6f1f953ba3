package parser

import (
	"unicode/utf8"

	"itinera/internal/domain"
)

// State is the record threaded through the pipeline. Stages never mutate the
// state they receive; each returns a new value derived from its input. Errors
// is append-only and accumulates soft failures and informational notes from
// every stage.
type State struct {
	RawText       string
	DocumentType  domain.DocumentType
	ExtractedData map[string]any
	ValidatedData map[string]any
	Confidence    float64
	Errors        []string
	CurrentAgent  string
}

// NewState builds the initial state for a parse run.
func NewState(rawText string) State {
	return State{
		RawText:       rawText,
		DocumentType:  domain.DocumentTypeUnknown,
		ExtractedData: map[string]any{},
		ValidatedData: map[string]any{},
		Confidence:    0,
		Errors:        []string{},
		CurrentAgent:  agentClassifier,
	}
}

// withErrors returns a copy of s with msgs appended. The errors slice is
// copied so the input state's history is never aliased.
func (s State) withErrors(msgs ...string) State {
	errs := make([]string, 0, len(s.Errors)+len(msgs))
	errs = append(errs, s.Errors...)
	errs = append(errs, msgs...)
	s.Errors = errs
	return s
}

// withAgent returns a copy of s owned by the named agent.
func (s State) withAgent(agent string) State {
	s.CurrentAgent = agent
	return s
}

// truncate bounds text to at most n bytes to control prompt size. The cut
// backs off to a rune boundary so a multi-byte character is never split.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// clampConfidence forces c into [0,1].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
