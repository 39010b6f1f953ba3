package port

import "context"

// CompletionRequest is a single system-instructed prompt for a language model.
type CompletionRequest struct {
	System string
	Prompt string
}

// LanguageModel abstracts one configured LLM. Implementations return the raw
// completion text; callers are responsible for digging structured data out of
// whatever prose surrounds it.
type LanguageModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ModelCatalog resolves a caller-supplied model id to a configured model.
// The id is an opaque selector; unknown ids resolve to the catalog default.
type ModelCatalog interface {
	Model(id string) LanguageModel
}
