package llm

import (
	"context"
	"fmt"
	"strings"

	"itinera/internal/port"
)

// Catalog maps opaque model ids to configured language models. Unknown ids
// resolve to the default model; a catalog with no usable default resolves to
// a model whose calls fail, which the pipeline degrades on without crashing.
type Catalog struct {
	models    map[string]port.LanguageModel
	defaultID string
}

// NewCatalog creates an empty catalog with the given default model id.
func NewCatalog(defaultID string) *Catalog {
	return &Catalog{
		models:    map[string]port.LanguageModel{},
		defaultID: defaultID,
	}
}

// Register adds a model under the given catalog id.
func (c *Catalog) Register(id string, m port.LanguageModel) {
	c.models[id] = m
}

// Model resolves id to a configured model, falling back to the default.
func (c *Catalog) Model(id string) port.LanguageModel {
	if m, ok := c.models[id]; ok {
		return m
	}
	if m, ok := c.models[c.defaultID]; ok {
		return m
	}
	return unconfiguredModel{id: id}
}

// IDs returns the registered catalog ids.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.models))
	for id := range c.models {
		ids = append(ids, id)
	}
	return ids
}

type unconfiguredModel struct {
	id string
}

func (m unconfiguredModel) Complete(context.Context, port.CompletionRequest) (string, error) {
	return "", fmt.Errorf("no model configured for id %q and no default available", m.id)
}

// SplitModelEntry parses a catalog entry of the form "catalogID=providerModel".
// A bare id maps to itself as the provider-side model name.
func SplitModelEntry(entry string) (catalogID, providerModel string) {
	entry = strings.TrimSpace(entry)
	if i := strings.Index(entry, "="); i >= 0 {
		return entry[:i], entry[i+1:]
	}
	return entry, entry
}
