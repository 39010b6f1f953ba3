package llm

import (
	"itinera/internal/config"
	"itinera/internal/llm/anthropic"
	"itinera/internal/llm/ollama"
	"itinera/internal/llm/openai"
)

// BuildCatalog assembles the model catalog from provider configs. Each
// provider's Models entry is a list of "catalogID=providerModel" pairs (a bare
// id maps to itself).
func BuildCatalog(cfg *config.LLMConfig) *Catalog {
	catalog := NewCatalog(cfg.DefaultModel)

	for _, entry := range cfg.Ollama.Models {
		id, model := SplitModelEntry(entry)
		if id == "" {
			continue
		}
		catalog.Register(id, ollama.NewClient(&cfg.Ollama, model))
	}
	if cfg.OpenAI.APIKey != "" {
		for _, entry := range cfg.OpenAI.Models {
			id, model := SplitModelEntry(entry)
			if id == "" {
				continue
			}
			catalog.Register(id, openai.NewClient(&cfg.OpenAI, model))
		}
	}
	if cfg.Anthropic.APIKey != "" {
		for _, entry := range cfg.Anthropic.Models {
			id, model := SplitModelEntry(entry)
			if id == "" {
				continue
			}
			catalog.Register(id, anthropic.NewClient(&cfg.Anthropic, model))
		}
	}

	return catalog
}
