package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"itinera/internal/config"
	"itinera/internal/llm"
	"itinera/internal/port"
	"itinera/mocks"
)

func TestCatalog_ResolvesRegisteredModel(t *testing.T) {
	def := new(mocks.MockLanguageModel)
	other := new(mocks.MockLanguageModel)

	c := llm.NewCatalog("default-model")
	c.Register("default-model", def)
	c.Register("other-model", other)

	assert.Same(t, port.LanguageModel(other), c.Model("other-model"))
}

func TestCatalog_UnknownIDFallsBackToDefault(t *testing.T) {
	def := new(mocks.MockLanguageModel)
	def.On("Complete", mock.Anything, mock.Anything).Return("ok", nil)

	c := llm.NewCatalog("default-model")
	c.Register("default-model", def)

	got, err := c.Model("never-registered").Complete(context.Background(), port.CompletionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestCatalog_NoDefaultYieldsFailingModel(t *testing.T) {
	c := llm.NewCatalog("missing-default")

	_, err := c.Model("anything").Complete(context.Background(), port.CompletionRequest{})
	assert.Error(t, err)
}

func TestBuildCatalog_RegistersConfiguredProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		DefaultModel: "ollama-qwen3-32b",
		Ollama: config.ModelProviderConfig{
			Endpoint: "http://localhost:11434",
			Models:   []string{"ollama-qwen3-32b=qwen3:32b"},
		},
		OpenAI: config.ModelProviderConfig{
			// No API key: these models must not be registered.
			Models: []string{"gpt-4o"},
		},
		Anthropic: config.ModelProviderConfig{
			APIKey: "sk-test",
			Models: []string{"claude-sonnet=claude-sonnet-4-0"},
		},
	}

	c := llm.BuildCatalog(cfg)
	ids := c.IDs()

	assert.Contains(t, ids, "ollama-qwen3-32b")
	assert.Contains(t, ids, "claude-sonnet")
	assert.NotContains(t, ids, "gpt-4o")
}

func TestSplitModelEntry(t *testing.T) {
	id, providerModel := llm.SplitModelEntry("ollama-qwen3-32b=qwen3:32b")
	assert.Equal(t, "ollama-qwen3-32b", id)
	assert.Equal(t, "qwen3:32b", providerModel)

	id, providerModel = llm.SplitModelEntry(" gpt-4o ")
	assert.Equal(t, "gpt-4o", id)
	assert.Equal(t, "gpt-4o", providerModel)
}
