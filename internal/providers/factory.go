package providers

import (
	"fmt"

	"chronocorpus/internal/config"
)

// NewEmbedder builds the embedding backend named by configuration. The
// index and eval stages must use the same backend or query vectors will not
// live in the corpus vector space.
func NewEmbedder(cfg config.Config) (EmbeddingProvider, error) {
	switch cfg.EmbedBackend {
	case "mock":
		return NewMockProvider(cfg.EmbedDim), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return NewOllamaEmbeddingProvider(cfg.EmbedModel), nil
	}
	return nil, fmt.Errorf("unsupported embedding backend: %s", cfg.EmbedBackend)
}
