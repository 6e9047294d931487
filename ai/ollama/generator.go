package ollama

import (
	"context"
	"log/slog"

	"github.com/poiesic/answerit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Generator implements ai.Generator against a local Ollama server.
type Generator struct {
	client *ollama.LLM
	config *ai.Config
	logger *slog.Logger
}

var _ ai.Generator = (*Generator)(nil)

// NewGenerator creates a generator from config. The server is not contacted
// until the first Generate call.
func NewGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		config: config,
		logger: slog.Default().With("component", "ollama"),
	}, nil
}

// Generate returns the model's response for prompt, bounded by the
// configured timeout.
func (g *Generator) Generate(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	params := &ai.GenerateParams{}
	for _, opt := range opts {
		opt(params)
	}
	temperature := g.config.Temperature
	if params.Temperature != nil {
		temperature = *params.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt,
		llms.WithTemperature(temperature),
		llms.WithTopP(g.config.TopP),
		llms.WithMaxTokens(g.config.MaxTokens),
	)
	if err != nil {
		g.logger.Error("generation failed", "model", g.config.Model, "err", err)
		return "", err
	}
	return response, nil
}

// Close releases client resources. The Ollama client is stateless, so this
// is a no-op kept for interface symmetry.
func (g *Generator) Close() error {
	return nil
}
