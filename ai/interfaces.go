package ai

import "context"

// Generator produces a free-text answer for a prompt. Implementations must
// be thread-safe for concurrent use.
type Generator interface {
	// Generate returns the model's response for prompt. The opts override
	// per-call sampling parameters.
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// Close releases client resources.
	Close() error
}

// GenerateParams are the per-call sampling overrides.
type GenerateParams struct {
	// Temperature overrides the configured sampling temperature when
	// non-nil.
	Temperature *float64
}

// GenerateOption adjusts one generation call.
type GenerateOption func(*GenerateParams)

// WithCallTemperature overrides the sampling temperature for one call.
func WithCallTemperature(temperature float64) GenerateOption {
	return func(p *GenerateParams) {
		p.Temperature = &temperature
	}
}
