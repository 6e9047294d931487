package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/poiesic/answerit/ai"
)

// ErrNoResponses is returned when the script runs out of responses.
var ErrNoResponses = errors.New("mock: no scripted responses left")

// Generator is a scripted ai.Generator for tests. Each Generate call
// consumes the next scripted response in order. Safe for concurrent use.
type Generator struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	temps     []*float64
}

var _ ai.Generator = (*Generator)(nil)

// NewGenerator creates a generator that returns responses in order.
func NewGenerator(responses ...string) *Generator {
	return &Generator{responses: responses}
}

// NewFailingGenerator creates a generator whose every call fails with err.
func NewFailingGenerator(err error) *Generator {
	return &Generator{err: err}
}

// Generate returns the next scripted response and records the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &ai.GenerateParams{}
	for _, opt := range opts {
		opt(params)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	g.temps = append(g.temps, params.Temperature)

	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", ErrNoResponses
	}
	response := g.responses[0]
	g.responses = g.responses[1:]
	return response, nil
}

// Close implements ai.Generator.
func (g *Generator) Close() error {
	return nil
}

// Prompts returns every prompt seen so far, in call order.
func (g *Generator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// CallTemperatures returns the per-call temperature overrides, nil where a
// call used the configured default.
func (g *Generator) CallTemperatures() []*float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*float64(nil), g.temps...)
}

// Calls returns the number of Generate calls made.
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
