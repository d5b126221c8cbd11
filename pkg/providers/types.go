package providers

import (
	"context"
	"time"
)

// GenerateOptions carries per-call sampling and budget knobs. Zero values
// mean "use the provider default".
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Stop        []string
	Timeout     time.Duration
}

// Generator produces a single completion for an already-assembled prompt.
// The system prompt travels separately so providers that have a native
// system slot can use it.
type Generator interface {
	Name() string
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)
}
