// Package llm defines the narrow contract between the expansion pipeline
// and hosted language model providers, plus the error taxonomy shared by
// every provider implementation.
package llm

import (
	"context"
)

// LLM defines the interface for remote completion providers. Given a fully
// built prompt it returns the raw text completion. Implementations make
// exactly one logical remote call per invocation (transient retries aside)
// and hold no state between calls.
type LLM interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Option defines functional options for completion calls
type Option func(*Options)

// Options holds per-call configuration for completion requests
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

// WithTemperature sets the sampling temperature for the completion
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// WithMaxTokens caps the length of the completion
func WithMaxTokens(tokens int) Option {
	return func(o *Options) {
		o.MaxTokens = tokens
	}
}

// WithModel overrides the provider's configured model
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}
