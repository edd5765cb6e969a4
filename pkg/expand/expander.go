package expand

import (
	"context"
	"fmt"
	"time"

	"github.com/lisanmuaddib/expander-go/pkg/llm"
	prompts "github.com/lisanmuaddib/expander-go/pkg/prompts/templates"
	"github.com/sirupsen/logrus"
)

// Config holds the collaborators for an Expander
type Config struct {
	LLM    llm.LLM
	Logger *logrus.Logger
	// Prompt and Normalizer are optional; defaults are used when nil.
	Prompt     *prompts.Builder
	Normalizer *Normalizer
}

// Expander composes the expansion pipeline. It holds no per-request state,
// so a single instance is safe to reuse across independent expansions.
type Expander struct {
	llm        llm.LLM
	logger     *logrus.Logger
	prompt     *prompts.Builder
	normalizer *Normalizer
}

// New creates an Expander from the given configuration
func New(config Config) (*Expander, error) {
	if config.LLM == nil {
		return nil, fmt.Errorf("llm is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	prompt := config.Prompt
	if prompt == nil {
		prompt = prompts.NewExpansionPromptBuilder(prompts.ExpansionPromptConfig{})
	}
	normalizer := config.Normalizer
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizerConfig{})
	}

	return &Expander{
		llm:        config.LLM,
		logger:     config.Logger,
		prompt:     prompt,
		normalizer: normalizer,
	}, nil
}

// Expand runs the full pipeline for one request. Prompt building and
// completion errors propagate unchanged; an empty variant list is a valid
// result, not an error.
func (e *Expander) Expand(ctx context.Context, req Request) (*Result, error) {
	expansionID := NewExpansionID()
	log := e.logger.WithFields(logrus.Fields{
		"expansion_id": expansionID,
		"count":        req.Count,
	})

	prompt, err := e.prompt.Build(req.Query, req.Count)
	if err != nil {
		return nil, err
	}

	opts := []llm.Option{}
	if req.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(req.MaxTokens))
	}
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}

	raw, err := e.llm.Generate(ctx, prompt, opts...)
	if err != nil {
		return nil, err
	}
	log.WithField("raw_length", len(raw)).Debug("Received completion")

	variants := e.normalizer.Normalize(raw, req.Query, req.Count)
	if len(variants) == 0 {
		log.Warn("No valid variants in completion")
	} else {
		log.WithField("variants", len(variants)).Info("Expanded query")
	}

	return &Result{
		ID:        expansionID,
		Original:  req.Query,
		Variants:  variants,
		CreatedAt: time.Now(),
	}, nil
}
