// Package openai provides an OpenAI-backed implementation of the llm.LLM
// contract via langchaingo, as an alternative to the default Hugging Face
// provider.
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/lisanmuaddib/expander-go/pkg/llm"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProviderName identifies this provider in errors and log fields
const ProviderName = "openai"

type Client struct {
	logger *logrus.Logger
	llm    llms.Model
	config *OpenAIConfig
}

func NewClient(config *OpenAIConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	model, err := openai.New(
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, llm.NewLLMError(llm.ErrCodeRemoteService,
			"failed to initialize OpenAI client", err, ProviderName)
	}

	return &Client{
		logger: config.Logger,
		llm:    model,
		config: config,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		Model:       c.config.Model,
	}
	for _, opt := range opts {
		opt(options)
	}

	c.logger.WithFields(logrus.Fields{
		"provider":    ProviderName,
		"model":       options.Model,
		"temperature": options.Temperature,
		"max_tokens":  options.MaxTokens,
	}).Debug("Generating completion")

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithModel(options.Model),
		llms.WithTemperature(options.Temperature),
		llms.WithMaxTokens(options.MaxTokens),
	)
	if err != nil {
		return "", classifyError(err)
	}

	return completion, nil
}

// classifyError maps langchaingo failures onto the shared taxonomy. The
// library does not expose status codes, so classification falls back to
// message inspection; anything unrecognized surfaces as a remote error.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewLLMError(llm.ErrCodeTimeout,
			"no response within configured timeout", err, ProviderName)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "incorrect api key"):
		return llm.NewLLMError(llm.ErrCodeAuthentication,
			"credential rejected", err, ProviderName)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return llm.NewLLMError(llm.ErrCodeRateLimit,
			"throttled by remote service", err, ProviderName)
	default:
		return llm.NewLLMError(llm.ErrCodeRemoteService,
			"failed to generate completion", err, ProviderName)
	}
}
