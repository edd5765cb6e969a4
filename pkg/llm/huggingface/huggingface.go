// Package huggingface implements the llm.LLM contract against the Hugging
// Face Inference API. The HTTP layer is hand-rolled rather than delegated
// to a client library because the error contract requires classifying raw
// status codes (credential rejection vs throttling vs anything else)
// before deciding whether a retry is allowed.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lisanmuaddib/expander-go/pkg/llm"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ProviderName identifies this provider in errors and log fields
const ProviderName = "huggingface"

// ClientOption allows for customization of the client
type ClientOption func(*Client)

type Client struct {
	config     *HuggingFaceConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Hugging Face Inference API client
func NewClient(config *HuggingFaceConfig, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	interval := time.Duration(config.RateWindow) * time.Minute / time.Duration(config.RateLimit)
	client := &Client{
		config:     config,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		logger:     config.Logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// completionRequest mirrors the Inference API text-generation payload
type completionRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters completionParameters `json:"parameters"`
}

type completionParameters struct {
	// The API rejects a temperature of exactly 0, so the field is omitted
	// when unset and deterministic sampling is requested via DoSample.
	Temperature    *float64 `json:"temperature,omitempty"`
	MaxNewTokens   int      `json:"max_new_tokens,omitempty"`
	DoSample       bool     `json:"do_sample"`
	ReturnFullText bool     `json:"return_full_text"`
}

type completionResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends the prompt to the configured model and returns the raw
// completion text. Transient failures (throttling, timeouts) are retried
// with exponential backoff up to RetryAttempts; authentication and remote
// errors surface immediately.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		Model:       c.config.RepoID,
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

	operation := func() (string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", backoff.Permanent(err)
		}
		completion, err := c.complete(ctx, prompt, options)
		if err != nil && !llm.Retryable(err) {
			return "", backoff.Permanent(err)
		}
		return completion, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.config.RetryAttempts)),
		ctx,
	)

	completion, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return "", err
	}
	return completion, nil
}

// complete performs a single request against the Inference API
func (c *Client) complete(ctx context.Context, prompt string, options *llm.Options) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqBody := completionRequest{
		Inputs: prompt,
		Parameters: completionParameters{
			MaxNewTokens:   options.MaxTokens,
			ReturnFullText: false,
		},
	}
	if options.Temperature > 0 {
		reqBody.Parameters.Temperature = &options.Temperature
		reqBody.Parameters.DoSample = true
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	fullURL := c.config.BaseURL + "/" + options.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.handleResponse(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewLLMError(llm.ErrCodeRemoteService,
			"failed to read response body", err, ProviderName)
	}

	var completions []completionResponse
	if err := json.Unmarshal(body, &completions); err != nil {
		return "", llm.NewLLMError(llm.ErrCodeRemoteService,
			fmt.Sprintf("unexpected response shape: %s", truncateBody(body)), err, ProviderName)
	}
	if len(completions) == 0 {
		return "", llm.NewLLMError(llm.ErrCodeRemoteService,
			"empty completion list in response", nil, ProviderName)
	}

	return completions[0].GeneratedText, nil
}

// classifyTransportError maps transport-level failures onto the error
// taxonomy; only genuine timeouts are retryable.
func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewLLMError(llm.ErrCodeTimeout,
			"no response within configured timeout", err, ProviderName)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return llm.NewLLMError(llm.ErrCodeTimeout,
			"no response within configured timeout", err, ProviderName)
	}
	return llm.NewLLMError(llm.ErrCodeRemoteService,
		"request failed", err, ProviderName)
}

// handleResponse checks for API errors in the response
func (c *Client) handleResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.NewLLMError(llm.ErrCodeRemoteService,
			fmt.Sprintf("failed to read error response: status=%d", resp.StatusCode), err, ProviderName)
	}

	var errResp struct {
		Error string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.Error
	}
	if message == "" {
		message = truncateBody(body)
	}

	c.logger.WithFields(logrus.Fields{
		"provider":    ProviderName,
		"status_code": resp.StatusCode,
		"message":     message,
	}).Error("Hugging Face API error")

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.NewLLMError(llm.ErrCodeAuthentication,
			fmt.Sprintf("credential rejected: %s", message), nil, ProviderName)
	case http.StatusTooManyRequests:
		return llm.NewLLMError(llm.ErrCodeRateLimit,
			fmt.Sprintf("throttled by remote service: %s", message), nil, ProviderName)
	default:
		return llm.NewLLMError(llm.ErrCodeRemoteService,
			fmt.Sprintf("status=%d message=%s", resp.StatusCode, message), nil, ProviderName)
	}
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
