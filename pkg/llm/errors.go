package llm

import (
	"errors"
	"fmt"
)

// Error codes for completion operations
const (
	// ErrCodeInvalidInput indicates a bad query or count supplied by the caller
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeAuthentication indicates a missing or rejected API credential
	ErrCodeAuthentication = "AUTHENTICATION"
	// ErrCodeRateLimit indicates the remote service is throttling requests
	ErrCodeRateLimit = "RATE_LIMIT"
	// ErrCodeTimeout indicates no response arrived within the configured deadline
	ErrCodeTimeout = "TIMEOUT"
	// ErrCodeRemoteService indicates a non-2xx status or unexpected response shape
	ErrCodeRemoteService = "REMOTE_SERVICE"
)

// LLMError represents a completion-specific error with additional context
// about the error type, message, underlying error and provider.
type LLMError struct {
	Code     string // Error code identifying the type of error
	Message  string // Human readable error message
	Err      error  // Underlying error if any
	Provider string // Provider where the error occurred
}

// Error implements the error interface for LLMError.
// It formats the error message including the code, message, provider
// (if present) and underlying error.
func (e *LLMError) Error() string {
	if e.Provider != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s on provider %s: %v", e.Code, e.Message, e.Provider, e.Err)
		}
		return fmt.Sprintf("[%s] %s on provider %s", e.Code, e.Message, e.Provider)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewLLMError creates a new LLMError with the given parameters.
func NewLLMError(code string, message string, err error, provider string) *LLMError {
	return &LLMError{
		Code:     code,
		Message:  message,
		Err:      err,
		Provider: provider,
	}
}

// IsLLMError checks if an error is an LLMError with the given code. It
// walks the wrap chain, so classified errors survive further %w wrapping.
func IsLLMError(err error, code string) bool {
	if err == nil {
		return false
	}
	var e *LLMError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Retryable reports whether an error is worth a bounded retry. Only remote
// throttling and timeouts qualify; authentication and caller errors never do.
func Retryable(err error) bool {
	return IsLLMError(err, ErrCodeRateLimit) || IsLLMError(err, ErrCodeTimeout)
}
