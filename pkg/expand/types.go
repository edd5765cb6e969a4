// Package expand implements the query expansion pipeline: build a prompt
// for the original query, obtain a raw completion from a language model,
// and normalize it into a deduplicated list of intent-preserving variants.
package expand

import (
	"time"

	"github.com/google/uuid"
)

// Request describes a single expansion invocation. It is created per call
// and discarded after use; zero generation fields fall back to the
// provider's configured defaults.
type Request struct {
	Query       string
	Count       int
	Temperature float64
	MaxTokens   int
	Model       string
}

// Result holds the outcome of one expansion. Variants is ordered
// first-seen, contains no duplicates and never includes the original
// query; an empty slice is a valid outcome, not an error.
type Result struct {
	ID        string
	Original  string
	Variants  []string
	CreatedAt time.Time
}

// NewExpansionID returns a unique identifier for correlating log entries
// of a single expansion.
func NewExpansionID() string {
	return uuid.New().String()
}
