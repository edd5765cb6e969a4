package expand

import (
	"regexp"
	"strings"
)

// enumerationMarker matches leading list decoration the model may emit
// despite being told not to: "1." "2)" "3]" "4:" "-" "*" ">" bullets.
var enumerationMarker = regexp.MustCompile(`^([0-9]+[.)\]:]|[-*•>]+)\s*`)

// NormalizerConfig holds parsing configuration for raw completions
type NormalizerConfig struct {
	// Delimiter separates candidate variants in the raw completion.
	// Defaults to a newline, matching the prompt's formatting instruction.
	Delimiter string
}

// Normalizer turns a raw completion into a clean, ordered variant list
type Normalizer struct {
	delimiter string
}

// NewNormalizer creates a normalizer with the given configuration
func NewNormalizer(config NormalizerConfig) *Normalizer {
	delimiter := config.Delimiter
	if delimiter == "" {
		delimiter = "\n"
	}
	return &Normalizer{delimiter: delimiter}
}

// Normalize splits the raw completion into candidates, cleans each one,
// drops empties and anything matching the original query, deduplicates
// case/whitespace-insensitively preserving first-seen order, and truncates
// to at most count entries. It never fails: zero surviving candidates
// yield an empty slice.
func (n *Normalizer) Normalize(raw string, original string, count int) []string {
	variants := []string{}
	seen := map[string]bool{
		canonical(original): true,
	}

	for _, line := range strings.Split(raw, n.delimiter) {
		candidate := clean(line)
		if candidate == "" {
			continue
		}

		key := canonical(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true

		variants = append(variants, candidate)
		if len(variants) == count {
			break
		}
	}

	return variants
}

// clean strips whitespace, enumeration markers and wrapping quotes until
// the candidate stops changing, so normalizing already-normalized input is
// a no-op.
func clean(candidate string) string {
	for {
		next := strings.TrimSpace(candidate)
		next = enumerationMarker.ReplaceAllString(next, "")
		next = stripWrappingQuotes(next)
		if next == candidate {
			return candidate
		}
		candidate = next
	}
}

// canonical is the comparison key for dedup: lowercase with interior
// whitespace collapsed.
func canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func stripWrappingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
