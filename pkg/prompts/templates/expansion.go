package prompts

import (
	"fmt"
	"strings"

	"github.com/lisanmuaddib/expander-go/pkg/llm"
	langchainprompts "github.com/tmc/langchaingo/prompts"
)

// DefaultSystemPrompt instructs the model how to expand queries. It is
// deliberately conservative about unfamiliar terms so acronyms survive
// expansion intact.
const DefaultSystemPrompt = `You are an expert at expanding user questions into multiple variations. Perform query expansion. If there are multiple common ways of phrasing a user question or common synonyms for key words in the question, return versions of the query with the different phrasings.

If there are acronyms or words you are not familiar with, do not try to rephrase them.

Every version must preserve the original intent of the question.`

// ExpansionPromptConfig holds the configuration for expansion prompts
type ExpansionPromptConfig struct {
	// SystemPrompt replaces the default instruction when non-empty. The
	// formatting section asking for exactly N plain lines is always
	// appended, since the normalizer depends on it.
	SystemPrompt string
}

// Builder renders expansion prompts embedding the query and requested
// variant count verbatim.
type Builder struct {
	template langchainprompts.PromptTemplate
}

// NewExpansionPromptBuilder creates a prompt builder for query expansion
func NewExpansionPromptBuilder(config ExpansionPromptConfig) *Builder {
	systemPrompt := config.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString(systemPrompt)
	promptBuilder.WriteString(`

Respond with exactly {{.count}} lines, each line a single paraphrase of the question. Do not number the lines and do not add commentary.

Question: {{.question}}
Paraphrases:`)

	return &Builder{
		template: langchainprompts.NewPromptTemplate(
			promptBuilder.String(),
			[]string{"question", "count"},
		),
	}
}

// Build renders the prompt for the given query and count. It is pure and
// fails only on caller errors: an empty query or a non-positive count.
func (b *Builder) Build(query string, count int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", llm.NewLLMError(llm.ErrCodeInvalidInput,
			"query must be non-empty after trimming", nil, "")
	}
	if count < 1 {
		return "", llm.NewLLMError(llm.ErrCodeInvalidInput,
			fmt.Sprintf("count must be positive, got %d", count), nil, "")
	}

	prompt, err := b.template.Format(map[string]any{
		"question": query,
		"count":    count,
	})
	if err != nil {
		return "", fmt.Errorf("error formatting expansion prompt: %w", err)
	}

	return prompt, nil
}
