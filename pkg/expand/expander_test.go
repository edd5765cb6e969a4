package expand_test

import (
	"context"
	"errors"
	"io"

	"github.com/lisanmuaddib/expander-go/pkg/expand"
	"github.com/lisanmuaddib/expander-go/pkg/llm"
	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeLLM returns a canned completion and records how it was called, so
// specs can assert that no remote call is attempted on caller errors.
type fakeLLM struct {
	completion string
	err        error
	calls      int
	lastPrompt string
	lastOpts   *llm.Options
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	f.lastOpts = options
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var _ = Describe("Expander", func() {
	var fake *fakeLLM

	newExpander := func() *expand.Expander {
		expander, err := expand.New(expand.Config{
			LLM:    fake,
			Logger: quietLogger(),
		})
		Expect(err).NotTo(HaveOccurred())
		return expander
	}

	BeforeEach(func() {
		fake = &fakeLLM{}
	})

	Context("New", func() {
		It("should require an LLM", func() {
			_, err := expand.New(expand.Config{Logger: quietLogger()})
			Expect(err).To(HaveOccurred())
		})

		It("should require a logger", func() {
			_, err := expand.New(expand.Config{LLM: fake})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Expand", func() {
		It("should run the full pipeline for the password-reset scenario", func() {
			fake.completion = "1. How can I change my password?\n" +
				"2. How do I reset my password?\n" +
				"3. What steps reset a forgotten password?\n" +
				"4. Steps to change my password"

			result, err := newExpander().Expand(context.Background(), expand.Request{
				Query: "How do I reset my password?",
				Count: 3,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).NotTo(BeEmpty())
			Expect(result.Original).To(Equal("How do I reset my password?"))
			Expect(result.Variants).To(Equal([]string{
				"How can I change my password?",
				"What steps reset a forgotten password?",
				"Steps to change my password",
			}))
			Expect(fake.lastPrompt).To(ContainSubstring("How do I reset my password?"))
		})

		It("should reject a zero count without calling the model", func() {
			_, err := newExpander().Expand(context.Background(), expand.Request{
				Query: "How do I reset my password?",
				Count: 0,
			})

			Expect(llm.IsLLMError(err, llm.ErrCodeInvalidInput)).To(BeTrue())
			Expect(fake.calls).To(BeZero())
		})

		It("should reject an empty query without calling the model", func() {
			_, err := newExpander().Expand(context.Background(), expand.Request{
				Query: "   ",
				Count: 3,
			})

			Expect(llm.IsLLMError(err, llm.ErrCodeInvalidInput)).To(BeTrue())
			Expect(fake.calls).To(BeZero())
		})

		It("should propagate completion errors unchanged", func() {
			remoteErr := llm.NewLLMError(llm.ErrCodeRateLimit, "throttled", nil, "test")
			fake.err = remoteErr

			_, err := newExpander().Expand(context.Background(), expand.Request{
				Query: "How do I reset my password?",
				Count: 3,
			})

			Expect(errors.Is(err, remoteErr)).To(BeTrue())
			Expect(llm.IsLLMError(err, llm.ErrCodeRateLimit)).To(BeTrue())
		})

		It("should treat a completion with no usable variants as an empty result", func() {
			fake.completion = "How do I reset my password?"

			result, err := newExpander().Expand(context.Background(), expand.Request{
				Query: "How do I reset my password?",
				Count: 3,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Variants).To(BeEmpty())
		})

		It("should forward generation overrides to the model", func() {
			fake.completion = "a variant"

			_, err := newExpander().Expand(context.Background(), expand.Request{
				Query:       "How do I reset my password?",
				Count:       3,
				Temperature: 0.2,
				MaxTokens:   128,
				Model:       "custom/model",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(fake.lastOpts.Temperature).To(Equal(0.2))
			Expect(fake.lastOpts.MaxTokens).To(Equal(128))
			Expect(fake.lastOpts.Model).To(Equal("custom/model"))
		})
	})
})
