package llm_test

import (
	"errors"
	"fmt"

	"github.com/lisanmuaddib/expander-go/pkg/llm"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LLMError", func() {
	It("should include code, message and provider in the formatted error", func() {
		err := llm.NewLLMError(llm.ErrCodeRateLimit, "throttled", nil, "huggingface")

		Expect(err.Error()).To(ContainSubstring("RATE_LIMIT"))
		Expect(err.Error()).To(ContainSubstring("throttled"))
		Expect(err.Error()).To(ContainSubstring("huggingface"))
	})

	It("should format without a provider for caller errors", func() {
		err := llm.NewLLMError(llm.ErrCodeInvalidInput, "count must be positive", nil, "")

		Expect(err.Error()).To(Equal("[INVALID_INPUT] count must be positive"))
	})

	It("should unwrap to the underlying error", func() {
		underlying := errors.New("connection reset")
		err := llm.NewLLMError(llm.ErrCodeRemoteService, "request failed", underlying, "huggingface")

		Expect(errors.Is(err, underlying)).To(BeTrue())
	})

	It("should be matchable by code through further wrapping", func() {
		err := fmt.Errorf("expansion failed: %w",
			llm.NewLLMError(llm.ErrCodeAuthentication, "token rejected", nil, "openai"))

		Expect(llm.IsLLMError(err, llm.ErrCodeAuthentication)).To(BeTrue())
		Expect(llm.IsLLMError(err, llm.ErrCodeRateLimit)).To(BeFalse())
	})

	It("should consider only throttling and timeouts retryable", func() {
		Expect(llm.Retryable(llm.NewLLMError(llm.ErrCodeRateLimit, "m", nil, "p"))).To(BeTrue())
		Expect(llm.Retryable(llm.NewLLMError(llm.ErrCodeTimeout, "m", nil, "p"))).To(BeTrue())
		Expect(llm.Retryable(llm.NewLLMError(llm.ErrCodeAuthentication, "m", nil, "p"))).To(BeFalse())
		Expect(llm.Retryable(llm.NewLLMError(llm.ErrCodeRemoteService, "m", nil, "p"))).To(BeFalse())
		Expect(llm.Retryable(llm.NewLLMError(llm.ErrCodeInvalidInput, "m", nil, ""))).To(BeFalse())
		Expect(llm.Retryable(errors.New("plain"))).To(BeFalse())
		Expect(llm.Retryable(nil)).To(BeFalse())
	})
})
