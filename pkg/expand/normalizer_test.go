package expand_test

import (
	"strings"

	"github.com/lisanmuaddib/expander-go/pkg/expand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalizer", func() {
	var normalizer *expand.Normalizer

	BeforeEach(func() {
		normalizer = expand.NewNormalizer(expand.NormalizerConfig{})
	})

	Context("Normalize", func() {
		It("should drop the original, strip numbering and truncate to count", func() {
			raw := "1. How can I change my password?\n" +
				"2. How do I reset my password?\n" +
				"3. What steps reset a forgotten password?\n" +
				"4. Steps to change my password"

			variants := normalizer.Normalize(raw, "How do I reset my password?", 3)

			Expect(variants).To(Equal([]string{
				"How can I change my password?",
				"What steps reset a forgotten password?",
				"Steps to change my password",
			}))
		})

		It("should be idempotent over its own output", func() {
			raw := "- \"How can I change my password?\"\n\n* What steps reset a forgotten password?\n"

			first := normalizer.Normalize(raw, "How do I reset my password?", 5)
			second := normalizer.Normalize(strings.Join(first, "\n"), "How do I reset my password?", 5)

			Expect(second).To(Equal(first))
		})

		It("should deduplicate case and whitespace insensitively, keeping first-seen order", func() {
			raw := "How can I change it?\nhow  can i CHANGE it?\nWhere is the setting?"

			variants := normalizer.Normalize(raw, "original", 5)

			Expect(variants).To(Equal([]string{
				"How can I change it?",
				"Where is the setting?",
			}))
		})

		It("should never return the original query regardless of case or spacing", func() {
			raw := "HOW DO I  reset my password?\nSome other phrasing"

			variants := normalizer.Normalize(raw, "How do I reset my password?", 5)

			Expect(variants).To(Equal([]string{"Some other phrasing"}))
		})

		It("should return an empty slice for an empty completion", func() {
			variants := normalizer.Normalize("", "anything", 3)

			Expect(variants).To(BeEmpty())
			Expect(variants).NotTo(BeNil())
		})

		It("should return an empty slice when the completion only repeats the original", func() {
			raw := "How do I reset my password?\nHow do I reset my password?\n"

			variants := normalizer.Normalize(raw, "How do I reset my password?", 3)

			Expect(variants).To(BeEmpty())
		})

		It("should strip assorted enumeration markers and wrapping quotes", func() {
			raw := "1) First phrasing\n• Second phrasing\n> 'Third phrasing'\n2] Fourth phrasing"

			variants := normalizer.Normalize(raw, "original", 10)

			Expect(variants).To(Equal([]string{
				"First phrasing",
				"Second phrasing",
				"Third phrasing",
				"Fourth phrasing",
			}))
		})

		It("should never exceed the requested count", func() {
			raw := "a\nb\nc\nd\ne\nf"

			variants := normalizer.Normalize(raw, "original", 2)

			Expect(variants).To(HaveLen(2))
		})

		It("should honor a custom delimiter", func() {
			semicolon := expand.NewNormalizer(expand.NormalizerConfig{Delimiter: ";"})

			variants := semicolon.Normalize("first phrasing; second phrasing; first phrasing", "original", 5)

			Expect(variants).To(Equal([]string{"first phrasing", "second phrasing"}))
		})
	})
})
