package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeItems", func() {
	It("returns an empty list for empty input", func() {
		Expect(NormalizeItems(nil)).To(BeEmpty())
		Expect(NormalizeItems([]string{})).To(BeEmpty())
	})

	It("drops empty and whitespace-only lines", func() {
		Expect(NormalizeItems([]string{"", "   ", "\t", "Bread"})).To(Equal([]string{"Bread"}))
	})

	It("trims surrounding whitespace", func() {
		Expect(NormalizeItems([]string{"  Bread  "})).To(Equal([]string{"Bread"}))
	})

	It("deduplicates case-insensitively", func() {
		Expect(NormalizeItems([]string{"milk", "Milk", " MILK "})).To(Equal([]string{"Milk"}))
	})

	It("capitalizes the first character and lowercases the rest", func() {
		Expect(NormalizeItems([]string{"Coca Cola 0.5L"})).To(Equal([]string{"Coca cola 0.5l"}))
	})

	It("sorts by the canonical key", func() {
		in := []string{"Water", "apple", "BREAD"}
		Expect(NormalizeItems(in)).To(Equal([]string{"Apple", "Bread", "Water"}))
	})

	It("is idempotent", func() {
		in := []string{"  Coca Cola ", "bread", "BREAD", "milk 3.50€"}
		once := NormalizeItems(in)
		Expect(NormalizeItems(once)).To(Equal(once))
	})

	It("handles non-ASCII first characters", func() {
		Expect(NormalizeItems([]string{"äpfel"})).To(Equal([]string{"Äpfel"}))
	})
})
