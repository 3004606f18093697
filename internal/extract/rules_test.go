package extract

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rules", func() {
	Describe("DefaultRules", func() {
		var rules Rules

		BeforeEach(func() {
			rules = DefaultRules()
		})

		It("pins the digit-ratio threshold", func() {
			Expect(rules.DigitRatioMax).To(Equal(0.6))
		})

		It("pins the length bounds", func() {
			Expect(rules.MinLineLength).To(Equal(5))
			Expect(rules.MaxLineLength).To(Equal(50))
		})

		It("disables boundary skipping with a margin of three", func() {
			Expect(rules.SkipBoundary).To(BeFalse())
			Expect(rules.BoundaryMargin).To(Equal(3))
		})

		It("pins the per-unit deposit", func() {
			Expect(rules.DepositPerUnit).To(Equal(0.25))
		})

		It("includes the POS terminal codes in the clutter vocabulary", func() {
			Expect(rules.ClutterKeywords).To(ContainElements("st#", "op#", "te#", "tr#", "tc#"))
		})

		It("includes generic container terms in the deposit vocabulary", func() {
			Expect(rules.DepositKeywords).To(ContainElements("bottle", "mineral water", "glass bottle", "plastic bottle"))
		})
	})

	Describe("LoadRules", func() {
		var (
			tempDir string
			path    string
			rules   Rules
			err     error
		)

		BeforeEach(func() {
			tempDir, err = os.MkdirTemp("", "pfandscan-rules-*")
			Expect(err).NotTo(HaveOccurred())
			path = filepath.Join(tempDir, "rules.yml")
		})

		AfterEach(func() {
			os.RemoveAll(tempDir)
		})

		When("the file overrides a subset of fields", func() {
			BeforeEach(func() {
				content := "deposit_per_unit: 0.15\nskip_boundary: true\n"
				Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
				rules, err = LoadRules(path)
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("applies the overrides", func() {
				Expect(rules.DepositPerUnit).To(Equal(0.15))
				Expect(rules.SkipBoundary).To(BeTrue())
			})

			It("keeps defaults for everything else", func() {
				Expect(rules.DigitRatioMax).To(Equal(0.6))
				Expect(rules.MinLineLength).To(Equal(5))
				Expect(rules.ClutterKeywords).To(ContainElement("thank you"))
			})
		})

		When("the file replaces the keyword lists", func() {
			BeforeEach(func() {
				content := "clutter_keywords: [\"summe\", \"danke\"]\ndeposit_keywords: [\"pfandflasche\"]\n"
				Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
				rules, err = LoadRules(path)
			})

			It("uses the file's lists verbatim", func() {
				Expect(rules.ClutterKeywords).To(Equal([]string{"summe", "danke"}))
				Expect(rules.DepositKeywords).To(Equal([]string{"pfandflasche"}))
			})
		})

		When("the file does not exist", func() {
			BeforeEach(func() {
				rules, err = LoadRules(filepath.Join(tempDir, "missing.yml"))
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
			})
		})

		When("the file is not valid YAML", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(path, []byte("{not yaml"), 0644)).To(Succeed())
				rules, err = LoadRules(path)
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
