package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Spec", func() {
	It("should parse mapping tokens", func() {
		m, err := ParseMapping("dm")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(DirectMapped))

		m, err = ParseMapping("fa")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(FullyAssociative))
	})

	It("should report the offending mapping token", func() {
		_, err := ParseMapping("sa")

		var cfgErr *ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Field).To(Equal("mapping"))
		Expect(cfgErr.Value).To(Equal("sa"))
		Expect(err.Error()).To(ContainSubstring(`"sa"`))
	})

	It("should parse organization tokens", func() {
		o, err := ParseOrganization("uc")
		Expect(err).ToNot(HaveOccurred())
		Expect(o).To(Equal(Unified))

		o, err = ParseOrganization("sc")
		Expect(err).ToNot(HaveOccurred())
		Expect(o).To(Equal(Split))

		_, err = ParseOrganization("xc")
		Expect(err).To(BeAssignableToTypeOf(&ConfigError{}))

		_, err = ParseOrganization("")
		Expect(err).To(MatchError(ContainSubstring("missing")))
	})

	It("should parse cache sizes", func() {
		size, err := ParseTotalByteSize("4096")
		Expect(err).ToNot(HaveOccurred())
		Expect(size).To(Equal(uint64(4096)))

		_, err = ParseTotalByteSize("4k")
		Expect(err).To(BeAssignableToTypeOf(&ConfigError{}))

		_, err = ParseTotalByteSize("-128")
		Expect(err).To(HaveOccurred())
	})

	It("should derive bank sizes", func() {
		s := Spec{TotalByteSize: 1024, Organization: Split}

		Expect(s.NumBanks()).To(Equal(2))
		Expect(s.NumBlocks()).To(Equal(16))
		Expect(s.NumBlocksPerBank()).To(Equal(8))
	})

	DescribeTable("validation",
		func(spec Spec, valid bool) {
			err := spec.Validate()
			if valid {
				Expect(err).ToNot(HaveOccurred())
				return
			}

			Expect(err).To(BeAssignableToTypeOf(&ConfigError{}))
		},
		Entry("128 byte dm uc", Spec{TotalByteSize: 128}, true),
		Entry("4096 byte fa sc",
			Spec{TotalByteSize: 4096, Mapping: FullyAssociative,
				Organization: Split}, true),
		Entry("missing size", Spec{}, false),
		Entry("not a block multiple", Spec{TotalByteSize: 100}, false),
		Entry("split too small", Spec{TotalByteSize: 64, Organization: Split},
			false),
		Entry("split with odd blocks",
			Spec{TotalByteSize: 192, Mapping: FullyAssociative,
				Organization: Split}, false),
		Entry("dm not a power of two", Spec{TotalByteSize: 192}, false),
		Entry("fa not a power of two",
			Spec{TotalByteSize: 192, Mapping: FullyAssociative}, true),
		Entry("beyond the address space",
			Spec{TotalByteSize: MaxTotalByteSize * 2}, false),
		Entry("unknown mapping", Spec{TotalByteSize: 128, Mapping: 5}, false),
		Entry("unknown organization",
			Spec{TotalByteSize: 128, Organization: 5}, false),
	)
})
