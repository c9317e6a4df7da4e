package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DirectMapped", func() {
	var tags *DirectMapped

	BeforeEach(func() {
		tags = NewDirectMapped(6, 4)
	})

	It("should miss then hit on the same address", func() {
		first := tags.Access(0x1000)
		second := tags.Access(0x1000)

		Expect(first.Outcome).To(Equal(ColdMiss))
		Expect(second.Outcome).To(Equal(Hit))
		Expect(second.SlotID).To(Equal(first.SlotID))
	})

	It("should hit on another byte of the same block", func() {
		tags.Access(0x1000)

		Expect(tags.Access(0x103F).Outcome).To(Equal(Hit))
	})

	It("should replace a conflicting block", func() {
		// 0x000 and 0x100 both map to index 0 of a four-block bank.
		tags.Access(0x000)
		result := tags.Access(0x100)

		Expect(result.Outcome).To(Equal(ReplacementMiss))
		Expect(result.SlotID).To(Equal(0))
		Expect(result.EvictedTag).To(Equal(uint64(0)))
		Expect(tags.Access(0x000).Outcome).To(Equal(ReplacementMiss))
	})

	It("should never let conflicting addresses hit back to back", func() {
		addrs := []uint32{0x000, 0x100, 0x000, 0x100, 0x000, 0x100}
		prevHit := false
		for _, addr := range addrs {
			hit := tags.Access(addr).Outcome.IsHit()
			Expect(hit && prevHit).To(BeFalse())
			Expect(hit).To(BeFalse())
			prevHit = hit
		}
	})

	It("should keep distinct indexes apart", func() {
		tags.Access(0x00)
		tags.Access(0x40)
		tags.Access(0x80)
		tags.Access(0xC0)

		Expect(tags.Bank().Occupancy()).To(Equal(4))
		for _, addr := range []uint32{0x00, 0x40, 0x80, 0xC0} {
			Expect(tags.Access(addr).Outcome).To(Equal(Hit))
		}
	})

	It("should look up without changing state", func() {
		_, found := tags.Lookup(0x40)
		Expect(found).To(BeFalse())
		Expect(tags.Bank().Occupancy()).To(Equal(0))

		tags.Access(0x40)
		block, found := tags.Lookup(0x40)

		Expect(found).To(BeTrue())
		Expect(block.SlotID).To(Equal(1))
	})

	It("should reset", func() {
		tags.Access(0x40)
		tags.Reset()

		Expect(tags.Access(0x40).Outcome).To(Equal(ColdMiss))
	})
})
