package tagging

import "github.com/sarchlab/cachesim/mem/cache/internal/addressing"

// FullyAssociative lets an address reside in any slot of the bank.
type FullyAssociative struct {
	bank         *Bank
	decoder      addressing.Decoder
	victimFinder VictimFinder
}

// NewFullyAssociative creates a fully-associative tag array that evicts
// blocks in FIFO order.
func NewFullyAssociative(log2BlockSize, numBlocks int) *FullyAssociative {
	return NewFullyAssociativeWithVictimFinder(
		log2BlockSize, numBlocks, NewFIFOVictimFinder(numBlocks))
}

// NewFullyAssociativeWithVictimFinder creates a fully-associative tag array
// with a custom replacement policy.
func NewFullyAssociativeWithVictimFinder(
	log2BlockSize, numBlocks int,
	victimFinder VictimFinder,
) *FullyAssociative {
	// The fully-associative decoder only drops offset bits, so it does not
	// need the bank size.
	return &FullyAssociative{
		bank:         NewBank(numBlocks),
		decoder:      addressing.NewDecoder(log2BlockSize, 1),
		victimFinder: victimFinder,
	}
}

// Bank returns the bank.
func (f *FullyAssociative) Bank() *Bank {
	return f.bank
}

// VictimFinder returns the replacement policy.
func (f *FullyAssociative) VictimFinder() VictimFinder {
	return f.victimFinder
}

// Access scans every slot for the tag. On a miss the first invalid slot is
// filled, or the victim finder picks a slot to replace when the bank is full.
func (f *FullyAssociative) Access(addr uint32) Result {
	tag := f.decoder.FullyAssociative(addr).Tag

	slot, firstInvalid := f.scan(tag)
	if slot >= 0 {
		return Result{Outcome: Hit, SlotID: slot, Tag: tag}
	}

	if firstInvalid >= 0 {
		f.bank.Fill(firstInvalid, tag)
		f.victimFinder.Filled(firstInvalid)

		return Result{Outcome: ColdMiss, SlotID: firstInvalid, Tag: tag}
	}

	victim := f.victimFinder.FindVictim(f.bank)
	evicted := f.bank.Block(victim).Tag
	f.bank.Fill(victim, tag)
	f.victimFinder.Filled(victim)

	return Result{
		Outcome:    ReplacementMiss,
		SlotID:     victim,
		Tag:        tag,
		EvictedTag: evicted,
	}
}

// scan returns the slot holding tag and the first invalid slot, -1 for
// either if there is none. It stops at the first matching slot.
func (f *FullyAssociative) scan(tag uint64) (slot, firstInvalid int) {
	firstInvalid = -1

	for i := 0; i < f.bank.NumBlocks(); i++ {
		block := f.bank.Block(i)

		if !block.IsValid {
			if firstInvalid < 0 {
				firstInvalid = i
			}

			continue
		}

		if block.Tag == tag {
			return i, firstInvalid
		}
	}

	return -1, firstInvalid
}

// Lookup returns the block holding addr.
func (f *FullyAssociative) Lookup(addr uint32) (Block, bool) {
	tag := f.decoder.FullyAssociative(addr).Tag

	slot, _ := f.scan(tag)
	if slot < 0 {
		return Block{}, false
	}

	return f.bank.Block(slot), true
}

// Reset invalidates all the blocks and clears the replacement order.
func (f *FullyAssociative) Reset() {
	f.bank.Reset()
	f.victimFinder.Reset()
}
