package tagging

import "github.com/sarchlab/cachesim/mem/cache/internal/addressing"

// DirectMapped places every address in exactly one slot.
type DirectMapped struct {
	bank    *Bank
	decoder addressing.Decoder
}

// NewDirectMapped creates a direct-mapped tag array. numBlocks must be a
// power of two.
func NewDirectMapped(log2BlockSize, numBlocks int) *DirectMapped {
	return &DirectMapped{
		bank:    NewBank(numBlocks),
		decoder: addressing.NewDecoder(log2BlockSize, numBlocks),
	}
}

// Bank returns the bank.
func (d *DirectMapped) Bank() *Bank {
	return d.bank
}

// Access looks up the slot that the address maps to. An invalid slot is
// filled, a matching tag is a hit and a different tag is overwritten.
func (d *DirectMapped) Access(addr uint32) Result {
	f := d.decoder.DirectMapped(addr)
	block := d.bank.Block(f.Index)

	result := Result{SlotID: f.Index, Tag: f.Tag}

	switch {
	case !block.IsValid:
		result.Outcome = ColdMiss
		d.bank.Fill(f.Index, f.Tag)
	case block.Tag == f.Tag:
		result.Outcome = Hit
	default:
		result.Outcome = ReplacementMiss
		result.EvictedTag = block.Tag
		d.bank.Fill(f.Index, f.Tag)
	}

	return result
}

// Lookup returns the block holding addr.
func (d *DirectMapped) Lookup(addr uint32) (Block, bool) {
	f := d.decoder.DirectMapped(addr)
	block := d.bank.Block(f.Index)

	if block.IsValid && block.Tag == f.Tag {
		return block, true
	}

	return Block{}, false
}

// Reset invalidates all the blocks.
func (d *DirectMapped) Reset() {
	d.bank.Reset()
}
