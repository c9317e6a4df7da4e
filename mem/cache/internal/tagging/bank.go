// Package tagging keeps track of which memory blocks are resident in a cache
// bank.
package tagging

import "log"

// A Block is the information that is associated with a cache line. No data
// is stored, only presence.
type Block struct {
	SlotID  int
	Tag     uint64
	IsValid bool
}

// A Bank is a fixed-length array of blocks.
type Bank struct {
	blocks   []Block
	numValid int
}

// NewBank creates a bank with numBlocks invalid blocks.
func NewBank(numBlocks int) *Bank {
	if numBlocks <= 0 {
		log.Panicf("bank must have at least one block, got %d", numBlocks)
	}

	b := &Bank{blocks: make([]Block, numBlocks)}
	b.Reset()

	return b
}

// NumBlocks returns the number of blocks in the bank.
func (b *Bank) NumBlocks() int {
	return len(b.blocks)
}

// Block returns a copy of the block at slot.
func (b *Bank) Block(slot int) Block {
	b.slotMustBeInRange(slot)

	return b.blocks[slot]
}

// Blocks returns a copy of all the blocks.
func (b *Bank) Blocks() []Block {
	blocks := make([]Block, len(b.blocks))
	copy(blocks, b.blocks)

	return blocks
}

// Occupancy returns the number of valid blocks.
func (b *Bank) Occupancy() int {
	return b.numValid
}

// IsFull tells if every block is valid.
func (b *Bank) IsFull() bool {
	return b.numValid == len(b.blocks)
}

// Fill stores tag in the block at slot and marks it valid.
func (b *Bank) Fill(slot int, tag uint64) {
	b.slotMustBeInRange(slot)

	block := &b.blocks[slot]
	if !block.IsValid {
		block.IsValid = true
		b.numValid++
	}

	block.Tag = tag
}

// Reset marks all the blocks invalid.
func (b *Bank) Reset() {
	for i := range b.blocks {
		b.blocks[i] = Block{SlotID: i}
	}

	b.numValid = 0
}

func (b *Bank) slotMustBeInRange(slot int) {
	if slot < 0 || slot >= len(b.blocks) {
		log.Panicf("slot %d out of range [0, %d)", slot, len(b.blocks))
	}
}
