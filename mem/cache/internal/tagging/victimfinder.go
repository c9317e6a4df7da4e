package tagging

import (
	"log"

	"github.com/sarchlab/cachesim/mem/cache/internal/fifo"
)

// A VictimFinder decides which block should be evicted.
type VictimFinder interface {
	// FindVictim picks a slot to evict from a full bank and forgets it. The
	// caller must report the slot with Filled once it is refilled.
	FindVictim(bank *Bank) int

	// Filled tells the victim finder that slot has just received a block.
	Filled(slot int)

	// Order lists the slots from the next victim to the last one.
	Order() []int

	// Reset forgets every slot.
	Reset()
}

// FIFOVictimFinder evicts the block that has been resident the longest,
// regardless of how recently it was used.
type FIFOVictimFinder struct {
	queue *fifo.Queue
}

// NewFIFOVictimFinder returns a FIFO victim finder for a bank of numBlocks
// blocks.
func NewFIFOVictimFinder(numBlocks int) *FIFOVictimFinder {
	return &FIFOVictimFinder{queue: fifo.NewQueue(numBlocks)}
}

// FindVictim returns the oldest filled slot.
func (e *FIFOVictimFinder) FindVictim(bank *Bank) int {
	if !bank.IsFull() {
		log.Panic("victim requested while the bank still has invalid blocks")
	}

	return e.queue.Dequeue()
}

// Filled records slot as the newest block.
func (e *FIFOVictimFinder) Filled(slot int) {
	e.queue.Enqueue(slot)
}

// Order lists the slots from the oldest to the newest.
func (e *FIFOVictimFinder) Order() []int {
	return e.queue.Entries()
}

// Reset empties the queue.
func (e *FIFOVictimFinder) Reset() {
	e.queue.Reset()
}
