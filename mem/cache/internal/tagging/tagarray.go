package tagging

import "fmt"

// Outcome is the result of looking up a block.
type Outcome int

const (
	// Hit means the block was resident.
	Hit Outcome = iota

	// ColdMiss means the block was placed into an invalid slot.
	ColdMiss

	// ReplacementMiss means the block took the place of a resident block.
	ReplacementMiss
)

// IsHit tells if the outcome is a hit.
func (o Outcome) IsHit() bool {
	return o == Hit
}

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case ColdMiss:
		return "cold-miss"
	case ReplacementMiss:
		return "replacement-miss"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes what happened in a bank during one access.
type Result struct {
	Outcome Outcome
	SlotID  int
	Tag     uint64

	// EvictedTag is the tag that was replaced. It is only meaningful when the
	// outcome is ReplacementMiss.
	EvictedTag uint64
}

// A TagArray applies a mapping policy to a bank.
type TagArray interface {
	// Access looks up the address and updates the bank as the policy
	// requires.
	Access(addr uint32) Result

	// Lookup finds the block holding addr without changing any state.
	Lookup(addr uint32) (Block, bool)

	// Bank returns the bank the policy manages.
	Bank() *Bank

	// Reset invalidates every block and forgets the replacement order.
	Reset()
}
