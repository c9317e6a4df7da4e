package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
)

// AccessKind tells whether an access fetches an instruction or data.
type AccessKind int

const (
	// Instruction is an instruction fetch.
	Instruction AccessKind = iota

	// Data is a data load or store.
	Data

	numAccessKinds
)

func (k AccessKind) String() string {
	switch k {
	case Instruction:
		return "I"
	case Data:
		return "D"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// MarshalText encodes the kind as it appears in a trace.
func (k AccessKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// An Access is one memory access of a trace.
type Access struct {
	Address uint32
	Kind    AccessKind
}

func (a Access) String() string {
	return fmt.Sprintf("%s 0x%x", a.Kind, a.Address)
}

// Outcome is the result of one access.
type Outcome = tagging.Outcome

// Possible outcomes of an access.
const (
	Hit             = tagging.Hit
	ColdMiss        = tagging.ColdMiss
	ReplacementMiss = tagging.ReplacementMiss
)

// Block is the presence information of one cache line.
type Block = tagging.Block

// AccessResult describes how the cache handled an access.
type AccessResult struct {
	// Seq counts the accesses handled so far, starting from 1.
	Seq uint64

	Access   Access
	BankName string
	Outcome  Outcome
	SlotID   int
	Tag      uint64

	// EvictedTag is only meaningful for a ReplacementMiss.
	EvictedTag uint64
}

// IsHit tells if the access hit.
func (r AccessResult) IsHit() bool {
	return r.Outcome.IsHit()
}
