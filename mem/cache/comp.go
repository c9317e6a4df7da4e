package cache

import (
	"log"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/naming"
	"github.com/sarchlab/cachesim/sim/stateful"
)

// HookPosAccess marks that the cache has handled an access. The hook item is
// the Access and the detail is the AccessResult.
var HookPosAccess = &hooking.HookPos{Name: "CacheAccess"}

type bank struct {
	name  string
	kinds []AccessKind
	tags  tagging.TagArray
}

// BankInfo describes the current content of a bank.
type BankInfo struct {
	Name      string       `json:"name"`
	Kinds     []AccessKind `json:"kinds"`
	NumBlocks int          `json:"num_blocks"`
	Occupancy int          `json:"occupancy"`

	// ReplacementOrder lists slots from the next victim to the newest block.
	// It is empty for direct-mapped banks.
	ReplacementOrder []int `json:"replacement_order,omitempty"`
}

// A Comp is a cache controller. It owns one bank, or two banks under the
// split organization, routes every access to its bank and counts the hits.
type Comp struct {
	*hooking.HookableBase
	naming.NamedBase

	spec  Spec
	banks []bank
	route [numAccessKinds]int
	stats Statistics
}

// Spec returns the configuration of the cache.
func (c *Comp) Spec() Spec {
	return c.spec
}

// Statistics returns a copy of the counters.
func (c *Comp) Statistics() Statistics {
	return c.stats
}

// Handle performs one access.
func (c *Comp) Handle(access Access) AccessResult {
	b := c.bankFor(access.Kind)
	r := b.tags.Access(access.Address)

	c.stats.record(access.Kind, r.Outcome)

	result := AccessResult{
		Seq:        c.stats.Accesses,
		Access:     access,
		BankName:   b.name,
		Outcome:    r.Outcome,
		SlotID:     r.SlotID,
		Tag:        r.Tag,
		EvictedTag: r.EvictedTag,
	}

	c.traceAccess(access, result)

	return result
}

func (c *Comp) traceAccess(access Access, result AccessResult) {
	if c.NumHooks() == 0 {
		return
	}

	ctx := hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   access,
		Detail: result,
	}

	c.InvokeHook(ctx)
}

func (c *Comp) bankFor(kind AccessKind) *bank {
	if kind < 0 || kind >= numAccessKinds {
		log.Panicf("unknown access kind %d", int(kind))
	}

	return &c.banks[c.route[kind]]
}

// Contains tells whether the block of the access is resident in the bank
// the access is routed to. The cache is not changed.
func (c *Comp) Contains(access Access) bool {
	_, found := c.bankFor(access.Kind).tags.Lookup(access.Address)

	return found
}

// Occupancy returns the number of valid blocks in the bank that serves the
// given access kind.
func (c *Comp) Occupancy(kind AccessKind) int {
	return c.bankFor(kind).tags.Bank().Occupancy()
}

// Blocks returns a copy of the blocks of the bank that serves kind.
func (c *Comp) Blocks(kind AccessKind) []Block {
	return c.bankFor(kind).tags.Bank().Blocks()
}

// Banks describes every bank, in creation order.
func (c *Comp) Banks() []BankInfo {
	infos := make([]BankInfo, 0, len(c.banks))
	for i := range c.banks {
		infos = append(infos, c.banks[i].info())
	}

	return infos
}

func (b *bank) info() BankInfo {
	info := BankInfo{
		Name:      b.name,
		Kinds:     append([]AccessKind(nil), b.kinds...),
		NumBlocks: b.tags.Bank().NumBlocks(),
		Occupancy: b.tags.Bank().Occupancy(),
	}

	if fa, ok := b.tags.(*tagging.FullyAssociative); ok {
		info.ReplacementOrder = fa.VictimFinder().Order()
	}

	return info
}

// Reset invalidates all the blocks and clears the counters.
func (c *Comp) Reset() {
	for i := range c.banks {
		c.banks[i].tags.Reset()
	}

	c.stats = Statistics{}
}

// State returns a snapshot of the cache content and counters.
func (c *Comp) State() stateful.State {
	s := &state{
		name:       c.Name(),
		Spec:       c.spec,
		Statistics: c.stats,
	}

	for i := range c.banks {
		s.Banks = append(s.Banks, bankState{
			BankInfo: c.banks[i].info(),
			Blocks:   c.banks[i].tags.Bank().Blocks(),
		})
	}

	return s
}

var _ stateful.StateHolder = (*Comp)(nil)
