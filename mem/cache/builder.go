package cache

import (
	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/naming"
)

// Builder can build caches.
type Builder struct {
	spec Spec
}

// MakeBuilder creates a new builder. The cache size must be set before
// building.
func MakeBuilder() Builder {
	return Builder{spec: defaults()}
}

// WithSpec replaces the whole configuration.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithTotalByteSize sets the total capacity of the cache, in bytes.
func (b Builder) WithTotalByteSize(size uint64) Builder {
	b.spec.TotalByteSize = size
	return b
}

// WithMapping sets the mapping policy.
func (b Builder) WithMapping(mapping Mapping) Builder {
	b.spec.Mapping = mapping
	return b
}

// WithOrganization sets whether instructions and data share a bank.
func (b Builder) WithOrganization(org Organization) Builder {
	b.spec.Organization = org
	return b
}

// Build builds a cache. It returns a *ConfigError if the configuration cannot
// be simulated.
func (b Builder) Build(name string) (*Comp, error) {
	err := b.spec.Validate()
	if err != nil {
		return nil, err
	}

	comp := &Comp{
		HookableBase: hooking.NewHookableBase(),
		NamedBase:    naming.MakeNamedBase(name),
		spec:         b.spec,
	}

	b.addBanks(comp, name)

	return comp, nil
}

func (b Builder) addBanks(comp *Comp, name string) {
	if b.spec.Organization == Unified {
		comp.banks = []bank{
			b.createBank(naming.Join(name, "Bank"), Instruction, Data),
		}

		comp.route[Instruction] = 0
		comp.route[Data] = 0

		return
	}

	comp.banks = []bank{
		b.createBank(naming.Join(name, "InstBank"), Instruction),
		b.createBank(naming.Join(name, "DataBank"), Data),
	}

	comp.route[Instruction] = 0
	comp.route[Data] = 1
}

func (b Builder) createBank(name string, kinds ...AccessKind) bank {
	return bank{
		name:  name,
		kinds: kinds,
		tags:  b.createTagArray(),
	}
}

func (b Builder) createTagArray() tagging.TagArray {
	numBlocks := b.spec.NumBlocksPerBank()

	switch b.spec.Mapping {
	case DirectMapped:
		return tagging.NewDirectMapped(Log2BlockSize, numBlocks)
	case FullyAssociative:
		return tagging.NewFullyAssociative(Log2BlockSize, numBlocks)
	default:
		panic("unknown mapping: " + b.spec.Mapping.String())
	}
}
