package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem/cache/internal/addressing"
)

const (
	// Log2BlockSize is the log2 of the cache line size. Lines are 64 bytes and
	// the size is not configurable.
	Log2BlockSize = 6

	// BlockByteSize is the number of bytes in a cache line.
	BlockByteSize = 1 << Log2BlockSize

	// MaxTotalByteSize covers the whole 32-bit address space.
	MaxTotalByteSize = uint64(1) << 32
)

// Mapping decides where a block may be placed in a bank.
type Mapping int

const (
	// DirectMapped places each block in exactly one slot.
	DirectMapped Mapping = iota

	// FullyAssociative places a block in any slot and evicts in FIFO order.
	FullyAssociative
)

func (m Mapping) String() string {
	switch m {
	case DirectMapped:
		return "dm"
	case FullyAssociative:
		return "fa"
	default:
		return "Mapping(" + strconv.Itoa(int(m)) + ")"
	}
}

// MarshalText encodes the mapping with its command line name.
func (m Mapping) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMapping converts "dm" or "fa" into a Mapping.
func ParseMapping(s string) (Mapping, error) {
	switch strings.TrimSpace(s) {
	case "dm":
		return DirectMapped, nil
	case "fa":
		return FullyAssociative, nil
	case "":
		return 0, &ConfigError{Field: "mapping", Value: s, Reason: "missing"}
	default:
		return 0, &ConfigError{
			Field:  "mapping",
			Value:  s,
			Reason: "must be dm or fa",
		}
	}
}

// Organization decides whether instructions and data share a bank.
type Organization int

const (
	// Unified routes instruction and data accesses to a single bank.
	Unified Organization = iota

	// Split gives instructions and data one half of the cache each.
	Split
)

func (o Organization) String() string {
	switch o {
	case Unified:
		return "uc"
	case Split:
		return "sc"
	default:
		return "Organization(" + strconv.Itoa(int(o)) + ")"
	}
}

// MarshalText encodes the organization with its command line name.
func (o Organization) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOrganization converts "uc" or "sc" into an Organization.
func ParseOrganization(s string) (Organization, error) {
	switch strings.TrimSpace(s) {
	case "uc":
		return Unified, nil
	case "sc":
		return Split, nil
	case "":
		return 0, &ConfigError{
			Field:  "organization",
			Value:  s,
			Reason: "missing",
		}
	default:
		return 0, &ConfigError{
			Field:  "organization",
			Value:  s,
			Reason: "must be uc or sc",
		}
	}
}

// ParseTotalByteSize converts a decimal byte count into a total cache size.
func ParseTotalByteSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ConfigError{Field: "cache size", Value: s, Reason: "missing"}
	}

	size, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ConfigError{
			Field:  "cache size",
			Value:  s,
			Reason: "must be a positive decimal number of bytes",
		}
	}

	return size, nil
}

// A ConfigError reports a cache configuration that cannot be simulated.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Spec is the configuration of a simulated cache. It is fixed for a run.
type Spec struct {
	TotalByteSize uint64       `json:"total_byte_size"`
	Mapping       Mapping      `json:"mapping"`
	Organization  Organization `json:"organization"`
}

func defaults() Spec {
	return Spec{
		Mapping:      DirectMapped,
		Organization: Unified,
	}
}

// NumBanks returns 1 for a unified cache and 2 for a split cache.
func (s Spec) NumBanks() int {
	if s.Organization == Split {
		return 2
	}

	return 1
}

// NumBlocks returns the number of blocks in the whole cache.
func (s Spec) NumBlocks() int {
	return int(s.TotalByteSize / BlockByteSize)
}

// NumBlocksPerBank returns the number of blocks each bank holds.
func (s Spec) NumBlocksPerBank() int {
	return s.NumBlocks() / s.NumBanks()
}

// Validate checks that the spec describes a cache that can be simulated.
func (s Spec) Validate() error {
	if s.Mapping != DirectMapped && s.Mapping != FullyAssociative {
		return &ConfigError{
			Field:  "mapping",
			Value:  s.Mapping.String(),
			Reason: "unknown mapping",
		}
	}

	if s.Organization != Unified && s.Organization != Split {
		return &ConfigError{
			Field:  "organization",
			Value:  s.Organization.String(),
			Reason: "unknown organization",
		}
	}

	size := strconv.FormatUint(s.TotalByteSize, 10)

	switch {
	case s.TotalByteSize == 0:
		return &ConfigError{Field: "cache size", Value: size, Reason: "missing"}
	case s.TotalByteSize > MaxTotalByteSize:
		return &ConfigError{
			Field:  "cache size",
			Value:  size,
			Reason: "must not exceed the 32-bit address space",
		}
	case s.TotalByteSize%BlockByteSize != 0:
		return &ConfigError{
			Field:  "cache size",
			Value:  size,
			Reason: fmt.Sprintf("must be a multiple of the %d-byte block size",
				BlockByteSize),
		}
	case s.Organization == Split && s.NumBlocks()%2 != 0:
		return &ConfigError{
			Field:  "cache size",
			Value:  size,
			Reason: "a split cache needs an even number of blocks",
		}
	case s.NumBlocksPerBank() == 0:
		return &ConfigError{
			Field: "cache size",
			Value: size,
			Reason: fmt.Sprintf("must hold at least one block per bank (%d bytes)",
				BlockByteSize*s.NumBanks()),
		}
	case s.Mapping == DirectMapped &&
		!addressing.IsPowerOfTwo(s.NumBlocksPerBank()):
		return &ConfigError{
			Field: "cache size",
			Value: size,
			Reason: fmt.Sprintf("direct-mapped banks need a power-of-two "+
				"number of blocks, got %d", s.NumBlocksPerBank()),
		}
	}

	return nil
}
