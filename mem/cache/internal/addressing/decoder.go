// Package addressing splits memory addresses into the offset, index and tag
// fields a cache bank uses.
package addressing

import (
	"fmt"
	"math/bits"
)

// Fields are the parts of a decoded address.
type Fields struct {
	Offset uint32
	Index  int
	Tag    uint64
}

// A Decoder decodes addresses for a bank of a fixed number of blocks.
type Decoder struct {
	log2BlockSize int
	numBlocks     int
	indexMask     uint64
}

// NewDecoder creates a decoder for a bank with numBlocks blocks of
// 1<<log2BlockSize bytes each. numBlocks must be a power of two.
func NewDecoder(log2BlockSize int, numBlocks int) Decoder {
	if log2BlockSize < 0 || log2BlockSize >= 32 {
		panic(fmt.Sprintf("invalid log2 block size %d", log2BlockSize))
	}

	if !IsPowerOfTwo(numBlocks) {
		panic(fmt.Sprintf("number of blocks %d is not a power of two",
			numBlocks))
	}

	return Decoder{
		log2BlockSize: log2BlockSize,
		numBlocks:     numBlocks,
		indexMask:     uint64(numBlocks - 1),
	}
}

// BlockSize returns the number of bytes in a block.
func (d Decoder) BlockSize() uint32 {
	return 1 << d.log2BlockSize
}

// IndexBits returns the number of address bits used as the index.
func (d Decoder) IndexBits() int {
	return bits.TrailingZeros(uint(d.numBlocks))
}

// BlockAddress drops the offset bits of the address.
func (d Decoder) BlockAddress(addr uint32) uint64 {
	return uint64(addr >> d.log2BlockSize)
}

// DirectMapped decodes the address for a direct-mapped bank. The tag keeps
// the high-order bits in place, with the index bits cleared.
func (d Decoder) DirectMapped(addr uint32) Fields {
	blockAddr := d.BlockAddress(addr)

	return Fields{
		Offset: addr & (d.BlockSize() - 1),
		Index:  int(blockAddr & d.indexMask),
		Tag:    blockAddr &^ d.indexMask,
	}
}

// FullyAssociative decodes the address for a fully-associative bank. There
// is no index and the whole block address is the tag.
func (d Decoder) FullyAssociative(addr uint32) Fields {
	return Fields{
		Offset: addr & (d.BlockSize() - 1),
		Tag:    d.BlockAddress(addr),
	}
}

// IsPowerOfTwo tells if n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
