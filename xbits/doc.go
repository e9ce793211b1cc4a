// Package xbits provides a growable array of fixed width unsigned fields
// packed into wider storage blocks.
//
// A Vector[Dibit, uint64] stores 32 two bit values per uint64. The field
// width is a type argument (Bit, Dibit, Quadbit or any Width whose Bits()
// divides the block width), so the layout arithmetic is fixed at compile time:
//
//	fieldsPerBlock = blockBits / N
//	mask           = ^B(0) >> (blockBits - N)
//	field i        = (blocks[i/fieldsPerBlock] >> (i%fieldsPerBlock*N)) & mask
//
// Fields are packed LSB first: field 0 occupies the lowest N bits of block 0.
//
// # Accessors and iterators
//
// Go cannot address anything narrower than a byte, so Index returns a Field:
// a block pointer plus a shift that reads and writes exactly N bits. Iter and
// ConstIter are random access cursors built on the same position arithmetic.
// Both are plain values and are invalidated by anything that reallocates or
// shifts the Vector they came from.
//
// # Storage
//
// All storage comes from a blockalloc.Allocator. Capacity is reported in
// fields and is always a whole number of blocks. Operations that reallocate
// build the new buffer completely before releasing the old one, so a failed
// allocation leaves the Vector as it was.
//
// A Vector is not safe for concurrent use.
package xbits
