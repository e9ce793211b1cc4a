package xbits

import "github.com/pkg/errors"

var (
	ErrLength     = errors.New("xbits: requested size exceeds the maximum size")
	ErrOutOfRange = errors.New("xbits: index out of range")
	ErrBadWidth   = errors.New("xbits: field width does not divide the block width")
	ErrBadRange   = errors.New("xbits: range end precedes its start")

	ErrAllocatorMismatch = errors.New("xbits: buffers cannot be exchanged between unequal allocators")
)
