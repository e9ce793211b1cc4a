package blockalloc

import "github.com/pkg/errors"

var (
	ErrTooLarge      = errors.New("blockalloc: request exceeds the allocator maximum")
	ErrExhausted     = errors.New("blockalloc: allocator budget exhausted")
	ErrNegativeCount = errors.New("blockalloc: negative block count")
	ErrUnknownBuffer = errors.New("blockalloc: buffer was not allocated here or was already released")
)
