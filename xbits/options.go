package xbits

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-xbits/blockalloc"
)

// Options carries the construction time collaborators of a Vector.
type Options[B Block] struct {
	Allocator blockalloc.Allocator[B]
	Log       logger.Logger
}

// Option is a generic option type. Each option type asserts to the Options
// record it knows how to set and ignores anything else, so an allocator for
// the wrong block type is silently dropped.
type Option func(any)

type logSetter interface {
	setLog(log logger.Logger)
}

func (o *Options[B]) setLog(log logger.Logger) { o.Log = log }

func WithAllocator[B Block](a blockalloc.Allocator[B]) Option {
	return func(opts any) {
		if o, ok := opts.(*Options[B]); ok {
			o.Allocator = a
		}
	}
}

// WithLogger enables debug logging of reallocations and reporting of
// swallowed failures.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(logSetter); ok {
			o.setLog(log)
		}
	}
}

func newOptions[B Block](opts []Option) Options[B] {
	o := Options[B]{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Allocator == nil {
		o.Allocator = blockalloc.NewHeap[B]()
	}
	return o
}
