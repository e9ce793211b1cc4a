package xbits

import "golang.org/x/exp/constraints"

// Block is the unsigned storage unit fields are packed into.
type Block interface {
	constraints.Unsigned
}

// Width fixes the number of bits occupied by one field. Implementations are
// zero size marker types used as type arguments.
type Width interface {
	Bits() uint
}

// Bit packs one bit per field.
type Bit struct{}

func (Bit) Bits() uint { return 1 }

// Dibit packs two bits per field.
type Dibit struct{}

func (Dibit) Bits() uint { return 2 }

// Quadbit packs four bits per field.
type Quadbit struct{}

func (Quadbit) Bits() uint { return 4 }

// MaxFieldBits is the widest field a uint8 value can carry.
const MaxFieldBits = 8

// Getter is anything a field value can be read from.
type Getter interface {
	Get() uint8
}

// Settable is satisfied by both the mutable and the read-only accessors and
// iterators. Writes through the read-only variants are discarded.
type Settable interface {
	Getter
	Set(v uint8)
}
