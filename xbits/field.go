package xbits

// Field is a write-through view of one packed field: a block pointer and the
// bit shift of the field within that block. It stands in for a reference,
// which Go cannot take to anything narrower than a byte.
//
// A Field does not own memory. It is invalidated by anything that reallocates
// or shifts the container it came from.
type Field[W Width, B Block] struct {
	blk   *B
	shift uint
}

func newField[W Width, B Block](blk *B, offset int) Field[W, B] {
	return Field[W, B]{blk: blk, shift: uint(offset) * widthOf[W]()}
}

// Get returns the field value, in [0, 2^N).
func (f Field[W, B]) Get() uint8 {
	return uint8((*f.blk >> f.shift) & FieldMask[W, B]())
}

// Set stores the low N bits of v. Higher bits are silently dropped.
func (f Field[W, B]) Set(v uint8) {
	m := FieldMask[W, B]()
	*f.blk &^= m << f.shift
	*f.blk |= (B(v) & m) << f.shift
}

// Assign copies the value read from src into f.
func (f Field[W, B]) Assign(src Getter) {
	f.Set(src.Get())
}

// Inc adds one, wrapping at 2^N, and returns the new value.
func (f Field[W, B]) Inc() uint8 {
	f.Set(f.Get() + 1)
	return f.Get()
}

// PostInc adds one, wrapping at 2^N, and returns the previous value.
func (f Field[W, B]) PostInc() uint8 {
	v := f.Get()
	f.Set(v + 1)
	return v
}

// Dec subtracts one, wrapping at zero, and returns the new value.
func (f Field[W, B]) Dec() uint8 {
	f.Set(f.Get() - 1)
	return f.Get()
}

// PostDec subtracts one, wrapping at zero, and returns the previous value.
func (f Field[W, B]) PostDec() uint8 {
	v := f.Get()
	f.Set(v - 1)
	return v
}

func (f Field[W, B]) Const() ConstField[W, B] {
	return ConstField[W, B]{blk: f.blk, shift: f.shift}
}

// ConstField is the read-only counterpart of Field. Set is a deliberate no-op
// so that algorithms can write through any Settable without caring whether
// the destination is mutable.
type ConstField[W Width, B Block] struct {
	blk   *B
	shift uint
}

func (f ConstField[W, B]) Get() uint8 {
	return uint8((*f.blk >> f.shift) & FieldMask[W, B]())
}

func (f ConstField[W, B]) Set(uint8) {}

// SwapFields exchanges the values of two fields.
func SwapFields[W Width, B Block](a, b Field[W, B]) {
	t := a.Get()
	a.Set(b.Get())
	b.Set(t)
}

// SwapValue exchanges the value of a field with a plain value.
func SwapValue[W Width, B Block](f Field[W, B], v *uint8) {
	t := f.Get()
	f.Set(*v)
	*v = t
}
