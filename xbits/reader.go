package xbits

import "io"

// FieldReader is a source of field values whose length is not known ahead of
// time. It returns io.EOF once exhausted; any other error aborts whatever is
// consuming it.
type FieldReader interface {
	ReadField() (uint8, error)
}

// FieldReaderFunc adapts a function to a FieldReader.
type FieldReaderFunc func() (uint8, error)

func (f FieldReaderFunc) ReadField() (uint8, error) { return f() }

// ByteFields reads one field value per byte from r.
func ByteFields(r io.ByteReader) FieldReader {
	return FieldReaderFunc(r.ReadByte)
}

// SliceFields reads the values of vals in order.
func SliceFields(vals []uint8) FieldReader {
	i := 0
	return FieldReaderFunc(func() (uint8, error) {
		if i >= len(vals) {
			return 0, io.EOF
		}
		i++
		return vals[i-1], nil
	})
}
