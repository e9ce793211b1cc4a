package nucleo

import (
	"io"

	"github.com/forestrie/go-xbits/xbits"
	"github.com/pkg/errors"
)

// Reader turns a stream of base letters into two bit codes. Line breaks,
// spaces and tabs are skipped so wrapped sequence text can be read directly.
type Reader struct {
	r   io.ByteReader
	off int
}

var _ xbits.FieldReader = (*Reader)(nil)

func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) ReadField() (uint8, error) {
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		r.off++
		switch b {
		case '\n', '\r', ' ', '\t':
			continue
		}
		c, err := Code(b)
		if err != nil {
			return 0, errors.Wrapf(err, "offset %d", r.off-1)
		}
		return c, nil
	}
}

// Read packs everything r yields into a new sequence.
func Read[B xbits.Block](r io.ByteReader, opts ...xbits.Option) (*xbits.Vector[xbits.Dibit, B], error) {
	return xbits.NewFromReader[xbits.Dibit, B](NewReader(r), opts...)
}
