package nucleo

import (
	"strings"
	"testing"

	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/forestrie/go-xbits/xbits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"upper", "GATTACA", "GATTACA"},
		{"lower", "gattaca", "GATTACA"},
		{"longer than a block", strings.Repeat("ACGT", 20), strings.Repeat("ACGT", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Encode[uint64](tt.in)
			require.NoError(t, err)
			assert.Equal(t, len(tt.in), seq.Len())
			assert.Equal(t, tt.want, Decode(seq))
		})
	}
}

func TestEncodeRejectsBadBase(t *testing.T) {
	_, err := Encode[uint8]("ACGN")
	assert.ErrorIs(t, err, ErrBadBase)
	assert.Contains(t, err.Error(), "offset 3")
}

func TestComplement(t *testing.T) {
	seq, err := Encode[uint16]("AACGTT")
	require.NoError(t, err)

	Complement(seq)
	assert.Equal(t, "TTGCAA", Decode(seq))

	Complement(seq)
	assert.Equal(t, "AACGTT", Decode(seq))
}

func TestReverseComplement(t *testing.T) {
	seq, err := Encode[uint32]("ATGCGTAC")
	require.NoError(t, err)
	ReverseComplement(seq)
	assert.Equal(t, "GTACGCAT", Decode(seq))

	// A reverse palindrome is its own reverse complement.
	pal, err := Encode[uint32]("GAATTC")
	require.NoError(t, err)
	ReverseComplement(pal)
	assert.Equal(t, "GAATTC", Decode(pal))
}

func TestGCContent(t *testing.T) {
	seq, err := Encode[uint64]("GGCCAT")
	require.NoError(t, err)
	assert.InDelta(t, 4.0/6.0, GCContent(seq), 1e-9)

	empty, err := Encode[uint64]("")
	require.NoError(t, err)
	assert.Zero(t, GCContent(empty))
}

func TestRead(t *testing.T) {
	a := blockalloc.NewArena[uint8]()
	seq, err := Read[uint8](strings.NewReader("ACGT\nacgt\r\n  TT\n"), xbits.WithAllocator[uint8](a))
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTTT", Decode(seq))

	_, err = Read[uint8](strings.NewReader("ACGT\nAXGT\n"), xbits.WithAllocator[uint8](a))
	assert.ErrorIs(t, err, ErrBadBase)
	assert.Contains(t, err.Error(), "offset 6")

	seq.Release()
	assert.Zero(t, a.InUse(), "a failed read releases its partial buffer")
}

func TestCodeBase(t *testing.T) {
	for i, b := range []byte("ACGT") {
		c, err := Code(b)
		require.NoError(t, err)
		assert.Equal(t, uint8(i), c)
		assert.Equal(t, b, Base(c))
	}
	assert.Equal(t, T, ^A&3)
	assert.Equal(t, G, ^C&3)
}
