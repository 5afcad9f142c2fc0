package pointset

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseAtReturnsRow(t *testing.T) {
	d := NewDense([]float32{1, 2, 3, 4, 5, 6}, 2)
	assert.Equal(t, []float32{1, 2}, d.At(0))
	assert.Equal(t, []float32{3, 4}, d.At(1))
	assert.Equal(t, []float32{5, 6}, d.At(2))
	assert.Equal(t, 2, d.Dim())
	assert.Equal(t, 3, d.N())
}

func TestNewDensePanicsOnMisalignedBuffer(t *testing.T) {
	assert.Panics(t, func() {
		NewDense([]float32{1, 2, 3}, 2)
	})
}

func TestLoadText(t *testing.T) {
	r := strings.NewReader("1 2 3 4 5 6")
	d, err := LoadText(r, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, d.At(0))
	assert.Equal(t, []float32{5, 6}, d.At(2))
}

func TestLoadTextShortInputErrors(t *testing.T) {
	r := strings.NewReader("1 2 3")
	_, err := LoadText(r, 3, 2)
	assert.Error(t, err)
}

func TestLoadFvecsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for _, rec := range [][]float32{{1, 2, 3}, {4, 5, 6}} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(len(rec))))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, rec))
	}

	d, err := LoadFvecs(&buf, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, d.At(0))
	assert.Equal(t, []float32{4, 5, 6}, d.At(1))
}

func TestLoadFvecsDimensionMismatchErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(5)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []float32{1, 2, 3, 4, 5}))

	_, err := LoadFvecs(&buf, 1, 3)
	assert.Error(t, err)
}

func TestLoadIDX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(idxMagic)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(2))) // count
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(1))) // rows
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(3))) // cols
	buf.Write([]byte{10, 20, 30, 40, 50, 60})

	d, err := LoadIDX(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Dim())
	assert.Equal(t, 2, d.N())
	assert.Equal(t, []float32{10, 20, 30}, d.At(0))
	assert.Equal(t, []float32{40, 50, 60}, d.At(1))
}

func TestLoadIDXBadMagicErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(0xDEAD)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(1)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(1)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(1)))

	_, err := LoadIDX(&buf)
	assert.Error(t, err)
}

func TestLoadDispatch(t *testing.T) {
	r := strings.NewReader("1 2 3 4")
	d, err := Load(FormatText, r, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.N())

	_, err = Load(Format(99), strings.NewReader(""), 1, 1)
	assert.Error(t, err)
}
