package pointset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// LoadText reads n points of d whitespace-separated float32 scalars each,
// in row-major order (ground: original "read_points": read scalar by
// scalar, not line by line).
func LoadText(r io.Reader, n, d int) (*Dense, error) {
	data := make([]float32, n*d)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	for i := 0; i < n*d; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("pointset: expected %d scalars, got %d: %w", n*d, i, io.ErrUnexpectedEOF)
		}
		var v float32
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return nil, fmt.Errorf("pointset: parsing scalar %d: %w", i, err)
		}
		data[i] = v
	}
	return NewDense(data, d), nil
}

// LoadFvecs reads n records of the form [int32 dim][dim × float32], all
// little-endian, back to back (ground: original "readfvecs"). Every
// record's dim field must equal d.
func LoadFvecs(r io.Reader, n, d int) (*Dense, error) {
	data := make([]float32, n*d)
	for i := 0; i < n; i++ {
		var recordDim int32
		if err := binary.Read(r, binary.LittleEndian, &recordDim); err != nil {
			return nil, fmt.Errorf("pointset: reading record %d dimension: %w", i, err)
		}
		if int(recordDim) != d {
			return nil, fmt.Errorf("pointset: record %d has dimension %d, expected %d", i, recordDim, d)
		}
		if err := binary.Read(r, binary.LittleEndian, data[i*d:(i+1)*d]); err != nil {
			return nil, fmt.Errorf("pointset: reading record %d values: %w", i, err)
		}
	}
	return NewDense(data, d), nil
}

// idxMagic is the expected magic number of an IDX-format (unsigned byte)
// archive: MNIST images use 0x00000803.
const idxMagic = 0x00000803

// LoadIDX reads an MNIST-style IDX image archive: four big-endian int32
// header fields (magic, count, rows, cols) followed by count*rows*cols
// unsigned bytes, each promoted to a float32 coordinate (ground: original
// "read_points_IDX_format" + its "reverseInt" big-endian reversal, replaced
// here by encoding/binary.Read(r, binary.BigEndian, ...)).
func LoadIDX(r io.Reader) (*Dense, error) {
	var header [4]int32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("pointset: reading IDX header: %w", err)
	}
	magic, count, rows, cols := header[0], header[1], header[2], header[3]
	if magic != idxMagic {
		return nil, fmt.Errorf("pointset: unexpected IDX magic number %#x", uint32(magic))
	}

	d := int(rows * cols)
	n := int(count)
	raw := make([]byte, n*d)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("pointset: reading IDX pixel data: %w", err)
	}

	data := make([]float32, n*d)
	for i, b := range raw {
		data[i] = float32(b)
	}
	return NewDense(data, d), nil
}

// Format selects which loader Load dispatches to.
type Format int

const (
	FormatText Format = iota
	FormatFvecs
	FormatIDX
)

// Load dispatches to LoadText, LoadFvecs, or LoadIDX according to format.
// n and d are only consulted by LoadText and LoadFvecs; LoadIDX reads both
// from its own header.
func Load(format Format, r io.Reader, n, d int) (*Dense, error) {
	switch format {
	case FormatText:
		return LoadText(r, n, d)
	case FormatFvecs:
		return LoadFvecs(r, n, d)
	case FormatIDX:
		return LoadIDX(r)
	default:
		return nil, fmt.Errorf("pointset: unknown format %d", format)
	}
}
