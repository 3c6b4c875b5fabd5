package icc

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

func align_to_4(x int) int {
	if extra := x % 4; extra > 0 {
		x += 4 - extra
	}
	return x
}

func clamp01[T constraints.Float](x T) T {
	return max(0, min(x, 1))
}

func is_finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// round to nearest with ties going up, the way ICC reference code converts
// to fixed point
func round_half_up(x float64) float64 { return math.Floor(x + 0.5) }

func encodeS15Fixed16(v float64) (uint32, error) {
	if !is_finite(v) {
		return 0, fmt.Errorf("%w: %v cannot be stored as s15Fixed16Number", ErrEncoding, v)
	}
	q := round_half_up(v * 65536)
	if q < math.MinInt32 || q > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v is outside the s15Fixed16Number range", ErrEncoding, v)
	}
	return uint32(int32(q)), nil
}

func encodeU16Fixed16(v float64) (uint32, error) {
	if !is_finite(v) {
		return 0, fmt.Errorf("%w: %v cannot be stored as u16Fixed16Number", ErrEncoding, v)
	}
	q := round_half_up(v * 65536)
	if q < 0 || q > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %v is outside the u16Fixed16Number range", ErrEncoding, v)
	}
	return uint32(q), nil
}

func encodeU8Fixed8(v float64) (uint16, error) {
	if !is_finite(v) {
		return 0, fmt.Errorf("%w: %v cannot be stored as u8Fixed8Number", ErrEncoding, v)
	}
	q := round_half_up(v * 256)
	if q < 0 || q > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %v is outside the u8Fixed8Number range", ErrEncoding, v)
	}
	return uint16(q), nil
}

// tagWriter accumulates big-endian tag data. The first encoding failure is
// kept and all later writes are ignored.
type tagWriter struct {
	buf []byte
	err error
}

func new_tag_writer(type_sig Signature, size_hint int) *tagWriter {
	w := &tagWriter{buf: make([]byte, 0, size_hint)}
	w.sig(type_sig)
	w.reserved(4)
	return w
}

func (w *tagWriter) sig(s Signature)   { w.u32(uint32(s)) }
func (w *tagWriter) u8(v uint8)        { w.buf = append(w.buf, v) }
func (w *tagWriter) u16(v uint16)      { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }
func (w *tagWriter) u32(v uint32)      { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }
func (w *tagWriter) u64(v uint64)      { w.buf = binary.BigEndian.AppendUint64(w.buf, v) }
func (w *tagWriter) write(data []byte) { w.buf = append(w.buf, data...) }
func (w *tagWriter) reserved(n int) {
	for range n {
		w.buf = append(w.buf, 0)
	}
}

func (w *tagWriter) s15f16(v float64) {
	if w.err != nil {
		return
	}
	q, err := encodeS15Fixed16(v)
	w.err = err
	w.u32(q)
}

func (w *tagWriter) u16f16(v float64) {
	if w.err != nil {
		return
	}
	q, err := encodeU16Fixed16(v)
	w.err = err
	w.u32(q)
}

func (w *tagWriter) u8f8(v float64) {
	if w.err != nil {
		return
	}
	q, err := encodeU8Fixed8(v)
	w.err = err
	w.u16(q)
}

func (w *tagWriter) result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}
