package icc

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func in_delta(t *testing.T, expected, actual, delta float64) {
	t.Helper()
	assert.InDelta(t, expected, actual, delta)
}

func s15f16_bytes(t *testing.T, v float64) []byte {
	t.Helper()
	q, err := encodeS15Fixed16(v)
	require.NoError(t, err)
	return binary.BigEndian.AppendUint32(nil, q)
}

func TestReadS15Fixed16BE(t *testing.T) {
	t.Run("PositiveWhole", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x01, 0x00, 0x00}) // 1.0
		in_delta(t, 1.0, val, 0.0001)
	})
	t.Run("PositiveFraction", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x02, 0x80, 0x00}) // 2.5
		in_delta(t, 2.5, val, 0.0001)
	})
	t.Run("NegativeWhole", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0xFF, 0xFF, 0x00, 0x00}) // -1.0
		in_delta(t, -1.0, val, 0.0001)
	})
	t.Run("NegativeFraction", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0xFF, 0xFE, 0x80, 0x00}) // -1.5
		in_delta(t, -1.5, val, 0.0001)
	})
	t.Run("Zero", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x00, 0x00, 0x00})
		assert.Equal(t, float64(0), val)
	})
}

func TestEncodeS15Fixed16(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, s15f16_bytes(t, 1))
		assert.Equal(t, []byte{0x00, 0x02, 0x80, 0x00}, s15f16_bytes(t, 2.5))
		assert.Equal(t, []byte{0xFF, 0xFE, 0x80, 0x00}, s15f16_bytes(t, -1.5))
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, s15f16_bytes(t, 0))
	})
	t.Run("D50", func(t *testing.T) {
		assert.Equal(t, []byte{0x00, 0x00, 0xF6, 0xD6}, s15f16_bytes(t, D50.X))
		assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, s15f16_bytes(t, D50.Y))
		assert.Equal(t, []byte{0x00, 0x00, 0xD3, 0x2D}, s15f16_bytes(t, D50.Z))
	})
	t.Run("RoundsHalfUp", func(t *testing.T) {
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, s15f16_bytes(t, 0.5/65536))
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, s15f16_bytes(t, 0.49/65536))
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, s15f16_bytes(t, -0.5/65536))
	})
	t.Run("RoundTrip", func(t *testing.T) {
		for _, v := range []float64{0.4361, 0.2225, 0.0139, -0.0264, 32767.5, -32768} {
			in_delta(t, v, readS15Fixed16BE(s15f16_bytes(t, v)), 1.0/65536)
		}
	})
	t.Run("OutOfRange", func(t *testing.T) {
		for _, v := range []float64{32768, -32769, math.NaN(), math.Inf(1)} {
			_, err := encodeS15Fixed16(v)
			require.ErrorIs(t, err, ErrEncoding, "value: %v", v)
		}
	})
}

func TestEncodeUnsignedFixed(t *testing.T) {
	q, err := encodeU8Fixed8(2.2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0233), q)
	q, err = encodeU8Fixed8(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), q)
	_, err = encodeU8Fixed8(256)
	require.ErrorIs(t, err, ErrEncoding)

	u, err := encodeU16Fixed16(0.64)
	require.NoError(t, err)
	in_delta(t, 0.64, readU16Fixed16BE(binary.BigEndian.AppendUint32(nil, u)), 1.0/65536)
	_, err = encodeU16Fixed16(-0.1)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestTagWriterKeepsFirstError(t *testing.T) {
	w := new_tag_writer(XYZTypeSignature, 20)
	w.s15f16(1)
	w.s15f16(math.NaN())
	w.s15f16(1e9)
	_, err := w.result()
	require.ErrorIs(t, err, ErrEncoding)
	assert.Contains(t, err.Error(), "NaN")
}

func TestAlignTo4(t *testing.T) {
	for in, expected := range map[int]int{0: 0, 1: 4, 3: 4, 4: 4, 5: 8, 38: 40, 100: 100} {
		assert.Equal(t, expected, align_to_4(in), "input: %d", in)
	}
}
