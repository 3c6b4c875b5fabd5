package colorconv

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func requireMatrixNear(t *testing.T, expected, actual Mat3, eps float64) {
	t.Helper()
	for i := range 3 {
		for j := range 3 {
			if !nearlyEqual(expected[i][j], actual[i][j], eps) {
				t.Fatalf("matrices differ at [%d][%d]:\n  expected %v\n  got      %v", i, j, expected, actual)
			}
		}
	}
}

var srgbPrimaries = Primaries{
	Red:   Chromaticity{0.64, 0.33},
	Green: Chromaticity{0.30, 0.60},
	Blue:  Chromaticity{0.15, 0.06},
}

var p3Primaries = Primaries{
	Red:   Chromaticity{0.680, 0.320},
	Green: Chromaticity{0.265, 0.690},
	Blue:  Chromaticity{0.150, 0.060},
}

var primaryCases = []struct {
	name      string
	primaries Primaries
	white     WhitePoint
}{
	{"sRGB", srgbPrimaries, D65White},
	{"DCI-P3 D65", p3Primaries, D65White},
	{"Adobe RGB", Primaries{Chromaticity{0.64, 0.33}, Chromaticity{0.21, 0.71}, Chromaticity{0.15, 0.06}}, D65White},
	{"BT.2020", Primaries{Chromaticity{0.708, 0.292}, Chromaticity{0.170, 0.797}, Chromaticity{0.131, 0.046}}, D65White},
	{"ProPhoto", Primaries{Chromaticity{0.7347, 0.2653}, Chromaticity{0.1596, 0.8404}, Chromaticity{0.0366, 0.0001}}, D50White},
	{"DCI-P3 theater white", p3Primaries, WhitePoint{Chromaticity{0.314, 0.351}, 1}},
	{"dim white", srgbPrimaries, WhitePoint{Chromaticity{0.3127, 0.3290}, 0.8}},
}

func TestChromaticityXYZ(t *testing.T) {
	for _, c := range []Chromaticity{{0.3127, 0.3290}, {0.64, 0.33}, {0.0366, 0.0001}, {0.3457, 0.3585}} {
		x, y, z := colorful.XyyToXyz(c.X, c.Y, 1)
		xyz := c.XYZ()
		assert.InDelta(t, x, xyz[0], 1e-9, "X of %v", c)
		assert.InDelta(t, y, xyz[1], 1e-9, "Y of %v", c)
		assert.InDelta(t, z, xyz[2], 1e-9, "Z of %v", c)
	}
	w := WhitePoint{Chromaticity{0.3127, 0.3290}, 0.5}
	x, y, z := colorful.XyyToXyz(w.X, w.Y, w.Luminance)
	assert.InDeltaSlice(t, []float64{x, y, z}, w.XYZ()[:], 1e-9)
}

func TestChromaticityValidate(t *testing.T) {
	for _, c := range []Chromaticity{{0, 0.3}, {0.3, 0}, {1, 0.2}, {0.6, 0.6}, {math.NaN(), 0.3}, {-0.1, 0.5}} {
		err := c.Validate()
		require.Error(t, err, "%v", c)
		assert.ErrorIs(t, err, ErrColorimetry)
	}
	require.NoError(t, Chromaticity{0.5, 0.5}.Validate())
}

func TestDeriveMatrix(t *testing.T) {
	t.Run("sRGB", func(t *testing.T) {
		m, err := DeriveMatrix(srgbPrimaries, D65White)
		require.NoError(t, err)
		requireMatrixNear(t, Mat3{
			{0.4124564, 0.3575761, 0.1804375},
			{0.2126729, 0.7151522, 0.0721750},
			{0.0193339, 0.1191920, 0.9503041},
		}, m, 1e-3)
	})
	t.Run("WhiteBalanced", func(t *testing.T) {
		for _, tc := range primaryCases {
			m, err := DeriveMatrix(tc.primaries, tc.white)
			require.NoError(t, err, tc.name)
			white := m.MulVec(Vec3{1, 1, 1})
			assert.InDeltaSlice(t, tc.white.XYZ()[:], white[:], 1e-9, tc.name)
		}
	})
	t.Run("ColumnsKeepPrimaryChromaticity", func(t *testing.T) {
		m, err := DeriveMatrix(p3Primaries, D65White)
		require.NoError(t, err)
		for i, c := range []Chromaticity{p3Primaries.Red, p3Primaries.Green, p3Primaries.Blue} {
			col := m.Column(i)
			sum := col[0] + col[1] + col[2]
			assert.InDelta(t, c.X, col[0]/sum, 1e-9)
			assert.InDelta(t, c.Y, col[1]/sum, 1e-9)
		}
	})
	t.Run("Collinear", func(t *testing.T) {
		same := Chromaticity{0.3, 0.4}
		_, err := DeriveMatrix(Primaries{same, same, same}, D65White)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrColorimetry)
		assert.ErrorContains(t, err, "collinear")

		// three distinct points on the line x = y
		_, err = DeriveMatrix(Primaries{Chromaticity{0.2, 0.2}, Chromaticity{0.3, 0.3}, Chromaticity{0.4, 0.4}}, D65White)
		assert.ErrorIs(t, err, ErrColorimetry)
	})
	t.Run("DegenerateWhite", func(t *testing.T) {
		_, err := DeriveMatrix(srgbPrimaries, WhitePoint{Chromaticity{0.3127, 0.3290}, 0})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrColorimetry)
		assert.ErrorContains(t, err, "luminance")
	})
	t.Run("InvalidPrimary", func(t *testing.T) {
		_, err := DeriveMatrix(Primaries{Chromaticity{0.7, 0.4}, srgbPrimaries.Green, srgbPrimaries.Blue}, D65White)
		assert.ErrorIs(t, err, ErrColorimetry)
		assert.ErrorContains(t, err, "red primary")
	})
}

func TestInverted(t *testing.T) {
	m := srgbPrimaries.Matrix()
	inv, err := m.Inverted()
	require.NoError(t, err)
	requireMatrixNear(t, IdentityMatrix, m.Mul(inv), 1e-12)
	requireMatrixNear(t, IdentityMatrix, inv.Mul(m), 1e-12)

	_, err = Mat3{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}.Inverted()
	assert.ErrorContains(t, err, "singular")
}
