package colorconv

import (
	"errors"
	"fmt"
	"math"
)

// This package holds the colorimetry needed to describe an RGB display in the
// ICC profile connection space: chromaticity to XYZ conversion, the white
// balanced RGB->XYZ matrix for a set of primaries and Bradford chromatic
// adaptation between reference whites.
//
// Notes:
// - Matrices act on column vectors, XYZ = M * RGB, so the columns of an
//   RGB->XYZ matrix are the XYZ values of the red, green and blue primaries.
// - XYZ values are relative, with the reference white at Y = 1.0 unless a
//   WhitePoint carries a different luminance.

type Vec3 [3]float64
type Mat3 [3][3]float64

// ErrColorimetry is returned for singular or degenerate primary and white
// point configurations.
var ErrColorimetry = errors.New("colorimetry error")

// Determinant lower than that are assumed zero (used on matrix invert)
const MATRIX_DET_TOLERANCE = 0.0001

var IdentityMatrix = Mat3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

func (v Vec3) String() string { return fmt.Sprintf("[%.6f %.6f %.6f]", v[0], v[1], v[2]) }

func (v Vec3) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Diagonal returns the matrix with v on its diagonal and zero elsewhere.
func Diagonal(v Vec3) Mat3 {
	return Mat3{
		{v[0], 0, 0},
		{0, v[1], 0},
		{0, 0, v[2]},
	}
}

// Matrix & vector utilities

func (a Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Column returns column i, for an RGB->XYZ matrix the XYZ of primary i.
func (m Mat3) Column(i int) Vec3 {
	return Vec3{m[0][i], m[1][i], m[2][i]}
}

func (m Mat3) IsFinite() bool {
	for _, row := range m {
		if !Vec3(row).IsFinite() {
			return false
		}
	}
	return true
}

func (mat Mat3) Determinant() float64 {
	return mat[0][0]*(mat[1][1]*mat[2][2]-mat[1][2]*mat[2][1]) -
		mat[0][1]*(mat[1][0]*mat[2][2]-mat[1][2]*mat[2][0]) +
		mat[0][2]*(mat[1][0]*mat[2][1]-mat[1][1]*mat[2][0])
}

// Inverted returns the inverse computed from the adjugate. Matrices whose
// determinant is below MATRIX_DET_TOLERANCE are treated as singular.
func (mat Mat3) Inverted() (ans Mat3, err error) {
	det := mat.Determinant()
	if math.Abs(det) < MATRIX_DET_TOLERANCE || math.IsNaN(det) {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted (determinant: %g)", det)
	}
	invDet := 1 / det
	adj := Mat3{
		{
			(mat[1][1]*mat[2][2] - mat[1][2]*mat[2][1]),
			(mat[0][2]*mat[2][1] - mat[0][1]*mat[2][2]), // Note the sign change for cofactor C12
			(mat[0][1]*mat[1][2] - mat[0][2]*mat[1][1]), // Note the sign change for cofactor C13
		},
		{
			(mat[1][2]*mat[2][0] - mat[1][0]*mat[2][2]),
			(mat[0][0]*mat[2][2] - mat[0][2]*mat[2][0]),
			(mat[0][2]*mat[1][0] - mat[0][0]*mat[1][2]),
		},
		{
			(mat[1][0]*mat[2][1] - mat[1][1]*mat[2][0]),
			(mat[0][1]*mat[2][0] - mat[0][0]*mat[2][1]),
			(mat[0][0]*mat[1][1] - mat[0][1]*mat[1][0]),
		},
	}
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = invDet * adj[i][j]
		}
	}
	return
}

func (m Mat3) String() string {
	return fmt.Sprintf("Mat3{%v %v %v}", Vec3(m[0]), Vec3(m[1]), Vec3(m[2]))
}
