package colorconv

import (
	"fmt"
	"math"
)

// D50 is the profile connection space illuminant as fixed by ICC.1, which
// differs slightly from the CIE value.
var D50 = Vec3{0.9642, 1.0, 0.8249}

// Standard reference whites as chromaticities with Y = 1.0
var (
	D65White = WhitePoint{Chromaticity{0.3127, 0.3290}, 1}
	D50White = WhitePoint{Chromaticity{0.3457, 0.3585}, 1}
)

// Bradford transform matrices (forward and inverse)
var (
	Bradford = Mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford Mat3
)

func init() {
	var err error
	if invBradford, err = Bradford.Inverted(); err != nil {
		panic(err)
	}
}

// AdaptationMatrix constructs a 3x3 matrix that adapts XYZ values from
// sourceWhite to targetWhite using the Bradford method.
func AdaptationMatrix(sourceWhite, targetWhite Vec3) (Mat3, error) {
	if !sourceWhite.IsFinite() || !targetWhite.IsFinite() {
		return Mat3{}, fmt.Errorf("%w: cannot adapt from %v to %v", ErrColorimetry, sourceWhite, targetWhite)
	}
	// Convert whites to cone responses using Bradford
	src := Bradford.MulVec(sourceWhite)
	tgt := Bradford.MulVec(targetWhite)
	for _, v := range src {
		if math.Abs(v) < MATRIX_DET_TOLERANCE {
			return Mat3{}, fmt.Errorf("%w: source white %v is degenerate (cone response %v)", ErrColorimetry, sourceWhite, src)
		}
	}
	diag := Diagonal(Vec3{tgt[0] / src[0], tgt[1] / src[1], tgt[2] / src[2]})
	// adapt = invBradford * diag * bradford
	return invBradford.Mul(diag.Mul(Bradford)), nil
}

// Adapt re-expresses the RGB->XYZ matrix m, defined relative to sourceWhite,
// relative to targetWhite.
func Adapt(m Mat3, sourceWhite, targetWhite Vec3) (Mat3, error) {
	a, err := AdaptationMatrix(sourceWhite, targetWhite)
	if err != nil {
		return Mat3{}, err
	}
	return a.Mul(m), nil
}
