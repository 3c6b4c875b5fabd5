// Package srgb holds the reference sRGB colorimetry of IEC 61966-2-1 in the
// form the profile builder consumes.
package srgb

import (
	"github.com/miruzo/iccgen/colorconv"
	"github.com/miruzo/iccgen/prism/icc"
)

// ITU-R BT.709 primaries, shared by sRGB
var Primaries = colorconv.Primaries{
	Red:   colorconv.Chromaticity{X: 0.64, Y: 0.33},
	Green: colorconv.Chromaticity{X: 0.30, Y: 0.60},
	Blue:  colorconv.Chromaticity{X: 0.15, Y: 0.06},
}

var White = colorconv.D65White

// Curve is the sRGB decoding function, encoded value to linear light.
var Curve = icc.ComplexCurve{
	G: 2.4,
	A: 1 / 1.055,
	B: 0.055 / 1.055,
	C: 0,
	D: 0.04045,
	E: 1 / 12.92,
	F: 0,
}
