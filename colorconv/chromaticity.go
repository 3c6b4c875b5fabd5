package colorconv

import (
	"fmt"
	"math"
)

// Chromaticity is a CIE 1931 (x, y) coordinate pair.
type Chromaticity struct {
	X, Y float64
}

// WhitePoint is the chromaticity designated as white together with its
// relative luminance, conventionally 1.0.
type WhitePoint struct {
	Chromaticity
	Luminance float64
}

type Primaries struct {
	Red, Green, Blue Chromaticity
}

func (c Chromaticity) String() string { return fmt.Sprintf("(%.4f, %.4f)", c.X, c.Y) }

func (c Chromaticity) Validate() error {
	switch {
	case math.IsNaN(c.X) || math.IsNaN(c.Y):
		return fmt.Errorf("%w: chromaticity %v is not a number", ErrColorimetry, c)
	case c.X <= 0 || c.X >= 1 || c.Y <= 0 || c.Y >= 1:
		return fmt.Errorf("%w: chromaticity %v is outside the open unit square", ErrColorimetry, c)
	case c.X+c.Y > 1:
		return fmt.Errorf("%w: chromaticity %v has x+y > 1", ErrColorimetry, c)
	}
	return nil
}

// XYZ returns the tristimulus value of c with Y = 1.
func (c Chromaticity) XYZ() Vec3 {
	return Vec3{c.X / c.Y, 1, (1 - c.X - c.Y) / c.Y}
}

func (w WhitePoint) Validate() error {
	if err := w.Chromaticity.Validate(); err != nil {
		return fmt.Errorf("white point: %w", err)
	}
	if !(w.Luminance > 0) || math.IsInf(w.Luminance, 0) {
		return fmt.Errorf("%w: white point %v has degenerate luminance %g", ErrColorimetry, w.Chromaticity, w.Luminance)
	}
	return nil
}

// XYZ returns the tristimulus value of the white scaled by its luminance.
func (w WhitePoint) XYZ() Vec3 {
	xyz := w.Chromaticity.XYZ()
	for i := range xyz {
		xyz[i] *= w.Luminance
	}
	return xyz
}

func (p Primaries) Validate() error {
	for i, c := range [3]Chromaticity{p.Red, p.Green, p.Blue} {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s primary: %w", [3]string{"red", "green", "blue"}[i], err)
		}
	}
	return nil
}

// Matrix returns the unscaled matrix whose columns are the XYZ values of the
// primaries with Y = 1.
func (p Primaries) Matrix() Mat3 {
	r, g, b := p.Red.XYZ(), p.Green.XYZ(), p.Blue.XYZ()
	return Mat3{
		{r[0], g[0], b[0]},
		{r[1], g[1], b[1]},
		{r[2], g[2], b[2]},
	}
}

// DeriveMatrix returns the RGB->XYZ matrix for the primaries, with every
// column scaled so that RGB (1, 1, 1) maps exactly to the white point.
func DeriveMatrix(p Primaries, w WhitePoint) (Mat3, error) {
	if err := p.Validate(); err != nil {
		return Mat3{}, err
	}
	if err := w.Validate(); err != nil {
		return Mat3{}, err
	}
	m := p.Matrix()
	inv, err := m.Inverted()
	if err != nil {
		return Mat3{}, fmt.Errorf("%w: primaries red%v green%v blue%v are collinear: %s", ErrColorimetry, p.Red, p.Green, p.Blue, err)
	}
	s := inv.MulVec(w.XYZ())
	ans := m.Mul(Diagonal(s))
	if !ans.IsFinite() {
		return Mat3{}, fmt.Errorf("%w: derived matrix is not finite: %v", ErrColorimetry, ans)
	}
	return ans, nil
}
