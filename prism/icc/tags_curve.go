package icc

import (
	"fmt"
	"math"
	"slices"

	"github.com/kovidgoyal/go-parallel"
)

// Maximum mismatch allowed between the two pieces of a split curve at the
// breakpoint
const CURVE_CONTINUITY_TOLERANCE = 0.0001

// Number of evenly spaced samples used to check monotonicity and to
// tabulate curves for profiles that cannot store parametric curves
const CURVE_SAMPLES = 4096

// Decreases smaller than this between samples are rounding noise
const curve_monotonic_tolerance = 1e-9

type ParametricCurveFunction uint16

const (
	SimpleGammaFunction     ParametricCurveFunction = 0 // Y = X^g
	ConditionalZeroFunction ParametricCurveFunction = 1 // Y = (aX+b)^g for X >= -b/a, else 0
	ConditionalCFunction    ParametricCurveFunction = 2 // Y = (aX+b)^g + c for X >= -b/a, else c
	SplitFunction           ParametricCurveFunction = 3 // Y = (aX+b)^g for X >= d, else cX
	ComplexFunction         ParametricCurveFunction = 4 // Y = eX+f for X <= d, else (aX+b)^g + c
)

// NumParams is the length of the parameter vector for the function, or zero
// for an unknown function.
func (f ParametricCurveFunction) NumParams() int {
	switch f {
	case SimpleGammaFunction:
		return 1
	case ConditionalZeroFunction:
		return 3
	case ConditionalCFunction:
		return 4
	case SplitFunction:
		return 5
	case ComplexFunction:
		return 7
	}
	return 0
}

func (f ParametricCurveFunction) String() string {
	switch f {
	case SimpleGammaFunction:
		return "SimpleGamma"
	case ConditionalZeroFunction:
		return "ConditionalZero"
	case ConditionalCFunction:
		return "ConditionalC"
	case SplitFunction:
		return "Split"
	case ComplexFunction:
		return "Complex"
	}
	return fmt.Sprintf("ParametricCurveFunction(%d)", uint16(f))
}

// ParametricCurve is a tone response curve mapping encoded device values to
// linear light on the domain [0, 1]. Each function class is its own type so
// a curve always carries exactly the parameters its class needs.
type ParametricCurve interface {
	Function() ParametricCurveFunction
	// Params returns the parameter vector in the order g, a, b, c, d, e, f
	// truncated to the length for the class.
	Params() []float64
	// Evaluate clamps x to [0, 1] and returns the curve value there.
	Evaluate(x float64) float64
	Validate() error
	String() string
}

type GammaCurve struct{ G float64 }
type ConditionalZeroCurve struct{ G, A, B float64 }
type ConditionalCCurve struct{ G, A, B, C float64 }
type SplitCurve struct{ G, A, B, C, D float64 }

// ComplexCurve is linear below the breakpoint D and a offset power function
// above it:
//
//	Y = E*X + F            for X <= D
//	Y = (A*X + B)^G + C    for X > D
//
// ICC parametric curve type 4 names the linear slope c and the power offset
// e, the reverse of the fields here. The para encoder swaps them so the
// stored curve is the same function.
type ComplexCurve struct{ G, A, B, C, D, E, F float64 }

var _ ParametricCurve = GammaCurve{}
var _ ParametricCurve = ConditionalZeroCurve{}
var _ ParametricCurve = ConditionalCCurve{}
var _ ParametricCurve = SplitCurve{}
var _ ParametricCurve = ComplexCurve{}

// NewParametricCurve creates the curve for function class f from an untyped
// parameter vector ordered g, a, b, c, d, e, f.
func NewParametricCurve(f ParametricCurveFunction, params ...float64) (ParametricCurve, error) {
	n := f.NumParams()
	if n == 0 {
		return nil, fmt.Errorf("%w: unsupported parametric function type: %d", ErrEncoding, f)
	}
	if len(params) != n {
		return nil, fmt.Errorf("%w: parametric function %d needs %d parameters, got %d", ErrCurve, f, n, len(params))
	}
	p := params
	switch f {
	case SimpleGammaFunction:
		return GammaCurve{G: p[0]}, nil
	case ConditionalZeroFunction:
		return ConditionalZeroCurve{G: p[0], A: p[1], B: p[2]}, nil
	case ConditionalCFunction:
		return ConditionalCCurve{G: p[0], A: p[1], B: p[2], C: p[3]}, nil
	case SplitFunction:
		return SplitCurve{G: p[0], A: p[1], B: p[2], C: p[3], D: p[4]}, nil
	default:
		return ComplexCurve{G: p[0], A: p[1], B: p[2], C: p[3], D: p[4], E: p[5], F: p[6]}, nil
	}
}

// power_segment returns (ax+b)^g + offset, or offset where the base is not
// positive.
func power_segment(g, a, b, offset, x float64) float64 {
	if e := a*x + b; e > 0 {
		return math.Pow(e, g) + offset
	}
	return offset
}

func (c GammaCurve) Function() ParametricCurveFunction { return SimpleGammaFunction }
func (c GammaCurve) Params() []float64                 { return []float64{c.G} }
func (c GammaCurve) String() string                    { return fmt.Sprintf("GammaCurve{%v}", c.G) }

func (c GammaCurve) Evaluate(x float64) float64 {
	return math.Pow(clamp01(x), c.G)
}

func (c GammaCurve) Validate() error {
	return check_curve(c)
}

func (c ConditionalZeroCurve) Function() ParametricCurveFunction { return ConditionalZeroFunction }
func (c ConditionalZeroCurve) Params() []float64                 { return []float64{c.G, c.A, c.B} }
func (c ConditionalZeroCurve) String() string {
	return fmt.Sprintf("ConditionalZeroCurve{g: %v a: %v b: %v}", c.G, c.A, c.B)
}

func (c ConditionalZeroCurve) Evaluate(x float64) float64 {
	// Y = (aX+b)^g if X ≥ -b/a else 0
	if x = clamp01(x); x >= -c.B/c.A {
		return power_segment(c.G, c.A, c.B, 0, x)
	}
	return 0
}

func (c ConditionalZeroCurve) Validate() error {
	if c.A == 0 {
		return fmt.Errorf("%w: %s: a must be non-zero", ErrCurve, c)
	}
	return check_curve(c, -c.B/c.A)
}

func (c ConditionalCCurve) Function() ParametricCurveFunction { return ConditionalCFunction }
func (c ConditionalCCurve) Params() []float64                 { return []float64{c.G, c.A, c.B, c.C} }
func (c ConditionalCCurve) String() string {
	return fmt.Sprintf("ConditionalCCurve{g: %v a: %v b: %v c: %v}", c.G, c.A, c.B, c.C)
}

func (c ConditionalCCurve) Evaluate(x float64) float64 {
	// Y = (aX+b)^g + c if X ≥ -b/a else c
	if x = clamp01(x); x >= -c.B/c.A {
		return power_segment(c.G, c.A, c.B, c.C, x)
	}
	return c.C
}

func (c ConditionalCCurve) Validate() error {
	if c.A == 0 {
		return fmt.Errorf("%w: %s: a must be non-zero", ErrCurve, c)
	}
	return check_curve(c, -c.B/c.A)
}

func (c SplitCurve) Function() ParametricCurveFunction { return SplitFunction }
func (c SplitCurve) Params() []float64                 { return []float64{c.G, c.A, c.B, c.C, c.D} }
func (c SplitCurve) String() string {
	return fmt.Sprintf("SplitCurve{g: %v a: %v b: %v c: %v d: %v}", c.G, c.A, c.B, c.C, c.D)
}

func (c SplitCurve) Evaluate(x float64) float64 {
	// Y = (aX+b)^g if X ≥ d else cX
	if x = clamp01(x); x >= c.D {
		return power_segment(c.G, c.A, c.B, 0, x)
	}
	return c.C * x
}

func (c SplitCurve) Validate() error {
	if err := check_params(c); err != nil {
		return err
	}
	if err := check_continuity(c, c.D, c.C*c.D, power_segment(c.G, c.A, c.B, 0, c.D)); err != nil {
		return err
	}
	return check_monotonic(c, c.D)
}

func (c ComplexCurve) Function() ParametricCurveFunction { return ComplexFunction }
func (c ComplexCurve) Params() []float64 {
	return []float64{c.G, c.A, c.B, c.C, c.D, c.E, c.F}
}
func (c ComplexCurve) String() string {
	return fmt.Sprintf("ComplexCurve{g: %v a: %v b: %v c: %v d: %v e: %v f: %v}", c.G, c.A, c.B, c.C, c.D, c.E, c.F)
}

func (c ComplexCurve) Evaluate(x float64) float64 {
	// Y = eX+f if X ≤ d else (aX+b)^g + c
	if x = clamp01(x); x <= c.D {
		return c.E*x + c.F
	}
	return power_segment(c.G, c.A, c.B, c.C, x)
}

func (c ComplexCurve) Validate() error {
	if err := check_params(c); err != nil {
		return err
	}
	if err := check_continuity(c, c.D, c.E*c.D+c.F, power_segment(c.G, c.A, c.B, c.C, c.D)); err != nil {
		return err
	}
	return check_monotonic(c, c.D)
}

func check_continuity(c ParametricCurve, d, below, above float64) error {
	if d <= 0 || d >= 1 || !is_finite(below) || !is_finite(above) {
		return nil
	}
	if diff := math.Abs(below - above); diff > CURVE_CONTINUITY_TOLERANCE {
		return fmt.Errorf("%w: %s is discontinuous at d=%v: %v != %v", ErrCurve, c, d, below, above)
	}
	return nil
}

// check_curve verifies the parameters are finite, g is positive and the curve
// is monotonically non-decreasing on [0, 1].
func check_curve(c ParametricCurve, breakpoints ...float64) error {
	if err := check_params(c); err != nil {
		return err
	}
	return check_monotonic(c, breakpoints...)
}

func check_params(c ParametricCurve) error {
	params := c.Params()
	for i, p := range params {
		if !is_finite(p) {
			return fmt.Errorf("%w: %s: parameter %d is not finite", ErrCurve, c, i)
		}
	}
	if g := params[0]; !(g > 0) {
		return fmt.Errorf("%w: %s: g must be > 0, got %v", ErrCurve, c, g)
	}
	return nil
}

// check_monotonic samples evenly spaced points plus any breakpoints inside
// the domain.
func check_monotonic(c ParametricCurve, breakpoints ...float64) error {
	xs := make([]float64, 0, CURVE_SAMPLES+1+len(breakpoints))
	for i := range CURVE_SAMPLES + 1 {
		xs = append(xs, float64(i)/CURVE_SAMPLES)
	}
	for _, b := range breakpoints {
		if b > 0 && b < 1 {
			xs = append(xs, b)
		}
	}
	slices.Sort(xs)
	prev := math.Inf(-1)
	for _, x := range xs {
		y := c.Evaluate(x)
		if !is_finite(y) {
			return fmt.Errorf("%w: %s is not finite at x=%v", ErrCurve, c, x)
		}
		if y < prev-curve_monotonic_tolerance {
			return fmt.Errorf("%w: %s is not monotonic, decreases to %v at x=%v", ErrCurve, c, y, x)
		}
		prev = max(prev, y)
	}
	return nil
}

// ParametricCurveType is the 'para' tag type.
type ParametricCurveType struct {
	Curve ParametricCurve
}

// wire_params returns the parameters in the order parametricCurveType
// stores them.
func wire_params(c ParametricCurve) []float64 {
	switch c := c.(type) {
	case ComplexCurve:
		return []float64{c.G, c.A, c.B, c.E, c.D, c.C, c.F}
	case *ComplexCurve:
		return []float64{c.G, c.A, c.B, c.E, c.D, c.C, c.F}
	}
	return c.Params()
}

func (t ParametricCurveType) TypeSignature() Signature { return ParametricCurveTypeSignature }

func (t ParametricCurveType) Encode() ([]byte, error) {
	f := t.Curve.Function()
	params := wire_params(t.Curve)
	if n := f.NumParams(); n == 0 {
		return nil, fmt.Errorf("%w: unsupported parametric function type: %d", ErrEncoding, f)
	} else if len(params) != n {
		return nil, fmt.Errorf("%w: parametric function %d needs %d parameters, got %d", ErrEncoding, f, n, len(params))
	}
	w := new_tag_writer(ParametricCurveTypeSignature, 12+4*len(params))
	w.u16(uint16(f))
	w.reserved(2)
	for _, p := range params {
		w.s15f16(p)
	}
	return w.result()
}

// CurveType is the 'curv' tag type used by version 2 profiles, which have no
// parametric curves. A gamma curve is stored exactly, anything else is
// tabulated.
type CurveType struct {
	Curve ParametricCurve
	// Number of table entries, CURVE_SAMPLES when zero
	Points int
}

func (t CurveType) TypeSignature() Signature { return CurveTypeSignature }

func (t CurveType) Encode() ([]byte, error) {
	if g, ok := t.Curve.(GammaCurve); ok {
		w := new_tag_writer(CurveTypeSignature, 16)
		w.u32(1)
		w.u8f8(g.G)
		return w.result()
	}
	n := t.Points
	if n == 0 {
		n = CURVE_SAMPLES
	}
	if n < 2 || n > math.MaxUint16 {
		return nil, fmt.Errorf("%w: curve table cannot have %d entries", ErrEncoding, n)
	}
	table, err := sample_curve(t.Curve, n)
	if err != nil {
		return nil, err
	}
	w := new_tag_writer(CurveTypeSignature, 12+2*n)
	w.u32(uint32(n))
	for _, y := range table {
		w.u16(uint16(round_half_up(clamp01(y) * math.MaxUint16)))
	}
	return w.result()
}

// sample_curve evaluates c at n evenly spaced points of [0, 1], filling the
// table in parallel.
func sample_curve(c ParametricCurve, n int) ([]float64, error) {
	ans := make([]float64, n)
	scale := float64(n - 1)
	err := parallel.Run_in_parallel_over_range_with_error(0, func(start, limit int) error {
		for i := start; i < limit; i++ {
			if ans[i] = c.Evaluate(float64(i) / scale); !is_finite(ans[i]) {
				return fmt.Errorf("%w: %s is not finite at sample %d", ErrEncoding, c, i)
			}
		}
		return nil
	}, 0, n)
	if err != nil {
		return nil, err
	}
	return ans, nil
}
