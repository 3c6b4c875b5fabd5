package icc

import (
	"fmt"

	"github.com/miruzo/iccgen/colorconv"
)

// TagData is the typed content of a tag, able to encode itself in its
// registered tag type layout (without trailing padding).
type TagData interface {
	TypeSignature() Signature
	Encode() ([]byte, error)
}

var _ TagData = XYZType{}
var _ TagData = ParametricCurveType{}
var _ TagData = CurveType{}
var _ TagData = S15Fixed16ArrayType{}
var _ TagData = ChromaticityType{}
var _ TagData = (*MultiLocalisedUnicode)(nil)
var _ TagData = TextDescription{}
var _ TagData = TextType("")
var _ TagData = CodingIndependentCodePoints{}

type XYZType struct{ X, Y, Z float64 }

// PCS illuminant of every ICC profile
var D50 = XYZFromVec(colorconv.D50)

func XYZFromVec(v colorconv.Vec3) XYZType { return XYZType{v[0], v[1], v[2]} }

func (x XYZType) Vec() colorconv.Vec3 { return colorconv.Vec3{x.X, x.Y, x.Z} }

func (x XYZType) String() string { return fmt.Sprintf("XYZ{%.6f %.6f %.6f}", x.X, x.Y, x.Z) }

func (x XYZType) TypeSignature() Signature { return XYZTypeSignature }

func (x XYZType) Encode() ([]byte, error) {
	w := new_tag_writer(XYZTypeSignature, 20)
	w.s15f16(x.X)
	w.s15f16(x.Y)
	w.s15f16(x.Z)
	return w.result()
}
