package icc

import (
	"github.com/miruzo/iccgen/colorconv"
)

// S15Fixed16ArrayType is the 'sf32' tag type.
type S15Fixed16ArrayType []float64

// ChromaticAdaptationTag stores the matrix row by row as the 'chad' tag
// requires.
func ChromaticAdaptationTag(m colorconv.Mat3) S15Fixed16ArrayType {
	ans := make(S15Fixed16ArrayType, 0, 9)
	for _, row := range m {
		ans = append(ans, row[:]...)
	}
	return ans
}

func (a S15Fixed16ArrayType) TypeSignature() Signature { return S15Fixed16ArrayTypeSignature }

func (a S15Fixed16ArrayType) Encode() ([]byte, error) {
	w := new_tag_writer(S15Fixed16ArrayTypeSignature, 8+4*len(a))
	for _, v := range a {
		w.s15f16(v)
	}
	return w.result()
}
