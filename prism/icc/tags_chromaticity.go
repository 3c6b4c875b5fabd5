package icc

import (
	"github.com/miruzo/iccgen/colorconv"
)

type PhosphorColorant uint16

const (
	UnknownColorant     PhosphorColorant = 0
	ITUR709Colorant     PhosphorColorant = 1 // ITU-R BT.709-2
	SMPTERP145Colorant  PhosphorColorant = 2 // SMPTE RP145
	EBUTech3213Colorant PhosphorColorant = 3 // EBU Tech.3213-E
	P22Colorant         PhosphorColorant = 4 // P22
)

// ChromaticityType is the 'chrm' tag type, the chromaticities of the three
// device primaries.
type ChromaticityType struct {
	Colorant  PhosphorColorant
	Primaries colorconv.Primaries
}

func (c ChromaticityType) TypeSignature() Signature { return ChromaticityTypeSignature }

func (c ChromaticityType) Encode() ([]byte, error) {
	w := new_tag_writer(ChromaticityTypeSignature, 12+3*8)
	w.u16(3)
	w.u16(uint16(c.Colorant))
	for _, p := range [3]colorconv.Chromaticity{c.Primaries.Red, c.Primaries.Green, c.Primaries.Blue} {
		w.u16f16(p.X)
		w.u16f16(p.Y)
	}
	return w.result()
}
