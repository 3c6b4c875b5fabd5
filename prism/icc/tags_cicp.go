package icc

import (
	"fmt"
)

// CodingIndependentCodePoints is the ITU-T H.273 description of the colour
// encoding, stored as the 'cicp' tag of version 4.4 and later profiles.
type CodingIndependentCodePoints struct {
	ColorPrimaries, TransferCharacteristics, MatrixCoefficients, VideoFullRange uint8
}

// Version in which the 'cicp' tag was introduced
var cicp_version = Version{4, 4, 0}

func (c CodingIndependentCodePoints) String() string {
	return fmt.Sprintf("CICP{%d/%d/%d/%d}", c.ColorPrimaries, c.TransferCharacteristics, c.MatrixCoefficients, c.VideoFullRange)
}

// Validate checks the constraints on code points describing RGB data.
func (c CodingIndependentCodePoints) Validate() error {
	if c.MatrixCoefficients != 0 {
		return fmt.Errorf("%w: %s: RGB data must use matrix coefficients 0", ErrEncoding, c)
	}
	if c.VideoFullRange > 1 {
		return fmt.Errorf("%w: %s: the full range flag must be 0 or 1", ErrEncoding, c)
	}
	return nil
}

func (c CodingIndependentCodePoints) TypeSignature() Signature { return CICPTypeSignature }

func (c CodingIndependentCodePoints) Encode() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w := new_tag_writer(CICPTypeSignature, 12)
	w.write([]byte{c.ColorPrimaries, c.TransferCharacteristics, c.MatrixCoefficients, c.VideoFullRange})
	return w.result()
}
