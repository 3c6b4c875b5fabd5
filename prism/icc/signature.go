package icc

import (
	"fmt"
)

type Signature uint32

const (
	UnknownSignature     Signature = 0
	ProfileFileSignature Signature = 0x61637370 // 'acsp'

	// tag types
	XYZTypeSignature               Signature = 0x58595A20 // 'XYZ '
	CurveTypeSignature             Signature = 0x63757276 // 'curv'
	ParametricCurveTypeSignature   Signature = 0x70617261 // 'para'
	S15Fixed16ArrayTypeSignature   Signature = 0x73663332 // 'sf32'
	ChromaticityTypeSignature      Signature = 0x6368726D // 'chrm'
	TextTagSignature               Signature = 0x74657874 // 'text'
	DescSignature                  Signature = 0x64657363 // 'desc'
	MultiLocalisedUnicodeSignature Signature = 0x6D6C7563 // 'mluc'
	CICPTypeSignature              Signature = 0x63696370 // 'cicp'

	// tags
	CopyrightTagSignature           Signature = 0x63707274 // 'cprt'
	MediaWhitePointTagSignature     Signature = 0x77747074 // 'wtpt'
	ChromaticAdaptationTagSignature Signature = 0x63686164 // 'chad'
	ChromaticityTagSignature        Signature = 0x6368726D // 'chrm'
	RedColorantTagSignature         Signature = 0x7258595A // 'rXYZ'
	GreenColorantTagSignature       Signature = 0x6758595A // 'gXYZ'
	BlueColorantTagSignature        Signature = 0x6258595A // 'bXYZ'
	RedTRCTagSignature              Signature = 0x72545243 // 'rTRC'
	GreenTRCTagSignature            Signature = 0x67545243 // 'gTRC'
	BlueTRCTagSignature             Signature = 0x62545243 // 'bTRC'
	CICPTagSignature                Signature = 0x63696370 // 'cicp'

	// device classes
	InputDeviceClassSignature   Signature = 0x73636E72 // 'scnr'
	DisplayDeviceClassSignature Signature = 0x6D6E7472 // 'mntr'
	ColorSpaceClassSignature    Signature = 0x73706163 // 'spac'

	// colour spaces
	RGBSignature Signature = 0x52474220 // 'RGB '
	XYZSignature Signature = 0x58595A20 // 'XYZ '
	LabSignature Signature = 0x4C616220 // 'Lab '

	// platforms
	ApplePlatformSignature     Signature = 0x4150504C // 'APPL'
	MicrosoftPlatformSignature Signature = 0x4D534654 // 'MSFT'
	SGIPlatformSignature       Signature = 0x53474920 // 'SGI '
	SunPlatformSignature       Signature = 0x53554E57 // 'SUNW'

	AdobeManufacturerSignature Signature = 0x41444245 // 'ADBE'
	AppleManufacturerSignature Signature = 0x4150504C // 'APPL'
	IECManufacturerSignature   Signature = 0x49454320 // 'IEC '

	AdobeRGBModelSignature  Signature = 0x52474220 // 'RGB '
	SRGBModelSignature      Signature = 0x73524742 // 'sRGB'
	PhotoProModelSignature  Signature = 0x50525452 // 'PTPR'
	DisplayP3ModelSignature Signature = 0x70332020 // 'p3  '
)

// SignatureFromString converts up to four printable ASCII characters into a
// Signature, padding with spaces. The empty string is UnknownSignature.
func SignatureFromString(s string) (Signature, error) {
	if s == "" {
		return UnknownSignature, nil
	}
	if len(s) > 4 {
		return UnknownSignature, fmt.Errorf("%w: signature %q is longer than four characters", ErrEncoding, s)
	}
	var ans Signature
	for i := range 4 {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		if c < 0x20 || c > 0x7e {
			return UnknownSignature, fmt.Errorf("%w: signature %q contains non printable characters", ErrEncoding, s)
		}
		ans = ans<<8 | Signature(c)
	}
	return ans, nil
}

func maskNull(b byte) byte {
	switch b {
	case 0:
		return ' '
	default:
		return b
	}
}

func (s Signature) String() string {
	v := []byte{
		(maskNull(byte((s >> 24) & 0xff))),
		(maskNull(byte((s >> 16) & 0xff))),
		(maskNull(byte((s >> 8) & 0xff))),
		(maskNull(byte(s & 0xff))),
	}
	return "'" + string(v) + "'"
}
