package iccgen

import (
	"fmt"
	"maps"
	"slices"

	"github.com/miruzo/iccgen/colorconv"
	"github.com/miruzo/iccgen/prism/icc"
	"github.com/miruzo/iccgen/prism/srgb"
)

func xy(x, y float64) colorconv.Chromaticity { return colorconv.Chromaticity{X: x, Y: y} }

// BT.2020 OETF constants
const (
	bt2020_alpha = 1.09929682680944
	bt2020_beta  = 0.018053968510807
)

var presets = map[string]func() Inputs{
	"srgb": func() Inputs {
		return Inputs{
			WhitePoint:   srgb.White,
			Primaries:    srgb.Primaries,
			Curves:       []icc.ParametricCurve{srgb.Curve},
			Description:  "sRGB IEC61966-2.1",
			Manufacturer: icc.IECManufacturerSignature,
			Model:        icc.SRGBModelSignature,
			CICP:         &icc.CodingIndependentCodePoints{ColorPrimaries: 1, TransferCharacteristics: 13, VideoFullRange: 1},
		}
	},
	"display-p3": func() Inputs {
		return Inputs{
			WhitePoint:   colorconv.D65White,
			Primaries:    colorconv.Primaries{Red: xy(0.680, 0.320), Green: xy(0.265, 0.690), Blue: xy(0.150, 0.060)},
			Curves:       []icc.ParametricCurve{srgb.Curve},
			Description:  "Display P3 (DCI-P3 + D65 + sRGB TRC)",
			Manufacturer: icc.AppleManufacturerSignature,
			Model:        icc.DisplayP3ModelSignature,
			CICP:         &icc.CodingIndependentCodePoints{ColorPrimaries: 12, TransferCharacteristics: 13, VideoFullRange: 1},
		}
	},
	"adobe-rgb": func() Inputs {
		return Inputs{
			WhitePoint:   colorconv.D65White,
			Primaries:    colorconv.Primaries{Red: xy(0.64, 0.33), Green: xy(0.21, 0.71), Blue: xy(0.15, 0.06)},
			Curves:       []icc.ParametricCurve{icc.GammaCurve{G: 563.0 / 256}},
			Description:  "Adobe RGB (1998) compatible",
			Manufacturer: icc.AdobeManufacturerSignature,
			Model:        icc.AdobeRGBModelSignature,
		}
	},
	"rec2020": func() Inputs {
		return Inputs{
			WhitePoint: colorconv.D65White,
			Primaries:  colorconv.Primaries{Red: xy(0.708, 0.292), Green: xy(0.170, 0.797), Blue: xy(0.131, 0.046)},
			Curves: []icc.ParametricCurve{icc.ComplexCurve{
				G: 1 / 0.45,
				A: 1 / bt2020_alpha,
				B: (bt2020_alpha - 1) / bt2020_alpha,
				C: 0,
				D: 4.5 * bt2020_beta,
				E: 1 / 4.5,
				F: 0,
			}},
			Description: "Rec. ITU-R BT.2020",
			CICP:        &icc.CodingIndependentCodePoints{ColorPrimaries: 9, TransferCharacteristics: 14, VideoFullRange: 1},
		}
	},
	"prophoto": func() Inputs {
		return Inputs{
			WhitePoint:  colorconv.D50White,
			Primaries:   colorconv.Primaries{Red: xy(0.7347, 0.2653), Green: xy(0.1596, 0.8404), Blue: xy(0.0366, 0.0001)},
			Curves:      []icc.ParametricCurve{icc.SplitCurve{G: 1.8, A: 1, B: 0, C: 1.0 / 16, D: 1.0 / 32}},
			Description: "ProPhoto RGB (ROMM)",
			Model:       icc.PhotoProModelSignature,
		}
	},
}

// Preset returns the inputs of a well known RGB colour space. Created is
// left zero for the caller to fill in.
func Preset(name string) (Inputs, error) {
	f, ok := presets[name]
	if !ok {
		return Inputs{}, fmt.Errorf("%w: unknown preset %q, known presets: %v", ErrConfig, name, PresetNames())
	}
	return f(), nil
}

func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}
