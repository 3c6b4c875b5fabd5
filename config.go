package iccgen

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/miruzo/iccgen/colorconv"
	"github.com/miruzo/iccgen/prism/icc"
)

type ChromaticityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (c ChromaticityConfig) chromaticity() colorconv.Chromaticity {
	return colorconv.Chromaticity{X: c.X, Y: c.Y}
}

type WhitePointConfig struct {
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Luminance *float64 `yaml:"luminance"` // 1 when unset
}

type PrimariesConfig struct {
	Red   ChromaticityConfig `yaml:"red"`
	Green ChromaticityConfig `yaml:"green"`
	Blue  ChromaticityConfig `yaml:"blue"`
}

type CICPConfig struct {
	Primaries uint8 `yaml:"primaries"`
	Transfer  uint8 `yaml:"transfer"`
	Matrix    uint8 `yaml:"matrix"`
	FullRange *bool `yaml:"full_range"` // true when unset
}

type CurveConfig struct {
	Class  icc.ParametricCurveFunction `yaml:"class"`
	Params []float64                   `yaml:"params"`
}

// Config is the YAML description of one profile. Fields left out keep the
// values of Preset, when one is named.
type Config struct {
	Preset      string     `yaml:"preset"`
	Description string     `yaml:"description"`
	Copyright   string     `yaml:"copyright"`
	Language    string     `yaml:"language"`
	Version     string     `yaml:"version"`
	Created     *time.Time `yaml:"created"`
	Intent      string     `yaml:"intent"`

	Class        string `yaml:"class"`
	Manufacturer string `yaml:"manufacturer"`
	Model        string `yaml:"model"`
	Creator      string `yaml:"creator"`
	Platform     string `yaml:"platform"`

	WhitePoint *WhitePointConfig `yaml:"white_point"`
	Primaries  *PrimariesConfig  `yaml:"primaries"`
	Curve      *CurveConfig      `yaml:"curve"`
	Curves     []CurveConfig     `yaml:"curves"`
	CICP       *CICPConfig       `yaml:"cicp"`
}

// LoadConfig reads a YAML config. Unknown keys are an error.
func LoadConfig(r io.Reader) (ans Config, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err = dec.Decode(&ans); err != nil {
		if errors.Is(err, io.EOF) {
			return ans, fmt.Errorf("%w: the config is empty", ErrConfig)
		}
		return ans, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	return ans, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	c, err := LoadConfig(f)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func signature_field(name, val string, dest *icc.Signature) error {
	if val == "" {
		return nil
	}
	s, err := icc.SignatureFromString(val)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrConfig, name, err)
	}
	*dest = s
	return nil
}

// Inputs resolves the config into profile inputs. now is used as the
// creation time when the config does not set one.
func (c Config) Inputs(now time.Time) (ans Inputs, err error) {
	if c.Preset != "" {
		if ans, err = Preset(c.Preset); err != nil {
			return
		}
	}
	if c.Description != "" {
		ans.Description = c.Description
	}
	if c.Copyright != "" {
		ans.Copyright = c.Copyright
	}
	if c.Language != "" {
		if ans.Language, err = language.Parse(c.Language); err != nil {
			return ans, fmt.Errorf("%w: language: %s", ErrConfig, err)
		}
	}
	if c.Version != "" {
		if ans.Version, err = icc.ParseVersion(c.Version); err != nil {
			return ans, fmt.Errorf("%w: version: %s", ErrConfig, err)
		}
	}
	if c.Intent != "" {
		if ans.Intent, err = icc.ParseRenderingIntent(c.Intent); err != nil {
			return ans, fmt.Errorf("%w: intent: %s", ErrConfig, err)
		}
	}
	ans.Created = now.UTC()
	if c.Created != nil {
		ans.Created = c.Created.UTC()
	}
	for _, x := range []struct {
		name, val string
		dest      *icc.Signature
	}{
		{"class", c.Class, &ans.Class},
		{"manufacturer", c.Manufacturer, &ans.Manufacturer},
		{"model", c.Model, &ans.Model},
		{"creator", c.Creator, &ans.Creator},
		{"platform", c.Platform, &ans.Platform},
	} {
		if err = signature_field(x.name, x.val, x.dest); err != nil {
			return
		}
	}

	if w := c.WhitePoint; w != nil {
		ans.WhitePoint = colorconv.WhitePoint{Chromaticity: colorconv.Chromaticity{X: w.X, Y: w.Y}, Luminance: 1}
		if w.Luminance != nil {
			ans.WhitePoint.Luminance = *w.Luminance
		}
	}
	if p := c.Primaries; p != nil {
		ans.Primaries = colorconv.Primaries{Red: p.Red.chromaticity(), Green: p.Green.chromaticity(), Blue: p.Blue.chromaticity()}
	}
	curves := c.Curves
	if c.Curve != nil {
		if len(curves) > 0 {
			return ans, fmt.Errorf("%w: set either curve or curves, not both", ErrConfig)
		}
		curves = []CurveConfig{*c.Curve}
	}
	if len(curves) > 0 {
		ans.Curves = make([]icc.ParametricCurve, 0, len(curves))
		for _, cc := range curves {
			curve, err := icc.NewParametricCurve(cc.Class, cc.Params...)
			if err != nil {
				return ans, err
			}
			ans.Curves = append(ans.Curves, curve)
		}
	}
	if cp := c.CICP; cp != nil {
		ans.CICP = &icc.CodingIndependentCodePoints{ColorPrimaries: cp.Primaries, TransferCharacteristics: cp.Transfer, MatrixCoefficients: cp.Matrix, VideoFullRange: 1}
		if cp.FullRange != nil && !*cp.FullRange {
			ans.CICP.VideoFullRange = 0
		}
		if err = ans.CICP.Validate(); err != nil {
			return ans, fmt.Errorf("%w: cicp: %s", ErrConfig, err)
		}
	}

	switch {
	case ans.WhitePoint == (colorconv.WhitePoint{}):
		err = fmt.Errorf("%w: no white_point, set it or use a preset", ErrConfig)
	case ans.Primaries == (colorconv.Primaries{}):
		err = fmt.Errorf("%w: no primaries, set them or use a preset", ErrConfig)
	case len(ans.Curves) == 0:
		err = fmt.Errorf("%w: no tone curve, set curve or use a preset", ErrConfig)
	}
	return
}
