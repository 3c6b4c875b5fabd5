package icc

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/miruzo/iccgen/colorconv"
)

const DefaultCopyright = "No copyright, use freely"

// Descriptor holds the header metadata and the text of a profile. Zero
// values are replaced by the defaults documented on each field.
type Descriptor struct {
	// DisplayDeviceClassSignature when unset. Input and colour space classes
	// are also valid for matrix/TRC profiles.
	Class   Signature
	Version Version // DefaultVersion when unset
	Intent  RenderingIntent
	Created time.Time

	CMM          Signature
	Platform     Signature
	Flags        uint32
	Manufacturer Signature
	Model        Signature
	Attributes   uint64
	Creator      Signature

	Description string
	Copyright   string       // DefaultCopyright when unset
	Language    language.Tag // language.AmericanEnglish when unset
}

func (d Descriptor) withDefaults() Descriptor {
	if d.Class == UnknownSignature {
		d.Class = DisplayDeviceClassSignature
	}
	if d.Version.IsZero() {
		d.Version = DefaultVersion
	}
	if d.Copyright == "" {
		d.Copyright = DefaultCopyright
	}
	if d.Language == language.Und {
		d.Language = language.AmericanEnglish
	}
	return d
}

func (d Descriptor) validate() error {
	switch d.Class {
	case DisplayDeviceClassSignature, InputDeviceClassSignature, ColorSpaceClassSignature:
	default:
		return fmt.Errorf("%w: device class %v cannot hold a matrix/TRC profile", ErrEncoding, d.Class)
	}
	if d.Intent > AbsoluteColorimetricRenderingIntent {
		return fmt.Errorf("%w: unknown rendering intent %d", ErrEncoding, d.Intent)
	}
	return d.Version.Validate()
}

// MatrixShaper is the colorimetric content of an RGB matrix/TRC profile.
type MatrixShaper struct {
	// RGB->XYZ matrix adapted to the PCS illuminant, its columns become the
	// colorant tags
	Colorants  colorconv.Mat3
	MediaWhite colorconv.Vec3
	// One curve shared by all channels, or one each for red, green and blue
	Curves []ParametricCurve
	// Written as 'chad' in version 4 profiles when set
	ChromaticAdaptation *colorconv.Mat3
	// Written as 'chrm' when set
	Primaries *colorconv.Primaries
	// Written as 'cicp' in version 4.4 and later profiles when set
	CICP *CodingIndependentCodePoints
}

type Profile struct {
	Header   Header
	TagTable TagTable
}

func (p *Profile) Size() uint32 { return p.Header.ProfileSize }
func (p *Profile) Tags() []Tag  { return p.TagTable.Tags() }

func (p *Profile) Data(sig Signature) ([]byte, bool) { return p.TagTable.Data(sig) }

func (p *Profile) String() string {
	return fmt.Sprintf("Profile{%v %v %d tags %d bytes}", p.Header.Version, p.Header.DeviceClass, p.TagTable.Len(), p.Size())
}

var trc_tags = [3]Signature{RedTRCTagSignature, GreenTRCTagSignature, BlueTRCTagSignature}
var colorant_tags = [3]Signature{RedColorantTagSignature, GreenColorantTagSignature, BlueColorantTagSignature}

func text_tags(d Descriptor) (desc, cprt TagData, err error) {
	if d.Version.Before(Version{4, 0, 0}) {
		return TextDescription{Text: d.Description, Language: d.Language}, TextType(d.Copyright), nil
	}
	m := NewMultiLocalisedUnicode()
	if err = m.SetString(d.Language, d.Description); err != nil {
		return
	}
	c := NewMultiLocalisedUnicode()
	if err = c.SetString(d.Language, d.Copyright); err != nil {
		return
	}
	return m, c, nil
}

func curve_tag(v Version, c ParametricCurve) TagData {
	if v.Before(Version{4, 0, 0}) {
		return CurveType{Curve: c}
	}
	return ParametricCurveType{Curve: c}
}

// Build assembles a matrix/TRC RGB profile. Version 4 profiles get
// multi-localized text and parametric curves, version 2 profiles get ASCII
// text and sampled curves.
func Build(d Descriptor, s MatrixShaper) (*Profile, error) {
	d = d.withDefaults()
	if err := d.validate(); err != nil {
		return nil, err
	}
	curves := s.Curves
	switch len(curves) {
	case 1:
		curves = []ParametricCurve{curves[0], curves[0], curves[0]}
	case 3:
	default:
		return nil, fmt.Errorf("%w: a profile needs one or three tone curves, got %d", ErrCurve, len(curves))
	}
	for i, c := range curves {
		if c == nil {
			return nil, fmt.Errorf("%w: missing tone curve for %v", ErrCurve, trc_tags[i])
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	desc, cprt, err := text_tags(d)
	if err != nil {
		return nil, err
	}
	type tag struct {
		sig  Signature
		data TagData
	}
	tags := []tag{
		{DescSignature, desc},
		{CopyrightTagSignature, cprt},
		{MediaWhitePointTagSignature, XYZFromVec(s.MediaWhite)},
	}
	for i, sig := range colorant_tags {
		tags = append(tags, tag{sig, XYZFromVec(s.Colorants.Column(i))})
	}
	for i, sig := range trc_tags {
		tags = append(tags, tag{sig, curve_tag(d.Version, curves[i])})
	}
	if s.ChromaticAdaptation != nil && !d.Version.Before(Version{4, 0, 0}) {
		tags = append(tags, tag{ChromaticAdaptationTagSignature, ChromaticAdaptationTag(*s.ChromaticAdaptation)})
	}
	if s.Primaries != nil {
		tags = append(tags, tag{ChromaticityTagSignature, ChromaticityType{Primaries: *s.Primaries}})
	}
	if s.CICP != nil && !d.Version.Before(cicp_version) {
		tags = append(tags, tag{CICPTagSignature, *s.CICP})
	}

	p := &Profile{}
	t := &p.TagTable
	for _, x := range tags {
		if err := t.add(x.sig, x.data); err != nil {
			return nil, err
		}
	}
	size, err := t.layout()
	if err != nil {
		return nil, err
	}
	p.Header = Header{
		ProfileSize:            size,
		PreferredCMM:           d.CMM,
		Version:                d.Version,
		DeviceClass:            d.Class,
		DataColorSpace:         RGBSignature,
		ProfileConnectionSpace: XYZSignature,
		CreatedAt:              d.Created.UTC(),
		PrimaryPlatform:        d.Platform,
		Flags:                  d.Flags,
		DeviceManufacturer:     d.Manufacturer,
		DeviceModel:            d.Model,
		DeviceAttributes:       d.Attributes,
		RenderingIntent:        d.Intent,
		PCSIlluminant:          D50,
		ProfileCreator:         d.Creator,
	}
	return p, nil
}
