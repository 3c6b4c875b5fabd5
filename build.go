package iccgen

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kovidgoyal/go-parallel"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/miruzo/iccgen/colorconv"
	"github.com/miruzo/iccgen/prism/icc"
)

var (
	ErrColorimetry = colorconv.ErrColorimetry
	ErrCurve       = icc.ErrCurve
	ErrEncoding    = icc.ErrEncoding
	ErrConfig      = errors.New("configuration error")
)

// Maximum relative error allowed between the adapted white and D50
const WHITE_TOLERANCE = 1e-4

// Inputs are everything needed to build one profile.
type Inputs struct {
	WhitePoint colorconv.WhitePoint
	Primaries  colorconv.Primaries
	// One curve for all channels or one each for red, green and blue
	Curves []icc.ParametricCurve

	Description string
	Copyright   string
	Language    language.Tag
	Version     icc.Version
	Created     time.Time
	Intent      icc.RenderingIntent

	Class        icc.Signature
	Manufacturer icc.Signature
	Model        icc.Signature
	Creator      icc.Signature
	Platform     icc.Signature

	// Only written to version 4.4 and later profiles
	CICP *icc.CodingIndependentCodePoints
}

func (in Inputs) descriptor() icc.Descriptor {
	return icc.Descriptor{
		Class:        in.Class,
		Version:      in.Version,
		Intent:       in.Intent,
		Created:      in.Created,
		Platform:     in.Platform,
		Manufacturer: in.Manufacturer,
		Model:        in.Model,
		Creator:      in.Creator,
		Description:  in.Description,
		Copyright:    in.Copyright,
		Language:     in.Language,
	}
}

// check_white verifies the adapted matrix maps device white to D50.
func check_white(m colorconv.Mat3) error {
	w := m.MulVec(colorconv.Vec3{1, 1, 1})
	for i, v := range w {
		if d := math.Abs(v-colorconv.D50[i]) / colorconv.D50[i]; !(d <= WHITE_TOLERANCE) {
			return fmt.Errorf("%w: adapted white %s is not D50", ErrColorimetry, w)
		}
	}
	return nil
}

// Build runs the pipeline up to the in-memory profile.
func Build(in Inputs) (*icc.Profile, error) {
	m, err := colorconv.DeriveMatrix(in.Primaries, in.WhitePoint)
	if err != nil {
		return nil, err
	}
	white := in.WhitePoint.XYZ()
	adapted, err := colorconv.Adapt(m, white, colorconv.D50)
	if err != nil {
		return nil, err
	}
	if err = check_white(adapted); err != nil {
		return nil, err
	}
	s := icc.MatrixShaper{Colorants: adapted, Curves: in.Curves, Primaries: &in.Primaries, CICP: in.CICP}
	d := in.descriptor()
	if d.Version.IsZero() {
		d.Version = icc.DefaultVersion
	}
	if d.Version.Before(icc.Version{Major: 4}) {
		// version 2 readers expect the device white here
		s.MediaWhite = white
	} else {
		chad, err := colorconv.AdaptationMatrix(white, colorconv.D50)
		if err != nil {
			return nil, err
		}
		s.MediaWhite, s.ChromaticAdaptation = colorconv.D50, &chad
	}
	p, err := icc.Build(d, s)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"description": in.Description,
		"version":     p.Header.Version,
		"tags":        p.TagTable.Len(),
		"shared":      p.TagTable.SharedCount(),
		"size":        p.Size(),
	}).Debug("built profile")
	return p, nil
}

// BuildAndSerialize builds the profile described by in and returns its
// bytes. Either the complete profile or an error is returned.
func BuildAndSerialize(in Inputs) ([]byte, error) {
	p, err := Build(in)
	if err != nil {
		return nil, err
	}
	return icc.Serialize(p)
}

// BuildAll builds independent profiles in parallel. The results are in the
// order of ins. When any build fails, the error of the first failing input
// is returned and no profiles.
func BuildAll(ins []Inputs) ([][]byte, error) {
	if len(ins) == 0 {
		return nil, nil
	}
	ans := make([][]byte, len(ins))
	errs := make([]error, len(ins))
	if err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			ans[i], errs[i] = BuildAndSerialize(ins[i])
		}
	}, 0, len(ins)); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("profile %d (%q): %w", i+1, ins[i].Description, err)
		}
	}
	return ans, nil
}
