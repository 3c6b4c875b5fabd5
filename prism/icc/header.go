package icc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const HeaderSize = 128

// Version is the ICC specification version a profile conforms to. It is
// stored as major, minor and bugfix nibbles, so 4.3 is 0x04300000.
type Version struct {
	Major, Minor, Bugfix uint8
}

var DefaultVersion = Version{4, 3, 0}

// ParseVersion parses "major.minor" or "major.minor.bugfix".
func ParseVersion(s string) (ans Version, err error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return ans, fmt.Errorf("%w: invalid profile version %q", ErrEncoding, s)
	}
	var nums [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return ans, fmt.Errorf("%w: invalid profile version %q", ErrEncoding, s)
		}
		nums[i] = uint8(n)
	}
	ans = Version{nums[0], nums[1], nums[2]}
	return ans, ans.Validate()
}

func (v Version) IsZero() bool { return v == Version{} }

// Validate accepts the versions whose tag types this package can write.
func (v Version) Validate() error {
	if v.Major != 2 && v.Major != 4 {
		return fmt.Errorf("%w: unsupported profile version %s", ErrEncoding, v)
	}
	if v.Minor > 15 || v.Bugfix > 15 {
		return fmt.Errorf("%w: profile version %s does not fit in the version field", ErrEncoding, v)
	}
	return nil
}

func (v Version) Encode() uint32 {
	return uint32(v.Major)<<24 | uint32(v.Minor&0xf)<<20 | uint32(v.Bugfix&0xf)<<16
}

func (v Version) String() string {
	if v.Bugfix == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Bugfix)
}

func (v Version) Equal(o Version) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Bugfix == o.Bugfix
}

func (v Version) After(o Version) bool {
	switch {
	case v.Major == o.Major:
		switch {
		case v.Minor == o.Minor:
			return v.Bugfix > o.Bugfix
		case v.Minor > o.Minor:
			return true
		case v.Minor < o.Minor:
			return false
		}
	case v.Major > o.Major:
		return true
	case v.Major < o.Major:
		return false
	}
	return false
}

func (v Version) Before(o Version) bool {
	return !v.Equal(o) && !v.After(o)
}

type RenderingIntent uint32

const (
	PerceptualRenderingIntent           RenderingIntent = 0
	RelativeColorimetricRenderingIntent RenderingIntent = 1
	SaturationRenderingIntent           RenderingIntent = 2
	AbsoluteColorimetricRenderingIntent RenderingIntent = 3
)

func ParseRenderingIntent(s string) (RenderingIntent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perceptual":
		return PerceptualRenderingIntent, nil
	case "relative", "relative-colorimetric":
		return RelativeColorimetricRenderingIntent, nil
	case "saturation":
		return SaturationRenderingIntent, nil
	case "absolute", "absolute-colorimetric":
		return AbsoluteColorimetricRenderingIntent, nil
	}
	return 0, fmt.Errorf("%w: unknown rendering intent %q", ErrEncoding, s)
}

func (ri RenderingIntent) String() string {
	switch ri {
	case PerceptualRenderingIntent:
		return "Perceptual"
	case RelativeColorimetricRenderingIntent:
		return "Relative"
	case SaturationRenderingIntent:
		return "Saturation"
	case AbsoluteColorimetricRenderingIntent:
		return "Absolute"
	default:
		return fmt.Sprintf("Unknown (%d)", ri)
	}
}

type Header struct {
	ProfileSize            uint32
	PreferredCMM           Signature
	Version                Version
	DeviceClass            Signature
	DataColorSpace         Signature
	ProfileConnectionSpace Signature
	CreatedAt              time.Time
	PrimaryPlatform        Signature
	Flags                  uint32
	DeviceManufacturer     Signature
	DeviceModel            Signature
	DeviceAttributes       uint64
	RenderingIntent        RenderingIntent
	PCSIlluminant          XYZType
	ProfileCreator         Signature
	ProfileID              [16]byte
}

// Byte ranges zeroed when computing the profile ID
const (
	flagsOffset     = 44
	intentOffset    = 64
	profileIDOffset = 84
)

func encodeDateTime(w *tagWriter, t time.Time) {
	t = t.UTC()
	if t.Year() < 0 || t.Year() > math.MaxUint16 {
		w.err = fmt.Errorf("%w: creation year %d cannot be stored", ErrEncoding, t.Year())
		return
	}
	for _, v := range [6]int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()} {
		w.u16(uint16(v))
	}
}

// encode returns the 128 byte header.
func (h *Header) encode() ([]byte, error) {
	w := &tagWriter{buf: make([]byte, 0, HeaderSize)}
	w.u32(h.ProfileSize)
	w.sig(h.PreferredCMM)
	w.u32(h.Version.Encode())
	w.sig(h.DeviceClass)
	w.sig(h.DataColorSpace)
	w.sig(h.ProfileConnectionSpace)
	encodeDateTime(w, h.CreatedAt)
	w.sig(ProfileFileSignature)
	w.sig(h.PrimaryPlatform)
	w.u32(h.Flags)
	w.sig(h.DeviceManufacturer)
	w.sig(h.DeviceModel)
	w.u64(h.DeviceAttributes)
	w.u32(uint32(h.RenderingIntent))
	w.s15f16(h.PCSIlluminant.X)
	w.s15f16(h.PCSIlluminant.Y)
	w.s15f16(h.PCSIlluminant.Z)
	w.sig(h.ProfileCreator)
	w.write(h.ProfileID[:])
	w.reserved(HeaderSize - len(w.buf))
	return w.result()
}
