package icc

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Just enough of a profile reader to check what the writer produced

func readS15Fixed16BE(b []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(b))) / 65536
}

func readU16Fixed16BE(b []byte) float64 {
	return float64(binary.BigEndian.Uint32(b)) / 65536
}

func readSignature(b []byte) Signature { return Signature(binary.BigEndian.Uint32(b)) }

type decodedProfile struct {
	Size       uint32
	CMM        Signature
	Version    [4]byte
	Class      Signature
	ColorSpace Signature
	PCS        Signature
	Created    time.Time
	Magic      Signature
	Platform   Signature
	Intent     uint32
	Illuminant XYZType
	Creator    Signature
	ID         [16]byte
	Tags       []Tag
	raw        []byte
}

func decode_profile(t *testing.T, data []byte) *decodedProfile {
	t.Helper()
	require.GreaterOrEqual(t, len(data), HeaderSize+4)
	be := binary.BigEndian
	u16 := func(off int) int { return int(be.Uint16(data[off:])) }
	p := &decodedProfile{
		Size:       be.Uint32(data[0:]),
		CMM:        readSignature(data[4:]),
		Class:      readSignature(data[12:]),
		ColorSpace: readSignature(data[16:]),
		PCS:        readSignature(data[20:]),
		Created:    time.Date(u16(24), time.Month(u16(26)), u16(28), u16(30), u16(32), u16(34), 0, time.UTC),
		Magic:      readSignature(data[36:]),
		Platform:   readSignature(data[40:]),
		Intent:     be.Uint32(data[64:]),
		Illuminant: XYZType{readS15Fixed16BE(data[68:]), readS15Fixed16BE(data[72:]), readS15Fixed16BE(data[76:])},
		Creator:    readSignature(data[80:]),
		raw:        data,
	}
	copy(p.Version[:], data[8:12])
	copy(p.ID[:], data[84:100])
	require.Equal(t, len(data), int(p.Size), "header size field does not match the data length")
	count := int(be.Uint32(data[HeaderSize:]))
	require.LessOrEqual(t, HeaderSize+4+count*tagEntrySize, len(data))
	for i := range count {
		e := data[HeaderSize+4+i*tagEntrySize:]
		tag := Tag{Signature: readSignature(e), Offset: be.Uint32(e[4:]), Size: be.Uint32(e[8:])}
		require.LessOrEqual(t, int(tag.Offset+tag.Size), len(data), "tag %v is out of bounds", tag.Signature)
		p.Tags = append(p.Tags, tag)
	}
	return p
}

func (p *decodedProfile) tag(t *testing.T, sig Signature) []byte {
	t.Helper()
	for _, tag := range p.Tags {
		if tag.Signature == sig {
			return p.raw[tag.Offset : tag.Offset+tag.Size]
		}
	}
	require.Failf(t, "missing tag", "no %v tag in the profile", sig)
	return nil
}

func (p *decodedProfile) xyz(t *testing.T, sig Signature) XYZType {
	t.Helper()
	b := p.tag(t, sig)
	require.Len(t, b, 20)
	require.Equal(t, XYZTypeSignature, readSignature(b))
	return XYZType{readS15Fixed16BE(b[8:]), readS15Fixed16BE(b[12:]), readS15Fixed16BE(b[16:])}
}
