package icc

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
)

// ComputeProfileID returns the MD5 digest of a serialized profile with the
// profile flags, rendering intent and profile ID fields treated as zero.
func ComputeProfileID(data []byte) (ans [16]byte) {
	if len(data) < HeaderSize {
		return
	}
	h := md5.New()
	var zeros [16]byte
	h.Write(data[:flagsOffset])
	h.Write(zeros[:4])
	h.Write(data[flagsOffset+4 : intentOffset])
	h.Write(zeros[:4])
	h.Write(data[intentOffset+4 : profileIDOffset])
	h.Write(zeros[:])
	h.Write(data[profileIDOffset+16:])
	copy(ans[:], h.Sum(nil))
	return
}

// Serialize encodes the profile: header, tag directory and tag data, each
// block zero padded to a 4-byte boundary. Version 4 profiles get their
// profile ID filled in.
func Serialize(p *Profile) ([]byte, error) {
	header, err := p.Header.encode()
	if err != nil {
		return nil, err
	}
	entries := p.TagTable.entries
	buf := make([]byte, 0, p.Size())
	buf = append(buf, header...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		buf = binary.BigEndian.AppendUint32(buf, uint32(e.Signature))
		buf = binary.BigEndian.AppendUint32(buf, e.Offset)
		buf = binary.BigEndian.AppendUint32(buf, e.Size)
	}
	for _, e := range entries {
		if e.shared {
			continue
		}
		if uint32(len(buf)) != e.Offset {
			return nil, fmt.Errorf("%w: tag %v is at %d but the directory says %d", ErrEncoding, e.Signature, len(buf), e.Offset)
		}
		buf = append(buf, e.data...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	if uint32(len(buf)) != p.Size() {
		return nil, fmt.Errorf("%w: serialized %d bytes but the header says %d", ErrEncoding, len(buf), p.Size())
	}
	if !p.Header.Version.Before(Version{4, 0, 0}) {
		id := ComputeProfileID(buf)
		copy(buf[profileIDOffset:], id[:])
	}
	return buf, nil
}

func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	data, err := Serialize(p)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
