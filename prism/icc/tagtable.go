package icc

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

const tagEntrySize = 12

// Tag is one entry of the tag directory. Tags whose data is identical share
// the same Offset and Size.
type Tag struct {
	Signature Signature
	Offset    uint32
	Size      uint32
}

type tagEntry struct {
	Tag
	type_sig Signature
	data     []byte
	// data is stored by an earlier entry with the same bytes
	shared bool
}

type TagTable struct {
	entries []tagEntry
	size    uint32
}

func (t *TagTable) Has(sig Signature) bool {
	return slices.ContainsFunc(t.entries, func(e tagEntry) bool { return e.Signature == sig })
}

func (t *TagTable) add(sig Signature, data TagData) error {
	if t.Has(sig) {
		return fmt.Errorf("%w: duplicate tag %v", ErrEncoding, sig)
	}
	b, err := data.Encode()
	if err != nil {
		return fmt.Errorf("tag %v: %w", sig, err)
	}
	t.entries = append(t.entries, tagEntry{Tag: Tag{Signature: sig}, type_sig: data.TypeSignature(), data: b})
	return nil
}

// layout sorts the directory by signature, stores each distinct block of
// tag data once, in directory order, and assigns 4-byte aligned offsets
// starting right after the directory. It returns the total profile size.
func (t *TagTable) layout() (uint32, error) {
	slices.SortFunc(t.entries, func(a, b tagEntry) int { return cmp.Compare(a.Signature, b.Signature) })
	offset := uint64(HeaderSize + 4 + tagEntrySize*len(t.entries))
	stored := make(map[string]uint32, len(t.entries))
	for i := range t.entries {
		e := &t.entries[i]
		if uint64(len(e.data)) > math.MaxUint32 {
			return 0, fmt.Errorf("%w: tag %v is too large (%d bytes)", ErrEncoding, e.Signature, len(e.data))
		}
		e.Size = uint32(len(e.data))
		if prev, found := stored[string(e.data)]; found {
			e.Offset, e.shared = prev, true
			continue
		}
		if offset > math.MaxUint32 {
			return 0, fmt.Errorf("%w: tag %v starts beyond the 32-bit offset range", ErrEncoding, e.Signature)
		}
		e.Offset, e.shared = uint32(offset), false
		stored[string(e.data)] = e.Offset
		offset += uint64(align_to_4(len(e.data)))
	}
	if offset > math.MaxUint32 {
		return 0, fmt.Errorf("%w: profile size %d does not fit in the 32-bit size field", ErrEncoding, offset)
	}
	t.size = uint32(offset)
	return t.size, nil
}

// Tags returns the directory in stored order.
func (t *TagTable) Tags() []Tag {
	ans := make([]Tag, len(t.entries))
	for i, e := range t.entries {
		ans[i] = e.Tag
	}
	return ans
}

func (t *TagTable) Len() int { return len(t.entries) }

// SharedCount is the number of directory entries that reference data stored
// for another entry.
func (t *TagTable) SharedCount() (ans int) {
	for _, e := range t.entries {
		if e.shared {
			ans++
		}
	}
	return
}

// Data returns the encoded tag data, without padding.
func (t *TagTable) Data(sig Signature) ([]byte, bool) {
	for _, e := range t.entries {
		if e.Signature == sig {
			return e.data, true
		}
	}
	return nil, false
}

// TypeSignature returns the tag type the tag was encoded as.
func (t *TagTable) TypeSignature(sig Signature) Signature {
	for _, e := range t.entries {
		if e.Signature == sig {
			return e.type_sig
		}
	}
	return UnknownSignature
}
