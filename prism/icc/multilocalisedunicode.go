package icc

import (
	"fmt"
	"slices"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func encode_utf16be(s string) ([]byte, error) {
	b, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot encode %q as UTF-16: %s", ErrEncoding, s, err)
	}
	return b, nil
}

// MultiLocalisedUnicode is the 'mluc' tag type: one string per
// language/country pair, stored in a deterministic order.
type MultiLocalisedUnicode struct {
	entries []mlucEntry
}

type mlucEntry struct {
	lc   languageCountry
	text string
}

type languageCountry struct {
	language [2]byte
	country  [2]byte
}

func (lc languageCountry) String() string {
	return fmt.Sprintf("%c%c_%c%c", lc.language[0], lc.language[1], maskNull(lc.country[0]), maskNull(lc.country[1]))
}

func (lc languageCountry) key() string {
	return string(lc.language[:]) + string(lc.country[:])
}

// languageCountryFromTag maps a BCP 47 tag to the ISO 639-1 language and ISO
// 3166-1 country codes mluc records use. The country is left zero unless the
// tag names a region explicitly.
func languageCountryFromTag(tag language.Tag) (lc languageCountry, err error) {
	base, conf := tag.Base()
	if conf == language.No {
		return lc, fmt.Errorf("%w: %q has no language", ErrEncoding, tag)
	}
	b := base.String()
	if len(b) != 2 {
		return lc, fmt.Errorf("%w: language %q has no two letter code", ErrEncoding, b)
	}
	copy(lc.language[:], b)
	if region, conf := tag.Region(); conf == language.Exact {
		r := region.String()
		if len(r) != 2 {
			return lc, fmt.Errorf("%w: region %q has no two letter code", ErrEncoding, r)
		}
		copy(lc.country[:], r)
	}
	return lc, nil
}

func NewMultiLocalisedUnicode() *MultiLocalisedUnicode {
	return &MultiLocalisedUnicode{}
}

func (mluc *MultiLocalisedUnicode) SetString(tag language.Tag, text string) error {
	lc, err := languageCountryFromTag(tag)
	if err != nil {
		return err
	}
	idx, found := slices.BinarySearchFunc(mluc.entries, lc.key(), func(e mlucEntry, k string) int {
		switch a := e.lc.key(); {
		case a < k:
			return -1
		case a > k:
			return 1
		}
		return 0
	})
	if found {
		mluc.entries[idx].text = text
	} else {
		mluc.entries = slices.Insert(mluc.entries, idx, mlucEntry{lc, text})
	}
	return nil
}

func (mluc *MultiLocalisedUnicode) Len() int { return len(mluc.entries) }

func (mluc *MultiLocalisedUnicode) TypeSignature() Signature { return MultiLocalisedUnicodeSignature }

func (mluc *MultiLocalisedUnicode) Encode() ([]byte, error) {
	if len(mluc.entries) == 0 {
		return nil, fmt.Errorf("%w: mluc tag has no strings", ErrEncoding)
	}
	const header_size, record_size = 16, 12
	strs := make([][]byte, len(mluc.entries))
	total := 0
	for i, e := range mluc.entries {
		b, err := encode_utf16be(e.text)
		if err != nil {
			return nil, err
		}
		strs[i] = b
		total += len(b)
	}
	w := new_tag_writer(MultiLocalisedUnicodeSignature, header_size+record_size*len(strs)+total)
	w.u32(uint32(len(strs)))
	w.u32(record_size)
	offset := header_size + record_size*len(strs)
	for i, e := range mluc.entries {
		w.write(e.lc.language[:])
		w.write(e.lc.country[:])
		w.u32(uint32(len(strs[i])))
		w.u32(uint32(offset))
		offset += len(strs[i])
	}
	for _, s := range strs {
		w.write(s)
	}
	return w.result()
}
