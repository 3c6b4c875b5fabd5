package icc

import (
	"strings"

	"golang.org/x/text/language"
)

func to_ascii(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}

// TextDescription is the version 2 'desc' tag type. The text is stored as
// ASCII and, when it is not plain ASCII, in full as the Unicode description
// tagged with the language and country codes of Language.
type TextDescription struct {
	Text     string
	Language language.Tag // language.AmericanEnglish when unset
}

func (d TextDescription) TypeSignature() Signature { return DescSignature }

func (d TextDescription) Encode() ([]byte, error) {
	ascii := to_ascii(d.Text)
	w := new_tag_writer(DescSignature, 12+len(ascii)+1+8+3+67)
	w.u32(uint32(len(ascii) + 1))
	w.write([]byte(ascii))
	w.u8(0)
	if ascii == d.Text {
		w.u32(0) // Unicode language code
		w.u32(0)
	} else {
		tag := d.Language
		if tag == language.Und {
			tag = language.AmericanEnglish
		}
		lc, err := languageCountryFromTag(tag)
		if err != nil {
			return nil, err
		}
		u, err := encode_utf16be(d.Text)
		if err != nil {
			return nil, err
		}
		w.write([]byte(lc.key()))
		w.u32(uint32(len(u)/2 + 1))
		w.write(u)
		w.u16(0)
	}
	w.u16(0) // ScriptCode code
	w.u8(0)
	w.reserved(67)
	return w.result()
}

// TextType is the version 2 'text' tag type, used for the copyright.
type TextType string

func (t TextType) TypeSignature() Signature { return TextTagSignature }

func (t TextType) Encode() ([]byte, error) {
	ascii := to_ascii(string(t))
	w := new_tag_writer(TextTagSignature, 8+len(ascii)+1)
	w.write([]byte(ascii))
	w.u8(0)
	return w.result()
}
