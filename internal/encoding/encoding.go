// Package encoding converts editor text between character encodings.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is the codec files are assumed to use when nothing else is known.
const Default = "UTF-8"

// Names lists the codecs offered by the encoding picker.
var Names = []string{
	"UTF-8",
	"UTF-16LE",
	"UTF-16BE",
	"ISO-8859-1",
	"ISO-8859-2",
	"ISO-8859-15",
	"windows-1250",
	"windows-1251",
	"windows-1252",
	"KOI8-R",
	"Shift_JIS",
	"EUC-JP",
	"EUC-KR",
	"GBK",
	"GB18030",
	"Big5",
}

// ErrUnsupportedCodec is matched by every *UnsupportedCodecError.
var ErrUnsupportedCodec = errors.New("unsupported codec")

// UnsupportedCodecError reports a codec name the platform does not know.
type UnsupportedCodecError struct {
	Name string
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported codec %q", e.Name)
}

func (e *UnsupportedCodecError) Is(target error) bool {
	return target == ErrUnsupportedCodec
}

// Lookup resolves a codec name using the WHATWG labels first, then IANA names.
func Lookup(name string) (xencoding.Encoding, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		return nil, &UnsupportedCodecError{Name: name}
	}
	if enc, err := htmlindex.Get(label); err == nil && enc != nil {
		return enc, nil
	}
	// ianaindex returns a nil encoding for names it knows but cannot handle.
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		return enc, nil
	}
	return nil, &UnsupportedCodecError{Name: name}
}

// Supported reports whether Lookup would succeed for name.
func Supported(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Convert reinterprets text under a new codec: the text is encoded as UTF-8
// and the resulting bytes are decoded as codec.
func Convert(text, codec string) (string, error) {
	return Decode([]byte(text), codec)
}

// Decode turns raw file bytes in codec into a string.
func Decode(data []byte, codec string) (string, error) {
	enc, err := Lookup(codec)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", codec, err)
	}
	return string(out), nil
}

// Encode turns text into bytes in codec. Runes the codec cannot represent are
// replaced rather than failing the save.
func Encode(text, codec string) ([]byte, error) {
	enc, err := Lookup(codec)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(text), nil
	}
	out, err := xencoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", codec, err)
	}
	return out, nil
}
