package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// lookupEncoding resolves a WHATWG encoding name. A nil encoding with a nil
// error means UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedEncoding, name)
	}
	if canonical, err := htmlindex.Name(enc); err == nil && canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// ValidateEncoding reports whether name is a supported encoding.
func ValidateEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}

// transcode converts UTF-8 text into enc. Characters the target encoding
// cannot represent are an error.
func transcode(payload []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return bytes.ToValidUTF8(payload, []byte("�")), nil
	}
	out, err := enc.NewEncoder().Bytes(payload)
	if err != nil {
		name, _ := htmlindex.Name(enc)
		return nil, fmt.Errorf("encode output as %s: %w", name, err)
	}
	return out, nil
}
