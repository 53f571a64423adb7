// Package wire converts between the text handled by the server and the bytes
// that travel over the socket.
package wire

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultEncoding = "utf-8"

var ErrUnknownEncoding = errors.New("unknown text encoding")

// Codec is safe for concurrent use; every call creates its own transformer.
type Codec struct {
	name     string
	encoding encoding.Encoding
}

func New(name string) (*Codec, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}

	return &Codec{name: canonical, encoding: enc}, nil
}

// Default returns the UTF-8 codec.
func Default() *Codec {
	c, err := New(DefaultEncoding)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) Name() string {
	return c.name
}

// Decode never fails: undecodable input is replaced with U+FFFD.
func (c *Codec) Decode(b []byte) string {
	out, err := c.encoding.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

func (c *Codec) Encode(s string) []byte {
	out, err := encoding.ReplaceUnsupported(c.encoding.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// Unescape percent-decodes s. Malformed escapes are kept as they are and '+'
// is left alone. Each run of escaped bytes is read with the codec's encoding.
func (c *Codec) Unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	var (
		b       strings.Builder
		pending []byte
	)
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			pending = append(pending, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		if len(pending) > 0 {
			b.WriteString(c.Decode(pending))
			pending = pending[:0]
		}
		b.WriteByte(s[i])
	}

	if len(pending) > 0 {
		b.WriteString(c.Decode(pending))
	}

	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
