package request

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/HMasataka/tinyhttpd/internal/wire"
)

var (
	ErrMalformedRequest = errors.New("malformed request line")
	ErrEmptyRequest     = fmt.Errorf("%w: empty request", ErrMalformedRequest)
)

// Line is the request line, METHOD SP PATH SP VERSION.
type Line struct {
	Method  string
	Path    string
	Version string
}

func (l Line) String() string {
	return l.Method + " " + l.Path + " " + l.Version
}

// Unescaped is the line with its path percent-decoded, used for logging.
func (l Line) Unescaped(codec *wire.Codec) string {
	return l.Method + " " + codec.Unescape(l.Path) + " " + l.Version
}

// Parse reads the request line from the start of raw. Only the first line is
// looked at; headers and body are ignored.
func Parse(raw []byte, codec *wire.Codec) (Line, error) {
	if len(raw) == 0 {
		return Line{}, ErrEmptyRequest
	}

	first := raw
	if i := bytes.IndexAny(raw, "\r\n"); i >= 0 {
		first = raw[:i]
	}

	text := strings.TrimRightFunc(codec.Decode(first), isSpace)
	if text == "" {
		return Line{}, fmt.Errorf("%w: empty first line", ErrMalformedRequest)
	}

	// Only ASCII whitespace separates tokens; U+00A0 or U+3000 may appear in a path.
	fields := strings.FieldsFunc(text, isSpace)
	if len(fields) != 3 {
		return Line{}, fmt.Errorf("%w: want 3 tokens, got %d", ErrMalformedRequest, len(fields))
	}

	return Line{Method: fields[0], Path: fields[1], Version: fields[2]}, nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}
