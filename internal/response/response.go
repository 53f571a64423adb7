// Package response builds the bytes written back to the client.
package response

import (
	"bytes"
)

type Outcome int

const (
	OutcomeOk Outcome = iota
	OutcomeNotFound
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOk:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// StatusTable maps an outcome to the status written on the wire.
type StatusTable map[Outcome]string

const StatusOK = "200 OK"

// DefaultStatusTable reports success for every outcome; errors are only
// visible in the body.
func DefaultStatusTable() StatusTable {
	return StatusTable{
		OutcomeOk:        StatusOK,
		OutcomeNotFound:  StatusOK,
		OutcomeMalformed: StatusOK,
	}
}

func (t StatusTable) Status(o Outcome) string {
	if s, ok := t[o]; ok {
		return s
	}
	return StatusOK
}

type Header struct {
	Name  string
	Value string
}

type Response struct {
	Outcome    Outcome
	StatusLine string
	Headers    []Header
	Body       []byte
}

// Bytes renders the status line, headers in insertion order, the blank line
// and the body.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(r.StatusLine) + len(r.Body) + 64)

	buf.WriteString(r.StatusLine)
	buf.WriteString("\r\n")
	for _, h := range r.Headers {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)

	return buf.Bytes()
}
