// Package eventstream reads and writes text event-stream framing: frames are
// separated by a blank line, "event:" lines name the frame and "data:" lines
// carry its payload. The decoder buffers across network reads, so a frame
// split at any byte offset decodes the same as one delivered whole.
package eventstream

import (
	"bytes"
	"io"
	"strings"
)

// DefaultEvent is the frame name used when no event: line is present.
const DefaultEvent = "message"

type Frame struct {
	Event string
	Data  string
}

type Decoder struct {
	r      io.ReadCloser
	buf    []byte
	chunk  []byte
	rerr   error
	closed bool
}

func NewDecoder(r io.ReadCloser) *Decoder {
	return &Decoder{
		r:     r,
		chunk: make([]byte, 4096),
	}
}

// Next returns the next complete frame, or io.EOF once the stream ends. A
// trailing partial frame with no terminating blank line is dropped, not
// emitted. Frames without any data: line (comments, keepalives) are skipped.
func (d *Decoder) Next() (Frame, error) {
	if d.closed {
		return Frame{}, io.EOF
	}
	for {
		if i := bytes.Index(d.buf, []byte("\n\n")); i >= 0 {
			raw := d.buf[:i]
			d.buf = d.buf[i+2:]
			if f, ok := parseFrame(raw); ok {
				return f, nil
			}
			continue
		}
		if d.rerr != nil {
			return Frame{}, d.rerr
		}
		n, err := d.r.Read(d.chunk)
		if n > 0 {
			d.buf = append(d.buf, d.chunk[:n]...)
		}
		if err != nil {
			d.rerr = err
		}
	}
}

// Close releases the underlying reader. It is idempotent and must be called
// on every exit path, including early break and error returns.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.r.Close()
}

func parseFrame(raw []byte) (Frame, bool) {
	f := Frame{Event: DefaultEvent}
	var data []string
	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		switch {
		case len(line) == 0 || line[0] == ':':
		case bytes.HasPrefix(line, []byte("event:")):
			f.Event = string(trimFieldValue(line[len("event:"):]))
		case bytes.HasPrefix(line, []byte("data:")):
			data = append(data, string(trimFieldValue(line[len("data:"):])))
		}
	}
	if len(data) == 0 {
		return Frame{}, false
	}
	f.Data = strings.Join(data, "\n")
	return f, true
}

// trimFieldValue strips the single optional space after the field colon.
func trimFieldValue(b []byte) []byte {
	if len(b) > 0 && b[0] == ' ' {
		return b[1:]
	}
	return b
}
