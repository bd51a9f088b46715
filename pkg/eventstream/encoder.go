package eventstream

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteFrame writes one frame in the same framing the decoder reads. Payload
// newlines become multiple data: lines. The caller flushes the transport.
func WriteFrame(w io.Writer, f Frame) error {
	var b bytes.Buffer
	if f.Event != "" && f.Event != DefaultEvent {
		fmt.Fprintf(&b, "event: %s\n", f.Event)
	}
	for _, line := range strings.Split(f.Data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteByte('\n')
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
