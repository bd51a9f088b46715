package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"liftcoach/pkg/eventstream"
	"liftcoach/pkg/models"
	"liftcoach/pkg/protocol"
	"liftcoach/pkg/timeline"
)

// consumeStream applies decoded events strictly in arrival order until the
// terminal final event. Mid-stream error events are surfaced once and do not
// end the turn; a close without final does.
func (c *Client) consumeStream(entry *timeline.Entry, body io.ReadCloser) {
	entry.SetState(models.Streaming)

	dec := eventstream.NewDecoder(body)
	defer dec.Close()

	errSeen := false
	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			c.fail(entry, errStreamNoFinal)
			return
		}
		if err != nil {
			c.fail(entry, fmt.Errorf("read stream: %w", err))
			return
		}

		ev, err := protocol.DecodeStreamEvent([]byte(frame.Data))
		if err != nil {
			// One bad frame never costs the turn's remaining events.
			c.log.Debug().Err(err).Msg("skipping malformed frame")
			continue
		}

		switch e := ev.(type) {
		case protocol.ToolStartEvent:
			entry.SetStatus(progressLabel(e.ToolName))
		case protocol.ToolResultEvent:
			entry.AppendBlocks(c.applyClientActions(e.Blocks)...)
		case protocol.ErrorEvent:
			if errSeen {
				continue // only the first mid-stream error is surfaced
			}
			errSeen = true
			entry.AppendBlocks(protocol.StatusBlock{
				Tone:        protocol.ToneError,
				Title:       "Something went wrong",
				Description: e.Message,
			})
		case protocol.FinalEvent:
			c.finalize(entry, e.Response)
			return
		}
	}
}

// consumeBody handles the non-streaming fallback: any content type other
// than text/event-stream means the body is one JSON TurnResponse.
func (c *Client) consumeBody(entry *timeline.Entry, body io.Reader) {
	raw, err := io.ReadAll(body)
	if err != nil {
		c.fail(entry, fmt.Errorf("read response: %w", err))
		return
	}
	var resp protocol.TurnResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.fail(entry, fmt.Errorf("decode response: %w", err))
		return
	}
	if err := resp.Validate(); err != nil {
		c.fail(entry, fmt.Errorf("invalid response: %w", err))
		return
	}
	c.finalize(entry, resp)
}
