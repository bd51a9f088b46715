package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"liftcoach/pkg/protocol"
	"liftcoach/pkg/timeline"
)

// Undo asks the server to reverse the action behind actionID and records the
// outcome on the timeline. A structurally invalid id fails locally without a
// network call. Failures are terminal for this invocation; there is no retry.
// turnID is passed through for correlation only.
func (c *Client) Undo(ctx context.Context, actionID, turnID string) *timeline.Entry {
	if strings.TrimSpace(actionID) == "" {
		return c.timeline.Note(protocol.StatusBlock{
			Tone:        protocol.ToneError,
			Title:       "Nothing to undo",
			Description: "That action can no longer be undone.",
		})
	}

	res, err := c.postUndo(ctx, actionID, turnID)
	if err != nil {
		c.log.Warn().Err(err).Str("action", actionID).Msg("undo failed")
		return c.timeline.Note(protocol.StatusBlock{
			Tone:        protocol.ToneError,
			Title:       "Undo failed",
			Description: err.Error(),
		})
	}
	if !res.OK {
		return c.timeline.Note(protocol.StatusBlock{
			Tone:        protocol.ToneError,
			Title:       "Undo failed",
			Description: res.Message,
		})
	}
	return c.timeline.Note(protocol.StatusBlock{
		Tone:        protocol.ToneSuccess,
		Title:       "Undone",
		Description: "That set has been removed from your log.",
	})
}

func (c *Client) postUndo(ctx context.Context, actionID, turnID string) (protocol.UndoResult, error) {
	body, err := json.Marshal(protocol.UndoRequest{ActionID: actionID, TurnID: turnID})
	if err != nil {
		return protocol.UndoResult{}, fmt.Errorf("marshal undo: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/coach/undo", bytes.NewReader(body))
	if err != nil {
		return protocol.UndoResult{}, fmt.Errorf("build undo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return protocol.UndoResult{}, fmt.Errorf("send undo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protocol.UndoResult{}, errorFromResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return protocol.UndoResult{}, fmt.Errorf("read undo response: %w", err)
	}
	var res protocol.UndoResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return protocol.UndoResult{}, fmt.Errorf("decode undo response: %w", err)
	}
	return res, nil
}
