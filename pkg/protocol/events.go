package protocol

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventToolStart  EventType = "tool_start"
	EventToolResult EventType = "tool_result"
	EventFinal      EventType = "final"
	EventError      EventType = "error"
)

// StreamEvent is the closed union of frames a turn may emit. A stream carries
// any number of tool_start/tool_result/error events followed by exactly one
// terminal final (or it ends early, which the client treats as a transport
// failure).
type StreamEvent interface {
	EventType() EventType
}

type ToolStartEvent struct {
	ToolName string `json:"toolName"`
}

func (ToolStartEvent) EventType() EventType { return EventToolStart }

type ToolResultEvent struct {
	Blocks Blocks `json:"blocks"`
}

func (ToolResultEvent) EventType() EventType { return EventToolResult }

type FinalEvent struct {
	Response TurnResponse `json:"response"`
}

func (FinalEvent) EventType() EventType { return EventFinal }

type ErrorEvent struct {
	Message string `json:"message"`
}

func (ErrorEvent) EventType() EventType { return EventError }

type Trace struct {
	Model        string   `json:"model"`
	ToolsUsed    []string `json:"toolsUsed"`
	FallbackUsed bool     `json:"fallbackUsed"`
}

// TurnResponse is the authoritative result of one turn. When it arrives the
// client discards any partial blocks accumulated while streaming.
type TurnResponse struct {
	AssistantText string `json:"assistantText"`
	Blocks        Blocks `json:"blocks"`
	Trace         Trace  `json:"trace"`
}

func (r TurnResponse) Validate() error {
	for i, b := range r.Blocks {
		if err := ValidateBlock(b); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

// EncodeStreamEvent marshals an event with its type discriminator injected.
func EncodeStreamEvent(ev StreamEvent) ([]byte, error) {
	return encodeTagged(string(ev.EventType()), ev)
}

// DecodeStreamEvent unmarshals one tagged event. Unknown event types and
// payloads that fail validation are errors; callers skip the frame, which
// keeps the stream forward compatible.
func DecodeStreamEvent(data []byte) (StreamEvent, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("event envelope: %w", err)
	}

	switch head.Type {
	case EventToolStart:
		var v ToolStartEvent
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode tool_start: %w", err)
		}
		if v.ToolName == "" {
			return nil, fmt.Errorf("tool_start: toolName is required")
		}
		return v, nil
	case EventToolResult:
		var v ToolResultEvent
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode tool_result: %w", err)
		}
		return v, nil
	case EventFinal:
		var v FinalEvent
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode final: %w", err)
		}
		if err := v.Response.Validate(); err != nil {
			return nil, fmt.Errorf("final: %w", err)
		}
		return v, nil
	case EventError:
		var v ErrorEvent
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode error event: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", head.Type)
	}
}
