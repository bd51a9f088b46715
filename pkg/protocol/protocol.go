// Package protocol defines the wire contracts of the coach turn protocol:
// the conversation messages sent to the planner, the closed set of result
// blocks a turn may produce, the stream events emitted while a turn is in
// flight, and the authoritative final turn response.
package protocol

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Unit string

const (
	UnitLbs Unit = "lbs"
	UnitKg  Unit = "kg"
)

// Preferences travel with every turn request so tools can format output
// without a server-side profile store.
type Preferences struct {
	Unit                  Unit `json:"unit"`
	SoundEnabled          bool `json:"soundEnabled"`
	TimezoneOffsetMinutes int  `json:"timezoneOffsetMinutes"`
}

type TurnRequest struct {
	Messages    []Message   `json:"messages"`
	Preferences Preferences `json:"preferences"`
}

type UndoRequest struct {
	ActionID string `json:"actionId"`
	// TurnID is carried for correlation only, the server ignores it beyond
	// logging.
	TurnID string `json:"turnId,omitempty"`
}

type UndoResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
