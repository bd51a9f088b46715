package models

// State tracks one turn through its lifecycle. Every path ends back at Idle
// so the session can accept the next send.
type State string

const (
	Idle      State = "idle"
	Sending   State = "sending"
	Streaming State = "streaming"
	Finalized State = "finalized"
	Failed    State = "failed" // dead state for the entry, not the session
)
