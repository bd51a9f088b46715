package messages

import (
	"github.com/google/uuid"

	"liftcoach/pkg/protocol"
)

// NewTurn asks a coach actor to run one turn. The actor emits stream events
// on Events in order and closes the channel after the terminal event.
type NewTurn struct {
	RequestID   uuid.UUID
	Messages    []protocol.Message
	Preferences protocol.Preferences
	Events      chan<- protocol.StreamEvent
}
