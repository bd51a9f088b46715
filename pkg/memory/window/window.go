// Package window bounds the conversation history sent to the planner on each
// turn.
package window

import "liftcoach/pkg/protocol"

// DefaultLimit is the number of messages kept in the window.
const DefaultLimit = 24

// Window is an ordered message history bounded by Limit. Append never
// mutates the receiver, callers keep the returned value.
type Window struct {
	Limit    int
	Messages []protocol.Message
}

func New(limit int) Window {
	return Window{Limit: limit}
}

// Append adds msg and trims to the newest Limit messages. When trimming
// occurred and the earliest retained message is an assistant turn, that
// message is dropped too: the window never opens on an answer with no
// preceding prompt. A Limit of zero or one still yields a valid suffix.
func (w Window) Append(msg protocol.Message) Window {
	msgs := make([]protocol.Message, 0, len(w.Messages)+1)
	msgs = append(msgs, w.Messages...)
	msgs = append(msgs, msg)

	limit := w.Limit
	if limit < 0 {
		limit = 0
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
		if len(msgs) > 0 && msgs[0].Role == protocol.RoleAssistant {
			msgs = msgs[1:]
		}
	}
	return Window{Limit: w.Limit, Messages: msgs}
}
