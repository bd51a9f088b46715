package window

import (
	"fmt"
	"testing"

	"liftcoach/pkg/protocol"
)

func TestAppendTrimsOldestAndNeverOpensOnAssistant(t *testing.T) {
	w := New(24)
	for i := 1; i <= 25; i++ {
		role := protocol.RoleUser
		if i%2 == 0 {
			role = protocol.RoleAssistant
		}
		w = w.Append(protocol.Message{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	if len(w.Messages) > 24 {
		t.Fatalf("window has %d messages, want <= 24", len(w.Messages))
	}
	if w.Messages[0].Role != protocol.RoleUser {
		t.Errorf("window opens on %q, want user", w.Messages[0].Role)
	}
	// Trimming m1 leaves the assistant m2 at the head, which is dropped too.
	if got := w.Messages[0].Content; got != "m3" {
		t.Errorf("window opens with %q, want m3", got)
	}
	if got := w.Messages[len(w.Messages)-1].Content; got != "m25" {
		t.Errorf("window ends with %q, want m25", got)
	}
}

func TestAppendBelowLimitKeepsEverything(t *testing.T) {
	w := New(4)
	w = w.Append(protocol.Message{Role: protocol.RoleUser, Content: "hi"})
	w = w.Append(protocol.Message{Role: protocol.RoleAssistant, Content: "hello"})

	if len(w.Messages) != 2 {
		t.Fatalf("window has %d messages, want 2", len(w.Messages))
	}
}

func TestAppendDoesNotMutateReceiver(t *testing.T) {
	w := New(4)
	w = w.Append(protocol.Message{Role: protocol.RoleUser, Content: "one"})
	w2 := w.Append(protocol.Message{Role: protocol.RoleAssistant, Content: "two"})

	if len(w.Messages) != 1 {
		t.Errorf("original window grew to %d messages", len(w.Messages))
	}
	if len(w2.Messages) != 2 {
		t.Errorf("new window has %d messages, want 2", len(w2.Messages))
	}
}

func TestAppendLimitZero(t *testing.T) {
	w := New(0)
	w = w.Append(protocol.Message{Role: protocol.RoleUser, Content: "hi"})
	if len(w.Messages) != 0 {
		t.Fatalf("window has %d messages, want 0", len(w.Messages))
	}
}

func TestAppendLimitOne(t *testing.T) {
	w := New(1)
	w = w.Append(protocol.Message{Role: protocol.RoleUser, Content: "hi"})
	w = w.Append(protocol.Message{Role: protocol.RoleAssistant, Content: "hello"})
	// The single retained message is an assistant turn, so it is dropped.
	if len(w.Messages) != 0 {
		t.Fatalf("window has %d messages, want 0", len(w.Messages))
	}

	w = w.Append(protocol.Message{Role: protocol.RoleUser, Content: "again"})
	if len(w.Messages) != 1 || w.Messages[0].Content != "again" {
		t.Fatalf("window = %+v, want the single user message", w.Messages)
	}
}
