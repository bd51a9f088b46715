// Package timeline holds the client-owned log of rendered turns. Entry ids
// are generated locally for UI diffing and never travel back to the server;
// only actionId/turnId inside undo blocks do.
package timeline

import (
	"github.com/google/uuid"

	"liftcoach/pkg/models"
	"liftcoach/pkg/protocol"
)

type Entry struct {
	ID     uuid.UUID
	Prompt string
	Text   string
	// Status is the human-readable progress label shown while streaming.
	Status string
	Blocks []protocol.Block
	Trace  *protocol.Trace
	State  models.State

	done bool
}

// Timeline is append-only: entries are mutated while their turn streams and
// freeze once it ends.
type Timeline struct {
	entries []*Entry
}

func New() *Timeline {
	return &Timeline{}
}

func (t *Timeline) Entries() []*Entry {
	return t.entries
}

// Start appends an in-progress entry for a new turn.
func (t *Timeline) Start(prompt string) *Entry {
	e := &Entry{
		ID:     uuid.New(),
		Prompt: prompt,
		Status: "Thinking...",
		State:  models.Sending,
	}
	t.entries = append(t.entries, e)
	return e
}

// Note appends an already-final entry, used for undo outcomes.
func (t *Timeline) Note(blocks ...protocol.Block) *Entry {
	e := &Entry{
		ID:     uuid.New(),
		Blocks: blocks,
		State:  models.Finalized,
		done:   true,
	}
	t.entries = append(t.entries, e)
	return e
}

func (e *Entry) SetState(s models.State) {
	if e.done {
		return
	}
	e.State = s
}

func (e *Entry) SetStatus(label string) {
	if e.done {
		return
	}
	e.Status = label
}

// AppendBlocks accumulates partial results; it never replaces.
func (e *Entry) AppendBlocks(blocks ...protocol.Block) {
	if e.done {
		return
	}
	e.Blocks = append(e.Blocks, blocks...)
}

// Finalize applies the authoritative response: the final block list replaces
// everything accumulated while streaming. The entry is immutable afterwards.
func (e *Entry) Finalize(text string, blocks []protocol.Block, trace protocol.Trace) {
	if e.done {
		return
	}
	e.Text = text
	e.Blocks = blocks
	e.Trace = &trace
	e.Status = ""
	e.State = models.Finalized
	e.done = true
}

// Fail appends the failure blocks and freezes the entry.
func (e *Entry) Fail(blocks ...protocol.Block) {
	if e.done {
		return
	}
	e.Blocks = append(e.Blocks, blocks...)
	e.Status = ""
	e.State = models.Failed
	e.done = true
}

func (e *Entry) Done() bool {
	return e.done
}
