package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBlockRoundTrip(t *testing.T) {
	blocks := Blocks{
		StatusBlock{Tone: ToneSuccess, Title: "Set logged", Description: "bench - 8 reps"},
		UndoBlock{ActionID: "a1", TurnID: "t1", Title: "Logged set"},
		TrendBlock{Title: "Week", Metric: TrendReps, Total: 42, BestDay: "Fri", Points: []TrendPoint{{Date: "2026-08-21", Label: "Fri", Value: 18}}},
		ClientActionBlock{Action: "set_unit", Payload: map[string]interface{}{"unit": "kg"}},
	}

	raw, err := json.Marshal(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Blocks
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != len(blocks) {
		t.Fatalf("got %d blocks, want %d", len(decoded), len(blocks))
	}
	for i := range blocks {
		if decoded[i].BlockType() != blocks[i].BlockType() {
			t.Errorf("block %d type = %q, want %q", i, decoded[i].BlockType(), blocks[i].BlockType())
		}
	}
	if s, ok := decoded[0].(StatusBlock); !ok || s.Title != "Set logged" {
		t.Errorf("status block = %+v", decoded[0])
	}
	if a, ok := decoded[3].(ClientActionBlock); !ok || a.Payload["unit"] != "kg" {
		t.Errorf("client_action block = %+v", decoded[3])
	}
}

func TestDecodeBlockUnknownTypeFails(t *testing.T) {
	_, err := DecodeBlock([]byte(`{"type":"hologram","title":"x"}`))
	if err == nil || !strings.Contains(err.Error(), "unknown block type") {
		t.Errorf("err = %v, want unknown block type", err)
	}
}

func TestDecodeBlockValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"status bad tone", `{"type":"status","tone":"loud","title":"x"}`},
		{"status no title", `{"type":"status","tone":"info"}`},
		{"undo no action", `{"type":"undo","actionId":"  "}`},
		{"trend bad metric", `{"type":"trend","title":"x","metric":"volume"}`},
		{"client_action no action", `{"type":"client_action","payload":{}}`},
	}
	for _, c := range cases {
		if _, err := DecodeBlock([]byte(c.raw)); err == nil {
			t.Errorf("%s: decode succeeded, want error", c.name)
		}
	}
}

func TestBlocksListFailsOnOneBadElement(t *testing.T) {
	raw := `[{"type":"status","tone":"info","title":"ok"},{"type":"mystery"}]`
	var decoded Blocks
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		t.Error("unmarshal succeeded, want error so the frame gets skipped")
	}
}
