package actions

import "testing"

func TestReverseRecordedAction(t *testing.T) {
	r := NewRegistry()
	a := r.Record("log_set", "bench - 8 reps at 135 lbs")

	ok, msg := r.Reverse(a.ID.String())
	if !ok || msg != "" {
		t.Fatalf("Reverse = (%v, %q), want success", ok, msg)
	}
	got, found := r.Get(a.ID)
	if !found || !got.Reversed {
		t.Errorf("action after reverse = %+v", got)
	}
}

func TestReverseIsNotIdempotent(t *testing.T) {
	r := NewRegistry()
	a := r.Record("log_set", "squat - 5 reps")

	if ok, _ := r.Reverse(a.ID.String()); !ok {
		t.Fatal("first reverse failed")
	}
	ok, msg := r.Reverse(a.ID.String())
	if ok || msg != "action already undone" {
		t.Errorf("second reverse = (%v, %q), want explicit failure", ok, msg)
	}
}

func TestReverseUnknownAction(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"not-a-uuid", "d9b915d0-47b3-4b45-9a2e-000000000000"} {
		if ok, msg := r.Reverse(id); ok || msg != "unknown action" {
			t.Errorf("Reverse(%q) = (%v, %q), want unknown action", id, ok, msg)
		}
	}
}
