package tools

import (
	"strings"
	"testing"

	"liftcoach/internal/actions"
	"liftcoach/pkg/protocol"
)

func testDeps() Deps {
	return Deps{
		Actions: actions.NewRegistry(),
		Prefs:   protocol.Preferences{Unit: protocol.UnitLbs},
		TurnID:  "turn-1",
	}
}

func TestParseSet(t *testing.T) {
	cases := []struct {
		prompt   string
		exercise string
		reps     string
		weight   string
		ok       bool
	}{
		{"log 8 reps of bench press at 135", "bench press", "8", "135", true},
		{"I did 5 reps of squat @ 225.5", "squat", "5", "225.5", true},
		{"log 1 rep of deadlift", "deadlift", "1", "", true},
		{"12 reps overhead press", "overhead press", "12", "", true},
		{"show my trend", "", "", "", false},
		{"log my workout", "", "", "", false},
	}
	for _, c := range cases {
		args, ok := ParseSet(c.prompt)
		if ok != c.ok {
			t.Errorf("ParseSet(%q) ok = %v, want %v", c.prompt, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if args["exercise"] != c.exercise || args["reps"] != c.reps || args["weight"] != c.weight {
			t.Errorf("ParseSet(%q) = %v", c.prompt, args)
		}
	}
}

func TestLogSetRecordsReversibleAction(t *testing.T) {
	deps := testDeps()
	blocks, err := LogSet(deps, map[string]string{"exercise": "bench press", "reps": "8", "weight": "135"})
	if err != nil {
		t.Fatalf("LogSet: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want status + undo", len(blocks))
	}

	status, ok := blocks[0].(protocol.StatusBlock)
	if !ok || status.Tone != protocol.ToneSuccess {
		t.Errorf("first block = %+v, want success status", blocks[0])
	}
	if !strings.Contains(status.Description, "135 lbs") {
		t.Errorf("status description = %q, want weight in lbs", status.Description)
	}

	undo, ok := blocks[1].(protocol.UndoBlock)
	if !ok {
		t.Fatalf("second block = %+v, want undo", blocks[1])
	}
	if undo.TurnID != "turn-1" {
		t.Errorf("undo turn id = %q", undo.TurnID)
	}
	if ok, msg := deps.Actions.Reverse(undo.ActionID); !ok {
		t.Errorf("recorded action not reversible: %s", msg)
	}
}

func TestLogSetValidatesArgs(t *testing.T) {
	deps := testDeps()
	cases := []map[string]string{
		{"reps": "8"},
		{"exercise": "bench press"},
		{"exercise": "bench press", "reps": "zero"},
		{"exercise": "bench press", "reps": "-3"},
		{"exercise": "bench press", "reps": "8", "weight": "heavy"},
	}
	for _, args := range cases {
		if _, err := LogSet(deps, args); err == nil {
			t.Errorf("LogSet(%v) succeeded, want error", args)
		}
	}
}

func TestLogSetFormatsWeightInKg(t *testing.T) {
	deps := testDeps()
	deps.Prefs.Unit = protocol.UnitKg
	blocks, err := LogSet(deps, map[string]string{"exercise": "squat", "reps": "5", "weight": "220.462"})
	if err != nil {
		t.Fatalf("LogSet: %v", err)
	}
	status := blocks[0].(protocol.StatusBlock)
	if !strings.Contains(status.Description, "100 kg") {
		t.Errorf("status description = %q, want kg", status.Description)
	}
}

func TestWorkoutStatsTotals(t *testing.T) {
	blocks, err := WorkoutStats(testDeps())
	if err != nil {
		t.Fatalf("WorkoutStats: %v", err)
	}
	metrics, ok := blocks[0].(protocol.MetricsBlock)
	if !ok {
		t.Fatalf("block = %+v, want metrics", blocks[0])
	}

	want := map[string]string{
		"Sets":       "8",
		"Total reps": "53",
		"Best day":   "Fri",
	}
	for _, m := range metrics.Metrics {
		if expect, tracked := want[m.Label]; tracked && m.Value != expect {
			t.Errorf("%s = %q, want %q", m.Label, m.Value, expect)
		}
	}
}

func TestWeeklyTrendDefaultsToReps(t *testing.T) {
	for _, metric := range []string{"", "reps"} {
		blocks, err := WeeklyTrend(testDeps(), metric)
		if err != nil {
			t.Fatalf("WeeklyTrend(%q): %v", metric, err)
		}
		trend, ok := blocks[0].(protocol.TrendBlock)
		if !ok {
			t.Fatalf("block = %+v, want trend", blocks[0])
		}
		if trend.Metric != protocol.TrendReps {
			t.Errorf("metric = %q, want reps", trend.Metric)
		}
		if trend.Total != 53 {
			t.Errorf("total = %v, want 53", trend.Total)
		}
		if trend.BestDay != "Fri" {
			t.Errorf("best day = %q, want Fri", trend.BestDay)
		}
		if len(trend.Points) != 7 {
			t.Errorf("got %d points, want a full week", len(trend.Points))
		}
	}
}

func TestWeeklyTrendDuration(t *testing.T) {
	blocks, err := WeeklyTrend(testDeps(), "duration")
	if err != nil {
		t.Fatalf("WeeklyTrend: %v", err)
	}
	trend := blocks[0].(protocol.TrendBlock)
	if trend.Metric != protocol.TrendDuration || trend.Total != 225 {
		t.Errorf("trend = metric %q total %v, want duration/225", trend.Metric, trend.Total)
	}
}

func TestWeeklyTrendRejectsUnknownMetric(t *testing.T) {
	if _, err := WeeklyTrend(testDeps(), "volume"); err == nil {
		t.Error("unknown metric accepted")
	}
}

func TestExerciseHistoryFilters(t *testing.T) {
	blocks, err := ExerciseHistory(testDeps(), "squat")
	if err != nil {
		t.Fatalf("ExerciseHistory: %v", err)
	}
	table, ok := blocks[0].(protocol.TableBlock)
	if !ok {
		t.Fatalf("block = %+v, want table", blocks[0])
	}
	if len(table.Rows) != 3 {
		t.Errorf("got %d squat rows, want 3", len(table.Rows))
	}
	for _, row := range table.Rows {
		if row.Label != "squat" {
			t.Errorf("row for %q leaked into squat history", row.Label)
		}
	}
}

func TestExerciseHistoryUnknownExercise(t *testing.T) {
	blocks, err := ExerciseHistory(testDeps(), "curl")
	if err != nil {
		t.Fatalf("ExerciseHistory: %v", err)
	}
	status, ok := blocks[0].(protocol.StatusBlock)
	if !ok || status.Tone != protocol.ToneInfo {
		t.Errorf("block = %+v, want info status", blocks[0])
	}
}

func TestUpdatePreferences(t *testing.T) {
	blocks, err := UpdatePreferences(map[string]string{"unit": "kg"})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	action, ok := blocks[0].(protocol.ClientActionBlock)
	if !ok || action.Action != "set_unit" || action.Payload["unit"] != "kg" {
		t.Errorf("first block = %+v, want set_unit action", blocks[0])
	}

	blocks, err = UpdatePreferences(map[string]string{"sound": "off"})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	action = blocks[0].(protocol.ClientActionBlock)
	if action.Action != "set_sound" || action.Payload["enabled"] != false {
		t.Errorf("first block = %+v, want set_sound action", blocks[0])
	}

	if _, err := UpdatePreferences(map[string]string{}); err == nil {
		t.Error("empty args accepted")
	}
}
