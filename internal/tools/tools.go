// Package tools implements the deterministic capabilities the coach planner
// can invoke during a turn. Every tool maps its inputs to result blocks; the
// only side effect any of them performs is recording a reversible action.
package tools

import (
	"fmt"
	"strconv"

	"liftcoach/internal/actions"
	"liftcoach/pkg/protocol"
)

const (
	LogSetName            = "log_set"
	WorkoutStatsName      = "workout_stats"
	WeeklyTrendName       = "weekly_trend"
	ExerciseHistoryName   = "exercise_history"
	UpdatePreferencesName = "update_preferences"
)

// Deps carries what a tool call may touch: the action registry for
// reversible effects and the requesting client's preferences for formatting.
type Deps struct {
	Actions *actions.Registry
	Prefs   protocol.Preferences
	TurnID  string
}

// LogSet records one completed set as a reversible action and returns the
// confirmation pair the client merges into one unit.
func LogSet(deps Deps, args map[string]string) ([]protocol.Block, error) {
	exercise := args["exercise"]
	if exercise == "" {
		return nil, fmt.Errorf("log_set: exercise is required")
	}
	reps, err := strconv.Atoi(args["reps"])
	if err != nil || reps <= 0 {
		return nil, fmt.Errorf("log_set: invalid reps %q", args["reps"])
	}
	weight := 0.0
	if args["weight"] != "" {
		weight, err = strconv.ParseFloat(args["weight"], 64)
		if err != nil || weight < 0 {
			return nil, fmt.Errorf("log_set: invalid weight %q", args["weight"])
		}
	}

	summary := fmt.Sprintf("%s - %d reps", exercise, reps)
	if weight > 0 {
		summary += " @ " + formatWeight(deps.Prefs, weight)
	}
	action := deps.Actions.Record(LogSetName, summary)

	return []protocol.Block{
		protocol.StatusBlock{
			Tone:        protocol.ToneSuccess,
			Title:       "Set logged",
			Description: summary,
		},
		protocol.UndoBlock{
			ActionID:    action.ID.String(),
			TurnID:      deps.TurnID,
			Title:       "Logged set",
			Description: summary,
		},
	}, nil
}

// WorkoutStats summarizes the current week.
func WorkoutStats(deps Deps) ([]protocol.Block, error) {
	totalSets := 0
	totalReps := 0
	volume := 0.0
	for _, s := range weekSets {
		totalSets++
		totalReps += s.reps
		volume += float64(s.reps) * s.weight
	}
	best := bestDay(TrendRepsValues())

	return []protocol.Block{
		protocol.MetricsBlock{
			Title: "This week",
			Metrics: []protocol.Metric{
				{Label: "Sets", Value: strconv.Itoa(totalSets)},
				{Label: "Total reps", Value: strconv.Itoa(totalReps)},
				{Label: "Volume", Value: formatWeight(deps.Prefs, volume)},
				{Label: "Best day", Value: best},
			},
		},
	}, nil
}

// WeeklyTrend charts one metric across the week.
func WeeklyTrend(deps Deps, metric string) ([]protocol.Block, error) {
	var m protocol.TrendMetric
	var values map[string]float64
	var subtitle string
	switch protocol.TrendMetric(metric) {
	case protocol.TrendReps, "":
		m = protocol.TrendReps
		values = TrendRepsValues()
		subtitle = "Reps per day"
	case protocol.TrendDuration:
		m = protocol.TrendDuration
		values = TrendDurationValues()
		subtitle = "Minutes per day"
	default:
		return nil, fmt.Errorf("weekly_trend: unknown metric %q", metric)
	}

	total := 0.0
	points := make([]protocol.TrendPoint, 0, len(weekDays))
	for _, d := range weekDays {
		v := values[d.label]
		total += v
		points = append(points, protocol.TrendPoint{Date: d.date, Label: d.label, Value: v})
	}

	return []protocol.Block{
		protocol.TrendBlock{
			Title:    "Your week",
			Subtitle: subtitle,
			Metric:   m,
			Total:    total,
			BestDay:  bestDay(values),
			Points:   points,
		},
	}, nil
}

// ExerciseHistory lists recent sets for one exercise.
func ExerciseHistory(deps Deps, exercise string) ([]protocol.Block, error) {
	rows := make([]protocol.TableRow, 0)
	for _, s := range weekSets {
		if exercise != "" && s.exercise != exercise {
			continue
		}
		rows = append(rows, protocol.TableRow{
			Label: s.exercise,
			Value: fmt.Sprintf("%d reps @ %s", s.reps, formatWeight(deps.Prefs, s.weight)),
			Meta:  s.day,
		})
	}
	if len(rows) == 0 {
		return []protocol.Block{
			protocol.StatusBlock{
				Tone:        protocol.ToneInfo,
				Title:       "No history",
				Description: fmt.Sprintf("No logged sets for %q yet.", exercise),
			},
		}, nil
	}

	title := "Recent sets"
	if exercise != "" {
		title = "Recent sets: " + exercise
	}
	return []protocol.Block{
		protocol.TableBlock{Title: title, Rows: rows},
	}, nil
}

// UpdatePreferences emits the client_action that mutates client-held
// preferences, plus a visible confirmation. The client applies the action
// and renders only the status.
func UpdatePreferences(args map[string]string) ([]protocol.Block, error) {
	switch {
	case args["unit"] == string(protocol.UnitKg) || args["unit"] == string(protocol.UnitLbs):
		return []protocol.Block{
			protocol.ClientActionBlock{
				Action:  "set_unit",
				Payload: map[string]interface{}{"unit": args["unit"]},
			},
			protocol.StatusBlock{
				Tone:        protocol.ToneInfo,
				Title:       "Preferences updated",
				Description: "Weights now show in " + args["unit"] + ".",
			},
		}, nil
	case args["sound"] == "on" || args["sound"] == "off":
		return []protocol.Block{
			protocol.ClientActionBlock{
				Action:  "set_sound",
				Payload: map[string]interface{}{"enabled": args["sound"] == "on"},
			},
			protocol.StatusBlock{
				Tone:        protocol.ToneInfo,
				Title:       "Preferences updated",
				Description: "Sound is now " + args["sound"] + ".",
			},
		}, nil
	default:
		return nil, fmt.Errorf("update_preferences: nothing to update in %v", args)
	}
}

const lbsPerKg = 2.20462

func formatWeight(prefs protocol.Preferences, lbs float64) string {
	if prefs.Unit == protocol.UnitKg {
		return fmt.Sprintf("%.0f kg", lbs/lbsPerKg)
	}
	return fmt.Sprintf("%.0f lbs", lbs)
}

func bestDay(values map[string]float64) string {
	best := ""
	bestValue := -1.0
	for _, d := range weekDays {
		if v := values[d.label]; v > bestValue {
			best = d.label
			bestValue = v
		}
	}
	return best
}
