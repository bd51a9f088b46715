package handler

import (
	"strings"

	"liftcoach/internal/tools"
	"liftcoach/pkg/models"
	"liftcoach/pkg/prompts"
	"liftcoach/pkg/protocol"
	"liftcoach/pkg/template"
)

const defaultReply = "I can log sets, show your stats, or chart your week. What do you need?"

// fallbackPlan is the deterministic planner used when no model is configured
// or the model's answer is unusable. Keyword routing only; it must never
// fail, so every branch returns a usable plan.
func fallbackPlan(prompt string) models.Plan {
	lower := strings.ToLower(prompt)

	if args, ok := tools.ParseSet(prompt); ok && strings.Contains(lower, "log") {
		return models.Plan{
			Reply: "Logged! Nice work.",
			Calls: []models.ToolCall{{Tool: tools.LogSetName, Args: args}},
		}
	}

	switch {
	case strings.Contains(lower, "kg") || strings.Contains(lower, "kilo"):
		return prefsPlan("unit", string(protocol.UnitKg))
	case strings.Contains(lower, "lbs") || strings.Contains(lower, "pound"):
		return prefsPlan("unit", string(protocol.UnitLbs))
	case strings.Contains(lower, "sound off") || strings.Contains(lower, "mute"):
		return prefsPlan("sound", "off")
	case strings.Contains(lower, "sound on") || strings.Contains(lower, "unmute"):
		return prefsPlan("sound", "on")
	}

	if strings.Contains(lower, "trend") || strings.Contains(lower, "week") {
		metric := string(protocol.TrendReps)
		if strings.Contains(lower, "time") || strings.Contains(lower, "minute") || strings.Contains(lower, "duration") {
			metric = string(protocol.TrendDuration)
		}
		return models.Plan{
			Reply: replyFor(""),
			Calls: []models.ToolCall{{Tool: tools.WeeklyTrendName, Args: map[string]string{"metric": metric}}},
		}
	}

	if strings.Contains(lower, "history") || strings.Contains(lower, "last time") || strings.Contains(lower, "recent") {
		exercise := matchExercise(lower)
		return models.Plan{
			Reply: replyFor(exercise),
			Calls: []models.ToolCall{{Tool: tools.ExerciseHistoryName, Args: map[string]string{"exercise": exercise}}},
		}
	}

	if strings.Contains(lower, "stats") || strings.Contains(lower, "how much") || strings.Contains(lower, "total") || strings.Contains(lower, "summary") {
		return models.Plan{
			Reply: replyFor(""),
			Calls: []models.ToolCall{{Tool: tools.WorkoutStatsName}},
		}
	}

	return models.Plan{Reply: defaultReply}
}

func prefsPlan(key, value string) models.Plan {
	return models.Plan{
		Reply: "Done, preferences updated.",
		Calls: []models.ToolCall{{Tool: tools.UpdatePreferencesName, Args: map[string]string{key: value}}},
	}
}

func matchExercise(lower string) string {
	for _, e := range tools.KnownExercises() {
		if strings.Contains(lower, e) {
			return e
		}
	}
	return ""
}

func replyFor(exercise string) string {
	reply, err := template.Parse(prompts.FallbackReply, struct{ Exercise string }{Exercise: exercise})
	if err != nil {
		return defaultReply
	}
	return reply
}
