package coach

// toolLabels maps tool names to the progress label shown while that tool
// runs. Unknown tools get the generic label.
var toolLabels = map[string]string{
	"log_set":            "Logging your set...",
	"workout_stats":      "Crunching your numbers...",
	"weekly_trend":       "Charting your week...",
	"exercise_history":   "Looking up your history...",
	"update_preferences": "Updating your preferences...",
}

const genericLabel = "Working on it..."

func progressLabel(tool string) string {
	if label, ok := toolLabels[tool]; ok {
		return label
	}
	return genericLabel
}
