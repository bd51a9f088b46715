package tools

// Demo dataset standing in for the workout store, which is outside this
// service. Fixed values keep every tool deterministic.

type loggedSet struct {
	exercise string
	reps     int
	weight   float64 // lbs
	day      string
}

type weekDay struct {
	label string
	date  string
}

var weekDays = []weekDay{
	{"Mon", "2026-08-17"},
	{"Tue", "2026-08-18"},
	{"Wed", "2026-08-19"},
	{"Thu", "2026-08-20"},
	{"Fri", "2026-08-21"},
	{"Sat", "2026-08-22"},
	{"Sun", "2026-08-23"},
}

var weekSets = []loggedSet{
	{"bench press", 8, 135, "Mon"},
	{"bench press", 6, 155, "Mon"},
	{"squat", 5, 225, "Tue"},
	{"squat", 5, 245, "Tue"},
	{"deadlift", 3, 315, "Thu"},
	{"bench press", 8, 140, "Fri"},
	{"overhead press", 10, 85, "Fri"},
	{"squat", 8, 205, "Sat"},
}

var weekMinutes = map[string]float64{
	"Mon": 45,
	"Tue": 50,
	"Thu": 35,
	"Fri": 55,
	"Sat": 40,
}

// KnownExercises lists the distinct exercises in the dataset, in first-seen
// order.
func KnownExercises() []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(weekSets))
	for _, s := range weekSets {
		if seen[s.exercise] {
			continue
		}
		seen[s.exercise] = true
		out = append(out, s.exercise)
	}
	return out
}

func TrendRepsValues() map[string]float64 {
	values := map[string]float64{}
	for _, s := range weekSets {
		values[s.day] += float64(s.reps)
	}
	return values
}

func TrendDurationValues() map[string]float64 {
	values := map[string]float64{}
	for d, m := range weekMinutes {
		values[d] = m
	}
	return values
}
