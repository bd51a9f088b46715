package tools

import (
	"regexp"
	"strings"
)

var setPattern = regexp.MustCompile(`(?i)(\d+)\s+reps?\s+(?:of\s+)?([a-z][a-z ]*?)(?:\s+(?:at|@)\s+(\d+(?:\.\d+)?))?\s*$`)

// ParseSet extracts log_set args from a natural prompt like
// "log 8 reps of bench press at 135". Used by the fallback planner.
func ParseSet(prompt string) (map[string]string, bool) {
	m := setPattern.FindStringSubmatch(prompt)
	if m == nil {
		return nil, false
	}
	args := map[string]string{
		"reps":     m[1],
		"exercise": strings.TrimSpace(strings.ToLower(m[2])),
	}
	if m[3] != "" {
		args["weight"] = m[3]
	}
	return args, true
}
