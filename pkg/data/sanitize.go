package data

import "errors"

// SanitizeAnswer extracts the first balanced JSON object from a model answer,
// tolerating prose before and after it. Braces inside string literals are
// ignored.
func SanitizeAnswer(ans string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(ans); i++ {
		c := ans[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return ans[start : i+1], nil
			}
		}
	}
	return "", errors.New("error sanitizing answer")
}
