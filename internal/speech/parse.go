package speech

import (
	"encoding/json"
	"strings"
)

// ParseTaskPayload turns a produced payload into a task map. A map payload
// is used as-is. Text is trimmed, stripped of a surrounding fence when it
// spans more than two lines, and JSON-parsed. ok is false when the payload
// is unusable, which callers score as 0 rather than treating as an error.
func ParseTaskPayload(payload any) (map[string]any, bool) {
	switch v := payload.(type) {
	case map[string]any:
		return v, true
	case string:
		cleaned := StripFence(strings.TrimSpace(v))
		var m map[string]any
		if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
			return nil, false
		}
		return m, true
	default:
		return nil, false
	}
}

// StripFence removes a wrapping code fence (first and last line) when s
// starts with ``` and the block spans more than two lines. Anything else is
// returned unchanged.
func StripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 2 {
		return s
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
