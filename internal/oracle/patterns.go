package oracle

import (
	"regexp"
	"strings"
)

// pattern pairs a name with its compiled rule. Order matters: first match
// wins in task generation, and ties break toward earlier entries when
// scoring intents.
type pattern struct {
	name string
	re   *regexp.Regexp
}

// intentPatterns map family-command phrasings to intents. Evaluated in
// order over the lower-cased query.
var intentPatterns = []pattern{
	{"set_timer", regexp.MustCompile(`timer|set.*timer|start.*timer`)},
	{"set_reminder", regexp.MustCompile(`remind|reminder|don't forget|don't let me forget`)},
	{"add_to_shopping_list", regexp.MustCompile(`add.*shopping|shopping.*list|we need|we're out`)},
	{"control_device", regexp.MustCompile(`turn on|turn off|switch|lights`)},
	{"get_information", regexp.MustCompile(`what's|what is|when|weather|time|date|day`)},
	{"play_media", regexp.MustCompile(`play|put on|start playing|watch|listen`)},
	{"add_calendar_event", regexp.MustCompile(`calendar|schedule|add.*calendar`)},
	{"request_help", regexp.MustCompile(`help|what's.*homework|need help`)},
}

// paramPatterns extract task arguments from the lower-cased query. Each is
// tried independently of the detected intent, so an unrelated pattern can
// still populate a parameter.
var paramPatterns = []pattern{
	{"duration", regexp.MustCompile(`(\d+)\s*(?:minute|min|hour|hr)`)},
	{"time", regexp.MustCompile(`(?:at\s+)?(\d+(?::\d+)?\s*(?:am|pm)?|tomorrow|today|morning|afternoon|evening|in\s+\d+\s+hours?)`)},
	{"task", regexp.MustCompile(`(?:to\s+)?(pick up|call|take|feed|start|check|water)\s+[\w\s]+`)},
	{"item", regexp.MustCompile(`(?:add|need|get|out of)\s+([\w\s]+?)(?:\s+to|\s+on|$)`)},
	{"device", regexp.MustCompile(`(?:on|off)\s+([\w\s]+?)(?:\s+lights?|\s*$)|(\w+\s+lights?)`)},
	{"content", regexp.MustCompile(`play\s+([\w\s]+)|my\s+([\w\s]+)`)},
	{"event", regexp.MustCompile(`(?:add|schedule)\s+([\w\s]+?)(?:\s+to|\s+at|\s+for)`)},
	{"subject", regexp.MustCompile(`help.*with\s+(\w+)|(\w+)\s+homework`)},
}

// intentNames is the full intent vocabulary, used for noise sampling.
var intentNames = func() []string {
	names := make([]string, len(intentPatterns))
	for i, p := range intentPatterns {
		names[i] = p.name
	}
	return names
}()

// Intents returns the recognized intent vocabulary in pattern order.
func Intents() []string {
	out := make([]string, len(intentNames))
	copy(out, intentNames)
	return out
}

// scoreIntent picks the intent with the strictly highest count of
// non-overlapping matches. Earlier patterns win ties because a later equal
// score does not exceed the running maximum. ok is false when nothing
// matched.
func scoreIntent(query string) (string, bool) {
	detected := "unknown"
	maxScore := 0
	for _, p := range intentPatterns {
		if !p.re.MatchString(query) {
			continue
		}
		score := len(p.re.FindAllStringIndex(query, -1))
		if score > maxScore {
			maxScore = score
			detected = p.name
		}
	}
	return detected, maxScore > 0
}

// firstIntent returns the first pattern (in order) matching the query, or
// "unknown".
func firstIntent(query string) string {
	for _, p := range intentPatterns {
		if p.re.MatchString(query) {
			return p.name
		}
	}
	return "unknown"
}

// extractParams runs every parameter pattern against the query and keeps,
// per parameter, the first non-empty captured group (the whole match when
// no group captured), trimmed.
func extractParams(query string) map[string]string {
	params := map[string]string{}
	for _, p := range paramPatterns {
		m := p.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		value := m[0]
		for _, g := range m[1:] {
			if g != "" {
				value = g
				break
			}
		}
		params[p.name] = strings.TrimSpace(value)
	}
	return params
}

// inferPriority maps urgency words to a priority level.
func inferPriority(query string) string {
	switch {
	case strings.Contains(query, "urgent") || strings.Contains(query, "now"):
		return "high"
	case strings.Contains(query, "when you can") || strings.Contains(query, "maybe"):
		return "low"
	default:
		return "medium"
	}
}
