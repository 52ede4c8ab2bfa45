package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tasktune/internal/speech"
)

// FormatResult renders a prediction for terminal display. An unparsable
// payload is reported with the raw completion attached.
func FormatResult(res *speech.Result) string {
	task, ok := speech.ParseTaskPayload(res.TaskJSON)
	if !ok {
		return fmt.Sprintf("Error: Could not parse task\nRaw output: %v", res.TaskJSON)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Action: %v\n", fieldOrUnknown(task, "action"))
	fmt.Fprintf(&b, "Priority: %v\n", fieldOrUnknown(task, "priority"))

	if params, ok := task["parameters"].(map[string]any); ok && len(params) > 0 {
		b.WriteString("Parameters:\n")
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, params[k])
		}
	}

	fmt.Fprintf(&b, "Confidence: %s", strconv.FormatFloat(res.Confidence, 'g', -1, 64))
	return b.String()
}

func fieldOrUnknown(task map[string]any, key string) any {
	if v, ok := task[key]; ok {
		return v
	}
	return "unknown"
}
