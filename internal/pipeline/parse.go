package pipeline

import (
	"encoding/json"
	"strconv"
	"strings"

	"tasktune/internal/speech"
)

// parseTaskResponse interprets one task-generation completion. A JSON object
// carrying a task_json key is treated as an envelope and unpacked; anything
// else stays on the result verbatim as the task payload.
func parseTaskResponse(raw string) *speech.Result {
	res := &speech.Result{TaskJSON: raw}

	cleaned := speech.StripFence(strings.TrimSpace(raw))
	var env map[string]any
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return res
	}
	payload, ok := env["task_json"]
	if !ok {
		return res
	}

	res.TaskJSON = payload
	if c, ok := env["confidence"].(float64); ok {
		res.Confidence = c
	}
	if r, ok := env["reasoning"].(string); ok {
		res.Reasoning = r
	}
	return res
}

// parseIntentResponse reads "key: value" lines from an intent-extraction
// completion. An unparsable confidence stays at zero.
func parseIntentResponse(raw string) (intent string, confidence float64) {
	for _, line := range strings.Split(raw, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "intent":
			intent = value
		case "confidence":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				confidence = f
			}
		}
	}
	return intent, confidence
}
