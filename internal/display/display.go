// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and logs. Keep raw codes for JSON
// fields, map keys, and equality comparisons.
package display

// --- Intents ---

var intents = map[string]string{
	"set_timer":            "Set Timer",
	"set_reminder":         "Set Reminder",
	"add_to_shopping_list": "Add to Shopping List",
	"control_device":       "Control Device",
	"get_information":      "Get Information",
	"play_media":           "Play Media",
	"add_calendar_event":   "Add Calendar Event",
	"request_help":         "Request Help",
	"unknown":              "Unknown",
}

// Intent returns the human-readable name for an intent code.
// Unknown codes are returned as-is.
func Intent(code string) string {
	if name, ok := intents[code]; ok {
		return name
	}
	return code
}

// IntentWithCode returns "Set Timer (set_timer)" format.
func IntentWithCode(code string) string {
	if name, ok := intents[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Metrics ---

var metrics = map[string]string{
	"intent_accuracy":    "Intent Accuracy",
	"parameter_accuracy": "Parameter Accuracy",
	"task_completeness":  "Task Completeness",
	"overall_accuracy":   "Overall Accuracy",
}

// Metric returns the human-readable name for a metric code.
// "intent_accuracy" -> "Intent Accuracy".
func Metric(code string) string {
	if name, ok := metrics[code]; ok {
		return name
	}
	return code
}

// --- Speakers ---

var speakers = map[string]string{
	"parent": "Parent",
	"child":  "Child",
	"teen":   "Teen",
}

// Speaker returns the human-readable name for a speaker context.
func Speaker(code string) string {
	if name, ok := speakers[code]; ok {
		return name
	}
	return code
}

// --- Priorities ---

var priorities = map[string]string{
	"low":    "Low",
	"medium": "Medium",
	"high":   "High",
}

// Priority returns the human-readable name for a task priority.
func Priority(code string) string {
	if name, ok := priorities[code]; ok {
		return name
	}
	return code
}

// --- Pipeline variants ---

var variants = map[string]string{
	"two-stage": "Two-Stage",
	"direct":    "Direct",
	"simple":    "Simple",
}

// Variant returns the human-readable name for a pipeline variant.
func Variant(code string) string {
	if name, ok := variants[code]; ok {
		return name
	}
	return code
}

// --- Backends ---

var backends = map[string]string{
	"sim":    "Simulated",
	"gemini": "Gemini",
}

// Backend returns the human-readable name for a model backend.
func Backend(code string) string {
	if name, ok := backends[code]; ok {
		return name
	}
	return code
}
