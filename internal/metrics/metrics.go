// Package metrics scores pipeline predictions against labeled examples and
// evaluates whole splits.
package metrics

import (
	"fmt"
	"strings"

	"tasktune/internal/speech"
)

// Metric names, in evaluation order.
const (
	MetricIntentAccuracy    = "intent_accuracy"
	MetricParameterAccuracy = "parameter_accuracy"
	MetricTaskCompleteness  = "task_completeness"
	MetricOverallAccuracy   = "overall_accuracy"
)

// Func scores one prediction against its labeled example, in [0, 1].
type Func func(ex speech.Example, res *speech.Result) float64

var metricOrder = []string{
	MetricIntentAccuracy,
	MetricParameterAccuracy,
	MetricTaskCompleteness,
	MetricOverallAccuracy,
}

var metricFuncs = map[string]Func{
	MetricIntentAccuracy:    IntentAccuracy,
	MetricParameterAccuracy: ParameterAccuracy,
	MetricTaskCompleteness:  TaskCompleteness,
	MetricOverallAccuracy:   OverallAccuracy,
}

// Names lists the known metrics in evaluation order.
func Names() []string {
	out := make([]string, len(metricOrder))
	copy(out, metricOrder)
	return out
}

// ByName resolves a metric name.
func ByName(name string) (Func, error) {
	fn, ok := metricFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (want one of %s)", name, strings.Join(metricOrder, ", "))
	}
	return fn, nil
}

// IntentAccuracy is 1.0 when the predicted intent matches the label. A
// stage-one intent on the result takes precedence; otherwise the action
// field of the task payload is compared.
func IntentAccuracy(ex speech.Example, res *speech.Result) float64 {
	predicted := res.Intent
	if predicted == "" {
		task, ok := speech.ParseTaskPayload(res.TaskJSON)
		if !ok {
			return 0
		}
		predicted, _ = task["action"].(string)
	}
	if predicted == ex.Intent {
		return 1
	}
	return 0
}

// ParameterAccuracy is the fraction of expected parameters the prediction
// carries. Values compare case-insensitively and count as a match when
// either side contains the other. With nothing expected, an empty
// prediction scores 1.0 and a non-empty one 0.5.
func ParameterAccuracy(ex speech.Example, res *speech.Result) float64 {
	task, ok := speech.ParseTaskPayload(res.TaskJSON)
	if !ok {
		return 0
	}
	predicted, _ := task["parameters"].(map[string]any)
	expected := ex.ExpectedTask.Parameters

	if len(expected) == 0 {
		if len(predicted) == 0 {
			return 1
		}
		return 0.5
	}

	matches := 0
	for key, want := range expected {
		got, ok := predicted[key]
		if !ok {
			continue
		}
		if fuzzyEqual(fmt.Sprintf("%v", got), want) {
			matches++
		}
	}
	return float64(matches) / float64(len(expected))
}

// TaskCompleteness is the fraction of the required action, parameters, and
// priority fields present on the task payload. Values are not inspected.
func TaskCompleteness(_ speech.Example, res *speech.Result) float64 {
	task, ok := speech.ParseTaskPayload(res.TaskJSON)
	if !ok {
		return 0
	}
	required := []string{"action", "parameters", "priority"}
	present := 0
	for _, field := range required {
		if _, ok := task[field]; ok {
			present++
		}
	}
	return float64(present) / float64(len(required))
}

// OverallAccuracy combines the component metrics, weighting intent at 0.5,
// parameters at 0.3, and completeness at 0.2.
func OverallAccuracy(ex speech.Example, res *speech.Result) float64 {
	return 0.5*IntentAccuracy(ex, res) +
		0.3*ParameterAccuracy(ex, res) +
		0.2*TaskCompleteness(ex, res)
}

func fuzzyEqual(got, want string) bool {
	g := strings.TrimSpace(strings.ToLower(got))
	w := strings.TrimSpace(strings.ToLower(want))
	return g == w || strings.Contains(w, g) || strings.Contains(g, w)
}
