// Package oracle implements a deterministic, rule-based stand-in for a
// generative-text service. It inspects the instruction text it receives,
// locates the embedded command, and answers in the shape the instructions
// ask for: an intent line pair, a task JSON (bare or enveloped), or a plain
// echo. The only nondeterminism is an explicit, seedable noise probability.
package oracle

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// DefaultErrorRate is the probability of a simulated intent misrecognition
// when the caller does not choose one.
const DefaultErrorRate = 0.1

// Fixed confidence constants for intent-extraction responses.
const (
	confidenceHit   = 0.95
	confidenceMiss  = 0.3
	confidenceNoise = 0.6
)

// defaultHistorySize bounds the retained (prompt, response) exchanges.
const defaultHistorySize = 100

// Config controls a single Oracle instance. The random source is injected
// so determinism is a property of the call site, not of global seeding.
type Config struct {
	// ErrorRate is the probability of replacing a detected intent with a
	// random one during intent extraction. Zero disables noise entirely.
	ErrorRate float64
	// Seed seeds the internal random source when Rand is nil.
	Seed int64
	// Rand overrides the seeded source when set.
	Rand *rand.Rand
	// HistorySize bounds the exchange history (0 = default).
	HistorySize int
}

// Exchange is one recorded (prompt, response) pair.
type Exchange struct {
	Prompt   string
	Response string
}

// Oracle simulates generative responses from pattern rules. Safe for
// concurrent use: the invocation counter is atomic and the random source
// and history are mutex-guarded.
type Oracle struct {
	errorRate float64
	calls     atomic.Int64

	mu      sync.Mutex
	rng     *rand.Rand
	history []Exchange
	histCap int
}

// New returns an Oracle configured per cfg.
func New(cfg Config) *Oracle {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	histCap := cfg.HistorySize
	if histCap <= 0 {
		histCap = defaultHistorySize
	}
	return &Oracle{
		errorRate: cfg.ErrorRate,
		rng:       rng,
		histCap:   histCap,
	}
}

// Respond simulates one generative call. It never fails: instruction text
// it cannot make sense of yields a generic echo.
func (o *Oracle) Respond(text string) string {
	o.calls.Add(1)

	query := extractQuery(text)
	lower := strings.ToLower(text)

	var resp string
	switch {
	case strings.Contains(lower, "task_json") && strings.Contains(lower, "confidence"):
		resp = o.taskGeneration(query, lower)
	case strings.Contains(lower, "extract intent") ||
		(strings.Contains(lower, "intent") && strings.Contains(lower, "confidence")):
		resp = o.intentExtraction(query)
	case strings.Contains(lower, "convert") || strings.Contains(lower, "task"):
		resp = o.taskGeneration(query, lower)
	default:
		resp = "Processing: " + query
	}

	o.record(text, resp)
	return resp
}

// Calls returns the number of Respond invocations since construction or the
// last reset.
func (o *Oracle) Calls() int64 { return o.calls.Load() }

// ResetCalls zeroes the invocation counter.
func (o *Oracle) ResetCalls() { o.calls.Store(0) }

// History returns a copy of the most recent n exchanges (all when n <= 0).
func (o *Oracle) History(n int) []Exchange {
	o.mu.Lock()
	defer o.mu.Unlock()
	if n <= 0 || n > len(o.history) {
		n = len(o.history)
	}
	out := make([]Exchange, n)
	copy(out, o.history[len(o.history)-n:])
	return out
}

func (o *Oracle) record(prompt, resp string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, Exchange{Prompt: prompt, Response: resp})
	if len(o.history) > o.histCap {
		o.history = o.history[len(o.history)-o.histCap:]
	}
}

// speechMarkerRe matches the bracket-delimited speech_input field marker
// followed by its value line.
var speechMarkerRe = regexp.MustCompile(`(?i)\[\[\s*##\s*speech_input\s*##\s*\]\]\s*\n\s*([^\n\[]+)`)

// extractQuery locates the embedded command inside the instruction text.
// Priority: an explicit field line, then the bracket marker, then the last
// significant line, then the whole input.
func extractQuery(prompt string) string {
	lines := strings.Split(prompt, "\n")

	for _, line := range lines {
		low := strings.ToLower(line)
		if strings.Contains(low, "speech_input:") || strings.Contains(low, "command:") {
			if _, after, found := strings.Cut(line, ":"); found {
				return strings.TrimSpace(after)
			}
		}
	}

	if m := speechMarkerRe.FindStringSubmatch(prompt); m != nil {
		return strings.TrimSpace(m[1])
	}

	var last string
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s != "" && !strings.HasPrefix(s, "---") && !strings.HasPrefix(s, "##") {
			last = s
		}
	}
	if last != "" {
		return last
	}

	return prompt
}

// intentExtraction answers an intent request with two plain lines. Noise,
// when enabled, swaps in a uniformly drawn intent and pins confidence to
// the medium constant.
func (o *Oracle) intentExtraction(query string) string {
	detected, matched := scoreIntent(strings.ToLower(query))

	confidence := confidenceMiss
	if matched {
		confidence = confidenceHit
	}

	if o.errorRate > 0 {
		o.mu.Lock()
		if o.rng.Float64() < o.errorRate {
			detected = intentNames[o.rng.Intn(len(intentNames))]
			confidence = confidenceNoise
		}
		o.mu.Unlock()
	}

	return fmt.Sprintf("intent: %s\nconfidence: %s",
		detected, strconv.FormatFloat(confidence, 'g', -1, 64))
}

// simTask is the bare task object emitted in task-generation mode.
type simTask struct {
	Action     string            `json:"action"`
	Parameters map[string]string `json:"parameters"`
	Priority   string            `json:"priority"`
}

// envelope wraps the serialized task when the instructions ask for a
// confidence (and optionally a reasoning) field alongside it.
type envelope struct {
	Reasoning  string  `json:"reasoning,omitempty"`
	TaskJSON   string  `json:"task_json"`
	Confidence float64 `json:"confidence"`
}

// taskGeneration answers a task request. The envelope confidence band is
// separate from the noise path.
func (o *Oracle) taskGeneration(query, lowerPrompt string) string {
	q := strings.ToLower(query)

	intent := firstIntent(q)
	task := simTask{
		Action:     intent,
		Parameters: extractParams(q),
		Priority:   inferPriority(q),
	}

	if strings.Contains(lowerPrompt, "json") &&
		(strings.Contains(lowerPrompt, "task_json") || strings.Contains(lowerPrompt, "confidence")) {
		compact, _ := json.Marshal(task)

		o.mu.Lock()
		confidence := math.Round((0.85+o.rng.Float64()*0.1)*100) / 100
		o.mu.Unlock()

		env := envelope{TaskJSON: string(compact), Confidence: confidence}
		if strings.Contains(lowerPrompt, "reasoning") {
			env.Reasoning = fmt.Sprintf(
				"Detected intent '%s' from the speech command. Extracted parameters and determined priority as '%s'.",
				intent, task.Priority)
		}
		out, _ := json.MarshalIndent(env, "", "  ")
		return string(out)
	}

	out, _ := json.MarshalIndent(task, "", "  ")
	return string(out)
}
