// Package speech holds the domain vocabulary shared across the harness:
// spoken command examples, the canonical task shape, and pipeline results.
package speech

// Speaker contexts. The catalog renders different phrasings per speaker.
const (
	SpeakerParent = "parent"
	SpeakerChild  = "child"
	SpeakerTeen   = "teen"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Split names of a dataset file.
const (
	SplitTrain = "train"
	SplitDev   = "dev"
	SplitTest  = "test"
)

// Task is the canonical structured output of the pipeline: what the
// assistant should do, with what arguments, and how urgently.
type Task struct {
	Action     string            `json:"action"`
	Parameters map[string]string `json:"parameters"`
	Priority   string            `json:"priority"`
	Category   string            `json:"category,omitempty"`
}

// Example is one ground-truth sample: a spoken command plus the task it
// should produce. Immutable once loaded.
type Example struct {
	SpeechInput    string `json:"speech_input"`
	SpeakerContext string `json:"speaker_context"`
	Intent         string `json:"intent"`
	ExpectedTask   Task   `json:"expected_task"`
}

// Dataset is the on-disk shape: three named splits.
type Dataset struct {
	Train []Example `json:"train"`
	Dev   []Example `json:"dev"`
	Test  []Example `json:"test"`
}

// Result is what a pipeline produced for one command, before any task
// parsing. TaskJSON is the raw payload (free text or an already-structured
// map); Intent is set only by the two-stage variant and overrides the
// parsed task's action during scoring.
type Result struct {
	TaskJSON   any     `json:"task_json,omitempty"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Reasoning  string  `json:"reasoning,omitempty"`
}
