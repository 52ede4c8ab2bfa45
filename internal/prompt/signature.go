package prompt

// Field is one named input or output slot in a signature.
type Field struct {
	Name string
	Desc string
}

// Signature declares the contract of a single generative step: instruction
// text plus ordered input and output fields.
type Signature struct {
	Name        string
	Instruction string
	Inputs      []Field
	Outputs     []Field
}

// WithReasoning returns a copy of the signature whose outputs start with a
// reasoning field, turning a bare predictor into a chain-of-thought one.
func (s Signature) WithReasoning() Signature {
	outputs := make([]Field, 0, len(s.Outputs)+1)
	outputs = append(outputs, Field{
		Name: "reasoning",
		Desc: "Step by step reasoning before the final answer",
	})
	outputs = append(outputs, s.Outputs...)
	s.Outputs = outputs
	return s
}

// SpeechToIntent identifies the task intent behind one transcribed utterance.
var SpeechToIntent = Signature{
	Name:        "speech_to_intent",
	Instruction: "Extract intent from family speech command.",
	Inputs: []Field{
		{Name: "speech_input", Desc: "Raw speech transcription from family member"},
		{Name: "speaker_context", Desc: "Speaker context: parent, child, or teen"},
	},
	Outputs: []Field{
		{Name: "intent", Desc: "Identified task intent (e.g., set_timer, set_reminder)"},
		{Name: "confidence", Desc: "Confidence score between 0 and 1"},
	},
}

// IntentToTask turns a detected intent plus the original utterance into an
// executable task structure.
var IntentToTask = Signature{
	Name:        "intent_to_task",
	Instruction: "Convert intent to executable task structure.",
	Inputs: []Field{
		{Name: "intent", Desc: "Identified intent from speech"},
		{Name: "speech_input", Desc: "Original speech command"},
		{Name: "speaker_context", Desc: "Speaker context: parent, child, or teen"},
	},
	Outputs: []Field{
		{Name: "task_json", Desc: "Structured task in JSON format with action, parameters, and priority"},
	},
}

// SpeechToTaskDirect maps an utterance straight to a task in one step.
var SpeechToTaskDirect = Signature{
	Name:        "speech_to_task_direct",
	Instruction: "Direct conversion from speech to task (single-step).",
	Inputs: []Field{
		{Name: "speech_input", Desc: "Raw speech transcription from family member"},
		{Name: "speaker_context", Desc: "Speaker context: parent, child, or teen"},
	},
	Outputs: []Field{
		{Name: "task_json", Desc: "Complete task structure in JSON format"},
		{Name: "confidence", Desc: "Confidence score between 0 and 1"},
	},
}
