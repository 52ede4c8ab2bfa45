// Package store persists harness runs so evaluations and optimizations can
// be listed and inspected later. Implementations are SQLite or in-memory.
package store

// DefaultDBPath is the default relative path for the SQLite DB (per-workspace).
// Resolve against cwd; Open() creates the parent dir (e.g. .tasktune).
const DefaultDBPath = ".tasktune/tasktune.db"

// Run kinds.
const (
	KindEvaluate = "evaluate"
	KindOptimize = "optimize"
)

// Run is one recorded harness invocation: what was run, against which data,
// and the resulting scores. Payload holds the full JSON report for show.
type Run struct {
	ID        string
	Kind      string // evaluate | optimize
	Dataset   string // dataset file the run read
	Split     string // evaluated split (empty for optimize runs)
	Pipeline  string // pipeline variant
	Backend   string // model backend name
	Examples  int    // examples scored
	Score     float64
	Payload   string // full report as JSON
	CreatedAt string // RFC3339 UTC
}

// Store is the run-history facade. The CLI uses only this interface.
type Store interface {
	SaveRun(run *Run) (string, error)
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)
	Close() error
}
