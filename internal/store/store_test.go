package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRun(kind, split string, score float64) *Run {
	return &Run{
		Kind:     kind,
		Dataset:  "data/simulated_commands.json",
		Split:    split,
		Pipeline: "direct",
		Backend:  "sim",
		Examples: 20,
		Score:    score,
		Payload:  `{"metric":"overall_accuracy","average_score":` + "0.91" + `}`,
	}
}

func TestSqlStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	run := sampleRun(KindEvaluate, "dev", 0.91)
	id, err := s.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" || run.ID != id {
		t.Fatalf("SaveRun id = %q, run.ID = %q", id, run.ID)
	}
	if run.CreatedAt == "" {
		t.Fatal("SaveRun left CreatedAt empty")
	}

	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("GetRun mismatch (-saved +got):\n%s", diff)
	}

	missing, err := s.GetRun("nope")
	if err != nil || missing != nil {
		t.Errorf("GetRun(nope) = %+v, %v, want nil, nil", missing, err)
	}
}

func TestSqlStoreListRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	// Fixed timestamps pin the newest-first ordering.
	for i, stamp := range []string{
		"2026-08-25T10:00:00Z",
		"2026-08-25T11:00:00Z",
		"2026-08-25T12:00:00Z",
	} {
		run := sampleRun(KindEvaluate, "dev", float64(i))
		run.CreatedAt = stamp
		if _, err := s.SaveRun(run); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns = %d runs, want 3", len(runs))
	}
	if runs[0].CreatedAt != "2026-08-25T12:00:00Z" || runs[2].CreatedAt != "2026-08-25T10:00:00Z" {
		t.Errorf("ListRuns order = %s .. %s, want newest first", runs[0].CreatedAt, runs[2].CreatedAt)
	}

	limited, err := s.ListRuns(2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("ListRuns(2) = %d runs, err %v", len(limited), err)
	}
	if limited[0].Score != 2 {
		t.Errorf("ListRuns(2)[0].Score = %v, want newest run", limited[0].Score)
	}
}

func TestSqlStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := s.SaveRun(sampleRun(KindOptimize, "", 0.95))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetRun(id)
	if err != nil || got == nil {
		t.Fatalf("GetRun after reopen = %+v, %v", got, err)
	}
	if got.Kind != KindOptimize || got.Split != "" {
		t.Errorf("reopened run = kind %q split %q, want optimize with empty split", got.Kind, got.Split)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	first := sampleRun(KindEvaluate, "train", 0.5)
	id, err := s.SaveRun(first)
	if err != nil || id == "" {
		t.Fatalf("SaveRun: id %q err %v", id, err)
	}
	if _, err := s.SaveRun(sampleRun(KindOptimize, "", 0.8)); err != nil {
		t.Fatalf("SaveRun second: %v", err)
	}

	got, err := s.GetRun(id)
	if err != nil || got == nil {
		t.Fatalf("GetRun = %+v, %v", got, err)
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("GetRun mismatch (-saved +got):\n%s", diff)
	}

	// Mutating the returned run must not touch the stored copy.
	got.Score = 99
	again, _ := s.GetRun(id)
	if again.Score != 0.5 {
		t.Errorf("stored run mutated through returned copy: score %v", again.Score)
	}

	runs, err := s.ListRuns(0)
	if err != nil || len(runs) != 2 {
		t.Fatalf("ListRuns = %d runs, err %v", len(runs), err)
	}
	if runs[0].Kind != KindOptimize {
		t.Errorf("ListRuns[0].Kind = %q, want newest first", runs[0].Kind)
	}
	limited, _ := s.ListRuns(1)
	if len(limited) != 1 || limited[0].Kind != KindOptimize {
		t.Errorf("ListRuns(1) = %+v, want single newest run", limited)
	}

	if missing, err := s.GetRun("nope"); err != nil || missing != nil {
		t.Errorf("GetRun(nope) = %+v, %v, want nil, nil", missing, err)
	}
}
