package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tasktune/internal/display"
	"tasktune/internal/format"
	"tasktune/internal/metrics"
	"tasktune/internal/optimize"
	"tasktune/internal/store"
)

func TestShortID(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", "6ba7b810"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, c := range cases {
		if got := shortID(c.id); got != c.want {
			t.Errorf("shortID(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestFindRunByPrefix(t *testing.T) {
	st := store.NewMemStore()
	for _, id := range []string{"aaaa1111-0000", "aabb2222-0000", "bbbb3333-0000"} {
		if _, err := st.SaveRun(&store.Run{
			ID:       id,
			Kind:     store.KindEvaluate,
			Dataset:  "data.json",
			Pipeline: "direct",
			Backend:  "sim",
		}); err != nil {
			t.Fatal(err)
		}
	}

	run, err := findRunByPrefix(st, "aaaa")
	if err != nil {
		t.Fatal(err)
	}
	if run == nil || run.ID != "aaaa1111-0000" {
		t.Fatalf("findRunByPrefix(aaaa) = %+v, want run aaaa1111-0000", run)
	}

	if _, err := findRunByPrefix(st, "aa"); err == nil {
		t.Error("ambiguous prefix should error")
	} else if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("ambiguous prefix error = %v", err)
	}

	run, err = findRunByPrefix(st, "zzzz")
	if err != nil {
		t.Fatal(err)
	}
	if run != nil {
		t.Errorf("unknown prefix matched %+v", run)
	}
}

func TestRenderComparison(t *testing.T) {
	comparison := map[string]optimize.MetricComparison{
		metrics.MetricIntentAccuracy: {
			Baseline: 0.80, Optimized: 0.90, Improvement: 0.10, ImprovementPct: 12.5,
		},
		metrics.MetricOverallAccuracy: {
			Baseline: 0.70, Optimized: 0.84, Improvement: 0.14, ImprovementPct: 20,
		},
	}

	got := renderComparison(comparison)
	for _, want := range []string{
		"Baseline vs Optimized Comparison",
		"Intent Accuracy",
		"Overall Accuracy",
		"80.00%",
		"90.00%",
		"+10.00%",
		"+14.00%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("comparison table missing %q:\n%s", want, got)
		}
	}
	// Metrics absent from the comparison are skipped, not rendered as zeros.
	if strings.Contains(got, "Parameter Accuracy") {
		t.Errorf("comparison table rendered a metric with no data:\n%s", got)
	}
}

func TestPrintOverallDelta(t *testing.T) {
	var buf bytes.Buffer
	printOverallDelta(&buf, map[string]optimize.MetricComparison{
		metrics.MetricOverallAccuracy: {
			Baseline: 0.80, Optimized: 0.90, Improvement: 0.10, ImprovementPct: 12.5,
		},
	})
	want := "Overall accuracy: 80.00% -> 90.00% (+12.5% relative)\n"
	if buf.String() != want {
		t.Errorf("delta line = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printOverallDelta(&buf, map[string]optimize.MetricComparison{})
	if buf.Len() != 0 {
		t.Errorf("delta printed without overall metric: %q", buf.String())
	}
}

func TestHistogramTable(t *testing.T) {
	counts := map[string]int{
		"set_timer":    5,
		"play_media":   2,
		"set_reminder": 5,
	}
	got := histogramTable(format.ASCII, "Intents", "Intent", counts, display.Intent)

	for _, want := range []string{"Intents", "Set Timer", "Set Reminder", "Play Media"} {
		if !strings.Contains(got, want) {
			t.Errorf("histogram missing %q:\n%s", want, got)
		}
	}
	// Most frequent first; equal counts ordered by raw name.
	reminder := strings.Index(got, "Set Reminder")
	timer := strings.Index(got, "Set Timer")
	media := strings.Index(got, "Play Media")
	if !(reminder < timer && timer < media) {
		t.Errorf("histogram order wrong (reminder=%d timer=%d media=%d):\n%s", reminder, timer, media, got)
	}
}

func TestBuildBackend(t *testing.T) {
	b, orcl, err := buildBackend(context.Background(), "sim", 0, 42, "")
	if err != nil {
		t.Fatal(err)
	}
	if b == nil {
		t.Error("sim backend is nil")
	}
	if orcl == nil {
		t.Error("sim backend did not expose its oracle")
	}

	if _, _, err := buildBackend(context.Background(), "parrot", 0, 42, ""); err == nil {
		t.Error("unknown backend name should error")
	}
}

func TestRecordRun(t *testing.T) {
	st := store.NewMemStore()
	id, err := recordRun(st, &store.Run{
		Kind:     store.KindEvaluate,
		Dataset:  "data.json",
		Split:    "dev",
		Pipeline: "direct",
		Backend:  "sim",
		Examples: 3,
		Score:    0.75,
	}, map[string]float64{"overall_accuracy": 0.75})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("recordRun returned empty ID")
	}

	run, err := st.GetRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if run == nil {
		t.Fatal("saved run not found")
	}
	if !strings.Contains(run.Payload, `"overall_accuracy": 0.75`) {
		t.Errorf("payload = %q, want embedded scores", run.Payload)
	}
}
