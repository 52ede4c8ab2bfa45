package format_test

import (
	"strings"
	"testing"
	"time"

	"tasktune/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Metric", "Score")
	tb.Row("intent_accuracy", "95.00%")
	tb.Row("parameter_accuracy", "88.00%")
	out := tb.String()

	if !strings.Contains(out, "Metric") {
		t.Errorf("expected header 'Metric' in output:\n%s", out)
	}
	if !strings.Contains(out, "intent_accuracy") {
		t.Errorf("expected 'intent_accuracy' in output:\n%s", out)
	}
	if !strings.Contains(out, "95.00%") {
		t.Errorf("expected '95.00%%' in output:\n%s", out)
	}
	// ASCII uses box-drawing characters from StyleLight
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Metric", "Baseline", "Optimized")
	tb.Row("overall_accuracy", "61.00%", "74.00%")
	out := tb.String()

	if !strings.Contains(out, "| Metric") {
		t.Errorf("expected markdown header with '| Metric':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "overall_accuracy") {
		t.Errorf("expected 'overall_accuracy' in output:\n%s", out)
	}
}

func TestTitle(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Title("Evaluation Results (dev)")
	tb.Header("Metric", "Score")
	tb.Row("overall_accuracy", "61.00%")
	out := tb.String()

	if !strings.Contains(out, "Evaluation Results (dev)") {
		t.Errorf("expected title in output:\n%s", out)
	}
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Split", "Examples")
	tb.Row("train", 60)
	tb.Row("dev", 20)
	tb.Footer("TOTAL", 80)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") {
		t.Errorf("expected footer 'TOTAL' in output:\n%s", out)
	}
	if !strings.Contains(out, "80") {
		t.Errorf("expected footer value '80' in output:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Name", "Count")
	tb.Row("set_timer", 12345)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	if !strings.Contains(out, "12345") {
		t.Errorf("expected '12345' in output:\n%s", out)
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}

	ascii := build(format.ASCII)
	md := build(format.Markdown)

	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

// --- Helper tests ---

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00%"},
		{0.5, "50.00%"},
		{0.8567, "85.67%"},
		{1, "100.00%"},
	}
	for _, tc := range tests {
		got := format.Percent(tc.in)
		if got != tc.want {
			t.Errorf("Percent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignedPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1234, "+12.34%"},
		{-0.03, "-3.00%"},
		{0, "+0.00%"},
	}
	for _, tc := range tests {
		got := format.SignedPercent(tc.in)
		if got != tc.want {
			t.Errorf("SignedPercent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignedPoints(t *testing.T) {
	if got := format.SignedPoints(14.52); got != "+14.5%" {
		t.Errorf("SignedPoints(14.52) = %q, want %q", got, "+14.5%")
	}
	if got := format.SignedPoints(-2.0); got != "-2.0%" {
		t.Errorf("SignedPoints(-2.0) = %q, want %q", got, "-2.0%")
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{59 * time.Second, "59.0s"},
		{60 * time.Second, "1m 0s"},
		{90 * time.Second, "1m 30s"},
	}
	for _, tc := range tests {
		got := format.FmtDuration(tc.in)
		if got != tc.want {
			t.Errorf("FmtDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
