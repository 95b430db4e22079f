package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotPercent(t *testing.T) {
	var buf bytes.Buffer
	err := PlotPercent(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{0, 25, 50, 100}},
		{Name: "B", Values: []float64{50, 50, 50, 50}, Dashed: true},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotPercent failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend: A  B") {
		t.Fatalf("expected legend in output: %s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines of output, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "100%") || !strings.HasPrefix(lines[4], "  0%") {
		t.Fatalf("unexpected axis labels: %q %q", lines[1], lines[4])
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes when color is not forced")
	}
}

func TestPlotPercentEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotPercent(&buf, "Empty", nil, 10, 4, false); err != nil {
		t.Fatalf("PlotPercent failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series")
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
