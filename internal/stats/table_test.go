package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/tuiflip/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Result", "Length"}
	rows := [][]string{
		{"1", "Heads", "12"},
		{"10", "表", "3"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Result Length" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1 Heads      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 表          3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderHistoryTableLimit(t *testing.T) {
	h := model.History{
		{Outcome: model.Heads, Timestamp: 3000},
		{Outcome: model.Tails, Timestamp: 2000},
		{Outcome: model.Tails, Timestamp: 1000},
	}
	var buf bytes.Buffer
	if err := RenderHistoryTable(&buf, h, model.Labels{Heads: "Up", Tails: "Down"}, 2); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Recent Flips") || !strings.Contains(out, "Up") {
		t.Fatalf("unexpected output: %s", out)
	}
	if strings.Count(out, "Down") != 1 {
		t.Fatalf("expected limit to cut the table to 2 rows: %s", out)
	}
}
