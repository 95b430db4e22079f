package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuiflip.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	now := time.UnixMilli(50 * model.DayMs)
	state := model.DefaultState()
	state.Labels = model.Labels{Heads: "Yes", Tails: "No"}
	state.History = model.History{
		{Outcome: model.Heads, Timestamp: now.UnixMilli() - 1000},
		{Outcome: model.Heads, Timestamp: now.UnixMilli() - 2000},
		{Outcome: model.Tails, Timestamp: now.UnixMilli() - 10*model.DayMs},
	}
	ctx := context.Background()
	if err := st.SaveState(ctx, state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Window: model.WindowWeek}, now)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.State.History) != 3 {
		t.Fatalf("expected full history in state, got %d", len(report.State.History))
	}
	if report.View.TotalFlips != 2 || report.View.HeadsRatio != 100 {
		t.Fatalf("unexpected week view: %+v", report.View)
	}
	if report.View.Labels.Heads != "Yes" {
		t.Fatalf("expected stored labels, got %+v", report.View.Labels)
	}
	if len(report.Runs) != 1 || report.Runs[0].Length != 2 {
		t.Fatalf("unexpected runs: %+v", report.Runs)
	}
}
