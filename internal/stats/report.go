// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	State model.State
	View  model.StatsView
	Runs  []Run
}

// BuildReport loads the persisted state and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	state, err := st.LoadState(ctx)
	if err != nil {
		return Report{}, err
	}
	return NewReport(state, cfg.Window, now), nil
}

// NewReport derives a report from an already loaded state.
func NewReport(state model.State, window model.TimeWindow, now time.Time) Report {
	view := ComputeAt(state.History, window, state.Labels, now)
	return Report{
		State: state,
		View:  view,
		Runs:  TopRuns(view.Filtered, topRunCount),
	}
}
