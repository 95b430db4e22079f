// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuiflip/internal/history"
	"github.com/verte-zerg/tuiflip/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Compute derives statistics for the window relative to the current time.
func Compute(h model.History, window model.TimeWindow, labels model.Labels) model.StatsView {
	return ComputeAt(h, window, labels, time.Now())
}

// ComputeAt derives statistics for the window relative to now.
func ComputeAt(h model.History, window model.TimeWindow, labels model.Labels, now time.Time) model.StatsView {
	filtered := Filter(h, window, now)
	view := model.StatsView{
		Window:     window,
		Labels:     labels.Normalize(),
		Filtered:   filtered,
		TotalFlips: len(filtered),
	}
	for _, rec := range filtered {
		if rec.Outcome == model.Heads {
			view.HeadsCount++
		} else {
			view.TailsCount++
		}
	}
	view.HeadsRatio = Percent(view.HeadsCount, view.TotalFlips)
	view.TailsRatio = Percent(view.TailsCount, view.TotalFlips)
	view.LongestHeadsStreak, view.LongestTailsStreak = LongestStreaks(filtered)
	return view
}

// Filter returns the records with timestamp >= the window threshold, in stored order.
func Filter(h model.History, window model.TimeWindow, now time.Time) model.History {
	threshold, ok := window.Threshold(now)
	if !ok {
		return append(model.History{}, h...)
	}
	out := make(model.History, 0, len(h))
	for _, rec := range h {
		if rec.Timestamp >= threshold {
			out = append(out, rec)
		}
	}
	return out
}

// Percent returns count/total as a whole percentage, 0 when total is 0.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// LongestStreaks scans h in its stored order and returns the longest run of
// each outcome. Runs are by position, so for a newest-first history they are
// runs of consecutive flips regardless of how far apart their timestamps are.
func LongestStreaks(h model.History) (heads, tails int) {
	if len(h) == 0 {
		return 0, 0
	}
	commit := func(o model.Outcome, run int) {
		if o == model.Heads {
			heads = max(heads, run)
		} else {
			tails = max(tails, run)
		}
	}
	current := h[0].Outcome
	run := 1
	for _, rec := range h[1:] {
		if rec.Outcome == current {
			run++
			continue
		}
		commit(current, run)
		current = rec.Outcome
		run = 1
	}
	commit(current, run)
	return heads, tails
}

// RunningRatio returns the heads percentage after each flip, oldest first.
func RunningRatio(h model.History) []float64 {
	chrono := history.Chronological(h)
	out := make([]float64, len(chrono))
	heads := 0
	for i, rec := range chrono {
		if rec.Outcome == model.Heads {
			heads++
		}
		out[i] = float64(heads) / float64(i+1) * 100
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for values on a 0-100 scale.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		v = math.Max(0, math.Min(100, v))
		idx := int(math.Round(v / 100 * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a plain-text report for a stats view.
func RenderSummary(w io.Writer, view model.StatsView) error {
	if _, err := fmt.Fprintf(w, "Statistics (%s)\n", view.Window.Title()); err != nil {
		return err
	}
	if view.TotalFlips == 0 {
		_, err := fmt.Fprintln(w, "No flips recorded yet. Start flipping coins to see statistics!")
		return err
	}
	labels := view.Labels.Normalize()
	lines := []string{
		fmt.Sprintf("Total Flips: %d", view.TotalFlips),
		fmt.Sprintf("Ratio: %d%% / %d%%", view.HeadsRatio, view.TailsRatio),
		fmt.Sprintf("%s: %d", labels.Heads, view.HeadsCount),
		fmt.Sprintf("%s: %d", labels.Tails, view.TailsCount),
		fmt.Sprintf("Longest %s streak: %d", labels.Heads, view.LongestHeadsStreak),
		fmt.Sprintf("Longest %s streak: %d", labels.Tails, view.LongestTailsStreak),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend plots the running heads ratio of the view.
func RenderTrend(w io.Writer, view model.StatsView, window, totalWidth, height int, useColor bool) error {
	if view.TotalFlips == 0 {
		return nil
	}
	ratio := MovingAverage(RunningRatio(view.Filtered), window)
	even := make([]float64, len(ratio))
	for i := range even {
		even[i] = 50
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	labels := view.Labels.Normalize()
	return PlotPercent(w, fmt.Sprintf("%s ratio over time", labels.Heads), []Series{
		{Name: labels.Heads + " %", Values: ratio},
		{Name: "50%", Values: even, Dashed: true},
	}, width, height, useColor)
}
