// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/tuiflip/internal/model"
)

const topRunCount = 5

// Run is a maximal sequence of equal outcomes in stored order.
type Run struct {
	Outcome model.Outcome
	Length  int
	// Index of the first (newest) record of the run in the scanned history.
	Start  int
	Newest int64
	Oldest int64
}

// Runs splits h into maximal runs of equal outcomes, in stored order.
func Runs(h model.History) []Run {
	var runs []Run
	for i, rec := range h {
		if len(runs) > 0 {
			last := &runs[len(runs)-1]
			if last.Outcome == rec.Outcome {
				last.Length++
				last.Oldest = rec.Timestamp
				continue
			}
		}
		runs = append(runs, Run{
			Outcome: rec.Outcome,
			Length:  1,
			Start:   i,
			Newest:  rec.Timestamp,
			Oldest:  rec.Timestamp,
		})
	}
	return runs
}

// TopRuns returns the n longest runs, most recent first among equals.
func TopRuns(h model.History, n int) []Run {
	if n <= 0 || len(h) == 0 {
		return nil
	}
	runs := Runs(h)
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Length == runs[j].Length {
			return runs[i].Start < runs[j].Start
		}
		return runs[i].Length > runs[j].Length
	})
	if n > len(runs) {
		n = len(runs)
	}
	return runs[:n]
}
