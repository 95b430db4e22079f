// Package history accumulates flip records without mutating prior values.
package history

import (
	"sort"

	"github.com/verte-zerg/tuiflip/internal/model"
)

// Append returns a new history with batch prepended in its own order.
// Neither argument is modified or aliased by the result.
func Append(h model.History, batch []model.FlipRecord) model.History {
	out := make(model.History, 0, len(batch)+len(h))
	out = append(out, batch...)
	out = append(out, h...)
	return out
}

// Clear returns an empty history.
func Clear() model.History {
	return model.History{}
}

// Trim keeps the newest limit records. limit <= 0 keeps everything.
func Trim(h model.History, limit int) model.History {
	if limit <= 0 || len(h) <= limit {
		return append(model.History{}, h...)
	}
	return append(model.History{}, h[:limit]...)
}

// Latest returns a copy of the newest n records.
func Latest(h model.History, n int) model.History {
	if n <= 0 {
		return model.History{}
	}
	if n > len(h) {
		n = len(h)
	}
	return append(model.History{}, h[:n]...)
}

// CurrentStreak returns the outcome and length of the run at the head of h.
func CurrentStreak(h model.History) (model.Outcome, int) {
	if len(h) == 0 {
		return model.Heads, 0
	}
	first := h[0].Outcome
	n := 1
	for n < len(h) && h[n].Outcome == first {
		n++
	}
	return first, n
}

// Chronological returns a copy of h ordered oldest first.
func Chronological(h model.History) model.History {
	out := make(model.History, len(h))
	for i, rec := range h {
		out[len(h)-1-i] = rec
	}
	return out
}

// Merge combines two histories into one ordered newest first. Records with
// equal timestamps keep a before b, each in its own order.
//
// A record of b that matches an unclaimed record of a (same outcome and
// timestamp) is already present and is skipped, so merging the same export
// twice leaves the history unchanged. Repeated records within a batch are
// kept as long as b holds more copies than a.
func Merge(a, b model.History) model.History {
	seen := make(map[model.FlipRecord]int, len(a))
	for _, rec := range a {
		seen[rec]++
	}
	out := make(model.History, 0, len(a)+len(b))
	out = append(out, a...)
	for _, rec := range b {
		if seen[rec] > 0 {
			seen[rec]--
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}
