package history

import (
	"testing"

	"github.com/verte-zerg/tuiflip/internal/model"
)

func rec(o model.Outcome, ts int64) model.FlipRecord {
	return model.FlipRecord{Outcome: o, Timestamp: ts}
}

func TestAppendPrependsBatch(t *testing.T) {
	h := model.History{rec(model.Tails, 1), rec(model.Heads, 0)}
	batch := []model.FlipRecord{rec(model.Heads, 2), rec(model.Tails, 2)}

	out := Append(h, batch)
	if len(out) != len(h)+len(batch) {
		t.Fatalf("expected %d records, got %d", len(h)+len(batch), len(out))
	}
	for i := range batch {
		if out[i] != batch[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, batch[i], out[i])
		}
	}
	if out[2] != h[0] || out[3] != h[1] {
		t.Fatalf("expected prior history after batch: %+v", out)
	}

	out[2] = rec(model.Heads, 99)
	if h[0].Timestamp != 1 {
		t.Fatalf("append aliased the original history")
	}
	out[0] = rec(model.Tails, 99)
	if batch[0].Timestamp != 2 {
		t.Fatalf("append aliased the batch")
	}
}

func TestAppendToEmpty(t *testing.T) {
	out := Append(nil, []model.FlipRecord{rec(model.Heads, 1)})
	if len(out) != 1 || out[0].Outcome != model.Heads {
		t.Fatalf("unexpected history: %+v", out)
	}
}

func TestClear(t *testing.T) {
	h := Clear()
	if h == nil || len(h) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", h)
	}
}

func TestTrimKeepsNewest(t *testing.T) {
	h := model.History{rec(model.Heads, 3), rec(model.Tails, 2), rec(model.Heads, 1)}
	out := Trim(h, 2)
	if len(out) != 2 || out[0].Timestamp != 3 || out[1].Timestamp != 2 {
		t.Fatalf("unexpected trimmed history: %+v", out)
	}
	if got := Trim(h, 0); len(got) != 3 {
		t.Fatalf("expected unbounded trim to keep all, got %d", len(got))
	}
}

func TestLatestAndCurrentStreak(t *testing.T) {
	h := model.History{rec(model.Tails, 4), rec(model.Tails, 3), rec(model.Heads, 2), rec(model.Tails, 1)}
	if got := Latest(h, 2); len(got) != 2 || got[1].Timestamp != 3 {
		t.Fatalf("unexpected latest: %+v", got)
	}
	if got := Latest(h, 10); len(got) != 4 {
		t.Fatalf("expected latest to cap at history length, got %d", len(got))
	}
	o, n := CurrentStreak(h)
	if o != model.Tails || n != 2 {
		t.Fatalf("expected tails streak of 2, got %v %d", o, n)
	}
	if _, n := CurrentStreak(nil); n != 0 {
		t.Fatalf("expected empty streak, got %d", n)
	}
}

func TestChronological(t *testing.T) {
	h := model.History{rec(model.Tails, 3), rec(model.Heads, 2), rec(model.Heads, 1)}
	out := Chronological(h)
	if out[0].Timestamp != 1 || out[2].Timestamp != 3 {
		t.Fatalf("unexpected order: %+v", out)
	}
	if h[0].Timestamp != 3 {
		t.Fatalf("chronological mutated input")
	}
}

func TestMerge(t *testing.T) {
	a := model.History{rec(model.Heads, 5), rec(model.Heads, 2)}
	b := model.History{rec(model.Tails, 4), rec(model.Tails, 2)}
	out := Merge(a, b)
	want := []int64{5, 4, 2, 2}
	for i, ts := range want {
		if out[i].Timestamp != ts {
			t.Fatalf("index %d: expected %d, got %d", i, ts, out[i].Timestamp)
		}
	}
	if out[2].Outcome != model.Heads || out[3].Outcome != model.Tails {
		t.Fatalf("expected equal timestamps to keep a before b: %+v", out)
	}
}

func TestMergeSkipsRecordsAlreadyPresent(t *testing.T) {
	stored := model.History{rec(model.Heads, 7), rec(model.Heads, 7), rec(model.Tails, 3)}
	again := Merge(stored, stored)
	if len(again) != len(stored) {
		t.Fatalf("expected re-merge to keep %d records, got %d: %+v", len(stored), len(again), again)
	}

	batch := model.History{rec(model.Heads, 7), rec(model.Heads, 7), rec(model.Heads, 7), rec(model.Tails, 9)}
	out := Merge(stored, batch)
	heads7 := 0
	for _, r := range out {
		if r == rec(model.Heads, 7) {
			heads7++
		}
	}
	if heads7 != 3 || len(out) != 5 {
		t.Fatalf("expected 3 heads@7 and 5 records, got %d and %d: %+v", heads7, len(out), out)
	}
	if out[0] != rec(model.Tails, 9) {
		t.Fatalf("expected newest record first, got %+v", out[0])
	}
	if len(stored) != 3 || len(batch) != 4 {
		t.Fatalf("inputs modified: %+v %+v", stored, batch)
	}
}
