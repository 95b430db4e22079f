package generator

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/tuiflip/internal/model"
)

func TestBatchLengthAndOutcomes(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewWithSeed(42, func() time.Time { return fixed })
	for _, count := range []int{1, 2, 10, 65, 1000} {
		batch, err := gen.Batch(count)
		if err != nil {
			t.Fatalf("batch(%d): %v", count, err)
		}
		if len(batch) != count {
			t.Fatalf("expected %d records, got %d", count, len(batch))
		}
		for _, rec := range batch {
			if !rec.Outcome.Valid() {
				t.Fatalf("invalid outcome %v", rec.Outcome)
			}
			if rec.Timestamp != fixed.UnixMilli() {
				t.Fatalf("expected timestamp %d, got %d", fixed.UnixMilli(), rec.Timestamp)
			}
		}
	}
}

func TestBatchRejectsNonPositiveCount(t *testing.T) {
	gen := New()
	for _, count := range []int{0, -1} {
		batch, err := gen.Batch(count)
		if !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("batch(%d): expected ErrInvalidCount, got %v", count, err)
		}
		if batch != nil {
			t.Fatalf("batch(%d): expected no records", count)
		}
	}
}

func TestTossIsBalanced(t *testing.T) {
	gen := NewWithSeed(uint64(time.Now().UnixNano()), nil)
	const samples = 100000
	heads := 0
	for i := 0; i < samples; i++ {
		if gen.Toss() == model.Heads {
			heads++
		}
	}
	frac := float64(heads) / samples
	if frac < 0.48 || frac > 0.52 {
		t.Fatalf("heads fraction %.4f outside tolerance", frac)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a := NewWithSeed(7, nil)
	b := NewWithSeed(7, nil)
	batchA, _ := a.Batch(200)
	batchB, _ := b.Batch(200)
	for i := range batchA {
		if batchA[i].Outcome != batchB[i].Outcome {
			t.Fatalf("outcome %d differs for equal seeds", i)
		}
	}
}
