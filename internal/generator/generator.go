// Package generator produces batches of coin tosses.
package generator

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/verte-zerg/tuiflip/internal/model"
)

// ErrInvalidCount is returned when a batch of fewer than one coin is requested.
var ErrInvalidCount = errors.New("coin count must be > 0")

// Generator produces fair coin tosses. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time

	// unused random bits from the last draw, consumed LSB first.
	bits  uint64
	nbits int
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewWithSeed(seed, time.Now)
}

// NewWithSeed returns a deterministic Generator using now for timestamps.
func NewWithSeed(seed uint64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Toss returns a single outcome with probability 0.5 each.
func (g *Generator) Toss() model.Outcome {
	if g.nbits == 0 {
		g.bits = g.rnd.Uint64()
		g.nbits = 64
	}
	g.nbits--
	bit := g.bits & 1
	g.bits >>= 1
	if bit == 1 {
		return model.Tails
	}
	return model.Heads
}

// Batch generates count records stamped with the current instant.
func (g *Generator) Batch(count int) ([]model.FlipRecord, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	ts := g.now().UnixMilli()
	batch := make([]model.FlipRecord, count)
	for i := range batch {
		batch[i] = model.FlipRecord{Outcome: g.Toss(), Timestamp: ts}
	}
	return batch, nil
}
