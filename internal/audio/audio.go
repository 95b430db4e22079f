// Package audio plays the flip and result cues.
//
// The cues are terminal bells written to the owned output. A Service is
// created by the command that runs the UI and passed in explicitly; nothing
// in the engine depends on it.
package audio

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/verte-zerg/tuiflip/internal/logger"
)

const bell = "\a"

// Player plays the cues of a flip.
type Player interface {
	Flip()
	Result()
	SetMuted(muted bool)
	Muted() bool
}

// Service rings the terminal bell on w unless muted.
type Service struct {
	mu    sync.Mutex
	w     io.Writer
	muted bool
}

// New creates a Service writing to w.
func New(w io.Writer, muted bool) *Service {
	return &Service{w: w, muted: muted}
}

// Flip plays the cue for the start of a flip.
func (s *Service) Flip() {
	s.play("flip", 1)
}

// Result plays the cue for a revealed result.
func (s *Service) Result() {
	s.play("result", 2)
}

// SetMuted toggles playback.
func (s *Service) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

// Muted reports whether playback is off.
func (s *Service) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Service) play(cue string, bells int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted || s.w == nil {
		return
	}
	if _, err := io.WriteString(s.w, strings.Repeat(bell, bells)); err != nil {
		logger.Warn("failed to play %s sound: %v", cue, err)
	}
}

// SyncOutput is a terminal shared by the UI renderer and the bell. Every
// write holds the lock, so a bell never lands inside a rendered frame.
// It keeps the file's descriptor so the renderer still detects a TTY.
type SyncOutput struct {
	*os.File
	mu sync.Mutex
}

// NewSyncOutput wraps f.
func NewSyncOutput(f *os.File) *SyncOutput {
	return &SyncOutput{File: f}
}

func (o *SyncOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.Write(p)
}

func (o *SyncOutput) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}

// Noop is a Player that never makes a sound.
type Noop struct {
	muted bool
}

// NewNoop returns a silent Player.
func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Flip()               {}
func (n *Noop) Result()             {}
func (n *Noop) SetMuted(muted bool) { n.muted = muted }
func (n *Noop) Muted() bool         { return n.muted }
