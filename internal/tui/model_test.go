package tui

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiflip/internal/audio"
	"github.com/verte-zerg/tuiflip/internal/generator"
	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/store"
)

type testEnv struct {
	m     *Model
	store *store.Store
	bells *bytes.Buffer
}

func newTestEnv(t *testing.T, cfg model.Config, state model.State) testEnv {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuiflip.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if cfg.Coins == 0 {
		cfg.Coins = 1
	}
	if cfg.CoinType == "" {
		cfg.CoinType = model.CoinGold
	}
	clock := time.UnixMilli(1700000000000)
	gen := generator.NewWithSeed(7, func() time.Time { return clock })
	var bells bytes.Buffer
	m := NewModel(cfg, st, state, gen, audio.New(&bells, cfg.Muted))
	m.now = func() time.Time { return clock }
	return testEnv{m: m, store: st, bells: &bells}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFlipRequestRejectedWhileFlipping(t *testing.T) {
	env := newTestEnv(t, model.Config{Coins: 3, RevealMs: 300}, model.DefaultState())
	m := env.m

	if _, cmd := m.Update(key("space")); cmd == nil || !m.flipping {
		t.Fatalf("expected flip to start with a frame tick")
	}
	if _, cmd := m.Update(key("space")); cmd != nil {
		t.Fatalf("expected second flip request to be rejected")
	}
	if m.flipID != 1 || len(m.state.History) != 0 {
		t.Fatalf("unexpected state during flip: id=%d history=%d", m.flipID, len(m.state.History))
	}

	for i := 0; i < 3; i++ {
		m.Update(frameMsg{id: m.flipID})
	}
	if m.flipping {
		t.Fatalf("expected flip to finish after reveal frames")
	}
	if len(m.state.History) != 3 || len(m.lastBatch) != 3 {
		t.Fatalf("expected exactly one batch of 3, got %d records", len(m.state.History))
	}
	if env.bells.String() != "\a\a\a" {
		t.Fatalf("expected flip and result cues, got %q", env.bells.String())
	}

	state, err := env.store.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(state.History) != 3 {
		t.Fatalf("expected persisted batch, got %d records", len(state.History))
	}
}

func TestStaleFrameIgnored(t *testing.T) {
	env := newTestEnv(t, model.Config{RevealMs: 200}, model.DefaultState())
	m := env.m
	m.Update(key("space"))
	m.Update(frameMsg{id: 42})
	if m.frame != 0 || !m.flipping {
		t.Fatalf("expected stale frame to be ignored")
	}
}

func TestImmediateRevealTrimsHistory(t *testing.T) {
	env := newTestEnv(t, model.Config{MaxHistory: 2}, model.DefaultState())
	m := env.m
	for i := 0; i < 3; i++ {
		m.Update(key("enter"))
	}
	if len(m.state.History) != 2 {
		t.Fatalf("expected history trimmed to 2, got %d", len(m.state.History))
	}
	if m.all.TotalFlips != 2 {
		t.Fatalf("expected stats to follow the trimmed history, got %d", m.all.TotalFlips)
	}
}

func TestFlipKeysOnlyOnFlipTab(t *testing.T) {
	env := newTestEnv(t, model.Config{}, model.DefaultState())
	m := env.m
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabStats {
		t.Fatalf("expected statistics tab, got %d", m.activeTab)
	}
	m.Update(key("space"))
	if len(m.state.History) != 0 {
		t.Fatalf("expected no flip outside the flip tab")
	}
	m.Update(key("3"))
	if m.window != model.WindowWeek {
		t.Fatalf("expected week window, got %v", m.window)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	state := model.DefaultState()
	state.History = model.History{{Outcome: model.Heads, Timestamp: 1}}
	env := newTestEnv(t, model.Config{}, state)
	m := env.m
	m.activeTab = tabSettings
	m.settings.index = rowClear

	m.Update(key("enter"))
	if !m.settings.confirmClear {
		t.Fatalf("expected confirmation modal")
	}
	m.Update(key("q"))
	if !m.settings.confirmClear {
		t.Fatalf("expected modal to capture keys")
	}
	m.Update(key("n"))
	if m.settings.confirmClear || len(m.state.History) != 1 {
		t.Fatalf("expected cancel to keep history")
	}

	m.Update(key("enter"))
	m.Update(key("y"))
	if len(m.state.History) != 0 || m.all.TotalFlips != 0 {
		t.Fatalf("expected cleared history")
	}
	raw, _, err := env.store.Get(context.Background(), store.KeyResults)
	if err != nil || raw != "[]" {
		t.Fatalf("expected persisted empty results, got %q err=%v", raw, err)
	}
}

func TestEditLabels(t *testing.T) {
	env := newTestEnv(t, model.Config{}, model.DefaultState())
	m := env.m
	m.activeTab = tabSettings
	m.settings.index = rowHeadsName

	m.Update(key("enter"))
	if !m.settings.editing {
		t.Fatalf("expected name editing")
	}
	m.settings.nameInputs[0].SetValue("Yes")
	m.Update(key("enter"))
	if m.state.Labels.Heads != "Yes" {
		t.Fatalf("expected custom heads name, got %q", m.state.Labels.Heads)
	}

	m.Update(key("enter"))
	m.settings.nameInputs[0].SetValue("   ")
	m.Update(key("enter"))
	if m.state.Labels.Heads != "Heads" {
		t.Fatalf("expected blank name to fall back, got %q", m.state.Labels.Heads)
	}
	state, err := env.store.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if state.Labels != model.DefaultLabels() {
		t.Fatalf("unexpected persisted labels: %+v", state.Labels)
	}
}

func TestSettingsPersistPreferences(t *testing.T) {
	env := newTestEnv(t, model.Config{}, model.DefaultState())
	m := env.m
	m.activeTab = tabSettings
	m.settings.index = rowCoinType
	m.Update(key("enter"))
	m.settings.index = rowCoinCount
	m.Update(key("+"))
	m.Update(key("+"))
	m.Update(key("m"))
	m.Update(key("d"))

	state, err := env.store.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	want := model.Preferences{CoinType: model.CoinSilver, CoinCount: 3, Muted: true, DarkMode: true}
	if state.Preferences != want {
		t.Fatalf("expected %+v, got %+v", want, state.Preferences)
	}
	if !m.player.Muted() {
		t.Fatalf("expected player to be muted")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	state := model.DefaultState()
	state.History = model.History{
		{Outcome: model.Heads, Timestamp: 3},
		{Outcome: model.Heads, Timestamp: 2},
		{Outcome: model.Tails, Timestamp: 1},
	}
	env := newTestEnv(t, model.Config{Muted: true}, state)
	out := env.m.renderFooter()
	if !containsAll(out, []string{"Total 3", "Heads 67% · Tails 33%", "Streak 2× Heads", "Muted"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestResultLine(t *testing.T) {
	labels := model.Labels{Heads: "Up", Tails: "Down"}
	batch := []model.FlipRecord{{Outcome: model.Heads}, {Outcome: model.Tails}, {Outcome: model.Heads}}
	if got := resultLine(batch, labels); got != "2 Up / 1 Down" {
		t.Fatalf("unexpected batch summary %q", got)
	}
	if got := resultLine(batch[1:2], labels); got != "Down" {
		t.Fatalf("unexpected single result %q", got)
	}
}

func TestViewFillsWindow(t *testing.T) {
	env := newTestEnv(t, model.Config{}, model.DefaultState())
	m := env.m
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(key("space"))
	out := m.View()
	if lines := strings.Split(out, "\n"); len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "Flip") || !strings.Contains(out, "Total 1") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestStatisticsWindowFollowsClock(t *testing.T) {
	state := model.DefaultState()
	state.History = model.History{{Outcome: model.Heads, Timestamp: 1700000000000 - 60_000}}
	env := newTestEnv(t, model.Config{}, state)
	m := env.m

	m.Update(key("l"))
	m.Update(key("2"))
	if m.window != model.WindowToday || m.report.View.TotalFlips != 1 {
		t.Fatalf("expected today window with 1 flip, got %v with %d", m.window, m.report.View.TotalFlips)
	}

	later := time.UnixMilli(1700000000000).Add(48 * time.Hour)
	m.now = func() time.Time { return later }
	m.Update(key("h"))
	m.Update(key("l"))
	if m.report.View.TotalFlips != 0 {
		t.Fatalf("expected entering statistics to refresh the window, got %d flips", m.report.View.TotalFlips)
	}

	m.now = func() time.Time { return time.UnixMilli(1700000000000) }
	m.Update(key("r"))
	if m.report.View.TotalFlips != 1 {
		t.Fatalf("expected r to refresh the window, got %d flips", m.report.View.TotalFlips)
	}
}
