// Package tui provides the Bubble Tea coin flip interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiflip/internal/audio"
	"github.com/verte-zerg/tuiflip/internal/generator"
	"github.com/verte-zerg/tuiflip/internal/history"
	"github.com/verte-zerg/tuiflip/internal/logger"
	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/stats"
	"github.com/verte-zerg/tuiflip/internal/statsui"
	"github.com/verte-zerg/tuiflip/internal/store"
)

const (
	tabFlip = iota
	tabStats
	tabSettings
)

const (
	frameInterval = 100 * time.Millisecond
	stripLimit    = 60
)

type frameMsg struct {
	id int
}

// Model implements the Bubble Tea flip UI.
type Model struct {
	config model.Config
	store  *store.Store
	gen    *generator.Generator
	player audio.Player
	now    func() time.Time

	state  model.State
	window model.TimeWindow
	report stats.Report
	all    model.StatsView

	tabs      []string
	activeTab int
	statsView viewport.Model

	width  int
	height int

	flipping     bool
	flipID       int
	frame        int
	pendingCount int
	lastBatch    []model.FlipRecord

	settings settingsForm

	errMsg string
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))

// NewModel constructs a flip TUI model. cfg holds the resolved settings and
// state the history restored from st.
func NewModel(cfg model.Config, st *store.Store, state model.State, gen *generator.Generator, player audio.Player) *Model {
	if player == nil {
		player = audio.NewNoop()
	}
	state.Labels = cfg.Labels.Normalize()
	state.Preferences = model.Preferences{
		CoinType:  cfg.CoinType,
		CoinCount: cfg.Coins,
		Muted:     cfg.Muted,
		DarkMode:  cfg.DarkMode,
	}
	player.SetMuted(cfg.Muted)
	m := &Model{
		config:    cfg,
		store:     st,
		gen:       gen,
		player:    player,
		now:       time.Now,
		state:     state,
		tabs:      []string{"Flip", "Statistics", "Settings"},
		statsView: viewport.New(0, 0),
	}
	if m.state.History == nil {
		m.state.History = history.Clear()
	}
	m.lastBatch = history.Latest(m.state.History, m.state.Preferences.CoinCount)
	m.settings = newSettingsForm(m.state.Labels)
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case frameMsg:
		return m, m.handleFrame(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.activeTab == tabSettings && m.settings.capturing() {
			return m, m.updateSettings(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l":
			m.moveTab(1)
			return m, nil
		case "m":
			m.toggleMute()
			return m, nil
		case "d":
			m.toggleTheme()
			return m, nil
		}
		switch m.activeTab {
		case tabFlip:
			if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
				return m, m.requestFlip()
			}
		case tabStats:
			return m, m.updateStats(msg)
		case tabSettings:
			return m, m.updateSettings(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderTab()
	if m.width == 0 || m.height == 0 {
		return content
	}
	th := themeFor(m.state.Preferences.DarkMode)
	bg := lipgloss.WithWhitespaceBackground(th.bg)
	if m.settings.confirmClear {
		lines := []string{
			th.title().Render("Clear all statistics?"),
			"This removes every recorded flip.",
			"",
			footerStyle.Render("y: clear  n/esc: cancel"),
		}
		return statsui.RenderModal(lines, m.width, m.height)
	}
	header := statsui.PadLines(statsui.RenderTabs(m.tabs, m.activeTab), m.width)
	footer := m.renderFooter()
	headerHeight := lipgloss.Height(header)
	if m.height < headerHeight+3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content, bg)
	}
	bodyHeight := m.height - headerHeight - 1
	var body string
	if m.activeTab == tabStats {
		body = statsui.FitLines(content, m.width, bodyHeight)
	} else {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content, bg)
	}
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer, bg)
	return header + "\n" + body + "\n" + footerLine
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	m.settings.blur()
	if m.activeTab == tabStats {
		m.recompute()
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.statsView.Width = m.width
	m.statsView.Height = maxInt(1, m.height-lipgloss.Height(statsui.RenderTabs(m.tabs, 0))-1)
	m.settings.setWidth(m.width)
	m.renderStatsContent()
}

// requestFlip starts the reveal animation. A request while a flip is in
// progress is rejected.
func (m *Model) requestFlip() tea.Cmd {
	if m.flipping {
		logger.Debug("flip request ignored: flip in progress")
		return nil
	}
	m.errMsg = ""
	m.pendingCount = m.state.Preferences.CoinCount
	m.player.Flip()
	if m.revealFrames() == 0 {
		m.reveal()
		return nil
	}
	m.flipping = true
	m.flipID++
	m.frame = 0
	return frameTick(m.flipID)
}

func (m *Model) revealFrames() int {
	if m.config.RevealMs <= 0 {
		return 0
	}
	return maxInt(1, m.config.RevealMs/int(frameInterval.Milliseconds()))
}

func frameTick(id int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (m *Model) handleFrame(msg frameMsg) tea.Cmd {
	if !m.flipping || msg.id != m.flipID {
		return nil
	}
	m.frame++
	if m.frame < m.revealFrames() {
		return frameTick(m.flipID)
	}
	m.flipping = false
	m.reveal()
	return nil
}

func (m *Model) reveal() {
	batch, err := m.gen.Batch(m.pendingCount)
	if err != nil {
		m.errMsg = fmt.Sprintf("flip failed: %v", err)
		logger.Error("failed to generate batch: %v", err)
		return
	}
	m.state.History = history.Trim(history.Append(m.state.History, batch), m.config.MaxHistory)
	m.lastBatch = batch
	m.persist("history", func(ctx context.Context) error {
		return m.store.SaveHistory(ctx, m.state.History)
	})
	m.recompute()
	m.player.Result()
	logger.Debug("revealed %d coins, history size %d", len(batch), len(m.state.History))
}

func (m *Model) clearHistory() {
	m.state.History = history.Clear()
	m.lastBatch = nil
	m.persist("history", func(ctx context.Context) error {
		return m.store.SaveHistory(ctx, m.state.History)
	})
	m.recompute()
	logger.Info("statistics cleared")
}

func (m *Model) persist(what string, save func(ctx context.Context) error) {
	if m.store == nil {
		return
	}
	if err := save(context.Background()); err != nil {
		m.errMsg = fmt.Sprintf("failed to save %s: %v", what, err)
		logger.Error("failed to save %s: %v", what, err)
	}
}

func (m *Model) savePreferences() {
	m.persist("settings", func(ctx context.Context) error {
		return m.store.SavePreferences(ctx, m.state.Preferences)
	})
}

func (m *Model) toggleMute() {
	m.state.Preferences.Muted = !m.state.Preferences.Muted
	m.player.SetMuted(m.state.Preferences.Muted)
	m.savePreferences()
}

func (m *Model) toggleTheme() {
	m.state.Preferences.DarkMode = !m.state.Preferences.DarkMode
	m.savePreferences()
}

func (m *Model) recompute() {
	now := m.now()
	m.report = stats.NewReport(m.state, m.window, now)
	m.all = stats.ComputeAt(m.state.History, model.WindowAll, m.state.Labels, now)
	m.renderStatsContent()
}

func (m *Model) renderTab() string {
	switch m.activeTab {
	case tabStats:
		return m.statsView.View()
	case tabSettings:
		return m.settings.view(m.state, themeFor(m.state.Preferences.DarkMode))
	default:
		return m.renderFlip()
	}
}

func (m *Model) renderFlip() string {
	th := themeFor(m.state.Preferences.DarkMode)
	prefs := m.state.Preferences
	labels := m.state.Labels

	frame := -1
	count := prefs.CoinCount
	if m.flipping {
		frame = m.frame
		count = m.pendingCount
	}
	lines := []string{renderCoins(prefs.CoinType, labels, m.lastBatch, count, frame), ""}

	switch {
	case m.flipping:
		lines = append(lines, th.faint().Render("Flipping..."))
	case len(m.lastBatch) == 0:
		lines = append(lines, th.faint().Render("Press space to flip"))
	default:
		lines = append(lines, th.title().Render(resultLine(m.lastBatch, labels)))
	}

	if len(m.state.History) > 0 {
		width := m.width * 7 / 10
		if width <= 0 {
			width = 40
		}
		recent := history.Latest(m.state.History, stripLimit)
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(wrapStyledRunes(buildOutcomeGlyphs(recent, labels), width)))
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// resultLine names a single outcome or summarizes a batch.
func resultLine(batch []model.FlipRecord, labels model.Labels) string {
	if len(batch) == 1 {
		return labels.Label(batch[0].Outcome)
	}
	heads := 0
	for _, rec := range batch {
		if rec.Outcome == model.Heads {
			heads++
		}
	}
	return fmt.Sprintf("%d %s / %d %s", heads, labels.Heads, len(batch)-heads, labels.Tails)
}

func (m *Model) updateStats(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "1", "2", "3", "4":
		m.setWindow(model.Windows[int(msg.String()[0]-'1')])
		return nil
	case "t":
		m.setWindow(m.window.Next())
		return nil
	case "r":
		m.recompute()
		return nil
	}
	var cmd tea.Cmd
	m.statsView, cmd = m.statsView.Update(msg)
	return cmd
}

func (m *Model) setWindow(w model.TimeWindow) {
	m.window = w
	m.recompute()
}

func (m *Model) renderStatsContent() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	parts := []string{
		statsui.RenderWindowSelector(m.window),
		statsui.RenderOverview(m.report.View, m.report.Runs, width),
	}
	if m.report.View.TotalFlips > 0 {
		parts = append(parts, statsui.RenderTrend(m.report.View, width))
	}
	m.statsView.SetContent(strings.Join(parts, "\n\n"))
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Total %d", m.all.TotalFlips)}
	labels := m.state.Labels
	if m.all.TotalFlips > 0 {
		segments = append(segments, fmt.Sprintf("%s %d%% · %s %d%%", labels.Heads, m.all.HeadsRatio, labels.Tails, m.all.TailsRatio))
		outcome, n := history.CurrentStreak(m.state.History)
		segments = append(segments, fmt.Sprintf("Streak %d× %s", n, labels.Label(outcome)))
	}
	if m.state.Preferences.Muted {
		segments = append(segments, "Muted")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
