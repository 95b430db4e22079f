package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiflip/internal/model"
)

type theme struct {
	fg     lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	bg     lipgloss.Color
}

var (
	lightTheme = theme{
		fg:     lipgloss.Color("#1F2937"),
		muted:  lipgloss.Color("#6B7280"),
		accent: lipgloss.Color("#C89A3A"),
		bg:     lipgloss.Color("#F9FAFB"),
	}
	darkTheme = theme{
		fg:     lipgloss.Color("#F0F0F0"),
		muted:  lipgloss.Color("#8C8C8C"),
		accent: lipgloss.Color("#C89A3A"),
		bg:     lipgloss.Color("#111827"),
	}
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

func (t theme) text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.fg)
}

func (t theme) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.muted)
}

func (t theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.accent).Bold(true)
}

type coinPalette struct {
	face lipgloss.Color
	edge lipgloss.Color
	text lipgloss.Color
}

var coinPalettes = map[model.CoinType]coinPalette{
	model.CoinGold:   {face: "#FBBF24", edge: "#F59E0B", text: "#1F2937"},
	model.CoinSilver: {face: "#D1D5DB", edge: "#9CA3AF", text: "#1F2937"},
	model.CoinBronze: {face: "#B45309", edge: "#92400E", text: "#FFFFFF"},
	model.CoinWhite:  {face: "#F3F4F6", edge: "#E5E7EB", text: "#1F2937"},
	model.CoinBlack:  {face: "#1F2937", edge: "#111827", text: "#FFFFFF"},
	model.CoinBlue:   {face: "#3B82F6", edge: "#2563EB", text: "#FFFFFF"},
}

func paletteFor(ct model.CoinType) coinPalette {
	if p, ok := coinPalettes[ct]; ok {
		return p
	}
	return coinPalettes[model.CoinGold]
}

const (
	bigCoinWidth    = 13
	smallCoinWidth  = 5
	bigCoinHeight   = 3
	smallCoinHeight = 1
)

// Widths of the coin while it spins; a narrow coin reads as edge-on.
var spinWidths = []int{13, 9, 5, 1, 5, 9}

// renderCoin draws one coin face. frame < 0 renders it at rest.
func renderCoin(ct model.CoinType, face string, small bool, frame int) string {
	p := paletteFor(ct)
	width, height := bigCoinWidth, bigCoinHeight
	if small {
		width, height = smallCoinWidth, smallCoinHeight
	}
	if frame >= 0 {
		width = spinWidths[frame%len(spinWidths)] * width / bigCoinWidth
		if width < 1 {
			width = 1
		}
		face = ""
	}
	face = runewidth.Truncate(face, width, "")
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Background(p.face).
		Foreground(p.text).
		Bold(true).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.edge)
	return style.Render(face)
}

// renderCoins draws one coin per record, or spinning coins when frame >= 0.
func renderCoins(ct model.CoinType, labels model.Labels, batch []model.FlipRecord, count, frame int) string {
	if count <= 1 {
		face := "?"
		if len(batch) > 0 {
			face = labels.Label(batch[0].Outcome)
		}
		return renderCoin(ct, face, false, frame)
	}
	coins := make([]string, 0, count)
	for i := 0; i < count; i++ {
		face := "?"
		if i < len(batch) {
			face = shortLabel(labels, batch[i].Outcome)
		}
		coins = append(coins, renderCoin(ct, face, true, frame))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, coins...)
}

// shortLabel returns the coin face and strip glyph for o: the label's first
// letter, or its first two letters when both labels share an initial.
func shortLabel(labels model.Labels, o model.Outcome) string {
	n := 1
	if prefix(labels.Heads, 1) == prefix(labels.Tails, 1) {
		n = 2
	}
	return prefix(labels.Label(o), n)
}

func prefix(label string, n int) string {
	runes := []rune(strings.TrimSpace(label))
	if len(runes) == 0 {
		return "?"
	}
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.ToUpper(string(runes))
}
