package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiflip/internal/model"
	"github.com/verte-zerg/tuiflip/internal/stats"
)

const (
	plotHeight    = 10
	trendSmooth   = 1
	ratioBarWidth = 40
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	headsBarStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#F59E0B"))
	tailsBarStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#6366F1"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// EmptyMessage is shown when a window holds no flips.
const EmptyMessage = "No flips recorded yet. Start flipping coins to see statistics!"

// RenderTabs draws a row of bordered tab labels.
func RenderTabs(tabs []string, active int) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderWindowSelector lists the time windows with the active one highlighted.
func RenderWindowSelector(active model.TimeWindow) string {
	parts := make([]string, 0, len(model.Windows))
	for i, w := range model.Windows {
		label := fmt.Sprintf("%d %s", i+1, w.Title())
		if w == active {
			parts = append(parts, cardValueStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, headerStyle.Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

// RenderOverview draws the summary cards, ratio bar and longest runs of a view.
func RenderOverview(view model.StatsView, runs []stats.Run, width int) string {
	if view.TotalFlips == 0 {
		return EmptyMessage
	}
	labels := view.Labels.Normalize()
	cards := []string{
		metricCard("Total Flips", fmt.Sprintf("%d", view.TotalFlips)),
		metricCard(labels.Heads, fmt.Sprintf("%d (%d%%)", view.HeadsCount, view.HeadsRatio)),
		metricCard(labels.Tails, fmt.Sprintf("%d (%d%%)", view.TailsCount, view.TailsRatio)),
		metricCard("Longest "+labels.Heads+" Streak", fmt.Sprintf("%d", view.LongestHeadsStreak)),
		metricCard("Longest "+labels.Tails+" Streak", fmt.Sprintf("%d", view.LongestTailsStreak)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	parts := []string{summary, renderRatioBar(view, width)}
	if len(runs) > 0 {
		var buf bytes.Buffer
		if err := stats.RenderRunsTable(&buf, runs, labels); err != nil {
			parts = append(parts, errorStyle.Render(fmt.Sprintf("Failed to render runs: %v", err)))
		} else {
			parts = append(parts, strings.TrimRight(buf.String(), "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

// RenderTrend plots the running heads ratio of a view.
func RenderTrend(view model.StatsView, width int) string {
	if view.TotalFlips == 0 {
		return EmptyMessage
	}
	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, view, trendSmooth, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	spark := stats.Sparkline(stats.RunningRatio(view.Filtered))
	out := strings.TrimRight(buf.String(), "\n")
	if spark != "" {
		out += "\n\n" + headerStyle.Render("Spark: ") + truncateLine(spark, width-7)
	}
	return out
}

func renderRatioBar(view model.StatsView, width int) string {
	barWidth := minInt(ratioBarWidth, maxInt(10, width-2))
	headsCells := view.HeadsRatio * barWidth / 100
	bar := headsBarStyle.Render(strings.Repeat(" ", headsCells)) +
		tailsBarStyle.Render(strings.Repeat(" ", barWidth-headsCells))
	labels := view.Labels.Normalize()
	legend := headerStyle.Render(fmt.Sprintf("%s %d%%  %s %d%%", labels.Heads, view.HeadsRatio, labels.Tails, view.TailsRatio))
	return bar + "\n" + legend
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ModalWidth returns the outer width of a centered dialog.
func ModalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

// RenderModal draws lines inside a bordered dialog centered in width x height.
func RenderModal(lines []string, width, height int) string {
	box := modalStyle.Width(ModalWidth(width)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// PadLines pads every line of s to width cells.
func PadLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

// FitLines pads s to width and cuts or fills it to exactly height lines.
func FitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
