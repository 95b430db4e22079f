package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiflip/internal/model"
)

var (
	headsGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	tailsGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366F1")).Bold(true)
	latestGlyphMark = lipgloss.NewStyle().Underline(true)
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildOutcomeGlyphs renders h newest first as short labels separated by spaces.
// The newest glyph is underlined.
func buildOutcomeGlyphs(h model.History, labels model.Labels) []styledRune {
	if len(h) == 0 {
		return nil
	}
	out := make([]styledRune, 0, len(h)*2-1)
	for i, rec := range h {
		if i > 0 {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		glyph := shortLabel(labels, rec.Outcome)
		style := headsGlyphStyle
		if rec.Outcome == model.Tails {
			style = tailsGlyphStyle
		}
		if i == 0 {
			style = style.Inherit(latestGlyphMark)
		}
		out = append(out, styledRune{
			s:     style.Render(glyph),
			width: runewidth.StringWidth(glyph),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		// A space never starts a line.
		if item.isSpace && len(line) == 0 {
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
