package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuiflip/internal/model"
)

func TestBuildOutcomeGlyphs(t *testing.T) {
	h := model.History{{Outcome: model.Tails}, {Outcome: model.Heads}}
	runes := buildOutcomeGlyphs(h, model.DefaultLabels())
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[0].s != tailsGlyphStyle.Inherit(latestGlyphMark).Render("T") {
		t.Fatalf("expected underlined tails glyph for the newest flip")
	}
	if !runes[1].isSpace {
		t.Fatalf("expected separator between glyphs")
	}
	if runes[2].s != headsGlyphStyle.Render("H") {
		t.Fatalf("expected heads glyph")
	}
}

func TestBuildOutcomeGlyphsWideLabels(t *testing.T) {
	h := model.History{{Outcome: model.Heads}}
	runes := buildOutcomeGlyphs(h, model.Labels{Heads: "表", Tails: "裏"})
	if len(runes) != 1 || runes[0].width != 2 {
		t.Fatalf("expected a double-width glyph, got %+v", runes)
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	h := model.History{{Outcome: model.Heads}, {Outcome: model.Tails}, {Outcome: model.Heads}, {Outcome: model.Tails}}
	runes := buildOutcomeGlyphs(h, model.DefaultLabels())
	out := wrapStyledRunes(runes, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if renderStyledRunes(runes[:3]) != lines[0] {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	runes := buildOutcomeGlyphs(model.History{{Outcome: model.Heads}}, model.DefaultLabels())
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output for zero width")
	}
}

func TestShortLabelDisambiguatesSharedInitial(t *testing.T) {
	shared := model.Labels{Heads: "Tom", Tails: "tim"}
	if got := shortLabel(shared, model.Heads); got != "TO" {
		t.Fatalf("expected TO, got %q", got)
	}
	if got := shortLabel(shared, model.Tails); got != "TI" {
		t.Fatalf("expected TI, got %q", got)
	}
	if got := shortLabel(model.DefaultLabels(), model.Tails); got != "T" {
		t.Fatalf("expected T, got %q", got)
	}
	if got := shortLabel(model.Labels{Heads: "A", Tails: "Ab"}, model.Heads); got != "A" {
		t.Fatalf("expected short label to stop at the label end, got %q", got)
	}

	runes := buildOutcomeGlyphs(model.History{{Outcome: model.Heads}}, shared)
	if len(runes) != 1 || runes[0].width != 2 {
		t.Fatalf("expected a two-letter glyph, got %+v", runes)
	}
}
