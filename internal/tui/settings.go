package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiflip/internal/model"
)

const (
	rowCoinType = iota
	rowCoinCount
	rowHeadsName
	rowTailsName
	rowSound
	rowTheme
	rowClear
	rowCount
)

const maxLabelLen = 24

type settingsForm struct {
	index        int
	editing      bool
	nameInputs   [2]textinput.Model
	confirmClear bool
}

func newSettingsForm(labels model.Labels) settingsForm {
	f := settingsForm{}
	f.nameInputs[0] = newNameInput(labels.Heads, model.DefaultLabels().Heads)
	f.nameInputs[1] = newNameInput(labels.Tails, model.DefaultLabels().Tails)
	return f
}

func newNameInput(value, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	input.CharLimit = maxLabelLen
	input.Width = maxLabelLen
	input.Cursor.SetMode(cursor.CursorBlink)
	input.SetValue(value)
	return input
}

// capturing reports whether key presses belong to the form alone.
func (f *settingsForm) capturing() bool {
	return f.editing || f.confirmClear
}

func (f *settingsForm) blur() {
	f.editing = false
	f.confirmClear = false
	for i := range f.nameInputs {
		f.nameInputs[i].Blur()
	}
}

func (f *settingsForm) setWidth(width int) {
	w := minInt(maxLabelLen, maxInt(8, width/3))
	for i := range f.nameInputs {
		f.nameInputs[i].Width = w
	}
}

func (f *settingsForm) nameInput() *textinput.Model {
	if f.index == rowTailsName {
		return &f.nameInputs[1]
	}
	return &f.nameInputs[0]
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	f := &m.settings
	if f.confirmClear {
		switch msg.String() {
		case "y", "Y":
			f.confirmClear = false
			m.clearHistory()
		case "n", "N", "esc":
			f.confirmClear = false
		}
		return nil
	}
	if f.editing {
		input := f.nameInput()
		switch msg.Type {
		case tea.KeyEnter:
			f.editing = false
			input.Blur()
			m.commitLabels()
			return nil
		case tea.KeyEsc:
			f.editing = false
			input.Blur()
			input.SetValue(m.currentName(f.index))
			return nil
		}
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		f.index = (f.index - 1 + rowCount) % rowCount
	case "down", "j", "tab":
		f.index = (f.index + 1) % rowCount
	case "+", "=":
		if f.index == rowCoinCount {
			m.setCoinCount(m.state.Preferences.CoinCount + 1)
		}
	case "-", "_":
		if f.index == rowCoinCount {
			m.setCoinCount(m.state.Preferences.CoinCount - 1)
		}
	case "enter", " ":
		return m.activateSetting()
	}
	return nil
}

func (m *Model) activateSetting() tea.Cmd {
	f := &m.settings
	prefs := &m.state.Preferences
	switch f.index {
	case rowCoinType:
		prefs.CoinType = prefs.CoinType.Next()
		m.savePreferences()
	case rowCoinCount:
		next := prefs.CoinCount + 1
		if next > model.MaxCoins {
			next = model.MinCoins
		}
		m.setCoinCount(next)
	case rowHeadsName, rowTailsName:
		f.editing = true
		return f.nameInput().Focus()
	case rowSound:
		m.toggleMute()
	case rowTheme:
		m.toggleTheme()
	case rowClear:
		f.confirmClear = true
	}
	return nil
}

func (m *Model) setCoinCount(n int) {
	if n < model.MinCoins || n > model.MaxCoins || n == m.state.Preferences.CoinCount {
		return
	}
	m.state.Preferences.CoinCount = n
	if !m.flipping {
		m.lastBatch = nil
	}
	m.savePreferences()
}

func (m *Model) currentName(row int) string {
	if row == rowTailsName {
		return m.state.Labels.Tails
	}
	return m.state.Labels.Heads
}

// commitLabels stores the edited names; blank names revert to the defaults.
func (m *Model) commitLabels() {
	labels := model.Labels{
		Heads: strings.TrimSpace(m.settings.nameInputs[0].Value()),
		Tails: strings.TrimSpace(m.settings.nameInputs[1].Value()),
	}.Normalize()
	m.settings.nameInputs[0].SetValue(labels.Heads)
	m.settings.nameInputs[1].SetValue(labels.Tails)
	if labels == m.state.Labels {
		return
	}
	m.state.Labels = labels
	m.persist("names", func(ctx context.Context) error {
		return m.store.SaveLabels(ctx, labels)
	})
	m.recompute()
}

func (f *settingsForm) view(state model.State, th theme) string {
	prefs := state.Preferences
	onOff := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	themeName := "light"
	if prefs.DarkMode {
		themeName = "dark"
	}
	rows := []struct {
		label string
		value string
	}{
		{"Coin", prefs.CoinType.Title()},
		{"Coins per flip", fmt.Sprintf("%d", prefs.CoinCount)},
		{"Heads name", f.nameInputs[0].View()},
		{"Tails name", f.nameInputs[1].View()},
		{"Sound", onOff(!prefs.Muted)},
		{"Theme", themeName},
		{"Clear statistics", ""},
	}
	labelStyle := th.faint().Width(18)
	lines := []string{th.title().Render("Settings"), ""}
	for i, row := range rows {
		marker := "  "
		style := th.text()
		if i == f.index {
			marker = "> "
			style = th.title()
		}
		lines = append(lines, marker+labelStyle.Render(row.label)+style.Render(row.value))
	}
	coin := renderCoin(prefs.CoinType, prefs.CoinType.Title(), false, -1)
	help := th.faint().Render("up/down: select  enter: change  +/-: coins  esc: cancel edit")
	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, form, "    ", coin),
		"",
		help,
	)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
