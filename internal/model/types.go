// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownOutcome is returned when an outcome name is not heads or tails.
var ErrUnknownOutcome = errors.New("unknown outcome")

// ErrUnknownWindow is returned when a time window name is not recognized.
var ErrUnknownWindow = errors.New("unknown time window")

// Outcome is the result of a single coin toss.
type Outcome uint8

const (
	Heads Outcome = iota
	Tails
)

const (
	defaultHeadsLabel = "Heads"
	defaultTailsLabel = "Tails"
)

// String returns the persisted name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Heads:
		return "heads"
	case Tails:
		return "tails"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Valid reports whether o is heads or tails.
func (o Outcome) Valid() bool {
	return o == Heads || o == Tails
}

// ParseOutcome parses "heads" or "tails" (case-insensitive).
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heads":
		return Heads, nil
	case "tails":
		return Tails, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutcome, uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// FlipRecord is a single generated outcome with its creation time.
type FlipRecord struct {
	Outcome   Outcome `json:"result" yaml:"result"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
}

// Time returns the record timestamp as a time.Time.
func (r FlipRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// History is an ordered sequence of flips, newest first.
type History []FlipRecord

// Labels are the display names bound to each outcome.
type Labels struct {
	Heads string `json:"heads"`
	Tails string `json:"tails"`
}

// DefaultLabels returns the stock "Heads"/"Tails" names.
func DefaultLabels() Labels {
	return Labels{Heads: defaultHeadsLabel, Tails: defaultTailsLabel}
}

// Normalize replaces blank names with the defaults.
func (l Labels) Normalize() Labels {
	l.Heads = strings.TrimSpace(l.Heads)
	l.Tails = strings.TrimSpace(l.Tails)
	if l.Heads == "" {
		l.Heads = defaultHeadsLabel
	}
	if l.Tails == "" {
		l.Tails = defaultTailsLabel
	}
	return l
}

// Label returns the display name for an outcome.
func (l Labels) Label(o Outcome) string {
	l = l.Normalize()
	if o == Tails {
		return l.Tails
	}
	return l.Heads
}

// TimeWindow selects a relative time horizon for statistics.
type TimeWindow uint8

const (
	WindowAll TimeWindow = iota
	WindowToday
	WindowWeek
	WindowMonth
)

// DayMs is the length of the Today window in milliseconds.
const DayMs int64 = 24 * 60 * 60 * 1000

// Windows lists every time window in display order.
var Windows = []TimeWindow{WindowAll, WindowToday, WindowWeek, WindowMonth}

// String returns the flag/config name of the window.
func (w TimeWindow) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "week"
	case WindowMonth:
		return "month"
	default:
		return "all"
	}
}

// Title returns the tab title of the window.
func (w TimeWindow) Title() string {
	switch w {
	case WindowToday:
		return "Today"
	case WindowWeek:
		return "Week"
	case WindowMonth:
		return "Month"
	default:
		return "All Time"
	}
}

// Threshold returns the minimum timestamp kept by the window at now.
// The bool is false for WindowAll, which does no filtering.
func (w TimeWindow) Threshold(now time.Time) (int64, bool) {
	nowMs := now.UnixMilli()
	switch w {
	case WindowToday:
		return nowMs - DayMs, true
	case WindowWeek:
		return nowMs - 7*DayMs, true
	case WindowMonth:
		return nowMs - 30*DayMs, true
	default:
		return 0, false
	}
}

// Next returns the following window, wrapping around.
func (w TimeWindow) Next() TimeWindow {
	return Windows[(int(w)+1)%len(Windows)]
}

// ParseTimeWindow parses all, today, week or month.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return WindowAll, nil
	case "today":
		return WindowToday, nil
	case "week":
		return WindowWeek, nil
	case "month":
		return WindowMonth, nil
	default:
		return WindowAll, fmt.Errorf("%w: %q", ErrUnknownWindow, s)
	}
}

// CoinType is the visual appearance of the coin.
type CoinType string

const (
	CoinGold   CoinType = "gold"
	CoinSilver CoinType = "silver"
	CoinBronze CoinType = "bronze"
	CoinWhite  CoinType = "white"
	CoinBlack  CoinType = "black"
	CoinBlue   CoinType = "blue"
)

// CoinTypes lists the available appearances in settings order.
var CoinTypes = []CoinType{CoinGold, CoinSilver, CoinBronze, CoinWhite, CoinBlack, CoinBlue}

// ParseCoinType returns the named appearance, falling back to gold.
func ParseCoinType(s string) (CoinType, bool) {
	name := CoinType(strings.ToLower(strings.TrimSpace(s)))
	for _, ct := range CoinTypes {
		if ct == name {
			return ct, true
		}
	}
	return CoinGold, false
}

// Next returns the following appearance, wrapping around.
func (c CoinType) Next() CoinType {
	for i, ct := range CoinTypes {
		if ct == c {
			return CoinTypes[(i+1)%len(CoinTypes)]
		}
	}
	return CoinGold
}

// Title returns the capitalized appearance name.
func (c CoinType) Title() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const (
	MinCoins = 1
	MaxCoins = 10
)

// Preferences are the persisted UI settings.
type Preferences struct {
	CoinType  CoinType
	CoinCount int
	Muted     bool
	DarkMode  bool
}

// DefaultPreferences returns the settings used on first start.
func DefaultPreferences() Preferences {
	return Preferences{CoinType: CoinGold, CoinCount: MinCoins}
}

// State is everything restored from the store at startup.
type State struct {
	History     History
	Labels      Labels
	Preferences Preferences
}

// DefaultState returns an empty history with default labels and preferences.
func DefaultState() State {
	return State{
		History:     History{},
		Labels:      DefaultLabels(),
		Preferences: DefaultPreferences(),
	}
}

// Config defines flip app settings resolved from flags, config and store.
type Config struct {
	Coins      int
	CoinType   CoinType
	Labels     Labels
	RevealMs   int
	MaxHistory int
	Muted      bool
	DarkMode   bool
}

// StatsConfig defines options for the stats browser.
type StatsConfig struct {
	Window TimeWindow
	Plain  bool
}

// StatsView is the derived statistics for one window.
type StatsView struct {
	Window             TimeWindow
	Labels             Labels
	Filtered           History
	TotalFlips         int
	HeadsCount         int
	TailsCount         int
	HeadsRatio         int
	TailsRatio         int
	LongestHeadsStreak int
	LongestTailsStreak int
}
