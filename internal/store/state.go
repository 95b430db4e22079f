package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/verte-zerg/tuiflip/internal/logger"
	"github.com/verte-zerg/tuiflip/internal/model"
)

// Keys of the persisted state.
const (
	KeyResults     = "results"
	KeyCustomNames = "customNames"
	KeyCoinType    = "coinType"
	KeyCoinCount   = "coinCount"
	KeyDarkMode    = "darkMode"
	KeyMuted       = "muted"
)

type rawRecord struct {
	Result    string `json:"result" yaml:"result"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// LoadState restores the persisted state. Missing or malformed values fall
// back to defaults; only database errors are returned.
func (s *Store) LoadState(ctx context.Context) (model.State, error) {
	state := model.DefaultState()

	raw, ok, err := s.Get(ctx, KeyResults)
	if err != nil {
		return state, fmt.Errorf("failed to read %s: %w", KeyResults, err)
	}
	if ok {
		state.History = DecodeHistory(raw)
	}

	raw, ok, err = s.Get(ctx, KeyCustomNames)
	if err != nil {
		return state, fmt.Errorf("failed to read %s: %w", KeyCustomNames, err)
	}
	if ok {
		state.Labels = DecodeLabels(raw)
	}

	prefs, err := s.loadPreferences(ctx)
	if err != nil {
		return state, err
	}
	state.Preferences = prefs
	return state, nil
}

func (s *Store) loadPreferences(ctx context.Context) (model.Preferences, error) {
	prefs := model.DefaultPreferences()
	values := map[string]string{}
	for _, key := range []string{KeyCoinType, KeyCoinCount, KeyDarkMode, KeyMuted} {
		raw, ok, err := s.Get(ctx, key)
		if err != nil {
			return prefs, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			values[key] = raw
		}
	}
	if raw, ok := values[KeyCoinType]; ok {
		ct, valid := model.ParseCoinType(raw)
		if !valid {
			logger.Warn("ignoring unknown coin type %q", raw)
		}
		prefs.CoinType = ct
	}
	if raw, ok := values[KeyCoinCount]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < model.MinCoins || n > model.MaxCoins {
			logger.Warn("ignoring invalid coin count %q", raw)
		} else {
			prefs.CoinCount = n
		}
	}
	// Anything other than "true" reads as false, matching how the values are written.
	prefs.DarkMode = values[KeyDarkMode] == "true"
	prefs.Muted = values[KeyMuted] == "true"
	return prefs, nil
}

// DecodeHistory parses a persisted results array. Corrupt input yields an
// empty history; records with an unknown outcome are dropped.
func DecodeHistory(raw string) model.History {
	var records []rawRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn("discarding corrupt %s value: %v", KeyResults, err)
		return model.History{}
	}
	h := make(model.History, 0, len(records))
	dropped := 0
	for _, rec := range records {
		outcome, err := model.ParseOutcome(rec.Result)
		if err != nil {
			dropped++
			continue
		}
		h = append(h, model.FlipRecord{Outcome: outcome, Timestamp: rec.Timestamp})
	}
	if dropped > 0 {
		logger.Warn("dropped %d flip records with unknown outcome", dropped)
	}
	return h
}

// DecodeLabels parses persisted custom names, falling back to defaults.
func DecodeLabels(raw string) model.Labels {
	var labels model.Labels
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		logger.Warn("discarding corrupt %s value: %v", KeyCustomNames, err)
		return model.DefaultLabels()
	}
	return labels.Normalize()
}

// SaveHistory persists the results array.
func (s *Store) SaveHistory(ctx context.Context, h model.History) error {
	value, err := encodeHistory(h)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeyResults, value)
}

// SaveLabels persists the custom names.
func (s *Store) SaveLabels(ctx context.Context, labels model.Labels) error {
	data, err := json.Marshal(labels.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", KeyCustomNames, err)
	}
	return s.Set(ctx, KeyCustomNames, string(data))
}

// SavePreferences persists the UI settings.
func (s *Store) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	return s.SetMany(ctx, preferencePairs(prefs))
}

// SaveState persists history, labels and preferences in one transaction.
func (s *Store) SaveState(ctx context.Context, state model.State) error {
	pairs := preferencePairs(state.Preferences)
	results, err := encodeHistory(state.History)
	if err != nil {
		return err
	}
	pairs[KeyResults] = results
	names, err := json.Marshal(state.Labels.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", KeyCustomNames, err)
	}
	pairs[KeyCustomNames] = string(names)
	return s.SetMany(ctx, pairs)
}

func encodeHistory(h model.History) (string, error) {
	if h == nil {
		h = model.History{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", KeyResults, err)
	}
	return string(data), nil
}

func preferencePairs(prefs model.Preferences) map[string]string {
	return map[string]string{
		KeyCoinType:  string(prefs.CoinType),
		KeyCoinCount: strconv.Itoa(prefs.CoinCount),
		KeyDarkMode:  strconv.FormatBool(prefs.DarkMode),
		KeyMuted:     strconv.FormatBool(prefs.Muted),
	}
}
