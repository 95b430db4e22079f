package store

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuiflip/internal/model"
)

// Interchange formats for export and import.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes h to w in the given format.
func Export(w io.Writer, h model.History, format string) error {
	if h == nil {
		h = model.History{}
	}
	switch normalizeFormat(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
}

// Import reads a history from r. Unlike the persisted state, an import with
// a missing, null or unknown outcome is rejected as a whole.
func Import(r io.Reader, format string) (model.History, error) {
	var records []*rawRecord
	switch normalizeFormat(format) {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
	h := make(model.History, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("record %d: empty record", i)
		}
		outcome, err := model.ParseOutcome(rec.Result)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		h = append(h, model.FlipRecord{Outcome: outcome, Timestamp: rec.Timestamp})
	}
	return h, nil
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		return FormatYAML
	}
	if format == "" {
		return FormatJSON
	}
	return format
}
