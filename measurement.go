package tradehub

import (
	"fmt"
	"strings"
)

// Measurement is one immutable historical rate observation. Its natural key
// is "{FROM}_{TO}_{TIMESTAMP}"; a measurement with an id already present in
// the history is an idempotent no-op on append.
type Measurement struct {
	ID        string         `json:"id"`
	From      string         `json:"from_currency"`
	To        string         `json:"to_currency"`
	Rate      float64        `json:"rate"`
	Timestamp Timestamp      `json:"timestamp"`
	Source    string         `json:"source"`
	Meta      map[string]any `json:"meta"`
}

// MeasurementID computes the canonical history id for a pair observation.
func MeasurementID(from, to string, ts Timestamp) string {
	return fmt.Sprintf("%s_%s_%s", from, to, ts)
}

// normalize validates the record and returns its canonical form: codes
// uppercased, timestamp in the boundary format, id recomputed. Codes are
// checked for shape only; registry membership is enforced where rates are
// consumed, not where they are recorded.
func (m Measurement) normalize() (Measurement, error) {
	from, err := NormalizeCode(m.From)
	if err != nil {
		return Measurement{}, fmt.Errorf("measurement from_currency: %w", err)
	}
	to, err := NormalizeCode(m.To)
	if err != nil {
		return Measurement{}, fmt.Errorf("measurement to_currency: %w", err)
	}
	if m.Rate <= 0 {
		return Measurement{}, fmt.Errorf("measurement rate must be positive, got %v", m.Rate)
	}
	if m.Timestamp.IsZero() {
		return Measurement{}, fmt.Errorf("measurement timestamp is required")
	}
	source := strings.TrimSpace(m.Source)
	if source == "" {
		return Measurement{}, fmt.Errorf("measurement source is required")
	}
	meta := m.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	id := MeasurementID(from, to, m.Timestamp)
	if s := strings.TrimSpace(m.ID); s != "" && s != id {
		return Measurement{}, fmt.Errorf("measurement id %q does not match its canonical id %q", s, id)
	}
	return Measurement{
		ID:        id,
		From:      from,
		To:        to,
		Rate:      m.Rate,
		Timestamp: m.Timestamp,
		Source:    source,
		Meta:      meta,
	}, nil
}

// SplitPairKey splits a "{FROM}_{TO}" pair key into its normalized codes.
func SplitPairKey(key string) (from, to string, err error) {
	parts := strings.SplitN(strings.TrimSpace(key), "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid pair key %q", key)
	}
	if from, err = NormalizeCode(parts[0]); err != nil {
		return "", "", fmt.Errorf("invalid pair key %q: %w", key, err)
	}
	if to, err = NormalizeCode(parts[1]); err != nil {
		return "", "", fmt.Errorf("invalid pair key %q: %w", key, err)
	}
	return from, to, nil
}

// PairKey builds the "{FROM}_{TO}" snapshot key.
func PairKey(from, to string) string { return from + "_" + to }
