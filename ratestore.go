package tradehub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RatePair is the latest known rate for one currency pair.
type RatePair struct {
	From      string
	To        string
	Rate      float64
	UpdatedAt Timestamp
	Source    string
}

// Key returns the snapshot key of the pair.
func (p RatePair) Key() string { return PairKey(p.From, p.To) }

// pairRecord is the on-disk shape of one snapshot pair; from/to live in the
// map key.
type pairRecord struct {
	Rate      float64   `json:"rate"`
	UpdatedAt Timestamp `json:"updated_at"`
	Source    string    `json:"source"`
}

type snapshotFile struct {
	Pairs       map[string]pairRecord `json:"pairs"`
	LastRefresh string                `json:"last_refresh,omitempty"`
}

// RateStore persists the current rate snapshot and the append-only
// measurement history. All writes go through an atomic replace (write to a
// temporary file, then rename) so a reader never observes a torn file.
//
// The Updater is the only component that writes to it.
type RateStore struct {
	snapshotPath string
	historyPath  string
	ttl          time.Duration

	now func() time.Time // overridable in tests
}

// NewRateStore returns a store over the given snapshot and history files.
// Neither file needs to exist yet.
func NewRateStore(snapshotPath, historyPath string, ttl time.Duration) *RateStore {
	return &RateStore{
		snapshotPath: snapshotPath,
		historyPath:  historyPath,
		ttl:          ttl,
		now:          time.Now,
	}
}

// AppendMeasurement validates and appends one history record. Re-appending
// a record with an id already present is a no-op, reported by the returned
// bool rather than by an error.
func (s *RateStore) AppendMeasurement(m Measurement) (inserted bool, err error) {
	rec, err := m.normalize()
	if err != nil {
		return false, err
	}
	history, err := s.readHistory()
	if err != nil {
		return false, err
	}
	for _, existing := range history {
		if existing.ID == rec.ID {
			return false, nil
		}
	}
	history = append(history, rec)
	if err := writeJSONAtomic(s.historyPath, history); err != nil {
		return false, fmt.Errorf("appending measurement %s: %w", rec.ID, err)
	}
	return true, nil
}

// MeasurementFilter narrows a history query. Zero values mean "any".
type MeasurementFilter struct {
	From   string
	To     string
	Source string
	Limit  int // keep only the most recent N records
}

// Measurements returns history records matching the filter, oldest first.
func (s *RateStore) Measurements(f MeasurementFilter) ([]Measurement, error) {
	history, err := s.readHistory()
	if err != nil {
		return nil, err
	}
	var out []Measurement
	for _, m := range history {
		if f.From != "" && !strings.EqualFold(f.From, m.From) {
			continue
		}
		if f.To != "" && !strings.EqualFold(f.To, m.To) {
			continue
		}
		if f.Source != "" && f.Source != m.Source {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[len(out)-f.Limit:]
	}
	return out, nil
}

// UpsertPair writes the pair into the snapshot, but only if updatedAt is
// strictly newer than the stored timestamp for that pair. A late or
// out-of-order update is silently ignored.
func (s *RateStore) UpsertPair(from, to string, rate float64, updatedAt Timestamp, source string) error {
	f, err := NormalizeCode(from)
	if err != nil {
		return err
	}
	t, err := NormalizeCode(to)
	if err != nil {
		return err
	}
	if rate <= 0 {
		return fmt.Errorf("pair %s_%s rate must be positive, got %v", f, t, rate)
	}
	if source = strings.TrimSpace(source); source == "" {
		return fmt.Errorf("pair %s_%s source is required", f, t)
	}
	if updatedAt.IsZero() {
		return fmt.Errorf("pair %s_%s updated_at is required", f, t)
	}

	snap, err := s.readSnapshot()
	if err != nil {
		return err
	}
	key := PairKey(f, t)
	if cur, ok := snap.Pairs[key]; ok && !updatedAt.After(cur.UpdatedAt) {
		return nil
	}
	snap.Pairs[key] = pairRecord{Rate: rate, UpdatedAt: updatedAt, Source: source}
	return writeJSONAtomic(s.snapshotPath, snap)
}

// SetLastRefresh unconditionally stamps the snapshot-level refresh marker.
func (s *RateStore) SetLastRefresh(ts Timestamp) error {
	snap, err := s.readSnapshot()
	if err != nil {
		return err
	}
	snap.LastRefresh = ts.String()
	return writeJSONAtomic(s.snapshotPath, snap)
}

// LastRefresh returns the refresh marker, if any.
func (s *RateStore) LastRefresh() (Timestamp, bool) {
	snap, err := s.readSnapshot()
	if err != nil || snap.LastRefresh == "" {
		return Timestamp{}, false
	}
	ts, err := ParseTimestamp(snap.LastRefresh)
	if err != nil {
		return Timestamp{}, false
	}
	return ts, true
}

// IsStale reports whether the snapshot is too old to serve conversions:
// no refresh marker, an unreadable snapshot, or an age beyond the TTL.
func (s *RateStore) IsStale() bool {
	last, ok := s.LastRefresh()
	if !ok {
		return true
	}
	return s.now().UTC().Sub(last.Time()) > s.ttl
}

// Pair looks up one snapshot pair.
func (s *RateStore) Pair(from, to string) (RatePair, bool) {
	f, err := NormalizeCode(from)
	if err != nil {
		return RatePair{}, false
	}
	t, err := NormalizeCode(to)
	if err != nil {
		return RatePair{}, false
	}
	snap, err := s.readSnapshot()
	if err != nil {
		return RatePair{}, false
	}
	rec, ok := snap.Pairs[PairKey(f, t)]
	if !ok || rec.Rate <= 0 {
		return RatePair{}, false
	}
	return RatePair{From: f, To: t, Rate: rec.Rate, UpdatedAt: rec.UpdatedAt, Source: rec.Source}, true
}

// Pairs returns all snapshot pairs keyed by pair key.
func (s *RateStore) Pairs() (map[string]RatePair, error) {
	snap, err := s.readSnapshot()
	if err != nil {
		return nil, err
	}
	out := make(map[string]RatePair, len(snap.Pairs))
	for key, rec := range snap.Pairs {
		from, to, err := SplitPairKey(key)
		if err != nil {
			continue
		}
		out[key] = RatePair{From: from, To: to, Rate: rec.Rate, UpdatedAt: rec.UpdatedAt, Source: rec.Source}
	}
	return out, nil
}

func (s *RateStore) readSnapshot() (snapshotFile, error) {
	snap := snapshotFile{Pairs: map[string]pairRecord{}}
	if err := readJSON(s.snapshotPath, &snap); err != nil {
		return snapshotFile{}, fmt.Errorf("reading rate snapshot %q: %w", s.snapshotPath, err)
	}
	if snap.Pairs == nil {
		snap.Pairs = map[string]pairRecord{}
	}
	return snap, nil
}

func (s *RateStore) readHistory() ([]Measurement, error) {
	var history []Measurement
	if err := readJSON(s.historyPath, &history); err != nil {
		return nil, fmt.Errorf("reading rate history %q: %w", s.historyPath, err)
	}
	return history, nil
}

// readJSON decodes a JSON file into v. A missing file leaves v untouched;
// malformed content is an error, never silently discarded.
func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil
	}
	return json.Unmarshal(content, v)
}

// writeJSONAtomic writes v as indented JSON to a temporary file next to
// path, then renames it into place, so concurrent readers see either the
// old or the new content, never a partial write.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
