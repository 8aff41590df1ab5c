package tradehub

import (
	"errors"
	"math"
	"testing"
	"time"
)

// seededConverter returns a fresh store preloaded with a typical snapshot
// and a converter pivoting through USD.
func seededConverter(t *testing.T) (*RateStore, *Converter) {
	t.Helper()
	s := newTestStore(t)
	refresh := mustTS(t, "2025-10-01T12:00:00Z")
	seed := []struct {
		from, to string
		rate     float64
	}{
		{"BTC", "USD", 60000},
		{"ETH", "USD", 2500},
		{"EUR", "USD", 1.1},
	}
	for _, p := range seed {
		if err := s.UpsertPair(p.from, p.to, p.rate, refresh, "test"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetLastRefresh(refresh); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return refresh.Time().Add(time.Minute) }
	return s, NewConverter(s, "USD")
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuote(t *testing.T) {
	_, c := seededConverter(t)

	cases := []struct {
		from, to string
		want     float64
	}{
		{"BTC", "USD", 60000},       // direct
		{"usd", "btc", 1.0 / 60000}, // inverse, lower-case input
		{"BTC", "BTC", 1},           // identity
		{"ETH", "BTC", 2500.0 / 60000},
		{"BTC", "EUR", 60000 / 1.1},
		{"EUR", "ETH", 1.1 / 2500},
	}
	for _, tc := range cases {
		q, err := c.Quote(tc.from, tc.to)
		if err != nil {
			t.Errorf("Quote(%s, %s): %v", tc.from, tc.to, err)
			continue
		}
		if !almostEqual(q.Rate, tc.want) {
			t.Errorf("Quote(%s, %s) = %v, want %v", tc.from, tc.to, q.Rate, tc.want)
		}
	}
}

func TestQuoteInverseConsistency(t *testing.T) {
	_, c := seededConverter(t)
	ab, err := c.Quote("ETH", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	ba, err := c.Quote("EUR", "ETH")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(ab.Rate*ba.Rate, 1) {
		t.Errorf("rate * inverse = %v, want 1", ab.Rate*ba.Rate)
	}
}

func TestQuoteUnknownCurrency(t *testing.T) {
	_, c := seededConverter(t)
	var notFound *CurrencyNotFoundError
	if _, err := c.Quote("XYZ", "USD"); !errors.As(err, &notFound) {
		t.Errorf("error = %v, want CurrencyNotFoundError", err)
	}
}

func TestQuoteMissingPair(t *testing.T) {
	_, c := seededConverter(t)
	// SOL is registered but has no snapshot entry
	var unavailable *RateUnavailableError
	if _, err := c.Quote("SOL", "USD"); !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want RateUnavailableError", err)
	}
	if _, err := c.Quote("SOL", "EUR"); !errors.As(err, &unavailable) {
		t.Fatalf("cross error = %v, want RateUnavailableError", err)
	}
}

func TestQuoteStaleGate(t *testing.T) {
	s, c := seededConverter(t)
	s.now = func() time.Time {
		return mustTS(t, "2025-10-01T12:00:00Z").Time().Add(time.Hour)
	}
	if _, err := c.Quote("BTC", "USD"); !errors.Is(err, ErrStaleRates) {
		t.Fatalf("error = %v, want ErrStaleRates", err)
	}
	// even identity is gated: a dead cache answers nothing
	if _, err := c.Quote("USD", "USD"); !errors.Is(err, ErrStaleRates) {
		t.Fatalf("identity error = %v, want ErrStaleRates", err)
	}

	// a refresh brings the converter back
	refresh := NewTimestamp(s.now())
	if err := s.SetLastRefresh(refresh); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Quote("BTC", "USD"); err != nil {
		t.Fatalf("after refresh: %v", err)
	}
}

func TestQuoteCrossUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	older := mustTS(t, "2025-10-01T12:00:00Z")
	newer := mustTS(t, "2025-10-01T12:05:00Z")
	if err := s.UpsertPair("ETH", "USD", 2500, newer, "test"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertPair("BTC", "USD", 60000, older, "test"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastRefresh(newer); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return newer.Time().Add(time.Minute) }

	q, err := NewConverter(s, "USD").Quote("ETH", "BTC")
	if err != nil {
		t.Fatal(err)
	}
	// a derived quote is only as fresh as its oldest leg
	if !q.UpdatedAt.Equal(older) {
		t.Errorf("UpdatedAt = %s, want the older leg %s", q.UpdatedAt, older)
	}
}
