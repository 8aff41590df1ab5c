package tradehub

import "fmt"

// Quote is the answer to one rate query.
type Quote struct {
	From      string
	To        string
	Rate      float64
	UpdatedAt Timestamp
}

// Converter answers cross-currency rate queries from the rate snapshot.
//
// Resolution goes through a fixed pivot currency (the cash currency): a
// pair with no direct or inverse entry is priced as the ratio of the two
// legs against the pivot. Before any lookup the snapshot freshness is
// checked; expired data is never served.
type Converter struct {
	store *RateStore
	pivot string
}

// NewConverter returns a converter pivoting through the given currency.
func NewConverter(store *RateStore, pivot string) *Converter {
	return &Converter{store: store, pivot: pivot}
}

// Pivot returns the pivot currency code.
func (c *Converter) Pivot() string { return c.pivot }

// RateToBase returns the price of one unit of code expressed in base.
func (c *Converter) RateToBase(code, base string) (float64, error) {
	q, err := c.Quote(code, base)
	if err != nil {
		return 0, err
	}
	return q.Rate, nil
}

// Quote resolves the rate from one currency to another, along with the
// instant the underlying snapshot data was last updated.
func (c *Converter) Quote(from, to string) (Quote, error) {
	fromCur, err := Resolve(from)
	if err != nil {
		return Quote{}, err
	}
	toCur, err := Resolve(to)
	if err != nil {
		return Quote{}, err
	}
	f, t := fromCur.Code(), toCur.Code()

	if c.store.IsStale() {
		return Quote{}, ErrStaleRates
	}
	return c.quote(f, t)
}

// quote assumes registered codes and a fresh snapshot.
func (c *Converter) quote(from, to string) (Quote, error) {
	if from == to {
		// Identity conversion is always 1, dated by the snapshot itself.
		last, _ := c.store.LastRefresh()
		return Quote{From: from, To: to, Rate: 1.0, UpdatedAt: last}, nil
	}

	// One of the ends is the pivot: a single direct or inverse lookup.
	if from == c.pivot || to == c.pivot {
		if q, ok := c.pairQuote(from, to); ok {
			return q, nil
		}
		return Quote{}, &RateUnavailableError{From: from, To: to}
	}

	// Two hops through the pivot.
	num, ok := c.pairQuote(from, c.pivot)
	if !ok {
		return Quote{}, &RateUnavailableError{From: from, To: c.pivot}
	}
	den, ok := c.pairQuote(to, c.pivot)
	if !ok {
		return Quote{}, &RateUnavailableError{From: to, To: c.pivot}
	}
	if den.Rate == 0 {
		return Quote{}, fmt.Errorf("rate %s_%s: %w", from, to, &RateUnavailableError{From: to, To: c.pivot})
	}
	updated := num.UpdatedAt
	if den.UpdatedAt.Before(updated) {
		updated = den.UpdatedAt
	}
	return Quote{From: from, To: to, Rate: num.Rate / den.Rate, UpdatedAt: updated}, nil
}

// pairQuote looks the pair up directly, then inverted. Non-positive stored
// rates are treated as absent.
func (c *Converter) pairQuote(from, to string) (Quote, bool) {
	if p, ok := c.store.Pair(from, to); ok && p.Rate > 0 {
		return Quote{From: from, To: to, Rate: p.Rate, UpdatedAt: p.UpdatedAt}, true
	}
	if p, ok := c.store.Pair(to, from); ok && p.Rate > 0 {
		return Quote{From: from, To: to, Rate: 1 / p.Rate, UpdatedAt: p.UpdatedAt}, true
	}
	return Quote{}, false
}
