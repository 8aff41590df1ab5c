package tradehub

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrInvalidAmount rejects non-positive amounts before any mutation.
	ErrInvalidAmount = errors.New("'amount' must be a positive number")

	// ErrStaleRates is returned by the Converter when the snapshot is older
	// than the configured TTL, or empty. Callers should run an update.
	ErrStaleRates = errors.New("rates are stale: run 'update-rates' to refresh them")

	// ErrNoRatesCollected is returned by the Updater when every configured
	// source failed and there is nothing to persist.
	ErrNoRatesCollected = errors.New("no rates collected: all sources failed, retry later")
)

// CurrencyNotFoundError reports a code that is not in the registry or does
// not even look like a currency code.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// InsufficientFundsError aborts a ledger operation before any mutation.
// Available and Required are already rendered in the currency's display
// precision, ready to be surfaced verbatim.
type InsufficientFundsError struct {
	Available string
	Required  string
	Code      string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available, e.Code, e.Required, e.Code)
}

// SourceError reports one rate source failing a fetch. The Updater absorbs
// it and records it in the per-source summary.
type SourceError struct {
	Source string
	Reason string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %s", e.Source, e.Reason)
}

// RateUnavailableError reports that the snapshot holds no way to price the
// pair, directly, inverted, or through the pivot.
type RateUnavailableError struct {
	From string
	To   string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no rate known for %s_%s: the pair is not in the snapshot", e.From, e.To)
}

// ErrorKind names the error category for structured action records.
func ErrorKind(err error) string {
	var (
		cnf *CurrencyNotFoundError
		iff *InsufficientFundsError
		src *SourceError
		rua *RateUnavailableError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cnf):
		return "CurrencyNotFound"
	case errors.As(err, &iff):
		return "InsufficientFunds"
	case errors.As(err, &src):
		return "SourceUnavailable"
	case errors.As(err, &rua):
		return "RateUnavailable"
	case errors.Is(err, ErrInvalidAmount):
		return "InvalidAmount"
	case errors.Is(err, ErrStaleRates):
		return "StaleRates"
	case errors.Is(err, ErrNoRatesCollected):
		return "NoRatesCollected"
	default:
		return "Internal"
	}
}
