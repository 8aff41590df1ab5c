// Package tradehub implements a local-first multi-currency trading hub:
// per-user portfolios of fiat and crypto balances, traded against each other
// at externally sourced exchange rates.
//
// The core pieces are:
//   - Currency Registry: the static set of currencies the hub knows about.
//   - Rate Store: a durable snapshot of the latest pair rates plus an
//     append-only history of rate measurements, both kept as plain JSON
//     files written atomically.
//   - Updater: one refresh cycle over the configured rate sources, merging
//     their results with partial-failure tolerance.
//   - Converter: cross-currency rate resolution through a pivot currency,
//     refusing to serve rates older than the configured TTL.
//   - Ledger: buy/sell/deposit/cash-out against a user's portfolio, costed
//     through the Converter and persisted atomically.
//   - Scheduler: a background loop driving the Updater on an interval.
//
// This package is the foundation for the `vt` command-line tool; every
// command maps to one of the entry points here, and all state lives in
// human-readable JSON files under a single data directory.
package tradehub
