package tradehub

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RateSource is one external price feed. Implementations encapsulate their
// endpoint, query shape and response parsing; the Updater only sees this
// contract.
type RateSource interface {
	Name() string
	// FetchRates returns a "{CODE}_{BASE}" pair key to rate mapping. It
	// fails with a SourceError on network errors, bad statuses or unusable
	// payloads; individually missing symbols are omitted, not errors.
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// Source statuses in an UpdateSummary.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// SourceResult is the outcome of one source within an update cycle.
type SourceResult struct {
	Source string `json:"source"`
	Status string `json:"status"`
	Pairs  int    `json:"pairs,omitempty"`
	Err    string `json:"error_message,omitempty"`
}

// UpdateSummary is the structured outcome of one refresh cycle, returned
// for observability even when persistence was only partially successful.
type UpdateSummary struct {
	ID              uuid.UUID      `json:"id"`
	Result          string         `json:"result"`
	LastRefresh     Timestamp      `json:"last_refresh"`
	PairsUpdated    int            `json:"pairs_updated"`
	HistoryInserted int            `json:"history_inserted"`
	Sources         []SourceResult `json:"sources"`
}

// Updater orchestrates one refresh cycle across all configured sources and
// persists the merged result. It is the sole writer of the rate store.
type Updater struct {
	sources []RateSource
	store   *RateStore
	log     zerolog.Logger

	now func() time.Time // overridable in tests
}

// NewUpdater returns an updater over the given sources, tried in order.
func NewUpdater(store *RateStore, log zerolog.Logger, sources ...RateSource) *Updater {
	return &Updater{sources: sources, store: store, log: log, now: time.Now}
}

// RunUpdate fetches every configured source, merges the results and writes
// the store. One source failing never aborts the others; for a given pair
// key the last source in configured order wins. If nothing at all was
// collected the cycle fails with ErrNoRatesCollected and persists nothing.
// Per-pair persistence failures are absorbed: the rest of the pairs are
// still written and the summary reports what happened.
func (u *Updater) RunUpdate(ctx context.Context) (UpdateSummary, error) {
	summary := UpdateSummary{
		ID:          uuid.New(),
		LastRefresh: NewTimestamp(u.now()),
	}
	log := u.log.With().Stringer("update_id", summary.ID).Logger()
	log.Info().Int("sources", len(u.sources)).Msg("update cycle start")

	combined := map[string]float64{}
	origin := map[string]string{}
	for _, src := range u.sources {
		rates, err := src.FetchRates(ctx)
		if err != nil {
			log.Warn().Str("source", src.Name()).Err(err).Msg("source failed")
			summary.Sources = append(summary.Sources, SourceResult{
				Source: src.Name(), Status: StatusError, Err: err.Error(),
			})
			continue
		}
		count := 0
		for key, rate := range rates {
			from, to, err := SplitPairKey(key)
			if err != nil || rate <= 0 {
				continue
			}
			combined[PairKey(from, to)] = rate
			origin[PairKey(from, to)] = src.Name()
			count++
		}
		log.Info().Str("source", src.Name()).Int("pairs", count).Msg("source ok")
		summary.Sources = append(summary.Sources, SourceResult{
			Source: src.Name(), Status: StatusOK, Pairs: count,
		})
	}

	if len(combined) == 0 {
		summary.Result = StatusError
		log.Error().Msg("update cycle collected no rates")
		return summary, ErrNoRatesCollected
	}

	for key, rate := range combined {
		from, to, err := SplitPairKey(key)
		if err != nil {
			continue
		}
		inserted, err := u.store.AppendMeasurement(Measurement{
			From:      from,
			To:        to,
			Rate:      rate,
			Timestamp: summary.LastRefresh,
			Source:    origin[key],
		})
		if err != nil {
			log.Warn().Str("pair", key).Err(err).Msg("history append failed")
		} else if inserted {
			summary.HistoryInserted++
		}

		if err := u.store.UpsertPair(from, to, rate, summary.LastRefresh, origin[key]); err != nil {
			log.Warn().Str("pair", key).Err(err).Msg("snapshot upsert failed")
			continue
		}
		summary.PairsUpdated++
	}

	if err := u.store.SetLastRefresh(summary.LastRefresh); err != nil {
		log.Warn().Err(err).Msg("stamping last_refresh failed")
	}

	summary.Result = StatusOK
	log.Info().
		Int("pairs_updated", summary.PairsUpdated).
		Int("history_inserted", summary.HistoryInserted).
		Msg("update cycle done")
	return summary, nil
}
