// Package feed provides market snapshot and history sources.
package feed

import (
	"context"
	"errors"

	"NepseSentinel/internal/model"
)

// ErrUnavailable reports that a market source could not produce a snapshot.
// The scheduler retries a bounded number of times and then switches the
// cycle to the fallback source.
var ErrUnavailable = errors.New("market feed unavailable")

// Source produces the current market snapshot.
type Source interface {
	FetchSnapshot(ctx context.Context) (model.Snapshot, error)
	Name() string
}

// HistoryProvider is the optional capability of serving per-symbol price
// history. Sources without it are wired as a nil HistoryProvider and the
// history-based indicators degrade to their defaults.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, symbol string) (model.SymbolHistory, error)
}
