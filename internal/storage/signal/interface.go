// Package signal persists generated signals so callers can query past
// batches. The engine never touches this package: signals are handed in by
// the caller after a generation run.
package signal

import (
	"context"
	"time"

	"github.com/quantpulse/pulse/internal/core"
)

// Store defines the interface for signal persistence.
type Store interface {
	// Save persists a signal and assigns an ID.
	Save(ctx context.Context, sig core.Signal) (string, error)

	// SaveBatch persists a generation run's signals in order.
	SaveBatch(ctx context.Context, sigs []core.Signal) error

	// GetByID retrieves a signal by its ID.
	GetByID(ctx context.Context, id string) (*core.Signal, error)

	// List retrieves signals matching the filter in insertion order.
	List(ctx context.Context, filter ListFilter) ([]core.Signal, error)

	// Count returns the number of signals matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter defines criteria for listing signals.
type ListFilter struct {
	Direction   core.Direction
	RiskLevel   core.RiskLevel
	MinStrength float64
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}
