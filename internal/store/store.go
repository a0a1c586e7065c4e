// Package store persists scoring results keyed by (asset token, runner
// identity). The identity scheme guarantees a cached result is never served
// to an incompatible runner version.
package store

import (
	"github.com/gwlsn/framescore/internal/runner"
)

// Store defines the persistence interface for scoring results.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a result under its own (asset token, runner identity)
	// pair. An existing row for the same pair is replaced.
	Save(res *runner.Result) error

	// Get retrieves a result by asset token and runner identity.
	// Returns nil if not found.
	Get(assetToken, runnerID string) (*runner.Result, error)

	// Delete removes a result. Returns nil if it doesn't exist.
	Delete(assetToken, runnerID string) error

	// Count returns the number of cached results.
	Count() (int, error)

	// Close closes the store and releases resources.
	Close() error
}
