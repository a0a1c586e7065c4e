// Package batch scores many assets with one runner under a concurrency
// limit. All cross-asset parallelism lives here; runners stay strictly
// sequential internally.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/logger"
	"github.com/gwlsn/framescore/internal/runner"
	"github.com/gwlsn/framescore/internal/store"
)

// Outcome pairs an asset with its result and whether it was served from cache
type Outcome struct {
	Asset  asset.Asset
	Result *runner.Result
	Cached bool
}

// Run scores every asset with rn, at most parallel at a time. When st is
// non-nil, previously cached results for the same (asset, identity) pair are
// reused and fresh results are saved back. onDone, if non-nil, is called once
// per finished asset (from multiple goroutines). The first failure cancels
// the remaining work; results are returned in input order.
func Run(ctx context.Context, rn runner.Runner, st store.Store, assets []asset.Asset,
	parallel int, onDone func(Outcome)) ([]Outcome, error) {

	if parallel < 1 {
		parallel = 1
	}
	runnerID := rn.ID().String()

	outcomes := make([]Outcome, len(assets))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, a := range assets {
		i, a := i, a
		g.Go(func() error {
			out, err := runOne(ctx, rn, st, runnerID, a)
			if err != nil {
				return fmt.Errorf("scoring %s: %w", a.String(), err)
			}

			mu.Lock()
			outcomes[i] = out
			mu.Unlock()

			if onDone != nil {
				onDone(out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runOne(ctx context.Context, rn runner.Runner, st store.Store, runnerID string,
	a asset.Asset) (Outcome, error) {

	if st != nil {
		cached, err := st.Get(a.Token(), runnerID)
		if err != nil {
			return Outcome{}, err
		}
		if cached != nil {
			logger.Debug("Cache hit", "runner", runnerID, "asset", a.String())
			return Outcome{Asset: a, Result: cached, Cached: true}, nil
		}
	}

	res, err := rn.Run(ctx, a)
	if err != nil {
		return Outcome{}, err
	}

	if st != nil {
		if err := st.Save(res); err != nil {
			// A failed cache write must not discard a good score
			logger.Warn("Failed to cache result", "runner", runnerID, "asset", a.String(), "error", err)
		}
	}
	return Outcome{Asset: a, Result: res}, nil
}
