// Package feature defines the per-frame feature interface consumed by the
// scoring runners. Feature values are computed by an external collaborator;
// this package only names them and carries them.
package feature

import (
	"context"
	"fmt"

	"github.com/gwlsn/framescore/internal/asset"
)

// ExtractorType is the type name of the elementary VMAF feature extractor,
// the default for requests that do not name one.
const ExtractorType = "VMAF_feature"

// ScoresKeyFor returns the result key for a named feature of the given
// extractor, e.g. "SSIM_feature_ssim_scores". The extractor type prefixes
// every key so feature sequences from different extractors cannot collide in
// a merged result.
func ScoresKeyFor(extractor, name string) string {
	return fmt.Sprintf("%s_%s_scores", extractor, name)
}

// ScoresKey returns the result key for a named feature of the default
// extractor, e.g. "VMAF_feature_vif_scores".
func ScoresKey(name string) string {
	return ScoresKeyFor(ExtractorType, name)
}

// Result maps feature score keys to per-frame value sequences. All sequences
// for one asset share the same length. Read-only to consumers.
type Result map[string][]float64

// Sequence returns the per-frame values for a named feature of the default
// extractor
func (r Result) Sequence(name string) ([]float64, error) {
	return r.SequenceFor(ExtractorType, name)
}

// SequenceFor returns the per-frame values for a named feature of the given
// extractor
func (r Result) SequenceFor(extractor, name string) ([]float64, error) {
	vals, ok := r[ScoresKeyFor(extractor, name)]
	if !ok {
		return nil, fmt.Errorf("feature %q missing from %s result", name, extractor)
	}
	return vals, nil
}

// FrameCount returns the shared sequence length, or an error if the
// sequences disagree
func (r Result) FrameCount() (int, error) {
	n := -1
	for key, vals := range r {
		if n == -1 {
			n = len(vals)
			continue
		}
		if len(vals) != n {
			return 0, fmt.Errorf("feature %q has %d frames, others have %d", key, len(vals), n)
		}
	}
	if n <= 0 {
		return 0, fmt.Errorf("feature result is empty")
	}
	return n, nil
}

// Request names the features a runner needs for one asset. Runners always set
// Parallelize false - concurrency across assets lives in the batch layer, and
// stacking the two would oversubscribe the CPU.
type Request struct {
	// Extractor selects the feature extractor type; empty means ExtractorType
	Extractor   string
	Features    []string
	Parallelize bool
}

// Provider computes per-frame feature values for an asset. Implementations
// must be synchronous and idempotent per asset so results can be memoized.
type Provider interface {
	Extract(ctx context.Context, a asset.Asset, req Request) (Result, error)
}
