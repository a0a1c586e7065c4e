package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/feature"
)

// Passthrough republishes one extractor feature's sequence as its quality
// score, with no regression and no post-processing. The extractor's remaining
// sequences are retained in the result; the score feature's own key is
// dropped as redundant. One parametrized type covers the whole family of
// single-extractor runners; downstream consumers treat it exactly like any
// other variant.
type Passthrough struct {
	provider  feature.Provider
	extractor string
	features  []string
	scoreName string
	id        Identity
}

// NewPassthrough creates a single-feature runner for the named feature of the
// default extractor. It consumes no options, so any supplied option is
// rejected.
func NewPassthrough(provider feature.Provider, featureName string, opts Options) (*Passthrough, error) {
	if featureName == "" {
		return nil, fmt.Errorf("passthrough runner requires a feature name")
	}
	runnerType := strings.ToUpper(featureName)
	if err := opts.reject(runnerType, "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &Passthrough{
		provider:  provider,
		extractor: feature.ExtractorType,
		features:  []string{featureName},
		scoreName: featureName,
		id:        Identity{Type: runnerType, Version: "F" + featureVersion + "-0"},
	}, nil
}

func (r *Passthrough) ID() Identity {
	return r.id
}

// Run extracts the configured feature set and republishes the score feature
// under the runner's score key
func (r *Passthrough) Run(ctx context.Context, a asset.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	feats, err := r.provider.Extract(ctx, a, feature.Request{
		Extractor: r.extractor,
		Features:  r.features,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting %s features: %w", r.extractor, err)
	}

	seq, err := feats.SequenceFor(r.extractor, r.scoreName)
	if err != nil {
		return nil, err
	}

	id := r.ID()
	scoreFeatureKey := feature.ScoresKeyFor(r.extractor, r.scoreName)
	values := make(map[string][]float64, len(feats))
	for key, s := range feats {
		if key == scoreFeatureKey {
			continue
		}
		values[key] = s
	}
	values[id.ScoresKey()] = seq

	return newResult(id, a.Token(), values), nil
}
