package runner

import (
	"context"
	"fmt"
	"math"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/feature"
	"github.com/gwlsn/framescore/internal/model"
)

// LegacyModelFile is the default artifact for the legacy runner
const LegacyModelFile = "model_v8a.yaml"

// Post-regression motion correction constants. High-motion content makes the
// regression over/under-shoot; the correction scales scores linearly between
// the two motion breakpoints. These numbers are part of this version's
// identity and must not change.
const (
	motionCorrectionStart = 12.0
	motionCorrectionCap   = 20.0
	motionCorrectionSlope = 0.015
)

// legacyFeature pairs a feature name with the rescale bounds its values are
// normalized by before prediction. Order is fixed: the model was trained on
// columns in exactly this order.
type legacyFeature struct {
	name  string
	lower float64
	upper float64
}

var legacyFeatures = []legacyFeature{
	{"vif", 0.0, 1.0},
	{"adm", 0.4, 1.0},
	{"ansnr", 10.0, 50.0},
	{"motion", 0.0, 20.0},
}

// Legacy is the 4-feature SVR runner with motion post-correction.
// Feature assembly + regression strategy.
type Legacy struct {
	provider  feature.Provider
	modelPath string
}

// NewLegacy creates the legacy runner. Its model artifact and every numeric
// constant are fixed by version, so all recognized options are rejected.
func NewLegacy(provider feature.Provider, modelPath string, opts Options) (*Legacy, error) {
	if err := opts.reject("VMAF_legacy", "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &Legacy{provider: provider, modelPath: modelPath}, nil
}

func (r *Legacy) ID() Identity {
	return Identity{Type: "VMAF_legacy", Version: "F" + featureVersion + "-1.1"}
}

// correctForMotion scales a predicted score for high-motion frames and clips
// the result into [0, 100]
func correctForMotion(motion, score float64) float64 {
	if motion > motionCorrectionStart {
		v := math.Min(motion, motionCorrectionCap)
		score *= 1 + (v-motionCorrectionStart)*motionCorrectionSlope
	}
	if score > 100.0 {
		score = 100.0
	} else if score < 0.0 {
		score = 0.0
	}
	return score
}

// Run extracts the four features, rescales each into the model's training
// domain, predicts per frame, applies the motion correction, and merges the
// raw feature sequences into the result.
func (r *Legacy) Run(ctx context.Context, a asset.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(legacyFeatures))
	for i, f := range legacyFeatures {
		names[i] = f.name
	}

	feats, err := r.provider.Extract(ctx, a, feature.Request{Features: names})
	if err != nil {
		return nil, fmt.Errorf("extracting features: %w", err)
	}

	m, err := model.Load(r.modelPath)
	if err != nil {
		return nil, err
	}
	if len(m.FeatureNames) != len(legacyFeatures) {
		return nil, fmt.Errorf("legacy model must take %d features, has %d",
			len(legacyFeatures), len(m.FeatureNames))
	}

	frames, err := feats.FrameCount()
	if err != nil {
		return nil, err
	}

	// Column-rescale, then assemble per-frame rows in the fixed order
	rescaled := make([][]float64, len(legacyFeatures))
	for i, f := range legacyFeatures {
		seq, err := feats.Sequence(f.name)
		if err != nil {
			return nil, err
		}
		rescaled[i] = Rescale(seq, f.lower, f.upper)
	}

	xs := make([][]float64, frames)
	for fr := 0; fr < frames; fr++ {
		row := make([]float64, len(legacyFeatures))
		for i := range legacyFeatures {
			row[i] = rescaled[i][fr]
		}
		xs[fr] = row
	}

	ys, err := m.Predict(xs)
	if err != nil {
		return nil, err
	}

	// Correction keys off the raw motion value, not the rescaled column
	motion, err := feats.Sequence("motion")
	if err != nil {
		return nil, err
	}
	scores := make([]float64, frames)
	for fr := 0; fr < frames; fr++ {
		scores[fr] = correctForMotion(motion[fr], ys[fr])
	}

	id := r.ID()
	values := make(map[string][]float64, len(feats)+1)
	for key, seq := range feats {
		values[key] = seq
	}
	values[id.ScoresKey()] = scores

	return newResult(id, a.Token(), values), nil
}
