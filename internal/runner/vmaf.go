package runner

import (
	"context"
	"fmt"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/feature"
	"github.com/gwlsn/framescore/internal/model"
)

// DefaultModelFile is the default artifact for the model-driven runners
const DefaultModelFile = "vmaf_v0.6.1.yaml"

const vmafVersion = "F" + featureVersion + "-0.6.1"

// defaultFeatureDict is the fallback feature spec for models that predate
// the feature_dict metadata entry
var defaultFeatureDict = map[string][]string{
	feature.ExtractorType: {"vif", "adm", "motion", "ansnr"},
}

// VMAF is the model-driven runner: the loaded artifact decides the feature
// set, the transform, and the clip bounds. Feature assembly + regression
// strategy.
type VMAF struct {
	provider         feature.Provider
	defaultModelPath string
	opts             Options

	// forceTransform is set by the phone variant, whose identity already
	// encodes that the transform is always applied
	forceTransform bool
	id             Identity
}

// NewVMAF creates the model-driven runner
func NewVMAF(provider feature.Provider, defaultModelPath string, opts Options) (*VMAF, error) {
	if err := opts.reject("VMAF", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &VMAF{
		provider:         provider,
		defaultModelPath: defaultModelPath,
		opts:             opts,
		id:               Identity{Type: "VMAF", Version: vmafVersion},
	}, nil
}

// NewPhone creates the phone-model variant. The transform is unconditionally
// enabled, so an explicit enable_transform_score option is ambiguous and
// rejected before anything executes.
func NewPhone(provider feature.Provider, defaultModelPath string, opts Options) (*VMAF, error) {
	if opts.EnableTransformScore {
		return nil, unsupportedOptionError("VMAF_Phone", "enable_transform_score")
	}
	if err := opts.reject("VMAF_Phone", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &VMAF{
		provider:         provider,
		defaultModelPath: defaultModelPath,
		opts:             opts,
		forceTransform:   true,
		id:               Identity{Type: "VMAF_Phone", Version: vmafVersion + "-phone"},
	}, nil
}

func (r *VMAF) ID() Identity {
	return r.id
}

func (r *VMAF) loadModel() (*model.Model, error) {
	path := r.defaultModelPath
	if r.opts.ModelFilepath != "" {
		path = r.opts.ModelFilepath
	}
	return model.Load(path)
}

// Run loads the model, extracts the features it declares, predicts, and runs
// the transform/clip chain per the model metadata and options
func (r *VMAF) Run(ctx context.Context, a asset.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	m, err := r.loadModel()
	if err != nil {
		return nil, err
	}

	featureDict := m.Meta.FeatureDict
	if featureDict == nil {
		featureDict = defaultFeatureDict
	}
	names, ok := featureDict[feature.ExtractorType]
	if !ok || len(featureDict) != 1 {
		return nil, fmt.Errorf("model feature_dict requires extractors beyond %s", feature.ExtractorType)
	}

	feats, err := r.provider.Extract(ctx, a, feature.Request{Features: names})
	if err != nil {
		return nil, fmt.Errorf("extracting features: %w", err)
	}

	frames, err := feats.FrameCount()
	if err != nil {
		return nil, err
	}

	// Assemble the per-frame matrix with columns in the model's order.
	// Model feature names are full score keys, e.g. "VMAF_feature_vif_scores".
	columns := make([][]float64, len(m.FeatureNames))
	for j, key := range m.FeatureNames {
		seq, ok := feats[key]
		if !ok {
			return nil, fmt.Errorf("model input %q not produced by feature extraction", key)
		}
		columns[j] = seq
	}
	xs := make([][]float64, frames)
	for fr := 0; fr < frames; fr++ {
		row := make([]float64, len(columns))
		for j := range columns {
			row[j] = columns[j][fr]
		}
		xs[fr] = row
	}

	enableTransform := r.forceTransform || r.opts.EnableTransformScore
	ys, err := PredictWithModel(m, xs, r.opts.DisableClipScore, enableTransform)
	if err != nil {
		return nil, err
	}

	id := r.ID()
	values := make(map[string][]float64, len(feats)+1)
	for key, seq := range feats {
		values[key] = seq
	}
	values[id.ScoresKey()] = ys

	return newResult(id, a.Token(), values), nil
}
