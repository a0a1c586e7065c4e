// Package model loads trained regression model artifacts and exposes
// prediction plus the optional post-processing metadata attached to them.
// Training lives elsewhere; artifacts are read-only here.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transform holds polynomial score transform coefficients (degree <= 2) and
// rectification flags. Coefficients are pointers so an absent coefficient is
// distinguishable from zero, matching how artifacts declare them.
type Transform struct {
	P0 *float64 `yaml:"p0"`
	P1 *float64 `yaml:"p1"`
	P2 *float64 `yaml:"p2"`

	// OutLteIn forces transformed output <= untransformed input
	OutLteIn bool `yaml:"out_lte_in"`
	// OutGteIn forces transformed output >= untransformed input
	OutGteIn bool `yaml:"out_gte_in"`
}

// Clip bounds the final score range
type Clip struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// Meta carries the optional structured values appended to an artifact.
// Absence of any entry is valid and means "no-op" for that step.
type Meta struct {
	// FeatureDict maps extractor type to the feature names the model consumes
	FeatureDict map[string][]string `yaml:"feature_dict"`

	Transform *Transform `yaml:"score_transform"`
	Clip      *Clip      `yaml:"score_clip"`
}

// Norm holds per-dimension input normalization applied before prediction
type Norm struct {
	Slopes     []float64 `yaml:"slopes"`
	Intercepts []float64 `yaml:"intercepts"`
}

// modelTypeLinear is the only regression form implemented by Predict
const modelTypeLinear = "linear"

// Model is a trained regression artifact. FeatureNames fixes the column order
// of the input matrix; Weights/Intercept define the fitted linear form.
type Model struct {
	ModelType    string    `yaml:"type"`
	FeatureNames []string  `yaml:"feature_names"`
	Intercept    float64   `yaml:"intercept"`
	Weights      []float64 `yaml:"weights"`
	Norm         *Norm     `yaml:"norm"`
	Meta         Meta      `yaml:"info"`
}

// Load reads a model artifact from path. A missing or unreadable file is a
// fatal load error surfaced before any prediction is attempted.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", path, err)
	}

	if m.ModelType != modelTypeLinear {
		return nil, fmt.Errorf("model %s has unsupported type %q (want %q)",
			path, m.ModelType, modelTypeLinear)
	}
	if len(m.FeatureNames) == 0 {
		return nil, fmt.Errorf("model %s declares no features", path)
	}
	if len(m.Weights) != len(m.FeatureNames) {
		return nil, fmt.Errorf("model %s has %d weights for %d features",
			path, len(m.Weights), len(m.FeatureNames))
	}
	if m.Norm != nil {
		if len(m.Norm.Slopes) != len(m.FeatureNames) || len(m.Norm.Intercepts) != len(m.FeatureNames) {
			return nil, fmt.Errorf("model %s normalization does not cover all features", path)
		}
	}
	return &m, nil
}

// Predict maps each feature vector to a scalar score. Rows must have one
// value per declared feature, in FeatureNames order.
func (m *Model) Predict(xs [][]float64) ([]float64, error) {
	ys := make([]float64, len(xs))
	for i, row := range xs {
		if len(row) != len(m.FeatureNames) {
			return nil, fmt.Errorf("row %d has %d values, model expects %d",
				i, len(row), len(m.FeatureNames))
		}
		y := m.Intercept
		for j, v := range row {
			if m.Norm != nil {
				v = v*m.Norm.Slopes[j] + m.Norm.Intercepts[j]
			}
			y += m.Weights[j] * v
		}
		ys[i] = y
	}
	return ys, nil
}
