package runner

import (
	"github.com/gwlsn/framescore/internal/model"
)

// Rescale clips every value into [lower, upper] and linearly maps the result
// to [0, 1]. Models are trained on normalized inputs, so the bound pair used
// here is part of the consuming runner's versioned identity.
func Rescale(vals []float64, lower, upper float64) []float64 {
	out := make([]float64, len(vals))
	span := upper - lower
	for i, v := range vals {
		if v < lower {
			v = lower
		} else if v > upper {
			v = upper
		}
		out[i] = (v - lower) / span
	}
	return out
}

// transformScore applies the model's polynomial score transform
// y = p0 + p1*x + p2*x^2 (missing coefficients count as 0), then the
// rectification clamps. When both rectification flags are set, lte applies
// first and gte second, so gte wins if the input violates both.
// A model without transform metadata is a no-op.
func transformScore(m *model.Model, ys []float64) []float64 {
	t := m.Meta.Transform
	if t == nil {
		return ys
	}

	out := make([]float64, len(ys))
	for i, yIn := range ys {
		var y float64
		if t.P0 != nil {
			y += *t.P0
		}
		if t.P1 != nil {
			y += *t.P1 * yIn
		}
		if t.P2 != nil {
			y += *t.P2 * yIn * yIn
		}

		if t.OutLteIn && y > yIn {
			y = yIn
		}
		if t.OutGteIn && y < yIn {
			y = yIn
		}
		out[i] = y
	}
	return out
}

// clipScore bounds predictions into the model's declared clip range.
// A model without clip metadata is a no-op.
func clipScore(m *model.Model, ys []float64) []float64 {
	c := m.Meta.Clip
	if c == nil {
		return ys
	}

	out := make([]float64, len(ys))
	for i, y := range ys {
		if y < c.Lower {
			y = c.Lower
		} else if y > c.Upper {
			y = c.Upper
		}
		out[i] = y
	}
	return out
}

// PredictWithModel runs the model on the feature matrix and applies the
// post-processing chain: optional transform, then clip unless disabled.
// Transform and clip metadata are looked up independently; absence of either
// is a no-op for that step.
func PredictWithModel(m *model.Model, xs [][]float64, disableClip, enableTransform bool) ([]float64, error) {
	ys, err := m.Predict(xs)
	if err != nil {
		return nil, err
	}

	if enableTransform {
		ys = transformScore(m, ys)
	}
	if !disableClip {
		ys = clipScore(m, ys)
	}
	return ys, nil
}
