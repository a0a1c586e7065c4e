package runner

import (
	"fmt"
)

// Result is the outcome of scoring one asset with one runner. It is produced
// exactly once per (asset, identity) pair and immutable after creation.
// ScoresKey names the final score sequence inside Values; it is persisted so
// a result restored from the cache needs no knowledge of the identity scheme.
type Result struct {
	RunnerID   string               `json:"runner_id"`
	AssetToken string               `json:"asset_token"`
	ScoresKey  string               `json:"scores_key"`
	Values     map[string][]float64 `json:"values"`
}

func newResult(id Identity, assetToken string, values map[string][]float64) *Result {
	return &Result{
		RunnerID:   id.String(),
		AssetToken: assetToken,
		ScoresKey:  id.ScoresKey(),
		Values:     values,
	}
}

// Scores returns the final per-frame quality score sequence
func (r *Result) Scores() ([]float64, error) {
	scores, ok := r.Values[r.ScoresKey]
	if !ok {
		return nil, fmt.Errorf("result %s has no score sequence", r.RunnerID)
	}
	return scores, nil
}

// AggregateScore returns the mean of the per-frame scores
func (r *Result) AggregateScore() (float64, error) {
	scores, err := r.Scores()
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, fmt.Errorf("result %s has zero frames", r.RunnerID)
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

// FrameCount returns the length of the final score sequence
func (r *Result) FrameCount() (int, error) {
	scores, err := r.Scores()
	if err != nil {
		return 0, err
	}
	return len(scores), nil
}
