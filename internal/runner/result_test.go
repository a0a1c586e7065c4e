package runner

import (
	"encoding/json"
	"math"
	"testing"
)

func TestResultScoresAndAggregate(t *testing.T) {
	id := Identity{Type: "PSNR", Version: "1.0"}
	res := newResult(id, "token", map[string][]float64{
		"PSNR_scores": {30.0, 32.0, 34.0},
	})

	scores, err := res.Scores()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores", len(scores))
	}

	mean, err := res.AggregateScore()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mean-32.0) > 1e-12 {
		t.Errorf("mean = %v, want 32", mean)
	}

	n, err := res.FrameCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("frame count = %d, want 3", n)
	}
}

func TestResultScoresAfterJSONRoundTrip(t *testing.T) {
	// A cached result must locate its score sequence structurally, even for
	// type names that themselves contain the "_V" identity separator.
	id := Identity{Type: "MY_VARIANT", Version: "1.0"}
	orig := newResult(id, "token", map[string][]float64{
		"MY_VARIANT_scores":          {50.0, 86.0},
		"VMAF_feature_motion_scores": {10.0, 17.0},
	})

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var restored Result
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}

	if restored.ScoresKey != "MY_VARIANT_scores" {
		t.Errorf("restored scores key = %q", restored.ScoresKey)
	}
	scores, err := restored.Scores()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[1] != 86.0 {
		t.Errorf("restored scores = %v", scores)
	}
}

func TestResultMissingScoresFatal(t *testing.T) {
	res := &Result{RunnerID: "PSNR_V1.0", ScoresKey: "PSNR_scores", Values: map[string][]float64{}}
	if _, err := res.Scores(); err == nil {
		t.Error("expected error for result without score sequence")
	}
}
