package feature

import (
	"testing"
)

func TestScoresKey(t *testing.T) {
	if got := ScoresKey("vif"); got != "VMAF_feature_vif_scores" {
		t.Errorf("ScoresKey(vif) = %q", got)
	}
	if got := ScoresKey("vif_scale0"); got != "VMAF_feature_vif_scale0_scores" {
		t.Errorf("ScoresKey(vif_scale0) = %q", got)
	}
	if got := ScoresKeyFor("SSIM_feature", "ssim_l"); got != "SSIM_feature_ssim_l_scores" {
		t.Errorf("ScoresKeyFor(SSIM_feature, ssim_l) = %q", got)
	}
}

func TestSequence(t *testing.T) {
	r := Result{
		ScoresKey("vif"):    {0.9, 0.8},
		ScoresKey("motion"): {2.1, 3.4},
	}

	vals, err := r.Sequence("vif")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[0] != 0.9 {
		t.Errorf("unexpected sequence: %v", vals)
	}

	if _, err := r.Sequence("adm"); err == nil {
		t.Error("expected error for missing feature")
	}
}

func TestSequenceFor(t *testing.T) {
	r := Result{
		ScoresKeyFor("STRRED_feature", "srred"): {4.0, 6.0},
	}

	vals, err := r.SequenceFor("STRRED_feature", "srred")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[1] != 6.0 {
		t.Errorf("unexpected sequence: %v", vals)
	}

	// the same name under a different extractor is a different feature
	if _, err := r.Sequence("srred"); err == nil {
		t.Error("expected error for wrong extractor lookup")
	}
}

func TestFrameCount(t *testing.T) {
	r := Result{
		ScoresKey("vif"):    {0.9, 0.8, 0.7},
		ScoresKey("motion"): {2.1, 3.4, 1.0},
	}
	n, err := r.FrameCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("FrameCount = %d, want 3", n)
	}

	r[ScoresKey("adm")] = []float64{0.5}
	if _, err := r.FrameCount(); err == nil {
		t.Error("expected error for mismatched lengths")
	}

	if _, err := (Result{}).FrameCount(); err == nil {
		t.Error("expected error for empty result")
	}
}
