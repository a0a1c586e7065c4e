package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/gwlsn/framescore/internal/feature"
)

func TestSSIMRun(t *testing.T) {
	p := &fakeProvider{result: feature.Result{
		feature.ScoresKeyFor("SSIM_feature", "ssim"):   {0.95, 0.97},
		feature.ScoresKeyFor("SSIM_feature", "ssim_l"): {0.99, 0.99},
		feature.ScoresKeyFor("SSIM_feature", "ssim_c"): {0.96, 0.98},
		feature.ScoresKeyFor("SSIM_feature", "ssim_s"): {0.94, 0.96},
	}}
	r, err := NewSSIM(p, Options{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	scores, ok := res.Values["SSIM_scores"]
	if !ok {
		t.Fatal("SSIM_scores missing from result")
	}
	if len(scores) != 2 || scores[1] != 0.97 {
		t.Errorf("scores = %v", scores)
	}

	// component sequences retained, the republished feature key dropped
	if _, ok := res.Values["SSIM_feature_ssim_l_scores"]; !ok {
		t.Error("SSIM_feature_ssim_l_scores not retained")
	}
	if _, ok := res.Values["SSIM_feature_ssim_scores"]; ok {
		t.Error("redundant SSIM_feature_ssim_scores kept alongside SSIM_scores")
	}
	if len(res.Values) != 4 {
		t.Errorf("result has %d entries, want 4", len(res.Values))
	}

	if p.lastReq.Extractor != "SSIM_feature" {
		t.Errorf("requested extractor = %q", p.lastReq.Extractor)
	}
	if len(p.lastReq.Features) != 4 || p.lastReq.Features[0] != "ssim" {
		t.Errorf("requested features = %v", p.lastReq.Features)
	}
}

func TestSTRREDRun(t *testing.T) {
	p := &fakeProvider{result: feature.Result{
		feature.ScoresKeyFor("STRRED_feature", "srred"):  {4.0, 6.0},
		feature.ScoresKeyFor("STRRED_feature", "trred"):  {8.0, 2.0},
		feature.ScoresKeyFor("STRRED_feature", "strred"): {32.0, 12.0},
	}}
	r, err := NewSTRRED(p, Options{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	scores, ok := res.Values["STRRED_scores"]
	if !ok {
		t.Fatal("STRRED_scores missing from result")
	}
	if scores[0] != 32.0 {
		t.Errorf("scores = %v", scores)
	}
	if _, ok := res.Values["STRRED_feature_srred_scores"]; !ok {
		t.Error("spatial component not retained")
	}
	if _, ok := res.Values["STRRED_feature_strred_scores"]; ok {
		t.Error("redundant STRRED_feature_strred_scores kept")
	}
}

func TestSimilarityRunnerIdentities(t *testing.T) {
	p := &fakeProvider{}

	ssim, err := NewSSIM(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if ssim.ID().Type != "SSIM" || ssim.ID().Version != "1.0" {
		t.Errorf("SSIM identity = %+v", ssim.ID())
	}

	msSsim, err := NewMsSSIM(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if msSsim.ID().Type != "MS_SSIM" || msSsim.ID().Version != "1.0" {
		t.Errorf("MS_SSIM identity = %+v", msSsim.ID())
	}

	strred, err := NewSTRRED(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strred.ID().Type != "STRRED" || strred.ID().Version != "F1.3-1.1" {
		t.Errorf("STRRED identity = %+v", strred.ID())
	}
}

func TestSimilarityRunnersRejectOptions(t *testing.T) {
	p := &fakeProvider{}

	if _, err := NewSSIM(p, Options{PhoneModel: true}); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("SSIM: expected ErrUnsupportedOption, got %v", err)
	}
	if _, err := NewMsSSIM(p, Options{EnableTransformScore: true}); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("MS_SSIM: expected ErrUnsupportedOption, got %v", err)
	}
	if _, err := NewSTRRED(p, Options{ModelFilepath: "m.yaml"}); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("STRRED: expected ErrUnsupportedOption, got %v", err)
	}
}
