package runner

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gwlsn/framescore/internal/parse"
)

const ossExecLog = `{
	"frames": [
		{"frameNum": 0, "metrics": {"vmaf": 91.2, "adm2": 0.98, "motion": 3.1}},
		{"frameNum": 1, "metrics": {"vmaf": 89.7, "adm2": 0.97, "motion": 4.2}},
		{"frameNum": 2, "metrics": {"vmaf": 90.5, "motion": 2.8}}
	]
}`

func newOssExecForTest(t *testing.T) *OssExec {
	t.Helper()
	r, err := NewOssExec("vmafossexec", t.TempDir(), "model/vmaf_v0.6.1.yaml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestOssExecExtractScores(t *testing.T) {
	r := newOssExecForTest(t)
	a := testAsset()

	if err := os.WriteFile(r.logPath(a), []byte(ossExecLog), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := r.ExtractScores(a)
	if err != nil {
		t.Fatalf("ExtractScores: %v", err)
	}

	scores, ok := res.Values["VMAFOSSEXEC_scores"]
	if !ok {
		t.Fatal("final score sequence missing")
	}
	if len(scores) != 3 || scores[0] != 91.2 {
		t.Errorf("scores = %v", scores)
	}

	// adm2 missing on frame 2: sequence has 2 entries, final score has 3
	adm2 := res.Values["VMAFOSSEXEC_adm2_scores"]
	if len(adm2) != 2 {
		t.Errorf("adm2 sequence length = %d, want 2", len(adm2))
	}
	motion := res.Values["VMAFOSSEXEC_motion_scores"]
	if len(motion) != 3 {
		t.Errorf("motion sequence length = %d, want 3", len(motion))
	}

	// sub-features absent everywhere are omitted entirely
	if _, ok := res.Values["VMAFOSSEXEC_ssim_scores"]; ok {
		t.Error("ssim should be omitted when never emitted")
	}
}

func TestOssExecMissingFinalScoreFatal(t *testing.T) {
	r := newOssExecForTest(t)
	a := testAsset()

	log := `{"frames": [{"frameNum": 0, "metrics": {"adm2": 0.98}}]}`
	if err := os.WriteFile(r.logPath(a), []byte(log), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := r.ExtractScores(a)
	if err == nil || !strings.Contains(err.Error(), "vmaf") {
		t.Errorf("expected missing-vmaf error, got %v", err)
	}
}

func TestOssExecZeroFramesFatal(t *testing.T) {
	r := newOssExecForTest(t)
	a := testAsset()

	if err := os.WriteFile(r.logPath(a), []byte(`{"frames": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := r.ExtractScores(a)
	if !errors.Is(err, parse.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}

func TestOssExecModelOverride(t *testing.T) {
	r, err := NewOssExec("vmafossexec", t.TempDir(), "model/default.yaml", Options{
		ModelFilepath: "/custom/model.yaml",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.modelPath(); got != "/custom/model.yaml" {
		t.Errorf("modelPath = %q", got)
	}
}

func TestOssExecAcceptsFullOptionSet(t *testing.T) {
	_, err := NewOssExec("vmafossexec", t.TempDir(), "model/default.yaml", Options{
		DisableClipScore:     true,
		EnableTransformScore: true,
		PhoneModel:           true,
		DisableAVX:           true,
	})
	if err != nil {
		t.Errorf("native runner must accept every recognized option: %v", err)
	}
}
