package parse

import (
	"errors"
	"strings"
	"testing"
)

func TestFrameLog(t *testing.T) {
	input := `{
		"frames": [
			{"frameNum": 0, "metrics": {"vmaf": 91.2, "adm2": 0.98, "motion": 3.1}},
			{"frameNum": 1, "metrics": {"vmaf": 89.7, "adm2": 0.97, "motion": 4.2}},
			{"frameNum": 2, "metrics": {"vmaf": 90.5, "motion": 2.8}}
		]
	}`
	frames, err := FrameLog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].Metrics["vmaf"] != 91.2 {
		t.Errorf("frame 0 vmaf = %v, want 91.2", frames[0].Metrics["vmaf"])
	}
	// frame 2 legitimately lacks adm2
	if _, ok := frames[2].Metrics["adm2"]; ok {
		t.Error("frame 2 should not carry adm2")
	}
}

func TestFrameLogEmptyFatal(t *testing.T) {
	_, err := FrameLog(strings.NewReader(`{"frames": []}`))
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}

func TestFrameLogMalformedFatal(t *testing.T) {
	_, err := FrameLog(strings.NewReader(`{"frames": [`))
	if err == nil {
		t.Error("expected decode error for truncated JSON")
	}
}
