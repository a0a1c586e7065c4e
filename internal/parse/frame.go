package parse

import (
	"encoding/json"
	"fmt"
	"io"
)

// Frame is one per-frame record from a structured scoring log. Metrics holds
// the final score attribute plus whatever named sub-feature attributes the
// producing tool chose to emit for that frame.
type Frame struct {
	Num     int                `json:"frameNum"`
	Metrics map[string]float64 `json:"metrics"`
}

type frameLog struct {
	Frames []Frame `json:"frames"`
}

// FrameLog decodes a JSON frame log of the form
// {"frames":[{"frameNum":0,"metrics":{"vmaf":91.2,...}},...]} and returns the
// frames in file order. Presence of required metrics is the caller's concern;
// an empty frame list is fatal here.
func FrameLog(r io.Reader) ([]Frame, error) {
	var log frameLog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&log); err != nil {
		return nil, fmt.Errorf("decoding frame log: %w", err)
	}

	if len(log.Frames) == 0 {
		return nil, fmt.Errorf("%w: frame log has no frames", ErrNoRecords)
	}
	return log.Frames, nil
}
