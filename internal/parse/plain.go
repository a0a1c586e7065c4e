// Package parse translates raw scoring-tool output into per-frame score
// sequences.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Sentinel errors for log parsing.
// These can be checked with errors.Is().
var (
	ErrNoRecords = errors.New("no records parsed")
	ErrFrameGap  = errors.New("non-contiguous frame index")
)

// PlainLog reads a per-line log of the form "<label>: <frame-index> <value>"
// and returns one value per frame. Frame indices must form a strict 0-based
// contiguous run; a gap, repeat or out-of-order index is fatal. Lines not
// matching the label are skipped. Zero matching lines is fatal - an empty log
// means the producing tool failed, not that the input had no frames.
func PlainLog(r io.Reader, label string) ([]float64, error) {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(label) + `: ([0-9]+) ([0-9.eE+-]+)`)

	var scores []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := re.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("bad frame index %q: %w", m[1], err)
		}
		if idx != len(scores) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameGap, idx, len(scores))
		}

		val, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad score at frame %d: %w", idx, err)
		}
		scores = append(scores, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("%w for label %q", ErrNoRecords, label)
	}
	return scores, nil
}
