package feature

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/logger"
	"github.com/gwlsn/framescore/internal/parse"
)

// ExecProvider extracts features by invoking an external feature extraction
// binary. The tool writes one line per frame per feature to stdout in the
// form "<feature>: <frame-index> <value>".
type ExecProvider struct {
	ToolPath string
}

// NewExecProvider creates a provider backed by the given binary
func NewExecProvider(toolPath string) *ExecProvider {
	return &ExecProvider{ToolPath: toolPath}
}

// lastLines returns the last n non-empty lines from output
func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

// Extract runs the feature tool once for the asset and parses every requested
// feature's sequence out of its output. All sequences must agree on frame
// count; a missing or empty sequence is fatal.
func (p *ExecProvider) Extract(ctx context.Context, a asset.Asset, req Request) (Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("no features requested")
	}
	extractor := req.Extractor
	if extractor == "" {
		extractor = ExtractorType
	}

	args := []string{
		"--ref", a.RefPath,
		"--dis", a.DisPath,
		"--width", strconv.Itoa(a.Width),
		"--height", strconv.Itoa(a.Height),
		"--pixel-format", a.PixFmt,
		"--extractor", extractor,
		"--features", strings.Join(req.Features, ","),
	}

	logger.Debug("Extracting features",
		"tool", p.ToolPath, "asset", a.String(), "extractor", extractor, "features", req.Features)

	cmd := exec.CommandContext(ctx, p.ToolPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("feature extraction failed: %w (%s)", err, lastLines(string(output), 3))
	}

	result := make(Result, len(req.Features))
	for _, name := range req.Features {
		vals, err := parse.PlainLog(bytes.NewReader(output), name)
		if err != nil {
			return nil, fmt.Errorf("parsing feature %q: %w", name, err)
		}
		result[ScoresKeyFor(extractor, name)] = vals
	}

	if _, err := result.FrameCount(); err != nil {
		return nil, err
	}
	return result, nil
}
