package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/logger"
	"github.com/gwlsn/framescore/internal/parse"
)

// PSNR scores an asset by driving the external psnr tool and parsing its
// per-line log. Direct-executable strategy; no model, no post-processing.
type PSNR struct {
	execPath string
	workDir  string
}

// NewPSNR creates the PSNR runner. The tool takes none of the recognized
// options, so any supplied option is rejected up front.
func NewPSNR(execPath, workDir string, opts Options) (*PSNR, error) {
	if err := opts.reject("PSNR", "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &PSNR{execPath: execPath, workDir: workDir}, nil
}

func (r *PSNR) ID() Identity {
	return Identity{Type: "PSNR", Version: "1.0"}
}

func (r *PSNR) logPath(a asset.Asset) string {
	return filepath.Join(r.workDir, fmt.Sprintf("%s_%s.log", r.ID().String(), a.Token()))
}

// GenerateLog invokes the psnr tool, writing one "psnr: <idx> <value>" line
// per frame to the log artifact
func (r *PSNR) GenerateLog(ctx context.Context, a asset.Asset) error {
	args := []string{
		a.PixFmt,
		a.RefPath,
		a.DisPath,
		strconv.Itoa(a.Width),
		strconv.Itoa(a.Height),
		r.logPath(a),
	}

	logger.Debug("Running psnr", "exec", r.execPath, "asset", a.String())

	cmd := exec.CommandContext(ctx, r.execPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("psnr execution failed: %w (%s)", err, lastLines(string(output), 3))
	}
	return nil
}

// ExtractScores reads the log artifact back into a result. An empty or
// gap-ridden log is fatal.
func (r *PSNR) ExtractScores(a asset.Asset) (*Result, error) {
	f, err := os.Open(r.logPath(a))
	if err != nil {
		return nil, fmt.Errorf("opening psnr log: %w", err)
	}
	defer f.Close()

	scores, err := parse.PlainLog(f, "psnr")
	if err != nil {
		return nil, fmt.Errorf("parsing psnr log: %w", err)
	}

	id := r.ID()
	return newResult(id, a.Token(), map[string][]float64{
		id.ScoresKey(): scores,
	}), nil
}

// Run generates the log, extracts scores, and cleans the artifact up
func (r *PSNR) Run(ctx context.Context, a asset.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := r.GenerateLog(ctx, a); err != nil {
		return nil, err
	}
	defer os.Remove(r.logPath(a))

	return r.ExtractScores(a)
}
