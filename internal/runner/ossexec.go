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

// ossExecFeatures is the fixed set of sub-feature attributes the native
// executable may emit per frame. Any of them may be missing on some or all
// frames; the final score attribute may not.
var ossExecFeatures = []string{
	"adm2", "adm_scale0", "adm_scale1", "adm_scale2", "adm_scale3",
	"motion", "vif_scale0", "vif_scale1", "vif_scale2",
	"vif_scale3", "vif", "psnr", "ssim", "ms_ssim", "motion2",
}

// finalScoreMetric is the required per-frame attribute in the native log
const finalScoreMetric = "vmaf"

// OssExec delegates feature extraction, regression and post-processing to
// the native vmafossexec binary and reduces this side to invocation plus log
// parsing. Direct-executable strategy.
type OssExec struct {
	execPath         string
	workDir          string
	defaultModelPath string
	opts             Options
}

// NewOssExec creates the native-executable runner. It is the only runner
// that accepts the full option set - every flag is forwarded to the binary.
func NewOssExec(execPath, workDir, defaultModelPath string, opts Options) (*OssExec, error) {
	return &OssExec{
		execPath:         execPath,
		workDir:          workDir,
		defaultModelPath: defaultModelPath,
		opts:             opts,
	}, nil
}

func (r *OssExec) ID() Identity {
	return Identity{Type: "VMAFOSSEXEC", Version: vmafVersion}
}

func (r *OssExec) logPath(a asset.Asset) string {
	return filepath.Join(r.workDir, fmt.Sprintf("%s_%s.json", r.ID().String(), a.Token()))
}

func (r *OssExec) modelPath() string {
	if r.opts.ModelFilepath != "" {
		return r.opts.ModelFilepath
	}
	return r.defaultModelPath
}

// GenerateLog invokes the native binary, writing a JSON frame log
func (r *OssExec) GenerateLog(ctx context.Context, a asset.Asset) error {
	args := []string{
		a.PixFmt,
		strconv.Itoa(a.Width),
		strconv.Itoa(a.Height),
		a.RefPath,
		a.DisPath,
		r.modelPath(),
		"--log", r.logPath(a),
		"--log-fmt", "json",
	}
	if r.opts.DisableClipScore {
		args = append(args, "--disable-clip")
	}
	if r.opts.EnableTransformScore {
		args = append(args, "--enable-transform")
	}
	if r.opts.PhoneModel {
		args = append(args, "--phone-model")
	}
	if r.opts.DisableAVX {
		args = append(args, "--disable-avx")
	}

	logger.Debug("Running vmafossexec", "exec", r.execPath, "asset", a.String())

	cmd := exec.CommandContext(ctx, r.execPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("vmafossexec failed: %w (%s)", err, lastLines(string(output), 3))
	}
	return nil
}

// ExtractScores parses the JSON frame log. Every frame must carry the final
// score attribute; sub-features present on some frames are retained, and a
// sub-feature absent everywhere is omitted from the result.
func (r *OssExec) ExtractScores(a asset.Asset) (*Result, error) {
	f, err := os.Open(r.logPath(a))
	if err != nil {
		return nil, fmt.Errorf("opening vmafossexec log: %w", err)
	}
	defer f.Close()

	frames, err := parse.FrameLog(f)
	if err != nil {
		return nil, fmt.Errorf("parsing vmafossexec log: %w", err)
	}

	scores := make([]float64, 0, len(frames))
	subFeatures := make(map[string][]float64, len(ossExecFeatures))
	for _, fr := range frames {
		score, ok := fr.Metrics[finalScoreMetric]
		if !ok {
			return nil, fmt.Errorf("frame %d missing required %q attribute", fr.Num, finalScoreMetric)
		}
		scores = append(scores, score)

		for _, name := range ossExecFeatures {
			if v, ok := fr.Metrics[name]; ok {
				subFeatures[name] = append(subFeatures[name], v)
			}
		}
	}

	id := r.ID()
	values := map[string][]float64{
		id.ScoresKey(): scores,
	}
	for name, seq := range subFeatures {
		values[id.FeatureScoresKey(name)] = seq
	}

	return newResult(id, a.Token(), values), nil
}

// Run generates the log, extracts scores, and cleans the artifact up
func (r *OssExec) Run(ctx context.Context, a asset.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := r.GenerateLog(ctx, a); err != nil {
		return nil, err
	}
	defer os.Remove(r.logPath(a))

	return r.ExtractScores(a)
}
