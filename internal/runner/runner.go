// Package runner turns per-frame perceptual features of a reference/distorted
// pair into a single quality score per frame. Each runner variant carries a
// (type, version) identity that uniquely determines its numeric behavior;
// results are keyed by that identity so cached scores are never reused across
// incompatible versions.
//
// A variant follows exactly one of two strategies:
//
//   - direct executable: invoke an external program producing a log artifact,
//     then parse the log into a Result (see PSNR, VMAFOSSEXEC);
//   - feature assembly + regression: request per-frame features from a
//     Provider, predict with a loaded model, post-process, and merge the raw
//     feature sequences into the Result (see VMAF, VMAF_legacy).
package runner

import (
	"context"
	"fmt"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/config"
	"github.com/gwlsn/framescore/internal/feature"
)

// Runner is the scoring contract every variant satisfies
type Runner interface {
	// ID returns the variant's versioned identity
	ID() Identity

	// Run scores one asset to completion. Safe to call concurrently for
	// different assets; there is no shared mutable state per invocation.
	Run(ctx context.Context, a asset.Asset) (*Result, error)
}

// DirectRunner is the sub-contract of variants that drive an external
// executable: generate a log artifact, then read scores back out of it.
// Feature+model variants do not implement it.
type DirectRunner interface {
	Runner

	// GenerateLog invokes the external program, writing the log artifact
	GenerateLog(ctx context.Context, a asset.Asset) error

	// ExtractScores parses the log artifact written by GenerateLog
	ExtractScores(a asset.Asset) (*Result, error)
}

// AsDirect exposes the direct-executable sub-contract of rn. Requesting it
// from a feature+model variant is a misuse of the abstraction and fails with
// ErrNotSupported.
func AsDirect(rn Runner) (DirectRunner, error) {
	d, ok := rn.(DirectRunner)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no log-generation path", ErrNotSupported, rn.ID().Type)
	}
	return d, nil
}

// Deps carries the collaborators a runner may need. Which fields are required
// depends on the variant.
type Deps struct {
	Provider feature.Provider
	Cfg      *config.Config
}

// New constructs a registered runner by name, validating the option set
// before anything executes.
func New(name string, deps Deps, opts Options) (Runner, error) {
	switch name {
	case "psnr":
		return NewPSNR(deps.Cfg.PsnrPath, deps.Cfg.WorkDir, opts)
	case "vmaf":
		return NewVMAF(deps.Provider, deps.Cfg.ModelPath(DefaultModelFile), opts)
	case "vmaf_legacy":
		return NewLegacy(deps.Provider, deps.Cfg.ModelPath(LegacyModelFile), opts)
	case "vmaf_phone":
		return NewPhone(deps.Provider, deps.Cfg.ModelPath(DefaultModelFile), opts)
	case "vmafossexec":
		return NewOssExec(deps.Cfg.VmafExecPath, deps.Cfg.WorkDir, deps.Cfg.ModelPath(DefaultModelFile), opts)
	case "ssim":
		return NewSSIM(deps.Provider, opts)
	case "ms_ssim":
		return NewMsSSIM(deps.Provider, opts)
	case "strred":
		return NewSTRRED(deps.Provider, opts)
	case "adm2", "vif_scale0", "vif_scale1", "vif_scale2", "vif_scale3", "motion":
		return NewPassthrough(deps.Provider, name, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRunner, name)
	}
}

// Names lists the registered runner names accepted by New
func Names() []string {
	return []string{
		"psnr", "vmaf", "vmaf_legacy", "vmaf_phone", "vmafossexec",
		"ssim", "ms_ssim", "strred",
		"adm2", "vif_scale0", "vif_scale1", "vif_scale2", "vif_scale3", "motion",
	}
}
