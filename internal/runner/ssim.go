package runner

import (
	"github.com/gwlsn/framescore/internal/feature"
)

// Extractor types for the structural-similarity and ST-RRED runner families.
// Each runner assembles its extractor's full feature set, republishes the
// headline feature as the quality score, and retains the rest.
const (
	ssimExtractorType   = "SSIM_feature"
	msSsimExtractorType = "MS_SSIM_feature"
	strredExtractorType = "STRRED_feature"
)

// strredFeatureVersion is the version of the ST-RRED feature extractor,
// folded into the STRRED runner version
const strredFeatureVersion = "1.3"

var (
	ssimFeatures = []string{"ssim", "ssim_l", "ssim_c", "ssim_s"}

	msSsimFeatures = []string{
		"ms_ssim",
		"ms_ssim_l_scale0", "ms_ssim_c_scale0", "ms_ssim_s_scale0",
		"ms_ssim_l_scale1", "ms_ssim_c_scale1", "ms_ssim_s_scale1",
		"ms_ssim_l_scale2", "ms_ssim_c_scale2", "ms_ssim_s_scale2",
		"ms_ssim_l_scale3", "ms_ssim_c_scale3", "ms_ssim_s_scale3",
		"ms_ssim_l_scale4", "ms_ssim_c_scale4", "ms_ssim_s_scale4",
	}

	// srred and trred are the spatial and temporal components; strred is
	// their per-frame product, computed by the extractor
	strredFeatures = []string{"srred", "trred", "strred"}
)

// NewSSIM creates the SSIM runner: the ssim feature as the score, with the
// luminance/contrast/structure components retained. No options are consumed.
func NewSSIM(provider feature.Provider, opts Options) (*Passthrough, error) {
	if err := opts.reject("SSIM", "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &Passthrough{
		provider:  provider,
		extractor: ssimExtractorType,
		features:  ssimFeatures,
		scoreName: "ssim",
		id:        Identity{Type: "SSIM", Version: "1.0"},
	}, nil
}

// NewMsSSIM creates the multi-scale SSIM runner: the ms_ssim feature as the
// score, with the per-scale components retained. No options are consumed.
func NewMsSSIM(provider feature.Provider, opts Options) (*Passthrough, error) {
	if err := opts.reject("MS_SSIM", "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &Passthrough{
		provider:  provider,
		extractor: msSsimExtractorType,
		features:  msSsimFeatures,
		scoreName: "ms_ssim",
		id:        Identity{Type: "MS_SSIM", Version: "1.0"},
	}, nil
}

// NewSTRRED creates the ST-RRED runner: the combined strred feature as the
// score, with the spatial and temporal components retained. No options are
// consumed.
func NewSTRRED(provider feature.Provider, opts Options) (*Passthrough, error) {
	if err := opts.reject("STRRED", "model_filepath", "disable_clip_score",
		"enable_transform_score", "phone_model", "disable_avx"); err != nil {
		return nil, err
	}
	return &Passthrough{
		provider:  provider,
		extractor: strredExtractorType,
		features:  strredFeatures,
		scoreName: "strred",
		id:        Identity{Type: "STRRED", Version: "F" + strredFeatureVersion + "-1.1"},
	}, nil
}
