package runner

// Options are the recognized per-run flags. Every runner validates the set it
// supports at construction time; an option a runner cannot honor fails fast
// instead of silently degrading.
type Options struct {
	// ModelFilepath overrides the runner's default model artifact
	ModelFilepath string

	// DisableClipScore skips clipping predictions to the model's clip bounds
	DisableClipScore bool

	// EnableTransformScore applies the model's polynomial score transform
	EnableTransformScore bool

	// PhoneModel asks the native executable for its phone viewing model
	PhoneModel bool

	// DisableAVX disables AVX in the native executable
	DisableAVX bool
}

// reject returns an ErrUnsupportedOption error for the first of the named
// options that is set. Option names match the external flag spelling.
func (o Options) reject(runnerType string, names ...string) error {
	for _, name := range names {
		var set bool
		switch name {
		case "model_filepath":
			set = o.ModelFilepath != ""
		case "disable_clip_score":
			set = o.DisableClipScore
		case "enable_transform_score":
			set = o.EnableTransformScore
		case "phone_model":
			set = o.PhoneModel
		case "disable_avx":
			set = o.DisableAVX
		}
		if set {
			return unsupportedOptionError(runnerType, name)
		}
	}
	return nil
}
