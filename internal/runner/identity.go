package runner

import "fmt"

// featureVersion is the version of the elementary feature extractor the
// in-process runners depend on. It is folded into runner versions so a
// feature-level change invalidates cached results.
const featureVersion = "0.2.4b"

// Identity is the (type, version) pair that uniquely determines a runner's
// numeric behavior, including its default model artifact and every tunable
// constant. It derives the result cache key and all result field names, so it
// must change whenever the numbers can change.
type Identity struct {
	Type    string
	Version string
}

// String returns the cache/result key, e.g. "VMAF_VF0.2.4b-0.6.1"
func (id Identity) String() string {
	return fmt.Sprintf("%s_V%s", id.Type, id.Version)
}

// ScoreKey returns the aggregate score field name, e.g. "VMAF_score"
func (id Identity) ScoreKey() string {
	return id.Type + "_score"
}

// ScoresKey returns the per-frame score field name, e.g. "VMAF_scores"
func (id Identity) ScoresKey() string {
	return id.Type + "_scores"
}

// FeatureScoresKey returns the field name for a retained sub-feature
// sequence, e.g. "VMAFOSSEXEC_adm2_scores"
func (id Identity) FeatureScoresKey(feature string) string {
	return fmt.Sprintf("%s_%s_scores", id.Type, feature)
}
