// Package asset describes a reference/distorted video pair to be scored.
package asset

import (
	"crypto/sha1"
	"fmt"
)

// Asset identifies a reference/distorted pair and the dimensions and pixel
// format to score at. Immutable for the duration of a run.
type Asset struct {
	// ID is an optional caller-supplied label. It does not participate in
	// the cache token, which is derived from content-identifying fields only.
	ID string

	RefPath string
	DisPath string

	Width  int
	Height int

	// PixFmt is the raw pixel format of both inputs, e.g. "yuv420p"
	PixFmt string
}

var supportedPixFmts = map[string]bool{
	"yuv420p":     true,
	"yuv422p":     true,
	"yuv444p":     true,
	"yuv420p10le": true,
	"yuv422p10le": true,
	"yuv444p10le": true,
}

// Validate checks that the asset is fully specified before any scoring starts
func (a Asset) Validate() error {
	if a.RefPath == "" || a.DisPath == "" {
		return fmt.Errorf("asset requires both reference and distorted paths")
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("asset dimensions must be positive, got %dx%d", a.Width, a.Height)
	}
	if !supportedPixFmts[a.PixFmt] {
		return fmt.Errorf("unsupported pixel format %q", a.PixFmt)
	}
	return nil
}

// Token returns a stable digest of the content-identifying fields. Combined
// with a runner identity it forms the result cache key, so it must not change
// across releases for the same inputs.
func (a Asset) Token() string {
	canonical := fmt.Sprintf("ref=%s|dis=%s|w=%d|h=%d|fmt=%s",
		a.RefPath, a.DisPath, a.Width, a.Height, a.PixFmt)
	return fmt.Sprintf("%x", sha1.Sum([]byte(canonical)))
}

func (a Asset) String() string {
	if a.ID != "" {
		return a.ID
	}
	return fmt.Sprintf("%s vs %s (%dx%d %s)", a.RefPath, a.DisPath, a.Width, a.Height, a.PixFmt)
}
