package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/config"
	"github.com/gwlsn/framescore/internal/feature"
)

// fakeProvider serves canned feature sequences and records the last request
type fakeProvider struct {
	result  feature.Result
	err     error
	lastReq feature.Request
}

func (p *fakeProvider) Extract(ctx context.Context, a asset.Asset, req feature.Request) (feature.Result, error) {
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func testAsset() asset.Asset {
	return asset.Asset{
		RefPath: "/videos/ref.yuv",
		DisPath: "/videos/dis.yuv",
		Width:   576,
		Height:  324,
		PixFmt:  "yuv420p",
	}
}

func TestNewKnownRunners(t *testing.T) {
	deps := Deps{Provider: &fakeProvider{}, Cfg: config.DefaultConfig()}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, err := New(name, deps, Options{})
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if r.ID().Type == "" || r.ID().Version == "" {
				t.Errorf("runner %q has incomplete identity %+v", name, r.ID())
			}
		})
	}
}

func TestNewUnknownRunner(t *testing.T) {
	_, err := New("bogus", Deps{Cfg: config.DefaultConfig()}, Options{})
	if !errors.Is(err, ErrUnknownRunner) {
		t.Errorf("expected ErrUnknownRunner, got %v", err)
	}
}

func TestIdentityKeys(t *testing.T) {
	id := Identity{Type: "VMAF", Version: "F0.2.4b-0.6.1"}

	if got := id.String(); got != "VMAF_VF0.2.4b-0.6.1" {
		t.Errorf("String() = %q", got)
	}
	if got := id.ScoreKey(); got != "VMAF_score" {
		t.Errorf("ScoreKey() = %q", got)
	}
	if got := id.ScoresKey(); got != "VMAF_scores" {
		t.Errorf("ScoresKey() = %q", got)
	}
	if got := id.FeatureScoresKey("adm2"); got != "VMAF_adm2_scores" {
		t.Errorf("FeatureScoresKey(adm2) = %q", got)
	}
}

func TestAsDirect(t *testing.T) {
	psnr, err := NewPSNR("psnr", "/tmp", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsDirect(psnr); err != nil {
		t.Errorf("PSNR implements the direct path: %v", err)
	}

	vmaf, err := NewVMAF(&fakeProvider{}, "m.yaml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsDirect(vmaf); !errors.Is(err, ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}

func TestIdentityStability(t *testing.T) {
	// Two instances of the same variant must key results identically.
	p := &fakeProvider{}
	a, err := NewVMAF(p, "model/a.yaml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewVMAF(p, "model/a.yaml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID().String() != b.ID().String() {
		t.Errorf("identical variants differ: %q vs %q", a.ID().String(), b.ID().String())
	}

	// Distinct variants must never collide.
	phone, err := NewPhone(p, "model/a.yaml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID().String() == phone.ID().String() {
		t.Error("VMAF and VMAF_Phone identities collide")
	}
}
