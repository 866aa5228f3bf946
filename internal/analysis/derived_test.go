package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/slabwave/internal/guide"
)

var slab = guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}

func TestDerive_RayParams(t *testing.T) {
	psi := 3 * math.Pi / 180
	params, err := Derive(slab, guide.Ray, psi, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	theta, _ := params.Value(guide.ParamIncidenceAngle)
	if math.Abs(theta-87) > 1e-9 {
		t.Errorf("theta = %g, want 87", theta)
	}
	nEff, _ := params.Value(guide.ParamEffectiveIndex)
	if want := 1.5 * math.Cos(psi); math.Abs(nEff-want) > 1e-12 {
		t.Errorf("n_eff = %g, want %g", nEff, want)
	}
	beta, _ := params.Value(guide.ParamPropagationConstant)
	if want := slab.K0() * nEff; math.Abs(beta-want) > 1e-12 {
		t.Errorf("beta = %g, want %g", beta, want)
	}
	gamma, _ := params.Value(guide.ParamDecayConstant)
	depth, _ := params.Value(guide.ParamPenetrationDepth)
	if math.Abs(gamma*depth-1) > 1e-12 {
		t.Errorf("penetration depth %g is not 1/gamma (%g)", depth, gamma)
	}
}

func TestDerive_WaveParams(t *testing.T) {
	u := 1.2
	params, err := Derive(slab, guide.Wave, u, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	v := slab.V()
	b, _ := params.Value(guide.ParamNormalizedIndex)
	if want := 1 - u*u/(v*v); math.Abs(b-want) > 1e-12 {
		t.Errorf("b = %g, want %g", b, want)
	}
	w, _ := params.Value(guide.ParamW)
	if math.Abs(u*u+w*w-v*v) > 1e-9 {
		t.Errorf("U^2 + W^2 = %g, want V^2 = %g", u*u+w*w, v*v)
	}
	c, _ := params.Value(guide.ParamConfinement)
	if c <= 0 || c >= 1 {
		t.Errorf("confinement %g outside (0, 1)", c)
	}
	dEff, _ := params.Value(guide.ParamEffectiveThickness)
	if dEff <= slab.Thickness {
		t.Errorf("effective thickness %g not above d", dEff)
	}
}

func TestDerive_OutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		theory guide.Theory
		x      float64
		index  int
		param  string
	}{
		{"beyond cutoff", guide.Wave, slab.V() * 1.1, 0, guide.ParamW},
		{"order mismatch", guide.Wave, 2.0, 0, ""},
		{"ray order mismatch", guide.Ray, 0.001, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(slab, tt.theory, tt.x, tt.index)
			if !errors.Is(err, guide.ErrInvalidDerivedResult) {
				t.Fatalf("expected ErrInvalidDerivedResult, got %v", err)
			}
			var me *guide.ModeError
			if !errors.As(err, &me) {
				t.Fatalf("expected *guide.ModeError, got %T", err)
			}
			if me.Index != tt.index || me.Root != tt.x || me.Param != tt.param {
				t.Errorf("mode error = %+v", me)
			}
		})
	}
}

func TestDerive_UnknownTheory(t *testing.T) {
	if _, err := Derive(slab, guide.Theory("x"), 1, 0); !errors.Is(err, guide.ErrUnknownTheory) {
		t.Errorf("expected ErrUnknownTheory, got %v", err)
	}
}

func TestOptions_SampleFloor(t *testing.T) {
	opts := DefaultOptions()
	opts.Scan.Samples = 10

	thick := slab.WithThickness(100)
	if got, want := opts.samples(thick), samplesPerMode*(thick.ExpectedModes()+1); got != want {
		t.Errorf("samples = %d, want %d", got, want)
	}

	opts.Scan.Samples = 1 << 20
	if got := opts.samples(thick); got != 1<<20 {
		t.Errorf("samples = %d, want configured value", got)
	}
}

func TestModeField(t *testing.T) {
	r, err := Run(slab, guide.Ray, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Modes) == 0 {
		t.Fatal("expected modes")
	}
	f := ModeField(slab, r.Modes[0])
	c, _ := r.Modes[0].Params.Value(guide.ParamDecayConstant)
	if math.Abs(f.GammaS-c) > 1e-6*c {
		t.Errorf("field decay %g, ray decay %g", f.GammaS, c)
	}
}

func TestCurve(t *testing.T) {
	xs, ys, err := Curve(slab, guide.Wave, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 51 || len(ys) != 51 {
		t.Fatalf("got %d/%d samples", len(xs), len(ys))
	}
	if xs[0] != 0 {
		t.Errorf("curve starts at %g", xs[0])
	}
}
