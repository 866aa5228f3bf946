package guide

import (
	"fmt"
	"math"
	"strings"
)

type Polarization string

const (
	TE Polarization = "TE"
	TM Polarization = "TM"
)

func ParsePolarization(s string) (Polarization, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TE":
		return TE, nil
	case "TM":
		return TM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolarization, s)
}

type Theory string

const (
	Ray  Theory = "ray"
	Wave Theory = "wave"
)

func ParseTheory(s string) (Theory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ray", "rays":
		return Ray, nil
	case "wave", "waves", "em":
		return Wave, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheory, s)
}

// Spec describes a three-layer slab: substrate, core of the given
// thickness, cover. A zero Cover means the cover matches the substrate.
type Spec struct {
	Core         float64      `yaml:"core" json:"core"`
	Substrate    float64      `yaml:"substrate" json:"substrate"`
	Cover        float64      `yaml:"cover,omitempty" json:"cover,omitempty"`
	Thickness    float64      `yaml:"thickness" json:"thickness"`
	Wavelength   float64      `yaml:"wavelength" json:"wavelength"`
	Polarization Polarization `yaml:"polarization" json:"polarization"`
}

func (s Spec) Symmetric() bool {
	return s.Cover == 0 || s.Cover == s.Substrate
}

// CoverIndex returns the effective cover index, falling back to the substrate.
func (s Spec) CoverIndex() float64 {
	if s.Cover == 0 {
		return s.Substrate
	}
	return s.Cover
}

// Cladding returns the larger of the two cladding indices, which sets cutoff.
func (s Spec) Cladding() float64 {
	return math.Max(s.Substrate, s.CoverIndex())
}

// K0 is the free-space wavenumber 2*pi/lambda0.
func (s Spec) K0() float64 {
	return 2 * math.Pi / s.Wavelength
}

// NA is the numerical aperture against the higher cladding.
func (s Spec) NA() float64 {
	n2 := s.Cladding()
	return math.Sqrt(s.Core*s.Core - n2*n2)
}

// V is the normalized frequency k0*(d/2)*NA.
func (s Spec) V() float64 {
	return s.K0() * s.Thickness / 2 * s.NA()
}

// CriticalAngle is the total internal reflection angle at the higher
// cladding, measured from the interface normal, in radians.
func (s Spec) CriticalAngle() float64 {
	return math.Asin(s.Cladding() / s.Core)
}

// ExpectedModes estimates the number of guided modes from V.
func (s Spec) ExpectedModes() int {
	return int(math.Ceil(2 * s.V() / math.Pi))
}

func (s Spec) WithPolarization(p Polarization) Spec {
	s.Polarization = p
	return s
}

func (s Spec) WithThickness(d float64) Spec {
	s.Thickness = d
	return s
}

func (s Spec) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"core", s.Core},
		{"substrate", s.Substrate},
		{"cover", s.Cover},
		{"thickness", s.Thickness},
		{"wavelength", s.Wavelength},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &SpecError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
	}

	if s.Substrate < 1 {
		return &SpecError{Field: "substrate", Value: s.Substrate, Reason: "must be >= 1"}
	}
	if s.Cover != 0 && s.Cover < 1 {
		return &SpecError{Field: "cover", Value: s.Cover, Reason: "must be >= 1"}
	}
	if s.Core <= s.Cladding() {
		return &SpecError{Field: "core", Value: s.Core, Reason: fmt.Sprintf("must exceed cladding %g", s.Cladding())}
	}
	if s.Thickness <= 0 {
		return &SpecError{Field: "thickness", Value: s.Thickness, Reason: "must be positive"}
	}
	if s.Wavelength <= 0 {
		return &SpecError{Field: "wavelength", Value: s.Wavelength, Reason: "must be positive"}
	}
	switch s.Polarization {
	case TE, TM:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidSpec, ErrUnknownPolarization, s.Polarization)
	}
	return nil
}

func (s Spec) String() string {
	if s.Symmetric() {
		return fmt.Sprintf("n1=%g n2=%g d=%g lambda=%g %s", s.Core, s.Substrate, s.Thickness, s.Wavelength, s.Polarization)
	}
	return fmt.Sprintf("n1=%g ns=%g nc=%g d=%g lambda=%g %s", s.Core, s.Substrate, s.Cover, s.Thickness, s.Wavelength, s.Polarization)
}

// Derived parameter names. Angles are in degrees, lengths in the unit of
// Thickness, wavenumbers in its inverse.
const (
	ParamIncidenceAngle      = "theta_deg"
	ParamPropagationAngle    = "psi_deg"
	ParamCriticalMargin      = "theta_margin_deg"
	ParamReflectionPhase     = "reflection_phase"
	ParamEffectiveIndex      = "n_eff"
	ParamPropagationConstant = "beta"
	ParamTransverseWavenum   = "kappa"
	ParamDecayConstant       = "gamma"
	ParamPenetrationDepth    = "penetration"
	ParamZigzagPeriod        = "zigzag_period"
	ParamU                   = "U"
	ParamW                   = "W"
	ParamNormalizedIndex     = "b"
	ParamEffectiveThickness  = "d_eff"
	ParamConfinement         = "confinement"
)

type Param struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Params keeps derived quantities in calculation order.
type Params []Param

func (p Params) Value(name string) (float64, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return 0, false
}

func (p Params) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

func (p Params) Map() map[string]float64 {
	m := make(map[string]float64, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

type Mode struct {
	Index        int          `json:"m"`
	Root         float64      `json:"root"`
	Residual     float64      `json:"residual"`
	Theory       Theory       `json:"theory"`
	Polarization Polarization `json:"polarization"`
	Params       Params       `json:"params,omitempty"`
	Err          error        `json:"-"`
}

func (m Mode) Valid() bool {
	return m.Err == nil
}

// EffectiveIndex is a shortcut for the most used derived parameter.
func (m Mode) EffectiveIndex() float64 {
	v, _ := m.Params.Value(ParamEffectiveIndex)
	return v
}

// CountValid returns the number of modes without a derivation error.
func CountValid(modes []Mode) int {
	n := 0
	for _, m := range modes {
		if m.Valid() {
			n++
		}
	}
	return n
}
