package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/physics"
)

const deg = 180 / math.Pi

// Derive computes the physical parameters of the mode with root x and
// ordinal index. x is the axial ray angle psi for ray theory and U for
// wave theory. Results outside physical bounds are reported as a
// *guide.ModeError wrapping guide.ErrInvalidDerivedResult, together with
// the parameters computed so far.
func Derive(spec guide.Spec, theory guide.Theory, x float64, index int) (guide.Params, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var params guide.Params
	switch theory {
	case guide.Ray:
		params = deriveRay(spec, x)
	case guide.Wave:
		params = deriveWave(spec, x)
	default:
		return nil, fmt.Errorf("%w: %q", guide.ErrUnknownTheory, theory)
	}

	eq := physics.Equation{Spec: spec, Theory: theory}
	if err := checkBounds(spec, params, eq.Order(x), index); err != nil {
		err.Root = x
		return params, err
	}
	return params, nil
}

func deriveRay(spec guide.Spec, psi float64) guide.Params {
	n1, d, k0 := spec.Core, spec.Thickness, spec.K0()
	theta := math.Pi/2 - psi
	nEff := n1 * math.Cos(psi)
	ns := spec.Substrate
	gamma := k0 * math.Sqrt(nEff*nEff-ns*ns)
	phase := physics.HalfPhase(spec, ns, psi) + physics.HalfPhase(spec, spec.CoverIndex(), psi)

	return guide.Params{
		{Name: guide.ParamIncidenceAngle, Value: theta * deg, Unit: "deg"},
		{Name: guide.ParamPropagationAngle, Value: psi * deg, Unit: "deg"},
		{Name: guide.ParamCriticalMargin, Value: (theta - spec.CriticalAngle()) * deg, Unit: "deg"},
		{Name: guide.ParamReflectionPhase, Value: phase, Unit: "rad"},
		{Name: guide.ParamEffectiveIndex, Value: nEff},
		{Name: guide.ParamPropagationConstant, Value: k0 * nEff, Unit: "1/len"},
		{Name: guide.ParamTransverseWavenum, Value: k0 * n1 * math.Sin(psi), Unit: "1/len"},
		{Name: guide.ParamDecayConstant, Value: gamma, Unit: "1/len"},
		{Name: guide.ParamPenetrationDepth, Value: 1 / gamma, Unit: "len"},
		{Name: guide.ParamZigzagPeriod, Value: 2 * d * math.Tan(theta), Unit: "len"},
	}
}

func deriveWave(spec guide.Spec, u float64) guide.Params {
	n1, d, k0 := spec.Core, spec.Thickness, spec.K0()
	n2 := spec.Cladding()

	w := physics.CladdingW(spec, spec.Substrate, u)
	kappa := 2 * u / d
	gs := 2 * w / d
	gc := 2 * physics.CladdingW(spec, spec.CoverIndex(), u) / d

	kn := kappa / k0
	nEff := math.Sqrt(n1*n1 - kn*kn)
	b := (nEff*nEff - n2*n2) / (n1*n1 - n2*n2)

	return guide.Params{
		{Name: guide.ParamU, Value: u},
		{Name: guide.ParamW, Value: w},
		{Name: guide.ParamTransverseWavenum, Value: kappa, Unit: "1/len"},
		{Name: guide.ParamDecayConstant, Value: gs, Unit: "1/len"},
		{Name: guide.ParamEffectiveIndex, Value: nEff},
		{Name: guide.ParamPropagationConstant, Value: k0 * nEff, Unit: "1/len"},
		{Name: guide.ParamIncidenceAngle, Value: math.Asin(nEff/n1) * deg, Unit: "deg"},
		{Name: guide.ParamPenetrationDepth, Value: 1 / gs, Unit: "len"},
		{Name: guide.ParamEffectiveThickness, Value: d + 1/gs + 1/gc, Unit: "len"},
		{Name: guide.ParamNormalizedIndex, Value: b},
		{Name: guide.ParamConfinement, Value: physics.NewField(spec, u).Confinement()},
	}
}

func checkBounds(spec guide.Spec, params guide.Params, order, index int) *guide.ModeError {
	for _, p := range params {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return &guide.ModeError{Index: index, Param: p.Name, Wrapped: fmt.Errorf("%w: not finite", guide.ErrInvalidDerivedResult)}
		}
	}

	n1, n2 := spec.Core, spec.Cladding()
	if nEff, _ := params.Value(guide.ParamEffectiveIndex); !(nEff > n2 && nEff < n1) {
		return &guide.ModeError{
			Index:   index,
			Param:   guide.ParamEffectiveIndex,
			Wrapped: fmt.Errorf("%w: %.6f outside (%g, %g)", guide.ErrInvalidDerivedResult, nEff, n2, n1),
		}
	}

	thetaC := spec.CriticalAngle() * deg
	if theta, _ := params.Value(guide.ParamIncidenceAngle); !(theta > thetaC && theta < 90) {
		return &guide.ModeError{
			Index:   index,
			Param:   guide.ParamIncidenceAngle,
			Wrapped: fmt.Errorf("%w: %.4f deg outside (%.4f, 90)", guide.ErrInvalidDerivedResult, theta, thetaC),
		}
	}

	if order != index {
		return &guide.ModeError{
			Index:   index,
			Wrapped: fmt.Errorf("%w: root has mode order %d", guide.ErrInvalidDerivedResult, order),
		}
	}
	return nil
}
