package props

import "math"

/*
Liquid is a constant-property incompressible liquid model.

	h(T, p) = H_ref + Cp*(T - T_ref) + (p - P_ref)/Rho
	s(T)    = S_ref + Cp*ln(T/T_ref)
	rho     = Rho

Entropy depends on temperature only, so an isentropic pressure rise leaves the
temperature unchanged and the enthalpy rise reduces to (p_out - p_in)/Rho.
Every input pair the pump queries with inverts in closed form.
*/
type Liquid struct {
	Rho   float64 // mass density, kg/m3
	Cp    float64 // mass specific heat, J/(kg*K)
	T_ref float64 // reference temperature, K
	P_ref float64 // reference pressure, Pa(a)
	H_ref float64 // specific enthalpy at the reference state, J/kg
	S_ref float64 // specific entropy at the reference state, J/(kg*K)
}

// IncompProvider resolves property queries against registered Liquid models.
// It stands in for the native property library where only subcooled-liquid
// states are needed, and doubles as the deterministic backend for tests.
type IncompProvider struct {
	liquids map[string]Liquid
}

// NewIncompProvider returns a provider preloaded with the working fluids used
// by the cycle calculations. Constants are rounded literature values for the
// subcooled-liquid region near ambient pressure.
func NewIncompProvider() *IncompProvider {
	return &IncompProvider{
		liquids: map[string]Liquid{
			"Water":   {Rho: 997.05, Cp: 4181.3, T_ref: 273.15, P_ref: 101325.0},
			"Toluene": {Rho: 862.0, Cp: 1707.0, T_ref: 273.15, P_ref: 101325.0},
		},
	}
}

// Register adds or replaces a liquid model under the given fluid name.
func (self *IncompProvider) Register(fluid string, liq Liquid) {
	self.liquids[fluid] = liq
}

func (self *IncompProvider) PropsSI(output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error) {
	fail := func(err error) (float64, error) {
		return 0, &StateError{Fluid: fluid, Output: output, Name1: name1, Value1: value1, Name2: name2, Value2: value2, Err: err}
	}

	liq, ok := self.liquids[fluid]
	if !ok {
		return fail(ErrUnknownFluid)
	}

	// A liquid state is only resolvable here with pressure as one of the two
	// state variables; the other fixes the temperature.
	var p, value float64
	var name string
	switch {
	case name1 == P:
		p, name, value = value1, name2, value2
	case name2 == P:
		p, name, value = value2, name1, value1
	default:
		return fail(ErrInputPair)
	}

	var t float64
	switch name {
	case T:
		t = value
	case Hmass:
		t = liq.T_ref + (value-liq.H_ref-(p-liq.P_ref)/liq.Rho)/liq.Cp
	case Smass:
		t = liq.T_ref * math.Exp((value-liq.S_ref)/liq.Cp)
	default:
		return fail(ErrInputPair)
	}
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fail(ErrStateOutOfRange)
	}

	switch output {
	case T:
		return t, nil
	case P:
		return p, nil
	case Hmass:
		return liq.H_ref + liq.Cp*(t-liq.T_ref) + (p-liq.P_ref)/liq.Rho, nil
	case Smass:
		return liq.S_ref + liq.Cp*math.Log(t/liq.T_ref), nil
	case Dmass:
		return liq.Rho, nil
	default:
		return fail(ErrInputPair)
	}
}
