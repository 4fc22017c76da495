package pump

import (
	"fmt"
	"math"

	"pump_calc/props"
)

/*
Pump handles pump calculations. It is one of the elements that power systems
are built from, like heat exchangers, pipes and turbines. Construction fixes
the design-point boundary conditions and eagerly evaluates the inlet and
isentropic-outlet state through the injected property provider.

	Obligatory inputs:
	    T_in: temperature of liquid at pump inlet, C
	    p_in: pressure of liquid at pump inlet, kPa(a)
	    p_out: pressure of liquid at pump outlet, kPa(a), expected > p_in
	    mf: mass flow of working fluid, kg/s
	    medium: working fluid ex. Water, Toluene, R1233zd(E)
*/
type Pump struct {
	Medium string  // working fluid
	T_in   float64 // liquid temperature at pump inlet, C
	P_in   float64 // liquid pressure at pump inlet, kPa(a)
	P_out  float64 // pressure at pump outlet, kPa(a)
	Mf     float64 // mass flow of working fluid, kg/s

	H_in    float64 // specific enthalpy at pump inlet, kJ/kg
	S_in    float64 // specific entropy at pump inlet, kJ/(kg*K)
	S_out_s float64 // specific entropy at pump outlet after isentropic compression, kJ/(kg*K)
	H_out_s float64 // specific enthalpy at pump outlet after isentropic compression (eta_iP=1.0), kJ/kg
	T_out_s float64 // temperature at pump outlet after isentropic compression, C
	Rho_in  float64 // liquid density at pump inlet, kg/m3
	V_in    float64 // volumetric flow at pump inlet, m3/s

	prv props.Provider
}

// DesignState is the design-point outlet state computed by Power. It carries
// everything OffDesign needs from the design point, so off-design evaluation
// never depends on hidden instance state.
type DesignState struct {
	Eta_iP float64 // internal isentropic efficiency of the pump, -
	H_out  float64 // specific enthalpy of liquid at pump outlet, kJ/kg
	T_out  float64 // temperature of liquid at pump outlet, C
	S_out  float64 // specific entropy of liquid at pump outlet, kJ/(kg*K)
	N_iP   float64 // internal power consumed by the pump, kW
	V_in   float64 // design-point volumetric flow at pump inlet, m3/s
}

// OffDesignState is the pump state at boundary conditions away from the
// design point, computed by OffDesign.
type OffDesignState struct {
	T_in  float64 // liquid temperature at pump inlet, C
	P_in  float64 // liquid pressure at pump inlet, kPa(a)
	P_out float64 // pressure at pump outlet, kPa(a)
	Mf    float64 // mass flow of working fluid, kg/s

	H_in    float64 // specific enthalpy at pump inlet, kJ/kg
	S_in    float64 // specific entropy at pump inlet, kJ/(kg*K)
	S_out_s float64 // specific entropy at pump outlet after isentropic compression, kJ/(kg*K)
	H_out_s float64 // specific enthalpy at pump outlet after isentropic compression, kJ/kg
	T_out_s float64 // temperature at pump outlet after isentropic compression, C
	Rho_in  float64 // liquid density at pump inlet, kg/m3
	V_in    float64 // volumetric flow at pump inlet, m3/s

	Eta_iP float64 // corrected internal efficiency at the off-design flow, -
	H_out  float64 // specific enthalpy of liquid at pump outlet, kJ/kg
	T_out  float64 // temperature of liquid at pump outlet, C
	S_out  float64 // specific entropy of liquid at pump outlet, kJ/(kg*K)
	N_iP   float64 // internal power consumed by the pump, kW
}

/*
NewPump constructs a pump at its design point and evaluates the inlet and
isentropic-outlet state.

	Args:
	    prv: property provider resolving state points of the medium
	    T_in: temperature of liquid at pump inlet, C
	    p_in: pressure of liquid at pump inlet, kPa(a)
	    p_out: pressure of liquid at pump outlet, kPa(a)
	    mf: mass flow of working fluid, kg/s
	    medium: working fluid ex. Water, Toluene, R1233zd(E)

	Returns:
	    the pump with inlet and isentropic-outlet state populated

	Notes:
	    Any provider failure (unknown medium, state outside the fluid's
	    valid envelope) aborts construction; no partial pump is returned.
	    The isentropic outlet conserves the inlet entropy exactly.
*/
func NewPump(prv props.Provider, T_in float64, p_in float64, p_out float64, mf float64, medium string) (*Pump, error) {
	self := &Pump{
		Medium: medium,
		T_in:   T_in,
		P_in:   p_in,
		P_out:  p_out,
		Mf:     mf,
		prv:    prv,
	}

	st, err := self.inlet_state(T_in, p_in, p_out, mf)
	if err != nil {
		return nil, err
	}
	self.H_in = st.h_in
	self.S_in = st.s_in
	self.S_out_s = st.s_out_s
	self.H_out_s = st.h_out_s
	self.T_out_s = st.T_out_s
	self.Rho_in = st.rho_in
	self.V_in = st.V_in
	return self, nil
}

// inletState groups the property evaluations shared by construction and
// off-design recalculation: inlet enthalpy/entropy/density and the
// isentropic outlet for a given pressure lift.
type inletState struct {
	h_in    float64 // kJ/kg
	s_in    float64 // kJ/(kg*K)
	s_out_s float64 // kJ/(kg*K)
	h_out_s float64 // kJ/kg
	T_out_s float64 // C
	rho_in  float64 // kg/m3
	V_in    float64 // m3/s
}

func (self *Pump) inlet_state(T_in, p_in, p_out, mf float64) (inletState, error) {
	var st inletState

	h_in, err := self.prv.PropsSI(props.Hmass, props.T, T_in+get_t_kelvin(), props.P, p_in*get_kilo(), self.Medium)
	if err != nil {
		return st, err
	}
	st.h_in = h_in / get_kilo()

	s_in, err := self.prv.PropsSI(props.Smass, props.T, T_in+get_t_kelvin(), props.P, p_in*get_kilo(), self.Medium)
	if err != nil {
		return st, err
	}
	st.s_in = s_in / get_kilo()

	// isentropic reference: entropy is conserved across the pump
	st.s_out_s = st.s_in

	h_out_s, err := self.prv.PropsSI(props.Hmass, props.Smass, st.s_out_s*get_kilo(), props.P, p_out*get_kilo(), self.Medium)
	if err != nil {
		return st, err
	}
	st.h_out_s = h_out_s / get_kilo()

	T_out_s, err := self.prv.PropsSI(props.T, props.Smass, st.s_out_s*get_kilo(), props.P, p_out*get_kilo(), self.Medium)
	if err != nil {
		return st, err
	}
	st.T_out_s = T_out_s - get_t_kelvin()

	rho_in, err := self.prv.PropsSI(props.Dmass, props.Hmass, st.h_in*get_kilo(), props.P, p_in*get_kilo(), self.Medium)
	if err != nil {
		return st, err
	}
	st.rho_in = rho_in
	st.V_in = mf / rho_in

	return st, nil
}

/*
Power calculates the internal power consumption of the pump at the design
point for the given internal efficiency.

	Args:
	    eta_iP: internal isentropic efficiency of the pump, 0.0-1.0, -

	Returns:
	    the design-point outlet state, including N_iP, the internal power, kW

	Notes:
	    eta_iP = 1.0 reproduces the isentropic outlet. Values outside (0, 1]
	    are not rejected here; they yield a physically meaningless enthalpy
	    rise and are the caller's responsibility. The pump itself is not
	    mutated, so Power may be called repeatedly with different
	    efficiencies during iterative cycle calculations.
*/
func (self *Pump) Power(eta_iP float64) (DesignState, error) {
	h_out := self.H_in + (self.H_out_s-self.H_in)/eta_iP

	T_out, err := self.prv.PropsSI(props.T, props.Hmass, h_out*get_kilo(), props.P, self.P_out*get_kilo(), self.Medium)
	if err != nil {
		return DesignState{}, err
	}
	T_out -= get_t_kelvin()

	s_out, err := self.prv.PropsSI(props.Smass, props.T, T_out+get_t_kelvin(), props.P, self.P_out*get_kilo(), self.Medium)
	if err != nil {
		return DesignState{}, err
	}

	return DesignState{
		Eta_iP: eta_iP,
		H_out:  h_out,
		T_out:  T_out,
		S_out:  s_out / get_kilo(),
		N_iP:   self.Mf * (h_out - self.H_in),
		V_in:   self.V_in,
	}, nil
}

/*
OffDesign evaluates the pump at boundary conditions away from the design
point. The design-point efficiency is rescaled with a cubic correction curve
over the volumetric flow ratio, after Ahlgren F, Mondejar ME, Genrup M,
Thern M. Waste Heat Recovery in a Cruise Vessel in the Baltic Sea by Using an
Organic Rankine Cycle: A Case Study. Journal of Engineering for Gas Turbines
and Power 2016;138:11702, doi:10.1115/1.4031145.

	Args:
	    ds: design-point state from Power (Eta_iP and V_in are used)
	    T_in_off: liquid temperature at pump inlet, C
	    p_in_off: liquid pressure at pump inlet, kPa(a)
	    p_out_off: pressure at pump outlet, kPa(a)
	    mf_off: mass flow of working fluid, kg/s

	Returns:
	    the off-design pump state; the design-point fields of the pump are
	    left untouched

	Notes:
	    The correction curve is fitted near a flow ratio of 1; far from the
	    design point it can produce a negative or otherwise unphysical
	    efficiency, which is passed through unchanged as in the source.
	    mf_off = 0 leaves the flow ratio undefined and is a caller error.
*/
func (self *Pump) OffDesign(ds DesignState, T_in_off float64, p_in_off float64, p_out_off float64, mf_off float64) (OffDesignState, error) {
	if ds.Eta_iP <= 0.0 || ds.Eta_iP > 1.0 {
		return OffDesignState{}, fmt.Errorf("pump: off-design evaluation needs a design-point efficiency in (0, 1], got %v", ds.Eta_iP)
	}

	st, err := self.inlet_state(T_in_off, p_in_off, p_out_off, mf_off)
	if err != nil {
		return OffDesignState{}, err
	}

	r := ds.V_in / st.V_in
	eta_iP_off := get_eta_correction(r) * ds.Eta_iP

	h_out := st.h_in + (st.h_out_s-st.h_in)/eta_iP_off

	T_out, err := self.prv.PropsSI(props.T, props.Hmass, h_out*get_kilo(), props.P, p_out_off*get_kilo(), self.Medium)
	if err != nil {
		return OffDesignState{}, err
	}
	T_out -= get_t_kelvin()

	s_out, err := self.prv.PropsSI(props.Smass, props.T, T_out+get_t_kelvin(), props.P, p_out_off*get_kilo(), self.Medium)
	if err != nil {
		return OffDesignState{}, err
	}

	return OffDesignState{
		T_in:    T_in_off,
		P_in:    p_in_off,
		P_out:   p_out_off,
		Mf:      mf_off,
		H_in:    st.h_in,
		S_in:    st.s_in,
		S_out_s: st.s_out_s,
		H_out_s: st.h_out_s,
		T_out_s: st.T_out_s,
		Rho_in:  st.rho_in,
		V_in:    st.V_in,
		Eta_iP:  eta_iP_off,
		H_out:   h_out,
		T_out:   T_out,
		S_out:   s_out / get_kilo(),
		N_iP:    mf_off * (h_out - st.h_in),
	}, nil
}

/*
get_eta_correction is the part-load efficiency correction factor over the
volumetric flow ratio r = V_in_design / V_in_off, a cubic fitted to published
pump performance data (Ahlgren et al. 2016). The coefficients sum to 1, so
r = 1 leaves the design efficiency unchanged.

	Args:
	    r: design-point over off-design volumetric flow, -

	Returns:
	    multiplier on the design-point internal efficiency, -
*/
func get_eta_correction(r float64) float64 {
	return -0.168*math.Pow(r, 3) - 0.0336*math.Pow(r, 2) + 0.6317*r + 0.5699
}
