package props

// Property keys accepted by Provider implementations. The naming follows
// CoolProp's PropsSI so that a thin wrapper around the native library can be
// dropped in without any translation layer.
const (
	T     = "T"     // temperature, K
	P     = "P"     // pressure, Pa(a)
	Hmass = "Hmass" // mass specific enthalpy, J/kg
	Smass = "Smass" // mass specific entropy, J/(kg*K)
	Dmass = "Dmass" // mass density, kg/m3
)

/*
Provider evaluates one thermodynamic property of a fluid from two independent
state variables. All values cross this boundary in SI units.

	Args:
	    output: property key to evaluate
	    name1, value1: first state variable
	    name2, value2: second state variable
	    fluid: working fluid ex. Water, Toluene, R1233zd(E)

	Returns:
	    the requested property in SI units

	Notes:
	    The provider must return an error, not panic, when the state point
	    cannot be resolved: unknown fluid name, state outside the fluid's
	    valid envelope, or an input pair the backend does not support.
*/
type Provider interface {
	PropsSI(output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error)
}
