package pump

// offset between the Celsius and Kelvin temperature scales, K
func get_t_kelvin() float64 {
	return 273.15
}

// factor between the kJ-based working units and the SI units of the property
// boundary (kPa to Pa, kJ/kg to J/kg, kJ/(kg*K) to J/(kg*K))
func get_kilo() float64 {
	return 1000.0
}
