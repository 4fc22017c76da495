package pump

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pump_calc/props"
)

// recordingProvider passes queries through to another provider and keeps the
// raw values seen at the boundary, so the unit conversions of the pump can be
// checked against the contract (K, Pa, J-based).
type recordingProvider struct {
	inner props.Provider
	calls []propsCall
}

type propsCall struct {
	output string
	name1  string
	value1 float64
	name2  string
	value2 float64
	fluid  string
}

func (self *recordingProvider) PropsSI(output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error) {
	self.calls = append(self.calls, propsCall{output, name1, value1, name2, value2, fluid})
	return self.inner.PropsSI(output, name1, value1, name2, value2, fluid)
}

// failingProvider fails every query matching the given output key.
type failingProvider struct {
	inner props.Provider
	deny  string
}

func (self *failingProvider) PropsSI(output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error) {
	if output == self.deny {
		return 0, &props.StateError{Fluid: fluid, Output: output, Name1: name1, Value1: value1, Name2: name2, Value2: value2, Err: props.ErrStateOutOfRange}
	}
	return self.inner.PropsSI(output, name1, value1, name2, value2, fluid)
}

func TestNewPumpIsentropicIdentity(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	// entropy is conserved on the isentropic reference path, bit for bit
	assert.Equal(t, p.S_in, p.S_out_s)
	assert.Greater(t, p.H_out_s, p.H_in)
	assert.Greater(t, p.V_in, 0.0)
}

func TestNewPumpUnitBoundary(t *testing.T) {
	rec := &recordingProvider{inner: props.NewIncompProvider()}
	p, err := NewPump(rec, 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	require.Len(t, rec.calls, 5)

	// inlet enthalpy query: C -> K, kPa -> Pa
	first := rec.calls[0]
	assert.Equal(t, props.Hmass, first.output)
	assert.Equal(t, props.T, first.name1)
	assert.InDelta(t, 298.15, first.value1, 1e-12)
	assert.Equal(t, props.P, first.name2)
	assert.InDelta(t, 100000.0, first.value2, 1e-9)
	assert.Equal(t, "Water", first.fluid)

	// isentropic outlet enthalpy query: entropy back in J/(kg*K), outlet Pa
	third := rec.calls[2]
	assert.Equal(t, props.Hmass, third.output)
	assert.Equal(t, props.Smass, third.name1)
	assert.InDelta(t, p.S_in*1000.0, third.value1, 1e-9)
	assert.InDelta(t, 500000.0, third.value2, 1e-9)
}

func TestNewPumpWaterGoldenValues(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	// golden values from the incompressible backend at 25 C, 100 kPa
	h_ref := (4181.3*25.0 + (100000.0-101325.0)/997.05) / 1000.0
	s_ref := 4181.3 * math.Log(298.15/273.15) / 1000.0
	assert.InEpsilon(t, h_ref, p.H_in, 1e-3)
	assert.InEpsilon(t, s_ref, p.S_in, 1e-3)
	assert.InEpsilon(t, 997.05, p.Rho_in, 1e-3)

	// and within a percent of the steam table for the same state
	assert.InEpsilon(t, 104.92, p.H_in, 1e-2)
	assert.InEpsilon(t, 0.3672, p.S_in, 1e-2)
}

func TestPowerIdealEfficiency(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	ds, err := p.Power(1.0)
	require.NoError(t, err)

	assert.InDelta(t, p.H_out_s, ds.H_out, 1e-9)
	assert.InDelta(t, p.T_out_s, ds.T_out, 1e-9)
	assert.InDelta(t, p.S_out_s, ds.S_out, 1e-9)
}

func TestPowerEnergyBalance(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 2000.0, 3.5, "Water")
	require.NoError(t, err)

	for _, eta := range []float64{0.6, 0.75, 0.9, 1.0} {
		eta := eta
		t.Run(fmt.Sprintf("eta=%.2f", eta), func(t *testing.T) {
			ds, err := p.Power(eta)
			require.NoError(t, err)
			assert.InDelta(t, p.Mf*(ds.H_out-p.H_in), ds.N_iP, 1e-12)
			assert.GreaterOrEqual(t, ds.N_iP, 0.0)
		})
	}
}

func TestPowerDoesNotMutatePump(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	before := *p
	ds1, err := p.Power(0.8)
	require.NoError(t, err)
	ds2, err := p.Power(0.8)
	require.NoError(t, err)

	assert.Equal(t, ds1, ds2)
	assert.Equal(t, before, *p)
}

func TestPowerPropagatesProviderError(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	// the outlet temperature lookup in Power is the first T query to fail
	p.prv = &failingProvider{inner: props.NewIncompProvider(), deny: props.T}

	_, err = p.Power(0.8)
	require.Error(t, err)
	assert.ErrorIs(t, err, props.ErrStateOutOfRange)
}

func TestNewPumpUnknownMedium(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Unobtainium")
	require.Error(t, err)
	assert.ErrorIs(t, err, props.ErrUnknownFluid)
	assert.Nil(t, p)

	var st *props.StateError
	require.ErrorAs(t, err, &st)
	assert.Equal(t, "Unobtainium", st.Fluid)
}

func TestEtaCorrectionAtDesignFlow(t *testing.T) {
	// the fitted coefficients sum to 1: no deviation, no correction
	assert.InDelta(t, 1.0, get_eta_correction(1.0), 1e-12)
}

func TestOffDesignRequiresDesignState(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)

	_, err = p.OffDesign(DesignState{}, 25.0, 100.0, 500.0, 0.8)
	require.Error(t, err)

	_, err = p.OffDesign(DesignState{Eta_iP: 1.5, V_in: p.V_in}, 25.0, 100.0, 500.0, 0.8)
	require.Error(t, err)
}

func TestOffDesignAtDesignConditions(t *testing.T) {
	p, err := NewPump(props.NewIncompProvider(), 25.0, 100.0, 500.0, 1.0, "Water")
	require.NoError(t, err)
	ds, err := p.Power(0.75)
	require.NoError(t, err)

	os_, err := p.OffDesign(ds, 25.0, 100.0, 500.0, 1.0)
	require.NoError(t, err)

	// identical boundary conditions reproduce the design point
	assert.InDelta(t, ds.Eta_iP, os_.Eta_iP, 1e-12)
	assert.InDelta(t, ds.H_out, os_.H_out, 1e-9)
	assert.InDelta(t, ds.N_iP, os_.N_iP, 1e-9)
	assert.InDelta(t, p.V_in, os_.V_in, 1e-15)
}
