package props

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/interp"
)

// One grid point of a fluid property table. Units are SI, matching the
// provider boundary.
type tableRecord struct {
	T     float64 `csv:"T"`     // K
	P     float64 `csv:"P"`     // Pa(a)
	Hmass float64 `csv:"Hmass"` // J/kg
	Smass float64 `csv:"Smass"` // J/(kg*K)
	Dmass float64 `csv:"Dmass"` // kg/m3
}

// fluidTable holds properties on a rectangular T x P grid.
type fluidTable struct {
	ts []float64 // grid temperatures, K, ascending
	ps []float64 // grid pressures, Pa, ascending

	// property values, [len(ts)][len(ps)]
	h [][]float64
	s [][]float64
	d [][]float64
}

/*
TableProvider resolves property queries by interpolating per-fluid property
tables dumped from a reference property library. It covers the subcooled
liquid region only; queries are answered by piecewise-linear interpolation
along the pressure axis first, then along the temperature axis, with inverse
lookups for enthalpy and entropy inputs over the monotone profile at the
requested pressure.
*/
type TableProvider struct {
	tables map[string]*fluidTable
}

func NewTableProvider() *TableProvider {
	return &TableProvider{tables: map[string]*fluidTable{}}
}

/*
LoadCSV reads one fluid's property grid from a CSV file with columns
T, P, Hmass, Smass, Dmass (SI units).

	Args:
	    fluid: fluid name the table is registered under
	    file_path: path to the CSV file

	Notes:
	    The records must cover a full rectangular T x P grid; the row order
	    in the file does not matter.
*/
func (self *TableProvider) LoadCSV(fluid string, file_path string) error {
	file, err := os.Open(file_path)
	if err != nil {
		return err
	}
	defer file.Close()

	var records []*tableRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return err
	}

	tbl, err := newFluidTable(records)
	if err != nil {
		return fmt.Errorf("props: table for %q: %w", fluid, err)
	}
	self.tables[fluid] = tbl
	return nil
}

func newFluidTable(records []*tableRecord) (*fluidTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	ts := sortedUnique(records, func(r *tableRecord) float64 { return r.T })
	ps := sortedUnique(records, func(r *tableRecord) float64 { return r.P })
	if len(ts) < 2 || len(ps) < 2 {
		return nil, fmt.Errorf("grid needs at least 2 temperatures and 2 pressures, got %dx%d", len(ts), len(ps))
	}
	if len(ts)*len(ps) != len(records) {
		return nil, fmt.Errorf("not a full %dx%d grid (%d records)", len(ts), len(ps), len(records))
	}

	type key struct{ t, p float64 }
	byState := make(map[key]*tableRecord, len(records))
	for _, r := range records {
		byState[key{r.T, r.P}] = r
	}

	tbl := &fluidTable{ts: ts, ps: ps}
	for _, t := range ts {
		hs := make([]float64, len(ps))
		ss := make([]float64, len(ps))
		ds := make([]float64, len(ps))
		for j, p := range ps {
			r, ok := byState[key{t, p}]
			if !ok {
				return nil, fmt.Errorf("missing grid point T=%g P=%g", t, p)
			}
			hs[j], ss[j], ds[j] = r.Hmass, r.Smass, r.Dmass
		}
		tbl.h = append(tbl.h, hs)
		tbl.s = append(tbl.s, ss)
		tbl.d = append(tbl.d, ds)
	}
	return tbl, nil
}

func sortedUnique(records []*tableRecord, get func(*tableRecord) float64) []float64 {
	seen := map[float64]bool{}
	var vs []float64
	for _, r := range records {
		v := get(r)
		if !seen[v] {
			seen[v] = true
			vs = append(vs, v)
		}
	}
	sort.Float64s(vs)
	return vs
}

func (self *TableProvider) PropsSI(output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error) {
	fail := func(err error) (float64, error) {
		return 0, &StateError{Fluid: fluid, Output: output, Name1: name1, Value1: value1, Name2: name2, Value2: value2, Err: err}
	}

	tbl, ok := self.tables[fluid]
	if !ok {
		return fail(ErrUnknownFluid)
	}

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
	if p < tbl.ps[0] || p > tbl.ps[len(tbl.ps)-1] {
		return fail(ErrStateOutOfRange)
	}

	// property profiles along the temperature axis at the requested pressure
	h_t := tbl.profileAt(p, tbl.h)
	s_t := tbl.profileAt(p, tbl.s)
	d_t := tbl.profileAt(p, tbl.d)

	var t float64
	switch name {
	case T:
		t = value
	case Hmass:
		tt, err := invertProfile(h_t, tbl.ts, value)
		if err != nil {
			return fail(err)
		}
		t = tt
	case Smass:
		tt, err := invertProfile(s_t, tbl.ts, value)
		if err != nil {
			return fail(err)
		}
		t = tt
	default:
		return fail(ErrInputPair)
	}
	if t < tbl.ts[0] || t > tbl.ts[len(tbl.ts)-1] {
		return fail(ErrStateOutOfRange)
	}

	switch output {
	case T:
		return t, nil
	case P:
		return p, nil
	case Hmass:
		return predict(tbl.ts, h_t, t), nil
	case Smass:
		return predict(tbl.ts, s_t, t), nil
	case Dmass:
		return predict(tbl.ts, d_t, t), nil
	default:
		return fail(ErrInputPair)
	}
}

// profileAt interpolates each grid isotherm of vals to the pressure p,
// giving the property as a function of the grid temperatures.
func (self *fluidTable) profileAt(p float64, vals [][]float64) []float64 {
	prof := make([]float64, len(self.ts))
	for i := range self.ts {
		prof[i] = predict(self.ps, vals[i], p)
	}
	return prof
}

// invertProfile maps a property value back to temperature over a profile that
// must be strictly increasing in temperature (true for h and s of a liquid).
func invertProfile(prof, ts []float64, value float64) (float64, error) {
	for i := 1; i < len(prof); i++ {
		if prof[i] <= prof[i-1] {
			return 0, ErrInputPair
		}
	}
	if value < prof[0] || value > prof[len(prof)-1] {
		return 0, ErrStateOutOfRange
	}
	return predict(prof, ts, value), nil
}

func predict(xs, ys []float64, x float64) float64 {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		// the grid axes are validated at load time
		panic(err)
	}
	return pl.Predict(x)
}
