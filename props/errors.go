package props

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFluid indicates a fluid name the provider does not recognize.
	ErrUnknownFluid = errors.New("props: unknown fluid")

	// ErrStateOutOfRange indicates a state point outside the fluid's valid envelope.
	ErrStateOutOfRange = errors.New("props: state point out of range")

	// ErrInputPair indicates a combination of state variables the provider cannot resolve.
	ErrInputPair = errors.New("props: unsupported input pair")
)

// StateError reports a failed property query together with its cause.
// It wraps one of the sentinel errors above and supports errors.Is.
type StateError struct {
	Fluid  string
	Output string
	Name1  string
	Value1 float64
	Name2  string
	Value2 float64
	Err    error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%v: %s(%s=%g, %s=%g, %q)", e.Err, e.Output, e.Name1, e.Value1, e.Name2, e.Value2, e.Fluid)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
