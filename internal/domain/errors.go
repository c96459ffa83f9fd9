package domain

import "errors"

var (
	// ErrEmptyInput is returned when a load is attempted with zero readings;
	// the temperature range of an empty trace is undefined.
	ErrEmptyInput = errors.New("empty reading sequence")

	// ErrIndexOutOfRange is returned by any lookup or selection that refers
	// to a reading or log row outside the loaded trace.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNonFiniteReading is returned when a reading's position or
	// temperature is NaN or infinite.
	ErrNonFiniteReading = errors.New("non-finite reading")
)
