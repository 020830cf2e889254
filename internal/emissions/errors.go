package emissions

// constError is an immutable error type for sentinel errors, comparable
// with errors.Is().
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNegativeQuantity indicates an activity quantity below zero.
	// Quantities must be validated at the boundary; a negative reaching
	// a calculator is a contract violation and aborts the calculation.
	ErrNegativeQuantity = constError("negative activity quantity")

	// ErrUnknownScope2Method indicates a scope 2 method other than
	// location-based or market-based.
	ErrUnknownScope2Method = constError("unknown scope 2 method")

	// ErrInvalidRenewablePercent indicates a renewable share outside
	// 0-100.
	ErrInvalidRenewablePercent = constError("renewable percent out of range")

	// ErrNegativeExposure indicates a negative outstanding amount or
	// asset value in a financed-emissions input.
	ErrNegativeExposure = constError("negative financial exposure")
)
