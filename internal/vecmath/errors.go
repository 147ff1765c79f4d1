package vecmath

import "errors"

// #region errors
var (
	// ErrDimensionMismatch is returned when two operands differ in length.
	ErrDimensionMismatch = errors.New("vecmath: dimension mismatch")

	// ErrEmptyVector is returned when an operation needs at least one element.
	ErrEmptyVector = errors.New("vecmath: empty vector")

	// ErrIndexOutOfRange is returned when a segment bound falls outside the vector.
	ErrIndexOutOfRange = errors.New("vecmath: index out of range")
)

// #endregion errors
