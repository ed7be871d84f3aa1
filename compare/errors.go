package compare

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates that the two arrays disagree in tuple or
	// component count. Match with errors.Is; the concrete *ShapeError
	// carries both conflicting values.
	ErrShapeMismatch = errors.New("compare: tuple array shapes differ")

	// ErrNilArray indicates a nil TupleArray operand.
	ErrNilArray = errors.New("compare: nil tuple array")

	// ErrInvalidShape indicates an invalid shape or a data slice whose
	// length does not match the requested shape.
	ErrInvalidShape = errors.New("compare: invalid shape")
)

// ShapeError reports a tuple-count or component-count disagreement between
// the two arrays under comparison.
type ShapeError struct {
	TuplesA, TuplesB         int
	ComponentsA, ComponentsB int
}

func (e *ShapeError) Error() string {
	if e.TuplesA != e.TuplesB {
		return fmt.Sprintf("compare: number of tuples differ: %d in array a and %d in array b",
			e.TuplesA, e.TuplesB)
	}

	return fmt.Sprintf("compare: number of components differ: %d in array a and %d in array b",
		e.ComponentsA, e.ComponentsB)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
