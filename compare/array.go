package compare

import "fmt"

// TupleArray is the read-only view of a tuple-structured numeric array.
// Tuples are multi-component records; components are scalar channels
// within a tuple. Implementations must be safe for concurrent reads.
type TupleArray interface {
	TupleCount() int
	ComponentCount() int
	Component(tuple, component int) float64
}

// Dense is a TupleArray backed by a contiguous tuple-major []float64.
type Dense struct {
	tuples     int
	components int
	data       []float64
}

// NewDense wraps data as a tuples x components array. The data slice is
// not copied; len(data) must equal tuples*components.
func NewDense(tuples, components int, data []float64) (*Dense, error) {
	if tuples < 0 || components <= 0 {
		return nil, fmt.Errorf("%w: %d tuples x %d components", ErrInvalidShape, tuples, components)
	}

	if len(data) != tuples*components {
		return nil, fmt.Errorf("%w: %d values for %d tuples x %d components",
			ErrInvalidShape, len(data), tuples, components)
	}

	return &Dense{tuples: tuples, components: components, data: data}, nil
}

func (d *Dense) TupleCount() int     { return d.tuples }
func (d *Dense) ComponentCount() int { return d.components }

func (d *Dense) Component(tuple, component int) float64 {
	return d.data[tuple*d.components+component]
}

// Data returns the underlying tuple-major slice.
func (d *Dense) Data() []float64 { return d.data }
