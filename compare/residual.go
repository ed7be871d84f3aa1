package compare

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ResidualSet holds the full absolute and relative residual vectors of a
// comparison, indexed [component][tuple]. It trades memory for access to
// the individual errors, e.g. for CSV export or plotting; Compare itself
// never materializes these vectors.
type ResidualSet struct {
	Abs [][]float64
	Rel [][]float64
}

// Norms are the L1, L2 and maximum norm of one residual vector.
type Norms struct {
	L1  float64
	L2  float64
	Max float64
}

// Residuals computes the per-entry absolute and relative errors of a
// against b, using the same relative-error policy as Compare.
func Residuals(a, b TupleArray) (*ResidualSet, error) {
	if err := checkShape(a, b); err != nil {
		return nil, err
	}

	tuples := a.TupleCount()
	components := a.ComponentCount()

	rs := &ResidualSet{
		Abs: make([][]float64, components),
		Rel: make([][]float64, components),
	}

	for c := 0; c < components; c++ {
		rs.Abs[c] = make([]float64, tuples)
		rs.Rel[c] = make([]float64, tuples)
	}

	for t := 0; t < tuples; t++ {
		for c := 0; c < components; c++ {
			va := a.Component(t, c)
			vb := b.Component(t, c)
			absErr := math.Abs(va - vb)
			rs.Abs[c][t] = absErr
			rs.Rel[c][t] = relativeError(absErr, va, vb)
		}
	}

	return rs, nil
}

// TupleCount returns the number of tuples per residual vector.
func (r *ResidualSet) TupleCount() int {
	if len(r.Abs) == 0 {
		return 0
	}

	return len(r.Abs[0])
}

// ComponentCount returns the number of components.
func (r *ResidualSet) ComponentCount() int { return len(r.Abs) }

// AbsNorms returns the norms of the absolute residuals of component c.
func (r *ResidualSet) AbsNorms(c int) Norms { return vectorNorms(r.Abs[c]) }

// RelNorms returns the norms of the relative residuals of component c.
func (r *ResidualSet) RelNorms(c int) Norms { return vectorNorms(r.Rel[c]) }

func vectorNorms(x []float64) Norms {
	var n Norms

	for _, v := range x {
		a := math.Abs(v)
		n.L1 += a

		if a > n.Max {
			n.Max = a
		}
	}

	n.L2 = math.Sqrt(sumSquares(x))

	return n
}

// sumSquares squares the vector blockwise and reduces the result.
func sumSquares(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)

	var sum float64
	for _, v := range sq {
		sum += v
	}

	return sum
}
