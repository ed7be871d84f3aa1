package vtu

import "fmt"

// StorageClass identifies where on the mesh an array lives.
type StorageClass int

const (
	// PointData arrays associate one tuple with every mesh point.
	PointData StorageClass = iota

	// CellData arrays associate one tuple with every mesh cell.
	CellData
)

func (c StorageClass) String() string {
	if c == CellData {
		return "cell"
	}

	return "point"
}

// Array is a decoded numeric data array. It satisfies the tuple-array
// contract of the compare package.
type Array struct {
	name       string
	class      StorageClass
	dtype      string
	components int
	data       []float64
}

// Name returns the array name from the file.
func (a *Array) Name() string { return a.name }

// Class returns the storage class the array was resolved from.
func (a *Array) Class() StorageClass { return a.class }

// DataType returns the VTK type name the values were decoded from.
func (a *Array) DataType() string { return a.dtype }

// TupleCount returns the number of tuples.
func (a *Array) TupleCount() int { return len(a.data) / a.components }

// ComponentCount returns the number of components per tuple.
func (a *Array) ComponentCount() int { return a.components }

// Component returns the value at the given tuple and component index.
func (a *Array) Component(tuple, component int) float64 {
	return a.data[tuple*a.components+component]
}

// Floats returns the decoded values in tuple-major order.
func (a *Array) Floats() []float64 { return a.data }

// Resolve opens path and looks up the named array, point data first.
func Resolve(path, name string) (*Array, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}

	return f.Lookup(name)
}

// ResolvePair resolves the two arrays of a comparison. With an empty
// pathB both arrays come from pathA, and identical names are rejected as
// a self comparison. Array b is looked up in the storage class array a
// resolved to, so a point-data array is never compared against a
// cell-data array of the same name.
func ResolvePair(pathA, pathB, nameA, nameB string) (*Array, *Array, error) {
	if pathB == "" && nameA == nameB {
		return nil, nil, fmt.Errorf("%w: data array %q from file %s", ErrSelfComparison, nameA, pathA)
	}

	fa, err := Open(pathA)
	if err != nil {
		return nil, nil, err
	}

	a, err := fa.Lookup(nameA)
	if err != nil {
		return nil, nil, err
	}

	fb := fa
	if pathB != "" {
		fb, err = Open(pathB)
		if err != nil {
			return nil, nil, err
		}
	}

	b, err := fb.LookupIn(a.Class(), nameB)
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}
