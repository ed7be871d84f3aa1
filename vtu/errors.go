package vtu

import "errors"

var (
	// ErrUnsupportedFormat indicates a file that is not a .vtu XML
	// unstructured grid.
	ErrUnsupportedFormat = errors.New("vtu: unsupported file format")

	// ErrArrayNotFound indicates the named data array exists neither in
	// point data nor in cell data.
	ErrArrayNotFound = errors.New("vtu: data array not found")

	// ErrNotNumeric indicates the named array holds a non-numeric type.
	ErrNotNumeric = errors.New("vtu: data array is not numeric")

	// ErrSelfComparison indicates an attempt to compare a data array to
	// itself (single input file, identical array names).
	ErrSelfComparison = errors.New("vtu: comparing a data array to itself")

	// ErrMalformed indicates structurally invalid file content.
	ErrMalformed = errors.New("vtu: malformed file")
)
