package vtu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chleh/vtkdiff/internal/testutil"
	"github.com/chleh/vtkdiff/vtu"
)

func TestResolvePair_TwoFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: []float64{1, 2, 3}},
	}, testutil.VTUOptions{})
	pathB := testutil.WriteVTU(t, dir, "b.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: []float64{1, 2, 4}},
	}, testutil.VTUOptions{})

	a, b, err := vtu.ResolvePair(pathA, pathB, "pressure", "pressure")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, a.Floats())
	assert.Equal(t, []float64{1, 2, 4}, b.Floats())
}

func TestResolvePair_SameFileTwoArrays(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "computed", Values: []float64{1, 2}},
		{Name: "reference", Values: []float64{1, 2.5}},
	}, testutil.VTUOptions{})

	a, b, err := vtu.ResolvePair(path, "", "computed", "reference")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, a.Floats())
	assert.Equal(t, []float64{1, 2.5}, b.Floats())
}

func TestResolvePair_SelfComparisonRejected(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: []float64{1}},
	}, testutil.VTUOptions{})

	_, _, err := vtu.ResolvePair(path, "", "pressure", "pressure")
	require.ErrorIs(t, err, vtu.ErrSelfComparison)
}

func TestResolvePair_StorageClassPinned(t *testing.T) {
	// Array a resolves from point data; array b of the requested name
	// exists only in cell data, so the pinned lookup must fail instead
	// of silently crossing storage classes.
	dir := t.TempDir()
	path := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "computed", Values: []float64{1, 2}},
		{Name: "reference", Values: []float64{1, 2}, Cell: true},
	}, testutil.VTUOptions{})

	_, _, err := vtu.ResolvePair(path, "", "computed", "reference")
	require.ErrorIs(t, err, vtu.ErrArrayNotFound)
	assert.Contains(t, err.Error(), "point data")
}

func TestResolvePair_CellClassCarriesOver(t *testing.T) {
	dir := t.TempDir()
	pathA := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "material", Values: []float64{1, 2}, Cell: true},
	}, testutil.VTUOptions{})
	pathB := testutil.WriteVTU(t, dir, "b.vtu", []testutil.VTUArray{
		{Name: "material", Values: []float64{9, 9}},          // decoy in point data
		{Name: "material", Values: []float64{1, 3}, Cell: true},
	}, testutil.VTUOptions{})

	a, b, err := vtu.ResolvePair(pathA, pathB, "material", "material")
	require.NoError(t, err)

	assert.Equal(t, vtu.CellData, a.Class())
	assert.Equal(t, vtu.CellData, b.Class())
	assert.Equal(t, []float64{1, 3}, b.Floats())
}

func TestResolvePair_FirstFileError(t *testing.T) {
	_, _, err := vtu.ResolvePair("missing.vtu", "", "a", "b")
	require.Error(t, err)
}

func TestStorageClassString(t *testing.T) {
	assert.Equal(t, "point", vtu.PointData.String())
	assert.Equal(t, "cell", vtu.CellData.String())
}
