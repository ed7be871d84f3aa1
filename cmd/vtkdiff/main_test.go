package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chleh/vtkdiff/internal/testutil"
)

func writePair(t *testing.T, va, vb []float64) (string, string) {
	t.Helper()

	dir := t.TempDir()
	pathA := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: va},
	}, testutil.VTUOptions{})
	pathB := testutil.WriteVTU(t, dir, "b.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: vb},
	}, testutil.VTUOptions{})

	return pathA, pathB
}

func TestRun_IdenticalArraysPass(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1, 2, 3}, []float64{1, 2, 3})

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", pathA, pathB}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "Comparing data array `pressure'")
	assert.Contains(t, stdout.String(), "abs maximum norm = [0.000000000000000e+00]")
}

func TestRun_DifferingArraysFail(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1, 2, 3}, []float64{1, 2, 4})

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", pathA, pathB}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(),
		"Absolute and relative error (maximum norm) are larger than the corresponding thresholds.")
}

func TestRun_VerdictLeniency(t *testing.T) {
	// Large absolute error but tiny relative error passes as long as the
	// relative threshold holds.
	pathA, pathB := writePair(t, []float64{1e6}, []float64{1e6 + 10})

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", "-abs", "1e-3", "-rel", "1e-3", pathA, pathB},
		&stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
}

func TestRun_Quiet(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1}, []float64{2})

	var stdout, stderr strings.Builder
	code := run([]string{"-q", "-a", "pressure", "-b", "pressure", pathA, pathB}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_Verbose(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1, 2}, []float64{1, 3})

	var stdout, stderr strings.Builder
	code := run([]string{"-v", "-a", "pressure", "-b", "pressure", pathA, pathB}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "tuple:    1 component:  0:")
}

func TestRun_SingleFileTwoArrays(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "computed", Values: []float64{1, 2}},
		{Name: "reference", Values: []float64{1, 2}},
	}, testutil.VTUOptions{})

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "computed", "-b", "reference", path}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
}

func TestRun_SelfComparisonFails(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteVTU(t, dir, "a.vtu", []testutil.VTUArray{
		{Name: "pressure", Values: []float64{1}},
	}, testutil.VTUOptions{})

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "itself")
}

func TestRun_MissingArrayNames(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run([]string{"a.vtu"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "-a and -b")
}

func TestRun_WrongFileCount(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run([]string{"-a", "x", "-b", "y"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
}

func TestRun_TolerancePreset(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1, 2}, []float64{1, 2.1})

	dir := t.TempDir()
	tolPath := filepath.Join(dir, "tol.yaml")
	require.NoError(t, os.WriteFile(tolPath, []byte("pressure:\n  abs: 1\n  rel: 1\n"), 0o644))

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", "-tolerances", tolPath, pathA, pathB},
		&stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
}

func TestRun_UnknownPreset(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1}, []float64{1})

	dir := t.TempDir()
	tolPath := filepath.Join(dir, "tol.yaml")
	require.NoError(t, os.WriteFile(tolPath, []byte("other:\n  abs: 1\n  rel: 1\n"), 0o644))

	var stdout, stderr strings.Builder
	code := run([]string{"-a", "pressure", "-b", "pressure", "-tolerances", tolPath, pathA, pathB},
		&stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown preset")
}

func TestRun_ResidualsCSV(t *testing.T) {
	pathA, pathB := writePair(t, []float64{1, 2}, []float64{1, 3})

	csvPath := filepath.Join(t.TempDir(), "residuals.csv")

	var stdout, stderr strings.Builder
	code := run([]string{"-q", "-a", "pressure", "-b", "pressure", "-residuals", csvPath, pathA, pathB},
		&stdout, &stderr)

	assert.Equal(t, 1, code)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "tuple,component,abs_err,rel_err", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,0,0e+00"), "line: %s", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "1,0,1e+00"), "line: %s", lines[2])
}

func TestRun_ParallelWorkers(t *testing.T) {
	values := testutil.Ramp(1000)
	pathA, pathB := writePair(t, values, testutil.Perturbed(values, 1e-12))

	var stdout, stderr strings.Builder
	code := run([]string{"-jobs", "4", "-abs", "1e-9", "-rel", "1e-9",
		"-a", "pressure", "-b", "pressure", pathA, pathB}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
}
