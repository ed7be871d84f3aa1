// Command vtkdiff compares a named data array between two VTK
// unstructured grid (.vtu) files, or two arrays within one file, and
// fails if both the absolute and the relative error exceed their
// thresholds in the maximum norm.
//
// Usage:
//
//	vtkdiff [flags] file-a.vtu [file-b.vtu]
//
// Examples:
//
//	vtkdiff -a pressure -b pressure result.vtu reference.vtu
//	vtkdiff -a pressure -b pressure_ref result.vtu
//	vtkdiff -a pressure -b pressure -abs 1e-9 -rel 1e-6 -v a.vtu b.vtu
//	vtkdiff -a pressure -b pressure -tolerances tol.yaml a.vtu b.vtu
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chleh/vtkdiff/compare"
	"github.com/chleh/vtkdiff/tolerance"
	"github.com/chleh/vtkdiff/vtu"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vtkdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	arrayA := fs.String("a", "", "first data array name (required)")
	arrayB := fs.String("b", "", "second data array name (required)")
	absThr := fs.Float64("abs", tolerance.DefaultEpsilon,
		"tolerance for the absolute error in the maximum norm")
	relThr := fs.Float64("rel", tolerance.DefaultEpsilon,
		"tolerance for the componentwise relative error")
	quiet := fs.Bool("q", false, "suppress all but error output")
	verbose := fs.Bool("v", false, "also print which values differ")
	jobs := fs.Int("jobs", 1, "number of parallel comparison workers")
	tolFile := fs.String("tolerances", "", "YAML file with named tolerance presets")
	preset := fs.String("preset", "", "preset name in the -tolerances file (default: first array name)")
	residuals := fs.String("residuals", "", "write per-entry residuals to this CSV file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: vtkdiff [flags] file-a.vtu [file-b.vtu]\n\n")
		fmt.Fprintf(stderr, "Compares data array -a of the first file to data array -b of the\n")
		fmt.Fprintf(stderr, "second file, or of the same file if only one is given.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) < 1 || len(files) > 2 {
		fmt.Fprintln(stderr, "error: expected one or two input files")
		fs.Usage()

		return 2
	}

	if *arrayA == "" || *arrayB == "" {
		fmt.Fprintln(stderr, "error: both -a and -b array names are required")
		fs.Usage()

		return 2
	}

	fileA := files[0]

	var fileB string
	if len(files) == 2 {
		fileB = files[1]
	}

	if *tolFile != "" {
		set, err := tolerance.LoadFile(*tolFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		name := *preset
		if name == "" {
			name = *arrayA
		}

		tol, err := set.Lookup(name)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		*absThr, *relThr = tol.Abs, tol.Rel
	}

	a, b, err := vtu.ResolvePair(fileA, fileB, *arrayA, *arrayB)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if !*quiet {
		fmt.Fprintf(stdout, "Comparing data array `%s' from file `%s' to data array `%s' from file `%s'.\n",
			*arrayA, fileA, *arrayB, fileB)
	}

	var opts []compare.Option

	if *verbose {
		opts = append(opts, compare.WithVerbose())
	}

	if *jobs > 1 {
		opts = append(opts, compare.WithWorkers(*jobs))
	}

	report, err := compare.Compare(a, b, *absThr, *relThr, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	formatter := compare.DefaultFormatter()

	if *verbose && !*quiet {
		if err := formatter.WriteEntries(stdout, report.Entries); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if !*quiet {
		fmt.Fprintln(stdout, "Computed difference between data arrays:")

		if err := formatter.WriteReport(stdout, report); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if *residuals != "" {
		if err := writeResiduals(*residuals, a, b); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if !report.Pass() {
		if !*quiet {
			fmt.Fprintln(stdout, "Absolute and relative error (maximum norm) are larger than the corresponding thresholds.")
		}

		return 1
	}

	return 0
}

func writeResiduals(path string, a, b compare.TupleArray) error {
	rs, err := compare.Residuals(a, b)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{"tuple", "component", "abs_err", "rel_err"}); err != nil {
		f.Close()
		return err
	}

	for t := 0; t < rs.TupleCount(); t++ {
		for c := 0; c < rs.ComponentCount(); c++ {
			record := []string{
				strconv.Itoa(t),
				strconv.Itoa(c),
				strconv.FormatFloat(rs.Abs[c][t], 'e', -1, 64),
				strconv.FormatFloat(rs.Rel[c][t], 'e', -1, 64),
			}
			if err := w.Write(record); err != nil {
				f.Close()
				return err
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
