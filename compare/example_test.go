package compare_test

import (
	"fmt"
	"os"

	"github.com/chleh/vtkdiff/compare"
)

func ExampleCompare() {
	a, _ := compare.NewDense(3, 1, []float64{1.0, 2.0, 0.0})
	b, _ := compare.NewDense(3, 1, []float64{1.0, 2.0001, 0.0})

	report, _ := compare.Compare(a, b, 1e-3, 1e-3)
	fmt.Printf("pass=%v maxAbs=%.1e\n", report.Pass(), report.MaxAbs())

	// Output:
	// pass=true maxAbs=1.0e-04
}

func ExampleFormatter_WriteReport() {
	a, _ := compare.NewDense(2, 1, []float64{1, 2})
	b, _ := compare.NewDense(2, 1, []float64{1, 2})

	report, _ := compare.Compare(a, b, 0, 0)

	f := compare.Formatter{Precision: 1, Scientific: true}
	_ = f.WriteReport(os.Stdout, report)

	// Output:
	// abs l1 norm      = [0.0e+00]
	// abs l2-norm^2    = [0.0e+00]
	// abs l2-norm      = [0.0e+00]
	// abs maximum norm = [0.0e+00]
	//
	// rel l1 norm      = [0.0e+00]
	// rel l2-norm^2    = [0.0e+00]
	// rel l2-norm      = [0.0e+00]
	// rel maximum norm = [0.0e+00]
}
