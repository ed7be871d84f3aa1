package compare

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// float64 has 15 decimal digits that survive a round trip.
const defaultPrecision = 15

// Formatter renders reports and differing entries as text. It replaces
// stream-global numeric formatting state with an explicit configuration
// value that callers pass to the presentation layer.
type Formatter struct {
	// Precision is the number of digits after the decimal point.
	Precision int

	// Scientific selects scientific notation; otherwise the shortest
	// representation within Precision significant digits is used.
	Scientific bool
}

// DefaultFormatter returns the standard scientific, full-precision formatter.
func DefaultFormatter() Formatter {
	return Formatter{Precision: defaultPrecision, Scientific: true}
}

// WriteReport writes the per-component norm vectors of r in the fixed
// eight-line layout: abs l1, l2 squared, l2 and maximum norm, then the
// relative counterparts.
func (f Formatter) WriteReport(w io.Writer, r *Report) error {
	lines := []struct {
		label  string
		values []float64
	}{
		{"abs l1 norm      = ", collect(r, func(s ComponentStats) float64 { return s.AbsL1 })},
		{"abs l2-norm^2    = ", collect(r, func(s ComponentStats) float64 { return s.AbsL2Sq })},
		{"abs l2-norm      = ", collect(r, ComponentStats.AbsL2)},
		{"abs maximum norm = ", collect(r, func(s ComponentStats) float64 { return s.AbsMax })},
		{"", nil},
		{"rel l1 norm      = ", collect(r, func(s ComponentStats) float64 { return s.RelL1 })},
		{"rel l2-norm^2    = ", collect(r, func(s ComponentStats) float64 { return s.RelL2Sq })},
		{"rel l2-norm      = ", collect(r, ComponentStats.RelL2)},
		{"rel maximum norm = ", collect(r, func(s ComponentStats) float64 { return s.RelMax })},
	}

	for _, line := range lines {
		if line.label == "" {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}

			continue
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", line.label, f.Vector(line.values)); err != nil {
			return err
		}
	}

	return nil
}

// WriteEntries writes one line per differing entry.
func (f Formatter) WriteEntries(w io.Writer, entries []DifferingEntry) error {
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "tuple: %4d component: %2d: abs err = %s, rel err = %s\n",
			e.Tuple, e.Component, f.Float(e.AbsErr), f.Float(e.RelErr))
		if err != nil {
			return err
		}
	}

	return nil
}

// Float formats a single value according to the configuration.
func (f Formatter) Float(v float64) string {
	prec := f.Precision
	if prec <= 0 {
		prec = defaultPrecision
	}

	if f.Scientific {
		return strconv.FormatFloat(v, 'e', prec, 64)
	}

	return strconv.FormatFloat(v, 'g', prec, 64)
}

// Vector formats values as a bracketed, comma-separated list.
func (f Formatter) Vector(values []float64) string {
	if len(values) == 0 {
		return "[]"
	}

	var b strings.Builder

	b.WriteByte('[')

	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(f.Float(v))
	}

	b.WriteByte(']')

	return b.String()
}

func collect(r *Report, field func(ComponentStats) float64) []float64 {
	out := make([]float64, len(r.Components))
	for i, s := range r.Components {
		out[i] = field(s)
	}

	return out
}
