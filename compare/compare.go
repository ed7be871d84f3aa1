package compare

import "math"

// Compare accumulates per-component error statistics for a against b in a
// single pass and returns the resulting report. The thresholds are stored
// in the report and drive both the verbose per-entry filter and the final
// verdict (Report.Pass). Shape disagreement is a terminal input error; no
// partial report is produced.
func Compare(a, b TupleArray, absThreshold, relThreshold float64, opts ...Option) (*Report, error) {
	if err := checkShape(a, b); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts...)
	tuples := a.TupleCount()
	components := a.ComponentCount()

	var (
		stats   []ComponentStats
		entries []DifferingEntry
	)

	if cfg.Workers > 1 && tuples > 1 {
		stats, entries = accumulateParallel(a, b, tuples, components,
			cfg.Workers, absThreshold, relThreshold, cfg.Verbose)
	} else {
		stats, entries = accumulate(a, b, 0, tuples, components,
			absThreshold, relThreshold, cfg.Verbose)
	}

	return &Report{
		Components:   stats,
		AbsThreshold: absThreshold,
		RelThreshold: relThreshold,
		Entries:      entries,
	}, nil
}

// accumulate runs the accumulation pass over the tuple range [lo, hi).
func accumulate(a, b TupleArray, lo, hi, components int,
	absThreshold, relThreshold float64, verbose bool,
) ([]ComponentStats, []DifferingEntry) {
	stats := make([]ComponentStats, components)

	var entries []DifferingEntry

	for t := lo; t < hi; t++ {
		for c := 0; c < components; c++ {
			va := a.Component(t, c)
			vb := b.Component(t, c)
			absErr := math.Abs(va - vb)
			relErr := relativeError(absErr, va, vb)

			s := &stats[c]
			s.AbsL1 += absErr
			s.AbsL2Sq += absErr * absErr

			if absErr > s.AbsMax {
				s.AbsMax = absErr
			}

			s.RelL1 += relErr
			s.RelL2Sq += relErr * relErr

			if relErr > s.RelMax {
				s.RelMax = relErr
			}

			if verbose && absErr > absThreshold && relErr > relThreshold {
				entries = append(entries, DifferingEntry{
					Tuple:     t,
					Component: c,
					AbsErr:    absErr,
					RelErr:    relErr,
				})
			}
		}
	}

	return stats, entries
}

// relativeError scales absErr by the smaller operand magnitude, the more
// conservative of the common definitions. An exact match is 0 even for
// two zeros; a nonzero difference against an exact zero is unbounded.
func relativeError(absErr, va, vb float64) float64 {
	switch {
	case absErr == 0:
		return 0
	case va == 0 || vb == 0:
		return math.Inf(1)
	default:
		return absErr / math.Min(math.Abs(va), math.Abs(vb))
	}
}

func checkShape(a, b TupleArray) error {
	if a == nil || b == nil {
		return ErrNilArray
	}

	if a.TupleCount() != b.TupleCount() || a.ComponentCount() != b.ComponentCount() {
		return &ShapeError{
			TuplesA:     a.TupleCount(),
			TuplesB:     b.TupleCount(),
			ComponentsA: a.ComponentCount(),
			ComponentsB: b.ComponentCount(),
		}
	}

	return nil
}
