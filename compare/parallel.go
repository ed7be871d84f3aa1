package compare

import "golang.org/x/sync/errgroup"

// accumulateParallel splits the tuple range into contiguous chunks with
// worker-private accumulator sets and merges the partials afterwards.
// Sums merge by addition and max norms by pairwise max, both associative
// and commutative, so the merge order does not affect the result beyond
// floating-point rounding of the sums. Verbose entries stay in tuple
// order because chunks are merged in range order.
func accumulateParallel(a, b TupleArray, tuples, components, workers int,
	absThreshold, relThreshold float64, verbose bool,
) ([]ComponentStats, []DifferingEntry) {
	if workers > tuples {
		workers = tuples
	}

	type partial struct {
		stats   []ComponentStats
		entries []DifferingEntry
	}

	parts := make([]partial, workers)
	chunk := (tuples + workers - 1) / workers

	var g errgroup.Group

	for i := 0; i < workers; i++ {
		lo := i * chunk
		hi := lo + chunk

		if hi > tuples {
			hi = tuples
		}

		if lo >= hi {
			break
		}

		g.Go(func() error {
			stats, entries := accumulate(a, b, lo, hi, components,
				absThreshold, relThreshold, verbose)
			parts[i] = partial{stats: stats, entries: entries}

			return nil
		})
	}

	// Workers never fail; Wait only synchronizes.
	_ = g.Wait()

	merged := make([]ComponentStats, components)

	var entries []DifferingEntry

	for _, p := range parts {
		if p.stats == nil {
			continue
		}

		for c := range merged {
			m := &merged[c]
			s := p.stats[c]
			m.AbsL1 += s.AbsL1
			m.AbsL2Sq += s.AbsL2Sq
			m.RelL1 += s.RelL1
			m.RelL2Sq += s.RelL2Sq

			if s.AbsMax > m.AbsMax {
				m.AbsMax = s.AbsMax
			}

			if s.RelMax > m.RelMax {
				m.RelMax = s.RelMax
			}
		}

		entries = append(entries, p.entries...)
	}

	return merged, entries
}
