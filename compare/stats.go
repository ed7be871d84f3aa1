package compare

import "math"

// ComponentStats holds the running error norms for one component index.
// The L2 accumulators store the sum of squares; AbsL2 and RelL2 derive
// the square-rooted norm on demand.
type ComponentStats struct {
	AbsL1   float64
	AbsL2Sq float64
	AbsMax  float64
	RelL1   float64
	RelL2Sq float64
	RelMax  float64
}

// AbsL2 returns the absolute-error L2 norm.
func (s ComponentStats) AbsL2() float64 { return math.Sqrt(s.AbsL2Sq) }

// RelL2 returns the relative-error L2 norm.
func (s ComponentStats) RelL2() float64 { return math.Sqrt(s.RelL2Sq) }

// DifferingEntry is one value pair whose absolute error exceeds the
// absolute threshold and whose relative error exceeds the relative
// threshold. Entries are collected only in verbose mode and are purely
// diagnostic; they do not affect the verdict.
type DifferingEntry struct {
	Tuple     int
	Component int
	AbsErr    float64
	RelErr    float64
}

// Report is the immutable outcome of one comparison run.
type Report struct {
	// Components holds one entry per component index.
	Components []ComponentStats

	// AbsThreshold and RelThreshold are the thresholds the verdict was
	// decided against.
	AbsThreshold float64
	RelThreshold float64

	// Entries lists the differing value pairs in tuple order. Nil unless
	// the comparison ran in verbose mode.
	Entries []DifferingEntry
}

// MaxAbs returns the largest absolute-error maximum norm over all components.
func (r *Report) MaxAbs() float64 {
	var m float64
	for _, s := range r.Components {
		if s.AbsMax > m {
			m = s.AbsMax
		}
	}

	return m
}

// MaxRel returns the largest relative-error maximum norm over all components.
func (r *Report) MaxRel() float64 {
	var m float64
	for _, s := range r.Components {
		if s.RelMax > m {
			m = s.RelMax
		}
	}

	return m
}

// Pass reports the verdict. The comparison fails only if both the
// absolute and the relative maximum norm exceed their thresholds; if
// either dimension is within tolerance everywhere, the arrays pass.
// This AND-based leniency is deliberate: enormous relative errors on
// near-zero values do not fail a pair whose absolute errors are bounded,
// and vice versa.
func (r *Report) Pass() bool {
	return !(r.MaxAbs() > r.AbsThreshold && r.MaxRel() > r.RelThreshold)
}
