// Package tolerance defines comparison thresholds and named preset sets
// loaded from YAML. A preset file maps array names to their acceptable
// absolute and relative error bounds:
//
//	pressure:
//	  abs: 1e-9
//	  rel: 1e-6
//	velocity:
//	  abs: 1e-12
//	  rel: 1e-12
package tolerance

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultEpsilon is the machine epsilon of float64, the default for both
// thresholds.
const DefaultEpsilon = 0x1p-52

var (
	// ErrUnknownPreset indicates a preset name missing from the set.
	ErrUnknownPreset = errors.New("tolerance: unknown preset")

	// ErrInvalidThreshold indicates a negative or non-finite threshold.
	ErrInvalidThreshold = errors.New("tolerance: invalid threshold")
)

// Tolerance holds the two independent thresholds of a comparison.
type Tolerance struct {
	Abs float64 `yaml:"abs"`
	Rel float64 `yaml:"rel"`
}

// Default returns machine-epsilon thresholds in both dimensions.
func Default() Tolerance {
	return Tolerance{Abs: DefaultEpsilon, Rel: DefaultEpsilon}
}

// Set maps preset names to tolerances.
type Set map[string]Tolerance

// Load reads a preset set from YAML and validates every entry.
func Load(r io.Reader) (Set, error) {
	var set Set

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("tolerance: decoding presets: %w", err)
	}

	for name, tol := range set {
		if tol.Abs < 0 || tol.Rel < 0 {
			return nil, fmt.Errorf("%w: preset %q: abs=%g rel=%g",
				ErrInvalidThreshold, name, tol.Abs, tol.Rel)
		}
	}

	return set, nil
}

// LoadFile reads a preset set from the named YAML file.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tolerance: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Lookup returns the named preset.
func (s Set) Lookup(name string) (Tolerance, error) {
	tol, ok := s[name]
	if !ok {
		return Tolerance{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return tol, nil
}
