// Package noise implements the seeded noise backends terragen builds height
// fields from, and the name-keyed registry used to select them.
//
// Backends are constructed from a seed and never mutate their state while
// sampling, so one instance can serve any number of coordinate batches.
package noise

import (
	"errors"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
)

// Configuration errors. They are returned wrapped; test with errors.Is.
var (
	ErrUnknownBackend       = errors.New("unknown noise backend")
	ErrDuplicateBackend     = errors.New("noise backend already registered")
	ErrInvalidSize          = errors.New("invalid diamond-square size")
	ErrInvalidMetric        = errors.New("invalid worley metric")
	ErrInvalidCells         = errors.New("invalid worley cell count")
	ErrUnsupportedDimension = errors.New("backend does not support dimension")
)

// Backend is implemented by every noise backend.
type Backend interface {
	Name() string
}

// Sampler1D samples noise at each x coordinate.
type Sampler1D interface {
	Backend
	Sample1D(xs []float64) []float64
}

// Sampler2D samples noise at each (xs[i], ys[i]) pair. xs and ys must have the
// same length.
type Sampler2D interface {
	Backend
	Sample2D(xs, ys []float64) []float64
}

// Sampler3D samples noise at each (xs[i], ys[i], zs[i]) triple.
type Sampler3D interface {
	Backend
	Sample3D(xs, ys, zs []float64) []float64
}

// Synthesizer produces a complete field without coordinates.
type Synthesizer interface {
	Backend
	Synthesize() (*heightfield.Grid, error)
}

// Domain describes the coordinate space a 2D sampler expects.
type Domain int

const (
	// DomainLattice samplers take scaled lattice coordinates and are meant to
	// be layered through fBm.
	DomainLattice Domain = iota
	// DomainUnit samplers take coordinates in the unit square and already
	// produce a finished field.
	DomainUnit
)

// DomainReporter is implemented by samplers that do not use DomainLattice.
type DomainReporter interface {
	Domain() Domain
}

// DomainOf returns the coordinate domain of b.
func DomainOf(b Backend) Domain {
	if d, ok := b.(DomainReporter); ok {
		return d.Domain()
	}
	return DomainLattice
}

// Options carries backend-specific construction parameters. Zero fields fall
// back to the defaults below; a nil Roughness means DefaultRoughness, so an
// explicit 0 disables diamond-square displacement.
type Options struct {
	Cells     int     // worley: cells per side
	Metric    string  // worley: euclid, manhattan, chebyshev
	Size      int     // diamond-square: side length, 2^k+1
	Roughness *float64 // diamond-square: per-level displacement decay
}

// Backend defaults.
const (
	DefaultCells     = 32
	DefaultMetric    = "euclid"
	DefaultSize      = 257
	DefaultRoughness = 0.5
)

func (o Options) withDefaults() Options {
	if o.Cells == 0 {
		o.Cells = DefaultCells
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Roughness == nil {
		r := DefaultRoughness
		o.Roughness = &r
	}
	return o
}
