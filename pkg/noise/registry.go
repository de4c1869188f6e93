package noise

import (
	"fmt"
	"sort"
	"strings"
)

// Factory constructs a backend from a seed and backend-specific options.
type Factory func(seed int64, opts Options) (Backend, error)

// Registry maps lower-case backend names to factories. It is filled during
// initialization and only read afterwards; it does no locking.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a factory under name. Registering a name twice is an error.
func (r *Registry) Register(name string, f Factory) error {
	key := strings.ToLower(name)
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBackend, name)
	}
	r.factories[key] = f
	return nil
}

// MustRegister is Register for package initialization: a duplicate panics.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// New constructs the backend registered under name.
func (r *Registry) New(name string, seed int64, opts Options) (Backend, error) {
	f, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownBackend, name, strings.Join(r.Names(), ", "))
	}
	return f(seed, opts.withDefaults())
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default holds the built-in backends.
var Default = NewRegistry()

func init() {
	Default.MustRegister("perlin1d", func(seed int64, _ Options) (Backend, error) {
		return NewPerlin1D(seed), nil
	})
	Default.MustRegister("perlin2d", func(seed int64, _ Options) (Backend, error) {
		return NewPerlin2D(seed), nil
	})
	Default.MustRegister("perlin3d", func(seed int64, _ Options) (Backend, error) {
		return NewPerlin3D(seed), nil
	})
	Default.MustRegister("worley2d", func(seed int64, opts Options) (Backend, error) {
		w, err := NewWorley2D(seed, opts.Cells, opts.Metric)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
	Default.MustRegister("diamond_square2d", func(seed int64, opts Options) (Backend, error) {
		ds, err := NewDiamondSquare2D(seed, opts.Size, *opts.Roughness)
		if err != nil {
			return nil, err
		}
		return ds, nil
	})
	Default.MustRegister("opensimplex2d", func(seed int64, _ Options) (Backend, error) {
		return NewOpenSimplex2D(seed), nil
	})
	Default.MustRegister("opensimplex3d", func(seed int64, _ Options) (Backend, error) {
		return NewOpenSimplex3D(seed), nil
	})
	Default.MustRegister("classic1d", func(seed int64, _ Options) (Backend, error) {
		return NewClassic1D(seed), nil
	})
	Default.MustRegister("classic2d", func(seed int64, _ Options) (Backend, error) {
		return NewClassic2D(seed), nil
	})
}
