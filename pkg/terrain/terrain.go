// Package terrain turns a backend name and a handful of parameters into a
// finished height field, and optionally weathers it.
package terrain

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OCharnyshevich/terragen/pkg/erosion"
	"github.com/OCharnyshevich/terragen/pkg/fbm"
	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/noise"
)

// ErrInvalidParams is returned for parameters no backend can satisfy.
var ErrInvalidParams = errors.New("invalid terrain parameters")

// Params1D describes a 1D profile.
type Params1D struct {
	Length  int        `json:"length"`
	Scale   float64    `json:"scale"` // samples per lattice unit
	Seed    int64      `json:"seed"`
	Backend string     `json:"backend"`
	FBM     fbm.Params `json:"fbm"`
}

// DefaultParams1D returns a 512-sample perlin1d profile at scale 80.
func DefaultParams1D() Params1D {
	return Params1D{
		Length:  512,
		Scale:   80,
		Seed:    1337,
		Backend: "perlin1d",
		FBM:     fbm.DefaultParams(),
	}
}

// WorleyParams configures worley2d.
type WorleyParams struct {
	Cells  int    `json:"cells"`
	Metric string `json:"metric"`
}

// DiamondSquareParams configures diamond_square2d.
type DiamondSquareParams struct {
	Size      int     `json:"size"`
	Roughness float64 `json:"roughness"`
}

// Params2D describes a 2D height map.
type Params2D struct {
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	Scale         float64             `json:"scale"`
	Seed          int64               `json:"seed"`
	Backend       string              `json:"backend"`
	FBM           fbm.Params          `json:"fbm"`
	Worley        WorleyParams        `json:"worley"`
	DiamondSquare DiamondSquareParams `json:"diamond_square"`
	Slice         float64             `json:"slice"` // z coordinate for 3D backends
}

// DefaultParams2D returns a 256x256 perlin2d map at scale 128.
func DefaultParams2D() Params2D {
	return Params2D{
		Width:         256,
		Height:        256,
		Scale:         128,
		Seed:          1337,
		Backend:       "perlin2d",
		FBM:           fbm.DefaultParams(),
		Worley:        WorleyParams{Cells: noise.DefaultCells, Metric: noise.DefaultMetric},
		DiamondSquare: DiamondSquareParams{Size: noise.DefaultSize, Roughness: noise.DefaultRoughness},
	}
}

func (p Params2D) options() noise.Options {
	roughness := p.DiamondSquare.Roughness
	return noise.Options{
		Cells:     p.Worley.Cells,
		Metric:    p.Worley.Metric,
		Size:      p.DiamondSquare.Size,
		Roughness: &roughness,
	}
}

// Generator resolves backends from a registry and logs what it builds.
type Generator struct {
	reg *noise.Registry
	log *slog.Logger
}

// New returns a Generator over reg. A nil logger discards output.
func New(reg *noise.Registry, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{reg: reg, log: log}
}

var std = New(noise.Default, nil)

// Generate1D builds a profile with the built-in backends.
func Generate1D(p Params1D) (heightfield.Line, error) { return std.Generate1D(p) }

// Generate2D builds a height map with the built-in backends.
func Generate2D(p Params2D) (*heightfield.Grid, error) { return std.Generate2D(p) }

// ListBackends returns the built-in backend names, sorted.
func ListBackends() []string { return std.Backends() }

// Backends returns the names known to the generator's registry, sorted.
func (g *Generator) Backends() []string { return g.reg.Names() }

// Generate1D samples the backend at i/Scale for every i and layers it with
// fBm. The result is in [0, 1].
func (g *Generator) Generate1D(p Params1D) (heightfield.Line, error) {
	if p.Length <= 0 || p.Scale <= 0 {
		return nil, fmt.Errorf("%w: length %d, scale %g", ErrInvalidParams, p.Length, p.Scale)
	}
	b, err := g.reg.New(p.Backend, p.Seed, noise.Options{})
	if err != nil {
		return nil, fmt.Errorf("resolving backend: %w", err)
	}
	s, ok := b.(noise.Sampler1D)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no 1D sampler", noise.ErrUnsupportedDimension, b.Name())
	}

	start := time.Now()
	xs := make([]float64, p.Length)
	for i := range xs {
		xs[i] = float64(i) / p.Scale
	}
	line := fbm.Compose1D(s, xs, p.FBM)

	g.log.Debug("generated profile",
		"backend", b.Name(),
		"length", p.Length,
		"octaves", p.FBM.Octaves,
		"took", time.Since(start),
	)
	return line, nil
}

// sized is implemented by synthesizers with a fixed output side.
type sized interface {
	Size() int
}

// Generate2D builds a Height x Width map. Lattice samplers are layered with
// fBm at (x/Scale, y/Scale); unit-domain samplers such as worley2d are
// sampled once over the unit square; 3D samplers are cut at z = Slice.
// Synthesizers must produce exactly Width x Height.
func (g *Generator) Generate2D(p Params2D) (*heightfield.Grid, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	b, err := g.reg.New(p.Backend, p.Seed, p.options())
	if err != nil {
		return nil, fmt.Errorf("resolving backend: %w", err)
	}

	start := time.Now()
	var out *heightfield.Grid

	switch s := b.(type) {
	case noise.Synthesizer:
		if z, ok := s.(sized); ok && (z.Size() != p.Width || z.Size() != p.Height) {
			return nil, fmt.Errorf("%w: %s produces %dx%d, requested %dx%d",
				ErrInvalidParams, s.Name(), z.Size(), z.Size(), p.Width, p.Height)
		}
		out, err = s.Synthesize()
		if err != nil {
			return nil, fmt.Errorf("synthesizing %s: %w", s.Name(), err)
		}
		if out.Width != p.Width || out.Height != p.Height {
			return nil, fmt.Errorf("%w: %s produced %dx%d, requested %dx%d",
				ErrInvalidParams, s.Name(), out.Width, out.Height, p.Width, p.Height)
		}

	case noise.Sampler2D:
		if noise.DomainOf(s) == noise.DomainUnit {
			xs, ys := lattice(p.Width, p.Height, float64(p.Width), float64(p.Height))
			out = &heightfield.Grid{Width: p.Width, Height: p.Height, Cells: s.Sample2D(xs, ys)}
			break
		}
		if p.Scale <= 0 {
			return nil, fmt.Errorf("%w: scale %g", ErrInvalidParams, p.Scale)
		}
		xs, ys := lattice(p.Width, p.Height, p.Scale, p.Scale)
		out = &heightfield.Grid{Width: p.Width, Height: p.Height, Cells: fbm.Compose2D(s, xs, ys, p.FBM)}

	case noise.Sampler3D:
		if p.Scale <= 0 {
			return nil, fmt.Errorf("%w: scale %g", ErrInvalidParams, p.Scale)
		}
		xs, ys := lattice(p.Width, p.Height, p.Scale, p.Scale)
		zs := make([]float64, len(xs))
		for i := range zs {
			zs[i] = p.Slice
		}
		out = &heightfield.Grid{Width: p.Width, Height: p.Height, Cells: fbm.Compose3D(s, xs, ys, zs, p.FBM)}

	default:
		return nil, fmt.Errorf("%w: %s has no 2D sampler", noise.ErrUnsupportedDimension, b.Name())
	}

	g.log.Debug("generated height map",
		"backend", b.Name(),
		"width", p.Width,
		"height", p.Height,
		"took", time.Since(start),
	)
	return out, nil
}

// lattice returns row-major coordinates x/sx, y/sy for a w x h grid.
func lattice(w, h int, sx, sy float64) (xs, ys []float64) {
	xs = make([]float64, w*h)
	ys = make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			xs[i] = float64(x) / sx
			ys[i] = float64(y) / sy
		}
	}
	return xs, ys
}

// Mode selects an erosion pass.
type Mode string

// Erosion modes.
const (
	ErosionNone      Mode = "none"
	ErosionThermal   Mode = "thermal"
	ErosionHydraulic Mode = "hydraulic"
)

// ParseMode accepts "", none, thermal or hydraulic.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ErosionNone, nil
	case ErosionNone, ErosionThermal, ErosionHydraulic:
		return m, nil
	}
	return "", fmt.Errorf("%w: erosion mode %q", ErrInvalidParams, s)
}

// Erosion selects and configures one erosion pass.
type Erosion struct {
	Mode      Mode                    `json:"mode"`
	Thermal   erosion.ThermalParams   `json:"thermal"`
	Hydraulic erosion.HydraulicParams `json:"hydraulic"`
}

// Erode1D applies e to line in place and returns it. Stats are only filled
// for the hydraulic pass.
func (g *Generator) Erode1D(line heightfield.Line, e Erosion) (heightfield.Line, erosion.Stats, error) {
	var st erosion.Stats
	start := time.Now()
	switch e.Mode {
	case ErosionNone, "":
		return line, st, nil
	case ErosionThermal:
		line = erosion.Thermal1D(line, e.Thermal)
	case ErosionHydraulic:
		st = erosion.Droplets1D(line, e.Hydraulic)
		line = line.Normalize()
	default:
		return nil, st, fmt.Errorf("%w: erosion mode %q", ErrInvalidParams, e.Mode)
	}
	g.logErosion(e.Mode, st, start)
	return line, st, nil
}

// Erode2D applies e to grid in place and returns it.
func (g *Generator) Erode2D(grid *heightfield.Grid, e Erosion) (*heightfield.Grid, erosion.Stats, error) {
	var st erosion.Stats
	start := time.Now()
	switch e.Mode {
	case ErosionNone, "":
		return grid, st, nil
	case ErosionThermal:
		grid = erosion.Thermal2D(grid, e.Thermal)
	case ErosionHydraulic:
		st = erosion.Droplets2D(grid, e.Hydraulic)
		grid = grid.Normalize()
	default:
		return nil, st, fmt.Errorf("%w: erosion mode %q", ErrInvalidParams, e.Mode)
	}
	g.logErosion(e.Mode, st, start)
	return grid, st, nil
}

func (g *Generator) logErosion(m Mode, st erosion.Stats, start time.Time) {
	g.log.Debug("eroded",
		"mode", m,
		"droplets", st.Droplets,
		"steps", st.Steps,
		"eroded", st.Eroded,
		"deposited", st.Deposited,
		"took", time.Since(start),
	)
}
