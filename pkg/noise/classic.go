package noise

import "github.com/aquilax/go-perlin"

// Parameters for Perlin's reference noise. A single octave is generated
// here; layering is left to fBm.
const (
	classicAlpha   = 2.0
	classicBeta    = 2.0
	classicOctaves = 1
)

// Classic1D is Ken Perlin's original reference gradient noise in 1D.
type Classic1D struct {
	p *perlin.Perlin
}

// NewClassic1D creates a Classic1D from seed.
func NewClassic1D(seed int64) *Classic1D {
	return &Classic1D{p: perlin.NewPerlin(classicAlpha, classicBeta, classicOctaves, seed)}
}

func (*Classic1D) Name() string { return "classic1d" }

func (n *Classic1D) Sample1D(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = n.p.Noise1D(x)
	}
	return out
}

// Classic2D is Ken Perlin's original reference gradient noise in 2D.
type Classic2D struct {
	p *perlin.Perlin
}

// NewClassic2D creates a Classic2D from seed.
func NewClassic2D(seed int64) *Classic2D {
	return &Classic2D{p: perlin.NewPerlin(classicAlpha, classicBeta, classicOctaves, seed)}
}

func (*Classic2D) Name() string { return "classic2d" }

func (n *Classic2D) Sample2D(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = n.p.Noise2D(xs[i], ys[i])
	}
	return out
}
