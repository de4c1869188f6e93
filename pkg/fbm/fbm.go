// Package fbm layers octaves of a noise backend into fractal Brownian motion.
package fbm

import (
	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/noise"
)

// Params controls octave layering.
type Params struct {
	Octaves    int     `json:"octaves"`
	Lacunarity float64 `json:"lacunarity"` // frequency multiplier per octave
	Gain       float64 `json:"gain"`       // amplitude multiplier per octave
}

// DefaultParams returns 5 octaves, lacunarity 2 and gain 0.5.
func DefaultParams() Params {
	return Params{Octaves: 5, Lacunarity: 2.0, Gain: 0.5}
}

// Compose1D sums the octaves of s at xs and normalizes the result to [0, 1].
func Compose1D(s noise.Sampler1D, xs []float64, p Params) heightfield.Line {
	scaled := make([]float64, len(xs))
	return compose(len(xs), p, func(freq float64) []float64 {
		scale(scaled, xs, freq)
		return s.Sample1D(scaled)
	})
}

// Compose2D sums the octaves of s at (xs[i], ys[i]) and normalizes the result
// to [0, 1].
func Compose2D(s noise.Sampler2D, xs, ys []float64, p Params) []float64 {
	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	return compose(len(xs), p, func(freq float64) []float64 {
		scale(sx, xs, freq)
		scale(sy, ys, freq)
		return s.Sample2D(sx, sy)
	})
}

// Compose3D sums the octaves of s at (xs[i], ys[i], zs[i]) and normalizes the
// result to [0, 1].
func Compose3D(s noise.Sampler3D, xs, ys, zs []float64, p Params) []float64 {
	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	sz := make([]float64, len(zs))
	return compose(len(xs), p, func(freq float64) []float64 {
		scale(sx, xs, freq)
		scale(sy, ys, freq)
		scale(sz, zs, freq)
		return s.Sample3D(sx, sy, sz)
	})
}

// compose is the shared kernel: sum amp_i * octave(freq_i), divide by the
// total amplitude (floored at Epsilon), then min-max normalize. With no
// octaves the result is all zeros.
func compose(n int, p Params, octave func(freq float64) []float64) []float64 {
	out := make([]float64, n)
	amp, freq, total := 1.0, 1.0, 0.0

	for range p.Octaves {
		for i, v := range octave(freq) {
			out[i] += amp * v
		}
		total += amp
		amp *= p.Gain
		freq *= p.Lacunarity
	}

	total = max(total, heightfield.Epsilon)
	for i := range out {
		out[i] /= total
	}
	heightfield.Normalize(out)
	return out
}

func scale(dst, src []float64, f float64) {
	for i, v := range src {
		dst[i] = v * f
	}
}
