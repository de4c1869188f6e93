package noise

import (
	"fmt"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/rng"
)

// DiamondSquare2D synthesizes a size×size field by midpoint displacement.
// Size must be 2^k+1.
type DiamondSquare2D struct {
	seed      int64
	size      int
	roughness float64
}

// NewDiamondSquare2D validates size and returns the synthesizer.
func NewDiamondSquare2D(seed int64, size int, roughness float64) (*DiamondSquare2D, error) {
	if !ValidDiamondSquareSize(size) {
		return nil, fmt.Errorf("%w: %d is not 2^k+1", ErrInvalidSize, size)
	}
	return &DiamondSquare2D{seed: seed, size: size, roughness: roughness}, nil
}

// ValidDiamondSquareSize reports whether n is 2^k+1 for some k >= 0.
func ValidDiamondSquareSize(n int) bool {
	m := n - 1
	return m >= 1 && m&(m-1) == 0
}

func (*DiamondSquare2D) Name() string { return "diamond_square2d" }

// Size returns the side length of the synthesized field.
func (d *DiamondSquare2D) Size() int { return d.size }

// Synthesize builds the field. The random stream is re-derived from the seed
// on each call, so repeated calls return identical fields.
func (d *DiamondSquare2D) Synthesize() (*heightfield.Grid, error) {
	n := d.size
	src := rng.New(d.seed)
	g := heightfield.NewGrid(n, n)

	g.Set(0, 0, src.Float64())
	g.Set(n-1, 0, src.Float64())
	g.Set(0, n-1, src.Float64())
	g.Set(n-1, n-1, src.Float64())

	offset := func(scale float64) float64 {
		return (src.Float64()*2 - 1) * scale
	}

	scale := d.roughness
	for step := n - 1; step > 1; step /= 2 {
		half := step / 2

		// diamond: centres of each step×step square
		for y := half; y < n-1; y += step {
			for x := half; x < n-1; x += step {
				avg := (g.At(x-half, y-half) + g.At(x+half, y-half) +
					g.At(x-half, y+half) + g.At(x+half, y+half)) * 0.25
				g.Set(x, y, clamp01(avg+offset(scale)))
			}
		}

		// square: edge midpoints, averaging whichever neighbours exist
		for y := 0; y < n; y += half {
			for x := (y + half) % step; x < n; x += step {
				var sum float64
				var cnt int
				if y-half >= 0 {
					sum += g.At(x, y-half)
					cnt++
				}
				if y+half < n {
					sum += g.At(x, y+half)
					cnt++
				}
				if x-half >= 0 {
					sum += g.At(x-half, y)
					cnt++
				}
				if x+half < n {
					sum += g.At(x+half, y)
					cnt++
				}
				g.Set(x, y, clamp01(sum/float64(cnt)+offset(scale)))
			}
		}

		scale *= d.roughness
	}

	return g.Normalize(), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
