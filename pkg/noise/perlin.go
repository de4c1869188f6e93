package noise

import "github.com/OCharnyshevich/terragen/pkg/rng"

// Improved Perlin gradient noise on the integer lattice. Output is roughly in
// [-1, 1] and is not normalized; fBm normalizes the composite.

// permTable is a seeded shuffle of 0..255, doubled so corner lookups never
// need to wrap.
type permTable [512]int

func newPermTable(seed int64) *permTable {
	p := rng.New(seed).Perm(256)

	var perm permTable
	for i := 0; i < 512; i++ {
		perm[i] = p[i&255]
	}
	return &perm
}

// Perlin1D is 1D gradient noise.
type Perlin1D struct {
	perm *permTable
}

// NewPerlin1D creates a Perlin1D with a seeded permutation table.
func NewPerlin1D(seed int64) *Perlin1D {
	return &Perlin1D{perm: newPermTable(seed)}
}

func (*Perlin1D) Name() string { return "perlin1d" }

// Noise1D returns the noise value at x.
func (n *Perlin1D) Noise1D(x float64) float64 {
	fx := fastFloor(x)
	xi := fx & 255
	xf := x - float64(fx)
	u := fade(xf)

	a := n.perm[xi]
	b := n.perm[(xi+1)&255]
	return lerp(grad1(a, xf), grad1(b, xf-1), u)
}

func (n *Perlin1D) Sample1D(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = n.Noise1D(x)
	}
	return out
}

// Perlin2D is 2D gradient noise.
type Perlin2D struct {
	perm *permTable
}

// NewPerlin2D creates a Perlin2D with a seeded permutation table.
func NewPerlin2D(seed int64) *Perlin2D {
	return &Perlin2D{perm: newPermTable(seed)}
}

func (*Perlin2D) Name() string { return "perlin2d" }

// Noise2D returns the noise value at (x, y).
func (n *Perlin2D) Noise2D(x, y float64) float64 {
	fx, fy := fastFloor(x), fastFloor(y)
	xi, yi := fx&255, fy&255
	xf, yf := x-float64(fx), y-float64(fy)
	u, v := fade(xf), fade(yf)

	p := n.perm
	a := p[xi] + yi
	b := p[(xi+1)&255] + yi

	n00 := grad(p[a], xf, yf, 0)
	n01 := grad(p[a+1], xf, yf-1, 0)
	n10 := grad(p[b], xf-1, yf, 0)
	n11 := grad(p[b+1], xf-1, yf-1, 0)

	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

func (n *Perlin2D) Sample2D(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = n.Noise2D(xs[i], ys[i])
	}
	return out
}

// Perlin3D is 3D gradient noise.
type Perlin3D struct {
	perm *permTable
}

// NewPerlin3D creates a Perlin3D with a seeded permutation table.
func NewPerlin3D(seed int64) *Perlin3D {
	return &Perlin3D{perm: newPermTable(seed)}
}

func (*Perlin3D) Name() string { return "perlin3d" }

// Noise3D returns the noise value at (x, y, z).
func (n *Perlin3D) Noise3D(x, y, z float64) float64 {
	fx, fy, fz := fastFloor(x), fastFloor(y), fastFloor(z)
	xi, yi, zi := fx&255, fy&255, fz&255
	xf, yf, zf := x-float64(fx), y-float64(fy), z-float64(fz)
	u, v, w := fade(xf), fade(yf), fade(zf)

	p := n.perm
	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[(xi+1)&255] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	x00 := lerp(grad(p[aa], xf, yf, zf), grad(p[ba], xf-1, yf, zf), u)
	x01 := lerp(grad(p[aa+1], xf, yf, zf-1), grad(p[ba+1], xf-1, yf, zf-1), u)
	x10 := lerp(grad(p[ab], xf, yf-1, zf), grad(p[bb], xf-1, yf-1, zf), u)
	x11 := lerp(grad(p[ab+1], xf, yf-1, zf-1), grad(p[bb+1], xf-1, yf-1, zf-1), u)

	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}

func (n *Perlin3D) Sample3D(xs, ys, zs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = n.Noise3D(xs[i], ys[i], zs[i])
	}
	return out
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad1 picks +x or -x from the hash parity.
func grad1(h int, x float64) float64 {
	if h&1 == 0 {
		return x
	}
	return -x
}

// grad dots the offset (x, y, z) with one of the 16 canonical gradient
// directions selected by the low 4 bits of h. Indices 12 and 14 reuse x.
func grad(h int, x, y, z float64) float64 {
	h &= 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
