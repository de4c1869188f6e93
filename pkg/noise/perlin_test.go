package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerlin2DDeterministic(t *testing.T) {
	n1 := NewPerlin2D(12345)
	n2 := NewPerlin2D(12345)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if n1.Noise2D(x, y) != n2.Noise2D(x, y) {
			t.Fatalf("Noise2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestPerlin3DDeterministic(t *testing.T) {
	n1 := NewPerlin3D(99)
	n2 := NewPerlin3D(99)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.15
		y := float64(i) * 0.25
		z := float64(i) * 0.35
		if n1.Noise3D(x, y, z) != n2.Noise3D(x, y, z) {
			t.Fatalf("Noise3D not deterministic at (%f, %f, %f)", x, y, z)
		}
	}
}

func TestPerlinRange(t *testing.T) {
	p1 := NewPerlin1D(42)
	p2 := NewPerlin2D(42)
	p3 := NewPerlin3D(42)

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		z := float64(i)*0.71 - 500

		if v := p1.Noise1D(x); v < -1 || v > 1 {
			t.Fatalf("Noise1D(%f) = %f, out of [-1,1]", x, v)
		}
		if v := p2.Noise2D(x, y); v < -1.5 || v > 1.5 {
			t.Fatalf("Noise2D(%f, %f) = %f, out of range", x, y, v)
		}
		if v := p3.Noise3D(x, y, z); v < -1.5 || v > 1.5 {
			t.Fatalf("Noise3D(%f, %f, %f) = %f, out of range", x, y, z, v)
		}
	}
}

func TestPerlinZeroOnLattice(t *testing.T) {
	p1 := NewPerlin1D(7)
	p2 := NewPerlin2D(7)
	p3 := NewPerlin3D(7)

	for i := -5; i <= 5; i++ {
		f := float64(i)
		assert.Equal(t, 0.0, math.Abs(p1.Noise1D(f)))
		assert.Equal(t, 0.0, math.Abs(p2.Noise2D(f, f+3)))
		assert.Equal(t, 0.0, math.Abs(p3.Noise3D(f, f-2, f+1)))
	}
}

func TestPerlinDifferentSeeds(t *testing.T) {
	n1 := NewPerlin2D(1)
	n2 := NewPerlin2D(2)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i)*0.1 + 0.05
		y := float64(i)*0.2 + 0.05
		if n1.Noise2D(x, y) != n2.Noise2D(x, y) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different noise")
	}
}

func TestPerlin1DSmoothness(t *testing.T) {
	n := NewPerlin1D(456)

	prev := n.Noise1D(0)
	step := 0.01
	for i := 1; i < 1000; i++ {
		x := float64(i) * step
		curr := n.Noise1D(x)
		if diff := math.Abs(curr - prev); diff > 0.1 {
			t.Fatalf("noise changed too rapidly at x=%f: diff=%f", x, diff)
		}
		prev = curr
	}
}

func TestSampleMatchesPointNoise(t *testing.T) {
	p1 := NewPerlin1D(5)
	p2 := NewPerlin2D(5)
	p3 := NewPerlin3D(5)

	xs := []float64{0.3, 1.7, -2.2, 40.9}
	ys := []float64{0.1, -0.6, 3.3, 8.8}
	zs := []float64{2.5, 0.5, -1.5, 0.75}

	s1 := p1.Sample1D(xs)
	s2 := p2.Sample2D(xs, ys)
	s3 := p3.Sample3D(xs, ys, zs)
	for i := range xs {
		assert.Equal(t, p1.Noise1D(xs[i]), s1[i])
		assert.Equal(t, p2.Noise2D(xs[i], ys[i]), s2[i])
		assert.Equal(t, p3.Noise3D(xs[i], ys[i], zs[i]), s3[i])
	}

	// sampling must not change backend state
	again := p2.Sample2D(xs, ys)
	assert.Equal(t, s2, again)
}

func TestFade(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, fade(tt.in), 1e-12, "fade(%f)", tt.in)
	}
}

func TestGradSelection(t *testing.T) {
	tests := []struct {
		h    int
		want float64
	}{
		{0, 1 + 2},   // x + y
		{1, -1 + 2},  // -x + y
		{2, 1 - 2},   // x - y
		{4, 1 + 3},   // x + z
		{8, 2 + 3},   // y + z
		{12, 2 + 1},  // y + x
		{13, -2 + 3}, // -y + z
		{14, -1 + 2}, // -x + y
		{15, -2 - 3}, // -y - z
		{16, 1 + 2},  // only the low 4 bits count
	}
	for _, tt := range tests {
		if got := grad(tt.h, 1, 2, 3); got != tt.want {
			t.Errorf("grad(%d, 1, 2, 3) = %f, want %f", tt.h, got, tt.want)
		}
	}
}

func TestFastFloor(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1.5, 1},
		{-0.5, -1},
		{-1, -1},
		{-1.0001, -2},
	}
	for _, tt := range tests {
		if got := fastFloor(tt.in); got != tt.want {
			t.Errorf("fastFloor(%f) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPermTableDoubled(t *testing.T) {
	p := newPermTable(3)
	seen := make([]bool, 256)
	for i := 0; i < 256; i++ {
		assert.Equal(t, p[i], p[i+256])
		seen[p[i]] = true
	}
	for v, ok := range seen {
		assert.True(t, ok, "value %d missing from permutation", v)
	}
}
