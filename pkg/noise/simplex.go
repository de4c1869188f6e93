package noise

import "github.com/ojrac/opensimplex-go"

// OpenSimplex2D wraps OpenSimplex noise for the fBm pipeline. Values are in
// roughly [-1, 1], like Perlin2D.
type OpenSimplex2D struct {
	os opensimplex.Noise
}

// NewOpenSimplex2D creates an OpenSimplex2D from seed.
func NewOpenSimplex2D(seed int64) *OpenSimplex2D {
	return &OpenSimplex2D{os: opensimplex.New(seed)}
}

func (*OpenSimplex2D) Name() string { return "opensimplex2d" }

func (n *OpenSimplex2D) Sample2D(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = n.os.Eval2(xs[i], ys[i])
	}
	return out
}

// OpenSimplex3D is the volumetric variant. The 2D pipeline samples it on a
// constant-z slice.
type OpenSimplex3D struct {
	os opensimplex.Noise
}

// NewOpenSimplex3D creates an OpenSimplex3D from seed.
func NewOpenSimplex3D(seed int64) *OpenSimplex3D {
	return &OpenSimplex3D{os: opensimplex.New(seed)}
}

func (*OpenSimplex3D) Name() string { return "opensimplex3d" }

func (n *OpenSimplex3D) Sample3D(xs, ys, zs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = n.os.Eval3(xs[i], ys[i], zs[i])
	}
	return out
}
