package noise

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/rng"
)

// Metric selects the distance function Worley noise measures with.
type Metric int

const (
	// Euclid is squared Euclidean distance.
	Euclid Metric = iota
	Manhattan
	Chebyshev
)

var metricNames = map[string]Metric{
	"euclid":    Euclid,
	"manhattan": Manhattan,
	"chebyshev": Chebyshev,
}

// ParseMetric maps a metric name to a Metric.
func ParseMetric(name string) (Metric, error) {
	m, ok := metricNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want euclid, manhattan or chebyshev)", ErrInvalidMetric, name)
	}
	return m, nil
}

func (m Metric) String() string {
	switch m {
	case Euclid:
		return "euclid"
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

func (m Metric) distance(dx, dy float64) float64 {
	switch m {
	case Manhattan:
		return math.Abs(dx) + math.Abs(dy)
	case Chebyshev:
		return math.Max(math.Abs(dx), math.Abs(dy))
	default:
		return dx*dx + dy*dy
	}
}

// Worley2D is cell noise over the unit square. The square is split into
// cells×cells cells; each cell holds one feature point at a seeded offset.
//
// Lookups scan the 3×3 cell neighbourhood on a torus, which is only exact
// while no feature point further than one cell away can be nearer.
type Worley2D struct {
	cells  int
	metric Metric
	fx, fy []float64 // feature offsets, index = cy*cells + cx
}

// NewWorley2D places the feature points for seed.
func NewWorley2D(seed int64, cells int, metric string) (*Worley2D, error) {
	if cells < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCells, cells)
	}
	m, err := ParseMetric(metric)
	if err != nil {
		return nil, err
	}

	src := rng.New(seed)
	n := cells * cells
	w := &Worley2D{
		cells:  cells,
		metric: m,
		fx:     make([]float64, n),
		fy:     make([]float64, n),
	}
	for i := range w.fx {
		w.fx[i] = src.Float64()
	}
	for i := range w.fy {
		w.fy[i] = src.Float64()
	}
	return w, nil
}

func (*Worley2D) Name() string { return "worley2d" }

// Domain reports that Worley2D samples the unit square directly.
func (*Worley2D) Domain() Domain { return DomainUnit }

// Metric returns the distance metric in use.
func (w *Worley2D) Metric() Metric { return w.metric }

// Distance returns the raw distance from (x, y) in the unit square to the
// nearest feature point, in cell units under the configured metric.
func (w *Worley2D) Distance(x, y float64) float64 {
	px := x * float64(w.cells)
	py := y * float64(w.cells)
	cx := fastFloor(px)
	cy := fastFloor(py)

	best := math.Inf(1)
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			// Feature data comes from the wrapped cell, position from the
			// unwrapped one, so the layout tiles seamlessly.
			i := wrap(cy+oy, w.cells)*w.cells + wrap(cx+ox, w.cells)
			fx := float64(cx+ox) + w.fx[i]
			fy := float64(cy+oy) + w.fy[i]
			d := w.metric.distance(px-fx, py-fy)
			if d < best {
				best = d
			}
		}
	}
	return best
}

// Sample2D returns 1 - normalized nearest distance for each coordinate pair.
// Normalization is min-max over the batch, so the result depends on the
// whole batch and is in [0, 1].
func (w *Worley2D) Sample2D(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = w.Distance(xs[i], ys[i])
	}
	heightfield.Normalize(out)
	for i, v := range out {
		out[i] = 1 - v
	}
	return out
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
