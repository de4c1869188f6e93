package erosion

import "github.com/OCharnyshevich/terragen/pkg/heightfield"

// Thermal1D runs p.Iterations thermal sweeps over line and normalizes it.
func Thermal1D(line heightfield.Line, p ThermalParams) heightfield.Line {
	for range p.Iterations {
		ThermalSweep1D(line, p.Talus, p.Factor)
	}
	return line.Normalize()
}

// Thermal2D runs p.Iterations thermal sweeps over g and normalizes it.
func Thermal2D(g *heightfield.Grid, p ThermalParams) *heightfield.Grid {
	for range p.Iterations {
		ThermalSweep2D(g, p.Talus, p.Factor)
	}
	return g.Normalize()
}

// ThermalSweep1D runs one left-to-right relaxation sweep without
// normalizing. A cell sheds factor*(d/total)*d to each lower neighbour whose
// difference d exceeds talus, where total sums the qualifying differences
// measured before any of the cell's transfers; they are not re-measured
// between transfers, so a cell with several lower neighbours sheds slightly
// more than a recompute-per-neighbour sweep would. The two endpoints are never
// sources but can receive material. Total height is conserved.
func ThermalSweep1D(line heightfield.Line, talus, factor float64) {
	var nbrs [2]int
	var diffs [2]float64

	for i := 1; i < len(line)-1; i++ {
		n := 0
		total := 0.0
		for _, j := range [2]int{i - 1, i + 1} {
			if d := line[i] - line[j]; d > talus {
				nbrs[n], diffs[n] = j, d
				total += d
				n++
			}
		}
		for k := 0; k < n; k++ {
			j := nbrs[k]
			delta := factor * (diffs[k] / total) * diffs[k]
			line[i] -= delta
			line[j] += delta
		}
	}
}

// ThermalSweep2D runs one row-major relaxation sweep over the interior of g
// without normalizing. Transfers use the differences recorded before the
// cell's first transfer, as in ThermalSweep1D. Border cells are never sources
// but can receive material from interior neighbours. Total height is conserved.
func ThermalSweep2D(g *heightfield.Grid, talus, factor float64) {
	w, h := g.Width, g.Height
	cells := g.Cells

	var nbrs [4]int
	var diffs [4]float64

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := g.Index(x, y)
			n := 0
			total := 0.0
			for _, j := range [4]int{i - w, i + w, i - 1, i + 1} {
				if d := cells[i] - cells[j]; d > talus {
					nbrs[n], diffs[n] = j, d
					total += d
					n++
				}
			}
			for k := 0; k < n; k++ {
				j := nbrs[k]
				delta := factor * (diffs[k] / total) * diffs[k]
				cells[i] -= delta
				cells[j] += delta
			}
		}
	}
}
