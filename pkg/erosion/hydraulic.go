package erosion

import (
	"math"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/rng"
)

// Hydraulic1D simulates p.Drops droplets over line and normalizes it.
func Hydraulic1D(line heightfield.Line, p HydraulicParams) heightfield.Line {
	Droplets1D(line, p)
	return line.Normalize()
}

// Hydraulic2D simulates p.Drops droplets over g and normalizes it.
func Hydraulic2D(g *heightfield.Grid, p HydraulicParams) *heightfield.Grid {
	Droplets2D(g, p)
	return g.Normalize()
}

// Droplets1D runs the droplet simulation over line without normalizing.
// Droplets run one after another against the same line, in the order the
// seeded stream spawns them. Lines shorter than 3 have no interior and are
// left untouched.
func Droplets1D(line heightfield.Line, p HydraulicParams) Stats {
	var st Stats
	n := len(line)
	if n < 3 {
		return st
	}
	src := rng.New(p.Seed)

	for range p.Drops {
		i := src.IntIn(1, n-1)
		v, water, sediment := 0.0, 1.0, 0.0
		st.Droplets++

		for range p.Lifetime {
			st.Steps++
			g := (line[min(i+1, n-1)] - line[max(i-1, 0)]) * 0.5
			v = v*p.Inertia - g*(1-p.Inertia)

			step := 1
			if v < 0 {
				step = -1
			}
			j := clampInt(i+step, 1, n-2)

			dh := line[j] - line[i]
			capacity := math.Max(-dh, p.MinSlope) * math.Abs(v) * water * p.Capacity

			if sediment > capacity {
				amt := math.Min((sediment-capacity)*p.Deposition, sediment)
				line[i] += amt
				sediment -= amt
				st.Deposited += amt
			} else {
				amt := math.Min((capacity-sediment)*p.Erosion, line[i])
				line[i] -= amt
				sediment += amt
				st.Eroded += amt
			}

			water *= 1 - p.Evaporation
			i = j
			if water < p.MinWater {
				break
			}
		}
	}
	return st
}

// Droplets2D runs the droplet simulation over g without normalizing.
// Positions are clamped to the interior, so border cells are only touched
// through the central-difference gradient reads. Grids narrower or shorter
// than 3 are left untouched.
func Droplets2D(g *heightfield.Grid, p HydraulicParams) Stats {
	var st Stats
	w, h := g.Width, g.Height
	if w < 3 || h < 3 {
		return st
	}
	hm := g.Cells
	src := rng.New(p.Seed)

	// cell clamps a position to the interior before truncating it.
	cell := func(x, y float64) (int, int) {
		return int(clampFloat(x, 1, float64(w-2))), int(clampFloat(y, 1, float64(h-2)))
	}

	for range p.Drops {
		y := float64(src.IntIn(1, h-1))
		x := float64(src.IntIn(1, w-1))
		vx, vy, water, sediment := 0.0, 0.0, 1.0, 0.0
		st.Droplets++

		for range p.Lifetime {
			st.Steps++
			ix, iy := cell(x, y)
			old := iy*w + ix

			gx := (hm[old+1] - hm[old-1]) * 0.5
			gy := (hm[old+w] - hm[old-w]) * 0.5
			vx = vx*p.Inertia - gx*(1-p.Inertia)
			vy = vy*p.Inertia - gy*(1-p.Inertia)

			speed := math.Sqrt(vx*vx+vy*vy) + heightfield.Epsilon
			vx /= speed
			vy /= speed
			x += vx
			y += vy

			nx, ny := cell(x, y)
			dh := hm[ny*w+nx] - hm[old]
			capacity := math.Max(-dh, p.MinSlope) * speed * water * p.Capacity

			if sediment > capacity {
				amt := math.Min((sediment-capacity)*p.Deposition, sediment)
				hm[old] += amt
				sediment -= amt
				st.Deposited += amt
			} else {
				amt := math.Min((capacity-sediment)*p.Erosion, hm[old])
				hm[old] -= amt
				sediment += amt
				st.Eroded += amt
			}

			water *= 1 - p.Evaporation
			if water < p.MinWater {
				break
			}
		}
	}
	return st
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
