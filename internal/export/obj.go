package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chewxy/math32"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
)

// WriteOBJ writes g as a Wavefront OBJ mesh. Cell (x, y) becomes vertex
// (x, value*verticalScale, y) with a texture coordinate and a normal, and
// every grid square is split into two triangles.
func WriteOBJ(w io.Writer, g *heightfield.Grid, verticalScale float64) error {
	bw := bufio.NewWriter(w)
	width, height := g.Width, g.Height
	vs := float32(verticalScale)

	elev := func(x, y int) float32 {
		x = min(max(x, 0), width-1)
		y = min(max(y, 0), height-1)
		return float32(g.At(x, y)) * vs
	}

	fmt.Fprintf(bw, "# terragen %dx%d\n", width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fmt.Fprintf(bw, "v %d %g %d\n", x, elev(x, y), y)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fmt.Fprintf(bw, "vt %g %g\n", texCoord(x, width), 1-texCoord(y, height))
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nx, ny, nz := normal(elev(x+1, y)-elev(x-1, y), elev(x, y+1)-elev(x, y-1))
			fmt.Fprintf(bw, "vn %g %g %g\n", nx, ny, nz)
		}
	}

	idx := func(x, y int) int { return g.Index(x, y) + 1 }
	for y := 0; y < height-1; y++ {
		for x := 0; x < width-1; x++ {
			v1, v2, v3, v4 := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			fmt.Fprintf(bw, "f %[1]d/%[1]d/%[1]d %[2]d/%[2]d/%[2]d %[3]d/%[3]d/%[3]d\n", v1, v2, v3)
			fmt.Fprintf(bw, "f %[1]d/%[1]d/%[1]d %[2]d/%[2]d/%[2]d %[3]d/%[3]d/%[3]d\n", v1, v3, v4)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

func texCoord(i, n int) float32 {
	if n < 2 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// normal returns the unit surface normal for central differences dx along x
// and dz along the grid's y axis, with +Y up.
func normal(dx, dz float32) (x, y, z float32) {
	x, y, z = -dx, 2, -dz
	l := math32.Sqrt(x*x + y*y + z*z)
	return x / l, y / l, z / l
}
