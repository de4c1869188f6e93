package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/hsluv/hsluv-go"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
)

// Ramp maps heights to pixel colours.
type Ramp int

const (
	// Gray writes 8-bit luminance, value*255.
	Gray Ramp = iota
	// Hypsometric shades water below SeaLevel blue and land from green
	// through brown to pale peaks.
	Hypsometric
)

// SeaLevel is the height below which Hypsometric draws water.
const SeaLevel = 0.35

// WritePNG encodes g as a PNG using ramp.
func WritePNG(w io.Writer, g *heightfield.Grid, ramp Ramp) error {
	rect := image.Rect(0, 0, g.Width, g.Height)

	var img image.Image
	switch ramp {
	case Gray:
		gray := image.NewGray(rect)
		for i, v := range g.Cells {
			gray.Pix[i] = toByte(v)
		}
		img = gray
	case Hypsometric:
		rgba := image.NewRGBA(rect)
		for y := 0; y < g.Height; y++ {
			for x, v := range g.Row(y) {
				rgba.SetRGBA(x, y, hypsometric(v))
			}
		}
		img = rgba
	default:
		return fmt.Errorf("unknown colour ramp %d", ramp)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func hypsometric(v float64) color.RGBA {
	var h, s, l float64
	if v < SeaLevel {
		t := v / SeaLevel
		h, s, l = 250, 90, 20+35*t
	} else {
		t := (v - SeaLevel) / (1 - SeaLevel)
		h, s, l = 130-100*t, 70-40*t, 45+50*t
	}
	r, gr, b := hsluv.HsluvToRGB(h, s, l)
	return color.RGBA{
		toByte(r),
		toByte(gr),
		toByte(b),
		0xff,
	}
}

// toByte maps [0, 1] onto 0..255, clamping outside values.
func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v * 0xff)
}
