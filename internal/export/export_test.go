package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
)

func testGrid() *heightfield.Grid {
	return &heightfield.Grid{Width: 3, Height: 2, Cells: []float64{
		0, 0.25, 0.5,
		0.75, 1, 0.1,
	}}
}

func TestWriteNPY(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNPY(&buf, testGrid()))
	data := buf.Bytes()

	require.True(t, bytes.HasPrefix(data, []byte("\x93NUMPY\x01\x00")))
	hlen := int(binary.LittleEndian.Uint16(data[8:10]))
	assert.Zero(t, (10+hlen)%64, "header not aligned")

	header := string(data[10 : 10+hlen])
	assert.Contains(t, header, "'descr': '<f4'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (2, 3)")
	assert.True(t, strings.HasSuffix(header, "\n"))

	body := data[10+hlen:]
	require.Len(t, body, 6*4)
	for i, want := range testGrid().Cells {
		got := math.Float32frombits(binary.LittleEndian.Uint32(body[i*4:]))
		assert.Equal(t, float32(want), got, "cell %d", i)
	}
}

func TestWriteNPYLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNPY(&buf, heightfield.Line{0.1, 0.2, 0.3, 0.4}.Grid()))
	assert.Contains(t, buf.String(), "'shape': (1, 4)")
}

func TestWritePNGGray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testGrid(), Gray))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},
		{1, 0, 63},
		{2, 0, 127},
		{0, 1, 191},
		{1, 1, 255},
		{2, 1, 25},
	}
	for _, tt := range tests {
		got := color.GrayModel.Convert(img.At(tt.x, tt.y)).(color.Gray).Y
		assert.Equal(t, tt.want, got, "pixel (%d,%d)", tt.x, tt.y)
	}
}

func TestWritePNGHypsometric(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testGrid(), Hypsometric))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// water is bluer than it is red; low land is greener than it is blue
	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Greater(t, b, r)
	_, g, b, _ := img.At(2, 0).RGBA()
	assert.Greater(t, g, b)

	assert.Error(t, WritePNG(&buf, testGrid(), Ramp(9)))
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, testGrid(), 10))

	counts := map[string]int{}
	var verts []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "v" {
			verts = append(verts, sc.Text())
		}
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, 6, counts["v"])
	assert.Equal(t, 6, counts["vt"])
	assert.Equal(t, 6, counts["vn"])
	assert.Equal(t, 2*(3-1)*(2-1), counts["f"])
	assert.Equal(t, "v 1 2.5 0", verts[1])
	assert.Equal(t, "v 1 10 1", verts[4])
}

func TestNormalFlatIsUp(t *testing.T) {
	x, y, z := normal(0, 0)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(1), y)
	assert.Equal(t, float32(0), z)

	x, y, _ = normal(2, 0)
	assert.Less(t, x, float32(0))
	assert.InDelta(t, 1, float64(x*x+y*y), 1e-6)
}
