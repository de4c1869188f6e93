package noise

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFactory(seed int64, _ Options) (Backend, error) {
	return NewPerlin1D(seed), nil
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("b", stubFactory))
	require.NoError(t, r.Register("a", stubFactory))

	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("perlin", stubFactory))

	err := r.Register("perlin", stubFactory)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateBackend), "got %v", err)

	// Names are case-insensitive.
	err = r.Register("PERLIN", stubFactory)
	assert.True(t, errors.Is(err, ErrDuplicateBackend), "got %v", err)
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("x", stubFactory)
	assert.Panics(t, func() { r.MustRegister("x", stubFactory) })
}

func TestRegistryUnknownListsChoices(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("beta", stubFactory)
	r.MustRegister("alpha", stubFactory)

	_, err := r.New("gamma", 1, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBackend), "got %v", err)
	assert.True(t, strings.Contains(err.Error(), "alpha, beta"), "got %q", err.Error())
}

func TestRegistryLookupCaseInsensitive(t *testing.T) {
	b, err := Default.New("Perlin2D", 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, "perlin2d", b.Name())
}

func TestDefaultRegistryBackends(t *testing.T) {
	want := []string{
		"classic1d",
		"classic2d",
		"diamond_square2d",
		"opensimplex2d",
		"opensimplex3d",
		"perlin1d",
		"perlin2d",
		"perlin3d",
		"worley2d",
	}
	assert.Equal(t, want, Default.Names())

	for _, name := range want {
		b, err := Default.New(name, 1337, Options{})
		require.NoError(t, err, name)
		assert.Equal(t, name, b.Name())
	}
}

func TestDefaultRegistryPassesOptions(t *testing.T) {
	_, err := Default.New("diamond_square2d", 1, Options{Size: 100})
	assert.True(t, errors.Is(err, ErrInvalidSize), "got %v", err)

	b, err := Default.New("diamond_square2d", 1, Options{Size: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, b.(*DiamondSquare2D).Size())
	assert.Equal(t, DefaultRoughness, b.(*DiamondSquare2D).roughness)

	flat := 0.0
	b, err = Default.New("diamond_square2d", 1, Options{Size: 9, Roughness: &flat})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.(*DiamondSquare2D).roughness)

	b, err = Default.New("worley2d", 1, Options{Metric: "manhattan"})
	require.NoError(t, err)
	assert.Equal(t, Manhattan, b.(*Worley2D).Metric())
	assert.Equal(t, DomainUnit, DomainOf(b))
}

func TestLibraryBackendsSample(t *testing.T) {
	xs := []float64{0.25, 1.5, 3.75}
	ys := []float64{0.5, 2.25, 0.125}
	zs := []float64{0, 0, 0}

	s2 := NewOpenSimplex2D(4).Sample2D(xs, ys)
	assert.Len(t, s2, 3)
	assert.Equal(t, s2, NewOpenSimplex2D(4).Sample2D(xs, ys))

	s3 := NewOpenSimplex3D(4).Sample3D(xs, ys, zs)
	assert.Len(t, s3, 3)

	c1 := NewClassic1D(4).Sample1D(xs)
	assert.Equal(t, c1, NewClassic1D(4).Sample1D(xs))

	c2 := NewClassic2D(4).Sample2D(xs, ys)
	assert.Equal(t, c2, NewClassic2D(4).Sample2D(xs, ys))
	assert.Equal(t, DomainLattice, DomainOf(NewClassic2D(4)))
}
