package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terragen/pkg/erosion"
	"github.com/OCharnyshevich/terragen/pkg/terrain"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "perlin2d", cfg.BackendName())
	assert.Equal(t, terrain.DefaultParams2D(), cfg.Params2D())

	cfg.Dim = 1
	assert.Equal(t, terrain.DefaultParams1D(), cfg.Params1D())
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Width = 64

	fromFile := DefaultConfig()
	fromFile.Seed = 5
	fromFile.Width = 512
	fromFile.Backend = "worley2d"

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, "worley2d", cfg.Backend)
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dim": 1, "length": 128, "erosion": "thermal"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Dim)
	assert.Equal(t, 128, cfg.Length)
	assert.Equal(t, "thermal", cfg.Erosion)
	assert.Equal(t, 80.0, cfg.Scale1D)

	require.NoError(t, os.WriteFile(path, []byte(`{"dim": `), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"dim", func(c *Config) { c.Dim = 3 }},
		{"octaves", func(c *Config) { c.Octaves = -1 }},
		{"width", func(c *Config) { c.Width = 0 }},
		{"scale2d", func(c *Config) { c.Scale2D = -4 }},
		{"length", func(c *Config) { c.Dim = 1; c.Length = 0 }},
		{"drops", func(c *Config) { c.RainDrops = -1 }},
		{"evap", func(c *Config) { c.Evaporation = 1.5 }},
		{"erosion", func(c *Config) { c.Erosion = "wind" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestErosionFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Erosion = "hydraulic"

	e2 := cfg.ErosionFor(2)
	assert.Equal(t, terrain.ErosionHydraulic, e2.Mode)
	assert.Equal(t, erosion.DefaultHydraulic(), e2.Hydraulic)
	assert.Equal(t, erosion.DefaultThermal(), e2.Thermal)

	assert.Equal(t, 10000, cfg.ErosionFor(1).Hydraulic.Drops)

	cfg.RainDrops = 500
	assert.Equal(t, 1000, cfg.ErosionFor(1).Hydraulic.Drops)
	assert.Equal(t, 500, cfg.ErosionFor(2).Hydraulic.Drops)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "heavy"
	cfg.RainDrops = 1234
	cfg.Seed = 42

	require.NoError(t, ApplyPreset(cfg, map[string]bool{"rain-drops": true}))

	heavy := erosion.HeavyHydraulic()
	assert.Equal(t, 1234, cfg.RainDrops)
	assert.Equal(t, heavy.Capacity, cfg.Capacity)
	assert.Equal(t, heavy.Lifetime, cfg.Lifetime)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 256, cfg.Width)

	cfg = DefaultConfig()
	require.NoError(t, ApplyPreset(cfg, nil))
	assert.Equal(t, DefaultConfig(), cfg)

	cfg.Preset = "torrential"
	assert.ErrorIs(t, ApplyPreset(cfg, nil), ErrInvalid)
}

func TestFetchLocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	got, err := Fetch(context.Background(), path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestFetchFileGetter(t *testing.T) {
	src := filepath.Join(t.TempDir(), "remote.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"seed": 7}`), 0o644))

	dir := t.TempDir()
	got, err := Fetch(context.Background(), "file::"+src, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), got)

	cfg, err := Load(got)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
}
