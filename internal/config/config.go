package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/OCharnyshevich/terragen/pkg/erosion"
	"github.com/OCharnyshevich/terragen/pkg/fbm"
	"github.com/OCharnyshevich/terragen/pkg/noise"
	"github.com/OCharnyshevich/terragen/pkg/terrain"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds one terragen run.
type Config struct {
	Dim     int    `json:"dim"` // 1 or 2
	Seed    int64  `json:"seed"`
	Backend string `json:"backend"` // empty selects perlin1d or perlin2d

	Octaves    int     `json:"octaves"`
	Lacunarity float64 `json:"lacunarity"`
	Gain       float64 `json:"gain"`

	Length  int     `json:"length"`
	Scale1D float64 `json:"scale1d"`

	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Scale2D      float64 `json:"scale2d"`
	Slice        float64 `json:"slice"`
	WorleyCells  int     `json:"worley_cells"`
	WorleyMetric string  `json:"worley_metric"`
	DSSize       int     `json:"ds_size"`
	DSRoughness  float64 `json:"ds_roughness"`

	Erosion     string  `json:"erosion"` // none, thermal, hydraulic
	Iterations  int     `json:"erosion_iters"`
	Talus       float64 `json:"talus"`
	ErodeFactor float64 `json:"erode_factor"`

	Preset      string  `json:"preset"` // hydraulic preset: default, subtle, heavy
	RainDrops   int     `json:"rain_drops"`
	Inertia     float64 `json:"inertia"`
	Capacity    float64 `json:"capacity"`
	MinSlope    float64 `json:"min_slope"`
	Erode       float64 `json:"erode"`
	Deposit     float64 `json:"deposit"`
	Evaporation float64 `json:"evap"`
	Lifetime    int     `json:"lifetime"`
	MinWater    float64 `json:"min_water"`

	ExportPNG     string  `json:"export_png"`
	ExportOBJ     string  `json:"export_obj"`
	ExportNPY     string  `json:"export_npy"`
	VerticalScale float64 `json:"vertical_scale"`
	Color         bool    `json:"color"` // hypsometric PNG instead of grayscale

	OutDir   string `json:"out"`      // output directory for relative export paths
	Autosave bool   `json:"autosave"` // write every format under generated names
}

// DefaultConfig returns the stock command-line defaults.
func DefaultConfig() *Config {
	f := fbm.DefaultParams()
	th := erosion.DefaultThermal()
	hy := erosion.DefaultHydraulic()
	p1 := terrain.DefaultParams1D()
	p2 := terrain.DefaultParams2D()
	return &Config{
		Dim:  2,
		Seed: 1337,

		Octaves:    f.Octaves,
		Lacunarity: f.Lacunarity,
		Gain:       f.Gain,

		Length:  p1.Length,
		Scale1D: p1.Scale,

		Width:        p2.Width,
		Height:       p2.Height,
		Scale2D:      p2.Scale,
		WorleyCells:  noise.DefaultCells,
		WorleyMetric: noise.DefaultMetric,
		DSSize:       noise.DefaultSize,
		DSRoughness:  noise.DefaultRoughness,

		Erosion:     string(terrain.ErosionNone),
		Iterations:  th.Iterations,
		Talus:       th.Talus,
		ErodeFactor: th.Factor,

		Preset:      "default",
		RainDrops:   hy.Drops,
		Inertia:     hy.Inertia,
		Capacity:    hy.Capacity,
		MinSlope:    hy.MinSlope,
		Erode:       hy.Erosion,
		Deposit:     hy.Deposition,
		Evaporation: hy.Evaporation,
		Lifetime:    hy.Lifetime,
		MinWater:    hy.MinWater,

		VerticalScale: 60,
		OutDir:        ".",
	}
}

// Load reads a JSON config from path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// field copies one value from a file config into the live config.
type field struct {
	flag string
	set  func(dst, src *Config)
}

var fields = []field{
	{"dim", func(d, s *Config) { d.Dim = s.Dim }},
	{"seed", func(d, s *Config) { d.Seed = s.Seed }},
	{"backend", func(d, s *Config) { d.Backend = s.Backend }},
	{"octaves", func(d, s *Config) { d.Octaves = s.Octaves }},
	{"lacunarity", func(d, s *Config) { d.Lacunarity = s.Lacunarity }},
	{"gain", func(d, s *Config) { d.Gain = s.Gain }},
	{"length", func(d, s *Config) { d.Length = s.Length }},
	{"scale1d", func(d, s *Config) { d.Scale1D = s.Scale1D }},
	{"width", func(d, s *Config) { d.Width = s.Width }},
	{"height", func(d, s *Config) { d.Height = s.Height }},
	{"scale2d", func(d, s *Config) { d.Scale2D = s.Scale2D }},
	{"slice", func(d, s *Config) { d.Slice = s.Slice }},
	{"worley-cells", func(d, s *Config) { d.WorleyCells = s.WorleyCells }},
	{"worley-metric", func(d, s *Config) { d.WorleyMetric = s.WorleyMetric }},
	{"ds-size", func(d, s *Config) { d.DSSize = s.DSSize }},
	{"ds-roughness", func(d, s *Config) { d.DSRoughness = s.DSRoughness }},
	{"erosion", func(d, s *Config) { d.Erosion = s.Erosion }},
	{"erosion-iters", func(d, s *Config) { d.Iterations = s.Iterations }},
	{"talus", func(d, s *Config) { d.Talus = s.Talus }},
	{"erode-factor", func(d, s *Config) { d.ErodeFactor = s.ErodeFactor }},
	{"preset", func(d, s *Config) { d.Preset = s.Preset }},
	{"rain-drops", func(d, s *Config) { d.RainDrops = s.RainDrops }},
	{"inertia", func(d, s *Config) { d.Inertia = s.Inertia }},
	{"capacity", func(d, s *Config) { d.Capacity = s.Capacity }},
	{"min-slope", func(d, s *Config) { d.MinSlope = s.MinSlope }},
	{"erode", func(d, s *Config) { d.Erode = s.Erode }},
	{"deposit", func(d, s *Config) { d.Deposit = s.Deposit }},
	{"evap", func(d, s *Config) { d.Evaporation = s.Evaporation }},
	{"lifetime", func(d, s *Config) { d.Lifetime = s.Lifetime }},
	{"min-water", func(d, s *Config) { d.MinWater = s.MinWater }},
	{"export-png", func(d, s *Config) { d.ExportPNG = s.ExportPNG }},
	{"export-obj", func(d, s *Config) { d.ExportOBJ = s.ExportOBJ }},
	{"export-npy", func(d, s *Config) { d.ExportNPY = s.ExportNPY }},
	{"vertical-scale", func(d, s *Config) { d.VerticalScale = s.VerticalScale }},
	{"color", func(d, s *Config) { d.Color = s.Color }},
	{"out", func(d, s *Config) { d.OutDir = s.OutDir }},
	{"autosave", func(d, s *Config) { d.Autosave = s.Autosave }},
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	for _, f := range fields {
		if !explicitFlags[f.flag] {
			f.set(cfg, fromFile)
		}
	}
}

// hydraulicFlags are the flags a preset overrides.
var hydraulicFlags = []string{
	"rain-drops", "inertia", "capacity", "min-slope", "erode",
	"deposit", "evap", "lifetime",
}

// ApplyPreset replaces the hydraulic settings with the named preset, except
// for those set explicitly on the command line.
func ApplyPreset(cfg *Config, explicitFlags map[string]bool) error {
	var p erosion.HydraulicParams
	switch cfg.Preset {
	case "", "default":
		return nil
	case "subtle":
		p = erosion.SubtleHydraulic()
	case "heavy":
		p = erosion.HeavyHydraulic()
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, cfg.Preset)
	}

	preset := &Config{
		RainDrops:   p.Drops,
		Inertia:     p.Inertia,
		Capacity:    p.Capacity,
		MinSlope:    p.MinSlope,
		Erode:       p.Erosion,
		Deposit:     p.Deposition,
		Evaporation: p.Evaporation,
		Lifetime:    p.Lifetime,
	}
	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f.flag] = true
	}
	for _, name := range hydraulicFlags {
		keep[name] = explicitFlags[name]
	}
	Merge(cfg, preset, keep)
	return nil
}

// Validate rejects values no run can use.
func (c *Config) Validate() error {
	switch {
	case c.Dim != 1 && c.Dim != 2:
		return fmt.Errorf("%w: dim must be 1 or 2, got %d", ErrInvalid, c.Dim)
	case c.Octaves < 0:
		return fmt.Errorf("%w: octaves must not be negative", ErrInvalid)
	case c.Dim == 1 && (c.Length <= 0 || c.Scale1D <= 0):
		return fmt.Errorf("%w: length and scale1d must be positive", ErrInvalid)
	case c.Dim == 2 && (c.Width <= 0 || c.Height <= 0 || c.Scale2D <= 0):
		return fmt.Errorf("%w: width, height and scale2d must be positive", ErrInvalid)
	case c.Iterations < 0 || c.RainDrops < 0 || c.Lifetime < 0:
		return fmt.Errorf("%w: erosion counts must not be negative", ErrInvalid)
	case c.Evaporation < 0 || c.Evaporation > 1:
		return fmt.Errorf("%w: evap must be in [0, 1]", ErrInvalid)
	}
	if _, err := terrain.ParseMode(c.Erosion); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// BackendName returns Backend, or the perlin backend for Dim.
func (c *Config) BackendName() string {
	if c.Backend != "" {
		return c.Backend
	}
	if c.Dim == 1 {
		return "perlin1d"
	}
	return "perlin2d"
}

// FBM returns the octave settings.
func (c *Config) FBM() fbm.Params {
	return fbm.Params{Octaves: c.Octaves, Lacunarity: c.Lacunarity, Gain: c.Gain}
}

// Params1D returns the 1D generation parameters.
func (c *Config) Params1D() terrain.Params1D {
	return terrain.Params1D{
		Length:  c.Length,
		Scale:   c.Scale1D,
		Seed:    c.Seed,
		Backend: c.BackendName(),
		FBM:     c.FBM(),
	}
}

// Params2D returns the 2D generation parameters.
func (c *Config) Params2D() terrain.Params2D {
	return terrain.Params2D{
		Width:         c.Width,
		Height:        c.Height,
		Scale:         c.Scale2D,
		Seed:          c.Seed,
		Backend:       c.BackendName(),
		FBM:           c.FBM(),
		Worley:        terrain.WorleyParams{Cells: c.WorleyCells, Metric: c.WorleyMetric},
		DiamondSquare: terrain.DiamondSquareParams{Size: c.DSSize, Roughness: c.DSRoughness},
		Slice:         c.Slice,
	}
}

// minDrops1D is the floor for the 1D droplet count.
const minDrops1D = 1000

// ErosionFor returns the erosion settings for a run of dimension dim. 1D
// runs use half the rain drops, but at least 1000.
func (c *Config) ErosionFor(dim int) terrain.Erosion {
	drops := c.RainDrops
	if dim == 1 {
		drops = max(minDrops1D, c.RainDrops/2)
	}
	return terrain.Erosion{
		Mode: terrain.Mode(c.Erosion),
		Thermal: erosion.ThermalParams{
			Iterations: c.Iterations,
			Talus:      c.Talus,
			Factor:     c.ErodeFactor,
		},
		Hydraulic: erosion.HydraulicParams{
			Drops:       drops,
			Seed:        c.Seed,
			Inertia:     c.Inertia,
			Capacity:    c.Capacity,
			MinSlope:    c.MinSlope,
			Erosion:     c.Erode,
			Deposition:  c.Deposit,
			Evaporation: c.Evaporation,
			Lifetime:    c.Lifetime,
			MinWater:    c.MinWater,
		},
	}
}
