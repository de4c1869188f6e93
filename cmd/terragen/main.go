package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/OCharnyshevich/terragen/internal/config"
	"github.com/OCharnyshevich/terragen/internal/export"
	"github.com/OCharnyshevich/terragen/internal/storage"
	"github.com/OCharnyshevich/terragen/pkg/erosion"
	"github.com/OCharnyshevich/terragen/pkg/heightfield"
	"github.com/OCharnyshevich/terragen/pkg/noise"
	"github.com/OCharnyshevich/terragen/pkg/terrain"
)

func main() {
	cfg := config.DefaultConfig()

	flag.IntVar(&cfg.Dim, "dim", cfg.Dim, "dimension, 1 or 2")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "noise backend (see -list-noise)")

	flag.IntVar(&cfg.Octaves, "octaves", cfg.Octaves, "fBm octaves")
	flag.Float64Var(&cfg.Lacunarity, "lacunarity", cfg.Lacunarity, "fBm frequency multiplier")
	flag.Float64Var(&cfg.Gain, "gain", cfg.Gain, "fBm amplitude multiplier")

	flag.IntVar(&cfg.Length, "length", cfg.Length, "1D length")
	flag.Float64Var(&cfg.Scale1D, "scale1d", cfg.Scale1D, "1D samples per lattice unit")

	flag.IntVar(&cfg.Width, "width", cfg.Width, "2D width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "2D height")
	flag.Float64Var(&cfg.Scale2D, "scale2d", cfg.Scale2D, "2D samples per lattice unit")
	flag.Float64Var(&cfg.Slice, "slice", cfg.Slice, "z slice for 3D backends")
	flag.IntVar(&cfg.WorleyCells, "worley-cells", cfg.WorleyCells, "worley cells per side")
	flag.StringVar(&cfg.WorleyMetric, "worley-metric", cfg.WorleyMetric, "worley metric: euclid, manhattan, chebyshev")
	flag.IntVar(&cfg.DSSize, "ds-size", cfg.DSSize, "diamond-square size, 2^k+1")
	flag.Float64Var(&cfg.DSRoughness, "ds-roughness", cfg.DSRoughness, "diamond-square roughness")

	flag.StringVar(&cfg.Erosion, "erosion", cfg.Erosion, "erosion: none, thermal, hydraulic")
	flag.IntVar(&cfg.Iterations, "erosion-iters", cfg.Iterations, "thermal iterations")
	flag.Float64Var(&cfg.Talus, "talus", cfg.Talus, "thermal talus threshold")
	flag.Float64Var(&cfg.ErodeFactor, "erode-factor", cfg.ErodeFactor, "thermal transfer factor")

	flag.StringVar(&cfg.Preset, "preset", cfg.Preset, "hydraulic preset: default, subtle, heavy")
	flag.IntVar(&cfg.RainDrops, "rain-drops", cfg.RainDrops, "hydraulic droplets (1D uses half, at least 1000)")
	flag.Float64Var(&cfg.Inertia, "inertia", cfg.Inertia, "droplet inertia")
	flag.Float64Var(&cfg.Capacity, "capacity", cfg.Capacity, "sediment capacity")
	flag.Float64Var(&cfg.MinSlope, "min-slope", cfg.MinSlope, "minimum slope for capacity")
	flag.Float64Var(&cfg.Erode, "erode", cfg.Erode, "erosion rate")
	flag.Float64Var(&cfg.Deposit, "deposit", cfg.Deposit, "deposition rate")
	flag.Float64Var(&cfg.Evaporation, "evap", cfg.Evaporation, "evaporation per step")
	flag.IntVar(&cfg.Lifetime, "lifetime", cfg.Lifetime, "maximum steps per droplet")
	flag.Float64Var(&cfg.MinWater, "min-water", cfg.MinWater, "droplet stops below this water")

	flag.StringVar(&cfg.ExportPNG, "export-png", cfg.ExportPNG, "write a PNG to this path")
	flag.StringVar(&cfg.ExportOBJ, "export-obj", cfg.ExportOBJ, "write an OBJ mesh to this path (2D only)")
	flag.StringVar(&cfg.ExportNPY, "export-npy", cfg.ExportNPY, "write a .npy array to this path")
	flag.Float64Var(&cfg.VerticalScale, "vertical-scale", cfg.VerticalScale, "OBJ height multiplier")
	flag.BoolVar(&cfg.Color, "color", cfg.Color, "hypsometric PNG instead of grayscale")

	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory for relative export paths and autosaves")
	flag.BoolVar(&cfg.Autosave, "autosave", cfg.Autosave, "write PNG, NPY and OBJ under generated names plus run.json")

	var (
		configSrc = flag.String("config", "", "JSON config file or go-getter source; explicit flags win")
		listNoise = flag.Bool("list-noise", false, "list available noise backends and exit")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *listNoise {
		fmt.Println("Available noise:", strings.Join(terrain.ListBackends(), ", "))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		if err := loadConfig(ctx, cfg, *configSrc, explicit, log); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if err := config.ApplyPreset(cfg, explicit); err != nil {
		log.Error("apply preset", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("validate config", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("terragen error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, cfg *config.Config, src string, explicit map[string]bool, log *slog.Logger) error {
	dir, err := os.MkdirTemp("", "terragen-config-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path, err := config.Fetch(ctx, src, dir)
	if err != nil {
		return err
	}
	fromFile, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Merge(cfg, fromFile, explicit)
	log.Info("loaded config", "source", src)
	return nil
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	start := time.Now()
	gen := terrain.New(noise.Default, log)

	var (
		grid  *heightfield.Grid
		stats erosion.Stats
	)
	if cfg.Dim == 1 {
		line, err := gen.Generate1D(cfg.Params1D())
		if err != nil {
			return err
		}
		line, stats, err = gen.Erode1D(line, cfg.ErosionFor(1))
		if err != nil {
			return err
		}
		grid = line.Grid()
	} else {
		g, err := gen.Generate2D(cfg.Params2D())
		if err != nil {
			return err
		}
		grid, stats, err = gen.Erode2D(g, cfg.ErosionFor(2))
		if err != nil {
			return err
		}
	}

	lo, hi := grid.MinMax()
	log.Info("generated terrain",
		"dim", cfg.Dim,
		"backend", cfg.BackendName(),
		"width", grid.Width,
		"height", grid.Height,
		"erosion", cfg.Erosion,
		"min", lo,
		"max", hi,
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	out := storage.New(osfs.New(cfg.OutDir), log)
	written, err := writeOutputs(cfg, out, grid, log)
	if err != nil {
		return err
	}

	if cfg.Autosave {
		prev, err := out.LoadManifest()
		switch {
		case err != nil:
			log.Warn("replacing unreadable manifest", "error", err)
		case prev != nil:
			log.Info("replacing previous run",
				"created", prev.Created,
				"backend", prev.Backend,
				"outputs", len(prev.Outputs),
			)
		}

		m := &storage.Manifest{
			Created:  start,
			Backend:  cfg.BackendName(),
			Config:   cfg,
			Erosion:  stats,
			Outputs:  written,
			Duration: time.Since(start).String(),
		}
		if err := out.SaveManifest(m); err != nil {
			return fmt.Errorf("save manifest: %w", err)
		}
	}
	return nil
}

type output struct {
	path  string
	write func(io.Writer) error
}

func writeOutputs(cfg *config.Config, out *storage.Storage, g *heightfield.Grid, log *slog.Logger) ([]string, error) {
	ramp := export.Gray
	if cfg.Color {
		ramp = export.Hypsometric
	}
	writePNG := func(w io.Writer) error { return export.WritePNG(w, g, ramp) }
	writeNPY := func(w io.Writer) error { return export.WriteNPY(w, g) }
	writeOBJ := func(w io.Writer) error { return export.WriteOBJ(w, g, cfg.VerticalScale) }

	var outputs []output
	add := func(path string, write func(io.Writer) error) {
		if path != "" {
			outputs = append(outputs, output{path: path, write: write})
		}
	}
	add(cfg.ExportPNG, writePNG)
	add(cfg.ExportNPY, writeNPY)
	if cfg.Dim == 2 {
		add(cfg.ExportOBJ, writeOBJ)
	} else if cfg.ExportOBJ != "" {
		log.Warn("skipping OBJ export for a 1D profile", "path", cfg.ExportOBJ)
	}

	if cfg.Autosave {
		name := func(ext string) string { return out.Name(cfg.Dim, cfg.BackendName(), cfg.Seed, ext) }
		add(name("png"), writePNG)
		add(name("npy"), writeNPY)
		if cfg.Dim == 2 {
			add(name("obj"), writeOBJ)
		}
	}

	written := make([]string, 0, len(outputs))
	for _, o := range outputs {
		st, name := out, o.path
		if filepath.IsAbs(o.path) {
			st, name = storage.New(osfs.New(filepath.Dir(o.path)), log), filepath.Base(o.path)
		}
		if err := st.WriteFile(filepath.ToSlash(name), o.write); err != nil {
			return written, err
		}
		log.Info("saved", "path", o.path)
		written = append(written, o.path)
	}
	return written, nil
}
