package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"voxelgen/internal/config"
	"voxelgen/internal/export"
	"voxelgen/internal/meshing"
	"voxelgen/internal/profiling"
	"voxelgen/internal/world"
)

func main() {
	var (
		configPath  = flag.String("config", "", "world generation YAML file")
		seed        = flag.Int64("seed", config.DefaultSeed, "noise seed (overrides the config file)")
		radius      = flag.Int("radius", config.GetRenderDistance(), "horizontal radius in chunks around the origin")
		height      = flag.Int("height", config.GetVerticalRange(), "chunk layers per column starting at y=0")
		workers     = flag.Int("workers", runtime.NumCPU(), "generate+mesh workers")
		dumpPath    = flag.String("dump", "", "write quads as zstd-compressed JSONL to this path")
		previewPath = flag.String("preview", "", "write a PNG biome map of the region to this path")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(log, options{
		configPath:  *configPath,
		seed:        *seed,
		seedSet:     flagSet("seed"),
		radius:      *radius,
		height:      *height,
		workers:     *workers,
		dumpPath:    *dumpPath,
		previewPath: *previewPath,
	}); err != nil {
		log.Error("voxelgen failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	seed        int64
	seedSet     bool
	radius      int
	height      int
	workers     int
	dumpPath    string
	previewPath string
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func run(log *slog.Logger, opts options) error {
	cfg := config.DefaultWorldGen()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.seedSet || opts.configPath == "" {
		cfg.Seed = opts.seed
	}
	config.SetRenderDistance(opts.radius)
	config.SetVerticalRange(opts.height)

	gen, err := world.NewGenerator(cfg, log)
	if err != nil {
		return err
	}
	log.Info("generator ready",
		"seed", gen.Seed(),
		"backend", cfg.Noise.Backend,
		"chunk_size", gen.ChunkSize(),
		"radius", config.GetRenderDistance(),
		"layers", config.GetVerticalRange(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := world.NewChunkStore()
	streamer := world.NewChunkStreamer(store, gen, log,
		world.WithWorkers(opts.workers),
		world.WithVerticalRange(config.GetVerticalRange()),
	)
	defer streamer.Close()

	center := world.Vec3i{}
	coords := streamer.ChunksToSpawn(center, config.GetChunkLoadRadius())

	profiling.Reset()
	start := time.Now()
	streamer.StreamAround(center, config.GetChunkLoadRadius())
	streamer.Wait()
	log.Debug("region generated",
		"chunks", store.Len(),
		"store_mods", store.GetModCount(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	// chunks that failed to generate are retried by the pool and reported there
	pool := meshing.NewWorkerPool(store.Source(gen), opts.workers, log)
	defer pool.Shutdown()

	results := pool.Run(ctx, coords)
	elapsed := time.Since(start)

	var dump *export.QuadWriter
	if opts.dumpPath != "" {
		f, err := os.Create(opts.dumpPath)
		if err != nil {
			return fmt.Errorf("create quad dump: %w", err)
		}
		defer f.Close()
		dump, err = export.NewQuadWriter(f)
		if err != nil {
			return fmt.Errorf("create quad dump: %w", err)
		}
	}

	var st stats
	for _, res := range results {
		st.add(res)
		if dump != nil {
			if err := dump.WriteResult(res); err != nil {
				return fmt.Errorf("write quad dump: %w", err)
			}
		}
	}
	if dump != nil {
		if err := dump.Close(); err != nil {
			return fmt.Errorf("close quad dump: %w", err)
		}
		log.Info("quad dump written", "path", opts.dumpPath, "quads", dump.Count())
	}

	if opts.previewPath != "" {
		if err := writePreview(opts.previewPath, gen, config.GetChunkLoadRadius()); err != nil {
			return err
		}
		log.Info("biome preview written", "path", opts.previewPath)
	}

	log.Info("region meshed",
		"chunks", st.chunks,
		"empty", st.empty,
		"failed", st.failed,
		"quads", st.quads,
		"elapsed", elapsed.Round(time.Millisecond),
		"top", profiling.TopN(3),
	)
	if st.failed > 0 {
		return fmt.Errorf("%d of %d chunks failed", st.failed, st.chunks)
	}
	return nil
}

type stats struct {
	chunks, empty, failed, quads int
}

func (s *stats) add(res meshing.MeshResult) {
	s.chunks++
	switch {
	case res.Err != nil:
		s.failed++
	case res.Empty:
		s.empty++
	}
	s.quads += len(res.Quads)
}

func writePreview(path string, gen *world.Generator, radius int) error {
	size := gen.ChunkSize()
	x0 := -radius * size.X
	z0 := -radius * size.Z
	w := (2*radius + 1) * size.X
	h := (2*radius + 1) * size.Z

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := export.WriteBiomePreview(f, gen, x0, z0, w, h, 2); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
