package world

import (
	"errors"
	"fmt"
	"log/slog"

	"voxelgen/internal/config"
	"voxelgen/internal/profiling"
)

// Generator turns chunk coordinates into voxel grids.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	settings  config.WorldGen
	chunkSize Vec3i
	noise     NoiseSource
	biomes    *BiomeClassifier
	rules     *TerrainRules
	log       *slog.Logger
}

// NewGenerator builds a generator with the noise backend named in the settings.
func NewGenerator(cfg config.WorldGen, log *slog.Logger) (*Generator, error) {
	noise, err := NewNoiseSource(cfg.Seed, cfg.Noise)
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithNoise(cfg, noise, log)
}

// NewGeneratorWithNoise builds a generator around an explicit noise source.
func NewGeneratorWithNoise(cfg config.WorldGen, noise NoiseSource, log *slog.Logger) (*Generator, error) {
	if log == nil {
		log = slog.Default()
	}
	size := Vec3i{X: cfg.ChunkSize[0], Y: cfg.ChunkSize[1], Z: cfg.ChunkSize[2]}
	if err := validateSize(size); err != nil {
		return nil, err
	}

	slots, err := BiomeSlotsFromConfig(cfg.Biome.Slots)
	if err != nil {
		return nil, err
	}
	biomes, err := NewBiomeClassifier(slots, cfg.Biome.BlendThreshold)
	if err != nil {
		return nil, err
	}

	return &Generator{
		settings:  cfg,
		chunkSize: size,
		noise:     noise,
		biomes:    biomes,
		rules:     NewTerrainRules(noise, cfg.Flat, cfg.Mountain, cfg.Quarry),
		log:       log,
	}, nil
}

// ChunkSize returns the configured default chunk size.
func (g *Generator) ChunkSize() Vec3i { return g.chunkSize }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.settings.Seed }

// BiomeAt classifies the column at world (x, z). Biomes do not vary with height.
func (g *Generator) BiomeAt(x, z int) [3]BiomeStrength {
	s := g.settings.Biome.Scale
	r := Normalize(g.noise.Sample2D(float64(x)*s, float64(z)*s))
	return g.biomes.Classify(r)
}

// GenerateVoxel evaluates the solidity rule at one global coordinate.
// It depends only on the coordinate and the generator settings, so it agrees
// with every chunk that contains the coordinate.
func (g *Generator) GenerateVoxel(global Vec3i) bool {
	return g.solid(g.BiomeAt(global.X, global.Z), global)
}

// GenerateVoxelInLocalSpace evaluates a coordinate relative to chunk c.
// local may be negative or >= the chunk size; the neighbouring chunk is never built.
func (g *Generator) GenerateVoxelInLocalSpace(c *Chunk, local Vec3i) bool {
	return g.GenerateVoxel(c.Global(local))
}

// solid applies the dominant biome's rule, or the strength vote when blending is enabled.
func (g *Generator) solid(biomes [3]BiomeStrength, p Vec3i) bool {
	if !g.settings.Biome.Blend {
		return g.rules.Solid(biomes[0].Type, p)
	}
	var solid, total float64
	for _, b := range biomes {
		if b.Strength <= 0 {
			continue
		}
		total += b.Strength
		if g.rules.Solid(b.Type, p) {
			solid += b.Strength
		}
	}
	if total == 0 {
		return g.rules.Solid(biomes[0].Type, p)
	}
	return solid*2 >= total
}

// GenerateChunk generates the chunk at location using the configured chunk size.
func (g *Generator) GenerateChunk(location Vec3i) (*Chunk, error) {
	return g.Generate(location, g.chunkSize)
}

// Generate fills every voxel of the chunk at location with the given size.
// A size with a zero or negative axis is rejected with a *ConfigError.
// Internal invariant violations abort this job only and are returned
// wrapped in ErrInvariantViolation.
func (g *Generator) Generate(location, size Vec3i) (c *Chunk, err error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	defer profiling.Track("world.Generate")()
	defer func() {
		if r := recover(); r != nil {
			c = nil
			if rErr, ok := r.(error); ok && !errors.Is(rErr, ErrInvariantViolation) {
				err = fmt.Errorf("generate chunk %v: %w: %w", location, ErrInvariantViolation, rErr)
			} else {
				err = fmt.Errorf("generate chunk %v: %w: %v", location, ErrInvariantViolation, r)
			}
			g.log.Error("chunk generation aborted", "location", location, "error", err)
		}
	}()

	voxels := make([]Voxel, size.Volume())

	// Nothing can be solid at or above this height; skip rule evaluation.
	if location.Y*size.Y >= g.rules.MaxSolidHeight() {
		c, err = NewChunk(location, size, voxels, g)
		g.log.Debug("chunk generated", "location", location, "solid", 0, "skipped", true)
		return c, err
	}

	// Biome is per column; classify each (x, z) once.
	columns := make([][3]BiomeStrength, size.X*size.Z)
	for z := 0; z < size.Z; z++ {
		for x := 0; x < size.X; x++ {
			gp := LocalToGlobal(location, size, Vec3i{X: x, Z: z})
			columns[x+z*size.X] = g.BiomeAt(gp.X, gp.Z)
		}
	}

	for i := range voxels {
		local := IndexToXYZ(i, size)
		global := LocalToGlobal(location, size, local)
		voxels[i].Solid = g.solid(columns[local.X+local.Z*size.X], global)
	}

	c, err = NewChunk(location, size, voxels, g)
	if err != nil {
		return nil, err
	}
	g.log.Debug("chunk generated", "location", location, "solid", c.SolidCount(), "empty", c.IsEmpty())
	return c, nil
}
