package config

import (
	"fmt"
	"math"
)

// Noise backends understood by the world generator.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// Biome type names used in BiomeSlot.Type.
const (
	BiomeMountains = "mountains"
	BiomeFlat      = "flat"
	BiomeQuarry    = "quarry"
)

// DefaultSeed is the fixed noise seed used when no seed is configured.
const DefaultSeed int64 = 8675309

// WorldGen holds every world generation parameter.
// It is a plain value: the generator copies it at construction time.
type WorldGen struct {
	Seed      int64         `yaml:"seed"`
	ChunkSize [3]int        `yaml:"chunk_size"`
	Noise     NoiseSettings `yaml:"noise"`
	Biome     BiomeSettings `yaml:"biome"`
	Flat      FlatRule      `yaml:"flat"`
	Mountain  MountainRule  `yaml:"mountain"`
	Quarry    QuarryRule    `yaml:"quarry"`
}

// NoiseSettings selects and tunes the noise backend.
type NoiseSettings struct {
	Backend string `yaml:"backend"`

	// Only used by the perlin backend.
	PerlinAlpha   float64 `yaml:"perlin_alpha"`
	PerlinBeta    float64 `yaml:"perlin_beta"`
	PerlinOctaves int     `yaml:"perlin_octaves"`
}

// BiomeSettings configures the biome ring.
type BiomeSettings struct {
	Slots          []BiomeSlot `yaml:"slots"`
	BlendThreshold float64     `yaml:"blend_threshold"`
	Scale          float64     `yaml:"scale"`
	// Blend lets every classified biome vote on solidity by strength
	// instead of applying only the dominant biome's rule.
	Blend bool `yaml:"blend"`
}

// BiomeSlot is one entry of the biome ring.
type BiomeSlot struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

// FlatRule parameters: gently undulating terrain between MinHeight and MaxHeight.
type FlatRule struct {
	MinHeight       int     `yaml:"min_height"`
	MaxHeight       int     `yaml:"max_height"`
	HorizontalScale float64 `yaml:"horizontal_scale"`
	VerticalScale   float64 `yaml:"vertical_scale"`
}

// MountainRule parameters: logarithmic height falloff.
type MountainRule struct {
	LogBase         float64 `yaml:"log_base"`
	HorizontalScale float64 `yaml:"horizontal_scale"`
	VerticalScale   float64 `yaml:"vertical_scale"`
}

// QuarryRule parameters: 2D heightmap with vertical cliffs.
type QuarryRule struct {
	MinHeight int     `yaml:"min_height"`
	MaxHeight int     `yaml:"max_height"`
	Scale     float64 `yaml:"scale"`
}

// DefaultWorldGen returns the canonical generation constants.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		Seed:      DefaultSeed,
		ChunkSize: [3]int{32, 32, 32},
		Noise: NoiseSettings{
			Backend:       NoiseSimplex,
			PerlinAlpha:   2.0,
			PerlinBeta:    2.0,
			PerlinOctaves: 3,
		},
		Biome: BiomeSettings{
			Slots: []BiomeSlot{
				{Type: BiomeMountains, Weight: 0.5},
				{Type: BiomeFlat, Weight: 0.5},
				{Type: BiomeQuarry, Weight: 0.5},
			},
			BlendThreshold: 0.7,
			Scale:          1.0 / 256.0,
		},
		Flat: FlatRule{
			MinHeight:       8,
			MaxHeight:       24,
			HorizontalScale: 1.0 / 40.0,
			VerticalScale:   1.0 / 20.0,
		},
		Mountain: MountainRule{
			LogBase:         64,
			HorizontalScale: 1.0 / 48.0,
			VerticalScale:   1.0 / 24.0,
		},
		Quarry: QuarryRule{
			MinHeight: 7,
			MaxHeight: 64,
			Scale:     1.0 / 64.0,
		},
	}
}

// Validate checks the settings for values the generator cannot work with.
func (c WorldGen) Validate() error {
	for i, s := range c.ChunkSize {
		if s <= 0 {
			return fmt.Errorf("chunk_size[%d] must be positive, got %d", i, s)
		}
	}
	switch c.Noise.Backend {
	case NoiseSimplex:
	case NoisePerlin:
		if c.Noise.PerlinOctaves <= 0 {
			return fmt.Errorf("noise.perlin_octaves must be positive, got %d", c.Noise.PerlinOctaves)
		}
	default:
		return fmt.Errorf("unknown noise.backend %q", c.Noise.Backend)
	}
	if len(c.Biome.Slots) == 0 {
		return fmt.Errorf("biome.slots must not be empty")
	}
	for i, s := range c.Biome.Slots {
		switch s.Type {
		case BiomeMountains, BiomeFlat, BiomeQuarry:
		default:
			return fmt.Errorf("biome.slots[%d]: unknown type %q", i, s.Type)
		}
		if !(s.Weight > 0) || math.IsInf(s.Weight, 0) {
			return fmt.Errorf("biome.slots[%d]: weight must be positive and finite, got %v", i, s.Weight)
		}
	}
	if c.Biome.BlendThreshold < 0 || c.Biome.BlendThreshold > 1 {
		return fmt.Errorf("biome.blend_threshold must be in [0,1], got %v", c.Biome.BlendThreshold)
	}
	if !(c.Biome.Scale > 0) {
		return fmt.Errorf("biome.scale must be positive, got %v", c.Biome.Scale)
	}
	if c.Flat.MinHeight >= c.Flat.MaxHeight {
		return fmt.Errorf("flat: min_height %d must be below max_height %d", c.Flat.MinHeight, c.Flat.MaxHeight)
	}
	if c.Quarry.MinHeight >= c.Quarry.MaxHeight {
		return fmt.Errorf("quarry: min_height %d must be below max_height %d", c.Quarry.MinHeight, c.Quarry.MaxHeight)
	}
	if !(c.Mountain.LogBase > 1) {
		return fmt.Errorf("mountain.log_base must be greater than 1, got %v", c.Mountain.LogBase)
	}
	scales := map[string]float64{
		"flat.horizontal_scale":     c.Flat.HorizontalScale,
		"flat.vertical_scale":       c.Flat.VerticalScale,
		"mountain.horizontal_scale": c.Mountain.HorizontalScale,
		"mountain.vertical_scale":   c.Mountain.VerticalScale,
		"quarry.scale":              c.Quarry.Scale,
	}
	for name, v := range scales {
		if !(v > 0) {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	return nil
}
