package world

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"voxelgen/internal/config"
)

// NoiseSource is a seeded continuous noise function.
// Both samplers return values in [-1, 1] and are referentially transparent:
// equal inputs and seed always give equal output.
type NoiseSource interface {
	Sample2D(x, z float64) float64
	Sample3D(x, y, z float64) float64
}

// NewNoiseSource builds the backend selected in the settings.
func NewNoiseSource(seed int64, s config.NoiseSettings) (NoiseSource, error) {
	switch s.Backend {
	case config.NoiseSimplex, "":
		return NewSimplexNoise(seed), nil
	case config.NoisePerlin:
		return NewPerlinNoise(seed, s.PerlinAlpha, s.PerlinBeta, s.PerlinOctaves), nil
	default:
		return nil, &ConfigError{Field: "noise.backend", Value: s.Backend, Err: fmt.Errorf("unknown noise backend")}
	}
}

// SimplexNoise is the default OpenSimplex backend.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates an OpenSimplex source for the seed.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

func (n *SimplexNoise) Sample2D(x, z float64) float64 {
	return clampUnit(n.noise.Eval2(x, z))
}

func (n *SimplexNoise) Sample3D(x, y, z float64) float64 {
	return clampUnit(n.noise.Eval3(x, y, z))
}

// PerlinNoise is the classic gradient noise backend.
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise creates a Perlin source. alpha is the weight divisor per octave,
// beta the frequency multiplier and octaves the number of summed layers.
func NewPerlinNoise(seed int64, alpha, beta float64, octaves int) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(alpha, beta, int32(octaves), seed)}
}

func (n *PerlinNoise) Sample2D(x, z float64) float64 {
	return clampUnit(n.p.Noise2D(x, z))
}

func (n *PerlinNoise) Sample3D(x, y, z float64) float64 {
	return clampUnit(n.p.Noise3D(x, y, z))
}

// Normalize maps a [-1, 1] sample into [0, 1].
func Normalize(v float64) float64 {
	return (v + 1) / 2
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
