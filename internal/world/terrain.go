package world

import (
	"fmt"
	"math"

	"voxelgen/internal/config"
)

// FlatSolid is the flat-biome predicate. noise is a normalized 3D sample in [0, 1].
// Solid at or below minH, never at or above maxH, otherwise solid iff the noise
// exceeds the height fraction (y-minH)/(maxH-minH).
func FlatSolid(y, minH, maxH int, noise float64) bool {
	if y <= minH {
		return true
	}
	if y >= maxH {
		return false
	}
	return noise > heightFraction(y, minH, maxH)
}

// MountainSolid is the mountain-biome predicate: solid iff the normalized 3D noise
// exceeds log(y)/log(base). y <= 0 is always solid (log is undefined there).
func MountainSolid(y int, logBase, noise float64) bool {
	if y <= 0 {
		return true
	}
	return noise > math.Log10(float64(y))/math.Log10(logBase)
}

// QuarrySolid is the quarry-biome predicate. noise2d is a normalized 2D sample
// at the column, so the result forms a heightmap with vertical cliff faces.
func QuarrySolid(y, minH, maxH int, noise2d float64) bool {
	if y <= minH {
		return true
	}
	if y >= maxH {
		return false
	}
	return float64(y) < noise2d*float64(maxH-minH)
}

func heightFraction(y, minH, maxH int) float64 {
	return float64(y-minH) / float64(maxH-minH)
}

// TerrainRules evaluates the per-biome predicates against a noise source.
type TerrainRules struct {
	noise    NoiseSource
	flat     config.FlatRule
	mountain config.MountainRule
	quarry   config.QuarryRule
}

// NewTerrainRules binds rule parameters to a noise source.
func NewTerrainRules(noise NoiseSource, flat config.FlatRule, mountain config.MountainRule, quarry config.QuarryRule) *TerrainRules {
	return &TerrainRules{noise: noise, flat: flat, mountain: mountain, quarry: quarry}
}

// Solid dispatches to the rule of the given biome at a global coordinate.
func (tr *TerrainRules) Solid(biome BiomeType, g Vec3i) bool {
	switch biome {
	case BiomeFlat:
		return tr.flatSolid(g)
	case BiomeMountains:
		return tr.mountainSolid(g)
	case BiomeQuarry:
		return tr.quarrySolid(g)
	default:
		panic(fmt.Errorf("%w: no terrain rule for %v", ErrInvariantViolation, biome))
	}
}

func (tr *TerrainRules) flatSolid(g Vec3i) bool {
	r := tr.flat
	// the noise is only needed between the two thresholds
	if g.Y <= r.MinHeight || g.Y >= r.MaxHeight {
		return FlatSolid(g.Y, r.MinHeight, r.MaxHeight, 0)
	}
	n := Normalize(tr.noise.Sample3D(
		float64(g.X)*r.HorizontalScale,
		float64(g.Y)*r.VerticalScale,
		float64(g.Z)*r.HorizontalScale,
	))
	return FlatSolid(g.Y, r.MinHeight, r.MaxHeight, n)
}

func (tr *TerrainRules) mountainSolid(g Vec3i) bool {
	r := tr.mountain
	if g.Y <= 0 {
		return true
	}
	n := Normalize(tr.noise.Sample3D(
		float64(g.X)*r.HorizontalScale,
		float64(g.Y)*r.VerticalScale,
		float64(g.Z)*r.HorizontalScale,
	))
	return MountainSolid(g.Y, r.LogBase, n)
}

func (tr *TerrainRules) quarrySolid(g Vec3i) bool {
	r := tr.quarry
	if g.Y <= r.MinHeight || g.Y >= r.MaxHeight {
		return QuarrySolid(g.Y, r.MinHeight, r.MaxHeight, 0)
	}
	n := Normalize(tr.noise.Sample2D(float64(g.X)*r.Scale, float64(g.Z)*r.Scale))
	return QuarrySolid(g.Y, r.MinHeight, r.MaxHeight, n)
}

// MaxSolidHeight is the lowest global y at and above which no rule can produce solid voxels.
func (tr *TerrainRules) MaxSolidHeight() int {
	h := tr.flat.MaxHeight
	if tr.quarry.MaxHeight > h {
		h = tr.quarry.MaxHeight
	}
	// log(y)/log(base) >= 1 once y >= base, and normalized noise never exceeds 1
	if m := int(math.Ceil(tr.mountain.LogBase)); m > h {
		h = m
	}
	return h
}
