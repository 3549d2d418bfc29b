package world

import (
	"errors"
	"testing"

	"voxelgen/internal/config"
)

var noiseProbes = []float64{0, 0.25, 0.5, 0.999, 1}

func TestQuarryBoundaries(t *testing.T) {
	for _, n := range noiseProbes {
		if !QuarrySolid(7, 7, 64, n) {
			t.Errorf("y=7 must be solid for noise %v", n)
		}
		if QuarrySolid(64, 7, 64, n) {
			t.Errorf("y=64 must be empty for noise %v", n)
		}
		if !QuarrySolid(-10, 7, 64, n) {
			t.Errorf("y=-10 must be solid for noise %v", n)
		}
	}
	// heightmap between the thresholds: y < noise*(max-min)
	if !QuarrySolid(20, 7, 64, 0.5) { // 20 < 28.5
		t.Error("y=20 noise=0.5 should be solid")
	}
	if QuarrySolid(30, 7, 64, 0.5) {
		t.Error("y=30 noise=0.5 should be empty")
	}
}

func TestFlatBoundaries(t *testing.T) {
	for _, n := range noiseProbes {
		if !FlatSolid(8, 8, 24, n) {
			t.Errorf("y=8 must be solid for noise %v", n)
		}
		if FlatSolid(24, 8, 24, n) {
			t.Errorf("y=24 must be empty for noise %v", n)
		}
	}
	// y=16 sits at height fraction 0.5
	if !FlatSolid(16, 8, 24, 0.6) || FlatSolid(16, 8, 24, 0.4) || FlatSolid(16, 8, 24, 0.5) {
		t.Error("flat rule must compare noise strictly against the height fraction")
	}
}

func TestMountainRule(t *testing.T) {
	for _, y := range []int{0, -1, -100} {
		if !MountainSolid(y, 64, 0) {
			t.Errorf("y=%d must always be solid", y)
		}
	}
	// log(1) = 0
	if MountainSolid(1, 64, 0) || !MountainSolid(1, 64, 0.01) {
		t.Error("y=1 should be solid for any positive noise")
	}
	// log(64)/log(64) = 1 and normalized noise never exceeds 1
	for _, n := range noiseProbes {
		if MountainSolid(64, 64, n) {
			t.Errorf("y=64 must be empty for noise %v", n)
		}
	}
}

type constNoise float64

func (c constNoise) Sample2D(x, z float64) float64    { return float64(c) }
func (c constNoise) Sample3D(x, y, z float64) float64 { return float64(c) }

func TestTerrainRulesDispatch(t *testing.T) {
	d := config.DefaultWorldGen()
	// raw 0 normalizes to 0.5
	tr := NewTerrainRules(constNoise(0), d.Flat, d.Mountain, d.Quarry)

	cases := []struct {
		biome BiomeType
		y     int
		want  bool
	}{
		{BiomeFlat, 15, true},      // fraction 7/16 < 0.5
		{BiomeFlat, 17, false},     // fraction 9/16 > 0.5
		{BiomeMountains, 7, true},  // log64(7) ~ 0.468
		{BiomeMountains, 9, false}, // log64(9) ~ 0.528
		{BiomeQuarry, 28, true},    // 28 < 28.5
		{BiomeQuarry, 29, false},
	}
	for _, c := range cases {
		if got := tr.Solid(c.biome, Vec3i{X: 3, Y: c.y, Z: -4}); got != c.want {
			t.Errorf("%v at y=%d: got %v, want %v", c.biome, c.y, got, c.want)
		}
	}
}

func TestTerrainRulesUnknownBiomePanics(t *testing.T) {
	d := config.DefaultWorldGen()
	tr := NewTerrainRules(constNoise(0), d.Flat, d.Mountain, d.Quarry)
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrInvariantViolation) {
			t.Fatalf("want ErrInvariantViolation panic, got %v", err)
		}
	}()
	tr.Solid(BiomeType(99), Vec3i{})
}

func TestMaxSolidHeight(t *testing.T) {
	d := config.DefaultWorldGen()
	tr := NewTerrainRules(constNoise(1), d.Flat, d.Mountain, d.Quarry)
	h := tr.MaxSolidHeight()
	if h != 64 {
		t.Fatalf("MaxSolidHeight = %d, want 64", h)
	}
	for _, b := range []BiomeType{BiomeFlat, BiomeMountains, BiomeQuarry} {
		for y := h; y < h+40; y++ {
			if tr.Solid(b, Vec3i{Y: y}) {
				t.Fatalf("%v solid at y=%d above MaxSolidHeight", b, y)
			}
		}
	}
}
