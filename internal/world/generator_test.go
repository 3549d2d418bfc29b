package world

import (
	"errors"
	"math"
	"testing"

	"voxelgen/internal/config"
)

func TestGenerateRejectsInvalidSize(t *testing.T) {
	g := newTestGenerator(t, nil)
	for _, size := range []Vec3i{{0, 32, 32}, {32, 0, 32}, {32, 32, 0}, {-1, 4, 4}, {4, 4, -8}} {
		c, err := g.Generate(Vec3i{}, size)
		if c != nil {
			t.Errorf("size %v: got a chunk", size)
		}
		if !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("size %v: want ErrInvalidChunkSize, got %v", size, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "size" {
			t.Errorf("size %v: want ConfigError on size, got %v", size, err)
		}
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	tests := map[string]func(*config.WorldGen){
		"chunk size": func(c *config.WorldGen) { c.ChunkSize = [3]int{16, 0, 16} },
		"biome":      func(c *config.WorldGen) { c.Biome.Slots = []config.BiomeSlot{{Type: "desert", Weight: 1}} },
		"weight":     func(c *config.WorldGen) { c.Biome.Slots[0].Weight = 0 },
		"backend":    func(c *config.WorldGen) { c.Noise.Backend = "value" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultWorldGen()
			mutate(&cfg)
			_, err := NewGenerator(cfg, discardLogger())
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("want ConfigError, got %v", err)
			}
		})
	}
}

// TestGenerateDeterminism verifies same seed produces identical chunks
func TestGenerateDeterminism(t *testing.T) {
	for _, backend := range []string{config.NoiseSimplex, config.NoisePerlin} {
		t.Run(backend, func(t *testing.T) {
			setBackend := func(c *config.WorldGen) { c.Noise.Backend = backend }
			a := newTestGenerator(t, setBackend)
			b := newTestGenerator(t, setBackend)
			for _, loc := range []Vec3i{{0, 0, 0}, {-1, 0, 2}, {3, 1, -4}} {
				ca, err := a.GenerateChunk(loc)
				if err != nil {
					t.Fatal(err)
				}
				cb, err := b.GenerateChunk(loc)
				if err != nil {
					t.Fatal(err)
				}
				if hashChunkVoxels(ca) != hashChunkVoxels(cb) {
					t.Fatalf("chunk %v differs between identical generators", loc)
				}
				// regenerate with the same generator
				again, _ := a.GenerateChunk(loc)
				if hashChunkVoxels(ca) != hashChunkVoxels(again) {
					t.Fatalf("chunk %v differs between runs", loc)
				}
			}
		})
	}
}

func TestGenerateSeedChangesTerrain(t *testing.T) {
	a := newTestGenerator(t, func(c *config.WorldGen) { c.Seed = 1 })
	b := newTestGenerator(t, func(c *config.WorldGen) { c.Seed = 2 })
	ca, _ := a.GenerateChunk(Vec3i{})
	cb, _ := b.GenerateChunk(Vec3i{})
	if hashChunkVoxels(ca) == hashChunkVoxels(cb) {
		t.Fatal("different seeds produced the same chunk")
	}
}

func TestGenerateMatchesVoxelRule(t *testing.T) {
	g := newTestGenerator(t, nil)
	loc := Vec3i{2, 0, -3}
	c, err := g.Generate(loc, Vec3i{8, 40, 8})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < c.Len(); i++ {
		local := IndexToXYZ(i, c.Size())
		if got, want := c.VoxelAt(i).Solid, g.GenerateVoxel(c.Global(local)); got != want {
			t.Fatalf("voxel %v: chunk=%v rule=%v", local, got, want)
		}
	}
}

// Neighbour queries across a chunk face must agree with the neighbouring chunk.
func TestCrossChunkConsistency(t *testing.T) {
	g := newTestGenerator(t, nil)
	size := Vec3i{16, 16, 16}
	a, err := g.Generate(Vec3i{0, 0, 0}, size)
	if err != nil {
		t.Fatal(err)
	}
	neighbours := map[Vec3i]func(y, w int) (Vec3i, Vec3i){
		// location of neighbour: maps (y, w) -> (local in a beyond the face, local in neighbour)
		{1, 0, 0}:  func(y, w int) (Vec3i, Vec3i) { return Vec3i{16, y, w}, Vec3i{0, y, w} },
		{-1, 0, 0}: func(y, w int) (Vec3i, Vec3i) { return Vec3i{-1, y, w}, Vec3i{15, y, w} },
		{0, 0, 1}:  func(y, w int) (Vec3i, Vec3i) { return Vec3i{w, y, 16}, Vec3i{w, y, 0} },
		{0, 0, -1}: func(y, w int) (Vec3i, Vec3i) { return Vec3i{w, y, -1}, Vec3i{w, y, 15} },
		{0, 1, 0}:  func(y, w int) (Vec3i, Vec3i) { return Vec3i{w, 16, y}, Vec3i{w, 0, y} },
		{0, -1, 0}: func(y, w int) (Vec3i, Vec3i) { return Vec3i{w, -1, y}, Vec3i{w, 15, y} },
	}
	for loc, pair := range neighbours {
		b, err := g.Generate(loc, size)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 16; y++ {
			for w := 0; w < 16; w++ {
				outside, inside := pair(y, w)
				want := b.Voxel(inside).Solid
				if got := g.GenerateVoxelInLocalSpace(a, outside); got != want {
					t.Fatalf("neighbour %v at %v: GenerateVoxelInLocalSpace=%v chunk=%v", loc, outside, got, want)
				}
				if got := a.Solid(outside); got != want {
					t.Fatalf("neighbour %v at %v: Solid=%v chunk=%v", loc, outside, got, want)
				}
			}
		}
	}
}

func TestHighChunkIsEmpty(t *testing.T) {
	g := newTestGenerator(t, nil)
	c, err := g.GenerateChunk(Vec3i{0, 10, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsEmpty() {
		t.Fatal("chunk far above the terrain should be empty")
	}
	// the skipped evaluation must agree with the rule
	for _, p := range []Vec3i{{0, 0, 0}, {5, 31, 7}, {31, 12, 31}} {
		if g.GenerateVoxel(c.Global(p)) {
			t.Fatalf("rule reports solid at %v", c.Global(p))
		}
	}
}

func TestLowChunkIsFull(t *testing.T) {
	g := newTestGenerator(t, nil)
	// every biome is solid at y <= 0
	c, err := g.GenerateChunk(Vec3i{0, -1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if c.SolidCount() != c.Len() {
		t.Fatalf("solid %d of %d", c.SolidCount(), c.Len())
	}
}

type nanNoise struct{}

func (nanNoise) Sample2D(x, z float64) float64    { return math.NaN() }
func (nanNoise) Sample3D(x, y, z float64) float64 { return math.NaN() }

func TestGenerateRecoversInvariantViolation(t *testing.T) {
	g, err := NewGeneratorWithNoise(config.DefaultWorldGen(), nanNoise{}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	c, err := g.Generate(Vec3i{}, Vec3i{4, 4, 4})
	if c != nil {
		t.Fatal("aborted job returned a chunk")
	}
	if !errors.Is(err, ErrInvariantViolation) || !errors.Is(err, ErrBiomeLookup) {
		t.Fatalf("want ErrInvariantViolation wrapping ErrBiomeLookup, got %v", err)
	}

	// a healthy generator is unaffected
	ok := newTestGenerator(t, nil)
	if _, err := ok.Generate(Vec3i{}, Vec3i{4, 4, 4}); err != nil {
		t.Fatal(err)
	}
}

func TestBlendedGeneration(t *testing.T) {
	blend := func(c *config.WorldGen) { c.Biome.Blend = true }
	a := newTestGenerator(t, blend)
	b := newTestGenerator(t, blend)
	ca, err := a.GenerateChunk(Vec3i{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	cb, _ := b.GenerateChunk(Vec3i{1, 0, 1})
	if hashChunkVoxels(ca) != hashChunkVoxels(cb) {
		t.Fatal("blended generation is not deterministic")
	}
	for x := -40; x < 40; x += 7 {
		for z := -40; z < 40; z += 5 {
			if !a.GenerateVoxel(Vec3i{x, 0, z}) {
				t.Fatalf("(%d,0,%d): every rule is solid at y=0", x, z)
			}
			if a.GenerateVoxel(Vec3i{x, 64, z}) {
				t.Fatalf("(%d,64,%d): every rule is empty at y=64", x, z)
			}
		}
	}
}

func TestBiomeAtIsColumnwise(t *testing.T) {
	g := newTestGenerator(t, nil)
	for x := -100; x < 100; x += 13 {
		for z := -100; z < 100; z += 17 {
			got := g.BiomeAt(x, z)
			if got != g.BiomeAt(x, z) {
				t.Fatalf("BiomeAt(%d,%d) not deterministic", x, z)
			}
		}
	}
}

func BenchmarkGenerateChunk(b *testing.B) {
	g := newTestGenerator(b, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.GenerateChunk(Vec3i{X: i % 8, Z: i / 8 % 8}); err != nil {
			b.Fatal(err)
		}
	}
}
