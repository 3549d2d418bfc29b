package world

import "testing"

func TestIndexBijection(t *testing.T) {
	sizes := []Vec3i{{1, 1, 1}, {3, 5, 7}, {32, 32, 32}, {32, 64, 32}, {4, 8, 2}}
	for _, size := range sizes {
		for i := 0; i < size.Volume(); i++ {
			p := IndexToXYZ(i, size)
			if !InBounds(p, size) {
				t.Fatalf("size %v: IndexToXYZ(%d) = %v out of bounds", size, i, p)
			}
			if got := XYZToIndex(p, size); got != i {
				t.Fatalf("size %v: XYZToIndex(IndexToXYZ(%d)) = %d", size, i, got)
			}
		}
		for z := 0; z < size.Z; z++ {
			for y := 0; y < size.Y; y++ {
				for x := 0; x < size.X; x++ {
					p := Vec3i{x, y, z}
					if got := IndexToXYZ(XYZToIndex(p, size), size); got != p {
						t.Fatalf("size %v: IndexToXYZ(XYZToIndex(%v)) = %v", size, p, got)
					}
				}
			}
		}
	}
}

func TestIndexLayout(t *testing.T) {
	size := Vec3i{32, 32, 32}
	cases := map[Vec3i]int{
		{0, 0, 0}:    0,
		{1, 0, 0}:    1,
		{0, 1, 0}:    32,
		{0, 0, 1}:    1024,
		{31, 31, 31}: 32767,
	}
	for p, want := range cases {
		if got := XYZToIndex(p, size); got != want {
			t.Errorf("XYZToIndex(%v) = %d, want %d", p, got, want)
		}
	}
	if got := XYZToIndex(Vec3i{3, 7, 1}, Vec3i{4, 8, 2}); got != 63 {
		t.Errorf("non-cubic last index = %d, want 63", got)
	}
}

func TestGlobalLocalConversion(t *testing.T) {
	size := Vec3i{16, 32, 16}
	cases := []struct {
		global, chunk, local Vec3i
	}{
		{Vec3i{0, 0, 0}, Vec3i{0, 0, 0}, Vec3i{0, 0, 0}},
		{Vec3i{-1, -1, -1}, Vec3i{-1, -1, -1}, Vec3i{15, 31, 15}},
		{Vec3i{16, 32, 17}, Vec3i{1, 1, 1}, Vec3i{0, 0, 1}},
		{Vec3i{-17, 5, -16}, Vec3i{-2, 0, -1}, Vec3i{15, 5, 0}},
	}
	for _, c := range cases {
		if got := GlobalToChunk(c.global, size); got != c.chunk {
			t.Errorf("GlobalToChunk(%v) = %v, want %v", c.global, got, c.chunk)
		}
		if got := GlobalToLocal(c.global, size); got != c.local {
			t.Errorf("GlobalToLocal(%v) = %v, want %v", c.global, got, c.local)
		}
		if got := LocalToGlobal(c.chunk, size, c.local); got != c.global {
			t.Errorf("LocalToGlobal(%v, %v) = %v, want %v", c.chunk, c.local, got, c.global)
		}
	}
	// local coordinates outside the chunk map straight into the neighbour
	if got := LocalToGlobal(Vec3i{1, 0, 0}, size, Vec3i{-1, 0, 16}); got != (Vec3i{15, 0, 16}) {
		t.Errorf("out-of-range local mapped to %v", got)
	}
}
