package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3i is an integer 3D coordinate. Y is world-up.
// It is used for chunk locations, chunk sizes, chunk-local and global voxel positions.
type Vec3i struct {
	X, Y, Z int
}

// Add returns v + o component-wise.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Mul returns v * o component-wise.
func (v Vec3i) Mul(o Vec3i) Vec3i {
	return Vec3i{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

// Volume returns X*Y*Z.
func (v Vec3i) Volume() int {
	return v.X * v.Y * v.Z
}

// Vec3 converts to a float vector.
func (v Vec3i) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// XYZToIndex converts chunk-local coordinates into the linear voxel index.
// X varies fastest, then Y, then Z.
func XYZToIndex(p Vec3i, size Vec3i) int {
	return p.X + p.Y*size.X + p.Z*size.X*size.Y
}

// IndexToXYZ is the exact inverse of XYZToIndex for i in [0, size.Volume()).
func IndexToXYZ(i int, size Vec3i) Vec3i {
	layer := size.X * size.Y
	z := i / layer
	rem := i - z*layer
	return Vec3i{X: rem % size.X, Y: rem / size.X, Z: z}
}

// InBounds reports whether p lies in [0, size) on every axis.
func InBounds(p Vec3i, size Vec3i) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.X < size.X && p.Y < size.Y && p.Z < size.Z
}

// LocalToGlobal maps a chunk-local coordinate to a global one: location*size + local.
// local may lie outside [0, size).
func LocalToGlobal(location, size, local Vec3i) Vec3i {
	return location.Mul(size).Add(local)
}

// GlobalToChunk returns the location of the chunk containing the global coordinate.
func GlobalToChunk(global, size Vec3i) Vec3i {
	return Vec3i{
		X: floorDiv(global.X, size.X),
		Y: floorDiv(global.Y, size.Y),
		Z: floorDiv(global.Z, size.Z),
	}
}

// GlobalToLocal returns the chunk-local coordinate of a global coordinate.
func GlobalToLocal(global, size Vec3i) Vec3i {
	return Vec3i{
		X: mod(global.X, size.X),
		Y: mod(global.Y, size.Y),
		Z: mod(global.Z, size.Z),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
