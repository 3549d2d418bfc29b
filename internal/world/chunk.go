package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Voxel is a single unit cube. It is immutable once computed.
type Voxel struct {
	Solid bool
}

// VoxelSampler resolves solidity of any global coordinate without materializing its chunk.
type VoxelSampler interface {
	GenerateVoxel(global Vec3i) bool
}

// Chunk is a dense cuboid of voxels at an integer chunk-grid location.
// voxels[i] holds the voxel at IndexToXYZ(i, size).
type Chunk struct {
	location Vec3i
	size     Vec3i
	voxels   []Voxel
	solid    int
	sampler  VoxelSampler
}

// NewChunk wraps existing voxel data. sampler answers neighbour queries outside
// the chunk bounds; a nil sampler treats everything outside as empty.
func NewChunk(location, size Vec3i, voxels []Voxel, sampler VoxelSampler) (*Chunk, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if len(voxels) != size.Volume() {
		return nil, &ConfigError{Field: "voxels", Value: len(voxels), Err: fmt.Errorf("%w: want %d", ErrInvalidVoxelData, size.Volume())}
	}
	c := &Chunk{
		location: location,
		size:     size,
		voxels:   voxels,
		sampler:  sampler,
	}
	for _, v := range voxels {
		if v.Solid {
			c.solid++
		}
	}
	return c, nil
}

// WithSampler returns a copy sharing the voxel data that resolves
// out-of-bounds neighbours through s.
func (c *Chunk) WithSampler(s VoxelSampler) *Chunk {
	cp := *c
	cp.sampler = s
	return &cp
}

// Location returns the chunk-grid coordinate (not world units).
func (c *Chunk) Location() Vec3i { return c.location }

// Size returns voxels per axis.
func (c *Chunk) Size() Vec3i { return c.size }

// Len returns the number of voxel slots.
func (c *Chunk) Len() int { return len(c.voxels) }

// IsEmpty reports whether the chunk holds no solid voxel at all.
func (c *Chunk) IsEmpty() bool { return c.solid == 0 }

// SolidCount returns the number of solid voxels.
func (c *Chunk) SolidCount() int { return c.solid }

// VoxelAt returns the voxel at linear index i. Out of range is a programming error and panics.
func (c *Chunk) VoxelAt(i int) Voxel {
	return c.voxels[i]
}

// Voxel returns the voxel at an in-bounds local coordinate. Out of bounds panics.
func (c *Chunk) Voxel(local Vec3i) Voxel {
	if !InBounds(local, c.size) {
		panic(fmt.Sprintf("world: local coordinate %v outside chunk size %v", local, c.size))
	}
	return c.voxels[XYZToIndex(local, c.size)]
}

// Solid reports solidity at a local coordinate that may lie outside the chunk.
// Outside coordinates are resolved through the sampler.
func (c *Chunk) Solid(local Vec3i) bool {
	if InBounds(local, c.size) {
		return c.voxels[XYZToIndex(local, c.size)].Solid
	}
	return c.NeighborSolid(local)
}

// NeighborSolid resolves a local coordinate via the sampler, ignoring the chunk's own data.
func (c *Chunk) NeighborSolid(local Vec3i) bool {
	if c.sampler == nil {
		return false
	}
	return c.sampler.GenerateVoxel(c.Global(local))
}

// Global converts a local coordinate of this chunk to a global one.
func (c *Chunk) Global(local Vec3i) Vec3i {
	return LocalToGlobal(c.location, c.size, local)
}

// WorldOrigin is the world-space position of the chunk's local (0,0,0) corner.
func (c *Chunk) WorldOrigin() mgl32.Vec3 {
	return c.location.Mul(c.size).Vec3()
}
