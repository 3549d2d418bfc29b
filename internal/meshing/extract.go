package meshing

import (
	"voxelgen/internal/profiling"
	"voxelgen/internal/world"
)

// Extract emits one quad per exposed face of every solid voxel, in voxel index
// order and Directions order within a voxel. Vertex positions are chunk-local;
// add chunk.WorldOrigin() to place them in the world.
//
// A face is exposed when the neighbour across it is empty. Neighbours outside
// the chunk are resolved through the chunk's sampler, never by reading another
// chunk. The top face of the highest layer is always exposed.
func Extract(c *world.Chunk) []VoxelQuad {
	if c == nil || c.IsEmpty() {
		return nil
	}
	defer profiling.Track("meshing.Extract")()

	size := c.Size()
	quads := make([]VoxelQuad, 0, c.SolidCount())
	for i := 0; i < c.Len(); i++ {
		if !c.VoxelAt(i).Solid {
			continue
		}
		local := world.IndexToXYZ(i, size)
		global := c.Global(local)
		origin := QuadOrigin(local)
		for _, d := range Directions {
			if !faceExposed(c, local, d) {
				continue
			}
			quads = append(quads, VoxelQuad{Quad: NewQuad(origin, d), Voxel: global})
		}
	}
	return quads
}

func faceExposed(c *world.Chunk, local world.Vec3i, d Direction) bool {
	// height ceiling
	if d == Top && local.Y == c.Size().Y-1 {
		return true
	}
	return !c.Solid(local.Add(d.Offset()))
}

// CountFaces returns the number of quads Extract would emit without building them.
func CountFaces(c *world.Chunk) int {
	if c == nil || c.IsEmpty() {
		return 0
	}
	n := 0
	size := c.Size()
	for i := 0; i < c.Len(); i++ {
		if !c.VoxelAt(i).Solid {
			continue
		}
		local := world.IndexToXYZ(i, size)
		for _, d := range Directions {
			if faceExposed(c, local, d) {
				n++
			}
		}
	}
	return n
}
