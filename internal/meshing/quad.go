package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelgen/internal/world"
)

// Direction is the outward facing of a voxel face.
type Direction uint8

// Faces are examined in this order for every solid voxel.
const (
	Front  Direction = iota // -X
	Back                    // +X
	Bottom                  // -Y
	Top                     // +Y
	Left                    // -Z
	Right                   // +Z
)

// Directions lists every face direction in emit order.
var Directions = [6]Direction{Front, Back, Bottom, Top, Left, Right}

var directionNames = [6]string{"front", "back", "bottom", "top", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Offset returns the local step to the neighbour across this face.
func (d Direction) Offset() world.Vec3i {
	switch d {
	case Front:
		return world.Vec3i{X: -1}
	case Back:
		return world.Vec3i{X: 1}
	case Bottom:
		return world.Vec3i{Y: -1}
	case Top:
		return world.Vec3i{Y: 1}
	case Left:
		return world.Vec3i{Z: -1}
	case Right:
		return world.Vec3i{Z: 1}
	}
	panic(fmt.Sprintf("meshing: invalid direction %d", uint8(d)))
}

// Normal returns the outward unit normal in quad space.
func (d Direction) Normal() mgl32.Vec3 {
	return QuadOrigin(d.Offset())
}

// Vertex is one corner of a triangle.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Quad is a unit face as two counter-clockwise triangles seen from outside:
// corners (c0, c1, c2) and (c0, c2, c3).
type Quad struct {
	Vertices  [6]Vertex
	Direction Direction
}

// Min returns the component-wise lowest vertex position.
func (q Quad) Min() mgl32.Vec3 {
	m := q.Vertices[0].Position
	for _, v := range q.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < m[i] {
				m[i] = v.Position[i]
			}
		}
	}
	return m
}

// VoxelQuad tags a quad with the global coordinate of the voxel it came from.
type VoxelQuad struct {
	Quad
	Voxel world.Vec3i
}

// QuadOrigin maps a chunk-local voxel coordinate to the quad-space position of
// its minimum corner. Voxel storage and quad space share the same axes:
// X east, Y up, Z south.
func QuadOrigin(local world.Vec3i) mgl32.Vec3 {
	return local.Vec3()
}

type corner struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}

// Unit-cube corners per face, counter-clockwise seen from outside.
var faceCorners = [6][4]corner{
	Front: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
	},
	Back: {
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 1}},
	},
	Bottom: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 1}},
	},
	Top: {
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}},
	},
	Left: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 1}},
	},
	Right: {
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 0}},
	},
}

// triangle corner order for the two triangles of a quad
var quadIndices = [6]int{0, 1, 2, 0, 2, 3}

// NewQuad builds the unit quad for face d of the voxel whose minimum corner is at origin.
func NewQuad(origin mgl32.Vec3, d Direction) Quad {
	corners := &faceCorners[d]
	n := d.Normal()
	q := Quad{Direction: d}
	for i, ci := range quadIndices {
		c := corners[ci]
		q.Vertices[i] = Vertex{
			Position: origin.Add(c.pos),
			Normal:   n,
			UV:       c.uv,
		}
	}
	return q
}
