package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LineVertices returns four segments of length 2*size, in the Y plane at
// height vertical: two parallel to Z at x = ±horizontal, then two parallel
// to X at z = ±horizontal.
func LineVertices(size, horizontal, vertical float32) [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{horizontal, vertical, size},
		{horizontal, vertical, -size},
		{-horizontal, vertical, size},
		{-horizontal, vertical, -size},
		{size, vertical, horizontal},
		{-size, vertical, horizontal},
		{size, vertical, -horizontal},
		{-size, vertical, -horizontal},
	}
}

// MainGridVertices builds the main grid lines in the alignment's plane and
// returns them with the grid's half size. The centre lines are left to the
// axis meshes.
func MainGridVertices(grid Grid, alignment GridAlignment) ([]mgl32.Vec3, float32) {
	size := grid.HalfSize()
	if grid.Count <= 0 {
		return []mgl32.Vec3{}, size
	}

	vertices := make([]mgl32.Vec3, 0, 8*grid.Count)
	for i := 0; i < grid.Count; i++ {
		offset := float32(i+1) * grid.Spacing
		for _, v := range LineVertices(size, offset, 0) {
			vertices = append(vertices, alignment.Shift(v))
		}
	}
	return vertices, size
}

// SubGridVertices builds sub.Count lines inside every main grid cell,
// lowered by SubGridVerticalOffset along the grid's normal.
func SubGridVertices(grid Grid, sub SubGrid, alignment GridAlignment) []mgl32.Vec3 {
	if grid.Count <= 0 || sub.Count <= 0 {
		return []mgl32.Vec3{}
	}

	size := grid.HalfSize()
	subSpacing := SubGridSpacing(grid, sub)

	vertices := make([]mgl32.Vec3, 0, 8*grid.Count*sub.Count)
	for i := 0; i < grid.Count; i++ {
		for k := 0; k < sub.Count; k++ {
			offset := float32(k)*subSpacing + (float32(i)*grid.Spacing + subSpacing)
			for _, v := range LineVertices(size, offset, SubGridVerticalOffset) {
				vertices = append(vertices, alignment.Shift(v))
			}
		}
	}
	return vertices
}

// SubGridSpacing is the distance between neighbouring sub-grid lines.
func SubGridSpacing(grid Grid, sub SubGrid) float32 {
	return grid.Spacing / float32(sub.Count+1)
}

// SingleAxisVertices is one segment through the origin along the
// alignment's normal, from +size to -size.
func SingleAxisVertices(size float32, alignment GridAlignment) [2]mgl32.Vec3 {
	return [2]mgl32.Vec3{
		alignment.Shift(mgl32.Vec3{0, size, 0}),
		alignment.Shift(mgl32.Vec3{0, -size, 0}),
	}
}

// AxesVertices concatenates the single axes for each alignment, in order.
func AxesVertices(size float32, alignments []GridAlignment) []mgl32.Vec3 {
	vertices := make([]mgl32.Vec3, 0, 2*len(alignments))
	for _, alignment := range alignments {
		axis := SingleAxisVertices(size, alignment)
		vertices = append(vertices, axis[:]...)
	}
	return vertices
}

// TrackedGridVertices is the mesh of a tracked grid's main child: the main
// grid plus its two centre lines, all in the alignment's plane. The clipped
// material colours the centre lines per axis.
func TrackedGridVertices(grid Grid, alignment GridAlignment) ([]mgl32.Vec3, float32) {
	vertices, size := MainGridVertices(grid, alignment)
	for _, axis := range []GridAlignment{AlignX, AlignZ} {
		for _, v := range SingleAxisVertices(size, axis) {
			vertices = append(vertices, alignment.Shift(v))
		}
	}
	return vertices, size
}
