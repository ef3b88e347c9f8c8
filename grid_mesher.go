package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// A mesher pass regenerates one kind of generated child for every grid
// whose inputs changed since the pass last ran. Old children of that kind
// are despawned and fresh ones spawned in the same stage, so the live child
// count never grows.
type gridMesherFn = func(*Commands, *AssetServer, *GridChildren)

// meshPass remembers the change tick a pass last ran at.
type meshPass struct {
	lastTick uint64
}

// begin returns the tick to compare against and moves the window forward.
func (p *meshPass) begin(cmd *Commands) uint64 {
	since := p.lastTick
	p.lastTick = cmd.ChangeTick()
	return since
}

func removedSet[T any](cmd *Commands, since uint64) set[EntityId] {
	res := make(set[EntityId])
	for _, eid := range RemovedSince[T](cmd, since) {
		res[eid] = struct{}{}
	}
	return res
}

func contains(s set[EntityId], eid EntityId) bool {
	_, ok := s[eid]
	return ok
}

// layersDirty reports a render layer change that must be copied to children.
func layersDirty(cmd *Commands, eid EntityId, since uint64, layersRemoved set[EntityId]) bool {
	return ChangedSince[RenderLayers](cmd, eid, since) || contains(layersRemoved, eid)
}

type gridChildSpec struct {
	marker   any
	parented bool
	position mgl32.Vec3
	vertices []mgl32.Vec3
	material MaterialAsset
}

// spawnGridChild queues a generated child for owner. The child copies the
// owner's RenderLayers, if any.
func spawnGridChild(cmd *Commands, assets *AssetServer, owner EntityId, spec gridChildSpec) EntityId {
	local := NewLocalTransform(spec.position)
	world := NewTransform(spec.position)

	components := []any{
		spec.marker,
		VisibilityComponent{Visible: true},
		NotShadowCaster{},
		MeshComponent{Mesh: assets.AddMesh(NewLineListMesh(spec.vertices))},
		MaterialComponent{Material: assets.AddMaterial(spec.material)},
	}
	if spec.parented {
		components = append(components, Parent{Entity: owner})
		if ownerWorld, ok := GetComponent[TransformComponent](cmd, owner); ok {
			world = composeTransform(*ownerWorld, local)
		}
	}
	components = append(components, local, world)
	if layers, ok := GetComponent[RenderLayers](cmd, owner); ok {
		components = append(components, *layers)
	}

	return cmd.AddEntity(components...)
}

// untrackedGridMesher meshes grids without TrackedGrid in the Y plane with a
// flat colour.
func untrackedGridMesher() gridMesherFn {
	var pass meshPass
	return func(cmd *Commands, assets *AssetServer, children *GridChildren) {
		since := pass.begin(cmd)
		untracked := removedSet[TrackedGrid](cmd, since)
		layersRemoved := removedSet[RenderLayers](cmd, since)
		logger := cmd.Logger()

		MakeQuery1[Grid](cmd).Without(TrackedGrid{}).Map(func(eid EntityId, grid *Grid) bool {
			if !ChangedSince[Grid](cmd, eid, since) &&
				!contains(untracked, eid) &&
				!layersDirty(cmd, eid, since, layersRemoved) {
				return true
			}

			vertices, _ := MainGridVertices(*grid, AlignY)
			children.DespawnChildren(cmd, eid, ChildKindGrid)
			child := spawnGridChild(cmd, assets, eid, gridChildSpec{
				marker:   GridChild{},
				parented: true,
				vertices: vertices,
				material: NewSimpleLineMaterial(grid.Color, grid.AlphaMode).Asset(),
			})
			children.Record(eid, ChildKindGrid, child)

			logger.Debugf("meshed grid %d: %d vertices", eid, len(vertices))
			return true
		})
	}
}

// trackedGridMesher meshes tracked grids with a clipped material. The main
// child moves with the grid; an axis with its own colour along the tracked
// alignment gets a second child that stays at the world origin.
func trackedGridMesher() gridMesherFn {
	var pass meshPass
	return func(cmd *Commands, assets *AssetServer, children *GridChildren) {
		since := pass.begin(cmd)
		axisRemoved := removedSet[GridAxis](cmd, since)
		layersRemoved := removedSet[RenderLayers](cmd, since)
		logger := cmd.Logger()

		MakeQuery2[Grid, TrackedGrid](cmd).Map(func(eid EntityId, grid *Grid, tracked *TrackedGrid) bool {
			if !ChangedSince[Grid](cmd, eid, since) &&
				!ChangedSince[TrackedGrid](cmd, eid, since) &&
				!ChangedSince[GridAxis](cmd, eid, since) &&
				!contains(axisRemoved, eid) &&
				!layersDirty(cmd, eid, since, layersRemoved) {
				return true
			}

			axis, _ := GetComponent[GridAxis](cmd, eid)
			vertices, size := TrackedGridVertices(*grid, tracked.Alignment)
			radius := size - grid.Spacing

			children.DespawnChildren(cmd, eid, ChildKindGrid)
			// Axis lines of an untracked grid are drawn by the main child now
			if n := children.DespawnChildren(cmd, eid, ChildKindAxis); n > 0 {
				logger.Debugf("grid %d became tracked, dropped %d axis children", eid, n)
			}

			main := spawnGridChild(cmd, assets, eid, gridChildSpec{
				marker:   GridChild{},
				parented: true,
				vertices: vertices,
				material: NewClippedLineMaterial(grid.Color, grid.AlphaMode, tracked.Alignment, radius, tracked.Offset, axis).Asset(),
			})
			children.Record(eid, ChildKindGrid, main)

			if axis != nil {
				if color, ok := axis.ColorFor(tracked.Alignment); ok {
					line := SingleAxisVertices(size, tracked.Alignment)
					origin := spawnGridChild(cmd, assets, eid, gridChildSpec{
						marker:   GridChild{},
						vertices: line[:],
						material: NewClippedLineMaterial(color, grid.AlphaMode, tracked.Alignment, radius, tracked.Offset, nil).Asset(),
					})
					children.Record(eid, ChildKindGrid, origin)
				}
			}

			logger.Debugf("meshed tracked grid %d: %d vertices, radius %g", eid, len(vertices), radius)
			return true
		})
	}
}

// subGridMesher meshes sub-grids in the plane of their grid, clipped when
// the grid is tracked.
func subGridMesher() gridMesherFn {
	var pass meshPass
	return func(cmd *Commands, assets *AssetServer, children *GridChildren) {
		since := pass.begin(cmd)
		untracked := removedSet[TrackedGrid](cmd, since)
		layersRemoved := removedSet[RenderLayers](cmd, since)
		logger := cmd.Logger()

		MakeQuery2[Grid, SubGrid](cmd).Map(func(eid EntityId, grid *Grid, sub *SubGrid) bool {
			if !ChangedSince[Grid](cmd, eid, since) &&
				!ChangedSince[SubGrid](cmd, eid, since) &&
				!ChangedSince[TrackedGrid](cmd, eid, since) &&
				!contains(untracked, eid) &&
				!layersDirty(cmd, eid, since, layersRemoved) {
				return true
			}

			alignment := AlignY
			var material MaterialAsset
			if tracked, ok := GetComponent[TrackedGrid](cmd, eid); ok {
				alignment = tracked.Alignment
				radius := grid.HalfSize() - grid.Spacing
				material = NewClippedLineMaterial(sub.Color, grid.AlphaMode, alignment, radius, tracked.Offset, nil).Asset()
			} else {
				material = NewSimpleLineMaterial(sub.Color, grid.AlphaMode).Asset()
			}

			vertices := SubGridVertices(*grid, *sub, alignment)
			children.DespawnChildren(cmd, eid, ChildKindSubGrid)
			child := spawnGridChild(cmd, assets, eid, gridChildSpec{
				marker:   SubGridChild{},
				parented: true,
				position: alignment.Shift(mgl32.Vec3{0, -SubGridVerticalOffset, 0}),
				vertices: vertices,
				material: material,
			})
			children.Record(eid, ChildKindSubGrid, child)

			logger.Debugf("meshed sub-grid %d: %d vertices", eid, len(vertices))
			return true
		})
	}
}

// gridAxisMesher meshes the axis lines of untracked grids. Axes with their
// own colour get one child each; the remaining default axes share a child in
// the grid's colour.
func gridAxisMesher() gridMesherFn {
	var pass meshPass
	return func(cmd *Commands, assets *AssetServer, children *GridChildren) {
		since := pass.begin(cmd)
		axisRemoved := removedSet[GridAxis](cmd, since)
		untracked := removedSet[TrackedGrid](cmd, since)
		layersRemoved := removedSet[RenderLayers](cmd, since)
		logger := cmd.Logger()

		MakeQuery1[Grid](cmd).Without(TrackedGrid{}).Map(func(eid EntityId, grid *Grid) bool {
			if !ChangedSince[Grid](cmd, eid, since) &&
				!ChangedSince[GridAxis](cmd, eid, since) &&
				!contains(axisRemoved, eid) &&
				!contains(untracked, eid) &&
				!layersDirty(cmd, eid, since, layersRemoved) {
				return true
			}

			children.DespawnChildren(cmd, eid, ChildKindAxis)
			size := grid.HalfSize()

			common := DefaultAxes()
			if axis, ok := GetComponent[GridAxis](cmd, eid); ok {
				var used []AxisColor
				used, common = axis.CreateAxis()
				for _, u := range used {
					line := SingleAxisVertices(size, u.Alignment)
					child := spawnGridChild(cmd, assets, eid, gridChildSpec{
						marker:   GridAxisChild{},
						parented: true,
						vertices: line[:],
						material: NewSimpleLineMaterial(u.Color, grid.AlphaMode).Asset(),
					})
					children.Record(eid, ChildKindAxis, child)
				}
			}

			if len(common) > 0 {
				child := spawnGridChild(cmd, assets, eid, gridChildSpec{
					marker:   GridAxisChild{},
					parented: true,
					vertices: AxesVertices(size, common),
					material: NewSimpleLineMaterial(grid.Color, grid.AlphaMode).Asset(),
				})
				children.Record(eid, ChildKindAxis, child)
			}

			logger.Debugf("meshed axes of grid %d", eid)
			return true
		})
	}
}
