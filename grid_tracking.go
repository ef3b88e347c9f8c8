package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SnapToGrid returns where a tracked grid sits when following position:
// the position flattened onto the grid's plane, floored to whole cells, then
// lifted by the tracked offset along the normal.
func SnapToGrid(position mgl32.Vec3, spacing float32, tracked TrackedGrid) mgl32.Vec3 {
	mask := tracked.Alignment.InvertedAxisVec3()
	offset := tracked.Alignment.AxisVec3().Mul(tracked.Offset)

	var snapped mgl32.Vec3
	for i := range snapped {
		projected := position[i] * mask[i]
		snapped[i] = floor32(projected/spacing)*spacing + offset[i]
	}
	return snapped
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// trackedGridUpdater moves every tracked grid without an override along with
// the one entity carrying marker. Nothing moves while that entity is missing
// or ambiguous.
func trackedGridUpdater(marker any) func(*Commands) {
	return func(cmd *Commands) {
		target, ok := resolveTrackedEntity(cmd, marker)
		if !ok {
			return
		}
		world, _ := GetComponent[TransformComponent](cmd, target)
		position := world.Position

		MakeQuery2[Grid, TrackedGrid](cmd).Map(func(eid EntityId, grid *Grid, tracked *TrackedGrid) bool {
			if tracked.TrackingOverride != nil || grid.Spacing == 0 {
				return true
			}
			moveTrackedGrid(cmd, eid, SnapToGrid(position, grid.Spacing, *tracked))
			return true
		})
	}
}

// customTrackedGridUpdater moves grids that follow their own entity. A grid
// whose entity is gone or has no transform stays where it is.
func customTrackedGridUpdater(cmd *Commands) {
	MakeQuery2[Grid, TrackedGrid](cmd).Map(func(eid EntityId, grid *Grid, tracked *TrackedGrid) bool {
		if tracked.TrackingOverride == nil || grid.Spacing == 0 {
			return true
		}
		target, ok := GetComponent[TransformComponent](cmd, *tracked.TrackingOverride)
		if !ok {
			return true
		}
		moveTrackedGrid(cmd, eid, SnapToGrid(target.Position, grid.Spacing, *tracked))
		return true
	})
}

// resolveTrackedEntity finds the single entity with marker and a world
// transform. Tracked grids themselves never count.
func resolveTrackedEntity(cmd *Commands, marker any) (EntityId, bool) {
	var found []EntityId
	for _, eid := range cmd.EntitiesWith(marker) {
		if HasComponent[TrackedGrid](cmd, eid) || !HasComponent[TransformComponent](cmd, eid) {
			continue
		}
		found = append(found, eid)
	}

	switch len(found) {
	case 1:
		return found[0], true
	case 0:
		cmd.Logger().Debugf("grid tracking: no %T with a transform", marker)
	default:
		cmd.Logger().Debugf("grid tracking: %d entities carry %T, not tracking", len(found), marker)
	}
	return 0, false
}

// moveTrackedGrid writes the grid's local position. Root grids get the world
// position too, since the hierarchy treats a root's world transform as the
// source of truth.
func moveTrackedGrid(cmd *Commands, eid EntityId, position mgl32.Vec3) {
	if local, ok := GetComponent[LocalTransformComponent](cmd, eid); ok && local.Position != position {
		local.Position = position
		MarkChanged[LocalTransformComponent](cmd, eid)
	}
	if HasComponent[Parent](cmd, eid) {
		return
	}
	if world, ok := GetComponent[TransformComponent](cmd, eid); ok && world.Position != position {
		world.Position = position
		MarkChanged[TransformComponent](cmd, eid)
	}
}
