package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

// maxHierarchyPasses bounds propagation depth per frame.
const maxHierarchyPasses = 8

func TransformHierarchySystem(cmd *Commands) {
	// Roots: world transform is authoritative, mirror it into the local one
	MakeQuery2[LocalTransformComponent, TransformComponent](cmd).Without(Parent{}).Map(func(eid EntityId, local *LocalTransformComponent, tr *TransformComponent) bool {
		local.Position = tr.Position
		local.Rotation = tr.Rotation
		local.Scale = tr.Scale
		return true
	})

	// Children are resolved iteratively; a pass that changes nothing means
	// every depth has settled.
	for pass := 0; pass < maxHierarchyPasses; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
			parentWorld, ok := GetComponent[TransformComponent](cmd, parent.Entity)
			if !ok {
				return true
			}

			newWorld := composeTransform(*parentWorld, *local)
			if newWorld != *world {
				*world = newWorld
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}

// composeTransform applies a local transform under a parent's world transform.
// Scale is propagated per component to keep reflections intact.
func composeTransform(parent TransformComponent, local LocalTransformComponent) TransformComponent {
	// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
	scaledLocalPos := mgl32.Vec3{
		local.Position.X() * parent.Scale.X(),
		local.Position.Y() * parent.Scale.Y(),
		local.Position.Z() * parent.Scale.Z(),
	}

	return TransformComponent{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaledLocalPos)),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}
}
