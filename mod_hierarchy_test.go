package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worldPosition(t *testing.T, cmd *Commands, eid EntityId) mgl32.Vec3 {
	t.Helper()
	tr, ok := GetComponent[TransformComponent](cmd, eid)
	require.True(t, ok, "entity %d has no world transform", eid)
	return tr.Position
}

func TestTransformHierarchy(t *testing.T) {
	app := NewApp()
	app.UseModules(HierarchyModule{})

	cmd := app.Commands()

	parent := cmd.AddEntity(NewTransform(mgl32.Vec3{10, 0, 0}))
	child := cmd.AddEntity(
		&Parent{Entity: parent},
		NewLocalTransform(mgl32.Vec3{0, 5, 0}),
		&TransformComponent{},
	)
	grandchild := cmd.AddEntity(
		&Parent{Entity: child},
		NewLocalTransform(mgl32.Vec3{0, 0, 2}),
		&TransformComponent{},
	)
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	assert.Equal(t, mgl32.Vec3{10, 5, 0}, worldPosition(t, cmd, child))
	assert.Equal(t, mgl32.Vec3{10, 5, 2}, worldPosition(t, cmd, grandchild))

	// Rotate parent 90 deg around Y and move the child off the axis
	parentTr, _ := GetComponent[TransformComponent](cmd, parent)
	rotated := *parentTr
	rotated.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	cmd.AddComponents(parent, rotated)
	cmd.AddComponents(child, NewLocalTransform(mgl32.Vec3{5, 0, 0}))
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	// (10, 0, 0) + RotY(90) * (5, 0, 0) = (10, 0, -5)
	expectedPos := mgl32.Vec3{10, 0, -5}
	assert.InDelta(t, 0, worldPosition(t, cmd, child).Sub(expectedPos).Len(), 0.001)
}

func TestTransformHierarchy_RootsMirrorWorldIntoLocal(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	root := cmd.AddEntity(NewTransform(mgl32.Vec3{1, 2, 3}), NewLocalTransform(mgl32.Vec3{}))
	child := cmd.AddEntity(Parent{Entity: root}, NewLocalTransform(mgl32.Vec3{0, 1, 0}), TransformComponent{})
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	local, ok := GetComponent[LocalTransformComponent](cmd, root)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, local.Position)
	assert.Equal(t, mgl32.Vec3{1, 3, 3}, worldPosition(t, cmd, child))
}

func TestTransformHierarchy_ScaleIsPerComponent(t *testing.T) {
	parent := NewTransform(mgl32.Vec3{})
	parent.Scale = mgl32.Vec3{2, -1, 1}

	world := composeTransform(parent, NewLocalTransform(mgl32.Vec3{1, 1, 1}))

	assert.Equal(t, mgl32.Vec3{2, -1, 1}, world.Position)
	assert.Equal(t, mgl32.Vec3{2, -1, 1}, world.Scale)
}

func TestTransformHierarchy_MissingParentIsSkipped(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	orphan := cmd.AddEntity(Parent{Entity: EntityId(999)}, NewLocalTransform(mgl32.Vec3{1, 0, 0}), NewTransform(mgl32.Vec3{7, 7, 7}))
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	assert.Equal(t, mgl32.Vec3{7, 7, 7}, worldPosition(t, cmd, orphan))
}
