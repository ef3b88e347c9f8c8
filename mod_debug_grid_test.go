package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugGridModule_Stages(t *testing.T) {
	app := NewApp()
	app.UseModules(DebugGridModule{})

	require.True(t, app.HasStage(GridTracking))
	assert.Equal(t, app.StageIndex(Update)+1, app.StageIndex(GridTracking))
	assert.Less(t, app.StageIndex(GridTracking), app.StageIndex(PostUpdate))
	assert.NotNil(t, Resource[AssetServer](app))
	assert.NotNil(t, Resource[GridChildren](app))
}

func TestDebugGridModule_KeepsExistingAssetServer(t *testing.T) {
	app := NewApp()
	app.UseModules(AssetServerModule{})
	server := Resource[AssetServer](app)

	app.UseModules(DebugGridModule{})

	assert.Same(t, server, Resource[AssetServer](app))
}

func TestDebugGridModule_FloorGrid(t *testing.T) {
	app := NewApp()
	app.UseModules(DebugGridModule{FloorGrid: true})
	cmd := app.Commands()
	app.Update()

	owners := cmd.EntitiesWith(Grid{})
	require.Len(t, owners, 1)
	floor := owners[0]

	grid, _ := GetComponent[Grid](cmd, floor)
	require.NotNil(t, grid)
	assert.Equal(t, float32(10), grid.Spacing)
	assert.Equal(t, 16, grid.Count)
	assert.True(t, HasComponent[SubGrid](cmd, floor))
	assert.True(t, HasComponent[GridAxis](cmd, floor))
	assert.True(t, HasComponent[TrackedGrid](cmd, floor))

	// Tracked floor: main child, green origin axis and one sub-grid
	assert.Len(t, childrenOf(app, floor, ChildKindGrid), 2)
	assert.Len(t, childrenOf(app, floor, ChildKindSubGrid), 1)
	assert.Empty(t, childrenOf(app, floor, ChildKindAxis))
}

func TestDebugGridModule_FollowsCameraByDefault(t *testing.T) {
	app := NewApp()
	app.UseModules(DebugGridModule{FloorGrid: true})
	cmd := app.Commands()
	cmd.AddEntity(NewCamera(), NewTransform(mgl32.Vec3{25, 3, -12}))

	app.Update()

	floor := cmd.EntitiesWith(Grid{})[0]
	assert.Equal(t, mgl32.Vec3{20, 0, -20}, localPosition(t, cmd, floor))
}

func TestDebugGridModule_FullFrameWithHierarchy(t *testing.T) {
	app := NewApp()
	app.UseModules(TimeModule{}, HierarchyModule{}, DebugGridModule{})
	cmd := app.Commands()
	camera := cmd.AddEntity(NewCamera(), NewTransform(mgl32.Vec3{1.2, 5, 3.7}))
	floor := SpawnFloorGrid(cmd)

	app.Update()

	main := childrenOf(app, floor, ChildKindGrid)[0]
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, worldPosition(t, cmd, main))

	tr, _ := GetComponent[TransformComponent](cmd, camera)
	tr.Position = mgl32.Vec3{31, 5, -9}
	app.Update()

	assert.Equal(t, mgl32.Vec3{30, 0, -10}, worldPosition(t, cmd, floor))
	assert.Equal(t, mgl32.Vec3{30, 0, -10}, worldPosition(t, cmd, main), "the main child follows the floor")
	origin := childrenOf(app, floor, ChildKindGrid)[1]
	assert.Equal(t, mgl32.Vec3{}, worldPosition(t, cmd, origin), "the origin axis child does not")
	assert.Equal(t, uint64(2), Resource[Time](app).Frame)
}
