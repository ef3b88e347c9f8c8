package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GridTracking runs right after Update, so tracked grids follow whatever the
// host moved this frame and the hierarchy in PostUpdate sees the result.
var GridTracking = Stage{Name: "GridTracking", UpdateType: DynamicUpdate}

// DebugGridModule meshes grids, keeps tracked grids under their tracked
// entity and cleans up after removed descriptors. Child transforms follow
// their grid only when HierarchyModule is installed too.
type DebugGridModule struct {
	// FloorGrid spawns a large tracked floor grid on install.
	FloorGrid bool
	// TrackedMarker is a value of the component that marks the entity
	// tracked grids follow. Defaults to CameraComponent.
	TrackedMarker any
}

func (mod DebugGridModule) Install(app *App, cmd *Commands) {
	if Resource[AssetServer](app) == nil {
		AssetServerModule{}.Install(app, cmd)
	}

	// Reapers go first so a mesher can regenerate what a reaper just cleared
	GridLifecycleModule{}.Install(app, cmd)

	for _, mesher := range []gridMesherFn{
		untrackedGridMesher(),
		trackedGridMesher(),
		subGridMesher(),
		gridAxisMesher(),
	} {
		app.UseSystem(
			System(mesher).
				InStage(PreUpdate).
				RunAlways(),
		)
	}

	marker := mod.TrackedMarker
	if marker == nil {
		marker = CameraComponent{}
	}
	app.UseStage(GridTracking, AfterStage(Update))
	app.UseSystem(
		System(trackedGridUpdater(marker)).
			InStage(GridTracking).
			RunAlways(),
	).UseSystem(
		System(customTrackedGridUpdater).
			InStage(GridTracking).
			RunAlways(),
	)

	if mod.FloorGrid {
		SpawnFloorGrid(cmd)
	}
}

// SpawnFloorGrid adds a wide tracked floor with sub-grid lines and RGB axes.
func SpawnFloorGrid(cmd *Commands) EntityId {
	grid := DefaultGrid()
	grid.Spacing = 10
	grid.Count = 16

	return cmd.AddEntity(
		grid,
		DefaultSubGrid(),
		NewRGBGridAxis(),
		TrackedGrid{},
		NewTransform(mgl32.Vec3{}),
		NewLocalTransform(mgl32.Vec3{}),
		VisibilityComponent{Visible: true},
	)
}
