package gekko

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
		spacing  float32
		tracked  TrackedGrid
		want     mgl32.Vec3
	}{
		{"floor", mgl32.Vec3{7.3, 2, -4.9}, 2, TrackedGrid{}, mgl32.Vec3{6, 0, -6}},
		{"floor with offset", mgl32.Vec3{7.3, 2, -4.9}, 2, TrackedGrid{Offset: 0.5}, mgl32.Vec3{6, 0.5, -6}},
		{"x wall", mgl32.Vec3{3, 2.5, 1.5}, 1, TrackedGrid{Alignment: AlignX, Offset: -1}, mgl32.Vec3{-1, 2, 1}},
		{"z wall", mgl32.Vec3{-0.5, 4.9, 100}, 0.5, TrackedGrid{Alignment: AlignZ}, mgl32.Vec3{-0.5, 4.5, 0}},
		{"on a line", mgl32.Vec3{4, 0, -4}, 2, TrackedGrid{}, mgl32.Vec3{4, 0, -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapToGrid(tt.position, tt.spacing, tt.tracked))
		})
	}
}

type trackedMarker struct{}

func newTrackingApp() (*App, *Commands) {
	app := NewApp()
	app.UseModules(DebugGridModule{TrackedMarker: trackedMarker{}})
	return app, app.Commands()
}

func spawnTarget(cmd *Commands, position mgl32.Vec3) EntityId {
	return cmd.AddEntity(trackedMarker{}, NewTransform(position))
}

func localPosition(t *testing.T, cmd *Commands, eid EntityId) mgl32.Vec3 {
	t.Helper()
	local, ok := GetComponent[LocalTransformComponent](cmd, eid)
	require.True(t, ok)
	return local.Position
}

func TestTrackedGridUpdater_FollowsTarget(t *testing.T) {
	app, cmd := newTrackingApp()
	target := spawnTarget(cmd, mgl32.Vec3{7.3, 2, -4.9})
	grid := spawnGrid(cmd, Grid{Spacing: 2, Count: 4}, TrackedGrid{})

	app.Update()

	assert.Equal(t, mgl32.Vec3{6, 0, -6}, localPosition(t, cmd, grid))
	assert.Equal(t, mgl32.Vec3{6, 0, -6}, worldPosition(t, cmd, grid), "root grids move in world space too")

	tr, _ := GetComponent[TransformComponent](cmd, target)
	tr.Position = mgl32.Vec3{-0.1, 0, 0.1}
	app.Update()

	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, localPosition(t, cmd, grid))
}

func TestTrackedGridUpdater_MovingDoesNotRemesh(t *testing.T) {
	app, cmd := newTrackingApp()
	target := spawnTarget(cmd, mgl32.Vec3{})
	grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})
	app.Update()
	children := childrenOf(app, grid, ChildKindGrid)

	tr, _ := GetComponent[TransformComponent](cmd, target)
	tr.Position = mgl32.Vec3{10, 0, 10}
	app.Update()
	app.Update()

	assert.Equal(t, mgl32.Vec3{10, 0, 10}, localPosition(t, cmd, grid))
	assert.Equal(t, children, childrenOf(app, grid, ChildKindGrid))
}

func TestTrackedGridUpdater_Alignments(t *testing.T) {
	app, cmd := newTrackingApp()
	spawnTarget(cmd, mgl32.Vec3{3, 2.5, 1.5})
	xWall := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{Alignment: AlignX, Offset: -1})
	zWall := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{Alignment: AlignZ, Offset: 2})

	app.Update()

	assert.Equal(t, mgl32.Vec3{-1, 2, 1}, localPosition(t, cmd, xWall))
	assert.Equal(t, mgl32.Vec3{3, 2, 2}, localPosition(t, cmd, zWall))
}

func TestTrackedGridUpdater_SkipsWithoutSingleTarget(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		app, cmd := newTrackingApp()
		grid := cmd.AddEntity(Grid{Spacing: 1, Count: 4}, TrackedGrid{}, NewTransform(mgl32.Vec3{0.5, 0.5, 0.5}), NewLocalTransform(mgl32.Vec3{0.5, 0.5, 0.5}))

		app.Update()

		assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, localPosition(t, cmd, grid))
	})

	t.Run("ambiguous", func(t *testing.T) {
		app, cmd := newTrackingApp()
		spawnTarget(cmd, mgl32.Vec3{5, 0, 5})
		spawnTarget(cmd, mgl32.Vec3{-5, 0, -5})
		grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})

		app.Update()

		assert.Equal(t, mgl32.Vec3{}, localPosition(t, cmd, grid))
	})

	t.Run("marker without transform", func(t *testing.T) {
		app, cmd := newTrackingApp()
		cmd.AddEntity(trackedMarker{})
		spawnTarget(cmd, mgl32.Vec3{5, 0, 5})
		grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})

		app.Update()

		assert.Equal(t, mgl32.Vec3{5, 0, 5}, localPosition(t, cmd, grid), "markers without a transform do not count")
	})

	t.Run("tracked grid carrying the marker", func(t *testing.T) {
		app, cmd := newTrackingApp()
		spawnTarget(cmd, mgl32.Vec3{5, 0, 5})
		spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{}, trackedMarker{})
		grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})

		app.Update()

		assert.Equal(t, mgl32.Vec3{5, 0, 5}, localPosition(t, cmd, grid))
	})
}

func TestTrackedGridUpdater_ZeroSpacingIsSkipped(t *testing.T) {
	app, cmd := newTrackingApp()
	spawnTarget(cmd, mgl32.Vec3{5, 0, 5})
	grid := spawnGrid(cmd, Grid{Spacing: 0, Count: 4}, TrackedGrid{})

	assert.NotPanics(t, app.Update)
	assert.Equal(t, mgl32.Vec3{}, localPosition(t, cmd, grid))
}

func TestCustomTrackedGridUpdater(t *testing.T) {
	app, cmd := newTrackingApp()
	spawnTarget(cmd, mgl32.Vec3{100, 0, 100})
	custom := cmd.AddEntity(NewTransform(mgl32.Vec3{-3.5, 8, 2.2}))
	followsCustom := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{}.TrackEntity(custom))
	followsMarker := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})

	app.Update()

	assert.Equal(t, mgl32.Vec3{-4, 0, 2}, localPosition(t, cmd, followsCustom), "overridden grids ignore the marker")
	assert.Equal(t, mgl32.Vec3{100, 0, 100}, localPosition(t, cmd, followsMarker))
}

func TestCustomTrackedGridUpdater_AnyNumberOfMarkers(t *testing.T) {
	for _, markers := range []int{0, 2, 3} {
		t.Run(fmt.Sprintf("%d markers", markers), func(t *testing.T) {
			app, cmd := newTrackingApp()
			for i := 0; i < markers; i++ {
				spawnTarget(cmd, mgl32.Vec3{float32(10 * (i + 1)), 0, 0})
			}
			custom := cmd.AddEntity(NewTransform(mgl32.Vec3{-3.5, 8, 2.2}))
			grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{}.TrackEntity(custom))

			app.Update()

			assert.Equal(t, mgl32.Vec3{-4, 0, 2}, localPosition(t, cmd, grid))
		})
	}
}

func TestCustomTrackedGridUpdater_MissingTarget(t *testing.T) {
	app, cmd := newTrackingApp()
	target := spawnTarget(cmd, mgl32.Vec3{4, 0, 4})
	gone := cmd.AddEntity(NewTransform(mgl32.Vec3{9, 0, 9}))
	orphan := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{}.TrackEntity(gone))
	other := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})
	app.Update()
	require.Equal(t, mgl32.Vec3{9, 0, 9}, localPosition(t, cmd, orphan))

	cmd.RemoveEntity(gone)
	tr, _ := GetComponent[TransformComponent](cmd, target)
	tr.Position = mgl32.Vec3{-4, 0, -4}
	app.Update()

	assert.Equal(t, mgl32.Vec3{9, 0, 9}, localPosition(t, cmd, orphan), "a grid whose target is gone stays put")
	assert.Equal(t, mgl32.Vec3{-4, 0, -4}, localPosition(t, cmd, other))
}

func TestTrackedGridUpdater_ParentedGridKeepsWorld(t *testing.T) {
	app, cmd := newTrackingApp()
	app.UseModules(HierarchyModule{})
	spawnTarget(cmd, mgl32.Vec3{3, 0, 3})
	root := cmd.AddEntity(NewTransform(mgl32.Vec3{0, 10, 0}), NewLocalTransform(mgl32.Vec3{}))
	grid := cmd.AddEntity(
		Grid{Spacing: 1, Count: 4},
		TrackedGrid{},
		Parent{Entity: root},
		NewLocalTransform(mgl32.Vec3{}),
		NewTransform(mgl32.Vec3{}),
	)

	app.Update()

	assert.Equal(t, mgl32.Vec3{3, 0, 3}, localPosition(t, cmd, grid))
	assert.Equal(t, mgl32.Vec3{3, 10, 3}, worldPosition(t, cmd, grid), "the hierarchy composes a parented grid's world transform")
}
