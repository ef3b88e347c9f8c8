package gekko

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlyingCameraSystem(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	camera := cmd.AddEntity(
		NewCamera(),
		FlyingCameraComponent{Step: mgl32.Vec3{1, 0, 0}, Velocity: mgl32.Vec3{0, 0, -4}},
		NewTransform(mgl32.Vec3{}),
	)
	still := cmd.AddEntity(NewCamera(), FlyingCameraComponent{}, NewTransform(mgl32.Vec3{5, 5, 5}))
	app.FlushCommands()

	FlyingCameraSystem(cmd, &Time{Dt: 500 * time.Millisecond})

	assert.Equal(t, mgl32.Vec3{1, 0, -2}, worldPosition(t, cmd, camera))
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, worldPosition(t, cmd, still))
	assert.True(t, ChangedSince[TransformComponent](cmd, camera, cmd.ChangeTick()-1))
}

func TestFlyingCameraModule_DrivesTrackedGrid(t *testing.T) {
	app := NewApp()
	app.UseModules(FlyingCameraModule{}, DebugGridModule{})
	require.NotNil(t, Resource[Time](app))

	cmd := app.Commands()
	cmd.AddEntity(NewCamera(), FlyingCameraComponent{Step: mgl32.Vec3{0.75, 0, 0}}, NewTransform(mgl32.Vec3{}))
	grid := spawnGrid(cmd, Grid{Spacing: 1, Count: 4}, TrackedGrid{})

	for i := 0; i < 4; i++ {
		app.Update()
	}

	// 4 * 0.75 = 3, the camera moves in Update before tracking
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, localPosition(t, cmd, grid))
}
