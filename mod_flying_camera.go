package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FlyingCameraModule moves cameras along a scripted path. There is no input
// handling: whatever drives the camera sets the component's Step or
// Velocity.
type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	if Resource[Time](app) == nil {
		TimeModule{}.Install(app, cmd)
	}
	app.UseSystem(
		System(FlyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

type FlyingCameraComponent struct {
	// Step is added to the position once per frame.
	Step mgl32.Vec3
	// Velocity is in units per second.
	Velocity mgl32.Vec3
}

func FlyingCameraSystem(cmd *Commands, time *Time) {
	dt := float32(time.Dt.Seconds())

	MakeQuery3[CameraComponent, FlyingCameraComponent, TransformComponent](cmd).Map(func(eid EntityId, _ *CameraComponent, fly *FlyingCameraComponent, tr *TransformComponent) bool {
		move := fly.Step
		if dt > 0 {
			move = move.Add(fly.Velocity.Mul(dt))
		}
		if move.Len() == 0 {
			return true
		}

		tr.Position = tr.Position.Add(move)
		MarkChanged[TransformComponent](cmd, eid)
		return true
	})
}
