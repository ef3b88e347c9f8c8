package gekko

import (
	"time"
)

// Time is refreshed once per frame at the start of the Prelude stage.
type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Elapsed += timeResource.Dt
	timeResource.Time = now
}
