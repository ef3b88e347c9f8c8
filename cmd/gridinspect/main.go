// gridinspect runs the debug grid systems headless: it spawns grids from a
// preset, flies a camera along a straight line and reports what was meshed
// and where tracked grids ended up.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-grid"
)

var (
	flagPreset = flag.String("preset", "", "Grid preset (YAML); spawns the default floor grid when empty")
	flagFrames = flag.Int("frames", 60, "Frames to simulate")
	flagStep   = flag.String("step", "0.5,0,0.25", "Camera movement per frame as x,y,z")
	flagStart  = flag.String("start", "0,2,0", "Camera start position as x,y,z")
	flagSave   = flag.String("save", "", "Write the final grids back out as a preset")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagLog    = flag.String("log", "", "Also log to this file (rotated)")
)

func main() {
	flag.Parse()

	step, err := parseVec3(*flagStep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -step: %v\n", err)
		os.Exit(1)
	}
	start, err := parseVec3(*flagStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -start: %v\n", err)
		os.Exit(1)
	}

	if *flagFrames < 1 {
		fmt.Fprintf(os.Stderr, "Error: -frames must be at least 1, got %d\n", *flagFrames)
		os.Exit(1)
	}

	var preset *gekko.GridPreset
	if *flagPreset != "" {
		preset, err = gekko.LoadGridPreset(*flagPreset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	inspect := &inspectModule{
		preset: preset,
		frames: uint64(*flagFrames),
		start:  start,
		step:   step,
		save:   *flagSave,
	}
	app := gekko.NewAppBuilder().
		UseStates(stateInspecting, stateDone).
		UseModule(
			gekko.LoggingModule{Prefix: "gridinspect", Debug: *flagDebug, File: *flagLog},
			gekko.TimeModule{},
			gekko.AssetServerModule{},
			gekko.HierarchyModule{},
			gekko.FlyingCameraModule{},
			gekko.DebugGridModule{FloorGrid: preset == nil},
			inspect,
		).
		Build()

	app.Run()

	if l, ok := app.Logger().(*gekko.DefaultLogger); ok {
		if err := l.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: flushing log: %v\n", err)
		}
	}
	if inspect.failed {
		os.Exit(1)
	}
}

const (
	stateInspecting gekko.State = iota
	stateDone
)

// inspectModule spawns the scene when inspection starts, switches to
// stateDone after the requested number of frames and reports on entry.
type inspectModule struct {
	preset *gekko.GridPreset
	frames uint64
	start  mgl32.Vec3
	step   mgl32.Vec3
	save   string

	failed bool
}

func (m *inspectModule) Install(app *gekko.App, cmd *gekko.Commands) {
	app.UseSystem(
		gekko.System(m.spawn).
			InStage(gekko.Prelude).
			InState(gekko.OnEnter(stateInspecting)),
	)
	app.UseSystem(
		gekko.System(m.countdown).
			InStage(gekko.Finale).
			InState(gekko.OnExecute(stateInspecting)),
	)
	app.UseSystem(
		gekko.System(func(cmd *gekko.Commands) { m.finish(app, cmd) }).
			InStage(gekko.Finale).
			InState(gekko.OnEnter(stateDone)),
	)
}

func (m *inspectModule) spawn(cmd *gekko.Commands) {
	if m.preset != nil {
		gekko.SpawnGridPreset(cmd, m.preset)
	}
	cmd.AddEntity(
		gekko.NewCamera(),
		gekko.FlyingCameraComponent{Step: m.step},
		gekko.NewTransform(m.start),
	)
}

func (m *inspectModule) countdown(cmd *gekko.Commands, t *gekko.Time) {
	if t.Frame >= m.frames {
		cmd.ChangeState(stateDone)
	}
}

func (m *inspectModule) finish(app *gekko.App, cmd *gekko.Commands) {
	logger := cmd.Logger()
	report(app, logger)

	if m.save == "" {
		return
	}
	if err := gekko.SaveGridPreset(m.save, gekko.CaptureGridPreset(cmd)); err != nil {
		logger.Errorf("saving preset: %v", err)
		m.failed = true
		return
	}
	logger.Infof("saved preset to %s", m.save)
}

func report(app *gekko.App, logger gekko.Logger) {
	cmd := app.Commands()
	assets := gekko.Resource[gekko.AssetServer](app)
	children := gekko.Resource[gekko.GridChildren](app)

	logger.Infof("after %d frames: %d meshes, %d materials", app.Frame(), assets.MeshCount(), assets.MaterialCount())

	for _, owner := range children.Owners() {
		grid, ok := gekko.GetComponent[gekko.Grid](cmd, owner)
		if !ok {
			continue
		}
		position := mgl32.Vec3{}
		if tr, ok := gekko.GetComponent[gekko.TransformComponent](cmd, owner); ok {
			position = tr.Position
		}

		vertices := 0
		for _, kind := range []gekko.GridChildKind{gekko.ChildKindGrid, gekko.ChildKindSubGrid, gekko.ChildKindAxis} {
			for _, child := range children.Children(owner, kind) {
				mesh, ok := gekko.GetComponent[gekko.MeshComponent](cmd, child)
				if !ok {
					continue
				}
				if asset, ok := assets.MeshAsset(mesh.Mesh); ok {
					vertices += len(asset.Positions())
				}
			}
		}

		logger.Infof("grid %d: spacing %g count %d at %v, %d grid / %d sub-grid / %d axis children, %d vertices",
			owner, grid.Spacing, grid.Count, position,
			len(children.Children(owner, gekko.ChildKindGrid)),
			len(children.Children(owner, gekko.ChildKindSubGrid)),
			len(children.Children(owner, gekko.ChildKindAxis)),
			vertices,
		)
	}
}

func parseVec3(s string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &v[0], &v[1], &v[2]); err != nil {
		return v, fmt.Errorf("parsing %q as x,y,z: %w", s, err)
	}
	return v, nil
}
