package main

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gekko "github.com/gekko3d/gekko-grid"
)

func TestInspectModule_RunsToDoneAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	inspect := &inspectModule{
		frames: 3,
		start:  mgl32.Vec3{0, 2, 0},
		step:   mgl32.Vec3{4, 0, 0},
		save:   path,
	}
	app := gekko.NewAppBuilder().
		UseStates(stateInspecting, stateDone).
		UseModule(
			gekko.TimeModule{},
			gekko.HierarchyModule{},
			gekko.FlyingCameraModule{},
			gekko.DebugGridModule{FloorGrid: true},
			inspect,
		).
		Build()

	app.Run()

	assert.Equal(t, uint64(3), app.Frame())
	assert.False(t, inspect.failed)

	saved, err := gekko.LoadGridPreset(path)
	require.NoError(t, err)
	require.Len(t, saved.Grids, 1)
	assert.Equal(t, float32(10), saved.Grids[0].Spacing)
	// The camera ends at x=12, the floor snaps to x=10
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, saved.Grids[0].Position)
}

func TestInspectModule_SaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, gekko.SaveGridPreset(blocker, &gekko.GridPreset{}))

	inspect := &inspectModule{frames: 1, save: filepath.Join(blocker, "out.yaml")}
	gekko.NewAppBuilder().
		UseStates(stateInspecting, stateDone).
		UseModule(gekko.TimeModule{}, gekko.DebugGridModule{FloorGrid: true}, inspect).
		Build().
		Run()

	assert.True(t, inspect.failed)
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("0.5,-1,2")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.5, -1, 2}, v)

	_, err = parseVec3("1,2")
	assert.Error(t, err)
}
