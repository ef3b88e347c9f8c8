package gekko

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any
	ecs                *Ecs

	// Frame bookkeeping for the removal log
	frame      uint64
	frameStart uint64

	// Command Buffering
	pendingAdditions    []pendingAdd
	pendingRemovals     []EntityId
	pendingCompAdds     []pendingCompAdd
	pendingCompRemovals []pendingCompRemoval
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

type pendingCompRemoval struct {
	eid        EntityId
	components []any
}

// NewApp creates a stateless app with the default stage list.
func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		resources:        make(map[reflect.Type]any),
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		ecs:              &ecs,
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.initStatefulStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

func (app *App) useStates(initialState State, finalState State) {
	app.stateful = true
	app.initialState = initialState
	app.finalState = finalState
	app.state = initialState
	for _, stage := range app.stages {
		app.initStatefulStage(stage)
	}
}

// Frame returns how many frames Update has run.
func (app *App) Frame() uint64 {
	return app.frame
}

func (app *App) Run() {
	logger := app.Logger()

	if app.stateful {
		logger.Infof("running in stateful mode")

		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		logger.Infof("running in stateless mode")
	}

	for {
		app.Update()

		if app.stateful && app.state == app.finalState {
			app.callSystems(app.state, exit)
			break
		}
	}
}

// Update runs every stage once.
func (app *App) Update() {
	app.beginFrame()
	app.callSystems(app.state, execute)

	if app.stateful && app.stateTransitioning {
		app.stateTransitioning = false
		app.executeChangeState(app.nextState)
	}
}

func (app *App) beginFrame() {
	// Removals flushed during the previous frame stay readable for this one
	app.ecs.pruneRemovals(app.frameStart)
	app.frameStart = app.ecs.currentTick()
	app.frame += 1
	if t, ok := app.resources[typeOf[Time]()].(*Time); ok {
		t.Frame = app.frame
	}
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// On execute, call stateless/always run systems first
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		// Call stateful systems, if required
		if app.stateful {
			if systemsInStage, ok := app.systems[stage.Name]; ok {
				if systemsInState, ok := systemsInStage[state]; ok {
					if systemsInPhase, ok := systemsInState[phase]; ok {
						for _, system := range systemsInPhase {
							app.callSystem(system)
						}
					}
				}
			}
		}
		app.FlushCommands()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the registered *T, or nil.
func Resource[T any](app *App) *T {
	if r, ok := app.resources[typeOf[T]()]; ok {
		return r.(*T)
	}
	return nil
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.unresolvedDependency(systemType, systemValue, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.unresolvedDependency(systemType, systemValue, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) unresolvedDependency(systemType reflect.Type, systemValue reflect.Value, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	app.Logger().Errorf("%s", msg)
	panic(msg)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 &&
		len(app.pendingCompAdds) == 0 && len(app.pendingCompRemovals) == 0 {
		return
	}

	// 1. Process Removals first (so we don't add to dead entities)
	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	// 2. Process Additions
	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	// 3. Process Component Removals, then Additions, so remove+add re-inserts
	for _, rem := range app.pendingCompRemovals {
		app.ecs.removeComponents(rem.eid, rem.components...)
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
