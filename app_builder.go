package gekko

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	b.app.useStates(initialState, finalState)

	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs the collected modules in the order they were added.
func (b *AppBuilder) Build() *App {
	return b.app.UseModules(b.modules...)
}
