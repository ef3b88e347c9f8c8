package gekko

// Commands is the handle systems use to touch the world. Structural changes
// (entities, component sets) are buffered until the end of the current stage;
// reads go straight to the store.
type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.nextEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

// AddComponents inserts components, or replaces them when the entity already
// has them. Replaced components count as changed.
func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompAdds = append(cmd.app.pendingCompAdds, pendingCompAdd{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompRemovals = append(cmd.app.pendingCompRemovals, pendingCompRemoval{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, entityId)
}

func (cmd *Commands) EntityExists(entityId EntityId) bool {
	return cmd.app.ecs.hasEntity(entityId)
}

func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	ecs := cmd.app.ecs
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil
	}
	arch := ecs.archetypes[archId]

	row := arch.entities[entityId]

	var res []any
	for _, componentId := range arch.key {
		val := reflectSliceGet(arch.componentData[componentId], int(row))
		res = append(res, val.Interface())
	}
	return res
}

// ChangeTick is the store's current change tick. Systems remember it at the
// end of a pass and compare component ticks against it on the next one.
func (cmd *Commands) ChangeTick() uint64 {
	return cmd.app.ecs.currentTick()
}

// GetComponent returns a pointer into the store for the entity's T, valid
// until the next flush.
func GetComponent[T any](cmd *Commands, entityId EntityId) (*T, bool) {
	ecs := cmd.app.ecs
	val, ok := ecs.component(entityId, ecs.getComponentId(typeOf[T]()))
	if !ok {
		return nil, false
	}
	return val.Addr().Interface().(*T), true
}

func HasComponent[T any](cmd *Commands, entityId EntityId) bool {
	_, ok := GetComponent[T](cmd, entityId)
	return ok
}

// MarkChanged flags T on the entity as modified. Needed after mutating a
// component in place through a query pointer, which the store cannot see.
func MarkChanged[T any](cmd *Commands, entityId EntityId) {
	ecs := cmd.app.ecs
	if !HasComponent[T](cmd, entityId) {
		return
	}
	ecs.markChanged(ecs.getComponentId(typeOf[T]()), entityId)
}

// ChangedSince reports whether T on the entity was written after tick.
func ChangedSince[T any](cmd *Commands, entityId EntityId, tick uint64) bool {
	ecs := cmd.app.ecs
	return ecs.changedSince(ecs.getComponentId(typeOf[T]()), entityId, tick)
}

// RemovedSince lists entities that lost T after tick. Removals are kept for
// one frame after the one they were flushed in.
func RemovedSince[T any](cmd *Commands, tick uint64) []EntityId {
	ecs := cmd.app.ecs
	return ecs.removedSince(ecs.getComponentId(typeOf[T]()), tick)
}

// EntitiesWith lists entities carrying a component of the same type as the
// given value, in ascending id order.
func (cmd *Commands) EntitiesWith(component any) []EntityId {
	ecs := cmd.app.ecs
	return ecs.entitiesWith(ecs.getComponentId(componentType(component)))
}
