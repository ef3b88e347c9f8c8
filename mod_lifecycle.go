package gekko

import (
	"fmt"
	"reflect"
	"slices"
)

// GridChildKind groups the entities a grid owner generates. Each mesher pass
// replaces exactly one kind.
type GridChildKind uint8

const (
	ChildKindGrid GridChildKind = iota
	ChildKindSubGrid
	ChildKindAxis
	childKindCount
)

func (k GridChildKind) String() string {
	switch k {
	case ChildKindGrid:
		return "grid"
	case ChildKindSubGrid:
		return "sub-grid"
	case ChildKindAxis:
		return "axis"
	}
	return "unknown"
}

// ChildKindOf maps a child marker type to its kind.
func ChildKindOf(marker reflect.Type) (GridChildKind, bool) {
	switch marker {
	case typeOf[GridChild]():
		return ChildKindGrid, true
	case typeOf[SubGridChild]():
		return ChildKindSubGrid, true
	case typeOf[GridAxisChild]():
		return ChildKindAxis, true
	}
	return 0, false
}

// GridChildren records which generated entities belong to which grid owner.
// It is the only place children are looked up for replacement or despawn.
type GridChildren struct {
	owners map[EntityId]*[childKindCount][]EntityId
}

func NewGridChildren() *GridChildren {
	return &GridChildren{
		owners: make(map[EntityId]*[childKindCount][]EntityId),
	}
}

// Children returns a copy of the owner's children of one kind.
func (r *GridChildren) Children(owner EntityId, kind GridChildKind) []EntityId {
	lists, ok := r.owners[owner]
	if !ok {
		return nil
	}
	return slices.Clone(lists[kind])
}

func (r *GridChildren) Record(owner EntityId, kind GridChildKind, children ...EntityId) {
	if len(children) == 0 {
		return
	}
	lists, ok := r.owners[owner]
	if !ok {
		lists = &[childKindCount][]EntityId{}
		r.owners[owner] = lists
	}
	lists[kind] = append(lists[kind], children...)
}

// Take forgets and returns the owner's children of one kind.
func (r *GridChildren) Take(owner EntityId, kind GridChildKind) []EntityId {
	lists, ok := r.owners[owner]
	if !ok {
		return nil
	}
	taken := lists[kind]
	lists[kind] = nil

	for _, list := range lists {
		if len(list) > 0 {
			return taken
		}
	}
	delete(r.owners, owner)
	return taken
}

// DespawnChildren queues removal of the owner's children of one kind and
// returns how many there were.
func (r *GridChildren) DespawnChildren(cmd *Commands, owner EntityId, kind GridChildKind) int {
	children := r.Take(owner, kind)
	for _, child := range children {
		cmd.RemoveEntity(child)
	}
	return len(children)
}

// Owners lists every entity with at least one recorded child, ascending.
func (r *GridChildren) Owners() []EntityId {
	res := make([]EntityId, 0, len(r.owners))
	for owner := range r.owners {
		res = append(res, owner)
	}
	slices.Sort(res)
	return res
}

// Count is the number of recorded children of one kind across all owners.
func (r *GridChildren) Count(kind GridChildKind) int {
	n := 0
	for _, lists := range r.owners {
		n += len(lists[kind])
	}
	return n
}

// DespawnChildrenUponRemoval returns a system despawning the M-marked
// children of every owner that lost its D component. Owners that have D
// again by the time the system runs are left to the meshers.
func DespawnChildrenUponRemoval[D, M any]() func(*Commands, *GridChildren) {
	kind, ok := ChildKindOf(typeOf[M]())
	if !ok {
		panic(fmt.Sprintf("%s is not a grid child marker", typeOf[M]()))
	}
	descriptor := typeOf[D]().Name()

	var lastTick uint64
	return func(cmd *Commands, children *GridChildren) {
		removed := RemovedSince[D](cmd, lastTick)
		lastTick = cmd.ChangeTick()
		if len(removed) == 0 {
			return
		}

		logger := cmd.Logger()
		for _, owner := range removed {
			if HasComponent[D](cmd, owner) {
				continue
			}
			if n := children.DespawnChildren(cmd, owner, kind); n > 0 {
				logger.Debugf("%s removed from entity %d, despawning %d %s children", descriptor, owner, n, kind)
			}
		}
	}
}

// GridLifecycleModule owns the child registry and despawns generated
// children whose descriptor went away.
type GridLifecycleModule struct{}

func (mod GridLifecycleModule) Install(app *App, cmd *Commands) {
	if Resource[GridChildren](app) == nil {
		app.addResources(NewGridChildren())
	}

	for _, reaper := range []any{
		DespawnChildrenUponRemoval[Grid, GridChild](),
		DespawnChildrenUponRemoval[Grid, SubGridChild](),
		DespawnChildrenUponRemoval[Grid, GridAxisChild](),
		DespawnChildrenUponRemoval[SubGrid, SubGridChild](),
		DespawnChildrenUponRemoval[GridAxis, GridAxisChild](),
	} {
		app.UseSystem(
			System(reaper).
				InStage(PreUpdate).
				RunAlways(),
		)
	}
}
