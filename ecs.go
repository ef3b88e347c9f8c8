package gekko

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type row int
type set[T comparable] = map[T]struct{}

type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentIdCounter     componentId
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     map[componentId]reflect.Type

	// Change detection. Every component write stamps the current tick,
	// every component removal lands in the removal log.
	tick    uint64
	changed map[componentId]map[EntityId]uint64
	removed map[componentId][]removal
}

type removal struct {
	entity EntityId
	tick   uint64
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:         make(map[archetypeId]*archetype),
		entityIndex:        make(map[EntityId]archetypeId),
		entityIdCounter:    EntityId(0),
		componentIdCounter: componentId(0),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
		changed:            make(map[componentId]map[EntityId]uint64),
		removed:            make(map[componentId][]removal),
	}
}

type archetype struct {
	id            archetypeId
	key           archetypeKey
	entities      map[EntityId]row
	componentData map[componentId]any // typed slices via reflection
	recycled      []row
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	entityId := ecs.nextEntityId()
	return ecs.insertEntity(entityId, components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	archId, _, arch := ecs.archetypeFromComponents(components...)

	row := ecs.archetypeReserveRow(arch)
	arch.entities[entityId] = row
	for _, component := range components {
		ecs.writeComponent(arch, row, entityId, component)
	}

	ecs.entityIndex[entityId] = archId

	return entityId
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entityIndex[entityId]
	return ok
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	if !ecs.hasEntity(entityId) {
		return
	}

	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	for _, compId := range arch.key {
		ecs.logRemoval(compId, entityId)
	}
	ecs.recycleEntity(entityId)
}

// addComponents inserts new components or overwrites existing ones.
// Either way the written components count as changed.
func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	if !ecs.hasEntity(entityId) {
		return
	}

	srcArchId := ecs.entityIndex[entityId]
	srcArch := ecs.archetypes[srcArchId]
	srcRow := srcArch.entities[entityId]

	dstArchId, _, dstArch := ecs.archetypeFromExtraComponents(srcArch, components...)
	if dstArchId == srcArchId {
		for _, component := range components {
			ecs.writeComponent(srcArch, srcRow, entityId, component)
		}
		return
	}

	dstRow := ecs.archetypeReserveRow(dstArch)

	ecs.moveComponents(srcArch, srcRow, dstArch, dstRow)
	for _, component := range components {
		ecs.writeComponent(dstArch, dstRow, entityId, component)
	}

	ecs.recycleEntity(entityId)

	dstArch.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dstArchId
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	if !ecs.hasEntity(entityId) {
		return
	}

	srcArchId := ecs.entityIndex[entityId]
	srcArch := ecs.archetypes[srcArchId]
	srcRow := srcArch.entities[entityId]

	removeSet := make(set[componentId])
	for _, c := range components {
		removeSet[ecs.getComponentId(componentType(c))] = struct{}{}
	}

	var dstKey archetypeKey
	for _, compId := range srcArch.key {
		if _, shouldRemove := removeSet[compId]; !shouldRemove {
			dstKey = append(dstKey, compId)
		} else {
			ecs.logRemoval(compId, entityId)
		}
	}
	if len(dstKey) == len(srcArch.key) {
		return
	}

	dstArchId, dstArch := ecs.getOrMakeArchetype(dstKey)
	dstRow := ecs.archetypeReserveRow(dstArch)

	ecs.moveComponents(srcArch, srcRow, dstArch, dstRow)
	ecs.recycleEntity(entityId)

	dstArch.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dstArchId
}

func (ecs *Ecs) moveComponents(srcArch *archetype, srcRow row, dstArch *archetype, dstRow row) {
	// Only copy the components both archetypes share
	var key archetypeKey
	if len(srcArch.key) <= len(dstArch.key) {
		key = srcArch.key
	} else {
		key = dstArch.key
	}

	for _, componentId := range key {
		srcValue := reflectSliceGet(srcArch.componentData[componentId], int(srcRow))
		reflectSliceSet(dstArch.componentData[componentId], int(dstRow), srcValue)
	}
}

func (ecs *Ecs) writeComponent(dstArch *archetype, dstRow row, entityId EntityId, component any) {
	reflectValue := reflect.ValueOf(component)
	if reflectValue.Kind() == reflect.Pointer {
		reflectValue = reflectValue.Elem()
	}
	if reflectValue.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected Component to be a struct or a pointer to a struct, got %s", reflectValue.Kind()))
	}

	componentId := ecs.getComponentId(reflectValue.Type())
	reflectSliceSet(dstArch.componentData[componentId], int(dstRow), reflectValue)
	ecs.markChanged(componentId, entityId)
}

func (ecs *Ecs) recycleEntity(entityId EntityId) {
	archId := ecs.entityIndex[entityId]
	arch := ecs.archetypes[archId]

	row := arch.entities[entityId]
	for _, componentId := range arch.key {
		reflectSliceSet(arch.componentData[componentId], int(row), reflect.Zero(ecs.componentIdTypeMap[componentId]))
	}
	arch.recycled = append(arch.recycled, row)

	delete(arch.entities, entityId)
	delete(ecs.entityIndex, entityId)
}

// component returns the addressable value of one component of an entity.
func (ecs *Ecs) component(entityId EntityId, compId componentId) (reflect.Value, bool) {
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return reflect.Value{}, false
	}
	arch := ecs.archetypes[archId]
	data, ok := arch.componentData[compId]
	if !ok {
		return reflect.Value{}, false
	}
	return reflectSliceGet(data, int(arch.entities[entityId])), true
}

// entitiesWith lists every entity that currently has the component.
func (ecs *Ecs) entitiesWith(compId componentId) []EntityId {
	var res []EntityId
	for _, arch := range ecs.archetypes {
		if _, ok := arch.componentData[compId]; !ok {
			continue
		}
		for eid := range arch.entities {
			res = append(res, eid)
		}
	}
	slices.Sort(res)
	return res
}

func (ecs *Ecs) nextTick() uint64 {
	ecs.tick += 1
	return ecs.tick
}

func (ecs *Ecs) currentTick() uint64 {
	return ecs.tick
}

func (ecs *Ecs) markChanged(compId componentId, entityId EntityId) {
	ticks, ok := ecs.changed[compId]
	if !ok {
		ticks = make(map[EntityId]uint64)
		ecs.changed[compId] = ticks
	}
	ticks[entityId] = ecs.nextTick()
}

// changedSince reports whether the component was written after tick.
func (ecs *Ecs) changedSince(compId componentId, entityId EntityId, tick uint64) bool {
	return ecs.changed[compId][entityId] > tick
}

func (ecs *Ecs) logRemoval(compId componentId, entityId EntityId) {
	delete(ecs.changed[compId], entityId)
	ecs.removed[compId] = append(ecs.removed[compId], removal{entity: entityId, tick: ecs.nextTick()})
}

// removedSince returns the entities that lost the component after tick.
func (ecs *Ecs) removedSince(compId componentId, tick uint64) []EntityId {
	var res []EntityId
	seen := make(set[EntityId])
	for _, r := range ecs.removed[compId] {
		if r.tick <= tick {
			continue
		}
		if _, ok := seen[r.entity]; ok {
			continue
		}
		seen[r.entity] = struct{}{}
		res = append(res, r.entity)
	}
	return res
}

// pruneRemovals forgets removals stamped at or before tick.
func (ecs *Ecs) pruneRemovals(tick uint64) {
	for compId, log := range ecs.removed {
		kept := log[:0]
		for _, r := range log {
			if r.tick > tick {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(ecs.removed, compId)
		} else {
			ecs.removed[compId] = kept
		}
	}
}

func (ecs *Ecs) archetypeFromComponents(components ...any) (archetypeId, archetypeKey, *archetype) {
	archKey := ecs.getArchetypeKey(components...)
	archId, arch := ecs.getOrMakeArchetype(archKey)
	return archId, archKey, arch
}

func (ecs *Ecs) archetypeFromExtraComponents(srcArch *archetype, components ...any) (archetypeId, archetypeKey, *archetype) {
	dstArchKey := combineArchetypeKeys(
		srcArch.key,
		ecs.getArchetypeKey(components...),
	)

	dstArchId, dstArch := ecs.getOrMakeArchetype(dstArchKey)
	return dstArchId, dstArchKey, dstArch
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) (archetypeId, *archetype) {
	id := getArchetypeId(key)

	if arch, ok := ecs.archetypes[id]; ok {
		return id, arch
	}

	arch := &archetype{
		id:            id,
		key:           key,
		entities:      make(map[EntityId]row),
		componentData: make(map[componentId]any),
		recycled:      make([]row, 0),
	}
	for _, componentId := range arch.key {
		arch.componentData[componentId] = reflectSliceMake(
			ecs.componentIdTypeMap[componentId],
		)
	}

	ecs.archetypes[id] = arch
	return id, arch
}

func (ecs *Ecs) archetypeReserveRow(arch *archetype) row {
	if len(arch.recycled) > 0 {
		row := arch.recycled[len(arch.recycled)-1]
		arch.recycled = arch.recycled[:len(arch.recycled)-1]
		return row
	}

	row := row(len(arch.entities))
	for _, componentId := range arch.key {
		arch.componentData[componentId] = reflectSliceAppend(
			arch.componentData[componentId],
			reflect.Zero(ecs.componentIdTypeMap[componentId]),
		)
	}
	return row
}

// Archetype's "Canonical" Key - a list of *sorted* ComponentIDs that make the archetype
// ArchetypeID is a value derived from the key (a hash)
func (ecs *Ecs) getArchetypeKey(components ...any) archetypeKey {
	var res archetypeKey

	for _, component := range components {
		compType := componentType(component)
		if compType.Kind() != reflect.Struct {
			panic("component should be a struct")
		}

		res = append(res, ecs.getComponentId(compType))
	}

	return dedupAndSortArchetypeKey(res)
}

func combineArchetypeKeys(a archetypeKey, b archetypeKey) archetypeKey {
	return dedupAndSortArchetypeKey(append(slices.Clone(a), b...))
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	dedup := make(set[componentId])

	for _, v := range key {
		dedup[v] = struct{}{}
	}

	res := make(archetypeKey, 0, len(dedup))
	for k := range dedup {
		res = append(res, k)
	}

	slices.Sort(res)
	return res
}

func getArchetypeId(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	b := make([]byte, 8)
	for _, componentId := range key {
		binary.LittleEndian.PutUint64(b, uint64(componentId))
		hash.Write(b)
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter += 1

	return id
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[componentType]; ok {
		return id
	}

	id := ecs.componentIdCounter
	ecs.componentIdCounter += 1

	ecs.componentTypeIdMap[componentType] = id
	ecs.componentIdTypeMap[id] = componentType

	return id
}

func (ecs *Ecs) getComponentType(componentId componentId) reflect.Type {
	if t, ok := ecs.componentIdTypeMap[componentId]; ok {
		return t
	}
	panic("ComponentID not registered")
}

// componentType strips one level of pointer off a component value's type.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func reflectSliceMake(elem reflect.Type) any {
	return reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface()
}

func reflectSliceGet(slice any, idx int) reflect.Value {
	return reflect.ValueOf(slice).Index(idx)
}

func reflectSliceSet(slice any, idx int, val reflect.Value) {
	reflect.ValueOf(slice).Index(idx).Set(val)
}

func reflectSliceAppend(slice any, val reflect.Value) any {
	return reflect.Append(
		reflect.ValueOf(slice),
		val,
	).Interface()
}
