package gekko

import (
	"slices"
)

// Queries visit archetypes and entities in ascending id order, so two passes
// over an unchanged store see the same sequence.
//
// To get more queries:
//  1. Add QueryN with its MakeQueryN constructor
//  2. Copy MapN-1() and add one more column
//  3. Add a Without() that returns QueryN
type Query1[A any] struct {
	ecs     *Ecs
	without []any
}
type Query2[A, B any] struct {
	ecs     *Ecs
	without []any
}
type Query3[A, B, C any] struct {
	ecs     *Ecs
	without []any
}
type Query4[A, B, C, D any] struct {
	ecs     *Ecs
	without []any
}
type Query5[A, B, C, D, E any] struct {
	ecs     *Ecs
	without []any
}

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}
func MakeQuery5[A, B, C, D, E any](cmd *Commands) Query5[A, B, C, D, E] {
	return Query5[A, B, C, D, E]{ecs: cmd.app.ecs}
}

// Without skips every entity that carries any of the given components.
func (q Query1[A]) Without(components ...any) Query1[A] {
	q.without = append(slices.Clone(q.without), components...)
	return q
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.without = append(slices.Clone(q.without), components...)
	return q
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.without = append(slices.Clone(q.without), components...)
	return q
}

func (q Query4[A, B, C, D]) Without(components ...any) Query4[A, B, C, D] {
	q.without = append(slices.Clone(q.without), components...)
	return q
}

func (q Query5[A, B, C, D, E]) Without(components ...any) Query5[A, B, C, D, E] {
	q.without = append(slices.Clone(q.without), components...)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponent[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.matchingArchetypes(identifyOptionals(q.ecs, q.without...)) {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}

		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, no_a, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponent[A](q.ecs), identifyComponent[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.matchingArchetypes(identifyOptionals(q.ecs, q.without...)) {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}

		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, no_a, r), at(comps2, no_b, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponent[A](q.ecs), identifyComponent[B](q.ecs), identifyComponent[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.matchingArchetypes(identifyOptionals(q.ecs, q.without...)) {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, no_c, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}

		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, no_a, r), at(comps2, no_b, r), at(comps3, no_c, r)) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	id1, id2 := identifyComponent[A](q.ecs), identifyComponent[B](q.ecs)
	id3, id4 := identifyComponent[C](q.ecs), identifyComponent[D](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.matchingArchetypes(identifyOptionals(q.ecs, q.without...)) {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, no_c, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}
		comps4, no_d, ok := column[D](arch, id4, opt)
		if !ok {
			continue
		}

		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, no_a, r), at(comps2, no_b, r), at(comps3, no_c, r), at(comps4, no_d, r)) {
				return
			}
		}
	}
}

func (q Query5[A, B, C, D, E]) Map(m func(EntityId, *A, *B, *C, *D, *E) bool, optionals ...any) {
	id1, id2 := identifyComponent[A](q.ecs), identifyComponent[B](q.ecs)
	id3, id4 := identifyComponent[C](q.ecs), identifyComponent[D](q.ecs)
	id5 := identifyComponent[E](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.matchingArchetypes(identifyOptionals(q.ecs, q.without...)) {
		comps1, no_a, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, no_b, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, no_c, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}
		comps4, no_d, ok := column[D](arch, id4, opt)
		if !ok {
			continue
		}
		comps5, no_e, ok := column[E](arch, id5, opt)
		if !ok {
			continue
		}

		for _, entityId := range arch.sortedEntities() {
			r := arch.entities[entityId]
			if !m(entityId, at(comps1, no_a, r), at(comps2, no_b, r), at(comps3, no_c, r), at(comps4, no_d, r), at(comps5, no_e, r)) {
				return
			}
		}
	}
}

// column resolves one query argument against an archetype. absent is set
// when the archetype lacks an optional component; ok is false when it lacks a
// required one.
func column[T any](arch *archetype, id componentId, optionals set[componentId]) (comps []T, absent bool, ok bool) {
	if data, found := arch.componentData[id]; found {
		return data.([]T), false, true
	}
	if _, optional := optionals[id]; optional {
		return nil, true, true
	}
	return nil, false, false
}

func at[T any](comps []T, absent bool, r row) *T {
	if absent {
		return nil
	}
	return &comps[r]
}

func (ecs *Ecs) matchingArchetypes(excluded set[componentId]) []*archetype {
	res := make([]*archetype, 0, len(ecs.archetypes))
	for _, arch := range ecs.archetypes {
		skip := false
		for id := range excluded {
			if _, ok := arch.componentData[id]; ok {
				skip = true
				break
			}
		}
		if !skip && len(arch.entities) > 0 {
			res = append(res, arch)
		}
	}
	slices.SortFunc(res, func(a, b *archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return res
}

func (arch *archetype) sortedEntities() []EntityId {
	res := make([]EntityId, 0, len(arch.entities))
	for entityId := range arch.entities {
		res = append(res, entityId)
	}
	slices.Sort(res)
	return res
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}

	return res
}

func identifyComponent[A any](ecs *Ecs) componentId {
	return ecs.getComponentId(typeOf[A]())
}
