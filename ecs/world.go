package ecs

import "github.com/milk9111/arcball/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Setuper is implemented by systems that need to acquire resources, such as
// event readers, once before the first Update.
type Setuper interface {
	Setup(w *World)
}

// World owns entities, components, resources, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	resources map[resourceID]any
	systems   []System
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		resources: make(map[resourceID]any),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Clear destroys every entity while keeping resources and systems.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for _, e := range w.entities.all() {
		DestroyEntity(w, e)
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Setup calls Setup on every system that implements Setuper.
func (w *World) Setup() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if su, ok := s.(Setuper); ok {
			su.Setup(w)
		}
	}
}

// Update runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
