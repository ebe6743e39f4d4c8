package ecs

import (
	"fmt"
	"sync/atomic"
)

type resourceID uint32

var nextResourceID atomic.Uint32

// ResourceKind identifies a world-global singleton of type T.
type ResourceKind[T any] struct {
	id   resourceID
	name string
}

func NewResourceKind[T any](name string) ResourceKind[T] {
	return ResourceKind[T]{id: resourceID(nextResourceID.Add(1)), name: name}
}

func (k ResourceKind[T]) Name() string {
	return k.name
}

func SetResource[T any](w *World, kind ResourceKind[T], value *T) {
	if w == nil || value == nil {
		return
	}
	w.resources[kind.id] = value
}

// GetResource returns the resource if it has been inserted.
func GetResource[T any](w *World, kind ResourceKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.resources[kind.id].(*T)
	return v, ok
}

// MustResource returns the resource or panics. Use it for resources the
// environment guarantees for the lifetime of the world.
func MustResource[T any](w *World, kind ResourceKind[T]) *T {
	v, ok := GetResource(w, kind)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %q missing", kind.name))
	}
	return v
}

func RemoveResource[T any](w *World, kind ResourceKind[T]) bool {
	if w == nil {
		return false
	}
	if _, ok := w.resources[kind.id]; !ok {
		return false
	}
	delete(w.resources, kind.id)
	return true
}
