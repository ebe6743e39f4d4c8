package system

import "github.com/milk9111/arcball/ecs"

// Time is the fixed-step clock advanced once per tick by the game loop.
type Time struct {
	Delta   float64
	Elapsed float64
	Ticks   uint64
}

func (t *Time) Advance(dt float64) {
	t.Delta = dt
	t.Elapsed += dt
	t.Ticks++
}

var TimeResource = ecs.NewResourceKind[Time]("time")
