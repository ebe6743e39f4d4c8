package render

import (
	"testing"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/render/graph"
	"github.com/milk9111/arcball/render/pass"
)

type scriptedCreator struct {
	rebuilds    []bool
	step        int
	builders    int
	fail        bool
	invalidated int
}

func (c *scriptedCreator) Rebuild(*ecs.World) bool {
	if c.step >= len(c.rebuilds) {
		return false
	}
	v := c.rebuilds[c.step]
	c.step++
	return v
}

func (c *scriptedCreator) Builder(graph.Factory, *ecs.World) *graph.GraphBuilder[*pass.Context] {
	c.builders++
	b := graph.NewGraphBuilder[*pass.Context]()
	if c.fail {
		b.CreateImage(graph.D2(0, 0), 1, graph.RGBA8Unorm, ClearColor)
	}
	return b
}

func (c *scriptedCreator) Invalidate() {
	c.invalidated++
}

func TestRenderingSystemBuildsOnlyOnRebuild(t *testing.T) {
	tests := []struct {
		name     string
		rebuilds []bool
		want     int
	}{
		{name: "never", rebuilds: []bool{false, false, false}, want: 0},
		{name: "settle sequence", rebuilds: []bool{false, false, true, false, true}, want: 2},
		{name: "every frame", rebuilds: []bool{true, true, true, true}, want: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &scriptedCreator{rebuilds: tc.rebuilds}
			r := NewRenderingSystem(NewFactory(), c)
			w := ecs.NewWorld()

			for range tc.rebuilds {
				r.Draw(w, nil)
			}

			if c.builders != tc.want {
				t.Fatalf("builder calls = %d, want %d", c.builders, tc.want)
			}
			if r.Builds() != tc.want {
				t.Fatalf("builds = %d, want %d", r.Builds(), tc.want)
			}
			if (r.graph != nil) != (tc.want > 0) {
				t.Fatalf("graph present = %v, want %v", r.graph != nil, tc.want > 0)
			}
		})
	}
}

func TestRenderingSystemKeepsGraphOnBuildError(t *testing.T) {
	c := &scriptedCreator{rebuilds: []bool{true, true}}
	r := NewRenderingSystem(NewFactory(), c)
	w := ecs.NewWorld()

	r.Draw(w, nil)
	first := r.graph
	if first == nil {
		t.Fatalf("expected first graph to build")
	}

	c.fail = true
	r.Draw(w, nil)

	if c.builders != 2 {
		t.Fatalf("builder calls = %d, want 2", c.builders)
	}
	if r.Builds() != 1 {
		t.Fatalf("builds = %d, want 1", r.Builds())
	}
	if r.graph != first {
		t.Fatalf("expected previous graph to be kept")
	}
	if c.invalidated != 1 {
		t.Fatalf("invalidated = %d, want 1", c.invalidated)
	}
}

func TestRenderingSystemNil(t *testing.T) {
	var r *RenderingSystem
	r.Draw(ecs.NewWorld(), nil)
}
