package render

import (
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/render/graph"
	"github.com/milk9111/arcball/render/pass"
)

// GraphCreator decides when the frame graph must be rebuilt and produces
// the builder for it.
type GraphCreator interface {
	Rebuild(w *ecs.World) bool
	Builder(f graph.Factory, w *ecs.World) *graph.GraphBuilder[*pass.Context]
}

var (
	ClearColor = graph.ClearColor{R: 0.34, G: 0.36, B: 0.52, A: 1.0}
	ClearDepth = graph.ClearDepthStencil{Depth: 1.0, Stencil: 0}

	SkyNadir  = pass.Srgb{R: 0.82, G: 0.51, B: 0.50}
	SkyZenith = pass.Srgb{R: 0.18, G: 0.11, B: 0.85}
)

// SceneGraph rebuilds the graph once the screen dimensions have held
// steady for two consecutive checks. The surface format is queried once and
// reused by every later build.
type SceneGraph struct {
	dimensions ScreenDimensions
	hasDims    bool
	seen       bool

	format    graph.Format
	hasFormat bool

	dirty bool
}

func NewSceneGraph() *SceneGraph {
	return &SceneGraph{dirty: true}
}

func (g *SceneGraph) Rebuild(w *ecs.World) bool {
	dims, ok := ecs.GetResource(w, ScreenDimensionsResource)

	changed := !g.seen || ok != g.hasDims || (ok && *dims != g.dimensions)
	if changed {
		g.seen = true
		g.hasDims = ok
		g.dimensions = ScreenDimensions{}
		if ok {
			g.dimensions = *dims
		}
		g.dirty = true
		return false
	}

	if !g.dirty {
		return false
	}
	g.dirty = false
	return true
}

// Invalidate marks the graph dirty so the next check at unchanged
// dimensions reports a rebuild.
func (g *SceneGraph) Invalidate() {
	g.dirty = true
}

// Builder creates the two node graph: an opaque pass drawing shaded meshes
// then the skybox into color and depth, and a present of color.
func (g *SceneGraph) Builder(f graph.Factory, w *ecs.World) *graph.GraphBuilder[*pass.Context] {
	g.dirty = false

	win, ok := ecs.GetResource(w, WindowResource)
	if !ok {
		panic("scene graph: window resource missing")
	}

	surface := f.CreateSurface(win)
	if !g.hasFormat {
		g.format = f.SurfaceFormat(surface)
		g.hasFormat = true
	}
	kind := surface.Kind()

	b := graph.NewGraphBuilder[*pass.Context]()
	color := b.CreateImage(kind, 1, g.format, ClearColor)
	depth := b.CreateImage(kind, 1, graph.D32Sfloat, ClearDepth)

	opaque := b.AddNode(
		graph.NewSubpassBuilder[*pass.Context]().
			WithGroup(pass.NewDrawShadedDesc()).
			WithGroup(pass.SkyboxWithColors(SkyNadir, SkyZenith)).
			WithColor(color).
			WithDepthStencil(depth).
			IntoPass(),
	)
	b.AddNode(graph.PresentBuilder[*pass.Context](surface, color).WithDependency(opaque))
	return b
}
