package pass

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/render/graph"
)

// DrawShadedDesc draws every entity with a Transform and Mesh using flat
// Lambert shading from the scene's directional lights.
type DrawShadedDesc struct{}

func NewDrawShadedDesc() DrawShadedDesc {
	return DrawShadedDesc{}
}

func (DrawShadedDesc) Build() (graph.RenderGroup[*Context], error) {
	return &drawShaded{}, nil
}

type drawShaded struct {
	pixel *ebiten.Image
	white *ebiten.Image

	tris     []screenTriangle
	vertices []ebiten.Vertex
	indices  []uint32
}

// screenTriangle is a projected triangle ready to rasterize.
type screenTriangle struct {
	pts   [3]mgl64.Vec2
	depth float64
	color color.NRGBA
}

func (g *drawShaded) Dispose() {
	if g.pixel != nil {
		g.pixel.Deallocate()
		g.pixel = nil
	}
}

func (g *drawShaded) Draw(ctx *Context) {
	width, height := ctx.Size()
	if width == 0 || height == 0 {
		return
	}
	if g.pixel == nil {
		g.pixel, g.white = newWhitePixel()
	}

	lights := collectLights(ctx.World)
	g.tris = collectTriangles(ctx, lights, float64(width), float64(height), g.tris[:0])
	if len(g.tris) == 0 {
		return
	}

	g.vertices, g.indices = g.vertices[:0], g.indices[:0]
	for _, tri := range g.tris {
		base := uint32(len(g.vertices))
		r, gc, b, a := float32(tri.color.R)/255, float32(tri.color.G)/255, float32(tri.color.B)/255, float32(tri.color.A)/255
		for _, p := range tri.pts {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(p.X()), DstY: float32(p.Y()),
				SrcX: 1.5, SrcY: 1.5,
				ColorR: r, ColorG: gc, ColorB: b, ColorA: a,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)
	}

	ctx.Color.DrawTriangles32(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{})
	if ctx.Depth != nil {
		for i := range g.vertices {
			g.vertices[i].ColorR, g.vertices[i].ColorG, g.vertices[i].ColorB, g.vertices[i].ColorA = 1, 1, 1, 1
		}
		ctx.Depth.DrawTriangles32(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{})
	}
}

type light struct {
	dir       mgl64.Vec3 // towards the light
	color     mgl64.Vec3
	intensity float64
	ambient   float64
}

func collectLights(w *ecs.World) []light {
	var out []light
	ecs.ForEach(w, component.DirectionalLightComponent.Kind(), func(_ ecs.Entity, l *component.DirectionalLight) {
		dir := l.Direction
		if dir.Len() == 0 {
			dir = mgl64.Vec3{0, -1, 0}
		}
		out = append(out, light{
			dir:       dir.Normalize().Mul(-1),
			color:     mgl64.Vec3{float64(l.Color.R) / 255, float64(l.Color.G) / 255, float64(l.Color.B) / 255},
			intensity: l.Intensity,
			ambient:   l.Ambient,
		})
	})
	return out
}

// shade returns the lit color of a face with the given world normal. With
// no lights the base color is returned unchanged.
func shade(base color.NRGBA, normal mgl64.Vec3, lights []light) color.NRGBA {
	if len(lights) == 0 {
		return base
	}
	var lit mgl64.Vec3
	for _, l := range lights {
		diffuse := math.Max(0, normal.Dot(l.dir)) * l.intensity
		k := math.Min(1, l.ambient+diffuse)
		lit = lit.Add(l.color.Mul(k))
	}
	channel := func(v uint8, k float64) uint8 {
		return uint8(math.Round(math.Min(1, float64(v)/255*k) * 255))
	}
	return color.NRGBA{
		R: channel(base.R, lit.X()),
		G: channel(base.G, lit.Y()),
		B: channel(base.B, lit.Z()),
		A: base.A,
	}
}

// collectTriangles projects every visible mesh face and sorts the result
// far to near.
func collectTriangles(ctx *Context, lights []light, width, height float64, out []screenTriangle) []screenTriangle {
	vp := ctx.ViewProjection()
	ecs.ForEach2(ctx.World, component.TransformComponent.Kind(), component.MeshComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, m *component.Mesh) {
		if m.Data == nil {
			return
		}
		model := tr.Matrix()
		positions, indices := m.Data.Positions, m.Data.Indices
		for t := 0; t+2 < len(indices); t += 3 {
			var world [3]mgl64.Vec3
			for i := 0; i < 3; i++ {
				world[i] = model.Mul4x1(positions[indices[t+i]].Vec4(1)).Vec3()
			}

			normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			if normal.Len() == 0 {
				continue
			}
			normal = normal.Normalize()
			if normal.Dot(ctx.Eye.Sub(world[0])) <= 0 {
				continue
			}

			tri, ok := project(vp, world, width, height)
			if !ok {
				continue
			}
			center := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
			tri.depth = center.Sub(ctx.Eye).Len()
			tri.color = shade(m.Color, normal, lights)
			out = append(out, tri)
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

// project maps world-space corners to screen pixels. Triangles with any
// corner behind the eye or outside the depth range are dropped.
func project(vp mgl64.Mat4, world [3]mgl64.Vec3, width, height float64) (screenTriangle, bool) {
	var tri screenTriangle
	for i, p := range world {
		clip := vp.Mul4x1(p.Vec4(1))
		if clip.W() <= 1e-9 {
			return tri, false
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		depth := (ndc.Z() + 1) / 2
		if depth < 0 || depth > 1 {
			return tri, false
		}
		tri.pts[i] = mgl64.Vec2{
			(ndc.X() + 1) / 2 * width,
			(1 - ndc.Y()) / 2 * height,
		}
	}
	return tri, true
}
