package pass

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcball/render/graph"
)

const skyboxGrid = 8

// DrawSkyboxDesc fills every pixel not covered by geometry with a vertical
// gradient from Nadir (looking straight down) to Zenith (straight up).
type DrawSkyboxDesc struct {
	Nadir  Srgb
	Zenith Srgb
}

func SkyboxWithColors(nadir, zenith Srgb) DrawSkyboxDesc {
	return DrawSkyboxDesc{Nadir: nadir, Zenith: zenith}
}

func (d DrawSkyboxDesc) Build() (graph.RenderGroup[*Context], error) {
	return &drawSkybox{desc: d}, nil
}

type drawSkybox struct {
	desc    DrawSkyboxDesc
	pixel   *ebiten.Image
	white   *ebiten.Image
	scratch *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

func (g *drawSkybox) Dispose() {
	if g.pixel != nil {
		g.pixel.Deallocate()
		g.pixel = nil
	}
	if g.scratch != nil {
		g.scratch.Deallocate()
		g.scratch = nil
	}
}

func (g *drawSkybox) Draw(ctx *Context) {
	width, height := ctx.Size()
	if width == 0 || height == 0 {
		return
	}
	if g.pixel == nil {
		g.pixel, g.white = newWhitePixel()
	}

	if g.scratch == nil || g.scratch.Bounds().Dx() != width || g.scratch.Bounds().Dy() != height {
		if g.scratch != nil {
			g.scratch.Deallocate()
		}
		g.scratch = ebiten.NewImage(width, height)
	}
	g.scratch.Clear()

	inv := ctx.ViewProjection().Inv()
	g.vertices, g.indices = g.vertices[:0], g.indices[:0]
	for row := 0; row <= skyboxGrid; row++ {
		for col := 0; col <= skyboxGrid; col++ {
			sx := float64(col) / skyboxGrid
			sy := float64(row) / skyboxGrid
			c := g.desc.At(viewDirection(inv, sx*2-1, 1-sy*2))
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(sx * float64(width)), DstY: float32(sy * float64(height)),
				SrcX: 1.5, SrcY: 1.5,
				ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: 1,
			})
		}
	}
	for row := 0; row < skyboxGrid; row++ {
		for col := 0; col < skyboxGrid; col++ {
			i := uint16(row*(skyboxGrid+1) + col)
			j := i + skyboxGrid + 1
			g.indices = append(g.indices, i, i+1, j, i+1, j+1, j)
		}
	}
	g.scratch.DrawTriangles(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{})

	if ctx.Depth != nil {
		g.scratch.DrawImage(ctx.Depth, &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationOut})
	}
	ctx.Color.DrawImage(g.scratch, nil)
}

// At returns the sky color seen along dir.
func (d DrawSkyboxDesc) At(dir mgl64.Vec3) Srgb {
	if dir.Len() == 0 {
		return d.Nadir.Lerp(d.Zenith, 0.5)
	}
	t := (dir.Normalize().Y() + 1) / 2
	return d.Nadir.Lerp(d.Zenith, t)
}

// viewDirection unprojects an NDC point into a world-space ray direction.
func viewDirection(invViewProj mgl64.Mat4, x, y float64) mgl64.Vec3 {
	near := invViewProj.Mul4x1(mgl64.Vec4{x, y, -1, 1})
	far := invViewProj.Mul4x1(mgl64.Vec4{x, y, 1, 1})
	if near.W() == 0 || far.W() == 0 {
		return mgl64.Vec3{}
	}
	return far.Vec3().Mul(1 / far.W()).Sub(near.Vec3().Mul(1 / near.W()))
}
