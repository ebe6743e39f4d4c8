// Package pass holds the draw groups the scene graph is made of.
package pass

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcball/ecs"
)

// Context is what a group sees while its pass executes.
type Context struct {
	World *ecs.World

	// Color is the pass's first color attachment.
	Color *ebiten.Image
	// Depth is a coverage mask: opaque where geometry was drawn.
	Depth *ebiten.Image

	View       mgl64.Mat4
	Projection mgl64.Mat4
	Eye        mgl64.Vec3
}

func (c *Context) Size() (int, int) {
	if c == nil || c.Color == nil {
		return 0, 0
	}
	b := c.Color.Bounds()
	return b.Dx(), b.Dy()
}

// ViewProjection returns Projection * View.
func (c *Context) ViewProjection() mgl64.Mat4 {
	return c.Projection.Mul4(c.View)
}

func newWhitePixel() (*ebiten.Image, *ebiten.Image) {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img, img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Srgb is a color with sRGB-encoded components in [0, 1].
type Srgb struct {
	R, G, B float64
}

func (c Srgb) Lerp(to Srgb, t float64) Srgb {
	return Srgb{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}
