// Package render decides when the frame graph is rebuilt and executes it
// against ebiten images.
package render

import (
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/render/graph"
)

// ScreenDimensions is the logical size of the screen in pixels.
type ScreenDimensions struct {
	Width  int
	Height int
}

// Window is the window the frame graph presents to.
type Window struct {
	Width  int
	Height int
}

func (w *Window) Size() (int, int) {
	return w.Width, w.Height
}

var (
	ScreenDimensionsResource = ecs.NewResourceKind[ScreenDimensions]("screen dimensions")
	WindowResource           = ecs.NewResourceKind[Window]("window")
)

// Surface is the presentable target for the ebiten screen.
type Surface struct {
	kind graph.ImageKind
}

func (s *Surface) Kind() graph.ImageKind {
	return s.kind
}

// Factory creates surfaces sized to the window. Ebiten's screen is always
// an 8-bit unorm RGBA image.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateSurface(win graph.Window) graph.Surface {
	w, h := win.Size()
	return &Surface{kind: graph.D2(w, h)}
}

func (f *Factory) SurfaceFormat(graph.Surface) graph.Format {
	return graph.RGBA8Unorm
}
