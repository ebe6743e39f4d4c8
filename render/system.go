package render

import (
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/render/graph"
	"github.com/milk9111/arcball/render/pass"
)

// RenderingSystem asks its GraphCreator whether to rebuild each frame and
// executes the current graph against the ebiten screen.
type RenderingSystem struct {
	factory graph.Factory
	creator GraphCreator

	graph  *graph.Graph[*pass.Context]
	images map[graph.ImageID]*ebiten.Image
	builds int

	camEntity ecs.Entity
}

// invalidator is implemented by creators that can be asked to report a
// rebuild again after a failed build.
type invalidator interface {
	Invalidate()
}

func NewRenderingSystem(factory graph.Factory, creator GraphCreator) *RenderingSystem {
	return &RenderingSystem{
		factory: factory,
		creator: creator,
		images:  make(map[graph.ImageID]*ebiten.Image),
	}
}

// Builds reports how many graphs have been built so far.
func (r *RenderingSystem) Builds() int {
	return r.builds
}

func (r *RenderingSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}

	if r.creator.Rebuild(w) {
		r.rebuild(w)
	}
	if r.graph == nil {
		return
	}

	r.execute(w, screen)
}

func (r *RenderingSystem) rebuild(w *ecs.World) {
	g, err := r.creator.Builder(r.factory, w).Build()
	if err != nil {
		log.Printf("render: build graph: %v", err)
		if inv, ok := r.creator.(invalidator); ok {
			inv.Invalidate()
		}
		return
	}

	r.Dispose()
	r.graph = g
	r.builds++
	for _, desc := range g.Images() {
		r.images[desc.ID] = ebiten.NewImage(desc.Kind.Width, desc.Kind.Height)
	}
}

// Dispose frees the current graph and its images.
func (r *RenderingSystem) Dispose() {
	if r.graph != nil {
		r.graph.Dispose()
		r.graph = nil
	}
	for id, img := range r.images {
		img.Deallocate()
		delete(r.images, id)
	}
}

func (r *RenderingSystem) execute(w *ecs.World, screen *ebiten.Image) {
	cleared := make(map[graph.ImageID]bool, len(r.images))
	clearOnce := func(id graph.ImageID) *ebiten.Image {
		img := r.images[id]
		if img == nil || cleared[id] {
			return img
		}
		cleared[id] = true
		desc, _ := r.graph.Image(id)
		switch c := desc.Clear.(type) {
		case graph.ClearColor:
			img.Fill(ClearNRGBA(c, desc.Format))
		case graph.ClearDepthStencil:
			img.Clear()
		}
		return img
	}

	for _, node := range r.graph.Nodes() {
		switch node.Kind {
		case graph.NodePass:
			if len(node.Colors) == 0 {
				continue
			}
			ctx := &pass.Context{World: w, Color: clearOnce(node.Colors[0])}
			for _, id := range node.Colors[1:] {
				clearOnce(id)
			}
			if node.HasDepth {
				ctx.Depth = clearOnce(node.DepthStencil)
			}
			width, height := ctx.Size()
			r.setCamera(w, ctx, float64(width)/math.Max(1, float64(height)))
			for _, group := range node.Groups {
				group.Draw(ctx)
			}
		case graph.NodePresent:
			img := clearOnce(node.Image)
			if img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			sb, ib := screen.Bounds(), img.Bounds()
			if sb.Dx() != ib.Dx() || sb.Dy() != ib.Dy() {
				op.GeoM.Scale(float64(sb.Dx())/float64(ib.Dx()), float64(sb.Dy())/float64(ib.Dy()))
			}
			screen.DrawImage(img, op)
		}
	}
}

func (r *RenderingSystem) setCamera(w *ecs.World, ctx *pass.Context, aspect float64) {
	if !r.camEntity.Valid() || !ecs.Has(w, r.camEntity, component.CameraComponent.Kind()) {
		r.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}

	cam, okCam := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	tr, okTr := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !okCam || !okTr {
		ctx.View = mgl64.Ident4()
		ctx.Projection = mgl64.Perspective(math.Pi/3, aspect, 0.1, 1000)
		return
	}

	ctx.View, ctx.Eye = ViewMatrix(tr)
	ctx.Projection = cam.Projection(aspect)
}

// ViewMatrix returns the world-to-view matrix for a camera transform and the
// eye position.
func ViewMatrix(tr *component.Transform) (mgl64.Mat4, mgl64.Vec3) {
	eye := tr.Position
	up := tr.Rotation.Normalize().Rotate(mgl64.Vec3{0, 1, 0})
	return mgl64.LookAtV(eye, eye.Add(tr.Forward()), up), eye
}

// ClearNRGBA converts a linear clear color to the 8-bit encoding of format.
func ClearNRGBA(c graph.ClearColor, format graph.Format) color.NRGBA {
	encode := func(v float32) uint8 {
		x := math.Max(0, math.Min(1, float64(v)))
		switch format {
		case graph.RGBA8Srgb, graph.BGRA8Srgb:
			x = linearToSrgb(x)
		}
		return uint8(math.Round(x * 255))
	}
	return color.NRGBA{R: encode(c.R), G: encode(c.G), B: encode(c.B), A: uint8(math.Round(math.Max(0, math.Min(1, float64(c.A))) * 255))}
}

func linearToSrgb(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}
