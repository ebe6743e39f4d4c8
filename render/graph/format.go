// Package graph describes a frame as a set of images and nodes that draw
// into them. It does not depend on a drawing backend: executors walk the
// built Graph and bind their own resources to each ImageID.
package graph

import "fmt"

type Format int

const (
	FormatUndefined Format = iota
	RGBA8Unorm
	RGBA8Srgb
	BGRA8Srgb
	D32Sfloat
)

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case RGBA8Unorm:
		return "rgba8_unorm"
	case RGBA8Srgb:
		return "rgba8_srgb"
	case BGRA8Srgb:
		return "bgra8_srgb"
	case D32Sfloat:
		return "d32_sfloat"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// IsDepth reports whether f can back a depth-stencil attachment.
func (f Format) IsDepth() bool {
	return f == D32Sfloat
}

// IsColor reports whether f can back a color attachment.
func (f Format) IsColor() bool {
	switch f {
	case RGBA8Unorm, RGBA8Srgb, BGRA8Srgb:
		return true
	}
	return false
}

// ImageKind is the extent of a 2D image.
type ImageKind struct {
	Width  int
	Height int
	Layers int
}

func D2(width, height int) ImageKind {
	return ImageKind{Width: width, Height: height, Layers: 1}
}

func (k ImageKind) Empty() bool {
	return k.Width <= 0 || k.Height <= 0
}

// ClearValue is applied to an image before the first node that writes it.
type ClearValue interface {
	clearValue()
}

type ClearColor struct {
	R, G, B, A float32
}

func (ClearColor) clearValue() {}

type ClearDepthStencil struct {
	Depth   float32
	Stencil uint32
}

func (ClearDepthStencil) clearValue() {}

// Window is anything a surface can be created for.
type Window interface {
	Size() (width, height int)
}

// Surface is a presentable target owned by a Factory.
type Surface interface {
	Kind() ImageKind
}

// Factory creates backend surfaces and reports their formats.
type Factory interface {
	CreateSurface(win Window) Surface
	SurfaceFormat(s Surface) Format
}
