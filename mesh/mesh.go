// Package mesh generates the procedural geometry the demo scene is built from.
package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Data is an indexed triangle list. Normals are per vertex.
type Data struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint16
}

// Triangles reports the number of triangles in d.
func (d *Data) Triangles() int {
	if d == nil {
		return 0
	}
	return len(d.Indices) / 3
}

// Cube returns an axis-aligned cube centered on the origin with flat faces.
func Cube(size float64) *Data {
	h := size / 2
	faces := []struct {
		normal mgl64.Vec3
		u, v   mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	}

	d := &Data{}
	for _, f := range faces {
		base := uint16(len(d.Positions))
		center := f.normal.Mul(h)
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := center.Add(f.u.Mul(c[0] * h)).Add(f.v.Mul(c[1] * h))
			d.Positions = append(d.Positions, p)
			d.Normals = append(d.Normals, f.normal)
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

// Plane returns a square in the XZ plane facing +Y.
func Plane(size float64) *Data {
	h := size / 2
	up := mgl64.Vec3{0, 1, 0}
	return &Data{
		Positions: []mgl64.Vec3{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}},
		Normals:   []mgl64.Vec3{up, up, up, up},
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
}

// UVSphere returns a sphere built from latitude rings and longitude segments.
func UVSphere(radius float64, rings, segments int) (*Data, error) {
	if rings < 2 || segments < 3 {
		return nil, fmt.Errorf("mesh: sphere needs at least 2 rings and 3 segments, got %d/%d", rings, segments)
	}
	if (rings+1)*(segments+1) > math.MaxUint16 {
		return nil, fmt.Errorf("mesh: sphere %dx%d exceeds 16-bit indices", rings, segments)
	}

	d := &Data{}
	for r := 0; r <= rings; r++ {
		theta := float64(r) * math.Pi / float64(rings)
		sinT, cosT := math.Sincos(theta)
		for s := 0; s <= segments; s++ {
			phi := float64(s) * 2 * math.Pi / float64(segments)
			sinP, cosP := math.Sincos(phi)
			n := mgl64.Vec3{sinT * cosP, cosT, sinT * sinP}
			d.Positions = append(d.Positions, n.Mul(radius))
			d.Normals = append(d.Normals, n)
		}
	}

	stride := uint16(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint16(r)*stride + uint16(s)
			b := a + stride
			if r != 0 {
				d.Indices = append(d.Indices, a, a+1, b)
			}
			if r != rings-1 {
				d.Indices = append(d.Indices, a+1, b+1, b)
			}
		}
	}
	return d, nil
}
