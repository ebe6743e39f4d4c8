package mesh

import (
	"math"
	"testing"
)

func TestCube(t *testing.T) {
	d := Cube(2)
	if len(d.Positions) != 24 || len(d.Normals) != 24 {
		t.Fatalf("expected 24 vertices, got %d positions %d normals", len(d.Positions), len(d.Normals))
	}
	if d.Triangles() != 12 {
		t.Fatalf("expected 12 triangles, got %d", d.Triangles())
	}
	for i, p := range d.Positions {
		for axis := 0; axis < 3; axis++ {
			if math.Abs(math.Abs(p[axis])-1) > 1e-9 {
				t.Fatalf("vertex %d not on unit cube corner: %v", i, p)
			}
		}
		// every vertex sits on the face its normal points at
		if math.Abs(p.Dot(d.Normals[i])-1) > 1e-9 {
			t.Fatalf("vertex %d not on its face: p=%v n=%v", i, p, d.Normals[i])
		}
	}
}

func TestCubeWindingFacesOutward(t *testing.T) {
	d := Cube(1)
	for i := 0; i < len(d.Indices); i += 3 {
		a, b, c := d.Positions[d.Indices[i]], d.Positions[d.Indices[i+1]], d.Positions[d.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(d.Normals[d.Indices[i]]) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestUVSphere(t *testing.T) {
	tests := []struct {
		name     string
		rings    int
		segments int
		wantErr  bool
	}{
		{"small", 4, 6, false},
		{"default", 12, 24, false},
		{"too_few_rings", 1, 6, true},
		{"too_few_segments", 4, 2, true},
		{"too_many_vertices", 400, 400, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := UVSphere(3, tc.rings, tc.segments)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantTris := 2*tc.rings*tc.segments - 2*tc.segments
			if d.Triangles() != wantTris {
				t.Fatalf("expected %d triangles, got %d", wantTris, d.Triangles())
			}
			for i, p := range d.Positions {
				if math.Abs(p.Len()-3) > 1e-9 {
					t.Fatalf("vertex %d off sphere: len=%f", i, p.Len())
				}
				if math.Abs(d.Normals[i].Len()-1) > 1e-9 {
					t.Fatalf("normal %d not unit", i)
				}
			}
			for _, idx := range d.Indices {
				if int(idx) >= len(d.Positions) {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestWindingFacesOutward(t *testing.T) {
	sphere, err := UVSphere(2, 8, 12)
	if err != nil {
		t.Fatalf("sphere: %v", err)
	}

	tests := []struct {
		name string
		data *Data
	}{
		{"plane", Plane(4)},
		{"sphere", sphere},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.data
			for i := 0; i+2 < len(d.Indices); i += 3 {
				ia, ib, ic := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
				a, b, c := d.Positions[ia], d.Positions[ib], d.Positions[ic]
				face := b.Sub(a).Cross(c.Sub(a))
				vertex := d.Normals[ia].Add(d.Normals[ib]).Add(d.Normals[ic])
				if face.Dot(vertex) <= 0 {
					t.Fatalf("triangle %d winds inward", i/3)
				}
			}
		})
	}
}
