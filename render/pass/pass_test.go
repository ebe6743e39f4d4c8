package pass

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/mesh"
)

func testContext(w *ecs.World, eye, center mgl64.Vec3) *Context {
	return &Context{
		World:      w,
		View:       mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0}),
		Projection: mgl64.Perspective(math.Pi/3, 1, 0.1, 100),
		Eye:        eye,
	}
}

func TestSkyboxGradient(t *testing.T) {
	sky := SkyboxWithColors(Srgb{0.82, 0.51, 0.50}, Srgb{0.18, 0.11, 0.85})

	tests := []struct {
		name string
		dir  mgl64.Vec3
		want Srgb
	}{
		{name: "straight down", dir: mgl64.Vec3{0, -1, 0}, want: Srgb{0.82, 0.51, 0.50}},
		{name: "straight up", dir: mgl64.Vec3{0, 5, 0}, want: Srgb{0.18, 0.11, 0.85}},
		{name: "horizon", dir: mgl64.Vec3{1, 0, 0}, want: Srgb{0.50, 0.31, 0.675}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sky.At(tc.dir)
			if math.Abs(got.R-tc.want.R) > 1e-9 || math.Abs(got.G-tc.want.G) > 1e-9 || math.Abs(got.B-tc.want.B) > 1e-9 {
				t.Fatalf("At(%v) = %+v, want %+v", tc.dir, got, tc.want)
			}
		})
	}
}

func TestViewDirectionCenterMatchesForward(t *testing.T) {
	ctx := testContext(nil, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0})
	dir := viewDirection(ctx.ViewProjection().Inv(), 0, 0).Normalize()
	if !dir.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-6) {
		t.Fatalf("center ray = %v, want (0,0,-1)", dir)
	}

	up := viewDirection(ctx.ViewProjection().Inv(), 0, 1).Normalize()
	if up.Y() <= 0 {
		t.Fatalf("top ray = %v, want upward", up)
	}
}

func TestShade(t *testing.T) {
	base := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	sun := []light{{dir: mgl64.Vec3{0, 1, 0}, color: mgl64.Vec3{1, 1, 1}, intensity: 1, ambient: 0.2}}

	tests := []struct {
		name   string
		normal mgl64.Vec3
		lights []light
		want   color.NRGBA
	}{
		{name: "unlit scene", normal: mgl64.Vec3{0, 1, 0}, want: base},
		{name: "facing light", normal: mgl64.Vec3{0, 1, 0}, lights: sun, want: base},
		{name: "facing away", normal: mgl64.Vec3{0, -1, 0}, lights: sun, want: color.NRGBA{R: 40, G: 20, B: 10, A: 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := shade(base, tc.normal, tc.lights); got != tc.want {
				t.Fatalf("shade = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCollectTrianglesCullsAndSorts(t *testing.T) {
	w := ecs.NewWorld()
	spawn := func(pos mgl64.Vec3) {
		e := ecs.CreateEntity(w)
		tr := component.NewTransform(pos)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &tr)
		_ = ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Data: mesh.Cube(1), Color: color.NRGBA{255, 255, 255, 255}})
	}
	spawn(mgl64.Vec3{0, 0, 0})
	spawn(mgl64.Vec3{0, 0, -4})
	spawn(mgl64.Vec3{0, 0, 20})

	ctx := testContext(w, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0})
	tris := collectTriangles(ctx, nil, 100, 100, nil)

	// Each cube in front of the eye shows only its +Z face head-on.
	if len(tris) != 4 {
		t.Fatalf("triangles = %d, want 4", len(tris))
	}
	for i := 1; i < len(tris); i++ {
		if tris[i-1].depth < tris[i].depth {
			t.Fatalf("triangles not sorted far to near: %v then %v", tris[i-1].depth, tris[i].depth)
		}
	}
	for _, tri := range tris {
		for _, p := range tri.pts {
			if p.X() < 0 || p.X() > 100 || p.Y() < 0 || p.Y() > 100 {
				t.Fatalf("point %v outside viewport", p)
			}
		}
	}
}

func TestProjectDropsPointsBehindEye(t *testing.T) {
	ctx := testContext(nil, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0})
	behind := [3]mgl64.Vec3{{0, 0, 6}, {1, 0, 6}, {0, 1, 6}}
	if _, ok := project(ctx.ViewProjection(), behind, 100, 100); ok {
		t.Fatalf("expected triangle behind the eye to be dropped")
	}
	front := [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tri, ok := project(ctx.ViewProjection(), front, 100, 100)
	if !ok {
		t.Fatalf("expected triangle in front of the eye to project")
	}
	if !tri.pts[0].ApproxEqualThreshold(mgl64.Vec2{50, 50}, 1e-9) {
		t.Fatalf("origin projected to %v, want center", tri.pts[0])
	}
}
