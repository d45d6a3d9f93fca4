package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tol) {
		t.Fatalf("%s = %.7f, want %.7f (tol=%.7f)", field, got, want, tol)
	}
}

func approxVec(t *testing.T, got, want rl.Vector3, tol float32, field string) {
	t.Helper()
	approx(t, got.X, want.X, tol, field+".x")
	approx(t, got.Y, want.Y, tol, field+".y")
	approx(t, got.Z, want.Z, tol, field+".z")
}

// groundTriangles returns a flat horizontal square at y=0 as two triangles
// with upward normals.
func groundTriangles(half float32) []Triangle {
	a := rl.Vector3{X: -half, Y: 0, Z: -half}
	b := rl.Vector3{X: half, Y: 0, Z: -half}
	c := rl.Vector3{X: half, Y: 0, Z: half}
	d := rl.Vector3{X: -half, Y: 0, Z: half}
	return []Triangle{
		NewTriangle(a, c, b),
		NewTriangle(a, d, c),
	}
}

func TestNewTriangleComputesPlane(t *testing.T) {
	tri := NewTriangle(
		rl.Vector3{X: -1, Y: 0, Z: -1},
		rl.Vector3{X: 1, Y: 0, Z: 1},
		rl.Vector3{X: 1, Y: 0, Z: -1},
	)
	approxVec(t, tri.Normal, rl.Vector3{Y: 1}, 1e-6, "normal")
	approx(t, tri.D, 0, 1e-6, "plane constant")
}

func TestNewTriangleDegenerate(t *testing.T) {
	// Zero-area triangle: all points on a line
	tri := NewTriangle(
		rl.Vector3{X: 0, Y: 0, Z: 0},
		rl.Vector3{X: 1, Y: 0, Z: 0},
		rl.Vector3{X: 2, Y: 0, Z: 0},
	)
	if !tri.IsDegenerate() {
		t.Fatal("collinear triangle should be degenerate")
	}
	if _, ok := SphereVsTriangle(Sphere{Radius: 10}, &tri); ok {
		t.Fatal("degenerate triangle must report no contact")
	}
	capsule := Capsule{Base: rl.Vector3{}, Tip: rl.Vector3{Y: 1}, Radius: 10}
	if _, ok := CapsuleVsTriangle(capsule, &tri); ok {
		t.Fatal("degenerate triangle must report no contact")
	}
}

func TestClosestPointOnTriangleRegions(t *testing.T) {
	tri := NewTriangle(
		rl.Vector3{X: 0, Y: 0, Z: 0},
		rl.Vector3{X: 2, Y: 0, Z: 0},
		rl.Vector3{X: 0, Y: 0, Z: 2},
	)

	// Face region: straight projection
	approxVec(t, ClosestPointOnTriangle(rl.Vector3{X: 0.5, Y: 3, Z: 0.5}, &tri),
		rl.Vector3{X: 0.5, Y: 0, Z: 0.5}, 1e-6, "face")

	// Vertex region
	approxVec(t, ClosestPointOnTriangle(rl.Vector3{X: -1, Y: 0, Z: -1}, &tri),
		rl.Vector3{}, 1e-6, "vertex A")

	// Edge region of AB
	approxVec(t, ClosestPointOnTriangle(rl.Vector3{X: 1, Y: 0, Z: -5}, &tri),
		rl.Vector3{X: 1, Y: 0, Z: 0}, 1e-6, "edge AB")

	// Edge region of BC (the hypotenuse)
	approxVec(t, ClosestPointOnTriangle(rl.Vector3{X: 2, Y: 0, Z: 2}, &tri),
		rl.Vector3{X: 1, Y: 0, Z: 1}, 1e-6, "edge BC")
}

func TestSphereVsTriangleDepth(t *testing.T) {
	tris := groundTriangles(10)
	tri := &tris[0]

	// Hovering above: no contact
	if _, ok := SphereVsTriangle(Sphere{Center: rl.Vector3{X: 2, Y: 0.5, Z: -2}, Radius: 0.5}, tri); ok {
		t.Fatal("sphere touching exactly at radius should not contact")
	}

	// Penetrating by 0.2
	contact, ok := SphereVsTriangle(Sphere{Center: rl.Vector3{X: 2, Y: 0.3, Z: -2}, Radius: 0.5}, tri)
	if !ok {
		t.Fatal("expected contact")
	}
	approx(t, contact.Depth, 0.2, 1e-6, "depth")
	approxVec(t, contact.Normal, rl.Vector3{Y: 1}, 1e-6, "normal")
}

func TestSphereVsTriangleCenterOnPlane(t *testing.T) {
	tris := groundTriangles(10)
	contact, ok := SphereVsTriangle(Sphere{Center: rl.Vector3{X: 2, Y: 0, Z: -2}, Radius: 0.5}, &tris[0])
	if !ok {
		t.Fatal("expected contact")
	}
	// Center exactly on the surface falls back to the triangle normal
	approxVec(t, contact.Normal, rl.Vector3{Y: 1}, 1e-6, "normal")
	approx(t, contact.Depth, 0.5, 1e-6, "depth")
}

func TestSphereVsTriangleBehindFace(t *testing.T) {
	tris := groundTriangles(10)
	tri := &tris[0]

	// A center that overshot the plane is still pushed out the front.
	contact, ok := SphereVsTriangle(Sphere{Center: rl.Vector3{X: 2, Y: -0.3, Z: -2}, Radius: 0.5}, tri)
	if !ok {
		t.Fatal("expected contact")
	}
	approxVec(t, contact.Normal, rl.Vector3{Y: 1}, 1e-6, "normal")
	approx(t, contact.Depth, 0.8, 1e-6, "depth")

	// Deeper than a full radius behind the plane: out of reach
	if _, ok := SphereVsTriangle(Sphere{Center: rl.Vector3{X: 2, Y: -0.6, Z: -2}, Radius: 0.5}, tri); ok {
		t.Fatal("sphere a full radius behind the face should not contact")
	}
}

func TestCapsuleVsTriangleSeparationProperty(t *testing.T) {
	tris := groundTriangles(10)
	tri := &tris[0]

	capsuleAt := func(gap float32) Capsule {
		return Capsule{
			Base:   rl.Vector3{X: 1, Y: gap, Z: -1},
			Tip:    rl.Vector3{X: 1, Y: gap + 0.8, Z: -1},
			Radius: 0.35,
		}
	}

	// Segment distance >= radius: never a contact
	for _, gap := range []float32{0.35, 0.4, 1, 5} {
		if _, ok := CapsuleVsTriangle(capsuleAt(gap), tri); ok {
			t.Fatalf("gap %.2f >= radius must report no contact", gap)
		}
	}

	// Distance < radius: depth = radius - distance
	for _, gap := range []float32{0.0, 0.1, 0.2, 0.34} {
		contact, ok := CapsuleVsTriangle(capsuleAt(gap), tri)
		if !ok {
			t.Fatalf("gap %.2f < radius must report a contact", gap)
		}
		approx(t, contact.Depth, 0.35-gap, 1e-6, "depth")
		if contact.Normal.Y < 0.99 {
			t.Fatalf("normal should point from triangle toward the axis, got %+v", contact.Normal)
		}
	}
}

func TestCapsuleVsTriangleParallelAxis(t *testing.T) {
	tris := groundTriangles(10)

	// Horizontal capsule lying just above the ground plane
	capsule := Capsule{
		Base:   rl.Vector3{X: -1, Y: 0.2, Z: 0},
		Tip:    rl.Vector3{X: 1, Y: 0.2, Z: 0},
		Radius: 0.35,
	}
	foundDepth := float32(0)
	for i := range tris {
		if contact, ok := CapsuleVsTriangle(capsule, &tris[i]); ok {
			if contact.Depth > foundDepth {
				foundDepth = contact.Depth
			}
		}
	}
	approx(t, foundDepth, 0.15, 1e-5, "parallel capsule depth")
}

func TestCapsuleVsTriangleDegenerateCapsule(t *testing.T) {
	tris := groundTriangles(10)
	// Zero-length axis degrades to a sphere test
	capsule := Capsule{
		Base:   rl.Vector3{X: 0, Y: 0.2, Z: 0},
		Tip:    rl.Vector3{X: 0, Y: 0.2, Z: 0},
		Radius: 0.5,
	}
	contact, ok := CapsuleVsTriangle(capsule, &tris[0])
	if !ok {
		t.Fatal("expected contact")
	}
	approx(t, contact.Depth, 0.3, 1e-6, "depth")
}

func TestSphereVsSphere(t *testing.T) {
	a := Sphere{Center: rl.Vector3{X: 0.3, Y: 0, Z: 0}, Radius: 0.2}
	b := Sphere{Center: rl.Vector3{X: 0, Y: 0, Z: 0}, Radius: 0.2}

	contact, ok := SphereVsSphere(a, b)
	if !ok {
		t.Fatal("expected overlap")
	}
	approxVec(t, contact.Normal, rl.Vector3{X: 1}, 1e-6, "normal points b to a")
	approx(t, contact.Depth, 0.1, 1e-6, "depth")

	// Exactly at radius sum: no contact
	a.Center.X = 0.4
	if _, ok := SphereVsSphere(a, b); ok {
		t.Fatal("touching at radius sum should not contact")
	}
}
