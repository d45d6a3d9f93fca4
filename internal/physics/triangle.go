package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a single world-space triangle with a precomputed plane.
// Immutable after construction.
type Triangle struct {
	A, B, C rl.Vector3
	Normal  rl.Vector3 // unit normal, zero for degenerate triangles
	D       float32    // plane constant: dot(Normal, p) + D = 0 on the plane
}

// NewTriangle builds a triangle and its plane. A zero-area triangle gets a
// zero normal; every collision query treats that as "no contact".
func NewTriangle(a, b, c rl.Vector3) Triangle {
	t := Triangle{A: a, B: b, C: c}
	n := cross(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	lenSq := rl.Vector3DotProduct(n, n)
	if lenSq > 1e-12 {
		t.Normal = rl.Vector3Scale(n, 1/sqrt(lenSq))
		t.D = -rl.Vector3DotProduct(t.Normal, a)
	}
	return t
}

// IsDegenerate reports whether the triangle has no usable plane.
func (t *Triangle) IsDegenerate() bool {
	return t.Normal.X == 0 && t.Normal.Y == 0 && t.Normal.Z == 0
}

// Bounds returns the triangle's enclosing box.
func (t *Triangle) Bounds() AABB {
	return AABB{
		Min: vector3Min(vector3Min(t.A, t.B), t.C),
		Max: vector3Max(vector3Max(t.A, t.B), t.C),
	}
}

// IntersectsBox tests the triangle against an AABB using separating axes:
// the box face normals, the triangle normal, and the nine edge cross axes.
func (t *Triangle) IntersectsBox(box AABB) bool {
	center := box.Center()
	half := rl.Vector3Scale(box.Size(), 0.5)

	// Move triangle into box-local space
	v0 := rl.Vector3Subtract(t.A, center)
	v1 := rl.Vector3Subtract(t.B, center)
	v2 := rl.Vector3Subtract(t.C, center)

	f0 := rl.Vector3Subtract(v1, v0)
	f1 := rl.Vector3Subtract(v2, v1)
	f2 := rl.Vector3Subtract(v0, v2)

	// Box face normals
	if max(v0.X, max(v1.X, v2.X)) < -half.X || min(v0.X, min(v1.X, v2.X)) > half.X {
		return false
	}
	if max(v0.Y, max(v1.Y, v2.Y)) < -half.Y || min(v0.Y, min(v1.Y, v2.Y)) > half.Y {
		return false
	}
	if max(v0.Z, max(v1.Z, v2.Z)) < -half.Z || min(v0.Z, min(v1.Z, v2.Z)) > half.Z {
		return false
	}

	// Triangle normal
	n := cross(f0, f1)
	if rl.Vector3DotProduct(n, n) > 1e-12 {
		if separatedOnAxis(n, v0, v1, v2, half) {
			return false
		}
	}

	// Edge cross axes: box axis u_i x triangle edge f_j
	axes := [9]rl.Vector3{
		{X: 0, Y: -f0.Z, Z: f0.Y},
		{X: 0, Y: -f1.Z, Z: f1.Y},
		{X: 0, Y: -f2.Z, Z: f2.Y},
		{X: f0.Z, Y: 0, Z: -f0.X},
		{X: f1.Z, Y: 0, Z: -f1.X},
		{X: f2.Z, Y: 0, Z: -f2.X},
		{X: -f0.Y, Y: f0.X, Z: 0},
		{X: -f1.Y, Y: f1.X, Z: 0},
		{X: -f2.Y, Y: f2.X, Z: 0},
	}
	for _, axis := range axes {
		if rl.Vector3DotProduct(axis, axis) < 1e-12 {
			continue
		}
		if separatedOnAxis(axis, v0, v1, v2, half) {
			return false
		}
	}

	return true
}

// separatedOnAxis reports whether the triangle projection and the box
// projection are disjoint on the given axis.
func separatedOnAxis(axis, v0, v1, v2, half rl.Vector3) bool {
	p0 := rl.Vector3DotProduct(v0, axis)
	p1 := rl.Vector3DotProduct(v1, axis)
	p2 := rl.Vector3DotProduct(v2, axis)
	lo := min(p0, min(p1, p2))
	hi := max(p0, max(p1, p2))
	r := abs(half.X*axis.X) + abs(half.Y*axis.Y) + abs(half.Z*axis.Z)
	return hi < -r || lo > r
}

// TrianglesBounds returns the box enclosing a triangle set, or a unit box
// around the origin when the set is empty.
func TrianglesBounds(tris []Triangle) AABB {
	if len(tris) == 0 {
		return NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	}
	bounds := tris[0].Bounds()
	for i := 1; i < len(tris); i++ {
		bounds = bounds.Union(tris[i].Bounds())
	}
	return bounds
}
