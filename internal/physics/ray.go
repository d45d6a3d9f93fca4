package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RayHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
	Triangle int32
}

// Raycast finds the closest triangle hit along a ray, up to maxDistance.
// Candidates come from an octree query over the swept segment's box, so
// only nearby leaves are tested.
func (o *Octree) Raycast(origin, direction rl.Vector3, maxDistance float32, scratch []int32) (RayHit, bool) {
	direction = rl.Vector3Normalize(direction)
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	segment := AABB{
		Min: vector3Min(origin, end),
		Max: vector3Max(origin, end),
	}

	candidates := o.QueryTriangles(segment, scratch[:0])

	closest := RayHit{Distance: maxDistance, Triangle: -1}
	hit := false
	for _, ti := range candidates {
		tri := o.Triangle(ti)
		if dist, ok := rayTriangle(origin, direction, tri); ok && dist < closest.Distance {
			closest = RayHit{
				Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, dist)),
				Normal:   tri.Normal,
				Distance: dist,
				Triangle: ti,
			}
			hit = true
		}
	}
	return closest, hit
}

// rayTriangle is the Moller-Trumbore intersection test. Returns the hit
// distance along the (unit) direction.
func rayTriangle(origin, direction rl.Vector3, tri *Triangle) (float32, bool) {
	const epsilon = 1e-7

	edge1 := rl.Vector3Subtract(tri.B, tri.A)
	edge2 := rl.Vector3Subtract(tri.C, tri.A)

	h := cross(direction, edge2)
	det := rl.Vector3DotProduct(edge1, h)
	if det > -epsilon && det < epsilon {
		return 0, false // parallel or degenerate
	}

	inv := 1 / det
	s := rl.Vector3Subtract(origin, tri.A)
	u := inv * rl.Vector3DotProduct(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := cross(s, edge1)
	v := inv * rl.Vector3DotProduct(direction, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := inv * rl.Vector3DotProduct(edge2, q)
	if t < epsilon {
		return 0, false
	}
	return t, true
}
