package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a center plus radius.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// Capsule is a segment from Base to Tip swept by Radius. Base and Tip are
// the segment endpoints, not the outer poles of the end caps.
type Capsule struct {
	Base, Tip rl.Vector3
	Radius    float32
}

// Translate returns the capsule moved by offset.
func (c Capsule) Translate(offset rl.Vector3) Capsule {
	c.Base = rl.Vector3Add(c.Base, offset)
	c.Tip = rl.Vector3Add(c.Tip, offset)
	return c
}

// Contact describes one resolved collision query. Depth is how far the
// shapes interpenetrate along Normal; pushing the queried shape by
// Normal*Depth separates them. Consumed immediately, never retained.
type Contact struct {
	Point  rl.Vector3
	Normal rl.Vector3
	Depth  float32
}

// ClosestPointOnTriangle finds the closest point on a triangle to p using
// barycentric region tests.
func ClosestPointOnTriangle(p rl.Vector3, tri *Triangle) rl.Vector3 {
	a, b, c := tri.A, tri.B, tri.C

	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a // vertex region A
	}

	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b // vertex region B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		denom := d1 - d3
		if denom == 0 {
			return a
		}
		v := d1 / denom
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v)) // edge AB
	}

	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c // vertex region C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		denom := d2 - d6
		if denom == 0 {
			return a
		}
		w := d2 / denom
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w)) // edge AC
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		denom := (d4 - d3) + (d5 - d6)
		if denom == 0 {
			return b
		}
		w := (d4 - d3) / denom
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w)) // edge BC
	}

	// Face region
	denom := va + vb + vc
	if denom == 0 {
		return a
	}
	inv := 1.0 / denom
	v := vb * inv
	w := vc * inv
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

// SphereVsTriangle reports a contact iff the sphere center is within
// Radius of the triangle. The normal points from the triangle toward the
// sphere center; Depth = Radius - distance. Against the triangle face the
// distance is signed, so a center that crossed the plane within the last
// step is still pushed back out the front rather than through.
func SphereVsTriangle(s Sphere, tri *Triangle) (Contact, bool) {
	if tri.IsDegenerate() {
		return Contact{}, false
	}

	closest := ClosestPointOnTriangle(s.Center, tri)
	diff := rl.Vector3Subtract(s.Center, closest)
	distSq := rl.Vector3DotProduct(diff, diff)

	signed := rl.Vector3DotProduct(tri.Normal, s.Center) + tri.D
	if distSq-signed*signed < 1e-7 {
		// Face region: closest is the plane projection
		if signed >= s.Radius || signed <= -s.Radius {
			return Contact{}, false
		}
		return Contact{
			Point:  closest,
			Normal: tri.Normal,
			Depth:  s.Radius - signed,
		}, true
	}

	if distSq >= s.Radius*s.Radius {
		return Contact{}, false
	}
	dist := sqrt(distSq)
	return Contact{
		Point:  closest,
		Normal: rl.Vector3Scale(diff, 1/dist),
		Depth:  s.Radius - dist,
	}, true
}

// CapsuleVsTriangle reports a contact iff the triangle comes within Radius
// of the capsule's central segment. The axis point nearest the triangle is
// found by intersecting the axis with the triangle plane, clamping the
// intersection to the triangle, and projecting back onto the segment; the
// test then reduces to SphereVsTriangle at that point.
func CapsuleVsTriangle(c Capsule, tri *Triangle) (Contact, bool) {
	if tri.IsDegenerate() {
		return Contact{}, false
	}

	axis := rl.Vector3Subtract(c.Tip, c.Base)
	axisLenSq := rl.Vector3DotProduct(axis, axis)
	if axisLenSq < 1e-12 {
		// Degenerate capsule is a sphere.
		return SphereVsTriangle(Sphere{Center: c.Base, Radius: c.Radius}, tri)
	}
	axisDir := rl.Vector3Scale(axis, 1/sqrt(axisLenSq))

	var reference rl.Vector3
	dot := rl.Vector3DotProduct(tri.Normal, axisDir)
	if abs(dot) < 1e-6 {
		// Axis parallel to the triangle plane; any triangle point works as
		// the reference for the segment projection.
		reference = tri.A
	} else {
		t := rl.Vector3DotProduct(rl.Vector3Subtract(tri.A, c.Base), tri.Normal) / dot
		onPlane := rl.Vector3Add(c.Base, rl.Vector3Scale(axisDir, t))
		reference = ClosestPointOnTriangle(onPlane, tri)
	}

	center := closestPointOnSegment(c.Base, c.Tip, reference)
	return SphereVsTriangle(Sphere{Center: center, Radius: c.Radius}, tri)
}

// SphereVsSphere reports a contact iff the spheres overlap. The normal
// points from b toward a; Depth = radius sum - center distance. Exactly
// coincident centers separate along +Y.
func SphereVsSphere(a, b Sphere) (Contact, bool) {
	diff := rl.Vector3Subtract(a.Center, b.Center)
	distSq := rl.Vector3DotProduct(diff, diff)
	minDist := a.Radius + b.Radius
	if distSq >= minDist*minDist {
		return Contact{}, false
	}

	dist := sqrt(distSq)
	normal := rl.Vector3{Y: 1}
	if dist > 1e-6 {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	return Contact{
		Point:  rl.Vector3Add(b.Center, rl.Vector3Scale(normal, b.Radius)),
		Normal: normal,
		Depth:  minDist - dist,
	}, true
}
