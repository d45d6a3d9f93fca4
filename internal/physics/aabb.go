package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// NewAABBFromSphere creates the box enclosing a sphere.
func NewAABBFromSphere(center rl.Vector3, radius float32) AABB {
	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	return AABB{
		Min: rl.Vector3Subtract(center, r),
		Max: rl.Vector3Add(center, r),
	}
}

// NewAABBFromCapsule creates the box enclosing a capsule.
func NewAABBFromCapsule(c Capsule) AABB {
	lo := vector3Min(c.Base, c.Tip)
	hi := vector3Max(c.Base, c.Tip)
	r := rl.Vector3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return AABB{
		Min: rl.Vector3Subtract(lo, r),
		Max: rl.Vector3Add(hi, r),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float32) AABB {
	m := rl.Vector3{X: margin, Y: margin, Z: margin}
	return AABB{
		Min: rl.Vector3Subtract(a.Min, m),
		Max: rl.Vector3Add(a.Max, m),
	}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: vector3Min(a.Min, b.Min),
		Max: vector3Max(a.Max, b.Max),
	}
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}
