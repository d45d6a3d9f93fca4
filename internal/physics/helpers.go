package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cross computes the cross product of two vectors
func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// expDecay returns the velocity retention factor for a drag rate over dt.
// Framerate independent: chaining two half-steps equals one full step.
func expDecay(rate, dt float32) float32 {
	return float32(math.Exp(float64(-rate * dt)))
}

// closestPointOnSegment returns the point on segment [a,b] nearest to p.
func closestPointOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	lenSq := rl.Vector3DotProduct(ab, ab)
	if lenSq < 1e-12 {
		return a
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab) / lenSq
	t = clamp(t, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}
