// Package camera holds the look-only first person camera. It owns yaw and
// pitch; position comes from the physics player every frame, so the camera
// never drifts from the capsule.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type LookCamera struct {
	Yaw       float32 // degrees, 0 looks down +X
	Pitch     float32 // degrees, clamped to avoid gimbal flip
	LookSpeed float32 // degrees per pixel of mouse travel
	Fovy      float32
}

func New() *LookCamera {
	return &LookCamera{
		Yaw:       -90.0,
		Pitch:     0.0,
		LookSpeed: 0.1,
		Fovy:      70,
	}
}

// ApplyLook feeds one frame of mouse delta into yaw and pitch.
func (c *LookCamera) ApplyLook(delta rl.Vector2) {
	c.Yaw += delta.X * c.LookSpeed
	c.Pitch -= delta.Y * c.LookSpeed

	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Forward is the full 3D look direction, unit length.
func (c *LookCamera) Forward() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

// FlatForward and Right span the horizontal movement plane. Pitch is
// ignored so looking down doesn't slow walking.
func (c *LookCamera) FlatForward() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
}

func (c *LookCamera) Right() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	return rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
}

// RLCamera builds the raylib camera for rendering from the given eye point.
func (c *LookCamera) RLCamera(eye rl.Vector3) rl.Camera3D {
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, c.Forward()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
