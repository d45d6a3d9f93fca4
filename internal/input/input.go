// Package input snapshots the raylib input state once per frame so every
// consumer sees the same values regardless of update order.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Snapshot is one frame of player intent.
type Snapshot struct {
	Move          rl.Vector2 // X strafe (+right), Y forward (+ahead), unit length
	LookDelta     rl.Vector2 // raw mouse delta in pixels
	Jump          bool
	ThrowHeld     bool
	ThrowReleased bool
	ToggleDebug   bool
}

// Poll reads the device state. Call exactly once per frame, before any
// update that consumes it; pressed/released edges are per-frame and a
// second poll would miss them.
func Poll() Snapshot {
	var s Snapshot

	if rl.IsKeyDown(rl.KeyW) {
		s.Move.Y += 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		s.Move.Y -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		s.Move.X += 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		s.Move.X -= 1
	}

	// Normalize so diagonal movement isn't faster
	lenSq := s.Move.X*s.Move.X + s.Move.Y*s.Move.Y
	if lenSq > 1 {
		s.Move = rl.Vector2Normalize(s.Move)
	}

	s.LookDelta = rl.GetMouseDelta()
	s.Jump = rl.IsKeyPressed(rl.KeySpace)
	s.ThrowHeld = rl.IsMouseButtonDown(rl.MouseLeftButton)
	s.ThrowReleased = rl.IsMouseButtonReleased(rl.MouseLeftButton)
	s.ToggleDebug = rl.IsKeyPressed(rl.KeyF1)

	return s
}
