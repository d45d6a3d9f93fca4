package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUD draws the 2D overlay: crosshair, throw charge bar and the optional
// debug panel.
type HUD struct {
	accent rl.Color
}

func NewHUD() *HUD {
	accent := rl.NewColor(255, 161, 0, 255)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
	gui.SetStyle(gui.PROGRESSBAR, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(accent))
	return &HUD{accent: accent}
}

func (h *HUD) Draw(g *Game) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	// Crosshair
	cx, cy := screenW/2, screenH/2
	rl.DrawLine(cx-8, cy, cx+8, cy, rl.RayWhite)
	rl.DrawLine(cx, cy-8, cx, cy+8, rl.RayWhite)

	// Charge bar, only while a hold is in progress
	if g.weapon.Charging() {
		bar := rl.Rectangle{
			X:      float32(cx - 80),
			Y:      float32(screenH - 60),
			Width:  160,
			Height: 14,
		}
		gui.ProgressBar(bar, "", "", g.weapon.Charge(), 0, 1)
	}

	rl.DrawText("WASD move, Space jump, hold LMB to charge a throw", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 debug overlay", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	if g.debugMode {
		h.drawDebug(g)
	}
}

func (h *HUD) drawDebug(g *Game) {
	pos := g.sim.PlayerPosition()
	vel := g.sim.PlayerVelocity()

	rl.DrawText(fmt.Sprintf("Pos: (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z), 10, 90, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Vel: (%.2f, %.2f, %.2f)", vel.X, vel.Y, vel.Z), 10, 110, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Grounded: %v  Respawns: %d", g.sim.PlayerGrounded(), g.sim.Player().Respawns()), 10, 130, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Triangles: %d  Octree nodes: %d",
		g.sim.Octree().TriangleCount(), g.sim.Octree().NodeCount()), 10, 150, 16, rl.Yellow)
	rl.DrawText(fmt.Sprintf("Projectiles live: %d  spawned: %d",
		len(g.sim.Poses()), g.sim.Projectiles().Spawned()), 10, 170, 16, rl.Yellow)
	rl.DrawText(fmt.Sprintf("Throws: %d", g.weapon.Thrown()), 10, 190, 16, rl.Yellow)

	rl.DrawText(fmt.Sprintf("Step:  %.2f ms", g.stepMs), 10, 215, 16, rl.Lime)
	rl.DrawText(fmt.Sprintf("Draw:  %.2f ms", g.drawMs), 10, 235, 16, rl.Lime)
}
