package game

import (
	"time"

	"arena3d/internal/camera"
	"arena3d/internal/input"
	"arena3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	sim    *physics.Sim
	level  *Level
	cam    *camera.LookCamera
	weapon *Weapon
	hud    *HUD

	debugMode bool

	// Debug timing (ms)
	stepMs float64
	drawMs float64
}

func New() *Game {
	return &Game{
		level:  NewArena(),
		cam:    camera.New(),
		weapon: NewWeapon(),
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "Arena")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	// Mesh props need the GL context, so they join the level here and the
	// static index is built after. raygui styling needs the window too.
	g.level.AddProps()
	defer g.level.Unload()
	g.sim = physics.NewSim(g.level.Triangles(), physics.DefaultConfig())
	g.hud = NewHUD()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	stepStart := time.Now()
	deltaTime := rl.GetFrameTime()

	in := input.Poll()
	g.cam.ApplyLook(in.LookDelta)

	if in.ToggleDebug {
		g.debugMode = !g.debugMode
	}

	// Camera-relative horizontal acceleration; weaker control midair
	cfg := g.sim.Player().Config()
	accelScale := cfg.GroundAccel
	if !g.sim.PlayerGrounded() {
		accelScale = cfg.AirAccel
	}
	accel := rl.Vector3Add(
		rl.Vector3Scale(g.cam.FlatForward(), in.Move.Y),
		rl.Vector3Scale(g.cam.Right(), in.Move.X),
	)
	accel = rl.Vector3Scale(accel, accelScale)

	g.sim.Step(deltaTime, physics.Input{Accel: accel, Jump: in.Jump})

	if throw, speed := g.weapon.Update(deltaTime, in.ThrowHeld, in.ThrowReleased); throw {
		g.sim.SpawnProjectile(g.sim.PlayerEye(), g.cam.Forward(), speed)
	}

	g.stepMs = float64(time.Since(stepStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	drawStart := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(g.cam.RLCamera(g.sim.PlayerEye()))
	g.level.Draw()
	for _, pose := range g.sim.Poses() {
		rl.DrawSphere(pose.Center, pose.Radius, rl.Orange)
	}
	if g.debugMode {
		g.drawDebugGeometry()
	}
	rl.EndMode3D()

	g.hud.Draw(g)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
	rl.EndDrawing()
}

// drawDebugGeometry overlays the collision state: the player capsule, the
// octree root bounds and the aim point on the static geometry.
func (g *Game) drawDebugGeometry() {
	c := g.sim.Player().Capsule()
	rl.DrawCapsuleWires(c.Base, c.Tip, c.Radius, 8, 4, rl.Green)

	b := g.sim.Octree().Bounds()
	rl.DrawCubeWiresV(b.Center(), b.Size(), rl.SkyBlue)

	if hit, ok := g.sim.Octree().Raycast(g.sim.PlayerEye(), g.cam.Forward(), 100, nil); ok {
		rl.DrawSphere(hit.Point, 0.08, rl.Red)
		rl.DrawLine3D(hit.Point, rl.Vector3Add(hit.Point, rl.Vector3Scale(hit.Normal, 0.5)), rl.Red)
	}
}
