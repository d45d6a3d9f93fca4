package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const playerDt = float32(1.0 / 300.0)

func groundedTree(half float32) *Octree {
	tris := groundTriangles(half)
	return BuildOctree(tris, TrianglesBounds(tris).Expand(1), DefaultOctreeConfig())
}

func settle(p *PlayerMover, steps int) {
	for i := 0; i < steps; i++ {
		p.Step(playerDt, rl.Vector3{}, false)
	}
}

func TestPlayerMoverSpawnPose(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(50), cfg)

	approxVec(t, p.Position(), cfg.Spawn, 1e-6, "position")

	c := p.Capsule()
	approx(t, c.Base.Y-p.Position().Y, cfg.Radius, 1e-6, "base offset")
	approx(t, c.Tip.Y-c.Base.Y, cfg.Height-2*cfg.Radius, 1e-6, "segment length")
	approx(t, c.Radius, cfg.Radius, 1e-6, "radius")
	approxVec(t, p.EyePosition(), c.Tip, 1e-6, "eye")
}

func TestPlayerDropsAndSettles(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(50), cfg)

	settle(p, 900) // 3 seconds

	if !p.Grounded() {
		t.Fatal("player should be grounded after falling onto the floor")
	}
	for i := 0; i < 120; i++ {
		p.Step(playerDt, rl.Vector3{}, false)
		if !p.Grounded() {
			t.Fatalf("player left the ground on idle step %d", i)
		}
	}
	pos := p.Position()
	if pos.Y < -0.01 || pos.Y > 0.05 {
		t.Fatalf("feet should rest on the floor, got y=%v", pos.Y)
	}
	v := p.Velocity()
	if abs(v.Y) > 0.01 {
		t.Fatalf("settled player still has vertical velocity %v", v.Y)
	}
}

func TestPlayerGroundDragStopsSliding(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(200), cfg)
	settle(p, 600)

	p.SetVelocity(rl.Vector3{X: 10})
	settle(p, 600) // 2 seconds of drag

	v := p.Velocity()
	if abs(v.X) > 0.1 {
		t.Fatalf("ground drag should have stopped the slide, vx=%v", v.X)
	}
}

func TestPlayerJump(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(50), cfg)
	settle(p, 600)

	p.Step(playerDt, rl.Vector3{}, true)
	if p.Velocity().Y < cfg.JumpImpulse*0.9 {
		t.Fatalf("jump should set upward velocity, got %v", p.Velocity().Y)
	}

	var apex float32
	landed := false
	for i := 0; i < 1200; i++ {
		p.Step(playerDt, rl.Vector3{}, false)
		if y := p.Position().Y; y > apex {
			apex = y
		}
		if i > 60 && p.Grounded() {
			landed = true
			break
		}
	}

	if apex < 1.0 {
		t.Fatalf("jump apex too low: %v", apex)
	}
	if !landed {
		t.Fatal("player never landed after jumping")
	}
	if y := p.Position().Y; y < -0.01 || y > 0.05 {
		t.Fatalf("post-landing feet height %v", y)
	}
}

// Positional resolution must keep the capsule out of the floor even when
// the velocity is repeatedly reset to fast downward and lateral values.
func TestPlayerNoFloorPenetrationUnderStress(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(2000), cfg)
	settle(p, 600)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 2000; i++ {
		p.SetVelocity(rl.Vector3{
			X: (rng.Float32()*2 - 1) * 200,
			Y: -rng.Float32() * 200,
			Z: (rng.Float32()*2 - 1) * 200,
		})
		p.Step(playerDt, rl.Vector3{}, false)

		if y := p.Position().Y; y < -0.01 {
			t.Fatalf("step %d: feet sank to y=%v", i, y)
		}
	}
}

func TestPlayerSlidesAlongFloor(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(200), cfg)
	settle(p, 600)

	// Drive diagonally into the floor; the normal component is removed and
	// the tangential component survives.
	p.SetVelocity(rl.Vector3{X: 8, Y: -8})
	p.Step(playerDt, rl.Vector3{}, false)

	v := p.Velocity()
	if v.Y < -0.01 {
		t.Fatalf("velocity into the floor survived: vy=%v", v.Y)
	}
	if v.X < 7 {
		t.Fatalf("tangential velocity should be preserved, vx=%v", v.X)
	}
}

func TestPlayerKillPlaneRespawns(t *testing.T) {
	cfg := DefaultPlayerConfig()
	p := NewPlayerMover(groundedTree(2), cfg) // tiny platform
	settle(p, 600)

	p.SetVelocity(rl.Vector3{X: 30})
	respawned := false
	for i := 0; i < 3000; i++ {
		if p.Step(playerDt, rl.Vector3{}, false) {
			respawned = true
			break
		}
	}

	if !respawned {
		t.Fatal("player never crossed the kill plane")
	}
	if p.Respawns() != 1 {
		t.Fatalf("Respawns = %d, want 1", p.Respawns())
	}
	approxVec(t, p.Position(), cfg.Spawn, 1e-6, "respawn position")
	approxVec(t, p.Velocity(), rl.Vector3{}, 1e-6, "respawn velocity")
	if p.Grounded() {
		t.Fatal("respawned player starts airborne")
	}
}
