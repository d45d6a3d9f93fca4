package physics

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerConfig tunes the capsule mover. Radius and Height are fixed for
// the lifetime of the session.
type PlayerConfig struct {
	Radius      float32 // capsule radius
	Height      float32 // total capsule height including both end caps
	Gravity     float32 // downward acceleration, positive
	JumpImpulse float32 // vertical velocity applied on a grounded jump
	GroundDrag  float32 // exponential velocity decay rate while grounded
	AirDrag     float32 // exponential velocity decay rate while airborne
	GroundAccel float32 // input acceleration magnitude while grounded; the caller scales Move by it
	AirAccel    float32 // input acceleration magnitude while airborne
	Restitution float32 // small bounce on surface contacts, usually near zero

	MaxResolvePasses int     // collision correction passes per substep
	GroundProbe      float32 // contact tolerance beneath the capsule
	KillY            float32 // below this the player respawns
	Spawn            rl.Vector3
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Radius:           0.35,
		Height:           1.5,
		Gravity:          24.0,
		JumpImpulse:      9.0,
		GroundDrag:       4.0,
		AirDrag:          0.4,
		GroundAccel:      60.0,
		AirAccel:         12.0,
		Restitution:      0.0,
		MaxResolvePasses: 5,
		GroundProbe:      0.08,
		KillY:            -40.0,
		Spawn:            rl.Vector3{Y: 2},
	}
}

// PlayerMover integrates the player capsule against the static world:
// gravity, drag, input acceleration, sliding collision response, and a
// grounded/airborne state machine. Single capsule, mutated every step.
type PlayerMover struct {
	cfg  PlayerConfig
	tree *Octree

	capsule  Capsule
	velocity rl.Vector3
	grounded bool

	queryBuf []int32

	respawns       int
	lastRespawnLog time.Time
}

func NewPlayerMover(tree *Octree, cfg PlayerConfig) *PlayerMover {
	p := &PlayerMover{cfg: cfg, tree: tree}
	p.teleport(cfg.Spawn)
	return p
}

// teleport places the capsule base segment so that pos is the bottom of
// the capsule (the feet).
func (p *PlayerMover) teleport(pos rl.Vector3) {
	segment := p.cfg.Height - 2*p.cfg.Radius
	if segment < 0 {
		segment = 0
	}
	p.capsule = Capsule{
		Base:   rl.Vector3{X: pos.X, Y: pos.Y + p.cfg.Radius, Z: pos.Z},
		Tip:    rl.Vector3{X: pos.X, Y: pos.Y + p.cfg.Radius + segment, Z: pos.Z},
		Radius: p.cfg.Radius,
	}
}

// Step advances the player by one substep. accel is the input-driven
// acceleration, already camera-relative and scaled by the caller for
// ground or air control. Returns true when the kill plane forced a
// respawn this substep.
func (p *PlayerMover) Step(dt float32, accel rl.Vector3, jump bool) bool {
	// Drag, stronger on the ground for crisp stops. Airborne adds gravity.
	drag := p.cfg.GroundDrag
	if !p.grounded {
		drag = p.cfg.AirDrag
		p.velocity.Y -= p.cfg.Gravity * dt
	}
	p.velocity = rl.Vector3Scale(p.velocity, expDecay(drag, dt))

	p.velocity = rl.Vector3Add(p.velocity, rl.Vector3Scale(accel, dt))

	if jump && p.grounded {
		p.velocity.Y = p.cfg.JumpImpulse
		p.grounded = false
	}

	p.capsule = p.capsule.Translate(rl.Vector3Scale(p.velocity, dt))

	p.resolveCollisions()
	p.probeGround()

	if p.capsule.Base.Y < p.cfg.KillY {
		p.respawn()
		return true
	}
	return false
}

// resolveCollisions runs bounded push-out passes against nearby triangles.
// Tangential velocity is preserved; the component into each surface is
// removed (or slightly reflected when Restitution > 0). Hitting the pass
// cap keeps the best-effort position rather than looping forever.
func (p *PlayerMover) resolveCollisions() {
	for pass := 0; pass < p.cfg.MaxResolvePasses; pass++ {
		bounds := NewAABBFromCapsule(p.capsule).Expand(0.1)
		p.queryBuf = p.tree.QueryTriangles(bounds, p.queryBuf[:0])

		corrected := false
		for _, ti := range p.queryBuf {
			contact, ok := CapsuleVsTriangle(p.capsule, p.tree.Triangle(ti))
			if !ok {
				continue
			}
			p.capsule = p.capsule.Translate(rl.Vector3Scale(contact.Normal, contact.Depth))

			vn := rl.Vector3DotProduct(p.velocity, contact.Normal)
			if vn < 0 {
				p.velocity = rl.Vector3Subtract(p.velocity,
					rl.Vector3Scale(contact.Normal, vn*(1+p.cfg.Restitution)))
			}
			corrected = true
		}
		if !corrected {
			return
		}
	}
}

// probeGround tests a short contact directly beneath the capsule's bottom
// sphere and updates the grounded state.
func (p *PlayerMover) probeGround() {
	probe := Sphere{
		Center: rl.Vector3{
			X: p.capsule.Base.X,
			Y: p.capsule.Base.Y - p.cfg.GroundProbe,
			Z: p.capsule.Base.Z,
		},
		Radius: p.cfg.Radius,
	}

	bounds := NewAABBFromSphere(probe.Center, probe.Radius).Expand(0.05)
	p.queryBuf = p.tree.QueryTriangles(bounds, p.queryBuf[:0])

	for _, ti := range p.queryBuf {
		if contact, ok := SphereVsTriangle(probe, p.tree.Triangle(ti)); ok && contact.Normal.Y > 0.5 {
			p.grounded = true
			return
		}
	}
	p.grounded = false
}

// respawn recovers from a fall through the world. Local recovery, not an
// error: the capsule returns to the spawn pose with zero velocity.
func (p *PlayerMover) respawn() {
	p.teleport(p.cfg.Spawn)
	p.velocity = rl.Vector3{}
	p.grounded = false

	p.respawns++
	if time.Since(p.lastRespawnLog) >= time.Second {
		p.lastRespawnLog = time.Now()
		log.Printf("Physics: player fell out of world, respawned (%d total)", p.respawns)
	}
}

// Config returns the mover's tuning values.
func (p *PlayerMover) Config() PlayerConfig {
	return p.cfg
}

// Position returns the bottom point of the capsule (the feet).
func (p *PlayerMover) Position() rl.Vector3 {
	return rl.Vector3{
		X: p.capsule.Base.X,
		Y: p.capsule.Base.Y - p.cfg.Radius,
		Z: p.capsule.Base.Z,
	}
}

// EyePosition returns the top segment point, where a first-person camera sits.
func (p *PlayerMover) EyePosition() rl.Vector3 {
	return p.capsule.Tip
}

func (p *PlayerMover) Capsule() Capsule {
	return p.capsule
}

func (p *PlayerMover) Velocity() rl.Vector3 {
	return p.velocity
}

func (p *PlayerMover) SetVelocity(v rl.Vector3) {
	p.velocity = v
}

func (p *PlayerMover) Grounded() bool {
	return p.grounded
}

func (p *PlayerMover) Respawns() int {
	return p.respawns
}
