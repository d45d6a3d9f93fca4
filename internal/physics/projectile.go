package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ProjectileConfig tunes the sphere body pool.
type ProjectileConfig struct {
	PoolSize    int     // fixed body count, preallocated at startup
	Radius      float32 // per-body collision radius
	Gravity     float32 // downward acceleration, positive
	Damping     float32 // linear air-resistance decay rate
	Restitution float32 // bounce energy kept per surface hit, < 1
	Friction    float32 // tangential velocity kept fraction lost per surface hit
	MaxSpeed    float32 // hard speed clamp, a stability guard
	SpawnOffset float32 // forward offset at spawn to clear the thrower
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		PoolSize:    300,
		Radius:      0.2,
		Gravity:     24.0,
		Damping:     0.15,
		Restitution: 0.55,
		Friction:    0.1,
		MaxSpeed:    80.0,
		SpawnOffset: 0.6,
	}
}

// Body is one pooled projectile sphere. Radius is constant per body;
// Center and Velocity are the only mutable fields.
type Body struct {
	Center   rl.Vector3
	Velocity rl.Vector3
	Radius   float32
	alive    bool
}

func (b *Body) Alive() bool {
	return b.alive
}

// ProjectileSim integrates a fixed pool of sphere bodies against the
// static world and against each other. Spawning reuses the oldest slot in
// round-robin order; the pool never grows and the oldest body is silently
// recycled when the pool wraps.
type ProjectileSim struct {
	cfg  ProjectileConfig
	tree *Octree

	bodies  []Body
	spawned uint64 // monotonic spawn counter; slot = spawned % PoolSize

	index    *SphereIndex
	triBuf   []int32
	pairBuf  []int32
}

func NewProjectileSim(tree *Octree, cfg ProjectileConfig) *ProjectileSim {
	bodies := make([]Body, cfg.PoolSize)
	for i := range bodies {
		bodies[i].Radius = cfg.Radius
	}
	return &ProjectileSim{
		cfg:    cfg,
		tree:   tree,
		bodies: bodies,
		index:  NewSphereIndex(5, 8),
	}
}

// Spawn launches a projectile from origin along dir at speed and returns
// the pool slot used. The start point is pushed SpawnOffset along dir so a
// throw cannot immediately collide with the thrower.
func (s *ProjectileSim) Spawn(origin, dir rl.Vector3, speed float32) int {
	dir = rl.Vector3Normalize(dir)
	slot := int(s.spawned % uint64(s.cfg.PoolSize))
	s.spawned++

	body := &s.bodies[slot]
	body.Center = rl.Vector3Add(origin, rl.Vector3Scale(dir, s.cfg.SpawnOffset))
	body.Velocity = rl.Vector3Scale(dir, speed)
	body.alive = true
	return slot
}

// Step advances every live body by one substep: integration, world
// collision, then pairwise collision in pool-index order.
func (s *ProjectileSim) Step(dt float32) {
	damp := expDecay(s.cfg.Damping, dt)
	for i := range s.bodies {
		body := &s.bodies[i]
		if !body.alive {
			continue
		}
		body.Velocity.Y -= s.cfg.Gravity * dt
		body.Velocity = rl.Vector3Scale(body.Velocity, damp)
		body.Center = rl.Vector3Add(body.Center, rl.Vector3Scale(body.Velocity, dt))

		s.collideWorld(body)
	}

	// The dynamic index is rebuilt after integration and before any
	// pairwise query, and is never modified mid-query.
	s.index.Rebuild(s.bodies)
	for i := range s.bodies {
		if !s.bodies[i].alive {
			continue
		}
		s.collidePairs(i)
	}

	for i := range s.bodies {
		if s.bodies[i].alive {
			s.clampSpeed(&s.bodies[i])
		}
	}
}

// collideWorld pushes a body out of nearby triangles, reflecting the
// normal velocity component by the restitution and bleeding tangential
// speed through friction.
func (s *ProjectileSim) collideWorld(body *Body) {
	bounds := NewAABBFromSphere(body.Center, body.Radius).Expand(0.05)
	s.triBuf = s.tree.QueryTriangles(bounds, s.triBuf[:0])

	for _, ti := range s.triBuf {
		contact, ok := SphereVsTriangle(Sphere{Center: body.Center, Radius: body.Radius}, s.tree.Triangle(ti))
		if !ok {
			continue
		}
		body.Center = rl.Vector3Add(body.Center, rl.Vector3Scale(contact.Normal, contact.Depth))

		vn := rl.Vector3DotProduct(body.Velocity, contact.Normal)
		if vn < 0 {
			normalPart := rl.Vector3Scale(contact.Normal, vn)
			tangent := rl.Vector3Subtract(body.Velocity, normalPart)
			body.Velocity = rl.Vector3Add(
				rl.Vector3Scale(normalPart, -s.cfg.Restitution),
				rl.Vector3Scale(tangent, 1-s.cfg.Friction))
		}
	}
}

// collidePairs resolves body i against every overlapping body with a
// higher pool index, so each pair is handled exactly once per substep and
// resolution order is deterministic.
func (s *ProjectileSim) collidePairs(i int) {
	a := &s.bodies[i]
	s.pairBuf = s.index.QuerySpheres(a.Center, a.Radius, int32(i), s.pairBuf[:0])

	for _, j := range s.pairBuf {
		if int(j) < i {
			continue
		}
		b := &s.bodies[j]
		contact, ok := SphereVsSphere(
			Sphere{Center: a.Center, Radius: a.Radius},
			Sphere{Center: b.Center, Radius: b.Radius})
		if !ok {
			continue
		}

		// Equal mass assumed: split the correction 50/50.
		half := rl.Vector3Scale(contact.Normal, contact.Depth/2)
		a.Center = rl.Vector3Add(a.Center, half)
		b.Center = rl.Vector3Subtract(b.Center, half)

		relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
		vn := rl.Vector3DotProduct(relVel, contact.Normal)
		if vn >= 0 {
			continue // already separating
		}

		// Elastic impulse between unit masses with restitution.
		impulse := -(1 + s.cfg.Restitution) * vn / 2
		push := rl.Vector3Scale(contact.Normal, impulse)
		a.Velocity = rl.Vector3Add(a.Velocity, push)
		b.Velocity = rl.Vector3Subtract(b.Velocity, push)
	}
}

// clampSpeed bounds a body's speed so stacked overlap corrections cannot
// inject unbounded energy.
func (s *ProjectileSim) clampSpeed(body *Body) {
	speedSq := rl.Vector3DotProduct(body.Velocity, body.Velocity)
	if speedSq > s.cfg.MaxSpeed*s.cfg.MaxSpeed {
		body.Velocity = rl.Vector3Scale(body.Velocity, s.cfg.MaxSpeed/sqrt(speedSq))
	}
}

// Bodies exposes the pool for read-back by the render layer. Callers must
// not mutate entries.
func (s *ProjectileSim) Bodies() []Body {
	return s.bodies
}

// Spawned returns the monotonic spawn count.
func (s *ProjectileSim) Spawned() uint64 {
	return s.spawned
}
