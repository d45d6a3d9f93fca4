package physics

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config collects every tunable of the simulation core.
type Config struct {
	Player      PlayerConfig
	Projectiles ProjectileConfig
	Octree      OctreeConfig

	// Frame-time handling: the external delta is clamped to MaxFrameTime
	// and split into Substeps equal slices, bounding per-frame work and
	// keeping per-substep displacement small enough to not tunnel.
	Substeps     int
	MaxFrameTime float32
}

func DefaultConfig() Config {
	return Config{
		Player:       DefaultPlayerConfig(),
		Projectiles:  DefaultProjectileConfig(),
		Octree:       DefaultOctreeConfig(),
		Substeps:     5,
		MaxFrameTime: 0.1,
	}
}

// Input is the per-step snapshot the simulation consumes. Accel must
// already be camera-relative and scaled for ground or air control.
type Input struct {
	Accel rl.Vector3
	Jump  bool
}

// BodyPose is the per-frame visual sync record for one projectile.
type BodyPose struct {
	Index  int
	Center rl.Vector3
	Radius float32
}

// Sim owns the static octree, the player mover, and the projectile pool,
// and drives them in a fixed substep loop. Everything runs synchronously
// on the caller's goroutine; there is no locking because there is no
// parallel mutation.
type Sim struct {
	cfg Config

	tree        *Octree
	player      *PlayerMover
	projectiles *ProjectileSim

	poseBuf []BodyPose

	steps       uint64
	lastStatLog time.Time
}

// NewSim builds the static index from level triangles and allocates the
// body pool. Called once at level-load time.
func NewSim(triangles []Triangle, cfg Config) *Sim {
	bounds := TrianglesBounds(triangles).Expand(1)
	tree := BuildOctree(triangles, bounds, cfg.Octree)
	log.Printf("Physics: static index built (%d triangles, %d octree nodes)",
		tree.TriangleCount(), tree.NodeCount())

	return &Sim{
		cfg:         cfg,
		tree:        tree,
		player:      NewPlayerMover(tree, cfg.Player),
		projectiles: NewProjectileSim(tree, cfg.Projectiles),
	}
}

// Step advances the whole simulation by dt. The delta is clamped and
// subdivided; within each substep the player resolves before the
// projectiles so the surrounding game reads a stable player pose.
// Returns true when the player respawned during this step.
func (s *Sim) Step(dt float32, in Input) bool {
	respawned := false
	n, sub := s.substeps(dt)
	for i := 0; i < n; i++ {
		if s.player.Step(sub, in.Accel, in.Jump) {
			respawned = true
		}
		in.Jump = false // a jump request fires at most once per step
		s.projectiles.Step(sub)
	}

	s.steps++
	if time.Since(s.lastStatLog) >= 30*time.Second {
		s.lastStatLog = time.Now()
		log.Printf("Physics: %d steps simulated, %d projectiles spawned",
			s.steps, s.projectiles.Spawned())
	}
	return respawned
}

// StepPlayer advances only the player and reports its pose, for callers
// that drive the two subsystems separately.
func (s *Sim) StepPlayer(dt float32, accel rl.Vector3, jump bool) (rl.Vector3, bool) {
	n, sub := s.substeps(dt)
	for i := 0; i < n; i++ {
		s.player.Step(sub, accel, jump)
		jump = false
	}
	return s.player.Position(), s.player.Grounded()
}

// StepProjectiles advances only the projectile pool and returns the live
// body poses for visual sync. The returned slice is reused between calls.
func (s *Sim) StepProjectiles(dt float32) []BodyPose {
	n, sub := s.substeps(dt)
	for i := 0; i < n; i++ {
		s.projectiles.Step(sub)
	}
	return s.Poses()
}

// substeps clamps dt and splits it into equal slices.
func (s *Sim) substeps(dt float32) (int, float32) {
	if dt <= 0 {
		return 0, 0
	}
	if dt > s.cfg.MaxFrameTime {
		dt = s.cfg.MaxFrameTime
	}
	n := s.cfg.Substeps
	if n < 1 {
		n = 1
	}
	return n, dt / float32(n)
}

// SpawnProjectile launches a body from origin along dir and returns its
// pool slot.
func (s *Sim) SpawnProjectile(origin, dir rl.Vector3, speed float32) int {
	return s.projectiles.Spawn(origin, dir, speed)
}

// Poses returns the live projectile poses for the current frame.
func (s *Sim) Poses() []BodyPose {
	s.poseBuf = s.poseBuf[:0]
	for i, b := range s.projectiles.Bodies() {
		if !b.alive {
			continue
		}
		s.poseBuf = append(s.poseBuf, BodyPose{Index: i, Center: b.Center, Radius: b.Radius})
	}
	return s.poseBuf
}

func (s *Sim) PlayerPosition() rl.Vector3 {
	return s.player.Position()
}

func (s *Sim) PlayerEye() rl.Vector3 {
	return s.player.EyePosition()
}

func (s *Sim) PlayerVelocity() rl.Vector3 {
	return s.player.Velocity()
}

func (s *Sim) PlayerGrounded() bool {
	return s.player.Grounded()
}

func (s *Sim) Player() *PlayerMover {
	return s.player
}

func (s *Sim) Octree() *Octree {
	return s.tree
}

func (s *Sim) Projectiles() *ProjectileSim {
	return s.projectiles
}
