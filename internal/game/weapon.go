package game

// throwState drives the view-model animation and gates when a projectile
// may actually leave the hand.
type throwState int

const (
	stateIdle throwState = iota
	stateCharging
	stateThrowing
	stateRecovering
)

// Weapon charges a throw while the button is held and releases it with a
// speed between MinSpeed and MaxSpeed. Throwing and Recovering are short
// timed states; holding the button through Recovering starts the next
// charge immediately.
type Weapon struct {
	MinSpeed   float32
	MaxSpeed   float32
	ChargeTime float32 // seconds of hold for a full-power throw
	ThrowTime  float32 // wind-up animation length
	Recovery   float32 // cooldown after release

	state  throwState
	charge float32 // 0..1
	timer  float32
	thrown int
}

func NewWeapon() *Weapon {
	return &Weapon{
		MinSpeed:   12,
		MaxSpeed:   34,
		ChargeTime: 1.2,
		ThrowTime:  0.08,
		Recovery:   0.25,
	}
}

// Update advances the state machine one frame. It returns true exactly
// once per completed throw, together with the launch speed for that
// throw.
func (w *Weapon) Update(dt float32, held, released bool) (bool, float32) {
	switch w.state {
	case stateIdle:
		if held {
			w.state = stateCharging
			w.charge = 0
		}

	case stateCharging:
		w.charge += dt / w.ChargeTime
		if w.charge > 1 {
			w.charge = 1
		}
		if released || !held {
			w.state = stateThrowing
			w.timer = w.ThrowTime
		}

	case stateThrowing:
		w.timer -= dt
		if w.timer <= 0 {
			speed := w.MinSpeed + w.charge*(w.MaxSpeed-w.MinSpeed)
			w.state = stateRecovering
			w.timer = w.Recovery
			w.charge = 0
			w.thrown++
			return true, speed
		}

	case stateRecovering:
		w.timer -= dt
		if w.timer <= 0 {
			w.state = stateIdle
			if held {
				w.state = stateCharging
				w.charge = 0
			}
		}
	}
	return false, 0
}

// Charge reports the current hold fraction for the HUD bar.
func (w *Weapon) Charge() float32 {
	return w.charge
}

// Charging reports whether a hold is in progress.
func (w *Weapon) Charging() bool {
	return w.state == stateCharging
}

// Thrown is the total number of completed throws.
func (w *Weapon) Thrown() int {
	return w.thrown
}
