package game

// Player is one controllable disc. Only its session mutates it.
type Player struct {
	Pos      Vec
	Vel      Vec
	Keys     KeyState
	OnGround bool
	Jumps    int

	// Dash gesture: direction of the armed first press and the time left
	// to confirm it.
	DashDir  int
	DashLeft float64
	Cooldown float64

	// Horizontal lane. Zero MaxX means the whole arena.
	MinX, MaxX float64
}

// Reset puts the player at spawn with no motion and no jump charges.
func (p *Player) Reset(spawn Vec) {
	p.Pos = spawn
	p.Vel = Vec{}
	p.OnGround = false
	p.Jumps = 0
	p.DashDir = 0
	p.DashLeft = 0
	p.Cooldown = 0
}

// Update advances the player by dt using the key state gathered this tick.
func (p *Player) Update(dt float64, cfg PhysConfig) {
	acc := 0.0
	if p.Keys.Held[KeyLeft] {
		acc--
	}
	if p.Keys.Held[KeyRight] {
		acc++
	}
	p.Vel.X += acc * cfg.PlayerAcc * dt
	p.Vel.X -= cfg.PlayerDamp * p.Vel.X * dt
	p.Vel.Y -= cfg.Gravity * dt

	upTapped := p.Keys.pressedCount(KeyUp) > 0
	if p.Jumps > 0 && ((p.Keys.Held[KeyUp] && p.OnGround) || (upTapped && p.Vel.Y < cfg.DoubleJumpThreshold)) {
		p.Jumps--
		p.Vel.Y = cfg.JumpVelY
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	r := cfg.PlayerRadius
	if p.Pos.Y-r < 0 {
		p.Pos.Y = r + eps
		p.Jumps = 2
		p.OnGround = true
		p.Vel.Y = 0
	} else {
		p.OnGround = false
	}
	p.clampX(r, r, cfg.Width)
	if p.MaxX > 0 {
		p.clampX(0, p.MinX, p.MaxX)
	}

	p.updateDash(dt, cfg)
}

// clampX keeps Pos.X within [lo+r, hi-r], stopping horizontal motion on contact.
func (p *Player) clampX(r, lo, hi float64) {
	if p.Pos.X-lo < r {
		p.Pos.X = lo + r + eps
		p.Vel.X = 0
	}
	if p.Pos.X+r > hi {
		p.Pos.X = hi - r - eps
		p.Vel.X = 0
	}
}

func (p *Player) updateDash(dt float64, cfg PhysConfig) {
	left := p.Keys.pressedCount(KeyLeft)
	right := p.Keys.pressedCount(KeyRight)

	dir := 0
	switch {
	case p.DashDir == 1 && right >= 1 && p.DashLeft > 0:
		dir = 1
	case p.DashDir == -1 && left >= 1 && p.DashLeft > 0:
		dir = -1
	case right >= 2:
		dir = 1
	case left >= 2:
		dir = -1
	case right == 1:
		p.DashDir, p.DashLeft = 1, cfg.DashTimeout
	case left == 1:
		p.DashDir, p.DashLeft = -1, cfg.DashTimeout
	default:
		p.DashLeft -= dt
	}
	if dir != 0 {
		p.DashDir, p.DashLeft = 0, 0
	}

	p.Cooldown -= dt
	if dir != 0 && p.Cooldown <= 0 && p.Vel.Y < cfg.DoubleJumpThreshold {
		p.Vel = Vec{float64(dir) * cfg.DashVelX, p.Vel.Y + cfg.DashVelY}
		p.Cooldown = cfg.DashCooltime
	}
}
