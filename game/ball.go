package game

import "math"

// Crossbar escape kick applied when a deflected ball is nearly still.
const (
	minCrossbarVX   = 1
	crossbarKickVel = 3
)

// Ball is the free body every player competes for.
type Ball struct {
	Pos Vec
	Vel Vec
}

// Reset puts the ball at spawn at rest.
func (b *Ball) Reset(spawn Vec) {
	b.Pos = spawn
	b.Vel = Vec{}
}

// Hits returns the players whose disc overlaps the ball.
func (b *Ball) Hits(players []*Player, cfg PhysConfig) []*Player {
	ball := Circle{Center: b.Pos, Radius: cfg.BallRadius}
	var hits []*Player
	for _, p := range players {
		if Intersects(ball, Circle{Center: p.Pos, Radius: cfg.PlayerRadius}) {
			hits = append(hits, p)
		}
	}
	return hits
}

// Update advances the ball by dt. Players are read, never modified.
func (b *Ball) Update(dt float64, players []*Player, cfg PhysConfig) {
	b.Vel.Y -= cfg.Gravity * dt
	b.Vel.X -= b.Vel.X * dt * cfg.BallDamp

	switch hits := b.Hits(players, cfg); len(hits) {
	case 0:
	case 1:
		p := hits[0]
		dx := b.Pos.X - p.Pos.X
		b.Vel = Vec{
			X: (p.Vel.X + sign(dx)*cfg.KickVel) * math.Abs(dx) / (cfg.PlayerRadius + cfg.BallRadius) * cfg.PlayerBallCoupling,
			Y: p.Vel.Y + cfg.PlayerBallBounceY,
		}
	default:
		b.Vel = Vec{0, cfg.BallCollideBounceVel}
	}

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	r := cfg.BallRadius
	if b.Pos.Y-r < 0 {
		b.Pos.Y = r + eps
		b.Vel.Y = -b.Vel.Y * cfg.BounceCoeff
	}
	if b.Pos.X-r < 0 {
		b.Pos.X = r + eps
		b.Vel.X = -cfg.BounceCoeff * b.Vel.X
	}
	if b.Pos.X+r > cfg.Width {
		b.Pos.X = cfg.Width - r - eps
		b.Vel.X = -cfg.BounceCoeff * b.Vel.X
	}

	if b.crossedBar(dt, cfg) {
		fall := 1.0
		if b.Pos.X > cfg.Width/2 {
			fall = -1
		}
		b.Pos.Y = cfg.GoalHeight + r + eps
		if math.Abs(b.Vel.X) < minCrossbarVX {
			b.Vel.X = fall * crossbarKickVel
		}
		b.Vel.Y = -b.Vel.Y * cfg.BounceCoeff
	}
}

// crossedBar reports whether the ball dropped from above crossbar height to
// at or below it inside a goal mouth during the last step.
func (b *Ball) crossedBar(dt float64, cfg PhysConfig) bool {
	r := cfg.BallRadius
	bar := cfg.GoalHeight + r
	inMouth := b.Pos.X < cfg.GoalWidth+r/2 || b.Pos.X > cfg.Width-cfg.GoalWidth-r/2
	prevY := b.Pos.Y - dt*b.Vel.Y
	return inMouth && b.Pos.Y <= bar && prevY > bar
}

// Goal reports which side scored: 1 when the ball is inside the right goal,
// 2 inside the left goal, 0 otherwise.
func (b *Ball) Goal(cfg PhysConfig) int {
	r := cfg.BallRadius
	if b.Pos.Y >= cfg.GoalHeight+r {
		return 0
	}
	switch {
	case b.Pos.X < cfg.GoalWidth-r:
		return 2
	case b.Pos.X > cfg.Width-cfg.GoalWidth+r:
		return 1
	}
	return 0
}
