package game

import "math"

// PhysConfig holds the tunable physics constants of one arena. Values in
// ClassicConfig are expressed per classic frame; Rescale converts them to
// per-second units for a simulation that runs on real time.
type PhysConfig struct {
	Gravity              float64
	PlayerAcc            float64
	PlayerDamp           float64
	JumpVelY             float64
	DashVelX             float64
	DashVelY             float64
	DashTimeout          float64 // seconds
	DashCooltime         float64 // seconds
	Width                float64
	GoalWidth            float64
	GoalHeight           float64
	PlayerRadius         float64
	BallRadius           float64
	BounceCoeff          float64
	BallDamp             float64
	DoubleJumpThreshold  float64
	BallCollideBounceVel float64
	PlayerBallCoupling   float64
	PlayerBallBounceY    float64
	KickVel              float64
	RadiusShrink         float64
}

// Classic frame duration in seconds, used to rescale ClassicConfig.
const (
	ClassicFrame = 0.027
	SquadFrame   = ClassicFrame * 0.9
)

// ClassicConfig returns the reference tuning in per-frame units.
func ClassicConfig() PhysConfig {
	return PhysConfig{
		Gravity:              1,
		PlayerAcc:            1,
		PlayerDamp:           0.1,
		JumpVelY:             12,
		DashVelX:             10,
		DashVelY:             3,
		DashTimeout:          0.2,
		DashCooltime:         1.3,
		Width:                460,
		GoalWidth:            25,
		GoalHeight:           90,
		PlayerRadius:         10,
		BallRadius:           10,
		BounceCoeff:          0.7,
		BallDamp:             0.03,
		DoubleJumpThreshold:  5,
		BallCollideBounceVel: 15,
		PlayerBallCoupling:   4,
		PlayerBallBounceY:    10,
		KickVel:              1,
		RadiusShrink:         0.8,
	}
}

// param binds a config value to its time-dimension exponent. Exactly one of
// scalar or vector is set.
type param struct {
	name   string
	exp    float64
	scalar *float64
	vector *Vec
}

// params lists every time-dependent field of c. Fields missing here (lengths,
// ratios, durations already in seconds) are left untouched by Rescale.
func (c *PhysConfig) params() []param {
	return []param{
		{name: "Gravity", exp: -2, scalar: &c.Gravity},
		{name: "PlayerAcc", exp: -2, scalar: &c.PlayerAcc},
		{name: "PlayerDamp", exp: -1, scalar: &c.PlayerDamp},
		{name: "JumpVelY", exp: -1, scalar: &c.JumpVelY},
		{name: "DashVelX", exp: -1, scalar: &c.DashVelX},
		{name: "DashVelY", exp: -1, scalar: &c.DashVelY},
		{name: "BallDamp", exp: -1, scalar: &c.BallDamp},
		{name: "DoubleJumpThreshold", exp: -1, scalar: &c.DoubleJumpThreshold},
		{name: "BallCollideBounceVel", exp: -1, scalar: &c.BallCollideBounceVel},
		{name: "PlayerBallBounceY", exp: -1, scalar: &c.PlayerBallBounceY},
		{name: "KickVel", exp: -1, scalar: &c.KickVel},
	}
}

// Rescale returns a copy of c with every tagged value multiplied by
// pt^exponent. The receiver is not modified.
func (c PhysConfig) Rescale(pt float64) PhysConfig {
	out := c
	rescale(out.params(), pt)
	return out
}

func rescale(ps []param, pt float64) {
	for _, p := range ps {
		k := math.Pow(pt, p.exp)
		switch {
		case p.scalar != nil:
			*p.scalar *= k
		case p.vector != nil:
			*p.vector = p.vector.Scale(k)
		}
	}
}

// Geometry is the arena description sent to clients in a Preview.
type Geometry struct {
	Width        float64 `json:"width"`
	GoalWidth    float64 `json:"goalWidth"`
	GoalHeight   float64 `json:"goalHeight"`
	PlayerRadius float64 `json:"playerRadius"`
	BallRadius   float64 `json:"ballRadius"`
	PreviewTime  float64 `json:"previewTime,omitempty"`
}

// Geometry returns the display geometry with radii shrunk for rendering.
func (c PhysConfig) Geometry() Geometry {
	return Geometry{
		Width:        c.Width,
		GoalWidth:    c.GoalWidth,
		GoalHeight:   c.GoalHeight,
		PlayerRadius: c.PlayerRadius * c.RadiusShrink,
		BallRadius:   c.BallRadius * c.RadiusShrink,
	}
}

// Layout places entities at the start of every round.
type Layout struct {
	Spawns    []Vec
	BallSpawn Vec
}

// params tags spawn points as pure lengths so they survive Rescale unchanged.
func (l *Layout) params() []param {
	ps := make([]param, 0, len(l.Spawns)+1)
	for i := range l.Spawns {
		ps = append(ps, param{name: "Spawn", exp: 0, vector: &l.Spawns[i]})
	}
	return append(ps, param{name: "BallSpawn", exp: 0, vector: &l.BallSpawn})
}

// Rescale returns a copy of l with spawn points rescaled.
func (l Layout) Rescale(pt float64) Layout {
	out := Layout{Spawns: append([]Vec(nil), l.Spawns...), BallSpawn: l.BallSpawn}
	rescale(out.params(), pt)
	return out
}
