package game

// TrainingConfig tunes a solo practice arena.
type TrainingConfig struct {
	Phys      PhysConfig
	TimeScale float64
	Layout    Layout
}

// DefaultTrainingConfig is the classic single-player arena.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Phys:      ClassicConfig(),
		TimeScale: ClassicFrame,
		Layout:    Layout{Spawns: []Vec{{30, 20}}, BallSpawn: Vec{230, 150}},
	}
}

// offstage is where the absent second player is drawn.
var offstage = Vec{-100, 0}

// Training is a one-player session with no score. Any goal resets the round.
type Training struct {
	room
	phys   PhysConfig
	layout Layout
	Player *Player
	Ball   *Ball
}

func NewTraining(cfg TrainingConfig) *Training {
	t := &Training{
		phys:   cfg.Phys.Rescale(cfg.TimeScale),
		layout: cfg.Layout.Rescale(cfg.TimeScale),
		Player: &Player{},
		Ball:   &Ball{},
	}
	t.emit(Preview{t.phys.Geometry()})
	t.resetRound()
	return t
}

func (t *Training) Kind() Kind { return KindTraining }
func (t *Training) Slots() int { return 1 }

// Phys returns the rescaled physics constants in use.
func (t *Training) Phys() PhysConfig { return t.phys }

func (t *Training) resetRound() {
	t.Player.Reset(t.layout.Spawns[0])
	t.Ball.Reset(t.layout.BallSpawn)
}

func (t *Training) Update(dt float64) {
	t.Player.Keys.ClearEdges()
	for _, e := range t.in.drain() {
		if ke, ok := e.(KeyEvent); ok {
			t.Player.Keys.Apply(ke.Key, ke.Press)
		}
	}

	t.Player.Update(dt, t.phys)
	t.Ball.Update(dt, []*Player{t.Player}, t.phys)
	if t.Ball.Goal(t.phys) != 0 {
		t.resetRound()
	}
}

func (t *Training) Frame(int) Frame {
	return Frame{Players: []Vec{t.Player.Pos, offstage}, Ball: t.Ball.Pos}
}

func (t *Training) Outputs(int) []Output { return t.outputs(false) }
