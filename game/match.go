package game

import "fmt"

// MatchConfig tunes a scored session.
type MatchConfig struct {
	Phys        PhysConfig
	TimeScale   float64
	Layout      Layout // one spawn per slot
	Lanes       []Lane // optional, one per slot
	MaxScore    int
	PreviewTime float64 // seconds of frozen physics before kickoff
}

// Lane bounds a player's horizontal movement.
type Lane struct {
	MinX, MaxX float64
}

// DefaultDuelConfig is the classic 1v1 arena played to 10.
func DefaultDuelConfig() MatchConfig {
	return MatchConfig{
		Phys:      ClassicConfig(),
		TimeScale: ClassicFrame,
		Layout: Layout{
			Spawns:    []Vec{{30, 20}, {430, 20}},
			BallSpawn: Vec{230, 150},
		},
		MaxScore:    10,
		PreviewTime: 3,
	}
}

// DefaultSquadConfig is the wider 2v2 arena. Slots are ordered attacker 1,
// attacker 2, defender 1, defender 2; odd slots play for side 1.
func DefaultSquadConfig() MatchConfig {
	phys := ClassicConfig()
	phys.Width = 800
	phys.GoalHeight = 130
	half := phys.Width / 2
	return MatchConfig{
		Phys:      phys,
		TimeScale: SquadFrame,
		Layout: Layout{
			Spawns:    []Vec{{460, 30}, {340, 30}, {60, 30}, {740, 30}},
			BallSpawn: Vec{400, 150},
		},
		Lanes: []Lane{
			{half, phys.Width},
			{0, half},
			{0, half},
			{half, phys.Width},
		},
		MaxScore:    10,
		PreviewTime: 3,
	}
}

// SideOf returns the team (1 or 2) a slot plays for.
func SideOf(slot int) int {
	if slot%2 == 0 {
		return 2
	}
	return 1
}

// match is the scored session shared by Duel and Squad. Side 1 is the
// canonical perspective; side 2 inputs and views are mirrored.
type match struct {
	room
	phys     PhysConfig
	layout   Layout
	maxScore int
	preview  float64
	over     bool
	exitText func(slot int) (string, int)

	Players []*Player
	Ball    *Ball
	Score1  int
	Score2  int
}

func newMatch(cfg MatchConfig, slots int) *match {
	m := &match{
		phys:     cfg.Phys.Rescale(cfg.TimeScale),
		layout:   cfg.Layout.Rescale(cfg.TimeScale),
		maxScore: cfg.MaxScore,
		preview:  cfg.PreviewTime,
		Ball:     &Ball{},
	}
	for i := 0; i < slots; i++ {
		p := &Player{}
		if i < len(cfg.Lanes) {
			p.MinX, p.MaxX = cfg.Lanes[i].MinX, cfg.Lanes[i].MaxX
		}
		m.Players = append(m.Players, p)
	}
	geo := m.phys.Geometry()
	geo.PreviewTime = cfg.PreviewTime
	m.emit(Preview{geo})
	m.emit(Score{})
	m.resetRound()
	return m
}

func (m *match) Slots() int { return len(m.Players) }

// Phys returns the rescaled physics constants in use.
func (m *match) Phys() PhysConfig { return m.phys }

func (m *match) resetRound() {
	for i, p := range m.Players {
		p.Reset(m.layout.Spawns[i])
	}
	m.Ball.Reset(m.layout.BallSpawn)
}

func (m *match) Update(dt float64) {
	events := m.in.drain()
	if m.over {
		return
	}
	for _, p := range m.Players {
		p.Keys.ClearEdges()
	}
	for _, e := range events {
		slot := e.slot()
		if slot < 1 || slot > len(m.Players) {
			continue
		}
		switch e := e.(type) {
		case KeyEvent:
			key := e.Key
			if SideOf(slot) == 2 {
				key = key.Mirror()
			}
			m.Players[slot-1].Keys.Apply(key, e.Press)
		case ExitEvent:
			text, winner := m.exitText(slot)
			m.finish(GameEnd{Summary: text, Winner: winner})
			return
		}
	}

	if m.preview > 0 {
		m.preview -= dt
		return
	}

	for _, p := range m.Players {
		p.Update(dt, m.phys)
	}
	m.Ball.Update(dt, m.Players, m.phys)

	if side := m.Ball.Goal(m.phys); side != 0 {
		m.goal(side)
	}
}

func (m *match) goal(side int) {
	if side == 1 {
		m.Score1++
	} else {
		m.Score2++
	}
	m.emit(Score{Score1: m.Score1, Score2: m.Score2})

	winner, loser := 0, 0
	switch {
	case m.Score1 >= m.maxScore:
		winner, loser = 1, m.Score2
	case m.Score2 >= m.maxScore:
		winner, loser = 2, m.Score1
	default:
		m.resetRound()
		return
	}
	tight := loser == m.maxScore-1
	text := fmt.Sprintf("*%d* reached %d points", winner, m.maxScore)
	if tight {
		text += " after a fierce battle"
	}
	m.finish(GameEnd{Summary: text + ".", Winner: winner, Close: tight})
}

func (m *match) finish(ge GameEnd) {
	m.over = true
	m.emit(ge)
}

func (m *match) Frame(slot int) Frame {
	f := Frame{Players: make([]Vec, len(m.Players)), Ball: m.Ball.Pos}
	for i, p := range m.Players {
		f.Players[i] = p.Pos
	}
	if SideOf(slot) == 2 {
		return f.Mirror(m.phys.Width)
	}
	return f
}

func (m *match) Outputs(slot int) []Output {
	return m.outputs(SideOf(slot) == 2)
}

func (m *match) Ending() (GameEnd, Score, bool) {
	ge, ok := m.ending()
	return ge, Score{Score1: m.Score1, Score2: m.Score2}, ok
}

// Duel is a scored 1v1 session.
type Duel struct {
	*match
}

func NewDuel(cfg MatchConfig) *Duel {
	m := newMatch(cfg, 2)
	m.exitText = func(slot int) (string, int) {
		return fmt.Sprintf("*%d* left the game.", slot), 3 - slot
	}
	return &Duel{m}
}

func (*Duel) Kind() Kind { return KindDuel }

// Squad is a scored 2v2 session with lane-confined roles.
type Squad struct {
	*match
}

func NewSquad(cfg MatchConfig) *Squad {
	m := newMatch(cfg, 4)
	m.exitText = func(slot int) (string, int) {
		side := SideOf(slot)
		return fmt.Sprintf("Someone in team *%d* left", side), 3 - side
	}
	return &Squad{m}
}

func (*Squad) Kind() Kind { return KindSquad }
