package lobby

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/qnd101/PenFootball-GameServer/game"
)

var (
	// ErrDoubleConnection rejects a second live connection for one external id.
	ErrDoubleConnection = errors.New("double connection not allowed")
	// ErrInMatch rejects queueing while still seated in a running match.
	ErrInMatch = errors.New("already in a match")

	errGone = errors.New("candidate left the queue")
)

// Config tunes matchmaking and the sessions the registry creates.
type Config struct {
	NormTimeout       float64 // seconds between 1v1 matchmaking rounds
	WaitingInfoPeriod float64 // seconds between WaitingInfo broadcasts
	Training          game.TrainingConfig
	Duel              game.MatchConfig
	Squad             game.MatchConfig
}

func DefaultConfig() Config {
	return Config{
		NormTimeout:       10,
		WaitingInfoPeriod: 0.5,
		Training:          game.DefaultTrainingConfig(),
		Duel:              game.DefaultDuelConfig(),
		Squad:             game.DefaultSquadConfig(),
	}
}

// Registry tracks every connection's identity and location, the waiting
// queues and the live sessions.
//
// Join, Exit, Key and the lookup methods are safe from any goroutine. Match,
// Update, Frame, Outputs, Results and Flush belong to the tick loop.
type Registry struct {
	cfg    Config
	log    logrus.FieldLogger
	rng    *rand.Rand
	state  atomic.Pointer[state]
	nextID atomic.Int64

	// tick loop only
	normTimer float64
	waitTimer float64
	waitDue   bool
	removal   []int
}

type Option func(*Registry)

// WithLogger sets the logger; the default is logrus' standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = l }
}

// WithRand sets the source used for odd-count benching and squad roles.
func WithRand(rng *rand.Rand) Option {
	return func(r *Registry) { r.rng = rng }
}

func New(cfg Config, opts ...Option) *Registry {
	r := &Registry{
		cfg:       cfg,
		log:       logrus.StandardLogger(),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		normTimer: cfg.NormTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	r.state.Store(emptyState())
	return r
}

// mutate applies fn to a copy of the current state and swaps it in,
// retrying on contention. fn must have no side effects beyond its argument.
func (r *Registry) mutate(fn func(s *state) error) error {
	for {
		cur := r.state.Load()
		next := cur.clone()
		if err := fn(next); err != nil {
			return err
		}
		if r.state.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

func (r *Registry) snapshot() *state { return r.state.Load() }

// Register binds conn to an external id. It fails if ext already belongs to
// another live connection; the existing connection is unaffected.
func (r *Registry) Register(conn ConnID, ext int) error {
	err := r.mutate(func(s *state) error { return s.register(conn, ext) })
	if err != nil {
		r.log.WithFields(logrus.Fields{"conn": conn, "ext": ext}).WithError(err).Warn("register rejected")
	}
	return err
}

// Unregister forgets an offline connection. It panics if conn is waiting or
// seated.
func (r *Registry) Unregister(conn ConnID) {
	_ = r.mutate(func(s *state) error {
		s.unregister(conn)
		return nil
	})
}

// leave clears conn's current location inside a mutation. Competitive
// sessions cannot be left this way and report ErrInMatch.
func leave(s *state, conn ConnID) error {
	loc := s.locate(conn)
	switch loc.Place {
	case Waiting:
		s.dequeue(loc.Kind, conn)
	case InSession:
		if loc.Kind != game.KindTraining {
			return ErrInMatch
		}
		s.dispose(loc.Session)
	}
	return nil
}

// Join puts conn in the waiting queue for kind, leaving any queue or training
// session it was in. A connection still seated in a duel or squad is sent an
// exit instead and the join fails with ErrInMatch.
func (r *Registry) Join(conn ConnID, ext int, kind game.Kind, rating int) error {
	if kind != game.KindDuel && kind != game.KindSquad {
		return fmt.Errorf("lobby: no queue for %q", kind)
	}
	err := r.mutate(func(s *state) error {
		if err := leave(s, conn); err != nil {
			return err
		}
		if err := s.register(conn, ext); err != nil {
			return err
		}
		s.enqueue(kind, WaitEntry{Conn: conn, Rating: rating})
		return nil
	})
	fields := logrus.Fields{"conn": conn, "ext": ext, "kind": kind}
	if errors.Is(err, ErrInMatch) {
		r.exitMatch(conn)
	}
	if err != nil {
		r.log.WithFields(fields).WithError(err).Warn("join rejected")
		return err
	}
	r.log.WithFields(fields).WithField("rating", rating).Info("joined queue")
	return nil
}

// Train opens a solo training session for conn.
func (r *Registry) Train(conn ConnID, ext int) error {
	id := int(r.nextID.Add(1))
	tr := game.NewTraining(r.cfg.Training)
	err := r.mutate(func(s *state) error {
		if err := leave(s, conn); err != nil {
			return err
		}
		if err := s.register(conn, ext); err != nil {
			return err
		}
		s.seat(&room{id: id, session: tr, conns: []ConnID{conn}, extIDs: []int{ext}})
		return nil
	})
	fields := logrus.Fields{"conn": conn, "ext": ext}
	if errors.Is(err, ErrInMatch) {
		r.exitMatch(conn)
	}
	if err != nil {
		r.log.WithFields(fields).WithError(err).Warn("training rejected")
		return err
	}
	r.log.WithFields(fields).WithField("session", id).Info("training started")
	return nil
}

// Exit leaves whatever conn is doing. Queues and training sessions are left
// at once and the identity released; a competitive session receives an exit
// event and is torn down after it ends. A frozen session is removed at once.
func (r *Registry) Exit(conn ConnID) {
	err := r.mutate(func(s *state) error {
		if err := leave(s, conn); err != nil {
			return err
		}
		s.unregister(conn)
		return nil
	})
	if errors.Is(err, ErrInMatch) {
		r.exitMatch(conn)
	}
}

func (r *Registry) exitMatch(conn ConnID) {
	s := r.snapshot()
	loc := s.locate(conn)
	rm, ok := s.rooms[loc.Session]
	if !ok || loc.Place != InSession {
		return
	}
	if rm.frozen.Load() {
		_ = r.mutate(func(s *state) error {
			s.dispose(rm.id)
			return nil
		})
		r.log.WithFields(logrus.Fields{"conn": conn, "session": rm.id}).Warn("frozen game removed")
		return
	}
	rm.session.Enqueue(game.ExitEvent{Slot: loc.Slot})
	r.log.WithFields(logrus.Fields{"conn": conn, "session": loc.Session, "slot": loc.Slot}).Info("player left match")
}

// Key forwards a key event to conn's session, if it is seated.
func (r *Registry) Key(conn ConnID, key game.Key, press game.Press) {
	s := r.snapshot()
	loc := s.locate(conn)
	if loc.Place != InSession {
		return
	}
	if rm, ok := s.rooms[loc.Session]; ok {
		rm.session.Enqueue(game.KeyEvent{Slot: loc.Slot, Key: key, Press: press})
	}
}

// Locate returns conn's current location.
func (r *Registry) Locate(conn ConnID) Location {
	return r.snapshot().locate(conn)
}

// ExtID returns the external id registered for conn.
func (r *Registry) ExtID(conn ConnID) (int, bool) {
	ext, ok := r.snapshot().ids[conn]
	return ext, ok
}

// ConnOf returns the live connection holding ext.
func (r *Registry) ConnOf(ext int) (ConnID, bool) {
	c, ok := r.snapshot().owners[ext]
	return c, ok
}

// Conns lists every waiting or seated connection.
func (r *Registry) Conns() []ConnID {
	s := r.snapshot()
	conns := make([]ConnID, 0, len(s.index))
	for c := range s.index {
		conns = append(conns, c)
	}
	slices.Sort(conns)
	return conns
}

// Session returns the live session with the given id.
func (r *Registry) Session(id int) (game.Session, bool) {
	rm, ok := r.snapshot().rooms[id]
	if !ok {
		return nil, false
	}
	return rm.session, true
}

// Summary counts connections, queue lengths and sessions per kind.
type Summary struct {
	Connections int               `json:"connections"`
	Waiting     map[game.Kind]int `json:"waiting"`
	Sessions    map[game.Kind]int `json:"sessions"`
}

func (r *Registry) Summary() Summary {
	s := r.snapshot()
	sum := Summary{
		Connections: len(s.ids),
		Waiting:     map[game.Kind]int{},
		Sessions:    map[game.Kind]int{},
	}
	for kind, q := range s.waiting {
		sum.Waiting[kind] = len(q)
	}
	for _, rm := range s.rooms {
		sum.Sessions[rm.session.Kind()]++
	}
	return sum
}
