// Package tick drives the fixed-period simulation loop and fans each tick's
// snapshots and events out to the transport.
package tick

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qnd101/PenFootball-GameServer/game"
	"github.com/qnd101/PenFootball-GameServer/lobby"
)

//go:generate go tool mockgen -destination=./mocks/scheduler_mock.go -package=mocks . Transport,ResultSink,World

const (
	DefaultPeriod = time.Second / 30
	DefaultFloor  = time.Millisecond

	// FrameMessage is the message name of the per-tick positional snapshot.
	FrameMessage = "UpdateFrame"
)

// Transport delivers one named message to a connection. It must not block
// on network I/O.
type Transport interface {
	SendTo(conn lobby.ConnID, name string, payload any) error
}

// ResultSink receives finished duel records.
type ResultSink interface {
	Post(ctx context.Context, r lobby.Result) error
}

// World is the state the scheduler advances. *lobby.Registry implements it.
type World interface {
	Match(dt float64) []lobby.Created
	Update(dt float64)
	Conns() []lobby.ConnID
	Frame(conn lobby.ConnID) (game.Frame, bool)
	Outputs(conn lobby.ConnID) []game.Output
	Results() []lobby.Result
	Flush()
}

type summarizer interface {
	Summary() lobby.Summary
}

type delivery struct {
	conn    lobby.ConnID
	name    string
	payload any
}

// Scheduler runs World ticks at a fixed nominal period.
type Scheduler struct {
	world     World
	transport Transport
	sink      ResultSink
	log       logrus.FieldLogger

	period       time.Duration
	floor        time.Duration
	summaryEvery time.Duration
	sinceSummary time.Duration
}

type Option func(*Scheduler)

func WithPeriod(d time.Duration) Option { return func(s *Scheduler) { s.period = d } }

// WithFloor sets the minimum wait between the end of one tick and the start
// of the next.
func WithFloor(d time.Duration) Option { return func(s *Scheduler) { s.floor = d } }

func WithLogger(l logrus.FieldLogger) Option { return func(s *Scheduler) { s.log = l } }

// WithSummaryEvery sets how often the world summary is logged; 0 disables it.
func WithSummaryEvery(d time.Duration) Option { return func(s *Scheduler) { s.summaryEvery = d } }

func New(w World, t Transport, sink ResultSink, opts ...Option) *Scheduler {
	s := &Scheduler{
		world:        w,
		transport:    t,
		sink:         sink,
		log:          logrus.StandardLogger(),
		period:       DefaultPeriod,
		floor:        DefaultFloor,
		summaryEvery: 10 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run ticks until ctx is cancelled. Ticks never overlap; the wait after each
// one absorbs the time it took.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{"period": s.period, "floor": s.floor}).Info("scheduler started")
	timer := time.NewTimer(s.period)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return nil
		case <-timer.C:
			start := time.Now()
			s.Tick(ctx)
			timer.Reset(nextDelay(s.period, time.Since(start), s.floor))
		}
	}
}

// Tick runs one full tick: matchmaking, simulation, harvest, flush, then
// dispatch. A panic anywhere in it is logged and swallowed.
func (s *Scheduler) Tick(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			s.log.WithField("panic", p).Error("tick panicked")
		}
	}()

	dt := s.period.Seconds()
	for _, c := range s.world.Match(dt) {
		s.log.WithFields(logrus.Fields{"session": c.ID, "kind": c.Kind, "players": c.ExtIDs}).Debug("matched")
	}
	s.world.Update(dt)

	conns := s.world.Conns()
	batch := make([]delivery, 0, 2*len(conns))
	for _, c := range conns {
		if f, ok := s.world.Frame(c); ok {
			batch = append(batch, delivery{c, FrameMessage, f})
		}
		for _, o := range s.world.Outputs(c) {
			batch = append(batch, delivery{c, o.Name(), o})
		}
	}
	results := s.world.Results()
	s.world.Flush()

	s.dispatch(ctx, batch, results)
	s.summary()
}

func (s *Scheduler) dispatch(ctx context.Context, batch []delivery, results []lobby.Result) {
	failed := 0
	for _, d := range batch {
		if err := s.transport.SendTo(d.conn, d.name, d.payload); err != nil {
			failed++
			s.log.WithFields(logrus.Fields{"conn": d.conn, "msg": d.name}).WithError(err).Debug("send failed")
		}
	}
	if failed > 0 {
		s.log.WithField("failed", failed).Warn("some messages were not delivered")
	}
	if s.sink == nil {
		return
	}
	for _, r := range results {
		if err := s.sink.Post(ctx, r); err != nil {
			s.log.WithField("result", r).WithError(err).Error("posting result")
		}
	}
}

func (s *Scheduler) summary() {
	if s.summaryEvery <= 0 {
		return
	}
	sum, ok := s.world.(summarizer)
	if !ok {
		return
	}
	s.sinceSummary += s.period
	if s.sinceSummary < s.summaryEvery {
		return
	}
	s.sinceSummary = 0
	info := sum.Summary()
	s.log.WithFields(logrus.Fields{
		"connections": info.Connections,
		"waiting":     info.Waiting,
		"sessions":    info.Sessions,
	}).Debug("summary")
}

// nextDelay is the wait before the next tick given how long this one ran.
func nextDelay(period, elapsed, floor time.Duration) time.Duration {
	return max(period-elapsed, floor, 0)
}
