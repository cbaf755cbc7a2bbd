package lobby

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/qnd101/PenFootball-GameServer/game"
)

// Created describes a session opened by matchmaking.
type Created struct {
	ID     int
	Kind   game.Kind
	ExtIDs []int
}

// Result is the record of a finished duel sent to the results service.
type Result struct {
	Player1ID int  `json:"Player1ID"`
	Player2ID int  `json:"Player2ID"`
	Winner    int  `json:"Winner"`
	Close     bool `json:"Close"`
	Score1    int  `json:"Score1"`
	Score2    int  `json:"Score2"`
}

// Match runs one matchmaking pass. The 1v1 queue is paired every
// NormTimeout seconds; the 2v2 queue whenever it holds four players.
func (r *Registry) Match(dt float64) []Created {
	var created []Created

	r.waitTimer -= dt
	r.waitDue = r.waitTimer <= 0
	if r.waitDue {
		r.waitTimer = r.cfg.WaitingInfoPeriod
	}

	r.normTimer -= dt
	if r.normTimer <= 0 {
		r.normTimer = r.cfg.NormTimeout
		pairs, benched := pairByRating(r.snapshot().waiting[game.KindDuel], r.rng)
		for _, e := range benched {
			r.log.WithField("conn", e.Conn).Debug("benched for this round")
		}
		for _, p := range pairs {
			if c, ok := r.open(game.KindDuel, p[:]); ok {
				created = append(created, c)
			}
		}
	}

	if q := r.snapshot().waiting[game.KindSquad]; len(q) >= 4 {
		roster := squadRoster([4]WaitEntry(q[:4]), r.rng)
		if c, ok := r.open(game.KindSquad, roster[:]); ok {
			created = append(created, c)
		}
	}
	return created
}

// open seats entries, by slot, in a new session of kind. Nothing happens if
// any of them has left the queue in the meantime.
func (r *Registry) open(kind game.Kind, entries []WaitEntry) (Created, bool) {
	var sess game.Session
	if kind == game.KindSquad {
		sess = game.NewSquad(r.cfg.Squad)
	} else {
		sess = game.NewDuel(r.cfg.Duel)
	}
	id := int(r.nextID.Add(1))
	rm := &room{id: id, session: sess}
	rm.announce.Store(true)

	err := r.mutate(func(s *state) error {
		rm.conns = rm.conns[:0]
		rm.extIDs = rm.extIDs[:0]
		for _, e := range entries {
			if !s.dequeue(kind, e.Conn) {
				return errGone
			}
			rm.conns = append(rm.conns, e.Conn)
			rm.extIDs = append(rm.extIDs, s.ids[e.Conn])
		}
		s.seat(rm)
		return nil
	})
	if err != nil {
		r.log.WithField("kind", kind).Debug("pair skipped, a candidate left")
		return Created{}, false
	}
	r.log.WithFields(logrus.Fields{"session": id, "kind": kind, "players": rm.extIDs}).Info("game created")
	return Created{ID: id, Kind: kind, ExtIDs: rm.extIDs}, true
}

// Update tears down the sessions that ended last tick, then advances every
// other session by dt. A session that panics is frozen and left in place.
func (r *Registry) Update(dt float64) {
	for _, id := range r.removal {
		var rm *room
		_ = r.mutate(func(s *state) error {
			rm, _ = s.dispose(id)
			return nil
		})
		if rm != nil {
			r.log.WithFields(logrus.Fields{"session": id, "kind": rm.session.Kind()}).Info("game removed")
		}
	}
	r.removal = r.removal[:0]

	for id, rm := range r.snapshot().rooms {
		if rm.frozen.Load() {
			continue
		}
		if err := step(rm.session, dt); err != nil {
			rm.frozen.Store(true)
			r.log.WithField("session", id).WithError(err).Error("session frozen")
			continue
		}
		if rm.session.Ended() {
			r.removal = append(r.removal, id)
		}
	}
}

func step(sess game.Session, dt float64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("update panicked: %v", p)
		}
	}()
	sess.Update(dt)
	return nil
}

// Frame returns conn's view of its session, or false when it is not seated.
func (r *Registry) Frame(conn ConnID) (game.Frame, bool) {
	s := r.snapshot()
	loc := s.locate(conn)
	if loc.Place != InSession {
		return game.Frame{}, false
	}
	rm, ok := s.rooms[loc.Session]
	if !ok {
		return game.Frame{}, false
	}
	return rm.session.Frame(loc.Slot), true
}

// Outputs returns this tick's one-shot events as seen by conn.
func (r *Registry) Outputs(conn ConnID) []game.Output {
	s := r.snapshot()
	loc := s.locate(conn)
	switch loc.Place {
	case Waiting:
		if r.waitDue {
			return []game.Output{game.WaitingInfo{Kind: loc.Kind, Count: len(s.waiting[loc.Kind])}}
		}
	case InSession:
		rm, ok := s.rooms[loc.Session]
		if !ok {
			return nil
		}
		rm.harvested.Store(true)
		var outs []game.Output
		if rm.announce.Load() && loc.Kind != game.KindTraining {
			var found game.Output = game.GameFound{Kind: loc.Kind, IDs: rm.extIDs}
			if game.SideOf(loc.Slot) == 2 {
				found = found.Mirror()
			}
			outs = append(outs, found)
		}
		return append(outs, rm.session.Outputs(loc.Slot)...)
	}
	return nil
}

// Results lists every duel whose outbox holds its final event this tick.
func (r *Registry) Results() []Result {
	var results []Result
	for _, rm := range r.snapshot().rooms {
		if rm.session.Kind() != game.KindDuel {
			continue
		}
		scored, ok := rm.session.(game.Scored)
		if !ok {
			continue
		}
		ge, score, ended := scored.Ending()
		if !ended {
			continue
		}
		results = append(results, Result{
			Player1ID: rm.extIDs[0],
			Player2ID: rm.extIDs[1],
			Winner:    ge.Winner,
			Close:     ge.Close,
			Score1:    score.Score1,
			Score2:    score.Score2,
		})
	}
	return results
}

// Flush clears the outbox of every session whose outputs were read since the
// last flush, and retires its GameFound announcement. A session opened after
// the harvest keeps its outbox for the next tick.
func (r *Registry) Flush() {
	for _, rm := range r.snapshot().rooms {
		if !rm.harvested.Swap(false) {
			continue
		}
		rm.session.Flush()
		rm.announce.Store(false)
	}
}

// Pending reports whether a session is scheduled for teardown.
func (r *Registry) Pending(id int) bool {
	return slices.Contains(r.removal, id)
}
