package lobby

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/qnd101/PenFootball-GameServer/game"
)

// room is a live session and the connections seated in it, by slot.
type room struct {
	id      int
	session game.Session
	conns   []ConnID
	extIDs  []int

	announce  atomic.Bool // GameFound not yet delivered
	harvested atomic.Bool // outbox read since the last flush
	frozen    atomic.Bool // session panicked; no further updates
}

// state is one immutable snapshot of the registry. Writers clone it, edit
// the clone and swap it in; readers never see a partial update.
type state struct {
	ids     map[ConnID]int // connection -> external id
	owners  map[int]ConnID // external id -> connection
	waiting map[game.Kind][]WaitEntry
	rooms   map[int]*room
	index   map[ConnID]Location
}

func emptyState() *state {
	return &state{
		ids:     map[ConnID]int{},
		owners:  map[int]ConnID{},
		waiting: map[game.Kind][]WaitEntry{},
		rooms:   map[int]*room{},
		index:   map[ConnID]Location{},
	}
}

func (s *state) clone() *state {
	return &state{
		ids:     maps.Clone(s.ids),
		owners:  maps.Clone(s.owners),
		waiting: maps.Clone(s.waiting),
		rooms:   maps.Clone(s.rooms),
		index:   maps.Clone(s.index),
	}
}

func (s *state) register(conn ConnID, ext int) error {
	if owner, ok := s.owners[ext]; ok && owner != conn {
		return fmt.Errorf("%w: external id %d held by %s", ErrDoubleConnection, ext, owner)
	}
	if old, ok := s.ids[conn]; ok && old != ext {
		delete(s.owners, old)
	}
	s.ids[conn] = ext
	s.owners[ext] = conn
	return nil
}

// unregister drops the identity of an offline connection. Calling it for a
// located connection is a programming error.
func (s *state) unregister(conn ConnID) {
	if loc, ok := s.index[conn]; ok && loc.Place != Offline {
		panic(fmt.Sprintf("lobby: unregister of %s while %s", conn, loc))
	}
	if ext, ok := s.ids[conn]; ok {
		delete(s.owners, ext)
		delete(s.ids, conn)
	}
}

// enqueue slices are replaced, never edited in place, so older snapshots
// keep their view.
func (s *state) enqueue(kind game.Kind, e WaitEntry) {
	q := s.waiting[kind]
	s.waiting[kind] = append(q[:len(q):len(q)], e)
	s.index[e.Conn] = Location{Place: Waiting, Kind: kind}
}

func (s *state) dequeue(kind game.Kind, conn ConnID) bool {
	q := s.waiting[kind]
	i := slices.IndexFunc(q, func(e WaitEntry) bool { return e.Conn == conn })
	if i < 0 {
		return false
	}
	s.waiting[kind] = slices.Delete(slices.Clone(q), i, i+1)
	delete(s.index, conn)
	return true
}

func (s *state) seat(r *room) {
	s.rooms[r.id] = r
	for i, c := range r.conns {
		s.index[c] = Location{Place: InSession, Kind: r.session.Kind(), Session: r.id, Slot: i + 1}
	}
}

// dispose removes a room and the identities of everyone seated in it.
func (s *state) dispose(id int) (*room, bool) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	delete(s.rooms, id)
	for _, c := range r.conns {
		if loc := s.index[c]; loc.Place == InSession && loc.Session == id {
			delete(s.index, c)
			s.unregister(c)
		}
	}
	return r, true
}

// locate resolves a connection through the index.
func (s *state) locate(conn ConnID) Location {
	return s.index[conn]
}

// scan resolves a connection by walking every queue and room. It is the
// reference the index must agree with.
func (s *state) scan(conn ConnID) Location {
	for kind, q := range s.waiting {
		if slices.ContainsFunc(q, func(e WaitEntry) bool { return e.Conn == conn }) {
			return Location{Place: Waiting, Kind: kind}
		}
	}
	for _, r := range s.rooms {
		if i := slices.Index(r.conns, conn); i >= 0 {
			return Location{Place: InSession, Kind: r.session.Kind(), Session: r.id, Slot: i + 1}
		}
	}
	return Location{}
}
