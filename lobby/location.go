package lobby

import (
	"fmt"

	"github.com/qnd101/PenFootball-GameServer/game"
)

// ConnID identifies one live transport connection.
type ConnID string

// Place is the coarse location of a connection.
type Place int

const (
	Offline Place = iota
	Waiting
	InSession
)

func (p Place) String() string {
	switch p {
	case Offline:
		return "offline"
	case Waiting:
		return "waiting"
	case InSession:
		return "in-session"
	}
	return fmt.Sprintf("Place(%d)", int(p))
}

// Location is where a connection currently is. Kind is set for Waiting and
// InSession; Session and Slot only for InSession.
type Location struct {
	Place   Place
	Kind    game.Kind
	Session int
	Slot    int
}

func (l Location) String() string {
	switch l.Place {
	case Waiting:
		return fmt.Sprintf("waiting(%s)", l.Kind)
	case InSession:
		return fmt.Sprintf("in-session(%s #%d slot %d)", l.Kind, l.Session, l.Slot)
	}
	return l.Place.String()
}

// WaitEntry is one connection queued for a competitive mode.
type WaitEntry struct {
	Conn   ConnID
	Rating int
}
