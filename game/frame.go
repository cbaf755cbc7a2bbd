package game

// Frame is the positional snapshot sent every tick as UpdateFrame. Players
// are ordered by slot.
type Frame struct {
	Players []Vec `json:"players" msgpack:"players"`
	Ball    Vec   `json:"ball" msgpack:"ball"`
}

// Mirror reflects the frame about the arena's vertical center line and swaps
// each pair of opposing slots (1<->2, 3<->4), so the viewer always sees
// itself as side 1. Mirror(Mirror(f)) == f.
func (f Frame) Mirror(width float64) Frame {
	out := Frame{
		Players: make([]Vec, len(f.Players)),
		Ball:    flipX(f.Ball, width),
	}
	for i, p := range f.Players {
		j := i ^ 1
		if j >= len(f.Players) {
			j = i
		}
		out.Players[j] = flipX(p, width)
	}
	return out
}

func flipX(v Vec, width float64) Vec {
	return Vec{width - v.X, v.Y}
}
