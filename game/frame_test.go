package game

import (
	"testing"

	"pgregory.net/rapid"
)

func TestFrameMirror(t *testing.T) {
	f := Frame{Players: []Vec{{30, 20}, {430, 20}}, Ball: Vec{100, 150}}
	m := f.Mirror(460)
	if m.Players[0] != V(30, 20) || m.Players[1] != V(430, 20) {
		t.Errorf("mirrored duel frame should swap and flip players, got %+v", m.Players)
	}
	if m.Ball != V(360, 150) {
		t.Errorf("expected mirrored ball (360,150), got %+v", m.Ball)
	}

	sq := Frame{Players: []Vec{{1, 0}, {2, 0}, {3, 0}, {4, 0}}}.Mirror(10)
	want := []Vec{{8, 0}, {9, 0}, {6, 0}, {7, 0}}
	for i := range want {
		if sq.Players[i] != want[i] {
			t.Errorf("slot %d: got %+v, want %+v", i+1, sq.Players[i], want[i])
		}
	}
}

func TestFrameMirrorInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := float64(rapid.IntRange(100, 2000).Draw(t, "width"))
		n := rapid.SampledFrom([]int{1, 2, 4}).Draw(t, "players")
		coord := rapid.IntRange(-2000, 2000)
		f := Frame{Ball: V(float64(coord.Draw(t, "bx")), float64(coord.Draw(t, "by")))}
		for i := 0; i < n; i++ {
			f.Players = append(f.Players, V(float64(coord.Draw(t, "px")), float64(coord.Draw(t, "py"))))
		}

		back := f.Mirror(width).Mirror(width)
		if back.Ball != f.Ball {
			t.Fatalf("ball %+v became %+v", f.Ball, back.Ball)
		}
		for i := range f.Players {
			if back.Players[i] != f.Players[i] {
				t.Fatalf("player %d %+v became %+v", i, f.Players[i], back.Players[i])
			}
		}
	})
}
