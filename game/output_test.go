package game

import "testing"

func TestOutputMirror(t *testing.T) {
	ge := GameEnd{Summary: "*1* reached 10 points after beating *2*.", Winner: 1, Close: true}
	m := ge.Mirror().(GameEnd)
	if m.Summary != "*2* reached 10 points after beating *1*." {
		t.Errorf("unexpected mirrored summary %q", m.Summary)
	}
	if m.Winner != 2 || !m.Close {
		t.Errorf("unexpected mirrored game end %+v", m)
	}
	if back := m.Mirror().(GameEnd); back != ge {
		t.Errorf("mirroring twice should restore %+v, got %+v", ge, back)
	}

	if s := (Score{Score1: 3, Score2: 7}).Mirror(); s != (Score{Score1: 7, Score2: 3}) {
		t.Errorf("unexpected mirrored score %+v", s)
	}
	if c := (Chat{Who: 1, Message: "gg"}).Mirror(); c != (Chat{Who: 2, Message: "gg"}) {
		t.Errorf("unexpected mirrored chat %+v", c)
	}

	w := WaitingInfo{Kind: KindDuel, Count: 3}
	if w.Mirror() != w {
		t.Error("waiting info has no perspective")
	}
	p := Preview{Geometry{Width: 460}}
	if p.Mirror() != p {
		t.Error("preview has no perspective")
	}
}

func TestGameFoundMirror(t *testing.T) {
	gf := GameFound{Kind: KindSquad, IDs: []int{1, 2, 3, 4}}
	m := gf.Mirror().(GameFound)
	want := []int{2, 1, 4, 3}
	for i := range want {
		if m.IDs[i] != want[i] {
			t.Fatalf("got ids %v, want %v", m.IDs, want)
		}
	}
	if gf.IDs[0] != 1 {
		t.Error("mirror must not modify the original ids")
	}
}

func TestOutputNames(t *testing.T) {
	names := map[string]Output{
		"Preview":     Preview{},
		"Score":       Score{},
		"GameEnd":     GameEnd{},
		"Chat":        Chat{},
		"GameFound":   GameFound{},
		"WaitingInfo": WaitingInfo{},
	}
	for want, o := range names {
		if o.Name() != want {
			t.Errorf("got name %q, want %q", o.Name(), want)
		}
	}
}
