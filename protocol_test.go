package main

import (
	"encoding/json"
	"testing"

	"github.com/qnd101/PenFootball-GameServer/game"
)

func TestKeyMsgParse(t *testing.T) {
	key, press, err := KeyMsg{Type: "KeyDown", Key: "Left"}.Parse()
	if err != nil || key != game.KeyLeft || press != game.Pressed {
		t.Errorf("got %v %v %v", key, press, err)
	}
	if _, _, err := (KeyMsg{Type: "KeyHold", Key: "Left"}).Parse(); err == nil {
		t.Error("unknown event type should fail")
	}
	if _, _, err := (KeyMsg{Type: "KeyUp", Key: "Jump"}).Parse(); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestJoinMsgParse(t *testing.T) {
	for _, raw := range []string{
		`{"kind":"duel","rating":1200}`,
		`{"kind":"duel","rating":"1200"}`,
	} {
		var m JoinMsg
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatal(err)
		}
		kind, rating, err := m.Parse()
		if err != nil || kind != game.KindDuel || rating != 1200 {
			t.Errorf("%s: got %v %v %v", raw, kind, rating, err)
		}
	}

	bad := []JoinMsg{
		{Kind: "training", Rating: 1},
		{Kind: "squad", Rating: "lots"},
		{Kind: "duel", Rating: "0x10"},
	}
	for _, m := range bad {
		if _, _, err := m.Parse(); err == nil {
			t.Errorf("%+v should be rejected", m)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	raw, _ := json.Marshal(Envelope{T: "Score", Data: game.Score{Score1: 2, Score2: 3}})
	want := `{"t":"Score","d":{"score1":2,"score2":3}}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}

func TestJoinMsgStringRatingIsDecimal(t *testing.T) {
	_, rating, err := JoinMsg{Kind: "duel", Rating: "010"}.Parse()
	if err != nil || rating != 10 {
		t.Errorf("got %d, %v; want 10", rating, err)
	}
	_, rating, err = JoinMsg{Kind: "duel", Rating: " 1500 "}.Parse()
	if err != nil || rating != 1500 {
		t.Errorf("got %d, %v; want 1500", rating, err)
	}
}
