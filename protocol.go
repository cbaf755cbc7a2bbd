package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/qnd101/PenFootball-GameServer/game"
)

// Client -> Server message types
const (
	MsgKey   = "key"
	MsgExit  = "exit"
	MsgJoin  = "join"
	MsgTrain = "train"
)

// Server -> Client message types not produced by sessions
const (
	MsgError = "Error"
)

// Envelope wraps all outgoing text messages with a type field
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// KeyMsg is a directional key press or release
type KeyMsg struct {
	Type string `json:"type"` // KeyDown or KeyUp
	Key  string `json:"key"`  // Up, Down, Left, Right
}

func (m KeyMsg) Parse() (game.Key, game.Press, error) {
	press, err := game.ParsePress(m.Type)
	if err != nil {
		return 0, 0, err
	}
	key, err := game.ParseKey(m.Key)
	if err != nil {
		return 0, 0, err
	}
	return key, press, nil
}

// JoinMsg asks to wait for a ranked match. Rating may arrive as a number or
// a numeric string.
type JoinMsg struct {
	Kind   string `json:"kind"`
	Rating any    `json:"rating"`
}

func (m JoinMsg) Parse() (game.Kind, int, error) {
	kind := game.Kind(m.Kind)
	if kind != game.KindDuel && kind != game.KindSquad {
		return "", 0, fmt.Errorf("unknown queue %q", m.Kind)
	}
	rating, err := parseRating(m.Rating)
	if err != nil {
		return "", 0, fmt.Errorf("rating: %w", err)
	}
	return kind, rating, nil
}

// parseRating takes numeric strings as plain decimal; other values go
// through cast.
func parseRating(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(v)
}

// ErrorMsg tells a client why its request was refused
type ErrorMsg struct {
	Message string `json:"message"`
}
