package game

import "strings"

// Kind identifies a session type and its waiting queue.
type Kind string

const (
	KindTraining Kind = "training"
	KindDuel     Kind = "duel"
	KindSquad    Kind = "squad"
)

// Placeholders in GameEnd summaries, substituted with display names by the
// transport.
const (
	SideOneTag = "*1*"
	SideTwoTag = "*2*"
)

// Output is a one-shot event read by every viewer of a session. Mirror turns
// the canonical (side 1) form into the side 2 form.
type Output interface {
	Name() string
	Mirror() Output
}

type Preview struct {
	Geometry
}

type Score struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

type GameEnd struct {
	Summary string `json:"summary"`
	Winner  int    `json:"winner"`
	Close   bool   `json:"close"`
}

type Chat struct {
	Who     int    `json:"who"`
	Message string `json:"message"`
}

type GameFound struct {
	Kind Kind  `json:"kind"`
	IDs  []int `json:"ids"`
}

type WaitingInfo struct {
	Kind  Kind `json:"kind"`
	Count int  `json:"count"`
}

func (Preview) Name() string     { return "Preview" }
func (Score) Name() string       { return "Score" }
func (GameEnd) Name() string     { return "GameEnd" }
func (Chat) Name() string        { return "Chat" }
func (GameFound) Name() string   { return "GameFound" }
func (WaitingInfo) Name() string { return "WaitingInfo" }

func (o Preview) Mirror() Output     { return o }
func (o WaitingInfo) Mirror() Output { return o }
func (o Score) Mirror() Output       { return Score{Score1: o.Score2, Score2: o.Score1} }
func (o Chat) Mirror() Output        { return Chat{Who: 3 - o.Who, Message: o.Message} }

func (o GameEnd) Mirror() Output {
	return GameEnd{
		Summary: swapTags(o.Summary),
		Winner:  3 - o.Winner,
		Close:   o.Close,
	}
}

// Mirror swaps the ids of opposing slots pairwise.
func (o GameFound) Mirror() Output {
	ids := make([]int, len(o.IDs))
	for i, id := range o.IDs {
		j := i ^ 1
		if j >= len(ids) {
			j = i
		}
		ids[j] = id
	}
	return GameFound{Kind: o.Kind, IDs: ids}
}

var tagSwapper = strings.NewReplacer(SideOneTag, SideTwoTag, SideTwoTag, SideOneTag)

func swapTags(s string) string { return tagSwapper.Replace(s) }

// MirrorAll returns outs mirrored for a side 2 viewer, or outs itself when
// mirror is false.
func MirrorAll(outs []Output, mirror bool) []Output {
	if !mirror || len(outs) == 0 {
		return outs
	}
	res := make([]Output, len(outs))
	for i, o := range outs {
		res[i] = o.Mirror()
	}
	return res
}
