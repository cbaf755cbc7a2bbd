package game

import "fmt"

// Key is one of the four directional controls.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = [...]string{"Up", "Down", "Left", "Right"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey maps a wire name ("Up", "Down", "Left", "Right") to a Key.
func ParseKey(s string) (Key, error) {
	for i, n := range keyNames {
		if n == s {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// Mirror swaps Left and Right.
func (k Key) Mirror() Key {
	switch k {
	case KeyLeft:
		return KeyRight
	case KeyRight:
		return KeyLeft
	}
	return k
}

// Press distinguishes key-down from key-up.
type Press int

const (
	Released Press = iota
	Pressed
)

// ParsePress maps "KeyDown"/"KeyUp" to a Press.
func ParsePress(s string) (Press, error) {
	switch s {
	case "KeyDown":
		return Pressed, nil
	case "KeyUp":
		return Released, nil
	}
	return 0, fmt.Errorf("unknown key event type %q", s)
}

// Event is an input delivered to a session's inbound queue. Slot is 1-based.
type Event interface {
	slot() int
}

type KeyEvent struct {
	Slot  int
	Key   Key
	Press Press
}

type ExitEvent struct {
	Slot int
}

type ChatEvent struct {
	Slot int
	Msg  string
}

func (e KeyEvent) slot() int  { return e.Slot }
func (e ExitEvent) slot() int { return e.Slot }
func (e ChatEvent) slot() int { return e.Slot }

// KeyState is the held state of every key plus the edges seen this tick.
type KeyState struct {
	Held     [4]bool
	Down, Up []Key
}

// ClearEdges forgets the press/release lists of the previous tick.
func (ks *KeyState) ClearEdges() {
	ks.Down = ks.Down[:0]
	ks.Up = ks.Up[:0]
}

// Apply records one key event.
func (ks *KeyState) Apply(k Key, p Press) {
	if k < 0 || int(k) >= len(ks.Held) {
		return
	}
	ks.Held[k] = p == Pressed
	if p == Pressed {
		ks.Down = append(ks.Down, k)
	} else {
		ks.Up = append(ks.Up, k)
	}
}

func (ks *KeyState) pressedCount(k Key) int {
	n := 0
	for _, d := range ks.Down {
		if d == k {
			n++
		}
	}
	return n
}
