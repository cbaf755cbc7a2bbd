package game

import "sync"

// Session is one running Training, Duel or Squad instance.
//
// Enqueue may be called from any goroutine. Every other method belongs to
// the tick loop: Update drains the inbound queue and steps the simulation,
// Frame and Outputs are read by each viewer, and Flush clears the outbox
// once all viewers have read it.
type Session interface {
	Kind() Kind
	Slots() int
	Enqueue(e Event)
	Update(dt float64)
	Frame(slot int) Frame
	Outputs(slot int) []Output
	Flush()
	// Ended reports whether the current outbox holds a GameEnd.
	Ended() bool
}

// Scored is implemented by sessions that keep a score.
type Scored interface {
	Session
	// Ending returns the terminal event and final score if the current
	// outbox holds one.
	Ending() (GameEnd, Score, bool)
}

// inbox is a multi-producer queue drained by a single consumer.
type inbox struct {
	mu     sync.Mutex
	events []Event
}

func (q *inbox) push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

func (q *inbox) drain() []Event {
	q.mu.Lock()
	ev := q.events
	q.events = nil
	q.mu.Unlock()
	return ev
}

// room holds the queue and outbox shared by all session kinds.
type room struct {
	in     inbox
	outbox []Output
}

func (r *room) Enqueue(e Event) { r.in.push(e) }

func (r *room) Flush() { r.outbox = nil }

func (r *room) emit(o Output) { r.outbox = append(r.outbox, o) }

func (r *room) outputs(mirror bool) []Output {
	outs := append([]Output(nil), r.outbox...)
	return MirrorAll(outs, mirror)
}

func (r *room) ending() (GameEnd, bool) {
	for _, o := range r.outbox {
		if ge, ok := o.(GameEnd); ok {
			return ge, true
		}
	}
	return GameEnd{}, false
}

func (r *room) Ended() bool {
	_, ok := r.ending()
	return ok
}
