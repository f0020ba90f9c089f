package search

import (
	"fmt"
	"strconv"
)

// EventKind is the kind of a decision point recorded during a search.
type EventKind byte

const (
	CacheHit  EventKind = iota // answered from the transposition table
	Terminal                   // somebody has won
	Leaf                       // depth exhausted or board full: static evaluation
	Immediate                  // the mover can win right away
	Enter                      // about to expand the children
	Child                      // a child has been searched
	Prune                      // the remaining siblings are cut off
	Exit                       // the node's value is final
)

var kindLabels = [...]string{
	CacheHit:  "TT-HIT",
	Terminal:  "TERMINAL",
	Leaf:      "LEAF",
	Immediate: "IMMEDIATE",
	Enter:     "ENTER",
	Child:     "child",
	Prune:     "PRUNED",
	Exit:      "EXIT",
}

func (k EventKind) String() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// IsNode reports whether the event stands for a visited position. Every search
// invocation records exactly one such event.
func (k EventKind) IsNode() bool { return k <= Enter }

// Event is one entry of a search trace.
type Event struct {
	Kind   EventKind
	Level  int // distance from the root
	Column int // the column that led here (or, for Immediate, the winning column); -1 for none
	Value  Score

	// Maximizing is only meaningful for Enter.
	Maximizing bool

	// Alpha and Beta are the window at the time of the event. Bounded is false in
	// searches without pruning, where there is no window.
	Alpha, Beta Score
	Bounded     bool
}

func (ev Event) String() string {
	if ev.Kind == Prune {
		return fmt.Sprintf("PRUNED | a=%v | b=%v", ev.Alpha, ev.Beta)
	}
	val := ev.Value.String()
	if ev.Kind == Enter {
		val = "MIN"
		if ev.Maximizing {
			val = "MAX"
		}
	}
	a, b := "N/A", "N/A"
	if ev.Bounded {
		a, b = ev.Alpha.String(), ev.Beta.String()
	}
	return fmt.Sprintf("%v | col=%s | val=%s (a=%s, b=%s)", ev.Kind, columnString(ev.Column), val, a, b)
}

func columnString(col int) string {
	if col < 0 {
		return "None"
	}
	return strconv.Itoa(col)
}

// Line is a rendered trace event.
type Line struct {
	Level int
	Text  string
}

// Tracer receives the events of a search, in depth-first order.
type Tracer interface {
	Record(ev Event)
	Clear()
}

// NopTracer discards everything.
type NopTracer struct{}

func (NopTracer) Record(Event) {}
func (NopTracer) Clear()       {}

// Recorder is a Tracer that keeps every event.
type Recorder struct {
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{events: make([]Event, 0, 1024)} }

func (r *Recorder) Record(ev Event) { r.events = append(r.events, ev) }

func (r *Recorder) Clear() { r.events = r.events[:0] }

func (r *Recorder) Len() int { return len(r.events) }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	retVal := make([]Event, len(r.events))
	copy(retVal, r.events)
	return retVal
}

// Lines renders the recorded events.
func (r *Recorder) Lines() []Line {
	retVal := make([]Line, len(r.events))
	for i, ev := range r.events {
		retVal[i] = Line{Level: ev.Level, Text: ev.String()}
	}
	return retVal
}

// NodeCount is the number of positions visited.
func (r *Recorder) NodeCount() int {
	var n int
	for _, ev := range r.events {
		if ev.Kind.IsNode() {
			n++
		}
	}
	return n
}

// Count is the number of events of the given kind.
func (r *Recorder) Count(kind EventKind) int {
	var n int
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
