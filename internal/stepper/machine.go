package stepper

import "time"

// Step is the outcome of a single Advance call.
type Step struct {
	Event *Event
	Done  bool
	// Delay asks the player to wait at least this long before the next
	// advance. Zero means the default pacing.
	Delay time.Duration
}

// Sequence is a resumable computation producing steps.
type Sequence interface {
	Advance() Step
	Result() any
	Status() Status
	Name() string
}

// Status is the lifecycle position of a sequence.
type Status int

const (
	NotStarted Status = iota
	Suspended
	PendingDelay
	Completed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Suspended:
		return "suspended"
	case PendingDelay:
		return "pending-delay"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Frame is one activation record. Resume receives the value returned by
// the most recently finished child frame, or nil.
type Frame interface {
	Resume(ret any) Transition
}

// Transition tells the machine what a frame did when it was resumed.
// A transition may both push a child and yield an event; the child starts
// on the next resumption.
type Transition struct {
	event *Event
	delay time.Duration
	call  Frame
	ret   any
	done  bool
}

// Yield suspends the frame after emitting ev.
func Yield(ev *Event) Transition { return Transition{event: ev} }

// YieldDelay is Yield with a pacing request.
func YieldDelay(ev *Event, d time.Duration) Transition { return Transition{event: ev, delay: d} }

// Call delegates to child. If ev is non-nil it is emitted first.
func Call(child Frame, ev *Event) Transition { return Transition{call: child, event: ev} }

// Return pops the frame and hands v to its parent.
func Return(v any) Transition { return Transition{ret: v, done: true} }

// ReturnYield pops the frame, hands v to its parent and emits ev.
func ReturnYield(v any, ev *Event) Transition { return Transition{ret: v, done: true, event: ev} }

// Machine interprets a stack of frames as a Sequence.
type Machine struct {
	name    string
	stack   []Frame
	ret     any
	result  any
	steps   int
	status  Status
	maxWalk int
}

// NewMachine returns a machine that will start by resuming root.
func NewMachine(name string, root Frame) *Machine {
	return &Machine{
		name:    name,
		stack:   []Frame{root},
		status:  NotStarted,
		maxWalk: 1 << 16,
	}
}

func (m *Machine) Name() string   { return m.name }
func (m *Machine) Status() Status { return m.status }
func (m *Machine) Steps() int     { return m.steps }
func (m *Machine) Depth() int     { return len(m.stack) }

// Result is the value returned by the root frame; nil until completed.
func (m *Machine) Result() any { return m.result }

// Advance resumes frames until one yields an event or the root returns.
// Frames that push or pop silently are walked through in the same call.
func (m *Machine) Advance() Step {
	if m.status == Completed {
		return Step{Done: true}
	}
	for walked := 0; len(m.stack) > 0; walked++ {
		if walked > m.maxWalk {
			panic("stepper: frame made no progress: " + m.name)
		}
		top := m.stack[len(m.stack)-1]
		ret := m.ret
		m.ret = nil
		tr := top.Resume(ret)

		if tr.done {
			m.stack = m.stack[:len(m.stack)-1]
			if len(m.stack) == 0 {
				m.result = tr.ret
			} else {
				m.ret = tr.ret
			}
		}
		if tr.call != nil {
			m.stack = append(m.stack, tr.call)
		}
		if tr.event != nil {
			m.steps++
			ev := *tr.event
			ev.Seq = m.steps
			ev.Algorithm = m.name
			m.status = Suspended
			if tr.delay > 0 {
				m.status = PendingDelay
			}
			return Step{Event: &ev, Delay: tr.delay}
		}
	}
	m.status = Completed
	return Step{Done: true}
}

// Drain advances seq to completion and returns every event it produced.
func Drain(seq Sequence) []Event {
	var events []Event
	for {
		st := seq.Advance()
		if st.Done {
			return events
		}
		if st.Event != nil {
			events = append(events, *st.Event)
		}
	}
}
