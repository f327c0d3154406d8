package stepper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countFrame yields n events then returns n.
type countFrame struct {
	n, i int
}

func (f *countFrame) Resume(any) Transition {
	if f.i == f.n {
		return Return(f.n)
	}
	f.i++
	return Yield(NewEvent(KindInfo, "tick", f.i, "tick %d", f.i))
}

// sumFrame calls two children and returns the sum of their results.
type sumFrame struct {
	pc  int
	sum int
}

func (f *sumFrame) Resume(ret any) Transition {
	switch f.pc {
	case 0:
		f.pc = 1
		return Call(&countFrame{n: 2}, NewEvent(KindInfo, "call", nil, "first"))
	case 1:
		f.sum += ret.(int)
		f.pc = 2
		return Call(&countFrame{n: 3}, nil)
	case 2:
		f.sum += ret.(int)
		return ReturnYield(f.sum, NewEvent(KindSuccess, "done", nil, "sum %d", f.sum))
	}
	panic("bad pc")
}

func TestMachineDelegationPassesReturnValues(t *testing.T) {
	m := NewMachine("sum", &sumFrame{})
	assert.Equal(t, NotStarted, m.Status())

	events := Drain(m)
	actions := make([]string, len(events))
	for i, ev := range events {
		actions[i] = ev.Action
	}
	assert.Equal(t, []string{"call", "tick", "tick", "tick", "tick", "tick", "done"}, actions)
	assert.Equal(t, 5, m.Result())
	assert.Equal(t, Completed, m.Status())
	assert.Equal(t, 0, m.Depth())
}

func TestMachineStampsSequenceAndName(t *testing.T) {
	m := NewMachine("count", &countFrame{n: 3})
	for want := 1; want <= 3; want++ {
		st := m.Advance()
		require.False(t, st.Done)
		require.NotNil(t, st.Event)
		assert.Equal(t, want, st.Event.Seq)
		assert.Equal(t, "count", st.Event.Algorithm)
		assert.Equal(t, Suspended, m.Status())
	}
	st := m.Advance()
	assert.True(t, st.Done)
	assert.Nil(t, st.Event)
	assert.Equal(t, 3, m.Steps())

	// Completed machines stay completed.
	assert.True(t, m.Advance().Done)
	assert.Equal(t, 3, m.Result())
}

type delayFrame struct{ pc int }

func (f *delayFrame) Resume(any) Transition {
	f.pc++
	switch f.pc {
	case 1:
		return YieldDelay(NewEvent(KindBacktrack, "slow", nil, "slow"), 300*time.Millisecond)
	case 2:
		return Yield(NewEvent(KindInfo, "fast", nil, "fast"))
	}
	return Return(nil)
}

func TestMachineDelayRequest(t *testing.T) {
	m := NewMachine("delay", &delayFrame{})

	st := m.Advance()
	assert.Equal(t, 300*time.Millisecond, st.Delay)
	assert.Equal(t, PendingDelay, m.Status())

	st = m.Advance()
	assert.Zero(t, st.Delay)
	assert.Equal(t, Suspended, m.Status())

	assert.True(t, m.Advance().Done)
	assert.Nil(t, m.Result())
}

func TestMachineEventIsACopy(t *testing.T) {
	ev := NewEvent(KindInfo, "same", nil, "same")
	frame := &repeatFrame{ev: ev, n: 2}
	m := NewMachine("copy", frame)

	first := m.Advance().Event
	second := m.Advance().Event
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2, second.Seq)
	assert.Zero(t, ev.Seq)
}

type repeatFrame struct {
	ev *Event
	n  int
}

func (f *repeatFrame) Resume(any) Transition {
	if f.n == 0 {
		return Return(nil)
	}
	f.n--
	return Yield(f.ev)
}

type spinFrame struct{}

func (spinFrame) Resume(any) Transition { return Call(spinFrame{}, nil) }

func TestMachinePanicsWithoutProgress(t *testing.T) {
	m := NewMachine("spin", spinFrame{})
	m.maxWalk = 10
	assert.Panics(t, func() { m.Advance() })
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "not-started", NotStarted.String())
	assert.Equal(t, "pending-delay", PendingDelay.String())
	assert.Equal(t, "unknown", Status(42).String())
}
