package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/emit"
	"github.com/san-kum/algoviz/internal/stepper"
)

const (
	MinSpeedLevel = 5
	MaxSpeedLevel = 100

	DefaultSpeed  = 500 * time.Millisecond
	DefaultSettle = 50 * time.Millisecond
)

// State of the playback state machine.
type State int

const (
	Idle State = iota
	Paused
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// SpeedForLevel maps a UI speed level onto the delay between steps.
// Level is clamped to [MinSpeedLevel, MaxSpeedLevel]; 5 gives 1950ms and
// 100 gives 50ms.
func SpeedForLevel(level int) time.Duration {
	if level < MinSpeedLevel {
		level = MinSpeedLevel
	}
	if level > MaxSpeedLevel {
		level = MaxSpeedLevel
	}
	return time.Duration(2050-level*20) * time.Millisecond
}

// LevelForSpeed is the inverse of SpeedForLevel, rounded to the nearest level.
func LevelForSpeed(d time.Duration) int {
	ms := int(d / time.Millisecond)
	level := (2050 - ms + 10) / 20
	if level < MinSpeedLevel {
		return MinSpeedLevel
	}
	if level > MaxSpeedLevel {
		return MaxSpeedLevel
	}
	return level
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option  { return func(c *Controller) { c.sched = s } }
func WithSettle(d time.Duration) Option { return func(c *Controller) { c.settle = d } }
func WithSpeed(d time.Duration) Option  { return func(c *Controller) { c.speed = d } }

// WithLogger sets the logger for state transitions; nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnFinish registers a callback run when a sequence completes. It runs
// under the controller lock and must not call back into the controller.
func WithOnFinish(f func(name string, result any)) Option {
	return func(c *Controller) { c.onFinish = f }
}

// Controller plays one sequence at a time.
type Controller struct {
	mu       sync.Mutex
	state    State
	seq      stepper.Sequence
	name     string
	result   any
	steps    int
	done     chan struct{}
	speed    time.Duration
	settle   time.Duration
	gen      uint64
	timer    Timer
	sched    Scheduler
	sink     emit.Sink
	logger   *slog.Logger
	onFinish func(name string, result any)
}

func New(sink emit.Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = emit.Null()
	}
	c := &Controller{
		state:  Idle,
		speed:  DefaultSpeed,
		settle: DefaultSettle,
		sched:  TimerScheduler{},
		sink:   sink,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start installs seq in the Paused state. Any previous sequence and its
// pending continuation are discarded.
func (c *Controller) Start(seq stepper.Sequence) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.seq = seq
	c.name = seq.Name()
	c.result = nil
	c.steps = 0
	c.done = make(chan struct{})
	c.setStateLocked(Paused)
}

// TogglePlayPause flips between Paused and Playing and returns the new
// state. It does nothing when idle, finished or without a sequence.
func (c *Controller) TogglePlayPause() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == nil {
		return c.state
	}
	switch c.state {
	case Paused:
		c.setStateLocked(Playing)
		c.scheduleLocked(c.settle)
	case Playing:
		c.cancelLocked()
		c.setStateLocked(Paused)
	}
	return c.state
}

// Cancel pauses a playing run, e.g. when its view is left.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	if c.state == Playing {
		c.setStateLocked(Paused)
	}
}

// Reset discards the sequence and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.seq = nil
	c.result = nil
	c.steps = 0
	c.setStateLocked(Idle)
}

// Step advances exactly one step while paused. It reports false when no
// step was taken.
func (c *Controller) Step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused || c.seq == nil {
		return false
	}
	c.advanceLocked()
	return true
}

// SetSpeed changes the delay used by the next scheduled advance.
func (c *Controller) SetSpeed(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = SpeedForLevel(level)
	c.logger.Debug("playback speed", "level", level, "delay", c.speed)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Speed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Steps is the number of events emitted by the current run.
func (c *Controller) Steps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps
}

// Result is the completion value of the last finished run.
func (c *Controller) Result() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Name of the installed or last finished sequence.
func (c *Controller) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// Done is closed when the current run finishes.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Controller) setStateLocked(s State) {
	if c.state != s {
		c.logger.Debug("playback state", "from", c.state, "to", s, "sequence", c.name)
	}
	c.state = s
}

// cancelLocked invalidates every outstanding callback.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) scheduleLocked(d time.Duration) {
	gen := c.gen
	c.timer = c.sched.AfterFunc(d, func() { c.tick(gen) })
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != Playing || c.seq == nil {
		return
	}
	c.timer = nil
	st := c.advanceLocked()
	if st.Done {
		return
	}
	delay := c.speed
	if st.Delay > delay {
		delay = st.Delay
	}
	c.scheduleLocked(delay + c.settle)
}

func (c *Controller) advanceLocked() stepper.Step {
	st := c.seq.Advance()
	if st.Event != nil {
		c.steps++
		c.sink.Emit(*st.Event)
	}
	if st.Done {
		c.cancelLocked()
		c.result = c.seq.Result()
		c.seq = nil
		c.setStateLocked(Finished)
		close(c.done)
		if c.onFinish != nil {
			c.onFinish(c.name, c.result)
		}
	}
	return st
}
