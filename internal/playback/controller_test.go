package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/emit"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/stepper"
)

type stamped struct {
	at time.Duration
	ev stepper.Event
}

var _ = Describe("SpeedForLevel", func() {
	It("maps levels linearly onto the step delay", func() {
		Expect(playback.SpeedForLevel(5)).To(Equal(1950 * time.Millisecond))
		Expect(playback.SpeedForLevel(50)).To(Equal(1050 * time.Millisecond))
		Expect(playback.SpeedForLevel(100)).To(Equal(50 * time.Millisecond))
	})

	It("clamps out of range levels", func() {
		Expect(playback.SpeedForLevel(0)).To(Equal(1950 * time.Millisecond))
		Expect(playback.SpeedForLevel(500)).To(Equal(50 * time.Millisecond))
	})

	It("round trips through LevelForSpeed", func() {
		for level := playback.MinSpeedLevel; level <= playback.MaxSpeedLevel; level++ {
			Expect(playback.LevelForSpeed(playback.SpeedForLevel(level))).To(Equal(level))
		}
	})
})

var _ = Describe("Controller", func() {
	var (
		sched    *playback.ManualScheduler
		events   []stamped
		finished []string
		ctrl     *playback.Controller
	)

	newCoins := func(amount int) stepper.Sequence {
		cc, err := algo.NewCoinChange(amount, nil)
		Expect(err).NotTo(HaveOccurred())
		return cc
	}

	BeforeEach(func() {
		sched = playback.NewManualScheduler()
		events = nil
		finished = nil
		sink := emit.SinkFunc(func(ev stepper.Event) {
			events = append(events, stamped{at: sched.Now(), ev: ev})
		})
		ctrl = playback.New(sink,
			playback.WithScheduler(sched),
			playback.WithOnFinish(func(name string, _ any) { finished = append(finished, name) }),
		)
		ctrl.SetSpeed(100)
	})

	It("starts idle and ignores toggles without a sequence", func() {
		Expect(ctrl.State()).To(Equal(playback.Idle))
		Expect(ctrl.TogglePlayPause()).To(Equal(playback.Idle))
		Expect(ctrl.Step()).To(BeFalse())
		Expect(sched.Pending()).To(BeZero())
	})

	Context("after Start", func() {
		BeforeEach(func() {
			ctrl.Start(newCoins(7))
		})

		It("waits paused without scheduling anything", func() {
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(sched.Pending()).To(BeZero())
			sched.Advance(time.Minute)
			Expect(events).To(BeEmpty())
		})

		It("advances after the settle delay and then at the chosen speed", func() {
			Expect(ctrl.TogglePlayPause()).To(Equal(playback.Playing))

			sched.Advance(49 * time.Millisecond)
			Expect(events).To(BeEmpty())

			sched.Advance(time.Millisecond)
			Expect(events).To(HaveLen(1))
			Expect(events[0].ev.Action).To(Equal("start"))
			Expect(events[0].at).To(Equal(50 * time.Millisecond))

			sched.Advance(100 * time.Millisecond)
			Expect(events).To(HaveLen(2))
			Expect(events[1].at).To(Equal(150 * time.Millisecond))
		})

		It("stops advancing while paused and resumes where it left off", func() {
			ctrl.TogglePlayPause()
			sched.Advance(150 * time.Millisecond)
			Expect(events).To(HaveLen(2))

			Expect(ctrl.TogglePlayPause()).To(Equal(playback.Paused))
			Expect(sched.Pending()).To(BeZero())
			sched.Advance(10 * time.Second)
			Expect(events).To(HaveLen(2))

			ctrl.TogglePlayPause()
			sched.Advance(50 * time.Millisecond)
			Expect(events).To(HaveLen(3))
			Expect(events[2].ev.Seq).To(Equal(3))
		})

		It("steps exactly once per Step while paused", func() {
			Expect(ctrl.Step()).To(BeTrue())
			Expect(ctrl.Step()).To(BeTrue())
			Expect(events).To(HaveLen(2))
			Expect(ctrl.Steps()).To(Equal(2))
			Expect(ctrl.State()).To(Equal(playback.Paused))

			ctrl.TogglePlayPause()
			Expect(ctrl.Step()).To(BeFalse())
		})

		It("applies a new speed at the next schedule", func() {
			ctrl.TogglePlayPause()
			sched.Advance(50 * time.Millisecond)
			Expect(events).To(HaveLen(1))

			// The pending advance keeps its old delay.
			ctrl.SetSpeed(5)
			Expect(ctrl.Speed()).To(Equal(1950 * time.Millisecond))
			sched.Advance(100 * time.Millisecond)
			Expect(events).To(HaveLen(2))

			sched.Advance(1999 * time.Millisecond)
			Expect(events).To(HaveLen(2))
			sched.Advance(time.Millisecond)
			Expect(events).To(HaveLen(3))
		})

		It("finishes and reports the result once", func() {
			ctrl.TogglePlayPause()
			sched.Advance(time.Minute)

			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(finished).To(Equal([]string{algo.NameCoins}))
			Expect(ctrl.Done()).To(BeClosed())
			Expect(sched.Pending()).To(BeZero())

			res, ok := ctrl.Result().(algo.ChangeResult)
			Expect(ok).To(BeTrue())
			Expect(res.Counts).To(HaveKeyWithValue(5, 1))
			Expect(res.Counts).To(HaveKeyWithValue(2, 1))

			Expect(events[len(events)-1].ev.Action).To(Equal("finished"))
			Expect(ctrl.TogglePlayPause()).To(Equal(playback.Finished))
			Expect(ctrl.Step()).To(BeFalse())
		})

		It("pauses on Cancel and goes idle on Reset", func() {
			ctrl.TogglePlayPause()
			ctrl.Cancel()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			sched.Advance(time.Minute)
			Expect(events).To(BeEmpty())

			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Step()).To(BeFalse())
		})
	})

	Context("when timers cannot be stopped", func() {
		BeforeEach(func() {
			sched.IgnoreStop = true
		})

		It("drops the stale continuation of a replaced run", func() {
			ctrl.Start(newCoins(7))
			ctrl.TogglePlayPause()

			ctrl.Start(newCoins(3))
			Expect(sched.Pending()).To(Equal(1))
			sched.Advance(time.Minute)

			Expect(events).To(BeEmpty())
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Steps()).To(BeZero())
		})

		It("drops the stale continuation after pause and resume", func() {
			ctrl.Start(newCoins(7))
			ctrl.TogglePlayPause()
			ctrl.TogglePlayPause()
			ctrl.TogglePlayPause()

			sched.Advance(50 * time.Millisecond)
			Expect(events).To(HaveLen(1))
			sched.Advance(100 * time.Millisecond)
			Expect(events).To(HaveLen(2))
		})
	})

	It("honors a step's delay request when it exceeds the speed", func() {
		q, err := algo.NewNQueens(4)
		Expect(err).NotTo(HaveOccurred())
		ctrl.Start(q)
		ctrl.TogglePlayPause()
		sched.Advance(time.Hour)

		Expect(ctrl.State()).To(Equal(playback.Finished))
		backtracks := 0
		for i := 1; i < len(events); i++ {
			gap := events[i].at - events[i-1].at
			if events[i-1].ev.Action == "backtracking" {
				backtracks++
				Expect(gap).To(Equal(algo.BacktrackDelay + playback.DefaultSettle))
			} else {
				Expect(gap).To(Equal(100 * time.Millisecond))
			}
		}
		Expect(backtracks).To(BeNumerically(">", 0))
	})
})
