// Package spin eases the rule's wheels toward typed-in values.
package spin

import (
	"log/slog"
	"math"
	"time"

	"github.com/iburimskiy/circular-rule/internal/rule"
)

const (
	// DefaultDelay is the pause between easing steps.
	DefaultDelay = 10 * time.Millisecond

	stepFraction = 0.1
	tolerance    = 0.001
)

// Target is where the wheels should end up: the top value and the internal
// offset (the reciprocal of the divisor in divide mode).
type Target struct {
	Top, Offset float64
}

// Animator moves a view a tenth of the remaining log-distance per step. Each
// Start supersedes the previous animation; a generation counter makes stale
// steps no-ops even if their cancel raced with the scheduler.
type Animator struct {
	view  *rule.View
	sched Scheduler
	delay time.Duration
	log   *slog.Logger

	gen    uint64
	cancel func()
	steps  int
}

func New(view *rule.View, sched Scheduler, delay time.Duration, log *slog.Logger) *Animator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = slog.Default()
	}
	return &Animator{view: view, sched: sched, delay: delay, log: log}
}

// Start begins easing toward target and runs the first step immediately.
// onStep is called after every step with done set on the last one. It
// reports false, and leaves the view alone, when target is unusable; the
// previous animation is stopped either way.
func (a *Animator) Start(target Target, onStep func(done bool)) bool {
	a.Stop()
	if !rule.Valid(target.Top) || !rule.Valid(target.Offset) {
		return false
	}
	if !finite(target.Top/a.view.Top()) || !finite(target.Offset/a.view.Offset()) {
		return false
	}
	a.steps = 0
	a.log.Debug("spin started", "top", target.Top, "offset", target.Offset)
	a.step(a.gen, target, onStep)
	return true
}

// Stop cancels the pending step, if any.
func (a *Animator) Stop() {
	a.gen++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Running reports whether a step is scheduled.
func (a *Animator) Running() bool {
	return a.cancel != nil
}

// Steps is the number of steps the current or last animation has taken.
func (a *Animator) Steps() int {
	return a.steps
}

func (a *Animator) step(gen uint64, target Target, onStep func(done bool)) {
	if gen != a.gen {
		return
	}
	a.cancel = nil
	a.steps++

	dTop := target.Top / a.view.Top()
	dOffset := target.Offset / a.view.Offset()
	if !finite(dTop) || !finite(dOffset) {
		return
	}
	tol := tolerance / a.view.Zoom()

	again := false
	if math.Abs(dTop-1) < tol {
		a.view.SetTop(target.Top)
	} else {
		a.view.SetTop(a.view.Top() * math.Pow(dTop, stepFraction))
		again = true
	}
	if math.Abs(dOffset-1) < tol {
		a.view.SetOffset(target.Offset)
	} else {
		a.view.SetOffset(a.view.Offset() * math.Pow(dOffset, stepFraction))
		again = true
	}

	if again {
		a.cancel = a.sched.After(a.delay, func() { a.step(gen, target, onStep) })
	} else {
		a.log.Debug("spin finished", "steps", a.steps)
	}
	if onStep != nil {
		onStep(!again)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
