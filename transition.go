package main

import (
	"container/heap"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timer is a one-shot callback scheduled on a Clock
type Timer struct {
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
}

// Stop prevents the timer from firing. Stopping a fired timer is a no-op.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// timerQueue orders timers by due time, then by scheduling order
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*Timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	t := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return t
}

// Clock is a tick-driven scheduler. Time only moves when Advance is called,
// so every callback runs inside the game loop.
type Clock struct {
	now    time.Duration
	seq    int
	timers timerQueue
}

// NewClock returns a clock at time zero
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed clock time
func (c *Clock) Now() time.Duration {
	return c.now
}

// After schedules fn to run once d has elapsed
func (c *Clock) After(d time.Duration, fn func()) *Timer {
	c.seq++
	t := &Timer{due: c.now + d, seq: c.seq, fn: fn}
	heap.Push(&c.timers, t)
	return t
}

// Advance moves time forward by dt and fires every due timer in order.
// Callbacks may schedule further timers; those fire too if already due.
// Stopped timers are dropped as they come up.
func (c *Clock) Advance(dt time.Duration) {
	c.now += dt
	for len(c.timers) > 0 && c.timers[0].due <= c.now {
		t := heap.Pop(&c.timers).(*Timer)
		if !t.stopped {
			t.fn()
		}
	}
}

// Pending returns the number of timers that have not fired or been stopped
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Transition groups the timers of one animated change so it can be
// cancelled as a unit
type Transition struct {
	clock     *Clock
	timers    []*Timer
	cancelled bool
}

// NewTransition starts an empty transition on clock
func NewTransition(clock *Clock) *Transition {
	return &Transition{clock: clock}
}

// After schedules fn as part of the transition. Nothing is scheduled once
// the transition is cancelled.
func (tr *Transition) After(d time.Duration, fn func()) {
	if tr.cancelled {
		return
	}
	tr.timers = append(tr.timers, tr.clock.After(d, func() {
		if !tr.cancelled {
			fn()
		}
	}))
}

// Cancel stops every pending step. Safe on a nil handle.
func (tr *Transition) Cancel() {
	if tr == nil || tr.cancelled {
		return
	}
	tr.cancelled = true
	for _, t := range tr.timers {
		t.Stop()
	}
	tr.timers = nil
}

// Cancelled reports whether Cancel was called
func (tr *Transition) Cancelled() bool {
	return tr != nil && tr.cancelled
}

// Tween interpolates from -> to over steps updates spaced interval apart,
// calling set with each eased value. The offset delays the first step.
// The easing curve is sampled once per step from a gween tween over [0, 1].
func (tr *Transition) Tween(offset time.Duration, from, to mgl64.Vec2, steps int, interval time.Duration, easing ease.TweenFunc, set func(mgl64.Vec2)) {
	progress := gween.New(0, 1, float32(steps), easing)
	delta := to.Sub(from)
	for i := 1; i <= steps; i++ {
		f, _ := progress.Set(float32(i))
		v := from.Add(delta.Mul(float64(f)))
		tr.After(offset+time.Duration(i)*interval, func() { set(v) })
	}
}
