package countdown

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer counts down to a target instant, ticking once per second, and fires
// a one-shot callback when the target is reached.
//
// Remaining time is derived from the deadline on every tick rather than
// decremented blindly, so a stalled or suspended process cannot leave the
// display ahead of the real deadline. The callback runs on its own
// goroutine, after the tick that observed zero, and fires exactly once per
// Timer, including when the deadline is already past at construction.
type Timer struct {
	clock    clockwork.Clock
	onExpire func()

	mu       sync.Mutex
	deadline time.Time
	fired    bool
	stopped  bool

	stopCh chan struct{}
}

// New creates and starts a Timer targeting endTime. onExpire may be nil.
func New(clock clockwork.Clock, endTime time.Time, onExpire func()) *Timer {
	t := &Timer{
		clock:    clock,
		onExpire: onExpire,
		deadline: endTime,
		stopCh:   make(chan struct{}),
	}

	if t.Remaining() <= 0 {
		// Already past: no ticking needed, but the expiry notification
		// still fires (once, deferred).
		t.expire()
		return t
	}

	go t.run()
	return t
}

// run ticks once per second until the deadline passes or Stop is called.
func (t *Timer) run() {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.Chan():
			if t.Remaining() <= 0 {
				t.expire()
				return
			}
		}
	}
}

// Remaining returns the whole seconds left until the deadline, floored at 0.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	deadline := t.deadline
	t.mu.Unlock()

	d := deadline.Sub(t.clock.Now())
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// String formats the remaining time as H:MM:SS.
func (t *Timer) String() string {
	return FormatSeconds(t.Remaining())
}

// Resync re-anchors the deadline against an authoritative clock reading:
// target and serverNow are both in server time, and the local deadline is
// rebuilt from their difference. A resync that moves the deadline into the
// past expires the timer on its next tick, not immediately.
func (t *Timer) Resync(target, serverNow time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadline = t.clock.Now().Add(target.Sub(serverNow))
}

// Stop cancels the tick goroutine and suppresses a not-yet-fired callback.
// Safe to call more than once, and after expiry.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stopCh)
}

// expire fires the callback at most once, on its own goroutine.
func (t *Timer) expire() {
	t.mu.Lock()
	if t.fired || t.stopped {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.onExpire
	t.mu.Unlock()

	if fn != nil {
		go fn()
	}
}

// FormatSeconds renders a second count as H:MM:SS, clamping negatives to 0.
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
