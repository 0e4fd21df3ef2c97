package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/csolympiad/portal/internal/countdown"
	"github.com/csolympiad/portal/pkg/model"
)

// TimeSource reads authoritative time from the scoring backend.
type TimeSource interface {
	Now(ctx context.Context) (time.Time, error)
}

// Status is the gate's answer for a single request: whether the team may
// see the questions, and how long until that answer changes.
type Status struct {
	State   model.GateState
	Session *model.Session

	// Remaining is the whole seconds until the next transition: until the
	// session starts while counting down, until it ends while active.
	// Zero in terminal states.
	Remaining int

	// Deadline is the next transition instant on the local clock, anchored
	// against the backend's clock at the time of the Enter call.
	Deadline time.Time
}

// Gate decides, from backend time and a team's scheduled session, whether
// the exam surface is open. All decisions use the backend's clock, never
// the local one, so a skewed portal host cannot open a window early or
// hold one open late.
//
// The gate also arms one-shot timers per session so that server-side state
// (open UI sessions, cached drafts) can be torn down the moment a session
// ends, and periodically resyncs those timers against the backend clock.
type Gate struct {
	src    TimeSource
	clock  clockwork.Clock
	logger *slog.Logger

	resyncInterval time.Duration

	mu     sync.Mutex
	offset time.Duration // backend time minus local time, from the last sync
	armed  map[int]*armedTimer
}

type armedTimer struct {
	timer *countdown.Timer
	end   time.Time // session end, in backend time
}

// New creates a Gate reading authoritative time from src.
func New(src TimeSource, clock clockwork.Clock, logger *slog.Logger, resyncInterval time.Duration) *Gate {
	return &Gate{
		src:            src,
		clock:          clock,
		logger:         logger,
		resyncInterval: resyncInterval,
		armed:          make(map[int]*armedTimer),
	}
}

// Resolve maps an instant to a gate state for a session running from start
// to end. It is a pure function of its arguments.
func Resolve(now, start, end time.Time) model.GateState {
	switch {
	case now.Before(start):
		return model.GateCountdown
	case now.Before(end):
		return model.GateActive
	default:
		return model.GateEnded
	}
}

// Enter evaluates the gate for a team. The decision fails closed: if the
// backend clock cannot be read the caller gets GateEnded alongside the
// error, and a team with no scheduled session is likewise ended.
func (g *Gate) Enter(ctx context.Context, team *model.Team) (Status, error) {
	serverNow, err := g.syncNow(ctx)
	if err != nil {
		return Status{State: model.GateEnded}, fmt.Errorf("reading backend time: %w", err)
	}

	if team == nil || team.Session == nil {
		return Status{State: model.GateEnded}, nil
	}
	sess := team.Session

	st := Status{
		State:   Resolve(serverNow, sess.StartTime, sess.EndTime),
		Session: sess,
	}

	var target time.Time
	switch st.State {
	case model.GateCountdown:
		target = sess.StartTime
	case model.GateActive:
		target = sess.EndTime
	default:
		return st, nil
	}

	until := target.Sub(serverNow)
	if until < 0 {
		until = 0
	}
	st.Remaining = int(until / time.Second)
	st.Deadline = g.clock.Now().Add(until)
	return st, nil
}

// Arm schedules onEnded to run when the session's end time passes,
// converting the backend-time deadline through the last known clock offset.
// Re-arming with the same deadline is a no-op; a changed deadline replaces
// the timer, stopping the old one and suppressing its callback.
func (g *Gate) Arm(sessionID int, end time.Time, onEnded func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.armed[sessionID]; ok {
		if prev.end.Equal(end) {
			return
		}
		prev.timer.Stop()
	}

	localDeadline := end.Add(-g.offset)
	g.armed[sessionID] = &armedTimer{
		end: end,
		timer: countdown.New(g.clock, localDeadline, func() {
			g.mu.Lock()
			delete(g.armed, sessionID)
			g.mu.Unlock()
			g.logger.Info("session window closed", "session_id", sessionID)
			onEnded()
		}),
	}
}

// Disarm stops a session's armed timer without firing it.
func (g *Gate) Disarm(sessionID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.armed[sessionID]; ok {
		prev.timer.Stop()
		delete(g.armed, sessionID)
	}
}

// Run resyncs the armed timers against the backend clock on a fixed
// interval until ctx is canceled. Local ticking drifts; the periodic
// re-anchor bounds that drift to one interval.
func (g *Gate) Run(ctx context.Context) {
	ticker := g.clock.NewTicker(g.resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			serverNow, err := g.syncNow(ctx)
			if err != nil {
				g.logger.Warn("clock resync failed", "error", err)
				continue
			}
			g.mu.Lock()
			for _, a := range g.armed {
				a.timer.Resync(a.end, serverNow)
			}
			g.mu.Unlock()
		}
	}
}

// Close stops every armed timer without firing it.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, a := range g.armed {
		a.timer.Stop()
		delete(g.armed, id)
	}
}

// syncNow reads the backend clock and records the observed offset.
func (g *Gate) syncNow(ctx context.Context) (time.Time, error) {
	serverNow, err := g.src.Now(ctx)
	if err != nil {
		return time.Time{}, err
	}
	g.mu.Lock()
	g.offset = serverNow.Sub(g.clock.Now())
	g.mu.Unlock()
	return serverNow, nil
}
