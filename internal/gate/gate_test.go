package gate

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/csolympiad/portal/internal/logging"
	"github.com/csolympiad/portal/pkg/model"
)

type fakeTimeSource struct {
	now time.Time
	err error
}

func (f *fakeTimeSource) Now(ctx context.Context) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.now, nil
}

func discardLogger() *slog.Logger {
	return logging.Discard()
}

func TestResolve(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want model.GateState
	}{
		{"before start", start.Add(-time.Minute), model.GateCountdown},
		{"at start", start, model.GateActive},
		{"mid session", start.Add(time.Hour), model.GateActive},
		{"at end", end, model.GateEnded},
		{"after end", end.Add(time.Minute), model.GateEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.now, start, end); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func scheduledTeam(start, end time.Time) *model.Team {
	sid := 7
	return &model.Team{
		ID:        3,
		Name:      "B1",
		SessionID: &sid,
		Session: &model.Session{
			ID:        7,
			Name:      "Morning Block",
			StartTime: start,
			EndTime:   end,
		},
	}
}

func TestEnterCountdown(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 9, 55, 0, 0, time.UTC)
	start := serverNow.Add(5 * time.Minute)
	g := New(&fakeTimeSource{now: serverNow}, clockwork.NewFakeClockAt(serverNow), discardLogger(), 30*time.Second)

	st, err := g.Enter(context.Background(), scheduledTeam(start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if st.State != model.GateCountdown {
		t.Errorf("State = %v, want GateCountdown", st.State)
	}
	if st.Remaining != 300 {
		t.Errorf("Remaining = %d, want 300", st.Remaining)
	}
}

func TestEnterActive(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	start := serverNow.Add(-30 * time.Minute)
	end := serverNow.Add(90 * time.Minute)
	g := New(&fakeTimeSource{now: serverNow}, clockwork.NewFakeClockAt(serverNow), discardLogger(), 30*time.Second)

	st, err := g.Enter(context.Background(), scheduledTeam(start, end))
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if st.State != model.GateActive {
		t.Errorf("State = %v, want GateActive", st.State)
	}
	if st.Remaining != 90*60 {
		t.Errorf("Remaining = %d, want %d", st.Remaining, 90*60)
	}
}

func TestEnterEnded(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	g := New(&fakeTimeSource{now: serverNow}, clockwork.NewFakeClockAt(serverNow), discardLogger(), 30*time.Second)

	st, err := g.Enter(context.Background(), scheduledTeam(serverNow.Add(-3*time.Hour), serverNow.Add(-time.Hour)))
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if st.State != model.GateEnded {
		t.Errorf("State = %v, want GateEnded", st.State)
	}
	if st.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", st.Remaining)
	}
}

func TestEnterUnscheduledTeamIsEnded(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	g := New(&fakeTimeSource{now: serverNow}, clockwork.NewFakeClockAt(serverNow), discardLogger(), 30*time.Second)

	st, err := g.Enter(context.Background(), &model.Team{ID: 3, Name: "B1"})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if st.State != model.GateEnded {
		t.Errorf("State for unscheduled team = %v, want GateEnded", st.State)
	}
}

func TestEnterFailsClosed(t *testing.T) {
	g := New(&fakeTimeSource{err: errors.New("backend down")}, clockwork.NewFakeClock(), discardLogger(), 30*time.Second)

	st, err := g.Enter(context.Background(), scheduledTeam(time.Now(), time.Now().Add(time.Hour)))
	if err == nil {
		t.Fatal("Enter() expected error when backend time is unreadable")
	}
	if st.State != model.GateEnded {
		t.Errorf("State on backend failure = %v, want GateEnded", st.State)
	}
}

func TestArmFiresOnEnded(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(serverNow)
	g := New(&fakeTimeSource{now: serverNow}, clock, discardLogger(), 30*time.Second)
	defer g.Close()

	fired := make(chan struct{}, 1)
	g.Arm(7, serverNow.Add(3*time.Second), func() { fired <- struct{}{} })

	for i := 0; i < 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("onEnded did not fire after session end")
	}
}

func TestArmReplacesPreviousTimer(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(serverNow)
	g := New(&fakeTimeSource{now: serverNow}, clock, discardLogger(), 30*time.Second)
	defer g.Close()

	firstFired := make(chan struct{}, 1)
	g.Arm(7, serverNow.Add(2*time.Second), func() { firstFired <- struct{}{} })

	// Session rescheduled: the old timer must not fire.
	secondFired := make(chan struct{}, 1)
	g.Arm(7, serverNow.Add(time.Hour), func() { secondFired <- struct{}{} })

	clock.BlockUntil(1)
	clock.Advance(5 * time.Second)

	select {
	case <-firstFired:
		t.Fatal("replaced timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestArmSameDeadlineIsNoOp(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(serverNow)
	g := New(&fakeTimeSource{now: serverNow}, clock, discardLogger(), 30*time.Second)
	defer g.Close()

	end := serverNow.Add(3 * time.Second)
	fired := make(chan struct{}, 2)
	g.Arm(7, end, func() { fired <- struct{}{} })
	g.Arm(7, end, func() { fired <- struct{}{} })

	for i := 0; i < 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("onEnded did not fire")
	}
	select {
	case <-fired:
		t.Fatal("re-arming with the same deadline created a second timer")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDisarm(t *testing.T) {
	serverNow := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(serverNow)
	g := New(&fakeTimeSource{now: serverNow}, clock, discardLogger(), 30*time.Second)
	defer g.Close()

	fired := make(chan struct{}, 1)
	g.Arm(7, serverNow.Add(2*time.Second), func() { fired <- struct{}{} })
	g.Disarm(7)

	clock.Advance(time.Minute)
	select {
	case <-fired:
		t.Fatal("disarmed timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}
