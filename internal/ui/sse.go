package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/csolympiad/portal/internal/countdown"
	"github.com/csolympiad/portal/pkg/model"
)

// countdownTick is one frame of the countdown stream.
type countdownTick struct {
	State     string `json:"state"`
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
}

// HandleCountdownStream streams the countdown via Server-Sent Events.
// GET /countdown/stream
//
// The deadline is anchored against the backend clock once per connection;
// every tick afterwards is derived from that deadline, so a stalled stream
// catches up instead of drifting. When the deadline passes the stream sends
// a final transition event and closes, and the page reloads to pick up the
// new gate state.
func (ui *UI) HandleCountdownStream(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	st, _ := ui.gateStatus(w, r, sess)
	if st == nil {
		return
	}
	if st.State.IsTerminal() {
		ui.endSession(w, r, sess)
		return
	}

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	timer := countdown.New(ui.clock, st.Deadline, nil)
	defer timer.Stop()

	send := func(event string) error {
		remaining := timer.Remaining()
		return sendSSEEvent(w, flusher, event, countdownTick{
			State:     string(st.State),
			Remaining: remaining,
			Display:   countdown.FormatSeconds(remaining),
		})
	}

	if err := send("tick"); err != nil {
		return
	}

	ticker := ui.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.Chan():
			if timer.Remaining() <= 0 {
				event := "started"
				if st.State == model.GateActive {
					event = "ended"
				}
				_ = send(event)
				return
			}
			if err := send("tick"); err != nil {
				ui.logger.Debug("sse client disconnected", "team", sess.TeamName)
				return
			}
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData)
	if err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
