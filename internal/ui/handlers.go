package ui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/csolympiad/portal/internal/backend"
	"github.com/csolympiad/portal/internal/gate"
	"github.com/csolympiad/portal/internal/store"
	"github.com/csolympiad/portal/pkg/model"
)

// UI handles the web user interface: the participant exam surface and the
// supervisor pages. All competition data comes from the backend client;
// the local store only holds login sessions and drafts.
type UI struct {
	backend  *backend.Client
	store    store.Store
	sessions *SessionManager
	gate     *gate.Gate
	clock    clockwork.Clock
	logger   *slog.Logger
	secure   bool // Use secure cookies (HTTPS)
}

// Config holds UI configuration.
type Config struct {
	Secure     bool          // Use secure cookies for HTTPS
	SessionTTL time.Duration // Login session lifetime
}

// New creates a new UI handler.
func New(client *backend.Client, st store.Store, g *gate.Gate, clock clockwork.Clock, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		backend:  client,
		store:    st,
		sessions: NewSessionManager(st, cfg.SessionTTL),
		gate:     g,
		clock:    clock,
		logger:   logger.With("component", "ui"),
		secure:   cfg.Secure,
	}
}

// client returns a backend client authenticated as the given session.
func (ui *UI) client(sess *model.UISession) *backend.Client {
	return ui.backend.WithToken(sess.Token)
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// If already logged in, go straight to the portal.
	if sess, _ := ui.sessions.GetSessionFromRequest(r); sess != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Sign In - Competition Portal",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form := loginForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		http.Redirect(w, r, "/login?error="+url.QueryEscape(formError(err)), http.StatusSeeOther)
		return
	}

	tok, err := ui.backend.Login(r.Context(), form.Name, form.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			ui.logger.Warn("login rejected", "team", form.Name)
			http.Redirect(w, r, "/login?error=Invalid+team+name+or+password", http.StatusSeeOther)
			return
		}
		ui.logger.Error("login failed", "team", form.Name, "error", err)
		http.Redirect(w, r, "/login?error=Sign-in+is+unavailable,+try+again", http.StatusSeeOther)
		return
	}

	// Claims drive UI shape only; the backend re-checks the token itself.
	info := ParseToken(tok.AccessToken)
	name := info.Name
	if name == "" {
		name = form.Name
	}

	// A team's scheduled session ties the login to a competition window so
	// it can be revoked when the window closes. Supervisors have no team.
	examSessionID := 0
	if !info.Admin {
		if team, err := ui.backend.WithToken(tok.AccessToken).MyTeam(r.Context()); err == nil && team.SessionID != nil {
			examSessionID = *team.SessionID
		}
	}

	sess, err := ui.sessions.CreateSession(r.Context(), name, info.Admin, examSessionID, tok.AccessToken, info.Expiry)
	if err != nil {
		ui.logger.Error("create session failed", "error", err)
		http.Redirect(w, r, "/login?error=Session+creation+failed", http.StatusSeeOther)
		return
	}

	SetSessionCookie(w, sess, ui.secure)

	ui.logger.Info("team logged in", "team", name, "admin", info.Admin, "session", sess.ID)
	if info.Admin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to login.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, _ := ui.sessions.GetSessionFromRequest(r); sess != nil {
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
		ui.logger.Info("team logged out", "team", sess.TeamName, "session", sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleHome is the gate page. Before the session starts it shows the
// countdown and the roster editor; once the window opens it forwards to
// the questions; after the window it forwards to the closing page.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess.Admin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	st, team := ui.gateStatus(w, r, sess)
	if st == nil {
		return
	}

	switch st.State {
	case model.GateActive:
		http.Redirect(w, r, "/questions", http.StatusSeeOther)
		return
	case model.GateEnded:
		ui.endSession(w, r, sess)
		return
	}

	// Counting down: keep the auto-close timer armed for this window.
	ui.armWindow(sess, st)

	members, err := ui.client(sess).Members(r.Context())
	if err != nil {
		ui.logger.Warn("roster fetch failed", "team", sess.TeamName, "error", err)
	}

	data := map[string]any{
		"Title":     "Get Ready - Competition Portal",
		"Session":   sess,
		"Team":      team,
		"Exam":      st.Session,
		"Remaining": st.Remaining,
		"Members":   members,
		"Error":     r.URL.Query().Get("error"),
	}
	ui.render(w, "home", data)
}

// HandleMemberAdd adds a roster entry before the session starts.
func (ui *UI) HandleMemberAdd(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form := memberForm{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
	}
	if err := validate.Struct(form); err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(formError(err)), http.StatusSeeOther)
		return
	}

	if _, err := ui.client(sess).AddMember(r.Context(), form.FirstName, form.LastName); err != nil {
		ui.logger.Error("add member failed", "team", sess.TeamName, "error", err)
		http.Redirect(w, r, "/?error=Could+not+add+member", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleMemberDelete removes a roster entry.
func (ui *UI) HandleMemberDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	memberID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := ui.client(sess).DeleteMember(r.Context(), memberID); err != nil {
		ui.logger.Error("delete member failed", "team", sess.TeamName, "member_id", memberID, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleQuestions renders the exam surface: question tabs, the editor with
// the current draft, and the last grader output.
func (ui *UI) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess.Admin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	st, _ := ui.gateStatus(w, r, sess)
	if st == nil {
		return
	}
	if !st.State.AllowsExam() {
		ui.redirectForState(w, r, sess, st.State)
		return
	}
	ui.armWindow(sess, st)

	qp, err := ui.client(sess).Questions(r.Context())
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load questions", err)
		return
	}

	selected := 1
	if q := r.URL.Query().Get("q"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n >= 1 && n <= len(qp.Questions) {
			selected = n
		}
	}

	drafts, err := ui.store.ListDrafts(r.Context(), sess.ID)
	if err != nil {
		ui.logger.Error("draft list failed", "session", sess.ID, "error", err)
	}
	draftByNum := make(map[int]*model.Draft, len(drafts))
	for _, d := range drafts {
		draftByNum[d.QuestionNum] = d
	}

	var current model.Question
	for _, q := range qp.Questions {
		if q.Num == selected {
			current = q
			break
		}
	}

	code := current.StarterCode
	output := ""
	if d, ok := draftByNum[selected]; ok {
		if d.Code != "" {
			code = d.Code
		}
		output = d.LastOutput
	}

	data := map[string]any{
		"Title":      "Questions - Competition Portal",
		"Session":    sess,
		"Exam":       st.Session,
		"Remaining":  st.Remaining,
		"Questions":  qp.Questions,
		"GlobalDocs": qp.GlobalDocs,
		"Selected":   selected,
		"Current":    current,
		"Code":       code,
		"Output":     output,
		"Error":      r.URL.Query().Get("error"),
	}
	ui.render(w, "questions", data)
}

// HandleDraftSave stores in-progress code for one question without grading.
func (ui *UI) HandleDraftSave(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	num, ok := ui.questionNum(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/questions?q="+strconv.Itoa(num), http.StatusSeeOther)
		return
	}

	draft := &model.Draft{
		SessionID:   sess.ID,
		QuestionNum: num,
		Code:        r.FormValue("code"),
	}
	if prev, _ := ui.store.GetDraft(r.Context(), sess.ID, num); prev != nil {
		draft.LastOutput = prev.LastOutput
	}
	if err := ui.store.SaveDraft(r.Context(), draft); err != nil {
		ui.logger.Error("draft save failed", "session", sess.ID, "question_num", num, "error", err)
	}

	http.Redirect(w, r, "/questions?q="+strconv.Itoa(num), http.StatusSeeOther)
}

// HandleSubmit grades one question. The draft and its grader output are
// saved even when grading fails, so a reload never loses work.
func (ui *UI) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	num, ok := ui.questionNum(w, r)
	if !ok {
		return
	}

	st, _ := ui.gateStatus(w, r, sess)
	if st == nil {
		return
	}
	if !st.State.AllowsExam() {
		ui.redirectForState(w, r, sess, st.State)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/questions?q="+strconv.Itoa(num), http.StatusSeeOther)
		return
	}

	form := submitForm{Code: r.FormValue("code")}
	if err := validate.Struct(form); err != nil {
		http.Redirect(w, r, "/questions?q="+strconv.Itoa(num)+"&error="+url.QueryEscape("Nothing to submit"), http.StatusSeeOther)
		return
	}

	draft := &model.Draft{SessionID: sess.ID, QuestionNum: num, Code: form.Code}

	result, err := ui.client(sess).Submit(r.Context(), num, form.Code)
	switch {
	case err == nil:
		draft.LastOutput = result.ConsoleLog
	case errors.Is(err, model.ErrWindowClosed):
		ui.endSession(w, r, sess)
		return
	default:
		ui.logger.Error("submission failed", "team", sess.TeamName, "question_num", num, "error", err)
		draft.LastOutput = "Submission failed, please try again."
	}

	if err := ui.store.SaveDraft(r.Context(), draft); err != nil {
		ui.logger.Error("draft save failed", "session", sess.ID, "question_num", num, "error", err)
	}

	http.Redirect(w, r, "/questions?q="+strconv.Itoa(num), http.StatusSeeOther)
}

// HandleThankYou renders the post-session page.
func (ui *UI) HandleThankYou(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	data := map[string]any{
		"Title":   "Session Over - Competition Portal",
		"Session": sess,
	}
	ui.render(w, "thankyou", data)
}

// --- Helper Methods ---

// gateStatus evaluates the gate for the request's team. On a 401 from the
// backend the login is stale: the session is destroyed and the browser sent
// back to the login page. A nil return means the response is already written.
func (ui *UI) gateStatus(w http.ResponseWriter, r *http.Request, sess *model.UISession) (*gate.Status, *model.Team) {
	team, err := ui.client(sess).MyTeam(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
			ClearSessionCookie(w)
			http.Redirect(w, r, "/login?error=Your+session+has+expired,+sign+in+again", http.StatusSeeOther)
			return nil, nil
		}
		ui.backendError(w, r, sess, "Failed to load team", err)
		return nil, nil
	}

	st, err := ui.gate.Enter(r.Context(), team)
	if err != nil {
		// Fail closed: without the backend clock the window cannot be
		// trusted, so the login is dropped rather than guessed at.
		ui.logger.Error("gate check failed", "team", sess.TeamName, "error", err)
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
		ClearSessionCookie(w)
		http.Redirect(w, r, "/login?error=Could+not+confirm+the+competition+clock,+sign+in+again", http.StatusSeeOther)
		return nil, nil
	}

	return &st, team
}

// endSession destroys the login and lands on the closing page. The window
// is over, so keeping the bearer token alive would let a stale tab keep
// calling the backend until the session TTL.
func (ui *UI) endSession(w http.ResponseWriter, r *http.Request, sess *model.UISession) {
	if sess != nil {
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
}

// armWindow keeps the auto-revoke timer registered for the team's window.
func (ui *UI) armWindow(sess *model.UISession, st *gate.Status) {
	if st.Session == nil || sess.ExamSessionID == 0 {
		return
	}
	examSessionID := sess.ExamSessionID
	ui.gate.Arm(examSessionID, st.Session.EndTime, func() {
		n, err := ui.store.DeleteSessionsByExamSession(context.Background(), examSessionID)
		if err != nil {
			ui.logger.Error("session revocation failed", "exam_session_id", examSessionID, "error", err)
			return
		}
		ui.logger.Info("logins revoked for ended session", "exam_session_id", examSessionID, "count", n)
	})
}

func (ui *UI) redirectForState(w http.ResponseWriter, r *http.Request, sess *model.UISession, state model.GateState) {
	switch state {
	case model.GateCountdown:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		ui.endSession(w, r, sess)
	}
}

func (ui *UI) questionNum(w http.ResponseWriter, r *http.Request) (int, bool) {
	num, err := strconv.Atoi(chi.URLParam(r, "num"))
	if err != nil || num < 1 {
		http.Redirect(w, r, "/questions", http.StatusSeeOther)
		return 0, false
	}
	return num, true
}

// backendError renders the error page for a failed backend call, first
// translating the window-closed rejection into the closing page.
func (ui *UI) backendError(w http.ResponseWriter, r *http.Request, sess *model.UISession, message string, err error) {
	if errors.Is(err, model.ErrWindowClosed) {
		ui.endSession(w, r, sess)
		return
	}
	ui.logger.Error(message, "team", sess.TeamName, "error", err)
	ui.renderError(w, message, err)
}

func (ui *UI) render(w http.ResponseWriter, template string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	data := map[string]any{
		"Title":   "Error - Competition Portal",
		"Message": message,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	var buf bytes.Buffer
	if rerr := renderTemplate(&buf, "error", data); rerr != nil {
		ui.logger.Error("template render failed", "template", "error", "error", rerr)
		return
	}
	buf.WriteTo(w)
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	data := map[string]any{
		"Title":   "Not Found - Competition Portal",
		"Message": message,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)

	var buf bytes.Buffer
	if err := renderTemplate(&buf, "error", data); err != nil {
		ui.logger.Error("template render failed", "template", "error", "error", err)
		return
	}
	buf.WriteTo(w)
}
