package ui

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/csolympiad/portal/pkg/model"
)

// Supervisor pages. Everything here proxies the backend's admin API; the
// portal itself owns no competition data.

// HandleAdminHome redirects to the team manager.
func (ui *UI) HandleAdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// HandleAdminTeams renders the team manager with the live score table.
func (ui *UI) HandleAdminTeams(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	client := ui.client(sess)

	teams, err := client.Teams(r.Context())
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load teams", err)
		return
	}
	sessions, err := client.Sessions(r.Context())
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load sessions", err)
		return
	}
	scores, err := client.Scores(r.Context())
	if err != nil {
		ui.logger.Warn("score fetch failed", "error", err)
	}

	sessionByID := make(map[int]model.Session, len(sessions))
	for _, s := range sessions {
		sessionByID[s.ID] = s
	}

	data := map[string]any{
		"Title":       "Teams - Competition Portal",
		"Session":     sess,
		"Teams":       teams,
		"Sessions":    sessions,
		"SessionByID": sessionByID,
		"Scores":      scores,
		"Error":       r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/teams", data)
}

// HandleAdminTeamCreate registers a new team.
func (ui *UI) HandleAdminTeamCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/teams?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form := teamForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		http.Redirect(w, r, "/admin/teams?error="+url.QueryEscape(formError(err)), http.StatusSeeOther)
		return
	}

	team := &model.Team{Name: form.Name, Password: form.Password}
	if sid := r.FormValue("session_id"); sid != "" && sid != "0" {
		if id, err := strconv.Atoi(sid); err == nil {
			team.SessionID = &id
		}
	}

	if _, err := ui.client(sess).CreateTeam(r.Context(), team); err != nil {
		ui.logger.Error("team create failed", "name", form.Name, "error", err)
		http.Redirect(w, r, "/admin/teams?error=Could+not+create+team", http.StatusSeeOther)
		return
	}

	ui.logger.Info("team created", "name", form.Name)
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// HandleAdminTeamUpdate reschedules or renames a team.
func (ui *UI) HandleAdminTeamUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	teamID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		ui.renderNotFound(w, "Team not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/teams?error=Invalid+request", http.StatusSeeOther)
		return
	}

	team := &model.Team{
		ID:   teamID,
		Name: strings.TrimSpace(r.FormValue("name")),
	}
	if pw := r.FormValue("password"); pw != "" {
		team.Password = pw
	}
	if sid := r.FormValue("session_id"); sid != "" && sid != "0" {
		if id, err := strconv.Atoi(sid); err == nil {
			team.SessionID = &id
		}
	}

	if _, err := ui.client(sess).UpdateTeam(r.Context(), team); err != nil {
		ui.logger.Error("team update failed", "team_id", teamID, "error", err)
		http.Redirect(w, r, "/admin/teams?error=Could+not+update+team", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// HandleAdminTeamDelete removes a team and revokes its portal logins.
func (ui *UI) HandleAdminTeamDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	teamID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		ui.renderNotFound(w, "Team not found")
		return
	}

	// Find the name before deleting so local logins can be revoked too.
	var teamName string
	if teams, err := ui.client(sess).Teams(r.Context()); err == nil {
		for _, t := range teams {
			if t.ID == teamID {
				teamName = t.Name
				break
			}
		}
	}

	if err := ui.client(sess).DeleteTeam(r.Context(), teamID); err != nil {
		ui.logger.Error("team delete failed", "team_id", teamID, "error", err)
		http.Redirect(w, r, "/admin/teams?error=Could+not+delete+team", http.StatusSeeOther)
		return
	}
	if teamName != "" {
		if _, err := ui.store.DeleteSessionsByTeam(r.Context(), teamName); err != nil {
			ui.logger.Error("login revocation failed", "team", teamName, "error", err)
		}
	}

	ui.logger.Info("team deleted", "team_id", teamID, "name", teamName)
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// HandleAdminSessions renders the session scheduler.
func (ui *UI) HandleAdminSessions(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	sessions, err := ui.client(sess).Sessions(r.Context())
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load sessions", err)
		return
	}

	data := map[string]any{
		"Title":    "Sessions - Competition Portal",
		"Session":  sess,
		"Sessions": sessions,
		"Error":    r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/sessions", data)
}

// HandleAdminSessionCreate schedules a new competition session.
func (ui *UI) HandleAdminSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/sessions?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form, err := parseSessionForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/sessions?error="+url.QueryEscape(formError(err)), http.StatusSeeOther)
		return
	}

	created, err := ui.client(sess).CreateSession(r.Context(), &model.Session{
		Name:      form.Name,
		StartTime: form.Start,
		EndTime:   form.End,
	})
	if err != nil {
		ui.logger.Error("session create failed", "name", form.Name, "error", err)
		http.Redirect(w, r, "/admin/sessions?error=Could+not+create+session", http.StatusSeeOther)
		return
	}

	ui.armExamSession(created.ID, created)
	ui.logger.Info("session scheduled", "session_id", created.ID, "name", created.Name)
	http.Redirect(w, r, "/admin/sessions", http.StatusSeeOther)
}

// HandleAdminSessionUpdate reschedules a competition session and re-arms
// its auto-close timer.
func (ui *UI) HandleAdminSessionUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		ui.renderNotFound(w, "Session not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/sessions?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form, err := parseSessionForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/sessions?error="+url.QueryEscape(formError(err)), http.StatusSeeOther)
		return
	}

	updated, err := ui.client(sess).UpdateSession(r.Context(), &model.Session{
		ID:        sessionID,
		Name:      form.Name,
		StartTime: form.Start,
		EndTime:   form.End,
	})
	if err != nil {
		ui.logger.Error("session update failed", "session_id", sessionID, "error", err)
		http.Redirect(w, r, "/admin/sessions?error=Could+not+update+session", http.StatusSeeOther)
		return
	}

	ui.armExamSession(sessionID, updated)
	http.Redirect(w, r, "/admin/sessions", http.StatusSeeOther)
}

// HandleAdminSessionDelete cancels a scheduled session.
func (ui *UI) HandleAdminSessionDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		ui.renderNotFound(w, "Session not found")
		return
	}

	if err := ui.client(sess).DeleteSession(r.Context(), sessionID); err != nil {
		ui.logger.Error("session delete failed", "session_id", sessionID, "error", err)
		http.Redirect(w, r, "/admin/sessions?error=Could+not+delete+session", http.StatusSeeOther)
		return
	}
	ui.gate.Disarm(sessionID)

	ui.logger.Info("session deleted", "session_id", sessionID)
	http.Redirect(w, r, "/admin/sessions", http.StatusSeeOther)
}

// HandleAdminProblems renders the question manager.
func (ui *UI) HandleAdminProblems(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	nums, err := ui.client(sess).ProblemNums(r.Context())
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load questions", err)
		return
	}

	data := map[string]any{
		"Title":    "Questions - Competition Portal",
		"Session":  sess,
		"Problems": nums,
		"Error":    r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/problems", data)
}

// HandleAdminProblemCreate appends a blank question.
func (ui *UI) HandleAdminProblemCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := ui.client(sess).CreateProblem(r.Context()); err != nil {
		ui.logger.Error("problem create failed", "error", err)
		http.Redirect(w, r, "/admin/problems?error=Could+not+create+question", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/problems", http.StatusSeeOther)
}

// HandleAdminProblemEdit renders the authoring form for one question.
func (ui *UI) HandleAdminProblemEdit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	num, err := strconv.Atoi(chi.URLParam(r, "num"))
	if err != nil {
		ui.renderNotFound(w, "Question not found")
		return
	}

	problem, err := ui.client(sess).Problem(r.Context(), num)
	if err != nil {
		ui.backendError(w, r, sess, "Failed to load question", err)
		return
	}

	data := map[string]any{
		"Title":   "Edit Question - Competition Portal",
		"Session": sess,
		"Problem": problem,
		"Error":   r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/problem_edit", data)
}

// HandleAdminProblemUpdate saves a question's authoring fields.
func (ui *UI) HandleAdminProblemUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	num, err := strconv.Atoi(chi.URLParam(r, "num"))
	if err != nil {
		ui.renderNotFound(w, "Question not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/problems?error=Invalid+request", http.StatusSeeOther)
		return
	}

	form := problemForm{
		Prompt:      r.FormValue("prompt"),
		StarterCode: r.FormValue("starter_code"),
		TestCases:   r.FormValue("test_cases"),
		DemoCases:   r.FormValue("demo_cases"),
	}
	if err := validate.Struct(form); err != nil {
		dest := "/admin/problems/" + strconv.Itoa(num) + "?error=" + url.QueryEscape(formError(err))
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	p := &model.Problem{
		Num:         num,
		Prompt:      form.Prompt,
		StarterCode: form.StarterCode,
		TestCases:   form.TestCases,
		DemoCases:   form.DemoCases,
	}
	if err := ui.client(sess).UpdateProblem(r.Context(), p); err != nil {
		ui.logger.Error("problem update failed", "question_num", num, "error", err)
		dest := "/admin/problems/" + strconv.Itoa(num) + "?error=" + url.QueryEscape("Could not save question")
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	ui.logger.Info("question updated", "question_num", num)
	http.Redirect(w, r, "/admin/problems/"+strconv.Itoa(num), http.StatusSeeOther)
}

// HandleAdminProblemDelete removes a question.
func (ui *UI) HandleAdminProblemDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	num, err := strconv.Atoi(chi.URLParam(r, "num"))
	if err != nil {
		ui.renderNotFound(w, "Question not found")
		return
	}

	if err := ui.client(sess).DeleteProblem(r.Context(), num); err != nil {
		ui.logger.Error("problem delete failed", "question_num", num, "error", err)
		http.Redirect(w, r, "/admin/problems?error=Could+not+delete+question", http.StatusSeeOther)
		return
	}

	ui.logger.Info("question deleted", "question_num", num)
	http.Redirect(w, r, "/admin/problems", http.StatusSeeOther)
}

// armExamSession (re)arms the auto-revoke timer after a schedule change.
func (ui *UI) armExamSession(sessionID int, exam *model.Session) {
	if exam == nil {
		return
	}
	ui.gate.Arm(sessionID, exam.EndTime, func() {
		n, err := ui.store.DeleteSessionsByExamSession(context.Background(), sessionID)
		if err != nil {
			ui.logger.Error("session revocation failed", "exam_session_id", sessionID, "error", err)
			return
		}
		ui.logger.Info("logins revoked for ended session", "exam_session_id", sessionID, "count", n)
	})
}
