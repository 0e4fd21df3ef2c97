package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/csolympiad/portal/pkg/model"
)

// Client communicates with the competition backend REST API.
//
// The zero-credential client can only call Login; every other route requires
// a bearer token, attached by WithToken. The token is carried explicitly on
// the client rather than read from ambient state so tests can substitute
// fakes and so two sessions never share a credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	token      string
}

// New creates a backend client with connection pooling and a request timeout.
func New(baseURL string, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		logger: logger.With("component", "backend"),
	}
}

// WithToken returns a copy of the client that authenticates with the given
// bearer token. The receiver is not modified.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Login authenticates a team and returns its bearer token.
func (c *Client) Login(ctx context.Context, name, password string) (*model.Token, error) {
	req := model.LoginRequest{Name: name, Password: password, IsTeam: true}

	var tok model.Token
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &tok); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access token in response")
	}
	return &tok, nil
}

// Now returns the backend's authoritative clock reading. All session timing
// is computed against this instant, never the local wall clock.
func (c *Client) Now(ctx context.Context) (time.Time, error) {
	var st model.ServerTime
	if err := c.doJSON(ctx, http.MethodGet, "/api/now", nil, &st); err != nil {
		return time.Time{}, fmt.Errorf("server time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, st.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("server time: parse %q: %w", st.Now, err)
	}
	return t, nil
}

// MyTeam returns the caller's team record, including its scheduled session.
func (c *Client) MyTeam(ctx context.Context) (*model.Team, error) {
	var team model.Team
	if err := c.doJSON(ctx, http.MethodGet, "/api/team", nil, &team); err != nil {
		return nil, fmt.Errorf("fetch team: %w", err)
	}
	return &team, nil
}

// Questions returns the participant question list plus global documentation.
func (c *Client) Questions(ctx context.Context) (*model.QuestionsPublic, error) {
	var qp model.QuestionsPublic
	if err := c.doJSON(ctx, http.MethodGet, "/api/questions", nil, &qp); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	return &qp, nil
}

// Submit sends code for grading and returns the grader's console output.
func (c *Client) Submit(ctx context.Context, questionNum int, code string) (*model.SubmissionResult, error) {
	req := model.SubmissionRequest{FileContents: code, QuestionNum: questionNum}

	var res model.SubmissionResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/submissions/submit", req, &res); err != nil {
		return nil, fmt.Errorf("submit question %d: %w", questionNum, err)
	}
	return &res, nil
}

// --- Team roster ---

// Members lists the caller's team roster.
func (c *Client) Members(ctx context.Context) ([]model.TeamMember, error) {
	var members []model.TeamMember
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/members", nil, &members); err != nil {
		return nil, fmt.Errorf("fetch members: %w", err)
	}
	return members, nil
}

// AddMember adds a roster entry to the caller's team.
func (c *Client) AddMember(ctx context.Context, firstName, lastName string) (*model.TeamMember, error) {
	req := map[string]string{"first_name": firstName, "last_name": lastName}

	var member model.TeamMember
	if err := c.doJSON(ctx, http.MethodPost, "/api/team/members", req, &member); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &member, nil
}

// DeleteMember removes a roster entry from the caller's team.
func (c *Client) DeleteMember(ctx context.Context, memberID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/team/members/%d", memberID), nil, nil); err != nil {
		return fmt.Errorf("delete member %d: %w", memberID, err)
	}
	return nil
}

// --- Supervisor: teams ---

// Teams lists all registered teams.
func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/all", nil, &teams); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return teams, nil
}

// CreateTeam registers a new team.
func (c *Client) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	var created model.Team
	if err := c.doJSON(ctx, http.MethodPost, "/api/team", team, &created); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return &created, nil
}

// UpdateTeam updates a team's name, password, or session assignment.
func (c *Client) UpdateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	var updated model.Team
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/team/id/%d", team.ID), team, &updated); err != nil {
		return nil, fmt.Errorf("update team %d: %w", team.ID, err)
	}
	return &updated, nil
}

// DeleteTeam removes a team.
func (c *Client) DeleteTeam(ctx context.Context, teamID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/team/id/%d", teamID), nil, nil); err != nil {
		return fmt.Errorf("delete team %d: %w", teamID, err)
	}
	return nil
}

// Scores returns the per-team score table.
func (c *Client) Scores(ctx context.Context) ([]model.TeamScore, error) {
	var scores []model.TeamScore
	if err := c.doJSON(ctx, http.MethodGet, "/api/scores", nil, &scores); err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	return scores, nil
}

// --- Supervisor: sessions ---

// Sessions lists all scheduled sessions with their assigned teams.
func (c *Client) Sessions(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions/", nil, &sessions); err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	return sessions, nil
}

// CreateSession schedules a new session.
func (c *Client) CreateSession(ctx context.Context, sess *model.Session) (*model.Session, error) {
	var created model.Session
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions/", sess, &created); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &created, nil
}

// UpdateSession updates a session's window or team assignments.
func (c *Client) UpdateSession(ctx context.Context, sess *model.Session) (*model.Session, error) {
	var updated model.Session
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%d", sess.ID), sess, &updated); err != nil {
		return nil, fmt.Errorf("update session %d: %w", sess.ID, err)
	}
	return &updated, nil
}

// DeleteSession removes a session, leaving its teams intact.
func (c *Client) DeleteSession(ctx context.Context, sessionID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sessions/%d", sessionID), nil, nil); err != nil {
		return fmt.Errorf("delete session %d: %w", sessionID, err)
	}
	return nil
}

// --- Supervisor: problems ---

// ProblemNums lists the numbers of all authored problems.
func (c *Client) ProblemNums(ctx context.Context) ([]int, error) {
	var nums []int
	if err := c.doJSON(ctx, http.MethodGet, "/api/problems/", nil, &nums); err != nil {
		return nil, fmt.Errorf("fetch problem list: %w", err)
	}
	return nums, nil
}

// Problem returns a single problem with its grading cases.
func (c *Client) Problem(ctx context.Context, num int) (*model.Problem, error) {
	var p model.Problem
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/problems/%d", num), nil, &p); err != nil {
		return nil, fmt.Errorf("fetch problem %d: %w", num, err)
	}
	return &p, nil
}

// CreateProblem allocates a new empty problem and returns its number.
func (c *Client) CreateProblem(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/problems/create/", nil, nil); err != nil {
		return fmt.Errorf("create problem: %w", err)
	}
	return nil
}

// UpdateProblem replaces a problem's prompt, starter code, and cases.
func (c *Client) UpdateProblem(ctx context.Context, p *model.Problem) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/problems/%d", p.Num), p, nil); err != nil {
		return fmt.Errorf("update problem %d: %w", p.Num, err)
	}
	return nil
}

// DeleteProblem removes a single problem.
func (c *Client) DeleteProblem(ctx context.Context, num int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/problems/%d", num), nil, nil); err != nil {
		return fmt.Errorf("delete problem %d: %w", num, err)
	}
	return nil
}

// doJSON executes a request and decodes the JSON response into dest (when
// dest is non-nil). Non-2xx statuses are mapped onto the error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if dest == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError builds an APIError from a non-2xx response. The backend
// reports failures as {"message": ...}; anything else falls back to the raw
// body.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	msg := http.StatusText(resp.StatusCode)
	var failure struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &failure); err == nil {
		if failure.Message != "" {
			msg = failure.Message
		} else if failure.Detail != "" {
			msg = failure.Detail
		}
	} else if len(data) > 0 {
		msg = string(data)
	}

	return &model.APIError{
		Code:    codeForStatus(resp.StatusCode),
		Message: msg,
		Status:  resp.StatusCode,
	}
}

func codeForStatus(status int) model.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return model.ErrUnauthorized
	case http.StatusForbidden:
		return model.ErrForbidden
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return model.ErrValidation
	default:
		return model.ErrInternal
	}
}
