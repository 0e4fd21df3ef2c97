package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"

	"github.com/csolympiad/portal/internal/backend"
	"github.com/csolympiad/portal/internal/gate"
	"github.com/csolympiad/portal/internal/logging"
	"github.com/csolympiad/portal/internal/store"
	"github.com/csolympiad/portal/pkg/model"
)

// fakeBackend is a stand-in scoring backend. The session window is set per
// test relative to the backend's own clock.
type fakeBackend struct {
	start    time.Time
	end      time.Time
	nowFails bool
}

func (f *fakeBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		var claims jwt.MapClaims
		switch {
		case req.Name == "B1" && req.Password == "pw":
			claims = jwt.MapClaims{"sub": "B1", "is_admin": false, "exp": time.Now().Add(2 * time.Hour).Unix()}
		case req.Name == "root" && req.Password == "pw":
			claims = jwt.MapClaims{"sub": "root", "is_admin": true, "exp": time.Now().Add(2 * time.Hour).Unix()}
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Errorf("sign token: %v", err)
		}
		_ = json.NewEncoder(w).Encode(model.Token{AccessToken: tok, TokenType: "bearer"})
	})

	mux.HandleFunc("GET /api/now", func(w http.ResponseWriter, r *http.Request) {
		if f.nowFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(model.ServerTime{Now: time.Now().UTC().Format(time.RFC3339)})
	})

	mux.HandleFunc("GET /api/team", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
			return
		}
		sid := 7
		_ = json.NewEncoder(w).Encode(model.Team{
			ID: 3, Name: "B1", SessionID: &sid,
			Session: &model.Session{ID: 7, Name: "Morning", StartTime: f.start, EndTime: f.end},
		})
	})

	mux.HandleFunc("GET /api/questions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.QuestionsPublic{
			Questions: []model.Question{
				{Num: 1, Writeup: "Sum two numbers.", StarterCode: "def solve():\n    pass\n"},
				{Num: 2, Writeup: "Reverse a string."},
			},
			GlobalDocs: []model.Document{{Title: "Rules", Content: "No internet."}},
		})
	})

	mux.HandleFunc("POST /api/submissions/submit", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.SubmissionResult{ConsoleLog: "all tests passed"})
	})

	mux.HandleFunc("GET /api/team/members", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.TeamMember{{ID: 1, FirstName: "Ada", LastName: "Lovelace"}})
	})

	return mux
}

type testEnv struct {
	router *chi.Mux
	store  *store.SQLiteStore
}

func newTestEnv(t *testing.T, fb *fakeBackend) *testEnv {
	t.Helper()
	return newTestEnvWithClock(t, fb, clockwork.NewRealClock())
}

func newTestEnvWithClock(t *testing.T, fb *fakeBackend, clock clockwork.Clock) *testEnv {
	t.Helper()
	logger := logging.Discard()

	srv := httptest.NewServer(fb.handler(t))
	t.Cleanup(srv.Close)

	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	client := backend.New(srv.URL, logger)
	g := gate.New(client, clock, logger, 30*time.Second)
	t.Cleanup(g.Close)

	ui := New(client, st, g, clock, logger, Config{SessionTTL: time.Hour})

	r := chi.NewRouter()
	ui.RegisterRoutes(r)

	return &testEnv{router: r, store: st}
}

// login performs the login form POST and returns the session cookie.
func (e *testEnv) login(t *testing.T, name, password string) *http.Cookie {
	t.Helper()
	body := url.Values{"name": {name}, "password": {password}}
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func (e *testEnv) get(cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func (e *testEnv) postForm(cookie *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func countdownBackend() *fakeBackend {
	return &fakeBackend{start: time.Now().Add(time.Hour), end: time.Now().Add(3 * time.Hour)}
}

func activeBackend() *fakeBackend {
	return &fakeBackend{start: time.Now().Add(-time.Hour), end: time.Now().Add(time.Hour)}
}

func endedBackend() *fakeBackend {
	return &fakeBackend{start: time.Now().Add(-3 * time.Hour), end: time.Now().Add(-time.Hour)}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, countdownBackend())

	cookie := env.login(t, "B1", "pw")

	sess, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess == nil {
		t.Fatal("no stored session for cookie")
	}
	if sess.TeamName != "B1" || sess.Admin {
		t.Errorf("session = %+v, want team B1, not admin", sess)
	}
	if sess.Token == "" {
		t.Error("backend token not stored on session")
	}
	if sess.ExamSessionID != 7 {
		t.Errorf("ExamSessionID = %d, want 7", sess.ExamSessionID)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t, countdownBackend())

	body := url.Values{"name": {"B1"}, "password": {"wrong"}}
	w := env.postForm(nil, "/login", body)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?error=") {
		t.Errorf("redirect = %q, want /login with error", loc)
	}
}

func TestAuthMiddlewareRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t, countdownBackend())

	for _, path := range []string{"/", "/questions", "/countdown/stream"} {
		w := env.get(nil, path)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Errorf("GET %s = %d -> %q, want 303 -> /login", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestHomeShowsCountdown(t *testing.T) {
	env := newTestEnv(t, countdownBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Morning") {
		t.Error("session name missing from countdown page")
	}
	if !strings.Contains(body, `id="countdown"`) {
		t.Error("countdown element missing")
	}
	if !strings.Contains(body, "Ada") {
		t.Error("roster missing from countdown page")
	}
}

func TestHomeRedirectsWhenActive(t *testing.T) {
	env := newTestEnv(t, activeBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/questions" {
		t.Errorf("GET / = %d -> %q, want 303 -> /questions", w.Code, w.Header().Get("Location"))
	}
}

func TestQuestionsBlockedDuringCountdown(t *testing.T) {
	env := newTestEnv(t, countdownBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/questions")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Errorf("GET /questions = %d -> %q, want 303 -> /", w.Code, w.Header().Get("Location"))
	}
}

func TestQuestionsBlockedAfterEnd(t *testing.T) {
	env := newTestEnv(t, endedBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/questions")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/thankyou" {
		t.Errorf("GET /questions = %d -> %q, want 303 -> /thankyou", w.Code, w.Header().Get("Location"))
	}
}

func TestQuestionsRendersStarterAndDraft(t *testing.T) {
	env := newTestEnv(t, activeBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/questions?q=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "def solve():") {
		t.Error("starter code missing before any draft exists")
	}

	// Save a draft and confirm it replaces the starter code.
	w = env.postForm(cookie, "/questions/1/save", url.Values{"code": {"print('draft')"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save status = %d, want 303", w.Code)
	}

	w = env.get(cookie, "/questions?q=1")
	body := w.Body.String()
	if !strings.Contains(body, "print(&#39;draft&#39;)") && !strings.Contains(body, "print('draft')") {
		t.Error("saved draft missing from editor")
	}
}

func TestSubmitStoresGraderOutput(t *testing.T) {
	env := newTestEnv(t, activeBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.postForm(cookie, "/questions/1/submit", url.Values{"code": {"print(3)"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d, want 303", w.Code)
	}

	sess, _ := env.store.GetSession(context.Background(), cookie.Value)
	draft, err := env.store.GetDraft(context.Background(), sess.ID, 1)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if draft == nil {
		t.Fatal("no draft saved on submit")
	}
	if draft.Code != "print(3)" {
		t.Errorf("draft code = %q, want submitted code", draft.Code)
	}
	if draft.LastOutput != "all tests passed" {
		t.Errorf("draft output = %q, want grader console log", draft.LastOutput)
	}
}

func TestAdminRedirectsTeamToLogin(t *testing.T) {
	env := newTestEnv(t, countdownBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/admin/teams")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Errorf("GET /admin/teams as team = %d -> %q, want 303 -> /login", w.Code, w.Header().Get("Location"))
	}
	if !cookieCleared(w) {
		t.Error("session cookie not cleared on admin redirect")
	}
}

func TestAdminLoginRedirectsToAdmin(t *testing.T) {
	env := newTestEnv(t, countdownBackend())

	body := url.Values{"name": {"root"}, "password": {"pw"}}
	w := env.postForm(nil, "/login", body)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Errorf("admin login = %d -> %q, want 303 -> /admin", w.Code, w.Header().Get("Location"))
	}
}

// cookieCleared reports whether the response unset the session cookie.
func cookieCleared(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value == "" && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestEndedWindowDestroysLogin(t *testing.T) {
	env := newTestEnv(t, endedBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/thankyou" {
		t.Fatalf("GET / = %d -> %q, want 303 -> /thankyou", w.Code, w.Header().Get("Location"))
	}
	if !cookieCleared(w) {
		t.Error("session cookie not cleared after the window ended")
	}

	sess, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess != nil {
		t.Error("session and bearer token survived the ended window")
	}

	// The closing page itself stays reachable for the now-anonymous team.
	w = env.get(nil, "/thankyou")
	if w.Code != http.StatusOK {
		t.Errorf("GET /thankyou anonymous = %d, want 200", w.Code)
	}
}

func TestClockFailureRedirectsToLogin(t *testing.T) {
	// Login only needs the team route, so a dead clock still authenticates.
	fb := countdownBackend()
	fb.nowFails = true
	env := newTestEnv(t, fb)
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("GET / with failing clock = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?error=") {
		t.Errorf("redirect = %q, want /login with error", loc)
	}
	if !cookieCleared(w) {
		t.Error("session cookie not cleared on clock failure")
	}

	sess, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess != nil {
		t.Error("session survived the failed clock check")
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv(t, countdownBackend())
	cookie := env.login(t, "B1", "pw")

	w := env.get(cookie, "/logout")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("logout = %d -> %q, want 303 -> /login", w.Code, w.Header().Get("Location"))
	}

	sess, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess != nil {
		t.Error("session survived logout")
	}
}
