package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teamfinder/internal/client/config"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

const (
	testEmail    = "ann@example.com"
	testPassword = "correct-horse"
	testToken    = "token-1"
)

// testBackend is a stateful stand-in for the TeamFinder API: it tracks one
// session cookie and serves a fixed set of posts.
type testBackend struct {
	mu     sync.Mutex
	calls  map[string]int
	posts  []models.Post
	status int // forced status for every request when non-zero
	expired bool

	srv *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{
		calls: map[string]int{},
		posts: []models.Post{
			{ID: 1, Name: "Go backend team", AuthorID: 7, Type: models.PostTypeUserFinding, Skills: []string{"golang"}},
			{ID: 2, Name: "Frontend dev looking", AuthorID: 8, Type: models.PostTypeTeamFinding, Skills: []string{"javascript"}},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "available"})
	})
	mux.HandleFunc("POST /v2/users/login", b.login)
	mux.HandleFunc("POST /v2/users/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "", Path: "/", Expires: time.Unix(0, 0)})
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	})
	mux.HandleFunc("GET /v2/users/check-auth", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"authenticated": "false"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"authenticated": "true"})
	})
	mux.HandleFunc("GET /v2/posts/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/v2/posts/")
		if rest == "" {
			writeJSON(w, http.StatusOK, b.page(r.URL.Query().Get("type")))
			return
		}
		for _, p := range b.posts {
			if strconv.FormatInt(p.ID, 10) == rest {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	mux.HandleFunc("GET /v2/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.User{ID: id, Name: "Ann", Username: "ann"})
	})
	mux.HandleFunc("GET /v2/posts/my", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, b.page(""))
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/v2")]++
		forced := b.status
		b.mu.Unlock()
		if forced != 0 {
			writeJSON(w, forced, map[string]string{"error": http.StatusText(forced)})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) URL() string { return b.srv.URL + "/v2" }

func (b *testBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[call]
}

func (b *testBackend) fail(status int) {
	b.mu.Lock()
	b.status = status
	b.mu.Unlock()
}

func (b *testBackend) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email != testEmail || in.Password != testPassword {
		writeJSON(w, http.StatusBadRequest, "Wrong credentials")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "jwt", Value: testToken, Path: "/", Expires: time.Now().Add(24 * time.Hour)})
	writeJSON(w, http.StatusOK, map[string]string{"message": "User successfully authenticated"})
}

func (b *testBackend) page(typ string) models.PostPage {
	var out []models.Post
	for _, p := range b.posts {
		if typ == "" || string(p.Type) == typ {
			out = append(out, p)
		}
	}
	md := models.Metadata{}
	if len(out) > 0 {
		md = models.Metadata{CurrentPage: 1, PageSize: 10, FirstPage: 1, LastPage: 1, TotalRecords: len(out)}
	}
	return models.PostPage{Posts: out, Metadata: md}
}

// expireSessions makes every issued cookie invalid from now on; logging in
// still succeeds.
func (b *testBackend) expireSessions() {
	b.mu.Lock()
	b.expired = true
	b.mu.Unlock()
}

func (b *testBackend) authorized(r *http.Request) bool {
	b.mu.Lock()
	expired := b.expired
	b.mu.Unlock()
	c, err := r.Cookie("jwt")
	return !expired && err == nil && c.Value == testToken
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(apiURL string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = apiURL
	cfg.DatabasePath = ":memory:"
	cfg.RequestTimeout = 2 * time.Second
	cfg.HealthCheckInterval = 0
	return cfg
}

// newTestApp builds an App against b with scripted input.
func newTestApp(t *testing.T, b *testBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil)

	var out bytes.Buffer
	a, err := NewApp(context.Background(), testConfig(b.URL()), logging.Nop(), strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}
