package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/handlers"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/repository"
	"github.com/abrezinsky/cubeplan/internal/services"
	"github.com/abrezinsky/cubeplan/internal/testutil"
)

// testEnv bundles a router with the repository behind it
type testEnv struct {
	h      *handlers.Handlers
	router http.Handler
	repo   repository.FullRepository
}

func newTestEnv(t *testing.T, repo repository.FullRepository) *testEnv {
	t.Helper()
	if repo == nil {
		repo = testutil.NewTestRepository(t)
	}
	log := logger.Discard()
	cat := catalog.Default()

	settings := services.NewSettingsService(log, repo)
	h := handlers.NewForTesting(
		services.NewCompetitionService(log, repo, cat),
		services.NewPlanService(log, repo, cat),
		services.NewShareService(log, repo, settings),
		settings,
		cat,
	)
	return &testEnv{h: h, router: h.Router(), repo: repo}
}

// login returns a bearer token for the test organiser password
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"password": "test-password"})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp handlers.LoginResponse
	decode(t, rr, &resp)
	return resp.Token
}

// do sends a request through the router. body is JSON encoded unless it is
// already a string.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// stubPinger reports a fixed health result
type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }
