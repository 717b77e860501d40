package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activity-service/config"
	"activity-service/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		GitHubAPIURL:       "http://unused.invalid",
		LeetCodeGraphQLURL: "http://unused.invalid",
		LeetCodeAPIURL:     "http://unused.invalid",
		LeetCodeMirrorURL:  "http://unused.invalid",
		UpstreamTimeout:    5 * time.Second,
		DefaultLimit:       4,
		MaxLimit:           50,
	}
}

func serve(t *testing.T, cfg *config.Config, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := router.Setup(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil)
	r.ServeHTTP(w, req)
	return w
}

func assertNoCacheHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "no-store, no-cache, must-revalidate, max-age=0", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func countingServer(t *testing.T, hits *int, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		handler(w, r)
	}))
}

func TestGitHubActivity_MissingUser(t *testing.T) {
	hits := 0
	upstream := countingServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()

	cfg := newTestConfig()
	cfg.GitHubAPIURL = upstream.URL

	w := serve(t, cfg, "/api/activity/github?limit=4")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	assert.Equal(t, 0, hits, "missing user must not trigger an upstream call")
	assertNoCacheHeaders(t, w)
}

func TestLeetCodeActivity_MissingUser(t *testing.T) {
	hits := 0
	upstream := countingServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()

	cfg := newTestConfig()
	cfg.LeetCodeGraphQLURL = upstream.URL
	cfg.LeetCodeAPIURL = upstream.URL
	cfg.LeetCodeMirrorURL = upstream.URL

	w := serve(t, cfg, "/api/activity/leetcode?limit=4")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	assert.Equal(t, 0, hits, "missing user must not trigger an upstream call")
	assertNoCacheHeaders(t, w)
}

func TestGitHubActivity_HappyPath(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{
			"id": "1",
			"type": "PushEvent",
			"repo": {"name": "x/y"},
			"payload": {"commits": [{"message": "fix bug"}]},
			"created_at": "2024-01-01T00:00:00Z"
		}]`)
	}))
	defer upstream.Close()

	cfg := newTestConfig()
	cfg.GitHubAPIURL = upstream.URL

	w := serve(t, cfg, "/api/activity/github?user=octocat&limit=4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[{
		"id": "1",
		"title": "pushed commits",
		"subtitle": "fix bug",
		"repo": "x/y",
		"ts": "2024-01-01T00:00:00Z"
	}]}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestGitHubActivity_NoThrowOnUpstreamFailure(t *testing.T) {
	tests := []struct {
		name  string
		serve func(w http.ResponseWriter, r *http.Request)
		close bool
	}{
		{
			name:  "connection refused",
			serve: func(w http.ResponseWriter, r *http.Request) {},
			close: true,
		},
		{
			name: "html body",
			serve: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				fmt.Fprint(w, "<html>error page</html>")
			},
		},
		{
			name: "unexpected json shape",
			serve: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
		},
		{
			name: "rate limited",
			serve: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(tt.serve))
			if tt.close {
				upstream.Close()
			} else {
				defer upstream.Close()
			}

			cfg := newTestConfig()
			cfg.GitHubAPIURL = upstream.URL

			w := serve(t, cfg, "/api/activity/github?user=octocat&limit=4")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"items":[]}`, w.Body.String())
			assertNoCacheHeaders(t, w)
		})
	}
}

func TestLeetCodeActivity_AllStrategiesFail(t *testing.T) {
	// GraphQL serves an HTML block page, the other two refuse connections:
	// the chain exhausts without a terminal answer.
	htmlUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>blocked</html>")
	}))
	defer htmlUpstream.Close()

	refused := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	refused.Close()

	cfg := newTestConfig()
	cfg.LeetCodeGraphQLURL = htmlUpstream.URL
	cfg.LeetCodeAPIURL = refused.URL
	cfg.LeetCodeMirrorURL = refused.URL

	w := serve(t, cfg, "/api/activity/leetcode?user=dave&limit=4")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []json.RawMessage `json:"items"`
		Error string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.NotEmpty(t, resp.Error)
	assertNoCacheHeaders(t, w)
}

func TestLeetCodeActivity_LegacyBlockedCarriesDebug(t *testing.T) {
	refused := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	refused.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>login required</html>")
	}))
	defer api.Close()

	cfg := newTestConfig()
	cfg.LeetCodeGraphQLURL = refused.URL
	cfg.LeetCodeAPIURL = api.URL
	cfg.LeetCodeMirrorURL = refused.URL

	w := serve(t, cfg, "/api/activity/leetcode?user=erin&limit=4")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []json.RawMessage `json:"items"`
		Error string            `json:"error"`
		Debug string            `json:"debug"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Contains(t, resp.Error, "non-JSON")
	assert.Contains(t, resp.Debug, "login required")
	assertNoCacheHeaders(t, w)
}

func TestLeetCodeActivity_MirrorScenario(t *testing.T) {
	htmlUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>blocked</html>")
	}))
	defer htmlUpstream.Close()

	refused := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	refused.Close()

	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1,"submission":[{"titleSlug":"two-sum","title":"Two Sum","status":"Accepted","lang":"python3","timestamp":1700000000}]}`)
	}))
	defer mirror.Close()

	cfg := newTestConfig()
	cfg.LeetCodeGraphQLURL = htmlUpstream.URL
	cfg.LeetCodeAPIURL = refused.URL
	cfg.LeetCodeMirrorURL = mirror.URL

	w := serve(t, cfg, "/api/activity/leetcode?user=carol&limit=4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"items": [{
			"id": "two-sum-1700000000",
			"title": "Two Sum",
			"slug": "two-sum",
			"status": "Accepted",
			"lang": "python3",
			"ts": 1700000000
		}],
		"debug": "mirror"
	}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestLimitClamping(t *testing.T) {
	var lastPerPage string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPerPage = r.URL.Query().Get("per_page")
		fmt.Fprint(w, "[]")
	}))
	defer upstream.Close()

	cfg := newTestConfig()
	cfg.GitHubAPIURL = upstream.URL

	tests := []struct {
		query       string
		wantPerPage string
	}{
		{"limit=0", "10"},     // clamped up to 1, page floor 10
		{"limit=-5", "10"},    // clamped up to 1
		{"limit=9999", "150"}, // clamped down to MaxLimit 50
		{"limit=abc", "12"},   // default 4
		{"", "12"},            // default 4
	}

	for _, tt := range tests {
		w := serve(t, cfg, "/api/activity/github?user=octocat&"+tt.query)
		assert.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.wantPerPage, lastPerPage, tt.query)
	}
}

func TestContentEndpoints(t *testing.T) {
	cfg := newTestConfig()

	for _, target := range []string{"/api/projects", "/api/experience", "/api/profile"} {
		w := serve(t, cfg, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.True(t, json.Valid(w.Body.Bytes()), target)
	}

	w := serve(t, cfg, "/api/profile")
	var profile struct {
		GitHubUser   string `json:"githubUser"`
		LeetCodeUser string `json:"leetcodeUser"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.NotEmpty(t, profile.GitHubUser)
	assert.NotEmpty(t, profile.LeetCodeUser)
}

func TestHealthEndpoints(t *testing.T) {
	cfg := newTestConfig()
	for _, target := range []string{"/", "/health"} {
		w := serve(t, cfg, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}
