//go:build integration

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilltrack/internal/cache"
	"skilltrack/internal/config"
	"skilltrack/internal/metrics"
	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/testutil"
)

type apiClient struct {
	t      *testing.T
	base   string
	auth   *testutil.AuthHelper
	client *http.Client
}

func (c *apiClient) do(user *models.User, method, path string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	c.auth.AddAuthHeader(c.t, req, user)

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI_RatingLifecycle(t *testing.T) {
	tc := testutil.SetupTestContainers(t)
	f := testutil.SetupFixtures(t, tc.DB)
	redisClient := testutil.SetupRedis(t)

	cfg := &config.Config{
		App:    config.AppConfig{Version: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Rating: config.RatingConfig{UpgradeCoolDown: 30 * 24 * time.Hour},
	}
	helper := testutil.NewAuthHelper(t)
	m := metrics.New()

	svc := newServices(tc.DB, cache.NewProgressCache(redisClient, time.Minute), m, &cfg.Rating, time.Now)
	srv := httptest.NewServer(newRouter(routerDeps{
		cfg:     cfg,
		db:      tc.DB,
		tokens:  helper.Tokens,
		metrics: m,
	}, svc))
	t.Cleanup(srv.Close)

	api := &apiClient{t: t, base: srv.URL, auth: helper, client: srv.Client()}

	var rating models.EmployeeRating
	status := api.do(f.Employee, http.MethodPut, "/api/v1/ratings", map[string]any{
		"skill_id":    f.GoSkill.ID,
		"subskill_id": f.Concurrency.ID,
		"rating":      "medium",
	}, &rating)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, progression.StatusDraft, rating.Status)

	t.Run("employees cannot review", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, api.do(f.Employee, http.MethodGet, "/api/v1/approvals/pending", nil, nil))
	})

	status = api.do(f.Employee, http.MethodPost, fmt.Sprintf("/api/v1/ratings/%d/submit", rating.ID), nil, &rating)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, progression.StatusSubmitted, rating.Status)

	var pending []models.EmployeeRatingWithDetails
	require.Equal(t, http.StatusOK, api.do(f.TechLead, http.MethodGet, "/api/v1/approvals/pending", nil, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, rating.ID, pending[0].ID)

	// pending work is not counted yet
	var before progression.Progress
	require.Equal(t, http.StatusOK, api.do(f.Employee, http.MethodGet, fmt.Sprintf("/api/v1/progress/%d", f.Category.ID), nil, &before))
	assert.Equal(t, 0, before.TotalPoints)
	assert.Equal(t, 1, before.PendingCount)

	status = api.do(f.TechLead, http.MethodPost, fmt.Sprintf("/api/v1/approvals/%d/approve", rating.ID), map[string]any{"comment": "well done"}, &rating)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, progression.StatusApproved, rating.Status)
	assert.NotNil(t, rating.NextUpgradeDate)

	t.Run("second decision conflicts", func(t *testing.T) {
		status := api.do(f.Manager, http.MethodPost, fmt.Sprintf("/api/v1/approvals/%d/reject", rating.ID), map[string]any{"comment": "no"}, nil)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("progress reflects the approval", func(t *testing.T) {
		var p progression.Progress
		require.Equal(t, http.StatusOK, api.do(f.Employee, http.MethodGet, fmt.Sprintf("/api/v1/progress/%d", f.Category.ID), nil, &p))
		assert.Equal(t, 3, p.TotalItems)
		assert.Equal(t, 3, p.TotalPoints)
		assert.Equal(t, 15, p.MaxPossiblePoints)
		assert.Equal(t, 20, p.ProgressPercentage)
		assert.Equal(t, 1, p.ApprovedCount)
	})

	t.Run("upgrade during cool-down is refused", func(t *testing.T) {
		req, err := json.Marshal(map[string]any{
			"skill_id":    f.GoSkill.ID,
			"subskill_id": f.Concurrency.ID,
			"rating":      "high",
		})
		require.NoError(t, err)
		httpReq, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/ratings", bytes.NewReader(req))
		require.NoError(t, err)
		helper.AddAuthHeader(t, httpReq, f.Employee)

		resp, err := srv.Client().Do(httpReq)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Rating change not allowed", body["error"])
		assert.NotEmpty(t, body["reason"])
	})

	t.Run("owner was notified", func(t *testing.T) {
		var notes []models.Notification
		require.Equal(t, http.StatusOK, api.do(f.Employee, http.MethodGet, "/api/v1/notifications?unread=true", nil, &notes))
		require.NotEmpty(t, notes)
		assert.Equal(t, "Skill Rating Approved", notes[0].Title)

		path := fmt.Sprintf("/api/v1/notifications/%d/read", notes[0].ID)
		assert.Equal(t, http.StatusNotFound, api.do(f.TechLead, http.MethodPost, path, nil, nil))
		assert.Equal(t, http.StatusNoContent, api.do(f.Employee, http.MethodPost, path, nil, nil))
	})

	t.Run("health and metrics", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = srv.Client().Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
