package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/fitstack/fitledger/internal/ledger"
	"github.com/fitstack/fitledger/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := storage.NewMemoryStore()
	l := ledger.New(context.Background(), store,
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	srv := httptest.NewServer(Routes(NewHandler(l, store)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error = %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s error = %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := go_json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return v
}

func TestAddWaterEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := post(t, srv, "/api/water", `{"amount": 2, "unit": "cup"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	body := decodeBody[struct {
		TodayFlOz    float64 `json:"today_floz"`
		GoalFlOz     float64 `json:"goal_floz"`
		GoalProgress float64 `json:"goal_progress"`
	}](t, resp)

	if body.TodayFlOz != 16 {
		t.Errorf("today_floz = %v, want 16", body.TodayFlOz)
	}
	if body.GoalFlOz != 64 {
		t.Errorf("goal_floz = %v, want default 64", body.GoalFlOz)
	}
	if body.GoalProgress != 0.25 {
		t.Errorf("goal_progress = %v, want 0.25", body.GoalProgress)
	}
}

func TestAddWaterRejectsBadInput(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "non-positive amount", body: `{"amount": 0, "unit": "cup"}`},
		{name: "unknown unit", body: `{"amount": 1, "unit": "gallon"}`},
		{name: "malformed json", body: `{"amount":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/api/water", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := post(t, srv, "/api/session/start", `{"name": "Morning Run", "activity": "running"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	// a second start conflicts
	resp = post(t, srv, "/api/session/start", `{"name": "Second"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second start status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
	errBody := decodeBody[struct {
		Error string `json:"error"`
	}](t, resp)
	if errBody.Error != "session_conflict" {
		t.Errorf("error code = %q, want %q", errBody.Error, "session_conflict")
	}

	resp = post(t, srv, "/api/session/heart-rate", `{"bpm": 132}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("heart-rate status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp = get(t, srv, "/api/session")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get session status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	sessionBody := decodeBody[struct {
		AverageHeartRate float64 `json:"average_heart_rate"`
	}](t, resp)
	if sessionBody.AverageHeartRate != 132 {
		t.Errorf("average_heart_rate = %v, want 132", sessionBody.AverageHeartRate)
	}

	resp = post(t, srv, "/api/session/end", ``)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("end status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	workout := decodeBody[ledger.Workout](t, resp)
	if !workout.Completed {
		t.Error("recorded workout not marked completed")
	}
	if workout.Name != "Morning Run" {
		t.Errorf("workout name = %q, want %q", workout.Name, "Morning Run")
	}

	// ending again is a no-op
	resp = post(t, srv, "/api/session/end", ``)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("idempotent end status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func TestHeartRateWithoutSession(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := post(t, srv, "/api/session/heart-rate", `{"bpm": 120}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
	errBody := decodeBody[struct {
		Error string `json:"error"`
	}](t, resp)
	if errBody.Error != "no_active_session" {
		t.Errorf("error code = %q, want %q", errBody.Error, "no_active_session")
	}
}

func TestLatestBodyMetricEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := get(t, srv, "/api/body-metrics/latest?kind=weight")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d before any entry", resp.StatusCode, http.StatusNotFound)
	}

	resp = post(t, srv, "/api/body-metrics", `{"kind": "weight", "value": 180.5, "unit": "lb"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = get(t, srv, "/api/body-metrics/latest?kind=weight")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	entry := decodeBody[ledger.BodyMetricEntry](t, resp)
	if entry.Value != 180.5 {
		t.Errorf("latest weight = %v, want 180.5", entry.Value)
	}
}

func TestGoalEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := get(t, srv, "/api/goals")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("goals status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	goals := decodeBody[[]ledger.FitnessGoal](t, resp)
	if len(goals) != 4 {
		t.Fatalf("default goals = %d, want 4", len(goals))
	}

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/goals",
		strings.NewReader(`{"kind": "calories", "current": 1100}`))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/goals error = %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want %d", resp2.StatusCode, http.StatusOK)
	}
	goal := decodeBody[ledger.FitnessGoal](t, resp2)
	if goal.Current != 1100 {
		t.Errorf("goal current = %v, want 1100", goal.Current)
	}
}

func TestSyncEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := post(t, srv, "/api/sync", `{"stats": {"calories_today": 900}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("sync without timestamp status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	payload := `{"stats": {"calories_today": 900}, "workouts": [], "sync_timestamp": "` +
		time.Now().UTC().Format(time.RFC3339) + `"}`
	resp = post(t, srv, "/api/sync", payload)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("sync status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp = get(t, srv, "/api/stats")
	stats := decodeBody[ledger.UserStats](t, resp)
	if stats.CaloriesToday != 900 {
		t.Errorf("calories_today = %d, want synced 900", stats.CaloriesToday)
	}

	resp = get(t, srv, "/api/sync/export")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	snapshot := decodeBody[ledger.SyncSnapshot](t, resp)
	if snapshot.ExportedAt.IsZero() {
		t.Error("export snapshot missing timestamp")
	}
}

func TestClearDataEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	post(t, srv, "/api/water", `{"amount": 8, "unit": "floz"}`)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/data", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /api/data error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp2 := get(t, srv, "/api/water/today")
	body := decodeBody[map[string]float64](t, resp2)
	if body["today_floz"] != 0 {
		t.Errorf("today_floz after clear = %v, want 0", body["today_floz"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := get(t, srv, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
