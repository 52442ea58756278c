package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dig-network/digd/internal/app/governor"
	"github.com/dig-network/digd/internal/app/scheduler"
	"github.com/dig-network/digd/internal/domain"
	"github.com/dig-network/digd/internal/infra/cgroups"
)

type fixedSampler struct {
	snap domain.TelemetrySnapshot
}

func (s fixedSampler) Collect(mode domain.PerformanceMode) domain.TelemetrySnapshot {
	snap := s.snap
	snap.Mode = mode
	return snap
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	floors := scheduler.Floors{UICPUPercent: 5, UIGPUPercent: 5}
	store := governor.NewStore(governor.State{
		Mode:          domain.ModeBalanced,
		Allocation:    scheduler.AllocationForMode(domain.ModeBalanced, floors),
		Telemetry:     domain.TelemetrySnapshot{Timestamp: time.Now(), GPUTempC: 55, Mode: domain.ModeBalanced},
		ActiveMission: "med-pancreas-001",
		SessionScore:  42,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gov := governor.New(governor.Config{
		PollInterval:         time.Second,
		ThermalLimitC:        85,
		UIReservedCPUPercent: 5,
		UIReservedGPUPercent: 5,
	}, store, fixedSampler{}, cgroups.Noop{}, logger)

	return NewServer(gov)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// ─── Health ─────────────────────────────────────────────────────────────────

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
	if body["service"] != "digd" {
		t.Errorf("service = %q, want digd", body["service"])
	}
	if body["session"] == "" {
		t.Error("session id missing")
	}
}

// ─── Queries ────────────────────────────────────────────────────────────────

func TestAPI_Runtime(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "GET", "/api/v1/runtime", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Mode          string            `json:"mode"`
		Allocation    domain.Allocation `json:"allocation"`
		ActiveMission *string           `json:"active_mission"`
		SessionXP     uint64            `json:"session_xp"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Mode != "balanced" {
		t.Errorf("mode = %q, want balanced", body.Mode)
	}
	if body.Allocation.WorkerCPUPercent != 80 {
		t.Errorf("worker cpu = %d, want 80", body.Allocation.WorkerCPUPercent)
	}
	if body.ActiveMission == nil || *body.ActiveMission != "med-pancreas-001" {
		t.Errorf("active_mission = %v, want med-pancreas-001", body.ActiveMission)
	}
	if body.SessionXP != 42 {
		t.Errorf("session_xp = %d, want 42", body.SessionXP)
	}
}

func TestAPI_Telemetry(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "GET", "/api/v1/telemetry", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var snap domain.TelemetrySnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.GPUTempC != 55 {
		t.Errorf("gpu_temp_c = %v, want 55", snap.GPUTempC)
	}
}

// ─── Mode changes ───────────────────────────────────────────────────────────

func TestAPI_SetMode(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "POST", "/api/v1/mode", `{"mode":"gaming"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Mode       string            `json:"mode"`
		Allocation domain.Allocation `json:"allocation"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Mode != "gaming" {
		t.Errorf("mode = %q, want gaming", body.Mode)
	}
	if body.Allocation.UICPUPercent != 15 || body.Allocation.WorkerCPUPercent != 20 {
		t.Errorf("allocation = %+v, want the gaming row", body.Allocation)
	}
}

func TestAPI_SetMode_UnknownModeRejected(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "POST", "/api/v1/mode", `{"mode":"overdrive"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// No partial effects: state is untouched.
	rt := doRequest(t, srv, "GET", "/api/v1/runtime", "")
	var body struct {
		Mode string `json:"mode"`
	}
	json.NewDecoder(rt.Body).Decode(&body)
	if body.Mode != "balanced" {
		t.Errorf("mode after rejected request = %q, want balanced", body.Mode)
	}
}

func TestAPI_SetMode_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "POST", "/api/v1/mode", `{"mode": 12`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// ─── Missions ───────────────────────────────────────────────────────────────

func TestAPI_Missions(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "GET", "/api/v1/missions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var missions []domain.Mission
	if err := json.NewDecoder(w.Body).Decode(&missions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(missions) != 3 {
		t.Fatalf("missions = %d, want 3", len(missions))
	}
	if missions[0].ID != "med-pancreas-001" {
		t.Errorf("first mission = %s, want med-pancreas-001", missions[0].ID)
	}
}

// ─── Metrics ────────────────────────────────────────────────────────────────

func TestAPI_MetricsRoute(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, "GET", "/metrics", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("metrics disabled: status = %d, want %d", w.Code, http.StatusNotFound)
	}

	srv.EnableMetrics()
	w = doRequest(t, srv, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Errorf("metrics enabled: status = %d, want %d", w.Code, http.StatusOK)
	}
}
