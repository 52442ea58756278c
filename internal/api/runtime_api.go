package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dig-network/digd/internal/app/governor"
	"github.com/dig-network/digd/internal/domain"
	"github.com/dig-network/digd/internal/infra/catalog"
)

// runtimeResponse mirrors the runtime state for queries and mode
// changes. Field names are part of the wire contract with the UI
// shell.
type runtimeResponse struct {
	Mode          domain.PerformanceMode `json:"mode"`
	Allocation    domain.Allocation      `json:"allocation"`
	ActiveMission *string                `json:"active_mission"`
	SessionXP     uint64                 `json:"session_xp"`
}

func newRuntimeResponse(st governor.State) runtimeResponse {
	resp := runtimeResponse{
		Mode:       st.Mode,
		Allocation: st.Allocation,
		SessionXP:  st.SessionScore,
	}
	if st.ActiveMission != "" {
		mission := st.ActiveMission
		resp.ActiveMission = &mission
	}
	return resp
}

// --- GET /api/v1/telemetry ---

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Telemetry())
}

// --- GET /api/v1/runtime ---

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newRuntimeResponse(s.store.Snapshot()))
}

// --- POST /api/v1/mode ---

type modeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.gov.SetMode(mode); err != nil {
		if errors.Is(err, domain.ErrUnknownMode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newRuntimeResponse(s.store.Snapshot()))
}

// --- GET /api/v1/missions ---

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Missions)
}
