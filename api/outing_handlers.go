package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/results"
)

type autoAssignRequest struct {
	GroupSize int `json:"group_size"`
}

type shotgunRequest struct {
	HoleCount int `json:"hole_count"`
	BaseHole  int `json:"base_hole"`
}

type moveRequest struct {
	TargetGroupID uuid.UUID `json:"target_group_id"`
}

type markerRequest struct {
	NewMarkerID string `json:"new_marker_id"`
}

type scheduleRequest struct {
	When     string `json:"when"`
	Timezone string `json:"timezone"`
}

func (s *Server) handleAutoAssign(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}
	var req autoAssignRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.service.AutoAssignGroups(r.Context(), outingID, req.GroupSize)
	s.writeResult(w, r, result, err)
}

func (s *Server) handleShotgun(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}
	var req shotgunRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.service.ApplyShotgunStart(r.Context(), outingID, req.HoleCount, req.BaseHole)
	s.writeResult(w, r, result, err)
}

func (s *Server) handleMovePlayer(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	var req moveRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.service.MovePlayer(r.Context(), outingID, outingdomain.PlayerID(playerID), req.TargetGroupID)
	s.writeResult(w, r, result, err)
}

func (s *Server) handleReassignMarker(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}
	var req markerRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.service.ReassignMarker(r.Context(), outingID, groupID, outingdomain.PlayerID(req.NewMarkerID))
	s.writeResult(w, r, result, err)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}

	result, err := s.service.ValidateSetup(r.Context(), outingID)
	s.writeResult(w, r, result, err)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}

	result, err := s.service.BuildLeaderboard(r.Context(), outingID, r.URL.Query().Get("format"))
	s.writeResult(w, r, result, err)
}

func (s *Server) handleLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}

	data, err := s.service.ExportLeaderboard(r.Context(), outingID, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	_, _ = w.Write(data)
}

func (s *Server) handleLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}

	data, err := s.service.RenderLeaderboardChart(r.Context(), outingID, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	outingID, ok := s.outingID(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.service.ScheduleOutingStart(r.Context(), outingID, req.When, req.Timezone)
	s.writeResult(w, r, result, err)
}

// --- helpers ---

func (s *Server) outingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "outingID"))
	if err != nil {
		http.Error(w, "invalid outing id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeResult maps an operation outcome onto HTTP: success payloads are 200,
// business failures 422, infrastructure errors 500.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result results.OperationResult, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result.IsFailure() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(result.Failure)
		return
	}
	_ = json.NewEncoder(w).Encode(result.Success)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "HTTP handler error",
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
