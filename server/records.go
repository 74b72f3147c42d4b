package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cricklab/fieldsim/store"
)

// requireDB fails the request when the server runs without a database.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no database configured")
		return false
	}
	return true
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// respondRecord writes v, mapping a missing row to 404.
func respondRecord(w http.ResponseWriter, v any, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

type createPlayerRequest struct {
	Name        string `json:"name"`
	BattingHand string `json:"batting_hand"`
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	var req createPlayerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.BattingHand == "" {
		req.BattingHand = "right"
	}
	id, err := s.db.CreatePlayer(req.Name, req.BattingHand)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, store.Player{ID: id, Name: req.Name, BattingHand: req.BattingHand})
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	players, err := s.db.Players()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if players == nil {
		players = []store.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	p, err := s.db.Player(id)
	respondRecord(w, p, err)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	deleted, err := s.db.DeletePlayer(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handlePlayerSessions(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	sessions, err := s.db.SessionsByPlayer(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handlePlayerProgress(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	if _, err := s.db.Player(id); err != nil {
		respondRecord(w, nil, err)
		return
	}
	summaries, err := s.db.PlayerSessionSummaries(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []store.PlayerSessionSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

type createSessionRequest struct {
	PlayerID    int64  `json:"player_id"`
	Date        string `json:"date,omitempty"` // RFC 3339; defaults to now
	FieldConfig string `json:"field_config,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	var req createSessionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.PlayerID == 0 {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	if _, err := s.db.Player(req.PlayerID); err != nil {
		respondRecord(w, nil, err)
		return
	}
	date := time.Now().UTC()
	if req.Date != "" {
		var err error
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be RFC 3339")
			return
		}
	}
	id, err := s.db.CreateSession(req.PlayerID, date, req.FieldConfig, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sess, err := s.db.Session(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	sessions, err := s.db.Sessions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	sess, err := s.db.Session(id)
	respondRecord(w, sess, err)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	deleted, err := s.db.DeleteSession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// sessionID parses the path ID and checks the session exists.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return 0, false
	}
	if _, err := s.db.Session(id); err != nil {
		respondRecord(w, nil, err)
		return 0, false
	}
	return id, true
}

func (s *Server) handleSessionDeliveries(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	deliveries, err := s.db.Deliveries(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deliveries == nil {
		deliveries = []store.Delivery{}
	}
	writeJSON(w, http.StatusOK, deliveries)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	summary, err := s.db.SessionSummary(id)
	respondRecord(w, summary, err)
}

func (s *Server) handleSessionZones(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	zones, err := s.db.ZoneBreakdowns(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if zones == nil {
		zones = []store.ZoneBreakdown{}
	}
	writeJSON(w, http.StatusOK, zones)
}

func (s *Server) handleSessionOvers(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	overs, err := s.db.OverBreakdowns(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if overs == nil {
		overs = []store.OverBreakdown{}
	}
	writeJSON(w, http.StatusOK, overs)
}

func (s *Server) handleSessionSpeeds(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	speeds, err := s.db.SpeedStats(id)
	respondRecord(w, speeds, err)
}
