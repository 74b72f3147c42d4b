package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cricklab/fieldsim/engine"
	"github.com/cricklab/fieldsim/field"
	"github.com/cricklab/fieldsim/store"
)

// SimulateRequest is the JSON body for POST /api/simulate. Pointer fields
// distinguish "absent, use the default" from an explicit zero.
type SimulateRequest struct {
	Speed      *float64         `json:"speed"`             // exit speed, km/h
	Angle      float64          `json:"angle"`             // horizontal, degrees
	Elevation  *float64         `json:"elevation"`         // vertical, degrees
	Boundary   float64          `json:"boundary_distance"` // metres
	Difficulty string           `json:"difficulty"`
	Layout     string           `json:"layout,omitempty"`       // named layout
	Fielders   []engine.Fielder `json:"field_config,omitempty"` // explicit placement
	SessionID  int64            `json:"session_id,omitempty"`   // record when set
	BallNumber int              `json:"ball_number,omitempty"`
}

// SimulateResponse is the delivery result, plus the database row ID when the
// delivery was recorded into a session.
type SimulateResponse struct {
	engine.Result
	DeliveryID int64 `json:"delivery_id,omitempty"`
}

const (
	defaultSpeed     = 80.0
	defaultElevation = 10.0
	defaultBoundary  = 70.0
)

// buildInput resolves a request into engine input: defaults filled, the
// layout name resolved against the configured set.
func (s *Server) buildInput(req SimulateRequest) (engine.Input, error) {
	in := engine.Input{
		ExitSpeedKmh:    defaultSpeed,
		HorizontalAngle: req.Angle,
		VerticalAngle:   defaultElevation,
		BoundaryDist:    req.Boundary,
		Difficulty:      engine.Difficulty(req.Difficulty),
	}
	if req.Speed != nil {
		in.ExitSpeedKmh = *req.Speed
	}
	if req.Elevation != nil {
		in.VerticalAngle = *req.Elevation
	}
	if in.BoundaryDist == 0 {
		in.BoundaryDist = defaultBoundary
	}
	if req.Difficulty == "" {
		in.Difficulty = engine.DifficultyMedium
	}

	if len(req.Fielders) > 0 {
		layout := field.Layout{Name: "custom", Fielders: req.Fielders}
		if err := layout.Validate(); err != nil {
			return engine.Input{}, fmt.Errorf("field_config: %w", err)
		}
		in.Field = req.Fielders
		return in, nil
	}

	name := req.Layout
	if name == "" {
		name = "standard"
	}
	layout, ok := s.layouts[name]
	if !ok {
		return engine.Input{}, fmt.Errorf("unknown layout %q", name)
	}
	in.Field = layout.Fielders
	return in, nil
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	in, err := s.buildInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.sim.SimulateDelivery(in)
	resp := SimulateResponse{Result: res}

	if req.SessionID != 0 {
		if s.db == nil {
			writeError(w, http.StatusServiceUnavailable, "no database configured")
			return
		}
		id, err := s.recordDelivery(req.SessionID, req.BallNumber, in, res)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.DeliveryID = id
	}

	s.publish(ServerMessage{Type: MsgTypeDelivery, Data: resp})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.layoutNames())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	layout, ok := s.layouts[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown layout %q", name))
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	if s.db == nil {
		status["database"] = "not configured"
	}
	writeJSON(w, http.StatusOK, status)
}

// recordDelivery persists one simulated result. A zero ball number is
// assigned the next slot in the session.
func (s *Server) recordDelivery(sessionID int64, ballNumber int, in engine.Input, res engine.Result) (int64, error) {
	if ballNumber == 0 {
		existing, err := s.db.Deliveries(sessionID)
		if err != nil {
			return 0, err
		}
		ballNumber = len(existing) + 1
	}

	d := store.Delivery{
		SessionID:       sessionID,
		Timestamp:       time.Now().UTC(),
		BallNumber:      ballNumber,
		ExitSpeed:       f64ptr(in.ExitSpeedKmh),
		HorizontalAngle: f64ptr(in.HorizontalAngle),
		VerticalAngle:   f64ptr(in.VerticalAngle),
		Outcome:         string(res.Outcome),
		Runs:            res.Runs,
		FielderPosition: res.Fielder,
		IsBoundary:      res.IsBoundary,
		IsAerial:        res.IsAerial,
	}
	if t := res.Trajectory; t != nil {
		d.LandingX = f64ptr(t.Landing.X)
		d.LandingY = f64ptr(t.Landing.Y)
		d.ProjectedDistance = f64ptr(t.ProjectedDistance)
		d.MaxHeight = f64ptr(t.MaxHeight)
	}
	return s.db.InsertDelivery(d)
}

func f64ptr(v float64) *float64 { return &v }
