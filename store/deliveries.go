package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// Delivery is one recorded ball. Pointer fields map to nullable columns;
// tracking hardware does not always produce every measurement.
type Delivery struct {
	ID                  int64     `json:"id"`
	SessionID           int64     `json:"session_id"`
	Timestamp           time.Time `json:"timestamp"`
	BallNumber          int       `json:"ball_number"`
	BowlingSpeed        *float64  `json:"bowling_speed,omitempty"`
	ExitSpeed           *float64  `json:"exit_speed,omitempty"`
	HorizontalAngle     *float64  `json:"horizontal_angle,omitempty"`
	VerticalAngle       *float64  `json:"vertical_angle,omitempty"`
	LandingX            *float64  `json:"landing_x,omitempty"`
	LandingY            *float64  `json:"landing_y,omitempty"`
	ProjectedDistance   *float64  `json:"projected_distance,omitempty"`
	MaxHeight           *float64  `json:"max_height,omitempty"`
	Outcome             string    `json:"outcome"`
	Runs                int       `json:"runs"`
	FielderPosition     string    `json:"fielder_position,omitempty"`
	IsBoundary          bool      `json:"is_boundary"`
	IsAerial            bool      `json:"is_aerial"`
	RadarFramesCaptured *int      `json:"radar_frames_captured,omitempty"`
	DetectionConfidence *float64  `json:"detection_confidence,omitempty"`
}

// InsertDelivery records one ball and returns the new ID.
func (s *Store) InsertDelivery(d Delivery) (int64, error) {
	if d.DetectionConfidence != nil {
		c := *d.DetectionConfidence
		if math.IsNaN(c) || c < 0 || c > 1 {
			return 0, fmt.Errorf("detection confidence %v out of range", c)
		}
	}

	res, err := s.db.Exec(`
		INSERT INTO deliveries (
			session_id, timestamp, ball_number, bowling_speed, exit_speed,
			horizontal_angle, vertical_angle, landing_x, landing_y,
			projected_distance, max_height, outcome, runs, fielder_position,
			is_boundary, is_aerial, radar_frames_captured, detection_confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.SessionID, d.Timestamp.UTC().Format(time.RFC3339Nano), d.BallNumber,
		d.BowlingSpeed, d.ExitSpeed, d.HorizontalAngle, d.VerticalAngle,
		d.LandingX, d.LandingY, d.ProjectedDistance, d.MaxHeight,
		d.Outcome, d.Runs, nullIfEmpty(d.FielderPosition),
		boolInt(d.IsBoundary), boolInt(d.IsAerial),
		d.RadarFramesCaptured, d.DetectionConfidence,
	)
	if err != nil {
		return 0, fmt.Errorf("insert delivery: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("delivery id: %w", err)
	}
	return id, nil
}

// Deliveries lists a session's deliveries in ball order, the shape the wagon
// wheel view consumes.
func (s *Store) Deliveries(sessionID int64) ([]Delivery, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, timestamp, ball_number, bowling_speed, exit_speed,
		       horizontal_angle, vertical_angle, landing_x, landing_y,
		       projected_distance, max_height, outcome, runs, fielder_position,
		       is_boundary, is_aerial, radar_frames_captured, detection_confidence
		FROM deliveries WHERE session_id = ? ORDER BY ball_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		var (
			d          Delivery
			ts         string
			fielderPos sql.NullString
			isBoundary int
			isAerial   int
		)
		err := rows.Scan(
			&d.ID, &d.SessionID, &ts, &d.BallNumber, &d.BowlingSpeed, &d.ExitSpeed,
			&d.HorizontalAngle, &d.VerticalAngle, &d.LandingX, &d.LandingY,
			&d.ProjectedDistance, &d.MaxHeight, &d.Outcome, &d.Runs, &fielderPos,
			&isBoundary, &isAerial, &d.RadarFramesCaptured, &d.DetectionConfidence,
		)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("delivery %d timestamp: %w", d.ID, err)
		}
		d.FielderPosition = fielderPos.String
		d.IsBoundary = isBoundary == 1
		d.IsAerial = isAerial == 1
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
