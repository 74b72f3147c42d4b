package store

import (
	"fmt"
	"math"
	"time"
)

// SessionSummary aggregates one session's scoring.
type SessionSummary struct {
	TotalRuns  int     `json:"total_runs"`
	BallsFaced int     `json:"balls_faced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	Dismissals int     `json:"dismissals"`
	StrikeRate float64 `json:"strike_rate"`
}

// ZoneBreakdown is scoring in one angular zone of the wagon wheel.
type ZoneBreakdown struct {
	Zone       string `json:"zone"`
	TotalRuns  int    `json:"total_runs"`
	ShotCount  int    `json:"shot_count"`
	Boundaries int    `json:"boundaries"`
}

// OverBreakdown is scoring in one over, six balls at a time.
type OverBreakdown struct {
	Over       int `json:"over_number"`
	Runs       int `json:"runs"`
	Balls      int `json:"balls"`
	Dots       int `json:"dots"`
	Boundaries int `json:"boundaries"`
}

// PlayerSessionSummary is one row of a player's progress view.
type PlayerSessionSummary struct {
	SessionID    int64     `json:"session_id"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes,omitempty"`
	TotalRuns    int       `json:"total_runs"`
	BallsFaced   int       `json:"balls_faced"`
	Fours        int       `json:"fours"`
	Sixes        int       `json:"sixes"`
	Dismissals   int       `json:"dismissals"`
	StrikeRate   float64   `json:"strike_rate"`
	AvgExitSpeed *float64  `json:"avg_exit_speed,omitempty"`
	MaxExitSpeed *float64  `json:"max_exit_speed,omitempty"`
}

// SpeedStats aggregates a session's speed measurements. Fields are nil when
// the session has no measured deliveries.
type SpeedStats struct {
	AvgExitSpeed    *float64 `json:"avg_exit_speed"`
	MaxExitSpeed    *float64 `json:"max_exit_speed"`
	AvgBowlingSpeed *float64 `json:"avg_bowling_speed"`
	MaxBowlingSpeed *float64 `json:"max_bowling_speed"`
}

// SessionSummary returns summary statistics for a session.
func (s *Store) SessionSummary(sessionID int64) (SessionSummary, error) {
	var sum SessionSummary
	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(runs), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = '4' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = '6' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'caught' THEN 1 ELSE 0 END), 0)
		FROM deliveries
		WHERE session_id = ?`, sessionID,
	).Scan(&sum.TotalRuns, &sum.BallsFaced, &sum.Fours, &sum.Sixes, &sum.Dismissals)
	if err != nil {
		return SessionSummary{}, fmt.Errorf("session %d summary: %w", sessionID, err)
	}
	sum.StrikeRate = strikeRate(sum.TotalRuns, sum.BallsFaced)
	return sum, nil
}

// ZoneBreakdowns buckets a session's shots by horizontal angle into the
// seven wagon wheel zones, fine leg around to third man.
func (s *Store) ZoneBreakdowns(sessionID int64) ([]ZoneBreakdown, error) {
	rows, err := s.db.Query(`
		SELECT
			CASE
				WHEN horizontal_angle < -60 THEN 'fine_leg'
				WHEN horizontal_angle < -30 THEN 'square_leg'
				WHEN horizontal_angle < -10 THEN 'midwicket'
				WHEN horizontal_angle <= 10 THEN 'straight'
				WHEN horizontal_angle <= 40 THEN 'cover'
				WHEN horizontal_angle <= 70 THEN 'point'
				ELSE 'third_man'
			END AS zone,
			COALESCE(SUM(runs), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_boundary = 1 THEN 1 ELSE 0 END), 0)
		FROM deliveries
		WHERE session_id = ? AND horizontal_angle IS NOT NULL
		GROUP BY zone
		ORDER BY
			CASE zone
				WHEN 'fine_leg' THEN 1
				WHEN 'square_leg' THEN 2
				WHEN 'midwicket' THEN 3
				WHEN 'straight' THEN 4
				WHEN 'cover' THEN 5
				WHEN 'point' THEN 6
				WHEN 'third_man' THEN 7
			END`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("zone breakdown: %w", err)
	}
	defer rows.Close()

	var zones []ZoneBreakdown
	for rows.Next() {
		var z ZoneBreakdown
		if err := rows.Scan(&z.Zone, &z.TotalRuns, &z.ShotCount, &z.Boundaries); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// OverBreakdowns groups a session's deliveries into overs of six balls.
func (s *Store) OverBreakdowns(sessionID int64) ([]OverBreakdown, error) {
	rows, err := s.db.Query(`
		SELECT
			((ball_number - 1) / 6) + 1 AS over_number,
			COALESCE(SUM(runs), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'dot' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_boundary = 1 THEN 1 ELSE 0 END), 0)
		FROM deliveries
		WHERE session_id = ?
		GROUP BY over_number
		ORDER BY over_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("over breakdown: %w", err)
	}
	defer rows.Close()

	var overs []OverBreakdown
	for rows.Next() {
		var o OverBreakdown
		if err := rows.Scan(&o.Over, &o.Runs, &o.Balls, &o.Dots, &o.Boundaries); err != nil {
			return nil, fmt.Errorf("scan over: %w", err)
		}
		overs = append(overs, o)
	}
	return overs, rows.Err()
}

// PlayerSessionSummaries returns one summary row per session for a player,
// newest first, for the progress view.
func (s *Store) PlayerSessionSummaries(playerID int64) ([]PlayerSessionSummary, error) {
	rows, err := s.db.Query(`
		SELECT
			s.id, s.date, COALESCE(s.notes, ''),
			COALESCE(SUM(d.runs), 0),
			COUNT(d.id),
			COALESCE(SUM(CASE WHEN d.outcome = '4' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN d.outcome = '6' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN d.outcome = 'caught' THEN 1 ELSE 0 END), 0),
			ROUND(AVG(d.exit_speed), 1),
			MAX(d.exit_speed)
		FROM sessions s
		LEFT JOIN deliveries d ON s.id = d.session_id
		WHERE s.player_id = ?
		GROUP BY s.id
		ORDER BY s.date DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("player %d summaries: %w", playerID, err)
	}
	defer rows.Close()

	var summaries []PlayerSessionSummary
	for rows.Next() {
		var (
			sum  PlayerSessionSummary
			date string
		)
		err := rows.Scan(
			&sum.SessionID, &date, &sum.Notes,
			&sum.TotalRuns, &sum.BallsFaced, &sum.Fours, &sum.Sixes, &sum.Dismissals,
			&sum.AvgExitSpeed, &sum.MaxExitSpeed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("session %d date: %w", sum.SessionID, err)
		}
		sum.StrikeRate = strikeRate(sum.TotalRuns, sum.BallsFaced)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// SpeedStats returns a session's speed aggregates.
func (s *Store) SpeedStats(sessionID int64) (SpeedStats, error) {
	var stats SpeedStats
	err := s.db.QueryRow(`
		SELECT
			ROUND(AVG(exit_speed), 1),
			MAX(exit_speed),
			ROUND(AVG(bowling_speed), 1),
			MAX(bowling_speed)
		FROM deliveries
		WHERE session_id = ?`, sessionID,
	).Scan(&stats.AvgExitSpeed, &stats.MaxExitSpeed, &stats.AvgBowlingSpeed, &stats.MaxBowlingSpeed)
	if err != nil {
		return SpeedStats{}, fmt.Errorf("session %d speeds: %w", sessionID, err)
	}
	return stats, nil
}

func strikeRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return math.Round(float64(runs)/float64(balls)*100*100) / 100
}
