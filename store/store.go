// Package store persists players, practice sessions and delivery results in
// SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	batting_hand TEXT CHECK(batting_hand IN ('right', 'left'))
);

CREATE TABLE IF NOT EXISTS sessions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	player_id         INTEGER NOT NULL,
	date              TEXT NOT NULL,
	field_config_json TEXT,
	notes             TEXT,
	FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS deliveries (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id            INTEGER NOT NULL,
	timestamp             TEXT NOT NULL,
	ball_number           INTEGER NOT NULL,
	bowling_speed         REAL,
	exit_speed            REAL,
	horizontal_angle      REAL,
	vertical_angle        REAL,
	landing_x             REAL,
	landing_y             REAL,
	projected_distance    REAL,
	max_height            REAL,
	outcome               TEXT CHECK(outcome IN ('dot', '1', '2', '3', '4', '6', 'caught', 'dropped', 'misfield')),
	runs                  INTEGER,
	fielder_position      TEXT,
	is_boundary           INTEGER CHECK(is_boundary IN (0, 1)),
	is_aerial             INTEGER CHECK(is_aerial IN (0, 1)),
	radar_frames_captured INTEGER,
	detection_confidence  REAL CHECK(detection_confidence >= 0 AND detection_confidence <= 1),
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);
`

// Store manages the practice database.
type Store struct {
	db *sql.DB
}

// New opens a SQLite database and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Player is one batter in the database.
type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	BattingHand string `json:"batting_hand"`
}

// Session is one practice session for a player.
type Session struct {
	ID          int64     `json:"id"`
	PlayerID    int64     `json:"player_id"`
	Date        time.Time `json:"date"`
	FieldConfig string    `json:"field_config,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	PlayerName  string    `json:"player_name,omitempty"`
}

// CreatePlayer inserts a player and returns the new ID. Batting hand must be
// "right" or "left".
func (s *Store) CreatePlayer(name, battingHand string) (int64, error) {
	if battingHand != "right" && battingHand != "left" {
		return 0, fmt.Errorf("batting hand %q, want right or left", battingHand)
	}
	res, err := s.db.Exec(
		`INSERT INTO players (name, batting_hand) VALUES (?, ?)`,
		name, battingHand,
	)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("player id: %w", err)
	}
	return id, nil
}

// Players lists all players ordered by name.
func (s *Store) Players() ([]Player, error) {
	rows, err := s.db.Query(`SELECT id, name, batting_hand FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.BattingHand); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Player fetches one player by ID. sql.ErrNoRows is returned when absent.
func (s *Store) Player(id int64) (Player, error) {
	var p Player
	err := s.db.QueryRow(
		`SELECT id, name, batting_hand FROM players WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.BattingHand)
	if err != nil {
		return Player{}, fmt.Errorf("get player %d: %w", id, err)
	}
	return p, nil
}

// DeletePlayer removes a player; sessions and deliveries cascade. It reports
// whether a row was deleted.
func (s *Store) DeletePlayer(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete player %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateSession inserts a session and returns the new ID. fieldConfig is an
// optional JSON snapshot of the layout used.
func (s *Store) CreateSession(playerID int64, date time.Time, fieldConfig, notes string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (player_id, date, field_config_json, notes) VALUES (?, ?, ?, ?)`,
		playerID, date.UTC().Format(time.RFC3339), fieldConfig, notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// Sessions lists every session with the player name joined in, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.player_id, s.date, s.field_config_json, s.notes, p.name
		FROM sessions s
		JOIN players p ON p.id = s.player_id
		ORDER BY s.date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows, true)
}

// SessionsByPlayer lists one player's sessions, newest first.
func (s *Store) SessionsByPlayer(playerID int64) ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT id, player_id, date, field_config_json, notes
		FROM sessions WHERE player_id = ? ORDER BY date DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query sessions for player %d: %w", playerID, err)
	}
	defer rows.Close()
	return scanSessions(rows, false)
}

// Session fetches one session by ID.
func (s *Store) Session(id int64) (Session, error) {
	var (
		sess        Session
		date        string
		fieldConfig sql.NullString
		notes       sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT id, player_id, date, field_config_json, notes FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.PlayerID, &date, &fieldConfig, &notes)
	if err != nil {
		return Session{}, fmt.Errorf("get session %d: %w", id, err)
	}
	sess.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return Session{}, fmt.Errorf("session %d date: %w", id, err)
	}
	sess.FieldConfig = fieldConfig.String
	sess.Notes = notes.String
	return sess, nil
}

// DeleteSession removes a session and its deliveries. It reports whether a
// row was deleted.
func (s *Store) DeleteSession(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanSessions(rows *sql.Rows, withPlayerName bool) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var (
			sess        Session
			date        string
			fieldConfig sql.NullString
			notes       sql.NullString
		)
		dest := []any{&sess.ID, &sess.PlayerID, &date, &fieldConfig, &notes}
		if withPlayerName {
			dest = append(dest, &sess.PlayerName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("session %d date: %w", sess.ID, err)
		}
		sess.Date = parsed
		sess.FieldConfig = fieldConfig.String
		sess.Notes = notes.String
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
