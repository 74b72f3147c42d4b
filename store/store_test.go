package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr(v float64) *float64 { return &v }

func TestPlayerCRUD(t *testing.T) {
	s := tempStore(t)

	id, err := s.CreatePlayer("Asha", "right")
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero player id")
	}

	if _, err := s.CreatePlayer("Bad", "ambidextrous"); err == nil {
		t.Error("invalid batting hand should be rejected")
	}

	p, err := s.Player(id)
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if p.Name != "Asha" || p.BattingHand != "right" {
		t.Errorf("got %+v", p)
	}

	if _, err := s.CreatePlayer("Ben", "left"); err != nil {
		t.Fatal(err)
	}
	players, err := s.Players()
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(players) != 2 || players[0].Name != "Asha" || players[1].Name != "Ben" {
		t.Errorf("players = %+v, want name order", players)
	}

	deleted, err := s.DeletePlayer(id)
	if err != nil || !deleted {
		t.Fatalf("DeletePlayer = %v, %v", deleted, err)
	}
	if deleted, _ := s.DeletePlayer(id); deleted {
		t.Error("second delete reported a row")
	}
}

func TestSessionFlow(t *testing.T) {
	s := tempStore(t)

	playerID, err := s.CreatePlayer("Asha", "right")
	if err != nil {
		t.Fatal(err)
	}

	date := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sessID, err := s.CreateSession(playerID, date, `{"name":"standard"}`, "net two")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess, err := s.Session(sessID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if !sess.Date.Equal(date) || sess.Notes != "net two" {
		t.Errorf("got %+v", sess)
	}

	// Sessions joins the player name; newest first.
	later := date.Add(24 * time.Hour)
	if _, err := s.CreateSession(playerID, later, "", ""); err != nil {
		t.Fatal(err)
	}
	all, err := s.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(all) != 2 || !all[0].Date.Equal(later) || all[0].PlayerName != "Asha" {
		t.Errorf("sessions = %+v", all)
	}

	mine, err := s.SessionsByPlayer(playerID)
	if err != nil {
		t.Fatalf("SessionsByPlayer: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("got %d sessions, want 2", len(mine))
	}
}

func seedSession(t *testing.T, s *Store) (playerID, sessionID int64) {
	t.Helper()
	playerID, err := s.CreatePlayer("Asha", "right")
	if err != nil {
		t.Fatal(err)
	}
	sessionID, err = s.CreateSession(playerID, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), "", "")
	if err != nil {
		t.Fatal(err)
	}
	return playerID, sessionID
}

func TestDeliveryRoundTrip(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)

	ts := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)
	full := Delivery{
		SessionID:           sessID,
		Timestamp:           ts,
		BallNumber:          1,
		BowlingSpeed:        ptr(122.5),
		ExitSpeed:           ptr(95.2),
		HorizontalAngle:     ptr(25),
		VerticalAngle:       ptr(12),
		LandingX:            ptr(-18.4),
		LandingY:            ptr(39.5),
		ProjectedDistance:   ptr(61.0),
		MaxHeight:           ptr(4.2),
		Outcome:             "2",
		Runs:                2,
		FielderPosition:     "cover",
		IsAerial:            true,
		DetectionConfidence: ptr(0.93),
	}
	if _, err := s.InsertDelivery(full); err != nil {
		t.Fatalf("InsertDelivery: %v", err)
	}

	// Minimal record: only what the engine always produces.
	minimal := Delivery{
		SessionID:  sessID,
		Timestamp:  ts.Add(30 * time.Second),
		BallNumber: 2,
		Outcome:    "dot",
	}
	if _, err := s.InsertDelivery(minimal); err != nil {
		t.Fatalf("InsertDelivery minimal: %v", err)
	}

	got, err := s.Deliveries(sessID)
	if err != nil {
		t.Fatalf("Deliveries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(got))
	}

	d := got[0]
	if d.Outcome != "2" || d.Runs != 2 || !d.IsAerial || d.IsBoundary {
		t.Errorf("delivery = %+v", d)
	}
	if d.ExitSpeed == nil || *d.ExitSpeed != 95.2 {
		t.Errorf("ExitSpeed = %v", d.ExitSpeed)
	}
	if d.FielderPosition != "cover" {
		t.Errorf("FielderPosition = %q", d.FielderPosition)
	}
	if !d.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", d.Timestamp, ts)
	}

	m := got[1]
	if m.BowlingSpeed != nil || m.LandingX != nil || m.DetectionConfidence != nil {
		t.Errorf("minimal delivery has non-nil optionals: %+v", m)
	}
	if m.FielderPosition != "" {
		t.Errorf("FielderPosition = %q, want empty", m.FielderPosition)
	}
}

func TestInsertDelivery_BadConfidence(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)

	d := Delivery{
		SessionID:           sessID,
		Timestamp:           time.Now(),
		BallNumber:          1,
		Outcome:             "dot",
		DetectionConfidence: ptr(1.5),
	}
	if _, err := s.InsertDelivery(d); err == nil {
		t.Error("confidence above 1 should be rejected")
	}
}

func seedDeliveries(t *testing.T, s *Store, sessID int64) {
	t.Helper()
	ts := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)
	rows := []struct {
		outcome  string
		runs     int
		hAngle   float64
		exit     float64
		bowling  float64
		boundary bool
	}{
		{"dot", 0, 0, 60, 110, false},
		{"1", 1, 25, 72, 115, false},
		{"4", 4, 35, 110, 120, true},
		{"6", 6, -20, 135, 118, true},
		{"caught", 0, -45, 88, 122, false},
		{"2", 2, 65, 77, 119, false},
		{"dot", 0, 80, 40, 112, false},
	}
	for i, r := range rows {
		d := Delivery{
			SessionID:       sessID,
			Timestamp:       ts.Add(time.Duration(i) * 30 * time.Second),
			BallNumber:      i + 1,
			Outcome:         r.outcome,
			Runs:            r.runs,
			HorizontalAngle: ptr(r.hAngle),
			ExitSpeed:       ptr(r.exit),
			BowlingSpeed:    ptr(r.bowling),
			IsBoundary:      r.boundary,
		}
		if _, err := s.InsertDelivery(d); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSessionSummary(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)
	seedDeliveries(t, s, sessID)

	sum, err := s.SessionSummary(sessID)
	if err != nil {
		t.Fatalf("SessionSummary: %v", err)
	}
	if sum.TotalRuns != 13 || sum.BallsFaced != 7 {
		t.Errorf("runs/balls = %d/%d, want 13/7", sum.TotalRuns, sum.BallsFaced)
	}
	if sum.Fours != 1 || sum.Sixes != 1 || sum.Dismissals != 1 {
		t.Errorf("fours/sixes/dismissals = %d/%d/%d", sum.Fours, sum.Sixes, sum.Dismissals)
	}
	// 13 runs off 7 balls = 185.71.
	if math.Abs(sum.StrikeRate-185.71) > 0.01 {
		t.Errorf("StrikeRate = %v, want 185.71", sum.StrikeRate)
	}
}

func TestZoneBreakdowns(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)
	seedDeliveries(t, s, sessID)

	zones, err := s.ZoneBreakdowns(sessID)
	if err != nil {
		t.Fatalf("ZoneBreakdowns: %v", err)
	}

	byName := map[string]ZoneBreakdown{}
	for _, z := range zones {
		byName[z.Zone] = z
	}

	// 0 degrees is straight; 25 and 35 are cover; -20 midwicket; -45 square
	// leg; 65 point; 80 third man.
	if z := byName["cover"]; z.ShotCount != 2 || z.TotalRuns != 5 || z.Boundaries != 1 {
		t.Errorf("cover = %+v", z)
	}
	if z := byName["midwicket"]; z.ShotCount != 1 || z.TotalRuns != 6 || z.Boundaries != 1 {
		t.Errorf("midwicket = %+v", z)
	}
	if z := byName["straight"]; z.ShotCount != 1 || z.TotalRuns != 0 {
		t.Errorf("straight = %+v", z)
	}

	// Zones come back in wagon wheel order, leg side first.
	for i := 1; i < len(zones); i++ {
		order := map[string]int{
			"fine_leg": 1, "square_leg": 2, "midwicket": 3, "straight": 4,
			"cover": 5, "point": 6, "third_man": 7,
		}
		if order[zones[i-1].Zone] >= order[zones[i].Zone] {
			t.Errorf("zones out of order: %s before %s", zones[i-1].Zone, zones[i].Zone)
		}
	}
}

func TestOverBreakdowns(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)
	seedDeliveries(t, s, sessID)

	overs, err := s.OverBreakdowns(sessID)
	if err != nil {
		t.Fatalf("OverBreakdowns: %v", err)
	}
	if len(overs) != 2 {
		t.Fatalf("got %d overs, want 2 for 7 balls", len(overs))
	}
	if o := overs[0]; o.Over != 1 || o.Balls != 6 || o.Runs != 13 || o.Dots != 1 || o.Boundaries != 2 {
		t.Errorf("over 1 = %+v", o)
	}
	if o := overs[1]; o.Over != 2 || o.Balls != 1 || o.Runs != 0 || o.Dots != 1 {
		t.Errorf("over 2 = %+v", o)
	}
}

func TestPlayerSessionSummaries(t *testing.T) {
	s := tempStore(t)
	playerID, sessID := seedSession(t, s)
	seedDeliveries(t, s, sessID)

	// A second, empty session: summaries still include it with zero counts.
	if _, err := s.CreateSession(playerID, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), "", "rained off"); err != nil {
		t.Fatal(err)
	}

	sums, err := s.PlayerSessionSummaries(playerID)
	if err != nil {
		t.Fatalf("PlayerSessionSummaries: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}

	// Newest first: the rained-off session leads.
	if sums[0].BallsFaced != 0 || sums[0].Notes != "rained off" {
		t.Errorf("newest = %+v", sums[0])
	}
	if sums[0].AvgExitSpeed != nil {
		t.Errorf("empty session AvgExitSpeed = %v, want nil", *sums[0].AvgExitSpeed)
	}

	got := sums[1]
	if got.TotalRuns != 13 || got.BallsFaced != 7 || got.Sixes != 1 {
		t.Errorf("summary = %+v", got)
	}
	if got.MaxExitSpeed == nil || *got.MaxExitSpeed != 135 {
		t.Errorf("MaxExitSpeed = %v, want 135", got.MaxExitSpeed)
	}
}

func TestSpeedStats(t *testing.T) {
	s := tempStore(t)
	_, sessID := seedSession(t, s)

	// No deliveries yet: every aggregate is nil.
	empty, err := s.SpeedStats(sessID)
	if err != nil {
		t.Fatalf("SpeedStats: %v", err)
	}
	if empty.AvgExitSpeed != nil || empty.MaxBowlingSpeed != nil {
		t.Errorf("empty stats = %+v", empty)
	}

	seedDeliveries(t, s, sessID)
	stats, err := s.SpeedStats(sessID)
	if err != nil {
		t.Fatalf("SpeedStats: %v", err)
	}
	if stats.MaxExitSpeed == nil || *stats.MaxExitSpeed != 135 {
		t.Errorf("MaxExitSpeed = %v, want 135", stats.MaxExitSpeed)
	}
	if stats.AvgBowlingSpeed == nil || *stats.AvgBowlingSpeed != 116.6 {
		t.Errorf("AvgBowlingSpeed = %v, want 116.6", stats.AvgBowlingSpeed)
	}
}

func TestCascadeDelete(t *testing.T) {
	s := tempStore(t)
	playerID, sessID := seedSession(t, s)
	seedDeliveries(t, s, sessID)

	if deleted, err := s.DeletePlayer(playerID); err != nil || !deleted {
		t.Fatalf("DeletePlayer = %v, %v", deleted, err)
	}

	deliveries, err := s.Deliveries(sessID)
	if err != nil {
		t.Fatalf("Deliveries: %v", err)
	}
	if len(deliveries) != 0 {
		t.Errorf("deliveries survived the cascade: %d", len(deliveries))
	}
	if _, err := s.Session(sessID); err == nil {
		t.Error("session survived the cascade")
	}
}
