package engine

// Point2D represents a 2D position on the field plan, in metres.
// The batter stands at the origin, +Y points down the pitch toward the
// bowler's end, +X points to the leg side for a right-handed batter.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector2D represents a 2D direction or velocity.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Fielder is a read-only snapshot of one fielder's position. The name is an
// opaque label assigned by the caller (usually a zone name like "cover") and
// is only echoed back in results.
type Fielder struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Name string  `json:"name" yaml:"name"`
}

// Trajectory describes one delivery's flight and roll, computed once per
// simulation. ProjectedDistance is always AerialDistance + RollingDistance.
type Trajectory struct {
	HorizontalSpeed   float64  `json:"horizontal_speed"`   // m/s along the ground
	VerticalSpeed     float64  `json:"vertical_speed"`     // m/s upward at launch
	LandingSpeed      float64  `json:"landing_speed"`      // m/s ground speed after the bounce
	TimeOfFlight      float64  `json:"time_of_flight"`     // seconds airborne
	MaxHeight         float64  `json:"max_height"`         // metres at the apex
	AerialDistance    float64  `json:"aerial_distance"`    // metres covered in the air
	RollingDistance   float64  `json:"rolling_distance"`   // metres covered after landing
	ProjectedDistance float64  `json:"projected_distance"` // metres, aerial + rolling
	Landing           Point2D  `json:"landing"`            // end of the aerial phase
	Final             Point2D  `json:"final"`              // end of the roll
	Dir               Vector2D `json:"dir"`                // unit horizontal direction
}

// CatchType classifies how demanding a catch is.
type CatchType string

const (
	CatchRegulation  CatchType = "regulation"
	CatchHard        CatchType = "hard"
	CatchSpectacular CatchType = "spectacular"
)

// CatchAnalysis is the detailed difficulty breakdown for one (fielder,
// trajectory) pair. Produced fresh per pair, never cached.
type CatchAnalysis struct {
	CanCatch           bool      `json:"can_catch"`
	Difficulty         float64   `json:"difficulty"` // 0 easy .. 1 impossible
	CatchType          CatchType `json:"catch_type,omitempty"`
	ReactionTime       float64   `json:"reaction_time"`         // seconds until intercept
	MovementRequired   float64   `json:"movement_required"`     // metres
	MovementPossible   float64   `json:"movement_possible"`     // metres
	BallSpeedAtFielder float64   `json:"ball_speed_at_fielder"` // km/h
	HeightAtIntercept  float64   `json:"height_at_intercept"`   // metres
	TimeToIntercept    float64   `json:"time_to_intercept"`     // seconds
}

// Outcome is the terminal classification of a delivery.
type Outcome string

const (
	OutcomeDot      Outcome = "dot"
	OutcomeOne      Outcome = "1"
	OutcomeTwo      Outcome = "2"
	OutcomeThree    Outcome = "3"
	OutcomeFour     Outcome = "4"
	OutcomeSix      Outcome = "6"
	OutcomeCaught   Outcome = "caught"
	OutcomeDropped  Outcome = "dropped"
	OutcomeMisfield Outcome = "misfield"
)

// runsOutcome maps a run count to its outcome code.
func runsOutcome(runs int) Outcome {
	switch runs {
	case 0:
		return OutcomeDot
	case 1:
		return OutcomeOne
	case 2:
		return OutcomeTwo
	case 3:
		return OutcomeThree
	case 4:
		return OutcomeFour
	default:
		return OutcomeSix
	}
}

// Result is the single externally visible outcome of a delivery.
type Result struct {
	Outcome       Outcome        `json:"outcome"`
	Runs          int            `json:"runs"`
	IsBoundary    bool           `json:"is_boundary"`
	IsAerial      bool           `json:"is_aerial"`
	Fielder       string         `json:"fielder_involved,omitempty"`
	FielderPos    *Point2D       `json:"fielder_position,omitempty"`
	End           Point2D        `json:"end_position"`
	Description   string         `json:"description"`
	CatchAnalysis *CatchAnalysis `json:"catch_analysis,omitempty"`
	Trajectory    *Trajectory    `json:"trajectory,omitempty"`
}

// Difficulty selects the fielding skill level for probabilistic rolls.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GroundProbs is the fixed outcome table for a ground fielding attempt.
// The three probabilities sum to 1.
type GroundProbs struct {
	Stopped         float64
	MisfieldNoExtra float64
	MisfieldExtra   float64
}

// GroundProbs returns the ground fielding outcome table for this level.
func (d Difficulty) GroundProbs() GroundProbs {
	switch d {
	case DifficultyEasy:
		return GroundProbs{Stopped: 0.70, MisfieldNoExtra: 0.20, MisfieldExtra: 0.10}
	case DifficultyHard:
		return GroundProbs{Stopped: 0.95, MisfieldNoExtra: 0.04, MisfieldExtra: 0.01}
	default:
		return GroundProbs{Stopped: 0.85, MisfieldNoExtra: 0.10, MisfieldExtra: 0.05}
	}
}

// CatchModifier scales the base catch probability for this level.
func (d Difficulty) CatchModifier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.85
	case DifficultyHard:
		return 1.10
	default:
		return 1.0
	}
}

// Valid reports whether d names a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Input is everything a single delivery resolution needs. Angles are in
// degrees: horizontal 0 is straight down the pitch, positive toward the off
// side; vertical is elevation above the horizontal.
type Input struct {
	ExitSpeedKmh    float64    `json:"exit_speed"`
	HorizontalAngle float64    `json:"horizontal_angle"`
	VerticalAngle   float64    `json:"vertical_angle"`
	BoundaryDist    float64    `json:"boundary_distance"`
	Difficulty      Difficulty `json:"difficulty"`
	Field           []Fielder  `json:"field"`
}
