package engine

import (
	"fmt"
	"log"
	"math"
	"sort"
)

// Simulator resolves delivery outcomes. It holds no per-delivery state: each
// SimulateDelivery call is a pure function of its input plus the injected
// random source, so concurrent use only requires per-goroutine (or
// externally synchronized) sources.
type Simulator struct {
	Params Params
	Rand   RandomSource
	Logger *log.Logger
}

// NewSimulator builds a Simulator with the given tuning and random source.
// A nil rng falls back to the crypto-backed default; a nil logger falls back
// to the standard logger.
func NewSimulator(params Params, rng RandomSource, logger *log.Logger) *Simulator {
	if rng == nil {
		rng = DefaultSource()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{Params: params, Rand: rng, Logger: logger}
}

// SimulateDelivery resolves one batted delivery: trajectory, then the
// ordered outcome cascade of six, catch chances, four, ground fielding,
// nearest-fielder fallback. The first terminal stage wins. It always
// returns a result; degenerate geometry and empty fields take default
// branches instead of failing.
func (s *Simulator) SimulateDelivery(in Input) Result {
	in = s.sanitize(in)
	p := s.Params

	traj := ComputeTrajectory(in.ExitSpeedKmh, in.HorizontalAngle, in.VerticalAngle, p)

	isAerial := traj.MaxHeight > p.AerialHeightThreshold || in.VerticalAngle > p.AerialAngleThreshold
	shotName := ShotName(in.HorizontalAngle, isAerial)

	for _, stage := range []func(Trajectory, Input, bool, string) *Result{
		s.checkSix,
		s.evaluateCatches,
		s.checkFour,
		s.evaluateGroundFielding,
	} {
		if res := stage(traj, in, isAerial, shotName); res != nil {
			res.Trajectory = &traj
			return *res
		}
	}

	res := s.fallbackRetrieve(traj, in, isAerial, shotName)
	res.Trajectory = &traj
	return res
}

// sanitize clamps or defaults malformed numeric input so the physics
// formulas only ever see well-formed values. Problems are logged, never
// returned, per the no-error-surface contract.
func (s *Simulator) sanitize(in Input) Input {
	p := s.Params

	if !isFinite(in.ExitSpeedKmh) {
		s.Logger.Printf("engine: invalid exit speed %v, using 0", in.ExitSpeedKmh)
		in.ExitSpeedKmh = 0
	} else if in.ExitSpeedKmh < 0 || in.ExitSpeedKmh > p.MaxExitSpeed {
		s.Logger.Printf("engine: exit speed %.1f out of range, clamping", in.ExitSpeedKmh)
		in.ExitSpeedKmh = clamp(in.ExitSpeedKmh, 0, p.MaxExitSpeed)
	}

	if !isFinite(in.HorizontalAngle) {
		s.Logger.Printf("engine: invalid horizontal angle %v, using 0", in.HorizontalAngle)
		in.HorizontalAngle = 0
	} else {
		in.HorizontalAngle = NormalizeAngle(in.HorizontalAngle)
	}

	if !isFinite(in.VerticalAngle) {
		s.Logger.Printf("engine: invalid vertical angle %v, using 0", in.VerticalAngle)
		in.VerticalAngle = 0
	} else if in.VerticalAngle < 0 || in.VerticalAngle > p.MaxVerticalAngle {
		s.Logger.Printf("engine: vertical angle %.1f out of range, clamping", in.VerticalAngle)
		in.VerticalAngle = clamp(in.VerticalAngle, 0, p.MaxVerticalAngle)
	}

	if !isFinite(in.BoundaryDist) || in.BoundaryDist <= 0 {
		s.Logger.Printf("engine: invalid boundary distance %v, using %.0f", in.BoundaryDist, p.DefaultBoundary)
		in.BoundaryDist = p.DefaultBoundary
	}

	if !in.Difficulty.Valid() {
		s.Logger.Printf("engine: unknown difficulty %q, using medium", in.Difficulty)
		in.Difficulty = DifficultyMedium
	}

	field := make([]Fielder, 0, len(in.Field))
	for i, f := range in.Field {
		if !isFinite(f.X) || !isFinite(f.Y) {
			s.Logger.Printf("engine: fielder %d has invalid coordinates, skipping", i)
			continue
		}
		if f.Name == "" {
			f.Name = fmt.Sprintf("fielder_%d", i)
		}
		field = append(field, f)
	}
	in.Field = field

	return in
}

// checkSix: the ball clears the rope on the full. Fielders cannot prevent a
// six, so this is checked before any catching chance.
func (s *Simulator) checkSix(traj Trajectory, in Input, isAerial bool, shotName string) *Result {
	p := s.Params
	if traj.ProjectedDistance < in.BoundaryDist {
		return nil
	}

	heightAtBoundary := HeightAtDistance(in.BoundaryDist, traj, in.VerticalAngle, p)
	if !isAerial || heightAtBoundary <= p.SixClearanceHeight {
		return nil
	}

	bp := BoundaryIntersection(traj.Landing, in.BoundaryDist, p)
	return &Result{
		Outcome:     OutcomeSix,
		Runs:        6,
		IsBoundary:  true,
		IsAerial:    true,
		End:         bp,
		Description: fmt.Sprintf("%s for six!", capitalize(shotName)),
	}
}

type catchChance struct {
	fielder       Fielder
	analysis      CatchAnalysis
	interceptDist float64
}

// evaluateCatches gathers every fielder with a reachable interception on
// the aerial arc and gives the closest chance (by interception distance
// from the batter) the first roll. A drop is terminal: it does not pass the
// chance on to deeper fielders.
func (s *Simulator) evaluateCatches(traj Trajectory, in Input, isAerial bool, shotName string) *Result {
	p := s.Params
	if !isAerial || traj.MaxHeight < p.CatchHeightMin {
		return nil
	}

	var chances []catchChance
	origin := Point2D{}
	for _, f := range in.Field {
		if !InBallPath(f, traj.Landing, p) {
			continue
		}
		if Norm(Point2D{X: f.X, Y: f.Y}) > traj.ProjectedDistance+p.CatchExtendedRange {
			continue
		}

		hit := PointToSegment(Point2D{X: f.X, Y: f.Y}, origin, traj.Landing)
		if hit.T < p.PathStartT {
			continue
		}

		analysis := AnalyzeCatch(f, traj, hit.Dist, p)
		if analysis.CanCatch {
			chances = append(chances, catchChance{
				fielder:       f,
				analysis:      analysis,
				interceptDist: Norm(hit.Closest),
			})
		}
	}

	sort.Slice(chances, func(i, j int) bool {
		return chances[i].interceptDist < chances[j].interceptDist
	})

	for _, c := range chances {
		analysis := c.analysis
		if s.rollCatch(analysis, in.Difficulty) {
			catchX, catchY, _ := traj.PositionAt(analysis.TimeToIntercept, p)

			desc := "Caught"
			switch analysis.CatchType {
			case CatchSpectacular:
				desc = "Spectacular catch"
			case CatchHard:
				desc = "Great catch"
			}
			if analysis.MovementRequired > p.StaticRange+1 {
				desc += fmt.Sprintf(" (running %.1fm)", analysis.MovementRequired)
			} else if analysis.MovementRequired > p.StaticRange {
				desc += " (diving)"
			}

			return &Result{
				Outcome:       OutcomeCaught,
				Runs:          0,
				IsAerial:      true,
				Fielder:       c.fielder.Name,
				FielderPos:    &Point2D{X: c.fielder.X, Y: c.fielder.Y},
				End:           Point2D{X: catchX, Y: catchY},
				Description:   fmt.Sprintf("%s at %s!", desc, c.fielder.Name),
				CatchAnalysis: &analysis,
			}
		}

		// Dropped. A shot already carrying past the rope still goes for
		// four; otherwise runs come from the legacy distance heuristic.
		if traj.ProjectedDistance >= in.BoundaryDist {
			bp := BoundaryIntersection(traj.Landing, in.BoundaryDist, p)
			return &Result{
				Outcome:       OutcomeFour,
				Runs:          4,
				IsBoundary:    true,
				IsAerial:      true,
				Fielder:       c.fielder.Name,
				FielderPos:    &Point2D{X: c.fielder.X, Y: c.fielder.Y},
				End:           bp,
				Description:   fmt.Sprintf("%s, dropped at %s, four!", capitalize(shotName), c.fielder.Name),
				CatchAnalysis: &analysis,
			}
		}

		runs := s.droppedRuns(traj.ProjectedDistance)
		return &Result{
			Outcome:       OutcomeDropped,
			Runs:          runs,
			IsAerial:      true,
			Fielder:       c.fielder.Name,
			FielderPos:    &Point2D{X: c.fielder.X, Y: c.fielder.Y},
			End:           traj.Landing,
			Description:   fmt.Sprintf("%s, dropped at %s, runs %d", capitalize(shotName), c.fielder.Name, runs),
			CatchAnalysis: &analysis,
		}
	}

	return nil
}

// rollCatch decides caught vs dropped. Base probability falls linearly with
// difficulty; the level modifier shifts it, capped below certainty.
func (s *Simulator) rollCatch(analysis CatchAnalysis, d Difficulty) bool {
	p := s.Params
	base := 0.98 - 0.52*analysis.Difficulty
	prob := math.Min(p.CatchProbCap, base*d.CatchModifier())
	return s.Rand.Float64() < prob
}

// droppedRuns is the historical fixed-probability heuristic for runs off a
// dropped catch. It predates the time-based model and is kept for
// compatibility.
func (s *Simulator) droppedRuns(projected float64) int {
	p := s.Params
	roll := func(opts [3]int) int {
		i := int(s.Rand.Float64() * 3)
		if i > 2 {
			i = 2
		}
		return opts[i]
	}
	switch {
	case projected >= p.MidFieldRadius:
		return roll([3]int{2, 2, 3})
	case projected >= p.InnerRingRadius:
		return roll([3]int{1, 1, 2})
	default:
		return 1
	}
}

// checkFour: the ball reaches the rope, along the ground or after bouncing.
func (s *Simulator) checkFour(traj Trajectory, in Input, isAerial bool, shotName string) *Result {
	if traj.ProjectedDistance < in.BoundaryDist {
		return nil
	}

	bp := BoundaryIntersection(traj.Landing, in.BoundaryDist, s.Params)
	return &Result{
		Outcome:     OutcomeFour,
		Runs:        4,
		IsBoundary:  true,
		IsAerial:    isAerial,
		End:         bp,
		Description: fmt.Sprintf("%s to the boundary for four!", capitalize(shotName)),
	}
}

type groundChance struct {
	fielder       Fielder
	lateral       float64
	interceptDist float64
}

// evaluateGroundFielding finds fielders whose line to the rolling ball is
// within reach (static ground range plus whatever they can run while the
// ball travels) and rolls the outcome table for the closest line.
func (s *Simulator) evaluateGroundFielding(traj Trajectory, in Input, isAerial bool, shotName string) *Result {
	p := s.Params

	var chances []groundChance
	origin := Point2D{}
	for _, f := range in.Field {
		if !InBallPath(f, traj.Final, p) {
			continue
		}

		hit := PointToSegment(Point2D{X: f.X, Y: f.Y}, origin, traj.Final)
		if hit.T < p.PathStartT {
			continue
		}

		interceptDist := Norm(hit.Closest)
		travelTime := traj.TravelTimeTo(interceptDist, p)
		available := math.Max(0, travelTime-p.ReactionTime) * p.RunSpeed
		maxReach := p.GroundRange + available

		fielderDist := Norm(Point2D{X: f.X, Y: f.Y})
		if hit.Dist <= maxReach && fielderDist <= traj.ProjectedDistance+maxReach {
			chances = append(chances, groundChance{fielder: f, lateral: hit.Dist, interceptDist: interceptDist})
		}
	}

	sort.Slice(chances, func(i, j int) bool {
		return chances[i].lateral < chances[j].lateral
	})

	if len(chances) == 0 {
		return nil
	}

	c := chances[0]
	fpos := Point2D{X: c.fielder.X, Y: c.fielder.Y}
	fieldingTime := FieldingTime(traj, c.interceptDist, c.lateral, fpos, p)

	probs := in.Difficulty.GroundProbs()
	roll := s.Rand.Float64()
	switch {
	case roll < probs.Stopped:
		runs := RunsFromTime(fieldingTime, p)
		if runs == 0 {
			return &Result{
				Outcome:     OutcomeDot,
				IsAerial:    isAerial,
				Fielder:     c.fielder.Name,
				FielderPos:  &fpos,
				End:         fpos,
				Description: fmt.Sprintf("%s fielded by %s, no run", capitalize(shotName), c.fielder.Name),
			}
		}
		return &Result{
			Outcome:     runsOutcome(runs),
			Runs:        runs,
			IsAerial:    isAerial,
			Fielder:     c.fielder.Name,
			FielderPos:  &fpos,
			End:         fpos,
			Description: fmt.Sprintf("%s, %s fields, %d %s", capitalize(shotName), c.fielder.Name, runs, runWord(runs)),
		}

	case roll < probs.Stopped+probs.MisfieldNoExtra:
		// Fumble but recover: small delay, still at least a single.
		runs := RunsFromTime(fieldingTime+p.FumblePenalty, p)
		if runs < 1 {
			runs = 1
		}
		return &Result{
			Outcome:     OutcomeMisfield,
			Runs:        runs,
			IsAerial:    isAerial,
			Fielder:     c.fielder.Name,
			FielderPos:  &fpos,
			End:         fpos,
			Description: fmt.Sprintf("%s, misfield by %s, %d %s", capitalize(shotName), c.fielder.Name, runs, runWord(runs)),
		}

	default:
		// Ball got past: bigger delay, ends up where the shot finished.
		runs := RunsFromTime(fieldingTime+p.MisfieldPenalty, p)
		return &Result{
			Outcome:     OutcomeMisfield,
			Runs:        runs,
			IsAerial:    isAerial,
			Fielder:     c.fielder.Name,
			FielderPos:  &fpos,
			End:         traj.Final,
			Description: fmt.Sprintf("%s, misfield by %s, %d %s", capitalize(shotName), c.fielder.Name, runs, runWord(runs)),
		}
	}
}

// fallbackRetrieve handles shots with nobody in the path: the nearest
// fielder chases the ball down. An empty field is a configuration problem;
// it is logged and defaults to four so the resolver still terminates.
func (s *Simulator) fallbackRetrieve(traj Trajectory, in Input, isAerial bool, shotName string) Result {
	p := s.Params

	if len(in.Field) == 0 {
		s.Logger.Printf("engine: no fielders in config, defaulting to boundary")
		return Result{
			Outcome:     OutcomeFour,
			Runs:        4,
			IsBoundary:  true,
			IsAerial:    isAerial,
			End:         traj.Final,
			Description: fmt.Sprintf("%s to the boundary", capitalize(shotName)),
		}
	}

	nearest := in.Field[0]
	nearestDist := Distance(Point2D{X: nearest.X, Y: nearest.Y}, traj.Final)
	for _, f := range in.Field[1:] {
		if d := Distance(Point2D{X: f.X, Y: f.Y}, traj.Final); d < nearestDist {
			nearest = f
			nearestDist = d
		}
	}

	ballTime := traj.TravelTimeTo(traj.ProjectedDistance, p)
	covered := math.Max(0, ballTime-p.ReactionTime) * p.RunSpeed
	remaining := math.Max(0, nearestDist-covered)
	chaseTime := remaining / p.RunSpeed

	throwTime := ThrowDistance(traj.Final, p) / p.ThrowSpeed
	total := ballTime + chaseTime + p.PickupTime + throwTime
	runs := RunsFromTime(total, p)

	var desc string
	if runs == 0 {
		desc = fmt.Sprintf("%s, %s collects, no run", capitalize(shotName), nearest.Name)
	} else {
		desc = fmt.Sprintf("%s, %s retrieves, %d %s", capitalize(shotName), nearest.Name, runs, runWord(runs))
	}

	return Result{
		Outcome:     runsOutcome(runs),
		Runs:        runs,
		IsAerial:    isAerial,
		Fielder:     nearest.Name,
		FielderPos:  &Point2D{X: nearest.X, Y: nearest.Y},
		End:         traj.Final,
		Description: desc,
	}
}

func runWord(runs int) string {
	if runs == 1 {
		return "run"
	}
	return "runs"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
