package engine

import "math"

// interceptPoint is one reachable sample on the aerial arc.
type interceptPoint struct {
	t       float64 // seconds after bat contact
	lateral float64 // metres the fielder must cover to be there
	height  float64 // ball height at that instant
}

// findCatchableIntercept samples the trajectory's height-vs-time curve and
// returns the interception point the fielder would realistically choose.
//
// The selection is best-for-the-fielder, not earliest: among reachable
// samples inside the optimal height band, the one with the largest spare
// movement margin wins (the most comfortable arrival). If no reachable
// sample is at optimal height, the reachable sample closest to the band is
// used instead. ok is false when no point of the arc can be reached at all.
func findCatchableIntercept(f Fielder, traj Trajectory, p Params) (pt interceptPoint, hadOptimal, ok bool) {
	if traj.TimeOfFlight <= 0 {
		return interceptPoint{}, false, false
	}

	var (
		bestOptimal       interceptPoint
		haveOptimal       bool
		bestOptimalMargin = -1.0
		bestAny           interceptPoint
		haveAny           bool
		bestAnyHeightDist = math.Inf(1)
	)

	// Start just after release so t=0 degeneracies never qualify.
	for t := 0.1; t < traj.TimeOfFlight; t += p.TrajectoryTimeStep {
		x, y, z := traj.PositionAt(t, p)
		if z < p.CatchHeightMin || z > p.CatchHeightMax {
			continue
		}

		dx := x - f.X
		dy := y - f.Y
		lateral := math.Sqrt(dx*dx + dy*dy)

		movementTime := math.Max(0, t-p.ReactionTime)
		possible := movementTime*p.RunSpeed + p.DiveRange
		if lateral > possible {
			continue
		}

		sample := interceptPoint{t: t, lateral: lateral, height: z}

		if z >= p.CatchOptimalMin && z <= p.CatchOptimalMax {
			if margin := possible - lateral; margin > bestOptimalMargin {
				bestOptimal = sample
				bestOptimalMargin = margin
				haveOptimal = true
			}
		}

		var heightDist float64
		switch {
		case z < p.CatchOptimalMin:
			heightDist = p.CatchOptimalMin - z
		case z > p.CatchOptimalMax:
			heightDist = z - p.CatchOptimalMax
		}
		if heightDist < bestAnyHeightDist {
			bestAny = sample
			bestAnyHeightDist = heightDist
			haveAny = true
		}
	}

	if haveOptimal {
		return bestOptimal, true, true
	}
	if haveAny {
		return bestAny, false, true
	}
	return interceptPoint{}, false, false
}

// AnalyzeCatch scores how hard a catch is for one fielder on one trajectory.
// lateralToLine is the fielder's perpendicular distance to the shot line,
// reported as the movement requirement when no interception is reachable.
//
// The difficulty is a weighted sum of four sub-scores in [0, 1]:
// reaction (time pressure), movement (how much of the possible run was
// used), height (distance outside the comfortable band), and ball speed.
func AnalyzeCatch(f Fielder, traj Trajectory, lateralToLine float64, p Params) CatchAnalysis {
	pt, hadOptimal, ok := findCatchableIntercept(f, traj, p)
	if !ok {
		return CatchAnalysis{
			CanCatch:           false,
			Difficulty:         1.0,
			MovementRequired:   lateralToLine,
			BallSpeedAtFielder: traj.HorizontalSpeed * 3.6,
		}
	}

	movementTime := math.Max(0, pt.t-p.ReactionTime)
	possible := movementTime*p.RunSpeed + p.DiveRange

	// Time pressure ramps up as the intercept moves inside ~2 s and
	// saturates by 0.5 s.
	reactionScore := clamp(1.0-(pt.t-0.5)/1.5, 0, 1)

	var movementScore float64
	switch {
	case pt.lateral <= p.StaticRange:
		movementScore = 0
	case pt.lateral <= p.StaticRange+p.DiveRange:
		movementScore = 0.3 + 0.2*((pt.lateral-p.StaticRange)/p.DiveRange)
	default:
		runDist := pt.lateral - p.StaticRange
		maxRun := math.Max(0.01, possible-p.StaticRange)
		movementScore = 0.5 + 0.5*(runDist/maxRun)
	}

	var heightScore float64
	if !hadOptimal {
		switch {
		case pt.height >= p.CatchOptimalMin && pt.height <= p.CatchOptimalMax:
			heightScore = 0
		case pt.height < p.CatchOptimalMin:
			heightScore = math.Min(1.0, (p.CatchOptimalMin-pt.height)/0.7)
		default:
			heightScore = math.Min(1.0, (pt.height-p.CatchOptimalMax)/1.7)
		}
	}

	ballSpeedKmh := traj.HorizontalSpeed * 3.6
	speedScore := clamp((ballSpeedKmh-60)/60, 0, 1)

	difficulty := p.WeightReaction*reactionScore +
		p.WeightMovement*movementScore +
		p.WeightHeight*heightScore +
		p.WeightSpeed*speedScore

	var catchType CatchType
	switch {
	case difficulty < 0.25:
		catchType = CatchRegulation
	case difficulty < 0.6:
		catchType = CatchHard
	default:
		catchType = CatchSpectacular
	}

	return CatchAnalysis{
		CanCatch:           true,
		Difficulty:         difficulty,
		CatchType:          catchType,
		ReactionTime:       pt.t,
		MovementRequired:   pt.lateral,
		MovementPossible:   possible,
		BallSpeedAtFielder: ballSpeedKmh,
		HeightAtIntercept:  pt.height,
		TimeToIntercept:    pt.t,
	}
}
