package engine

import "math"

// ThrowDistance returns the distance from a collection point to the nearer
// set of stumps. The batting end is at the origin, the bowler's end a pitch
// length up the +Y axis. Floored to avoid a zero-length throw.
func ThrowDistance(pt Point2D, p Params) float64 {
	batting := Norm(pt)
	bowling := Distance(pt, Point2D{X: 0, Y: p.PitchLength})
	return math.Max(0.1, math.Min(batting, bowling))
}

// FieldingTime is the total elapsed time from bat contact to the ball
// arriving back at the stumps: ball travel to the interception distance,
// collection, and the return throw.
//
// The fielder closes distance toward the interception point while the ball
// travels (after the reaction delay, at run speed); the remaining effective
// lateral distance picks the collection bucket: clean take, moving
// collect, or diving stop.
func FieldingTime(traj Trajectory, interceptDist, lateral float64, fielderPos Point2D, p Params) float64 {
	ballTime := traj.TravelTimeTo(interceptDist, p)

	movementTime := math.Max(0, ballTime-p.ReactionTime)
	effectiveLateral := math.Max(0, lateral-movementTime*p.RunSpeed)

	var collection float64
	switch {
	case effectiveLateral < 0.5:
		collection = p.CollectDirect
	case effectiveLateral < 2.0:
		collection = p.CollectMoving
	default:
		collection = p.CollectDiving
	}

	throwTime := ThrowDistance(fielderPos, p) / p.ThrowSpeed

	return ballTime + collection + throwTime
}

// RunsFromTime quantizes a total fielding time into runs: below the
// first-run threshold is a dot ball, then one run per additional increment,
// capped at three (anything longer would already have been a boundary).
func RunsFromTime(fieldingTime float64, p Params) int {
	if fieldingTime < p.FirstRunTime {
		return 0
	}

	runs := 1
	remaining := fieldingTime - p.FirstRunTime

	if remaining >= p.ExtraRunTime {
		runs = 2
		remaining -= p.ExtraRunTime
	}
	if remaining >= p.ExtraRunTime {
		runs = 3
	}
	return runs
}
