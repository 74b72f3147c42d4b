package engine

import "math"

// ComputeTrajectory maps launch parameters to a closed-form flight and roll
// description. Speed is in km/h, angles in degrees. Horizontal angle 0 is
// straight down the pitch, positive toward the off side for a right-hander;
// field X is negated so positive angles land on the -X (off) half.
//
// The model is drag-free in the air. After landing, the ball keeps
// LandingSpeed = horizontal speed x an impact-retention factor that shrinks
// with steeper launch angles, then decays exponentially under ground
// friction until it drops below the stop threshold.
//
// Degenerate inputs (zero or negative speed) return a zero-advancing
// trajectory rather than an error; the resolver's fallback branches handle
// the rest.
func ComputeTrajectory(speedKmh, hAngleDeg, vAngleDeg float64, p Params) Trajectory {
	if speedKmh <= 0 {
		return Trajectory{
			MaxHeight: p.BatHeight,
			Dir:       Vector2D{X: 0, Y: -1},
		}
	}

	speed := speedKmh / 3.6
	hRad := hAngleDeg * math.Pi / 180.0
	vRad := vAngleDeg * math.Pi / 180.0
	sinH, cosH := math.Sincos(hRad)
	sinV, cosV := math.Sincos(vRad)

	vHorizontal := speed * cosV
	vVertical := speed * sinV

	// Near-vertical hit: ball goes up and comes down by the batter.
	if vHorizontal < 0.1 {
		traj := Trajectory{
			HorizontalSpeed:   0.1,
			VerticalSpeed:     vVertical,
			AerialDistance:    0.1,
			ProjectedDistance: 0.1,
			Dir:               Vector2D{X: 0, Y: -1},
		}
		if vVertical > 0 {
			tUp := vVertical / p.Gravity
			traj.MaxHeight = p.BatHeight + vVertical*vVertical/(2*p.Gravity)
			traj.TimeOfFlight = 2 * tUp
		} else {
			traj.MaxHeight = p.BatHeight
			traj.TimeOfFlight = math.Sqrt(2 * p.BatHeight / p.Gravity)
		}
		return traj
	}

	var timeOfFlight, maxHeight float64
	if vVertical > 0 {
		// Ascent to the apex, then free fall from apex height to the ground.
		tUp := vVertical / p.Gravity
		apex := p.BatHeight + vVertical*vVertical/(2*p.Gravity)
		tDown := math.Sqrt(2 * apex / p.Gravity)
		timeOfFlight = tUp + tDown
		maxHeight = apex
	} else {
		// Flat or downward shot: a short drop from bat height.
		timeOfFlight = math.Sqrt(2 * p.BatHeight / p.Gravity)
		maxHeight = p.BatHeight
	}

	aerial := vHorizontal * timeOfFlight

	// Steeper launches lose more energy on the bounce.
	retention := p.BounceRetention - p.BounceSteepLoss*sinV
	if retention < 0 {
		retention = 0
	}
	landingSpeed := vHorizontal * retention

	var rolling float64
	if landingSpeed > p.StopThreshold {
		rolling = math.Log(landingSpeed/p.StopThreshold) / p.GroundFriction
	}

	total := aerial + rolling

	landing := Point2D{X: -aerial * sinH, Y: aerial * cosH}
	final := Point2D{X: -total * sinH, Y: total * cosH}

	dir := Vector2D{X: 0, Y: -1}
	if mag := Norm(landing); mag > 0 {
		dir = Vector2D{X: landing.X / mag, Y: landing.Y / mag}
	}

	return Trajectory{
		HorizontalSpeed:   vHorizontal,
		VerticalSpeed:     vVertical,
		LandingSpeed:      landingSpeed,
		TimeOfFlight:      timeOfFlight,
		MaxHeight:         maxHeight,
		AerialDistance:    aerial,
		RollingDistance:   rolling,
		ProjectedDistance: total,
		Landing:           landing,
		Final:             final,
		Dir:               dir,
	}
}

// PositionAt returns the ball's (x, y, z) at time t during the aerial phase.
// Height is clamped at ground level.
func (traj Trajectory) PositionAt(t float64, p Params) (x, y, z float64) {
	dist := traj.HorizontalSpeed * t
	x = dist * traj.Dir.X
	y = dist * traj.Dir.Y
	z = p.BatHeight + traj.VerticalSpeed*t - 0.5*p.Gravity*t*t
	if z < 0 {
		z = 0
	}
	return x, y, z
}

// HeightAtDistance estimates ball height at a given ground distance from the
// batter during the aerial phase. Flat shots descend linearly from bat
// height; lofted shots follow a two-piece parabolic profile whose apex sits
// 30-50% of the way out depending on launch angle. Beyond the aerial
// distance the ball is on the ground.
func HeightAtDistance(dist float64, traj Trajectory, vAngleDeg float64, p Params) float64 {
	if traj.AerialDistance <= 0 || dist >= traj.AerialDistance {
		return 0
	}

	if vAngleDeg < 5 {
		h := p.BatHeight * (1 - dist/traj.AerialDistance)
		return math.Max(0, h)
	}

	apexFraction := 0.3 + (vAngleDeg/90.0)*0.2
	apexDist := traj.AerialDistance * apexFraction

	var h float64
	if dist <= apexDist {
		t := dist / apexDist
		h = p.BatHeight + (traj.MaxHeight-p.BatHeight)*(2*t-t*t)
	} else {
		remaining := traj.AerialDistance - apexDist
		if remaining <= 0 {
			return 0
		}
		t := (dist - apexDist) / remaining
		h = traj.MaxHeight * (1 - t*t)
	}
	return math.Max(0, h)
}

// TravelTimeTo returns the elapsed time from bat contact until the ball
// reaches the given ground distance from the batter. Within the aerial phase
// this is the proportional fraction of the flight; beyond it, flight time
// plus a rolling term using the friction-decayed average ground speed,
// floored so the ball never stops for timing purposes.
func (traj Trajectory) TravelTimeTo(dist float64, p Params) float64 {
	if dist <= 0 {
		return 0
	}
	if traj.AerialDistance > 0 && dist <= traj.AerialDistance {
		return traj.TimeOfFlight * dist / traj.AerialDistance
	}

	remaining := dist - traj.AerialDistance
	avg := traj.LandingSpeed * math.Exp(-p.GroundFriction*remaining*0.5)
	if avg < p.MinRollSpeed {
		avg = p.MinRollSpeed
	}
	return traj.TimeOfFlight + remaining/avg
}
