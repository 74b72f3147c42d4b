package engine

// Params collects every tunable constant of the simulation model in one
// immutable value. The resolver takes Params explicitly so tests can perturb
// individual numbers without touching package state.
type Params struct {
	// Physical constants
	Gravity   float64 // m/s^2
	BatHeight float64 // metres, ball height at bat contact

	// Catch height bands
	CatchHeightMin  float64 // metres, below this is a half-volley
	CatchHeightMax  float64 // metres, above this is out of reach even jumping
	CatchOptimalMin float64 // metres, waist height
	CatchOptimalMax float64 // metres, chest height

	// Fielder movement
	ReactionTime  float64 // seconds before a fielder starts moving
	RunSpeed      float64 // m/s sprint speed
	DiveRange     float64 // metres of extra reach from a full-length dive
	StaticRange   float64 // metres reachable without moving (arm + step)
	GroundRange   float64 // metres of lateral reach for ground balls
	PickupTime    float64 // seconds to pick up a stationary ball

	// Ground fielding timing
	PitchLength      float64 // metres between the two sets of stumps
	FirstRunTime     float64 // seconds of fielding time that concede one run
	ExtraRunTime     float64 // seconds per additional run
	ThrowSpeed       float64 // m/s return throw
	CollectDirect    float64 // seconds, ball straight to the fielder
	CollectMoving    float64 // seconds, fielder moves to collect
	CollectDiving    float64 // seconds, diving stop and recover
	MisfieldPenalty  float64 // seconds added when the ball gets past
	FumblePenalty    float64 // seconds added on a bobble
	GroundFriction   float64 // per-metre exponential decay of rolling speed
	StopThreshold    float64 // m/s at which the ball is considered stopped
	MinRollSpeed     float64 // m/s floor for travel-time purposes
	BounceRetention  float64 // speed fraction kept on a flat landing
	BounceSteepLoss  float64 // extra fraction lost per unit sin(launch angle)

	// Catch difficulty weights (sum to 1)
	WeightReaction float64
	WeightMovement float64
	WeightHeight   float64
	WeightSpeed    float64

	// Legacy drop-run heuristic radii
	InnerRingRadius float64 // metres
	MidFieldRadius  float64 // metres

	// Simulation thresholds
	AerialHeightThreshold float64 // metres above which a shot counts as aerial
	AerialAngleThreshold  float64 // degrees above which a shot counts as aerial
	SixClearanceHeight    float64 // metres the ball must clear the rope by
	MinShotLength         float64 // metres below which there is no shot
	TrajectoryTimeStep    float64 // seconds, sampling resolution for catches
	PathStartT            float64 // segment parameter below which fielders are ignored
	CatchExtendedRange    float64 // metres of extra range for running catches
	NearFielderRadius     float64 // metres within which fielders are always in play
	NearFielderDotLimit   float64 // dot-product tolerance inside that radius
	CatchProbCap          float64 // upper bound on any catch probability

	// Input bounds
	MaxExitSpeed     float64 // km/h
	MaxVerticalAngle float64 // degrees
	DefaultBoundary  float64 // metres, used when the caller supplies garbage
}

// DefaultParams returns the standard tuning. Speeds and times are calibrated
// to professional fielding: ~0.2 s reaction, 7 m/s sprint, 30 m/s throw.
func DefaultParams() Params {
	return Params{
		Gravity:   9.81,
		BatHeight: 1.0,

		CatchHeightMin:  0.2,
		CatchHeightMax:  4.0,
		CatchOptimalMin: 0.8,
		CatchOptimalMax: 1.6,

		ReactionTime: 0.20,
		RunSpeed:     7.0,
		DiveRange:    2.5,
		StaticRange:  1.5,
		GroundRange:  3.0,
		PickupTime:   0.4,

		PitchLength:     20.12,
		FirstRunTime:    3.5,
		ExtraRunTime:    2.5,
		ThrowSpeed:      30.0,
		CollectDirect:   0.5,
		CollectMoving:   1.0,
		CollectDiving:   1.5,
		MisfieldPenalty: 2.5,
		FumblePenalty:   1.0,
		GroundFriction:  0.03,
		StopThreshold:   1.5,
		MinRollSpeed:    3.0,
		BounceRetention: 0.85,
		BounceSteepLoss: 0.8,

		WeightReaction: 0.25,
		WeightMovement: 0.35,
		WeightHeight:   0.20,
		WeightSpeed:    0.20,

		InnerRingRadius: 15.0,
		MidFieldRadius:  30.0,

		AerialHeightThreshold: 1.5,
		AerialAngleThreshold:  10.0,
		SixClearanceHeight:    0.5,
		MinShotLength:         0.1,
		TrajectoryTimeStep:    0.05,
		PathStartT:            0.05,
		CatchExtendedRange:    10.0,
		NearFielderRadius:     10.0,
		NearFielderDotLimit:   -5.0,
		CatchProbCap:          0.99,

		MaxExitSpeed:     200.0,
		MaxVerticalAngle: 90.0,
		DefaultBoundary:  70.0,
	}
}
