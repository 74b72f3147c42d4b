package engine

import (
	"math"
	"testing"
)

const geomTolerance = 1e-9

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want float64
	}{
		{"Zero", 0, 0},
		{"StraightOff", 90, 90},
		{"Wrap361", 361, 1},
		{"WrapNegative", -190, 170},
		{"HalfTurn", 180, -180}, // both half-turns normalize to the lower bound
		{"NegativeHalfTurn", -180, -180},
		{"BigPositive", 720 + 45, 45},
		{"BigNegative", -720 - 45, -45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.deg); math.Abs(got-tt.want) > geomTolerance {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}
}

func TestPointToSegment(t *testing.T) {
	tests := []struct {
		name        string
		p, a, b     Point2D
		wantDist    float64
		wantClosest Point2D
		wantT       float64
	}{
		{
			name:        "PerpendicularMiddle",
			p:           Point2D{X: 5, Y: 3},
			a:           Point2D{},
			b:           Point2D{X: 10, Y: 0},
			wantDist:    3,
			wantClosest: Point2D{X: 5, Y: 0},
			wantT:       0.5,
		},
		{
			name:        "BeforeStart",
			p:           Point2D{X: -4, Y: 3},
			a:           Point2D{},
			b:           Point2D{X: 10, Y: 0},
			wantDist:    5, // 3-4-5 triangle to the clamped endpoint
			wantClosest: Point2D{},
			wantT:       0,
		},
		{
			name:        "PastEnd",
			p:           Point2D{X: 13, Y: 4},
			a:           Point2D{},
			b:           Point2D{X: 10, Y: 0},
			wantDist:    5,
			wantClosest: Point2D{X: 10, Y: 0},
			wantT:       1,
		},
		{
			name:        "OnSegment",
			p:           Point2D{X: 2, Y: 2},
			a:           Point2D{},
			b:           Point2D{X: 10, Y: 10},
			wantDist:    0,
			wantClosest: Point2D{X: 2, Y: 2},
			wantT:       0.2,
		},
		{
			name:        "ZeroLengthSegment",
			p:           Point2D{X: 3, Y: 4},
			a:           Point2D{X: 0, Y: 0},
			b:           Point2D{X: 0, Y: 0},
			wantDist:    5,
			wantClosest: Point2D{},
			wantT:       0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := PointToSegment(tt.p, tt.a, tt.b)
			if math.Abs(hit.Dist-tt.wantDist) > geomTolerance {
				t.Errorf("Dist = %v, want %v", hit.Dist, tt.wantDist)
			}
			if math.Abs(hit.Closest.X-tt.wantClosest.X) > geomTolerance ||
				math.Abs(hit.Closest.Y-tt.wantClosest.Y) > geomTolerance {
				t.Errorf("Closest = %v, want %v", hit.Closest, tt.wantClosest)
			}
			if math.Abs(hit.T-tt.wantT) > geomTolerance {
				t.Errorf("T = %v, want %v", hit.T, tt.wantT)
			}
		})
	}
}

func TestInBallPath(t *testing.T) {
	p := DefaultParams()
	landing := Point2D{X: 0, Y: 40} // straight down the ground

	tests := []struct {
		name    string
		fielder Fielder
		want    bool
	}{
		{"DirectlyInLine", Fielder{X: 0, Y: 30}, true},
		{"WideButForward", Fielder{X: 25, Y: 5}, true},
		{"WellBehind", Fielder{X: 0, Y: -20}, false},
		{"CloseCatcherSlightlyBehind", Fielder{X: 3, Y: -1}, true}, // inside the near radius
		{"CloseButTooFarBehind", Fielder{X: 0, Y: -6}, false},      // dot -6 below the near limit
		{"OnTheCrease", Fielder{X: 8, Y: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBallPath(tt.fielder, landing, p); got != tt.want {
				t.Errorf("InBallPath(%+v) = %v, want %v", tt.fielder, got, tt.want)
			}
		})
	}

	// A degenerate landing point puts nobody in the path.
	if InBallPath(Fielder{X: 0, Y: 5}, Point2D{}, p) {
		t.Error("degenerate landing should exclude every fielder")
	}
}

func TestBoundaryIntersection(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name     string
		landing  Point2D
		boundary float64
		want     Point2D
	}{
		{"StraightDown", Point2D{X: 0, Y: 30}, 70, Point2D{X: 0, Y: 70}},
		{"Diagonal", Point2D{X: -30, Y: 40}, 65, Point2D{X: -39, Y: 52}}, // 3-4-5 scaled to 65
		{"AlreadyPast", Point2D{X: 0, Y: 100}, 70, Point2D{X: 0, Y: 70}},
		{"Degenerate", Point2D{}, 70, Point2D{X: 0, Y: -70}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundaryIntersection(tt.landing, tt.boundary, p)
			if math.Abs(got.X-tt.want.X) > geomTolerance || math.Abs(got.Y-tt.want.Y) > geomTolerance {
				t.Errorf("BoundaryIntersection(%v, %v) = %v, want %v",
					tt.landing, tt.boundary, got, tt.want)
			}
			if math.Abs(Norm(got)-tt.boundary) > geomTolerance {
				t.Errorf("|intersection| = %v, want boundary %v", Norm(got), tt.boundary)
			}
		})
	}
}
