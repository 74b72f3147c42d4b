package engine

import (
	"math"
	"testing"
)

const fieldingTolerance = 1e-4

func TestThrowDistance(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		pt   Point2D
		want float64
	}{
		{"CloseToBat", Point2D{X: 0, Y: 8}, 8.0},
		{"CloseToBowler", Point2D{X: 0, Y: 18}, 2.12}, // 20.12 - 18
		{"DeepField", Point2D{X: 30, Y: 40}, 35.989087},
		{"AtTheStumps", Point2D{}, 0.1}, // floored
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThrowDistance(tt.pt, p); math.Abs(got-tt.want) > fieldingTolerance {
				t.Errorf("ThrowDistance(%v) = %.6f, want %.6f", tt.pt, got, tt.want)
			}
		})
	}
}

func TestRunsFromTime(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		time float64
		want int
	}{
		{"QuickReturn", 3.4, 0},
		{"FirstRunExactly", 3.5, 1},
		{"JustUnderTwo", 5.99, 1},
		{"TwoRuns", 6.0, 2},
		{"JustUnderThree", 8.49, 2},
		{"ThreeRuns", 8.5, 3},
		{"CappedAtThree", 100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunsFromTime(tt.time, p); got != tt.want {
				t.Errorf("RunsFromTime(%.2f) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}
}

func TestFieldingTime(t *testing.T) {
	p := DefaultParams()
	traj := ComputeTrajectory(130, 0, 0, p)

	tests := []struct {
		name          string
		interceptDist float64
		lateral       float64
		fielderPos    Point2D
		want          float64
	}{
		// Ball time to 8 m is 0.2215 s; no lateral means a direct take
		// (0.5 s) plus an 8 m throw at 30 m/s.
		{"DirectTake", 8, 0, Point2D{X: 0, Y: 8}, 0.988205},
		// 1 m of lateral minus 0.02 s of closing leaves 0.85 m, a moving
		// collect (1.0 s).
		{"MovingCollect", 8, 1.0, Point2D{X: 1, Y: 8}, 1.490280},
		// 3 m of lateral is beyond the moving band, a diving stop (1.5 s).
		{"DivingStop", 8, 3.0, Point2D{X: 3, Y: 8}, 2.006339},
		// 40 m is past the aerial phase, so the ball time includes the
		// friction-decayed rolling term.
		{"RollingIntercept", 40, 0, Point2D{X: 0, Y: 40}, 2.715617},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldingTime(traj, tt.interceptDist, tt.lateral, tt.fielderPos, p)
			if math.Abs(got-tt.want) > fieldingTolerance {
				t.Errorf("FieldingTime = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}
