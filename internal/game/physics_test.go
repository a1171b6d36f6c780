package game

import (
	"math"
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNormalizeAngleRange(t *testing.T) {
	inputs := []float64{0, math.Pi, -math.Pi / 2, 3 * math.Pi, -7 * math.Pi, 2 * math.Pi, 100}
	for _, in := range inputs {
		got := NormalizeAngle(in)
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", in, got)
		}
	}
	if got := NormalizeAngle(-math.Pi / 2); math.Abs(got-3*math.Pi/2) > 1e-9 {
		t.Errorf("NormalizeAngle(-π/2) = %v, want 3π/2", got)
	}
}

func TestServeAngleNeverNearVertical(t *testing.T) {
	rng := testRNG()
	minHorizontal := math.Sqrt2 / 2 // cos(π/4)

	for i := 0; i < 500; i++ {
		a := ServeAngle(rng)
		if a < 0 || a >= 2*math.Pi {
			t.Fatalf("serve %d: angle %v outside [0, 2π)", i, a)
		}
		if math.Abs(math.Cos(a)) < minHorizontal-1e-9 {
			t.Errorf("serve %d: angle %v too close to vertical (|cos|=%v)", i, a, math.Abs(math.Cos(a)))
		}
	}
}

func TestServeAngleGoesBothWays(t *testing.T) {
	rng := testRNG()
	left, right := 0, 0
	for i := 0; i < 200; i++ {
		if math.Cos(ServeAngle(rng)) < 0 {
			left++
		} else {
			right++
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("serves all went one way: left=%d right=%d", left, right)
	}
}

func TestStepBallWallBounce(t *testing.T) {
	// Moving up-right near the top wall
	b := &Ball{X: 350, Y: 8, Angle: NormalizeAngle(-math.Pi / 4), Speed: 12}

	StepBall(b, testRNG(), 215, 215)

	if math.Sin(b.Angle) <= 0 {
		t.Errorf("ball did not bounce off top wall: angle=%v", b.Angle)
	}
	if math.Cos(b.Angle) <= 0 {
		t.Errorf("wall bounce changed horizontal direction: angle=%v", b.Angle)
	}
}

func TestStepBallScoringResetsServe(t *testing.T) {
	b := &Ball{X: 695, Y: 250, Angle: 0, Speed: 12}

	if got := StepBall(b, testRNG(), 215, 215); got != FirstScores {
		t.Fatalf("StepBall = %v, want FirstScores", got)
	}
	if b.X != BallStartX || b.Y != BallStartY {
		t.Errorf("ball not recentered after score: (%v, %v)", b.X, b.Y)
	}

	b = &Ball{X: 5, Y: 250, Angle: math.Pi, Speed: 12}
	if got := StepBall(b, testRNG(), 215, 215); got != SecondScores {
		t.Fatalf("StepBall = %v, want SecondScores", got)
	}
}

func TestPaddleDeflectsIncomingBall(t *testing.T) {
	// Heading right into the right paddle's band
	b := &Ball{X: 675, Y: 100, Angle: 0, Speed: 12}

	StepBall(b, testRNG(), 215, 80)

	if math.Cos(b.Angle) >= 0 {
		t.Errorf("right paddle did not deflect incoming ball: angle=%v", b.Angle)
	}
}

func TestPaddleIgnoresBallMovingAway(t *testing.T) {
	// Inside the right paddle's band but already heading left
	b := &Ball{X: 695, Y: 100, Angle: math.Pi, Speed: 12}

	StepBall(b, testRNG(), 215, 80)

	if math.Cos(b.Angle) >= 0 {
		t.Errorf("paddle deflected a ball moving away: angle=%v", b.Angle)
	}
}

func TestPaddleMissesOutsideBand(t *testing.T) {
	// Right paddle sits at y=300; ball crosses at y=100 and must pass
	b := &Ball{X: 675, Y: 100, Angle: 0, Speed: 12}

	StepBall(b, testRNG(), 215, 300)

	if math.Cos(b.Angle) <= 0 {
		t.Errorf("paddle deflected a ball outside its band: angle=%v", b.Angle)
	}
}

func TestStepPaddleClamp(t *testing.T) {
	if got := StepPaddle(PaddleMinY, -1); got != PaddleMinY {
		t.Errorf("StepPaddle at top moved to %v", got)
	}
	if got := StepPaddle(PaddleMaxY, 1); got != PaddleMaxY {
		t.Errorf("StepPaddle at bottom moved to %v", got)
	}
	if got := StepPaddle(100, 1); got != 100+PaddleStep {
		t.Errorf("StepPaddle(100, 1) = %v, want %v", got, 100+PaddleStep)
	}
	if got := StepPaddle(100, 0); got != 100 {
		t.Errorf("StepPaddle(100, 0) = %v, want 100", got)
	}
}
