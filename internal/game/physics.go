package game

import (
	"math"
	"math/rand"
)

// Ball is the full kinematic state of the ball. Speed is constant for the
// life of a session; direction lives entirely in Angle, which is kept
// normalized to [0, 2π) so the facing-side paddle test stays well-defined.
type Ball struct {
	X     float64
	Y     float64
	Angle float64
	Speed float64
}

// Scorer identifies which seat scored on a step.
type Scorer int

const (
	NoScore Scorer = iota
	FirstScores
	SecondScores
)

// NormalizeAngle maps θ into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// ServeAngle draws a serve direction uniformly from (-π/4, π/4), rotated
// by π half the time so serves go both ways. Near-vertical serves are
// impossible by construction.
func ServeAngle(rng *rand.Rand) float64 {
	angle := rng.Float64()*math.Pi/2 - math.Pi/4
	if rng.Intn(2) == 1 {
		angle += math.Pi
	}
	return NormalizeAngle(angle)
}

// StepBall advances the ball one tick against the given paddle positions
// and reports which seat, if any, scored. On a score the ball recenters
// and a fresh serve angle is drawn from rng.
func StepBall(b *Ball, rng *rand.Rand, firstY, secondY float64) Scorer {
	b.X += b.Speed * math.Cos(b.Angle)
	b.Y += b.Speed * math.Sin(b.Angle)

	scored := NoScore
	if b.X > FieldWidth {
		scored = FirstScores
		b.resetServe(rng)
	} else if b.X < 0 {
		scored = SecondScores
		b.resetServe(rng)
	}

	if b.Y >= FieldHeight-BallRadius || b.Y <= BallRadius {
		b.Angle = NormalizeAngle(-b.Angle)
	}

	if touchesPaddle(b, LeftPaddleX, firstY) && movingLeft(b) {
		b.Angle = NormalizeAngle(math.Pi - b.Angle)
	}
	if touchesPaddle(b, RightPaddleX, secondY) && movingRight(b) {
		b.Angle = NormalizeAngle(math.Pi - b.Angle)
	}

	return scored
}

// StepPaddle moves a paddle by its held velocity sign and clamps it to
// the playable band.
func StepPaddle(y float64, velocitySign int) float64 {
	y += float64(velocitySign) * PaddleStep
	if y < PaddleMinY {
		y = PaddleMinY
	} else if y > PaddleMaxY {
		y = PaddleMaxY
	}
	return y
}

func (b *Ball) resetServe(rng *rand.Rand) {
	b.X = BallStartX
	b.Y = BallStartY
	b.Angle = ServeAngle(rng)
}

func touchesPaddle(b *Ball, x, paddleY float64) bool {
	return b.X >= x && b.X <= x+PaddleThickness &&
		b.Y >= paddleY && b.Y <= paddleY+PaddleHeight
}

// A paddle only deflects a ball actually travelling toward its side; a
// ball that already slipped past laterally must not bounce back off a
// stale vertical overlap.
func movingLeft(b *Ball) bool { return math.Cos(b.Angle) < 0 }

func movingRight(b *Ball) bool { return math.Cos(b.Angle) > 0 }
