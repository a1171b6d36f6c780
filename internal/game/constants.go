package game

import "time"

// Playfield and paddle geometry. These MUST match the client canvas
// (700x500) exactly or paddle hits will not line up with the rendering.

const (
	FieldWidth  = 700.0
	FieldHeight = 500.0

	BallRadius       = 5.0
	BallStartX       = 350.0
	BallStartY       = 250.0
	DefaultBallSpeed = 12.0 // units per tick

	PaddleHeight    = 70.0
	PaddleThickness = 20.0
	PaddleStep      = 10.0 // units per tick while a move key is held
	PaddleMinY      = 10.0
	PaddleMaxY      = FieldHeight - PaddleHeight - PaddleMinY
	LeftPaddleX     = 5.0
	RightPaddleX    = 670.0

	DefaultWinningScore = 4

	// TickInterval is the fixed simulation cadence (20 Hz). Each session
	// runs its own loop; missed ticks are never caught up.
	TickInterval = 50 * time.Millisecond
)
