package models

import "time"

// MatchRecord is one finished match as handed to the result store. The
// engine fills it verbatim from the session's final state; nothing here
// is recomputed on the way to the database.
type MatchRecord struct {
	ID           int       `db:"id" json:"id,omitempty"`
	Player1ID    int       `db:"player1_id" json:"player1_id"`
	Player1Name  string    `db:"player1_name" json:"player1_name"`
	Player2ID    int       `db:"player2_id" json:"player2_id"`
	Player2Name  string    `db:"player2_name" json:"player2_name"`
	Player1Score int       `db:"player1_score" json:"player1_score"`
	Player2Score int       `db:"player2_score" json:"player2_score"`
	Mode         string    `db:"mode" json:"mode"`
	FinishedAt   time.Time `db:"finished_at" json:"finished_at"`
}
