package results

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pongarena/backend/internal/models"
)

// Store persists finished matches to PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// New creates a result store on an existing connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// RecordMatch inserts one finished match row.
func (s *Store) RecordMatch(ctx context.Context, rec models.MatchRecord) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO matches (player1_id, player1_name, player2_id, player2_name,
		                     player1_score, player2_score, mode, finished_at)
		VALUES (:player1_id, :player1_name, :player2_id, :player2_name,
		        :player1_score, :player2_score, :mode, :finished_at)
	`, rec)
	return err
}

// Recent returns the latest finished matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.MatchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []models.MatchRecord
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, player1_id, player1_name, player2_id, player2_name,
		       player1_score, player2_score, mode, finished_at
		FROM matches
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	return rows, err
}

// ByUser returns a user's match history, newest first.
func (s *Store) ByUser(ctx context.Context, userID, limit int) ([]models.MatchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []models.MatchRecord
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, player1_id, player1_name, player2_id, player2_name,
		       player1_score, player2_score, mode, finished_at
		FROM matches
		WHERE player1_id = $1 OR player2_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`, userID, limit)
	return rows, err
}
