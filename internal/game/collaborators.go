package game

import (
	"context"

	"github.com/pongarena/backend/internal/models"
)

// PresenceStatus is a player's externally visible status.
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceOffline PresenceStatus = "offline"
	PresenceInGame  PresenceStatus = "in_game"
)

// PresenceSink receives status transitions. Fire-and-forget: delivery is
// at-least-once and failures are the sink's problem to log.
type PresenceSink interface {
	SetStatus(ctx context.Context, userID int, status PresenceStatus)
}

// ResultStore persists one record per finished match. A store failure
// must never block or crash the session that reports it.
type ResultStore interface {
	RecordMatch(ctx context.Context, rec models.MatchRecord) error
}
