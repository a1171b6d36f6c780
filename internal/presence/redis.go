package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pongarena/backend/internal/game"
)

const (
	keyPrefix = "presence:"
	channel   = "presence_events"

	// Online/in-game keys refresh on every transition; a stale entry
	// disappears on its own if the server dies mid-match.
	keyTTL = 24 * time.Hour
)

// Publisher mirrors player presence into Redis: one key per user for
// point lookups, plus a pub/sub event so other services can react live.
type Publisher struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

type event struct {
	UserID int    `json:"user_id"`
	Status string `json:"status"`
	At     int64  `json:"at"`
}

// SetStatus writes the user's status key and publishes a change event.
// Failures are logged, never propagated: presence is advisory and must
// not stall the match loop.
func (p *Publisher) SetStatus(ctx context.Context, userID int, status game.PresenceStatus) {
	key := fmt.Sprintf("%s%d", keyPrefix, userID)

	if status == game.PresenceOffline {
		if err := p.rdb.Del(ctx, key).Err(); err != nil {
			log.Printf("[PRESENCE] failed to clear %s: %v", key, err)
		}
	} else {
		if err := p.rdb.Set(ctx, key, string(status), keyTTL).Err(); err != nil {
			log.Printf("[PRESENCE] failed to set %s: %v", key, err)
		}
	}

	payload, err := json.Marshal(event{UserID: userID, Status: string(status), At: time.Now().Unix()})
	if err != nil {
		log.Printf("[PRESENCE] failed to marshal event for user %d: %v", userID, err)
		return
	}
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("[PRESENCE] failed to publish event for user %d: %v", userID, err)
	}
}

// Status reads a user's current status; missing key means offline.
func (p *Publisher) Status(ctx context.Context, userID int) (game.PresenceStatus, error) {
	val, err := p.rdb.Get(ctx, fmt.Sprintf("%s%d", keyPrefix, userID)).Result()
	if err == redis.Nil {
		return game.PresenceOffline, nil
	}
	if err != nil {
		return game.PresenceOffline, err
	}
	return game.PresenceStatus(val), nil
}
