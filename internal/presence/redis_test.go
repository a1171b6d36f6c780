package presence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pongarena/backend/internal/game"
)

func newTestPublisher(t *testing.T) (*Publisher, *miniredis.Miniredis) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mini
}

func TestSetStatusWritesKey(t *testing.T) {
	p, mini := newTestPublisher(t)
	ctx := context.Background()

	p.SetStatus(ctx, 7, game.PresenceOnline)
	got, err := mini.Get("presence:7")
	require.NoError(t, err)
	assert.Equal(t, "online", got)

	p.SetStatus(ctx, 7, game.PresenceInGame)
	got, err = mini.Get("presence:7")
	require.NoError(t, err)
	assert.Equal(t, "in_game", got)
}

func TestOfflineClearsKey(t *testing.T) {
	p, mini := newTestPublisher(t)
	ctx := context.Background()

	p.SetStatus(ctx, 7, game.PresenceOnline)
	p.SetStatus(ctx, 7, game.PresenceOffline)

	assert.False(t, mini.Exists("presence:7"))
}

func TestStatusReadback(t *testing.T) {
	p, _ := newTestPublisher(t)
	ctx := context.Background()

	got, err := p.Status(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, game.PresenceOffline, got, "missing key reads as offline")

	p.SetStatus(ctx, 7, game.PresenceInGame)
	got, err = p.Status(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, game.PresenceInGame, got)
}

func TestSetStatusPublishesEvent(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer client.Close()
	p := New(client)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "presence_events")
	defer sub.Close()
	_, err := sub.Receive(ctx) // wait for the subscription confirmation
	require.NoError(t, err)

	p.SetStatus(ctx, 7, game.PresenceOnline)

	select {
	case msg := <-sub.Channel():
		var ev struct {
			UserID int    `json:"user_id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, 7, ev.UserID)
		assert.Equal(t, "online", ev.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("no presence event published")
	}
}
