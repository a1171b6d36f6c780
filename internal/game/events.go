package game

// Outbound event names pushed over a player's connection.
const (
	EventRoleAssigned         = "role_assigned"
	EventWinningScore         = "winning_score"
	EventOpponentIdentity     = "opponent_identity"
	EventPositionSnapshot     = "position_snapshot"
	EventRunning              = "running"
	EventAssignedSession      = "assigned_session"
	EventAlreadyQueued        = "already_queued"
	EventOpponentDisconnected = "opponent_disconnected"
	EventPlayerDisconnected   = "player_disconnected"
	EventSessionList          = "session_list"
	EventSessionRemoved       = "session_removed"
	EventRematchAvailable     = "rematch_available"
)

// Seat roles as announced to a joining connection.
const (
	RoleFirst    = "first"
	RoleSecond   = "second"
	RoleWatching = "watching"
)

// Snapshot is one per-tick position broadcast, already oriented for its
// recipient: the second player (and every spectator) sees the ball's x
// mirrored so both clients render themselves on the left.
type Snapshot struct {
	OwnY   float64 `json:"own_y"`
	OppY   float64 `json:"opp_y"`
	BallX  float64 `json:"ball_x"`
	BallY  float64 `json:"ball_y"`
	Score1 int     `json:"score1"`
	Score2 int     `json:"score2"`
}

// SessionListing is one entry of the spectator browser list.
type SessionListing struct {
	ID     string `json:"id"`
	First  string `json:"first"`
	Second string `json:"second"`
}

// ParseDirection maps a wire direction to a paddle velocity sign.
// Screen coordinates grow downward, so "down" is +1.
func ParseDirection(s string) (int, bool) {
	switch s {
	case "up":
		return -1, true
	case "down":
		return 1, true
	case "stop":
		return 0, true
	default:
		return 0, false
	}
}
