package game

// Identity is the external identity of a user: issued elsewhere,
// immutable for the lifetime of one session.
type Identity struct {
	UserID      int    `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Sender delivers one named event to a single connection. Implementations
// must not block; the websocket layer backs this with a buffered channel
// and drops on overflow.
type Sender interface {
	Send(event string, payload any)
}

// Broadcaster announces an event to every connected client.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// Player is one seat or spectator slot inside a Session. A Player is
// owned exclusively by the Session holding it and never outlives it.
type Player struct {
	ConnID   string
	Identity Identity
	Sender   Sender

	PaddleY      float64
	VelocitySign int // -1 up, 0 stop, +1 down
	Score        int
}

// NewPlayer binds a connection and its resolved identity into a
// session-scoped player. The paddle starts centered.
func NewPlayer(connID string, id Identity, sender Sender) *Player {
	return &Player{
		ConnID:   connID,
		Identity: id,
		Sender:   sender,
		PaddleY:  (FieldHeight - PaddleHeight) / 2,
	}
}

func (p *Player) send(event string, payload any) {
	if p != nil && p.Sender != nil {
		p.Sender.Send(event, payload)
	}
}
