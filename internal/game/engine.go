package game

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Engine owns the session registry and the matchmaking queue and exposes
// every player intent the connection layer can deliver. It is constructed
// once in main and handed to the websocket handlers; nothing here is
// process-global.
type Engine struct {
	registry *Registry
	queue    *Queue
	settings Settings

	presence PresenceSink
	results  ResultStore
	announce Broadcaster
}

// NewEngine wires an engine to its external collaborators. presence and
// results may be nil in tests.
func NewEngine(settings Settings, presence PresenceSink, results ResultStore) *Engine {
	return &Engine{
		registry: NewRegistry(),
		queue:    NewQueue(),
		settings: settings.withDefaults(),
		presence: presence,
		results:  results,
	}
}

// SetAnnouncer installs the process-wide broadcaster used for session
// removal announcements. Installed after construction because the hub
// that implements it is built around the engine.
func (e *Engine) SetAnnouncer(b Broadcaster) {
	e.announce = b
}

// Connected reports a fresh connection's identity as online.
func (e *Engine) Connected(id Identity) {
	e.setPresence(id, PresenceOnline)
}

// Join seats p in the invitation session for sessionID, creating the
// session on first join. Extra joiners become spectators.
func (e *Engine) Join(sessionID string, p *Player) {
	if sessionID == "" {
		return
	}
	s := e.registry.GetOrCreate(sessionID, func() *Session {
		return NewSession(sessionID, ModeInvitation, e.settings, e.presence, e.results)
	})
	s.AddPlayer(p)
}

// EnqueueRanked puts p into the matchmaking queue and drains any pairs
// that completes. A duplicate identity is rejected with already_queued
// and leaves the queue untouched.
func (e *Engine) EnqueueRanked(p *Player) {
	if !e.queue.Enqueue(p) {
		p.send(EventAlreadyQueued, map[string]any{})
		return
	}
	e.drainPairs()
}

// DequeueRanked removes a waiting identity, e.g. on page navigation.
// No-op if the identity is not queued.
func (e *Engine) DequeueRanked(id Identity) {
	e.queue.Remove(id)
}

// Move applies a paddle intent to a session. Unknown session ids and
// half-formed matches are silently ignored.
func (e *Engine) Move(sessionID, connID string, velocitySign int) {
	if s, ok := e.registry.Get(sessionID); ok {
		s.SetPaddleIntent(connID, velocitySign)
	}
}

// Rematch restarts a finished invitation session.
func (e *Engine) Rematch(sessionID, connID string) {
	if s, ok := e.registry.Get(sessionID); ok {
		s.Rematch(connID)
	}
}

// Spectate attaches p to an existing session; with a free seat it takes
// the seat instead, which is how invited opponents arrive. Unknown ids
// are a no-op: spectating requires the session to exist already.
func (e *Engine) Spectate(sessionID string, p *Player) {
	if s, ok := e.registry.Get(sessionID); ok {
		s.AddPlayer(p)
	}
}

// Unspectate detaches a watching connection from a session.
func (e *Engine) Unspectate(sessionID, connID string) {
	if s, ok := e.registry.Get(sessionID); ok {
		s.RemoveSpectator(connID)
	}
}

// ListSessions prunes dead sessions, announces their removal, and sends
// the requester the sessions that currently have two seated players.
func (e *Engine) ListSessions(to Sender) {
	entries := e.sweepAndList()
	if to != nil {
		to.Send(EventSessionList, map[string]any{"sessions": entries})
	}
}

// Listings returns the current spectator browser list, pruning as it
// goes. Used by the HTTP surface.
func (e *Engine) Listings() []SessionListing {
	return e.sweepAndList()
}

// Disconnect clears every slot the connection holds and drops any queue
// entry for its identity. hard distinguishes a dropped transport (player
// goes offline) from a voluntary leave (player stays online). Idempotent.
func (e *Engine) Disconnect(connID string, id Identity, hard bool) {
	e.queue.Remove(id)

	seatedAnywhere := false
	for _, s := range e.registry.Snapshot() {
		if _, seated := s.RemovePlayer(connID, hard); seated {
			seatedAnywhere = true
		}
	}

	// Seated removals set presence themselves; everyone else just goes
	// offline when the transport is gone.
	if !seatedAnywhere && hard {
		e.setPresence(id, PresenceOffline)
	}
}

// KillSession force-removes a session: stop the loop, drop the registry
// entry, announce the removal. Safe to call for ids already pruned.
func (e *Engine) KillSession(id string) {
	s, ok := e.registry.Get(id)
	if !ok {
		return
	}
	s.Kill()
	e.registry.Delete(id)
	e.announceRemoved(id)
	log.Printf("[GAME] session %s: killed", id)
}

// Sweep prunes finished, abandoned and idle-expired sessions. Run
// periodically by the sweep worker; list_sessions does the same inline.
func (e *Engine) Sweep() {
	e.sweepAndList()
}

// SessionCount returns the number of registered sessions.
func (e *Engine) SessionCount() int {
	return e.registry.Len()
}

// QueueLen returns the number of players waiting for a ranked pairing.
func (e *Engine) QueueLen() int {
	return e.queue.Len()
}

func (e *Engine) drainPairs() {
	for _, pair := range e.queue.TakePairs() {
		first, second := pair[0], pair[1]
		id := uuid.NewString()

		s := NewSession(id, ModeRanked, e.settings, e.presence, e.results)
		e.registry.GetOrCreate(id, func() *Session { return s })

		first.send(EventAssignedSession, map[string]any{"session_id": id})
		second.send(EventAssignedSession, map[string]any{"session_id": id})
		s.AddPlayer(first)
		s.AddPlayer(second)

		log.Printf("[GAME] paired %s vs %s into session %s",
			first.Identity.DisplayName, second.Identity.DisplayName, id)
	}
}

func (e *Engine) sweepAndList() []SessionListing {
	entries := make([]SessionListing, 0)
	for id, s := range e.registry.Snapshot() {
		if s.Prunable() || s.Expired(e.settings.MaxIdle) {
			s.Kill()
			e.registry.Delete(id)
			e.announceRemoved(id)
			continue
		}
		if entry, ok := s.Listing(); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (e *Engine) announceRemoved(id string) {
	if e.announce != nil {
		e.announce.Broadcast(EventSessionRemoved, map[string]any{"session_id": id})
	}
}

func (e *Engine) setPresence(id Identity, status PresenceStatus) {
	if e.presence != nil {
		e.presence.SetStatus(context.Background(), id.UserID, status)
	}
}
