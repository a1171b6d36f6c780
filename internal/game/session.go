package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/pongarena/backend/internal/models"
)

// Status is a session's lifecycle state.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// Mode distinguishes matchmade sessions from invitation rooms. Invitation
// rooms keep both players seated after a finish and allow a rematch.
type Mode string

const (
	ModeRanked     Mode = "ranked"
	ModeInvitation Mode = "invitation"
)

// Session is one match: two seats, any number of spectators, the ball and
// both scores. All mutable fields are guarded by mu; the tick loop and the
// intent handlers both take it, which is the single-writer discipline that
// keeps a move from racing a position read mid-tick. Sessions never share
// state with each other.
type Session struct {
	ID   string
	Mode Mode

	mu         sync.Mutex
	status     Status
	removed    bool
	first      *Player
	second     *Player
	spectators []*Player
	ball       Ball
	rng        *rand.Rand
	lastActive time.Time

	winningScore int
	ballSpeed    float64
	tick         time.Duration

	presence PresenceSink
	results  ResultStore
}

// Settings carries the per-deployment tunables a session is built with.
type Settings struct {
	WinningScore int
	BallSpeed    float64
	TickInterval time.Duration
	MaxIdle      time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.WinningScore <= 0 {
		s.WinningScore = DefaultWinningScore
	}
	if s.BallSpeed <= 0 {
		s.BallSpeed = DefaultBallSpeed
	}
	if s.TickInterval <= 0 {
		s.TickInterval = TickInterval
	}
	return s
}

// NewSession creates an empty session in the waiting state.
func NewSession(id string, mode Mode, settings Settings, presence PresenceSink, results ResultStore) *Session {
	settings = settings.withDefaults()
	return &Session{
		ID:           id,
		Mode:         mode,
		status:       StatusWaiting,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		lastActive:   time.Now(),
		winningScore: settings.WinningScore,
		ballSpeed:    settings.BallSpeed,
		tick:         settings.TickInterval,
		presence:     presence,
		results:      results,
	}
}

// AddPlayer seats p in the first free seat, or appends it to the
// spectators when both seats are taken. Filling the second seat starts
// the match and its tick loop.
func (s *Session) AddPlayer(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()

	switch {
	case s.first == nil:
		s.first = p
		p.send(EventRoleAssigned, map[string]any{"role": RoleFirst})
		p.send(EventWinningScore, map[string]any{"score": s.winningScore})

	case s.second == nil:
		s.second = p
		p.send(EventRoleAssigned, map[string]any{"role": RoleSecond})
		p.send(EventWinningScore, map[string]any{"score": s.winningScore})
		s.first.send(EventOpponentIdentity, s.second.Identity)
		s.second.send(EventOpponentIdentity, s.first.Identity)
		s.startLocked()

	default:
		s.spectators = append(s.spectators, p)
		p.send(EventRoleAssigned, map[string]any{"role": RoleWatching})
		p.send(EventWinningScore, map[string]any{"score": s.winningScore})
	}
}

// RemovePlayer clears whatever slot the connection holds. Clearing a seat
// aborts the match: the loop stops on its next tick, the session is marked
// removed for pruning, and no result is persisted. Spectator removal has
// no side effects. Returns whether the connection was found and whether it
// held a seat.
func (s *Session) RemovePlayer(connID string, hard bool) (found, seated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leaver, remaining *Player
	switch {
	case s.first != nil && s.first.ConnID == connID:
		leaver, remaining = s.first, s.second
		s.first = nil
	case s.second != nil && s.second.ConnID == connID:
		leaver, remaining = s.second, s.first
		s.second = nil
	default:
		return s.removeSpectatorLocked(connID), false
	}

	if s.status == StatusRunning {
		s.status = StatusWaiting
	}
	s.removed = true
	s.lastActive = time.Now()

	if hard {
		s.setPresenceLocked(leaver, PresenceOffline)
	} else {
		s.setPresenceLocked(leaver, PresenceOnline)
	}
	if remaining != nil {
		s.setPresenceLocked(remaining, PresenceOnline)
		remaining.send(EventOpponentDisconnected, map[string]any{})
	}
	for _, w := range s.spectators {
		w.send(EventPlayerDisconnected, map[string]any{"session_id": s.ID})
	}

	log.Printf("[GAME] session %s: seat cleared (conn=%s hard=%v)", s.ID, connID, hard)
	return true, true
}

// RemoveSpectator drops a watching connection. No-op for seated players.
func (s *Session) RemoveSpectator(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeSpectatorLocked(connID)
}

// SetPaddleIntent records a player's held direction. Ignored unless both
// seats are filled, so a half-formed match cannot be steered.
func (s *Session) SetPaddleIntent(connID string, velocitySign int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning || s.first == nil || s.second == nil {
		return
	}
	if velocitySign < -1 || velocitySign > 1 {
		return
	}
	switch {
	case s.first.ConnID == connID:
		s.first.VelocitySign = velocitySign
	case s.second.ConnID == connID:
		s.second.VelocitySign = velocitySign
	}
}

// Rematch restarts a finished invitation match with scores reset. Only a
// seated player may request it, and never while the match is running.
func (s *Session) Rematch(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Mode != ModeInvitation || s.status == StatusRunning {
		return
	}
	if s.first == nil || s.second == nil {
		return
	}
	if s.first.ConnID != connID && s.second.ConnID != connID {
		return
	}

	s.first.Score = 0
	s.second.Score = 0
	s.startLocked()
	log.Printf("[GAME] session %s: rematch started", s.ID)
}

// Kill stops the session unconditionally and marks it removed. Seated
// players are told the match is no longer running. Idempotent.
func (s *Session) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusRunning {
		s.status = StatusWaiting
		s.first.send(EventRunning, map[string]any{"running": false})
		s.second.send(EventRunning, map[string]any{"running": false})
	}
	s.removed = true
}

// Tick advances the simulation one step and broadcasts snapshots. It
// reports whether the loop should keep going; reaching the winning score
// finishes the match as a side effect. The result report runs after mu
// is released so a slow store never blocks readers of this session.
func (s *Session) Tick() bool {
	s.mu.Lock()

	if s.status != StatusRunning || s.first == nil || s.second == nil {
		s.mu.Unlock()
		return false
	}

	switch StepBall(&s.ball, s.rng, s.first.PaddleY, s.second.PaddleY) {
	case FirstScores:
		s.first.Score++
	case SecondScores:
		s.second.Score++
	}
	s.first.PaddleY = StepPaddle(s.first.PaddleY, s.first.VelocitySign)
	s.second.PaddleY = StepPaddle(s.second.PaddleY, s.second.VelocitySign)
	s.lastActive = time.Now()

	s.broadcastSnapshotsLocked()

	if s.first.Score >= s.winningScore || s.second.Score >= s.winningScore {
		rec := s.finishLocked()
		s.mu.Unlock()
		s.reportResult(rec)
		return false
	}
	s.mu.Unlock()
	return true
}

// Listing returns the spectator-browser entry for this session; ok is
// false unless both seats are filled.
func (s *Session) Listing() (entry SessionListing, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.first == nil || s.second == nil {
		return SessionListing{}, false
	}
	return SessionListing{
		ID:     s.ID,
		First:  s.first.Identity.DisplayName,
		Second: s.second.Identity.DisplayName,
	}, true
}

// Prunable reports whether an enumeration sweep should drop this session:
// a ranked match that finished, or any session a seated player has left.
func (s *Session) Prunable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusFinished && s.Mode == ModeRanked {
		return true
	}
	return s.removed && (s.first == nil || s.second == nil)
}

// Expired reports whether a session stuck with an empty seat has idled
// past maxIdle. maxIdle <= 0 disables expiry, matching the historical
// behavior of keeping half-empty rooms around until explicitly pruned.
func (s *Session) Expired(maxIdle time.Duration) bool {
	if maxIdle <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning || (s.first != nil && s.second != nil) {
		return false
	}
	return time.Since(s.lastActive) > maxIdle
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Removed reports whether a seated player has left the session.
func (s *Session) Removed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed
}

// Scores returns the current score line.
func (s *Session) Scores() (first, second int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.first != nil {
		first = s.first.Score
	}
	if s.second != nil {
		second = s.second.Score
	}
	return first, second
}

// startLocked flips the session to running, resets the serve and spawns
// the tick loop. Callers hold mu.
func (s *Session) startLocked() {
	s.status = StatusRunning
	s.ball = Ball{
		X:     BallStartX,
		Y:     BallStartY,
		Angle: ServeAngle(s.rng),
		Speed: s.ballSpeed,
	}
	s.first.VelocitySign = 0
	s.second.VelocitySign = 0
	s.first.send(EventRunning, map[string]any{"running": true})
	s.second.send(EventRunning, map[string]any{"running": true})
	s.setPresenceLocked(s.first, PresenceInGame)
	s.setPresenceLocked(s.second, PresenceInGame)
	s.lastActive = time.Now()

	go s.run()
	log.Printf("[GAME] session %s: running (%s vs %s)",
		s.ID, s.first.Identity.DisplayName, s.second.Identity.DisplayName)
}

// run is the per-session tick loop. It holds no lock between ticks, and
// exits as soon as Tick observes the session is no longer running.
func (s *Session) run() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for range ticker.C {
		if !s.Tick() {
			return
		}
	}
}

// finishLocked ends the match under the lock: state flip and final
// broadcast happen here, so players always see the outcome. The returned
// record is handed to reportResult by the caller once mu is released;
// storage trouble stays off the lock and never hides the outcome.
func (s *Session) finishLocked() models.MatchRecord {
	s.status = StatusFinished
	s.first.send(EventRunning, map[string]any{"running": false})
	s.second.send(EventRunning, map[string]any{"running": false})
	s.broadcastSnapshotsLocked()

	if s.Mode == ModeInvitation {
		s.first.send(EventRematchAvailable, map[string]any{})
		s.second.send(EventRematchAvailable, map[string]any{})
	}

	log.Printf("[GAME] session %s: finished %d-%d", s.ID, s.first.Score, s.second.Score)

	return models.MatchRecord{
		Player1ID:    s.first.Identity.UserID,
		Player1Name:  s.first.Identity.DisplayName,
		Player2ID:    s.second.Identity.UserID,
		Player2Name:  s.second.Identity.DisplayName,
		Player1Score: s.first.Score,
		Player2Score: s.second.Score,
		Mode:         string(s.Mode),
		FinishedAt:   time.Now(),
	}
}

// reportResult persists the finished match and restores both players'
// presence. Runs without holding mu.
func (s *Session) reportResult(rec models.MatchRecord) {
	if s.results != nil {
		if err := s.results.RecordMatch(context.Background(), rec); err != nil {
			log.Printf("[GAME] session %s: record match failed: %v", s.ID, err)
		}
	}
	if s.presence != nil {
		s.presence.SetStatus(context.Background(), rec.Player1ID, PresenceOnline)
		s.presence.SetStatus(context.Background(), rec.Player2ID, PresenceOnline)
	}
}

func (s *Session) broadcastSnapshotsLocked() {
	first := Snapshot{
		OwnY:   s.first.PaddleY,
		OppY:   s.second.PaddleY,
		BallX:  s.ball.X,
		BallY:  s.ball.Y,
		Score1: s.first.Score,
		Score2: s.second.Score,
	}
	second := Snapshot{
		OwnY:   s.second.PaddleY,
		OppY:   s.first.PaddleY,
		BallX:  FieldWidth - s.ball.X,
		BallY:  s.ball.Y,
		Score1: s.first.Score,
		Score2: s.second.Score,
	}
	s.first.send(EventPositionSnapshot, first)
	s.second.send(EventPositionSnapshot, second)
	for _, w := range s.spectators {
		w.send(EventPositionSnapshot, second)
	}
}

func (s *Session) removeSpectatorLocked(connID string) bool {
	for i, w := range s.spectators {
		if w.ConnID == connID {
			s.spectators = append(s.spectators[:i], s.spectators[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) setPresenceLocked(p *Player, status PresenceStatus) {
	if s.presence == nil || p == nil {
		return
	}
	s.presence.SetStatus(context.Background(), p.Identity.UserID, status)
}
