package game

import (
	"context"
	"sync"
	"time"

	"github.com/pongarena/backend/internal/models"
)

type sentEvent struct {
	name    string
	payload any
}

// fakeSender records every event pushed to one connection, in order.
type fakeSender struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeSender) Send(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{name: event, payload: payload})
}

func (f *fakeSender) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.name
	}
	return out
}

func (f *fakeSender) snapshots() []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Snapshot
	for _, e := range f.events {
		if snap, ok := e.payload.(Snapshot); ok {
			out = append(out, snap)
		}
	}
	return out
}

func (f *fakeSender) count(event string) int {
	n := 0
	for _, e := range f.names() {
		if e == event {
			n++
		}
	}
	return n
}

// firstIndex returns the position of the first occurrence, or -1.
func (f *fakeSender) firstIndex(event string) int {
	for i, e := range f.names() {
		if e == event {
			return i
		}
	}
	return -1
}

type fakePresence struct {
	mu       sync.Mutex
	statuses map[int][]PresenceStatus
}

func newFakePresence() *fakePresence {
	return &fakePresence{statuses: make(map[int][]PresenceStatus)}
}

func (f *fakePresence) SetStatus(_ context.Context, userID int, status PresenceStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[userID] = append(f.statuses[userID], status)
}

func (f *fakePresence) last(userID int) PresenceStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	got := f.statuses[userID]
	if len(got) == 0 {
		return ""
	}
	return got[len(got)-1]
}

type fakeResults struct {
	mu      sync.Mutex
	records []models.MatchRecord
}

func (f *fakeResults) RecordMatch(_ context.Context, rec models.MatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeResults) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeResults) all() []models.MatchRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.MatchRecord, len(f.records))
	copy(out, f.records)
	return out
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) Broadcast(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeBroadcaster) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}

func testPlayer(connID string, userID int, name string) (*Player, *fakeSender) {
	s := &fakeSender{}
	return NewPlayer(connID, Identity{UserID: userID, DisplayName: name}, s), s
}

// fastSettings finishes a match within a handful of millisecond ticks:
// the ball overshoots the field every step, so every tick is a score.
func fastSettings() Settings {
	return Settings{WinningScore: 2, BallSpeed: 5000, TickInterval: time.Millisecond}
}

// slowSettings keeps a match running for the life of a test.
func slowSettings() Settings {
	return Settings{WinningScore: 1000, BallSpeed: 0.001, TickInterval: time.Millisecond}
}
