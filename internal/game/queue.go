package game

import "sync"

// Queue is the ranked matchmaking waiting list: FIFO, de-duplicated by
// user identity. Every mutation is behind one mutex so two concurrent
// drains can never hand the same waiting player to two sessions.
type Queue struct {
	mu      sync.Mutex
	waiting []*Player
}

// NewQueue creates an empty matchmaking queue.
func NewQueue() *Queue {
	return &Queue{waiting: make([]*Player, 0)}
}

// Enqueue appends p unless that user identity is already waiting.
// Returns false on a duplicate; the queue is unchanged in that case.
func (q *Queue) Enqueue(p *Player) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, waiting := range q.waiting {
		if waiting.Identity.UserID == p.Identity.UserID {
			return false
		}
	}
	q.waiting = append(q.waiting, p)
	return true
}

// Remove drops a waiting entry for the given identity, if present.
func (q *Queue) Remove(id Identity) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, waiting := range q.waiting {
		if waiting.Identity.UserID == id.UserID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}

// TakePairs atomically pops as many oldest-first pairs as the queue
// holds. An odd trailing entry stays queued.
func (q *Queue) TakePairs() [][2]*Player {
	q.mu.Lock()
	defer q.mu.Unlock()

	var pairs [][2]*Player
	for len(q.waiting) >= 2 {
		pairs = append(pairs, [2]*Player{q.waiting[0], q.waiting[1]})
		q.waiting = q.waiting[2:]
	}
	return pairs
}

// Len returns the number of waiting players.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
