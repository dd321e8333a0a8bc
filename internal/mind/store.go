package mind

import (
	"math"
	"sync"
	"time"

	"github.com/keshon/marketmind/internal/storage"
)

// ActivityDecayK is the per-second exponential decay of the activity score.
const ActivityDecayK = 0.01

// maxHistory bounds the per-room short message buffer.
const maxHistory = 50

// RoomState holds everything the engine remembers about one room: the
// short message buffer, the mood, and the people. Safe for concurrent use.
type RoomState struct {
	RoomID string

	mu                    sync.Mutex
	history               []Message
	emotions              EmotionalState
	people                map[string]*Person
	lastSpokeAt           time.Time
	consecutiveBotReplies int
	activityScore         float64
	lastActivityAt        time.Time
}

// PushMessage appends to the history buffer and bumps activity. Assistant
// messages grow the consecutive-reply counter, user messages reset it.
func (r *RoomState) PushMessage(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, m)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
	if m.Role == "assistant" {
		r.consecutiveBotReplies++
	} else {
		r.consecutiveBotReplies = 0
	}
	r.decayActivityLocked(m.Timestamp)
	r.activityScore++
	if r.activityScore > 100 {
		r.activityScore = 100
	}
	r.lastActivityAt = m.Timestamp
}

// History returns a copy of the buffer, oldest first.
func (r *RoomState) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.history))
	copy(out, r.history)
	return out
}

// Emotions returns the current mood state.
func (r *RoomState) Emotions() EmotionalState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emotions.Current == "" {
		return NeutralState()
	}
	return r.emotions
}

// SetEmotions overwrites the mood state.
func (r *RoomState) SetEmotions(e EmotionalState) {
	r.mu.Lock()
	r.emotions = e
	r.mu.Unlock()
}

// Person returns a copy of the person record, nil when unknown.
func (r *RoomState) Person(userID string) *Person {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.people[userID]
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// SetPerson stores the person record.
func (r *RoomState) SetPerson(p *Person) {
	if p == nil || p.UserID == "" {
		return
	}
	r.mu.Lock()
	r.people[p.UserID] = p
	r.mu.Unlock()
}

// ActivityNorm returns channel activity as 0..1, decayed to now.
func (r *RoomState) ActivityNorm(now time.Time) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decayActivityLocked(now)
	return clamp01(r.activityScore / 20)
}

// MarkSpoke records that the bot replied at t.
func (r *RoomState) MarkSpoke(t time.Time) {
	r.mu.Lock()
	r.lastSpokeAt = t
	r.mu.Unlock()
}

// LastSpokeAt returns when the bot last replied in this room.
func (r *RoomState) LastSpokeAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSpokeAt
}

// ConsecutiveBotReplies returns the current run of assistant messages.
func (r *RoomState) ConsecutiveBotReplies() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.consecutiveBotReplies
}

func (r *RoomState) decayActivityLocked(now time.Time) {
	if r.lastActivityAt.IsZero() {
		return
	}
	elapsed := now.Sub(r.lastActivityAt).Seconds()
	if elapsed <= 0 {
		return
	}
	r.activityScore *= math.Exp(-ActivityDecayK * elapsed)
}

// Store holds per-room states, creating and hydrating them lazily from the
// persistent storage. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	rooms   map[string]*RoomState
	storage *storage.Storage
}

// NewStore creates a store. st may be nil (no persistence, e.g. the CLI).
func NewStore(st *storage.Storage) *Store {
	return &Store{rooms: make(map[string]*RoomState), storage: st}
}

// Room returns the state for roomID, creating it on first sight.
func (s *Store) Room(roomID string) *RoomState {
	s.mu.RLock()
	r := s.rooms[roomID]
	s.mu.RUnlock()
	if r != nil {
		return r
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r = s.rooms[roomID]; r != nil {
		return r
	}
	r = &RoomState{RoomID: roomID, people: make(map[string]*Person)}
	if s.storage != nil {
		rec := s.storage.Room(roomID)
		for id, pr := range rec.People {
			r.people[id] = &Person{
				UserID:       id,
				Username:     pr.Username,
				Interactions: pr.Interactions,
				Affinity:     pr.Affinity,
				Irritation:   pr.Irritation,
				FirstSeen:    pr.FirstSeen,
				LastSeen:     pr.LastSeen,
			}
		}
	}
	s.rooms[roomID] = r
	return r
}

// PersistPerson writes a person record through to storage.
func (s *Store) PersistPerson(roomID string, p *Person) {
	if s.storage == nil || p == nil {
		return
	}
	s.storage.UpsertPerson(roomID, storage.PersonRecord{
		UserID:       p.UserID,
		Username:     p.Username,
		Interactions: p.Interactions,
		Affinity:     p.Affinity,
		Irritation:   p.Irritation,
		FirstSeen:    p.FirstSeen,
		LastSeen:     p.LastSeen,
	})
}

// RecordReply bumps the durable reply counter.
func (s *Store) RecordReply(roomID string, at time.Time) {
	if s.storage == nil {
		return
	}
	s.storage.RecordReply(roomID, at)
}
