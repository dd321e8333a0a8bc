package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

// Storage persists per-room social bookkeeping (relationship records,
// reply counters) across restarts. The variable context snapshot itself is
// never stored here.
type Storage struct {
	ds *datastore.DataStore
}

// PersonRecord is the durable form of a relationship model.
type PersonRecord struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	Interactions int       `json:"interactions"`
	Affinity     float64   `json:"affinity"`
	Irritation   float64   `json:"irritation"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

// RoomRecord groups everything stored for one room, keyed by room ID.
type RoomRecord struct {
	People      map[string]PersonRecord `json:"people"`
	RepliesSent int                     `json:"replies_sent"`
	LastReplyAt time.Time               `json:"last_reply_at,omitempty"`
}

// New opens or creates the datastore file.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying store.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// Room returns the record for roomID, empty when none exists yet.
func (s *Storage) Room(roomID string) RoomRecord {
	rec := RoomRecord{People: make(map[string]PersonRecord)}
	data, exists := s.ds.Get(roomID)
	if !exists {
		return rec
	}
	// Values loaded from disk arrive as generic maps; round-trip through
	// json to get the typed record back.
	raw, err := json.Marshal(data)
	if err != nil {
		return rec
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return RoomRecord{People: make(map[string]PersonRecord)}
	}
	if rec.People == nil {
		rec.People = make(map[string]PersonRecord)
	}
	return rec
}

// SaveRoom stores the record for roomID.
func (s *Storage) SaveRoom(roomID string, rec RoomRecord) {
	s.ds.Add(roomID, rec)
}

// UpsertPerson stores one person inside the room record.
func (s *Storage) UpsertPerson(roomID string, p PersonRecord) {
	rec := s.Room(roomID)
	rec.People[p.UserID] = p
	s.SaveRoom(roomID, rec)
}

// RecordReply bumps the room's reply counter.
func (s *Storage) RecordReply(roomID string, at time.Time) {
	rec := s.Room(roomID)
	rec.RepliesSent++
	rec.LastReplyAt = at
	s.SaveRoom(roomID, rec)
}
