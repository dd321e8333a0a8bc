package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "marketmind.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_EmptyRoom(t *testing.T) {
	s := openTestStorage(t)
	rec := s.Room("nowhere")
	assert.NotNil(t, rec.People)
	assert.Empty(t, rec.People)
	assert.Zero(t, rec.RepliesSent)
}

func TestStorage_UpsertPersonRoundTrip(t *testing.T) {
	s := openTestStorage(t)
	seen := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	s.UpsertPerson("r1", PersonRecord{
		UserID:       "u1",
		Username:     "dave",
		Interactions: 7,
		Affinity:     0.3,
		FirstSeen:    seen,
		LastSeen:     seen,
	})

	rec := s.Room("r1")
	p, ok := rec.People["u1"]
	require.True(t, ok)
	assert.Equal(t, "dave", p.Username)
	assert.Equal(t, 7, p.Interactions)
	assert.InDelta(t, 0.3, p.Affinity, 1e-9)
	assert.True(t, p.FirstSeen.Equal(seen))
}

func TestStorage_UpsertKeepsOtherPeople(t *testing.T) {
	s := openTestStorage(t)
	s.UpsertPerson("r1", PersonRecord{UserID: "u1", Interactions: 1})
	s.UpsertPerson("r1", PersonRecord{UserID: "u2", Interactions: 2})
	s.UpsertPerson("r1", PersonRecord{UserID: "u1", Interactions: 5})

	rec := s.Room("r1")
	assert.Len(t, rec.People, 2)
	assert.Equal(t, 5, rec.People["u1"].Interactions)
	assert.Equal(t, 2, rec.People["u2"].Interactions)
}

func TestStorage_RecordReply(t *testing.T) {
	s := openTestStorage(t)
	at := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	s.RecordReply("r1", at)
	s.RecordReply("r1", at.Add(time.Minute))

	rec := s.Room("r1")
	assert.Equal(t, 2, rec.RepliesSent)
	assert.True(t, rec.LastReplyAt.Equal(at.Add(time.Minute)))
}

func TestStorage_RoomsAreIsolated(t *testing.T) {
	s := openTestStorage(t)
	s.UpsertPerson("r1", PersonRecord{UserID: "u1"})
	assert.Empty(t, s.Room("r2").People)
}
