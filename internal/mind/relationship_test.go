package mind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPersonLevel(t *testing.T) {
	var nilPerson *Person
	assert.Equal(t, LevelStranger, nilPerson.Level())
	assert.Equal(t, LevelStranger, (&Person{Interactions: 2}).Level())
	assert.Equal(t, LevelAcquaintance, (&Person{Interactions: 3}).Level())
	assert.Equal(t, LevelRegular, (&Person{Interactions: 15}).Level())
	assert.Equal(t, LevelFriend, (&Person{Interactions: 50}).Level())
}

func TestPersonScore(t *testing.T) {
	assert.Zero(t, (*Person)(nil).Score())
	assert.InDelta(t, 0.5, (&Person{Affinity: 0.5}).Score(), 1e-9)
	assert.InDelta(t, 0.3, (&Person{Affinity: 0.5, Irritation: 0.4}).Score(), 1e-9)
	// Irritation can never push the score negative.
	assert.Zero(t, (&Person{Affinity: 0.1, Irritation: 1}).Score())
}

func TestClassifyMessage(t *testing.T) {
	assert.Equal(t, MessagePositive, ClassifyMessage("thanks, nice one"))
	assert.Equal(t, MessagePositive, ClassifyMessage("LFG"))
	assert.Equal(t, MessageNegative, ClassifyMessage("shut up bot"))
	assert.Equal(t, MessageAggressive, ClassifyMessage("WHY IS EVERYTHING DUMPING"))
	assert.Equal(t, MessageNeutral, ClassifyMessage("sol chart looks flat"))
	assert.Equal(t, MessageNeutral, ClassifyMessage(""))
}

func TestUpdatePerson(t *testing.T) {
	p := UpdatePerson(nil, MessageNeutral, "dave", t0)
	assert.Equal(t, 1, p.Interactions)
	assert.Equal(t, "dave", p.Username)
	assert.Equal(t, t0, p.FirstSeen)
	assert.InDelta(t, 0.01, p.Affinity, 1e-9)

	p = UpdatePerson(p, MessagePositive, "dave", t0.Add(time.Minute))
	assert.Equal(t, 2, p.Interactions)
	assert.InDelta(t, 0.06, p.Affinity, 1e-9)
	assert.Equal(t, t0, p.FirstSeen)
	assert.Equal(t, t0.Add(time.Minute), p.LastSeen)

	p = UpdatePerson(p, MessageAggressive, "", t0.Add(2*time.Minute))
	assert.InDelta(t, 0.075, p.Irritation, 1e-9)
	assert.Equal(t, "dave", p.Username)
}
