package mind

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestDesireToRespond_RunawayCap(t *testing.T) {
	cfg := DefaultEngagementConfig()
	rng := rand.New(rand.NewSource(1))
	in := DesireInput{
		ActivityNorm:          1,
		EmotionalActivation:   1,
		TopicRelevance:        1,
		ConsecutiveBotReplies: cfg.RunawayMaxConsecutive,
		Now:                   t0,
	}
	assert.Zero(t, DesireToRespond(cfg, in, rng))
}

func TestDesireToRespond_HotInputsClearThreshold(t *testing.T) {
	cfg := DefaultEngagementConfig()
	rng := rand.New(rand.NewSource(1))
	in := DesireInput{ActivityNorm: 1, EmotionalActivation: 1, TopicRelevance: 1, Now: t0}
	for i := 0; i < 50; i++ {
		assert.GreaterOrEqual(t, DesireToRespond(cfg, in, rng), cfg.ResponseThreshold)
	}
}

func TestDesireToRespond_ColdInputsStayUnder(t *testing.T) {
	cfg := DefaultEngagementConfig()
	rng := rand.New(rand.NewSource(1))
	in := DesireInput{Now: t0}
	for i := 0; i < 50; i++ {
		assert.Less(t, DesireToRespond(cfg, in, rng), cfg.ResponseThreshold)
	}
}

func TestDesireToRespond_RecentReplyPenalty(t *testing.T) {
	cfg := DefaultEngagementConfig()
	cfg.RandomFactor = 0 // deterministic
	rng := rand.New(rand.NewSource(1))

	base := DesireInput{ActivityNorm: 0.8, EmotionalActivation: 0.8, TopicRelevance: 0.8, Now: t0}
	fresh := DesireToRespond(cfg, base, rng)

	recent := base
	recent.LastSpokeAt = t0.Add(-30 * time.Second)
	penalized := DesireToRespond(cfg, recent, rng)

	assert.InDelta(t, cfg.RecentReplyPenalty, fresh-penalized, 1e-9)

	old := base
	old.LastSpokeAt = t0.Add(-5 * time.Minute)
	assert.Equal(t, fresh, DesireToRespond(cfg, old, rng))
}

func TestRateGate_CooldownAndBurst(t *testing.T) {
	g := NewRateGateWith(rate.Every(time.Minute), 2, 5*time.Second)

	assert.True(t, g.Allow("room", t0))
	// Hard cooldown blocks immediately after.
	assert.False(t, g.Allow("room", t0.Add(time.Second)))
	// Past cooldown, the second burst token is available.
	assert.True(t, g.Allow("room", t0.Add(6*time.Second)))
	// Burst spent and bucket not refilled yet.
	assert.False(t, g.Allow("room", t0.Add(12*time.Second)))
	// Refill after enough time.
	assert.True(t, g.Allow("room", t0.Add(3*time.Minute)))
}

func TestRateGate_RoomsAreIndependent(t *testing.T) {
	g := NewRateGateWith(rate.Every(10*time.Second), 1, 5*time.Second)
	assert.True(t, g.Allow("a", t0))
	assert.True(t, g.Allow("b", t0))
	assert.False(t, g.Allow("a", t0.Add(time.Second)))
}
