package mind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func TestDecayMood_DrainsIntensity(t *testing.T) {
	e := EmotionalState{Current: MoodExcited, Intensity: 0.8, UpdatedAt: t0}
	out := DecayMood(e, t0.Add(100*time.Second))
	assert.Equal(t, MoodExcited, out.Current)
	assert.InDelta(t, 0.6, out.Intensity, 1e-9)
}

func TestDecayMood_ResetsToNeutralUnderFloor(t *testing.T) {
	e := EmotionalState{Current: MoodBearish, Intensity: 0.2, UpdatedAt: t0}
	out := DecayMood(e, t0.Add(10*time.Minute))
	assert.Equal(t, MoodNeutral, out.Current)
	assert.Equal(t, NeutralState().Intensity, out.Intensity)
}

func TestDecayMood_EmptyStateBecomesNeutral(t *testing.T) {
	out := DecayMood(EmotionalState{}, t0)
	assert.Equal(t, MoodNeutral, out.Current)
}

func TestApplyMessageEvent(t *testing.T) {
	out := ApplyMessageEvent(NeutralState(), "positive", t0)
	assert.Equal(t, MoodExcited, out.Current)
	assert.Equal(t, 0.5, out.Intensity)
	assert.Contains(t, out.Triggers, "positive_message")

	// Positive on already excited stacks intensity.
	out = ApplyMessageEvent(out, "positive", t0)
	assert.Equal(t, MoodExcited, out.Current)
	assert.InDelta(t, 0.65, out.Intensity, 1e-9)

	out = ApplyMessageEvent(NeutralState(), "negative", t0)
	assert.Equal(t, MoodIrritated, out.Current)

	// Neutral sentiment leaves the state alone.
	out = ApplyMessageEvent(NeutralState(), "neutral", t0)
	assert.Equal(t, MoodNeutral, out.Current)
}

func TestApplyMarketEvent(t *testing.T) {
	out := ApplyMarketEvent(NeutralState(), 8, t0)
	assert.Equal(t, MoodBullish, out.Current)
	assert.Contains(t, out.Triggers, "market_pump")

	out = ApplyMarketEvent(NeutralState(), -12, t0)
	assert.Equal(t, MoodBearish, out.Current)

	// Small moves are a no-op.
	out = ApplyMarketEvent(NeutralState(), 1.5, t0)
	assert.Equal(t, MoodNeutral, out.Current)
	assert.Empty(t, out.Triggers)
}

func TestApplyTimeOfDay(t *testing.T) {
	late := ApplyTimeOfDay(NeutralState(), 3, t0)
	assert.Equal(t, MoodTired, late.Current)

	// Daytime and already-activated states are untouched.
	day := ApplyTimeOfDay(NeutralState(), 14, t0)
	assert.Equal(t, MoodNeutral, day.Current)

	excited := EmotionalState{Current: MoodExcited, Intensity: 0.7}
	assert.Equal(t, MoodExcited, ApplyTimeOfDay(excited, 3, t0).Current)
}

func TestEmotionalActivation_Ordering(t *testing.T) {
	excited := EmotionalActivation(EmotionalState{Current: MoodExcited, Intensity: 0.8})
	neutral := EmotionalActivation(NeutralState())
	tired := EmotionalActivation(EmotionalState{Current: MoodTired, Intensity: 0.6})

	assert.Greater(t, excited, neutral)
	assert.Greater(t, neutral, tired)
	for _, v := range []float64{excited, neutral, tired} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestTriggerHistoryBounded(t *testing.T) {
	e := NeutralState()
	for i := 0; i < 10; i++ {
		e = ApplyMessageEvent(e, "positive", t0)
	}
	assert.Len(t, e.Triggers, maxTriggers)
}
