package mind

import "time"

// Mood names produced by the state machine.
const (
	MoodNeutral   = "neutral"
	MoodExcited   = "excited"
	MoodBullish   = "bullish"
	MoodBearish   = "bearish"
	MoodTired     = "tired"
	MoodIrritated = "irritated"
)

// MoodDecayPerSecond drains intensity toward zero over time.
const MoodDecayPerSecond = 0.002

// maxTriggers bounds the trigger history carried in the state.
const maxTriggers = 5

// EmotionalState is the current mood with intensity and recent triggers.
type EmotionalState struct {
	Current   string    `json:"current"`
	Intensity float64   `json:"intensity"` // 0..1
	Triggers  []string  `json:"triggers,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NeutralState returns the resting state.
func NeutralState() EmotionalState {
	return EmotionalState{Current: MoodNeutral, Intensity: 0.2}
}

// DecayMood drains intensity for the elapsed time since UpdatedAt. When
// intensity falls under the floor the mood resets to neutral.
func DecayMood(e EmotionalState, now time.Time) EmotionalState {
	out := e
	if out.Current == "" {
		return NeutralState()
	}
	if !e.UpdatedAt.IsZero() {
		sec := now.Sub(e.UpdatedAt).Seconds()
		if sec > 0 {
			out.Intensity = clamp01(out.Intensity - MoodDecayPerSecond*sec)
		}
	}
	if out.Intensity < 0.15 && out.Current != MoodNeutral {
		out = NeutralState()
	}
	out.UpdatedAt = now
	return out
}

// ApplyMessageEvent shifts mood from a message's sentiment.
func ApplyMessageEvent(e EmotionalState, sentiment string, now time.Time) EmotionalState {
	out := e
	switch sentiment {
	case "positive":
		if out.Current == MoodExcited {
			out.Intensity = clamp01(out.Intensity + 0.15)
		} else if out.Current == MoodNeutral || out.Current == MoodTired {
			out.Current = MoodExcited
			out.Intensity = 0.5
		}
		out.Triggers = pushTrigger(out.Triggers, "positive_message")
	case "negative":
		if out.Current == MoodIrritated {
			out.Intensity = clamp01(out.Intensity + 0.15)
		} else {
			out.Current = MoodIrritated
			out.Intensity = 0.45
		}
		out.Triggers = pushTrigger(out.Triggers, "negative_message")
	}
	out.UpdatedAt = now
	return out
}

// ApplyMarketEvent shifts mood on big market moves. Small moves leave the
// state alone.
func ApplyMarketEvent(e EmotionalState, change24h float64, now time.Time) EmotionalState {
	out := e
	switch {
	case change24h > 5:
		out.Current = MoodBullish
		out.Intensity = clamp01(0.4 + change24h/50)
		out.Triggers = pushTrigger(out.Triggers, "market_pump")
	case change24h < -5:
		out.Current = MoodBearish
		out.Intensity = clamp01(0.4 - change24h/50)
		out.Triggers = pushTrigger(out.Triggers, "market_dump")
	default:
		return out
	}
	out.UpdatedAt = now
	return out
}

// ApplyTimeOfDay makes a calm persona tired deep at night.
func ApplyTimeOfDay(e EmotionalState, hour int, now time.Time) EmotionalState {
	if hour >= 1 && hour < 6 && (e.Current == MoodNeutral || e.Current == "") && e.Intensity < 0.4 {
		out := e
		out.Current = MoodTired
		out.Intensity = 0.4
		out.UpdatedAt = now
		return out
	}
	return e
}

// EmotionalActivation maps the state to a 0..1 contribution for the
// engagement score. Tiredness suppresses, everything else amplifies.
func EmotionalActivation(e EmotionalState) float64 {
	switch e.Current {
	case MoodExcited, MoodBullish:
		return clamp01(0.3 + e.Intensity*0.7)
	case MoodIrritated, MoodBearish:
		return clamp01(0.2 + e.Intensity*0.5)
	case MoodTired:
		return clamp01(0.2 - e.Intensity*0.2)
	default:
		return 0.25
	}
}

func pushTrigger(list []string, trigger string) []string {
	list = append(list, trigger)
	if len(list) > maxTriggers {
		list = list[len(list)-maxTriggers:]
	}
	return list
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
