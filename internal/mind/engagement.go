package mind

import (
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// EngagementConfig holds thresholds and weights for the should-respond
// score. Mentions and DMs bypass the score entirely.
type EngagementConfig struct {
	ResponseThreshold     float64
	ActivityWeight        float64
	EmotionWeight         float64
	TopicWeight           float64
	RandomFactor          float64
	RecentReplyPenalty    float64
	RecentReplyWindow     time.Duration
	RunawayMaxConsecutive int // max bot replies in a row without a user reply
}

// DefaultEngagementConfig returns sane defaults tuned for a busy channel.
func DefaultEngagementConfig() EngagementConfig {
	return EngagementConfig{
		ResponseThreshold:     0.45,
		ActivityWeight:        0.25,
		EmotionWeight:         0.25,
		TopicWeight:           0.25,
		RandomFactor:          0.15,
		RecentReplyPenalty:    0.2,
		RecentReplyWindow:     90 * time.Second,
		RunawayMaxConsecutive: 3,
	}
}

// DesireInput bundles the per-call inputs for the score.
type DesireInput struct {
	ActivityNorm          float64 // 0..1 recent channel activity
	EmotionalActivation   float64 // 0..1 from EmotionalActivation
	TopicRelevance        float64 // 0..1 keyword overlap with our interests
	LastSpokeAt           time.Time
	ConsecutiveBotReplies int
	Now                   time.Time
}

// DesireToRespond computes the 0..1 score. The runaway cap zeroes it so the
// bot never monologues.
func DesireToRespond(cfg EngagementConfig, in DesireInput, rng *rand.Rand) float64 {
	if in.ConsecutiveBotReplies >= cfg.RunawayMaxConsecutive {
		return 0
	}
	score := cfg.ActivityWeight*in.ActivityNorm +
		cfg.EmotionWeight*in.EmotionalActivation +
		cfg.TopicWeight*in.TopicRelevance
	if !in.LastSpokeAt.IsZero() && in.Now.Sub(in.LastSpokeAt) < cfg.RecentReplyWindow {
		score -= cfg.RecentReplyPenalty
	}
	score += cfg.RandomFactor * rng.Float64()
	return clamp01(score)
}

// RateGate enforces per-room reply pacing: a token bucket per room plus a
// short hard cooldown. Mentioned-or-not, the gate always applies.
type RateGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	last     map[string]time.Time
	rps      rate.Limit
	burst    int
	cooldown time.Duration
}

// NewRateGate creates a gate. Defaults: 1 reply per 10s sustained, burst 2,
// 5s hard cooldown.
func NewRateGate() *RateGate {
	return NewRateGateWith(rate.Every(10*time.Second), 2, 5*time.Second)
}

// NewRateGateWith creates a gate with explicit pacing.
func NewRateGateWith(rps rate.Limit, burst int, cooldown time.Duration) *RateGate {
	return &RateGate{
		limiters: make(map[string]*rate.Limiter),
		last:     make(map[string]time.Time),
		rps:      rps,
		burst:    burst,
		cooldown: cooldown,
	}
}

// Allow reports whether a reply to roomID may go out now, consuming a token
// when it may.
func (g *RateGate) Allow(roomID string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if last, ok := g.last[roomID]; ok && now.Sub(last) < g.cooldown {
		return false
	}
	lim, ok := g.limiters[roomID]
	if !ok {
		lim = rate.NewLimiter(g.rps, g.burst)
		g.limiters[roomID] = lim
	}
	if !lim.AllowN(now, 1) {
		return false
	}
	g.last[roomID] = now
	return true
}
