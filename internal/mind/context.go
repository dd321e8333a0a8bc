package mind

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/marketmind/internal/market"
)

// Builder produces a complete VariableContext for one message. Every
// namespace is extracted independently; a sub-extraction with no data
// yields its documented default, never an error. BuildContext is total.
type Builder struct {
	cache        *market.Cache
	questionProb float64
	log          zerolog.Logger
	now          func() time.Time

	mu              sync.Mutex
	rng             *rand.Rand
	lastInteraction time.Time
	lastTopic       string
}

// NewBuilder creates a builder. cache may be nil, in which case the market
// namespace always carries defaults.
func NewBuilder(cache *market.Cache, rng *rand.Rand, questionProb float64, log zerolog.Logger) *Builder {
	if questionProb <= 0 {
		questionProb = 0.2
	}
	return &Builder{
		cache:        cache,
		rng:          rng,
		questionProb: questionProb,
		log:          log,
		now:          time.Now,
	}
}

// BuildContext assembles the snapshot from the message, its prior history
// (oldest first), the bot identity, the current mood and the sender's
// relationship record. The only suspension point is the market fetch on a
// cache miss; the returned snapshot is fully settled before use.
func (b *Builder) BuildContext(ctx context.Context, msg Message, history []Message, ident *Identity, emo EmotionalState, person *Person) *VariableContext {
	now := b.now()

	b.mu.Lock()
	var minutesSince float64
	if !b.lastInteraction.IsZero() {
		minutesSince = now.Sub(b.lastInteraction).Minutes()
	}
	lastTopic := b.lastTopic
	random := b.rng.Float64()
	coin := b.rng.Float64() < 0.5
	askQuestion := b.rng.Float64() < b.questionProb
	enthusiasm := b.rng.Float64()
	b.mu.Unlock()

	vc := &VariableContext{
		User:         b.extractUser(msg, ident, person),
		Conversation: b.extractConversation(msg, history, lastTopic, minutesSince),
		Time:         extractTime(now),
		Platform:     extractPlatform(msg, ident),
		Market:       b.extractMarket(ctx),
		Emotional:    extractEmotional(emo),
		Relationship: extractRelationship(person),
		Content:      extractContent(msg.Text),
		Dynamic: DynamicVars{
			Random:            random,
			CoinFlip:          coin,
			ShouldAskQuestion: askQuestion,
			EnthusiasmRoll:    enthusiasm,
		},
	}

	// Rolling scalars consumed by the next call.
	b.mu.Lock()
	b.lastInteraction = now
	b.lastTopic = vc.Conversation.Topic
	b.mu.Unlock()

	return vc
}

func (b *Builder) extractUser(msg Message, ident *Identity, person *Person) UserVars {
	name := strings.TrimSpace(msg.SenderName)
	if name == "" {
		name = "anon"
	}
	platform := ""
	if ident != nil {
		platform = ident.Platform
	}
	u := UserVars{
		Name:     name,
		UserID:   msg.SenderID,
		Platform: platform,
	}
	if person != nil {
		u.IsKnown = person.Interactions > 0
		u.InteractionCount = person.Interactions
	}
	return u
}

func (b *Builder) extractConversation(msg Message, history []Message, lastTopic string, minutesSince float64) ConversationVars {
	topic := detectTopic(msg.Text)
	return ConversationVars{
		IsQuestion:       isQuestion(msg.Text),
		IsGreeting:       isGreeting(msg.Text),
		MentionsBot:      msg.MentionsBot,
		MessageLength:    len(msg.Text),
		HistoryLength:    len(history),
		Topic:            topic,
		LastTopic:        lastTopic,
		Sentiment:        detectSentiment(msg.Text),
		MinutesSinceLast: minutesSince,
	}
}

func extractTime(now time.Time) TimeVars {
	h := now.Hour()
	return TimeVars{
		Hour:      h,
		Minute:    now.Minute(),
		DayPart:   dayPart(h),
		DayOfWeek: strings.ToLower(now.Weekday().String()),
		IsNight:   isNight(h),
		IsWeekend: isWeekend(now),
	}
}

func extractPlatform(msg Message, ident *Identity) PlatformVars {
	name := "unknown"
	if ident != nil && ident.Platform != "" {
		name = ident.Platform
	}
	return PlatformVars{
		Name:   name,
		RoomID: msg.RoomID,
		IsDM:   msg.IsDM,
	}
}

// extractMarket reads the snapshot through the TTL cache. A provider
// failure with no cached value degrades to zero-value defaults.
func (b *Builder) extractMarket(ctx context.Context) MarketVars {
	if b.cache == nil {
		return MarketVars{MarketMood: "crabbing"}
	}
	snap, err := b.cache.Get(ctx)
	if err != nil || snap == nil {
		b.log.Debug().Err(err).Msg("market namespace using defaults")
		return MarketVars{MarketMood: "crabbing"}
	}
	return MarketVars{
		SolPrice:       snap.SolPrice,
		SolChange24h:   snap.SolChange24h,
		SolChange1h:    snap.SolChange1h,
		MarketCapB:     snap.MarketCapB,
		Volume24hM:     snap.Volume24hM,
		GasFees:        snap.GasFees,
		TrendingTokens: snap.TrendingTokens,
		MarketMood:     snap.Mood(),
	}
}

func extractEmotional(emo EmotionalState) EmotionalVars {
	mood := emo.Current
	if mood == "" {
		mood = MoodNeutral
	}
	return EmotionalVars{
		CurrentMood: mood,
		Intensity:   emo.Intensity,
		Triggers:    emo.Triggers,
	}
}

func extractRelationship(person *Person) RelationshipVars {
	if person == nil {
		return RelationshipVars{Level: LevelStranger}
	}
	level := person.Level()
	return RelationshipVars{
		Level:        level,
		Score:        person.Score(),
		Interactions: person.Interactions,
		IsRegular:    level == LevelRegular || level == LevelFriend,
	}
}

func extractContent(text string) ContentVars {
	return ContentVars{
		MentionedTokens:    extractTokens(text),
		MentionedProtocols: extractProtocols(text),
		Keywords:           extractKeywords(text),
		HasURL:             hasURL(text),
		HasEmoji:           hasEmoji(text),
		WordCount:          len(strings.Fields(text)),
	}
}
