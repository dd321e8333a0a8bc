package mind

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(at time.Time) *Builder {
	b := NewBuilder(nil, rand.New(rand.NewSource(1)), 0.2, zerolog.Nop())
	b.now = func() time.Time { return at }
	return b
}

func testIdentity() *Identity {
	return &Identity{
		PlatformUsername: "marketmind",
		DisplayName:      "marketmind",
		PlatformUserID:   "bot-1",
		Platform:         "discord",
	}
}

func TestBuildContext_Totality(t *testing.T) {
	// Every input at its zero value still yields a full snapshot.
	b := testBuilder(time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC))
	vc := b.BuildContext(context.Background(), Message{}, nil, nil, EmotionalState{}, nil)
	require.NotNil(t, vc)

	assert.Equal(t, "anon", vc.User.Name)
	assert.Equal(t, "general", vc.Conversation.Topic)
	assert.Equal(t, "neutral", vc.Conversation.Sentiment)
	assert.Equal(t, "unknown", vc.Platform.Name)
	assert.Equal(t, "crabbing", vc.Market.MarketMood)
	assert.Equal(t, MoodNeutral, vc.Emotional.CurrentMood)
	assert.Equal(t, LevelStranger, vc.Relationship.Level)
}

func TestBuildContext_TimeNamespace(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 9, 9, 15, 0, 0, time.UTC)) // a Monday
	vc := b.BuildContext(context.Background(), Message{Text: "gm"}, nil, testIdentity(), NeutralState(), nil)

	assert.Equal(t, 9, vc.Time.Hour)
	assert.Equal(t, "morning", vc.Time.DayPart)
	assert.Equal(t, "monday", vc.Time.DayOfWeek)
	assert.False(t, vc.Time.IsNight)
	assert.False(t, vc.Time.IsWeekend)
}

func TestBuildContext_NightAndWeekend(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)) // Saturday 23:00
	vc := b.BuildContext(context.Background(), Message{Text: "yo"}, nil, testIdentity(), NeutralState(), nil)

	assert.Equal(t, "night", vc.Time.DayPart)
	assert.True(t, vc.Time.IsNight)
	assert.True(t, vc.Time.IsWeekend)
}

func TestBuildContext_ConversationAndContent(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC))
	msg := Message{
		Text:       "is bonk gonna pump today? asking for jupiter gang",
		SenderID:   "u1",
		SenderName: "dave",
	}
	history := []Message{{Text: "earlier"}, {Text: "chatter"}}
	vc := b.BuildContext(context.Background(), msg, history, testIdentity(), NeutralState(), nil)

	assert.True(t, vc.Conversation.IsQuestion)
	assert.False(t, vc.Conversation.IsGreeting)
	assert.Equal(t, "price", vc.Conversation.Topic)
	assert.Equal(t, 2, vc.Conversation.HistoryLength)
	assert.Equal(t, "dave", vc.User.Name)
	assert.Contains(t, vc.Content.MentionedTokens, "bonk")
	assert.Contains(t, vc.Content.MentionedProtocols, "jupiter")
}

func TestBuildContext_RollingLastTopic(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first := b.BuildContext(ctx, Message{Text: "gas fees are brutal"}, nil, nil, NeutralState(), nil)
	assert.Equal(t, "gas", first.Conversation.Topic)
	assert.Empty(t, first.Conversation.LastTopic)

	second := b.BuildContext(ctx, Message{Text: "anyway"}, nil, nil, NeutralState(), nil)
	assert.Equal(t, "gas", second.Conversation.LastTopic)
}

func TestBuildContext_RelationshipNamespace(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC))
	person := &Person{UserID: "u1", Interactions: 20, Affinity: 0.6}
	vc := b.BuildContext(context.Background(), Message{SenderID: "u1"}, nil, nil, NeutralState(), person)

	assert.Equal(t, LevelRegular, vc.Relationship.Level)
	assert.True(t, vc.Relationship.IsRegular)
	assert.True(t, vc.User.IsKnown)
	assert.Equal(t, 20, vc.User.InteractionCount)
}

func TestBuildContext_DynamicRanges(t *testing.T) {
	b := testBuilder(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC))
	for i := 0; i < 100; i++ {
		vc := b.BuildContext(context.Background(), Message{}, nil, nil, NeutralState(), nil)
		assert.GreaterOrEqual(t, vc.Dynamic.Random, 0.0)
		assert.Less(t, vc.Dynamic.Random, 1.0)
		assert.GreaterOrEqual(t, vc.Dynamic.EnthusiasmRoll, 0.0)
		assert.Less(t, vc.Dynamic.EnthusiasmRoll, 1.0)
	}
}

func TestResolve_KnownPaths(t *testing.T) {
	vc := &VariableContext{
		User:         UserVars{Name: "dave", IsKnown: true, InteractionCount: 7},
		Conversation: ConversationVars{Topic: "price", IsQuestion: true},
		Time:         TimeVars{Hour: 9, DayPart: "morning"},
		Platform:     PlatformVars{Name: "discord", RoomID: "r1"},
		Market:       MarketVars{SolPrice: 142.5, TrendingTokens: []string{"bonk", "wif"}, MarketMood: "bullish"},
		Emotional:    EmotionalVars{CurrentMood: "excited", Intensity: 0.8},
		Relationship: RelationshipVars{Level: "regular", IsRegular: true},
		Content:      ContentVars{MentionedTokens: []string{"sol"}, WordCount: 3},
		Dynamic:      DynamicVars{CoinFlip: true, Random: 0.4},
	}

	cases := map[string]any{
		"user.name":              "dave",
		"user.is_known":          true,
		"user.interaction_count": 7,
		"conversation.topic":     "price",
		"time.hour":              9,
		"time.day_part":          "morning",
		"platform.name":          "discord",
		"market.sol_price":       142.5,
		"market.trending_tokens": []string{"bonk", "wif"},
		"market.market_mood":     "bullish",
		"emotional.current_mood": "excited",
		"relationship.level":     "regular",
		"content.word_count":     3,
		"dynamic.coin_flip":      true,
	}
	for path, want := range cases {
		got, ok := vc.Resolve(path)
		require.True(t, ok, "path %s", path)
		assert.Equal(t, want, got, "path %s", path)
	}
}

func TestResolve_UnknownPaths(t *testing.T) {
	vc := &VariableContext{}
	for _, path := range []string{
		"",
		"user",
		"user.nope",
		"nosuch.name",
		"user.name.extra",
		"user.",
	} {
		_, ok := vc.Resolve(path)
		assert.False(t, ok, "path %q", path)
	}

	var nilVC *VariableContext
	_, ok := nilVC.Resolve("user.name")
	assert.False(t, ok)
}
