package mind

import "time"

// Message is one chat message as seen by the engine.
type Message struct {
	Text        string    `json:"text"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name,omitempty"`
	RoomID      string    `json:"room_id"`
	Role        string    `json:"role"` // "user" | "assistant"
	IsDM        bool      `json:"is_dm,omitempty"`
	MentionsBot bool      `json:"mentions_bot,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Identity describes who the bot is on the current platform.
type Identity struct {
	PlatformUsername string `json:"platform_username"`
	DisplayName      string `json:"display_name"`
	PlatformUserID   string `json:"platform_user_id"`
	Platform         string `json:"platform"` // e.g. "discord"
}

// PersonalityTraits are fixed 0..1 parameters. They shape mutation rates and
// the engagement score, never change at runtime.
type PersonalityTraits struct {
	Openness      float64 `json:"openness"`
	Extraversion  float64 `json:"extraversion"`
	Neuroticism   float64 `json:"neuroticism"`
	Agreeableness float64 `json:"agreeableness"`
	Empathy       float64 `json:"empathy"`
}

// DefaultTraits returns the stock marketmind persona.
func DefaultTraits() PersonalityTraits {
	return PersonalityTraits{
		Openness:      0.7,
		Extraversion:  0.8,
		Neuroticism:   0.4,
		Agreeableness: 0.6,
		Empathy:       0.5,
	}
}

// Person is the per-user relationship model within a room.
type Person struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	Interactions int       `json:"interactions"`
	Affinity     float64   `json:"affinity"`   // 0..1
	Irritation   float64   `json:"irritation"` // 0..1
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

// VariableContext is the full snapshot handed to the renderer. Every
// namespace is always present so path lookups never fail on a missing
// namespace. Built fresh per response, never persisted.
type VariableContext struct {
	User         UserVars         `json:"user"`
	Conversation ConversationVars `json:"conversation"`
	Time         TimeVars         `json:"time"`
	Platform     PlatformVars     `json:"platform"`
	Market       MarketVars       `json:"market"`
	Emotional    EmotionalVars    `json:"emotional"`
	Relationship RelationshipVars `json:"relationship"`
	Content      ContentVars      `json:"content"`
	Dynamic      DynamicVars      `json:"dynamic"`
}

// UserVars describe the message sender.
type UserVars struct {
	Name             string `json:"name"`
	UserID           string `json:"user_id"`
	Platform         string `json:"platform"`
	IsKnown          bool   `json:"is_known"`
	InteractionCount int    `json:"interaction_count"`
}

// ConversationVars describe the message and its surrounding history.
type ConversationVars struct {
	IsQuestion       bool    `json:"is_question"`
	IsGreeting       bool    `json:"is_greeting"`
	MentionsBot      bool    `json:"mentions_bot"`
	MessageLength    int     `json:"message_length"`
	HistoryLength    int     `json:"history_length"`
	Topic            string  `json:"topic"`
	LastTopic        string  `json:"last_topic"`
	Sentiment        string  `json:"sentiment"` // "positive" | "negative" | "neutral"
	MinutesSinceLast float64 `json:"minutes_since_last"`
}

// TimeVars describe the wall clock at build time.
type TimeVars struct {
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	DayPart   string `json:"day_part"` // "morning" | "afternoon" | "evening" | "night"
	DayOfWeek string `json:"day_of_week"`
	IsNight   bool   `json:"is_night"`
	IsWeekend bool   `json:"is_weekend"`
}

// PlatformVars describe where the conversation happens.
type PlatformVars struct {
	Name   string `json:"name"`
	RoomID string `json:"room_id"`
	IsDM   bool   `json:"is_dm"`
}

// MarketVars carry the cached market snapshot. Zero values when the
// provider is unavailable.
type MarketVars struct {
	SolPrice       float64  `json:"sol_price"`
	SolChange24h   float64  `json:"sol_change_24h"`
	SolChange1h    float64  `json:"sol_change_1h"`
	MarketCapB     float64  `json:"market_cap_b"`
	Volume24hM     float64  `json:"volume_24h_m"`
	GasFees        float64  `json:"gas_fees"`
	TrendingTokens []string `json:"trending_tokens"`
	MarketMood     string   `json:"market_mood"` // "bullish" | "bearish" | "crabbing"
}

// EmotionalVars mirror the current mood state.
type EmotionalVars struct {
	CurrentMood string   `json:"current_mood"`
	Intensity   float64  `json:"intensity"` // 0..1
	Triggers    []string `json:"triggers"`
}

// RelationshipVars summarize the sender's standing with the bot.
type RelationshipVars struct {
	Level        string  `json:"level"` // "stranger" | "acquaintance" | "regular" | "friend"
	Score        float64 `json:"score"` // 0..1
	Interactions int     `json:"interactions"`
	IsRegular    bool    `json:"is_regular"`
}

// ContentVars are keyword-level features of the message text.
type ContentVars struct {
	MentionedTokens    []string `json:"mentioned_tokens"`
	MentionedProtocols []string `json:"mentioned_protocols"`
	Keywords           []string `json:"keywords"`
	HasURL             bool     `json:"has_url"`
	HasEmoji           bool     `json:"has_emoji"`
	WordCount          int      `json:"word_count"`
}

// DynamicVars are per-call random draws, inputs for template conditionals.
type DynamicVars struct {
	Random            float64 `json:"random"`    // uniform [0,1)
	CoinFlip          bool    `json:"coin_flip"` // fair
	ShouldAskQuestion bool    `json:"should_ask_question"`
	EnthusiasmRoll    float64 `json:"enthusiasm_roll"` // uniform [0,1)
}
