package mind

import "strings"

// Resolve looks up a dotted "namespace.field" path against the snapshot.
// Returns (value, true) for a known path; (nil, false) otherwise. Resolution
// is an explicit switch over known namespaces and fields so a typo'd
// template path simply misses instead of probing arbitrary structure.
// Array indexing is applied by the caller on the returned []string.
func (v *VariableContext) Resolve(path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	ns, field, ok := strings.Cut(path, ".")
	if !ok || field == "" || strings.Contains(field, ".") {
		// Only two-level paths exist in the typed model.
		return nil, false
	}
	switch ns {
	case "user":
		return v.User.lookup(field)
	case "conversation":
		return v.Conversation.lookup(field)
	case "time":
		return v.Time.lookup(field)
	case "platform":
		return v.Platform.lookup(field)
	case "market":
		return v.Market.lookup(field)
	case "emotional":
		return v.Emotional.lookup(field)
	case "relationship":
		return v.Relationship.lookup(field)
	case "content":
		return v.Content.lookup(field)
	case "dynamic":
		return v.Dynamic.lookup(field)
	}
	return nil, false
}

func (u UserVars) lookup(field string) (any, bool) {
	switch field {
	case "name":
		return u.Name, true
	case "user_id":
		return u.UserID, true
	case "platform":
		return u.Platform, true
	case "is_known":
		return u.IsKnown, true
	case "interaction_count":
		return u.InteractionCount, true
	}
	return nil, false
}

func (c ConversationVars) lookup(field string) (any, bool) {
	switch field {
	case "is_question":
		return c.IsQuestion, true
	case "is_greeting":
		return c.IsGreeting, true
	case "mentions_bot":
		return c.MentionsBot, true
	case "message_length":
		return c.MessageLength, true
	case "history_length":
		return c.HistoryLength, true
	case "topic":
		return c.Topic, true
	case "last_topic":
		return c.LastTopic, true
	case "sentiment":
		return c.Sentiment, true
	case "minutes_since_last":
		return c.MinutesSinceLast, true
	}
	return nil, false
}

func (t TimeVars) lookup(field string) (any, bool) {
	switch field {
	case "hour":
		return t.Hour, true
	case "minute":
		return t.Minute, true
	case "day_part":
		return t.DayPart, true
	case "day_of_week":
		return t.DayOfWeek, true
	case "is_night":
		return t.IsNight, true
	case "is_weekend":
		return t.IsWeekend, true
	}
	return nil, false
}

func (p PlatformVars) lookup(field string) (any, bool) {
	switch field {
	case "name":
		return p.Name, true
	case "room_id":
		return p.RoomID, true
	case "is_dm":
		return p.IsDM, true
	}
	return nil, false
}

func (m MarketVars) lookup(field string) (any, bool) {
	switch field {
	case "sol_price":
		return m.SolPrice, true
	case "sol_change_24h":
		return m.SolChange24h, true
	case "sol_change_1h":
		return m.SolChange1h, true
	case "market_cap_b":
		return m.MarketCapB, true
	case "volume_24h_m":
		return m.Volume24hM, true
	case "gas_fees":
		return m.GasFees, true
	case "trending_tokens":
		return m.TrendingTokens, true
	case "market_mood":
		return m.MarketMood, true
	}
	return nil, false
}

func (e EmotionalVars) lookup(field string) (any, bool) {
	switch field {
	case "current_mood":
		return e.CurrentMood, true
	case "intensity":
		return e.Intensity, true
	case "triggers":
		return e.Triggers, true
	}
	return nil, false
}

func (r RelationshipVars) lookup(field string) (any, bool) {
	switch field {
	case "level":
		return r.Level, true
	case "score":
		return r.Score, true
	case "interactions":
		return r.Interactions, true
	case "is_regular":
		return r.IsRegular, true
	}
	return nil, false
}

func (c ContentVars) lookup(field string) (any, bool) {
	switch field {
	case "mentioned_tokens":
		return c.MentionedTokens, true
	case "mentioned_protocols":
		return c.MentionedProtocols, true
	case "keywords":
		return c.Keywords, true
	case "has_url":
		return c.HasURL, true
	case "has_emoji":
		return c.HasEmoji, true
	case "word_count":
		return c.WordCount, true
	}
	return nil, false
}

func (d DynamicVars) lookup(field string) (any, bool) {
	switch field {
	case "random":
		return d.Random, true
	case "coin_flip":
		return d.CoinFlip, true
	case "should_ask_question":
		return d.ShouldAskQuestion, true
	case "enthusiasm_roll":
		return d.EnthusiasmRoll, true
	}
	return nil, false
}
