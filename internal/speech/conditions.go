package speech

// RegisterBuiltinConditions installs the stock predicate set used by the
// built-in templates. Callers may register more or replace any of these.
func RegisterBuiltinConditions(c *Conditions) {
	c.Register("is_question", func(v Vars) bool {
		return pathTruthy(v, "conversation.is_question")
	})
	c.Register("is_greeting", func(v Vars) bool {
		return pathTruthy(v, "conversation.is_greeting")
	})
	c.Register("is_dm", func(v Vars) bool {
		return pathTruthy(v, "platform.is_dm")
	})
	c.Register("is_morning", func(v Vars) bool {
		return pathText(v, "time.day_part") == "morning"
	})
	c.Register("is_night", func(v Vars) bool {
		return pathTruthy(v, "time.is_night")
	})
	c.Register("knows_user", func(v Vars) bool {
		return pathTruthy(v, "user.is_known")
	})
	c.Register("is_regular", func(v Vars) bool {
		return pathTruthy(v, "relationship.is_regular")
	})
	c.Register("market_up", func(v Vars) bool {
		return pathNumber(v, "market.sol_change_24h") > 0
	})
	c.Register("market_down", func(v Vars) bool {
		return pathNumber(v, "market.sol_change_24h") < 0
	})
	c.Register("market_big_move", func(v Vars) bool {
		n := pathNumber(v, "market.sol_change_24h")
		return n > 5 || n < -5
	})
	c.Register("has_market_data", func(v Vars) bool {
		return pathNumber(v, "market.sol_price") > 0
	})
	c.Register("has_trending", func(v Vars) bool {
		return pathTruthy(v, "market.trending_tokens")
	})
	c.Register("mentions_token", func(v Vars) bool {
		return pathTruthy(v, "content.mentioned_tokens")
	})
	c.Register("mentions_protocol", func(v Vars) bool {
		return pathTruthy(v, "content.mentioned_protocols")
	})
	c.Register("is_excited", func(v Vars) bool {
		return pathText(v, "emotional.current_mood") == "excited"
	})
	c.Register("is_tired", func(v Vars) bool {
		return pathText(v, "emotional.current_mood") == "tired"
	})
	c.Register("is_irritated", func(v Vars) bool {
		return pathText(v, "emotional.current_mood") == "irritated"
	})
	c.Register("feeling_bullish", func(v Vars) bool {
		return pathText(v, "emotional.current_mood") == "bullish"
	})
	c.Register("feeling_bearish", func(v Vars) bool {
		return pathText(v, "emotional.current_mood") == "bearish"
	})
	c.Register("should_ask_question", func(v Vars) bool {
		return pathTruthy(v, "dynamic.should_ask_question")
	})
	c.Register("coin_flip", func(v Vars) bool {
		return pathTruthy(v, "dynamic.coin_flip")
	})
}

func pathNumber(v Vars, path string) float64 {
	val, ok := v.Resolve(path)
	if !ok {
		return 0
	}
	n, _ := toNumber(val)
	return n
}
