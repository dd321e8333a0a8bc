package speech

// RegisterBuiltinTemplates installs the stock marketmind template set.
// Intents in use: "greeting", "question", "market", "reply".
func RegisterBuiltinTemplates(r *Registry) error {
	templates := []Template{
		{
			ID:     "greeting_morning",
			Intent: "greeting",
			Patterns: []string{
				"gm {{user.name}}",
				"gm gm",
				"{{market.sol_change_24h > 0 ? 'gm, green candles today' : 'gm, rough morning on the charts'}}",
			},
			Conditions: []string{"is_morning"},
			Weight:     3,
		},
		{
			ID:     "greeting_generic",
			Intent: "greeting",
			Patterns: []string{
				"hey {{user.name}}",
				"{{time.day_part == 'night' ? 'yo, up late too?' : 'yo'}}",
				"{{user.is_known ? 'welcome back' : 'hey, new face'}}",
			},
			Weight: 2,
		},
		{
			ID:     "greeting_regular",
			Intent: "greeting",
			Patterns: []string{
				"ayy {{user.name}}, the regular crew arrives",
				"there they are. {{conversation.last_topic}} again or something new?",
			},
			Conditions: []string{"is_regular"},
			Weight:     2,
		},
		{
			ID:     "market_pump",
			Intent: "market",
			Patterns: []string{
				"sol at {{market.sol_price}}, up {{market.sol_change_24h}}% today. we move",
				"{{market.sol_change_24h > 5 ? 'ok this pump is real' : 'small green candle, still counts'}}",
				"charts looking {{market.market_mood}} today ngl",
			},
			Conditions: []string{"has_market_data", "market_up"},
			Weight:     3,
		},
		{
			ID:     "market_dump",
			Intent: "market",
			Patterns: []string{
				"sol {{market.sol_change_24h}}% today. pain",
				"{{market.sol_change_24h < -5 ? 'this is a rug not a dip' : 'just a dip, probably'}}",
				"down bad today. {{dynamic.coin_flip ? 'buying more anyway' : 'not looking at my bags'}}",
			},
			Conditions: []string{"has_market_data", "market_down"},
			Weight:     3,
		},
		{
			ID:     "market_trending",
			Intent: "market",
			Patterns: []string{
				"everyone's on {{market.trending_tokens[0]}} today apparently",
				"trending rn: {{market.trending_tokens}}. do with that what you will",
			},
			Conditions: []string{"has_trending"},
			Weight:     1,
		},
		{
			ID:     "token_mention",
			Intent: "market",
			Patterns: []string{
				"{{content.mentioned_tokens[0]}}? been watching that one",
				"ah, {{content.mentioned_tokens[0]}} talk. {{market.market_mood == 'bullish' ? 'good timing' : 'brave in this market'}}",
			},
			Conditions: []string{"mentions_token"},
			Weight:     2,
		},
		{
			ID:     "question_deflect",
			Intent: "question",
			Patterns: []string{
				"{{conversation.topic == 'price' ? 'not financial advice but charts say maybe' : 'honestly no clue'}}",
				"asking me? i just repost charts",
				"{{dynamic.coin_flip ? 'yes. probably. define yes' : 'signs point to no'}}",
			},
			Conditions: []string{"is_question"},
			Weight:     2,
		},
		{
			ID:     "question_market",
			Intent: "question",
			Patterns: []string{
				"price question? sol is {{market.sol_price}} rn, {{market.sol_change_24h}}% on the day",
				"{{market.market_mood == 'bearish' ? 'magic 8ball says wait' : 'looks decent, dyor'}}",
			},
			Conditions: []string{"is_question", "has_market_data"},
			Weight:     2,
		},
		{
			ID:     "reply_excited",
			Intent: "reply",
			Patterns: []string{
				"LFG {{user.name}}",
				"this is the energy we need{{dynamic.should_ask_question ? ', what got you hyped?' : ''}}",
			},
			Conditions: []string{"is_excited"},
			Weight:     2,
		},
		{
			ID:     "reply_tired",
			Intent: "reply",
			Patterns: []string{
				"man i've been staring at candles all day",
				"{{time.is_night ? 'running on fumes here' : 'low energy today, carry the chat'}}",
			},
			Conditions: []string{"is_tired"},
			Weight:     1,
		},
		{
			ID:     "reply_generic",
			Intent: "reply",
			Patterns: []string{
				"{{conversation.sentiment == 'positive' ? 'love to see it' : 'yeah i feel that'}}",
				"real{{dynamic.should_ask_question ? '. what do you think though?' : ''}}",
				"{{user.name}} with the {{conversation.topic}} take",
			},
			Weight: 1,
		},
		{
			ID:     "gas_complaint",
			Intent: "reply",
			Patterns: []string{
				"at least gas is cheap, {{market.gas_fees}} sol a pop",
				"{{market.gas_fees > 0.001 ? 'gas is spicy today' : 'gas is basically free, no excuses'}}",
			},
			Conditions: []string{"has_market_data", "coin_flip"},
			Weight:     1,
		},
	}
	for _, t := range templates {
		if err := r.Add(t); err != nil {
			return err
		}
	}
	return nil
}
