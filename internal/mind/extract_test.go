package mind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsQuestion(t *testing.T) {
	assert.True(t, isQuestion("wen moon?"))
	assert.True(t, isQuestion("what do you think about jup"))
	assert.True(t, isQuestion("should i buy the dip"))
	assert.False(t, isQuestion("gm everyone"))
	assert.False(t, isQuestion("whatever man"))
}

func TestIsGreeting(t *testing.T) {
	assert.True(t, isGreeting("gm"))
	assert.True(t, isGreeting("GM frens"))
	assert.True(t, isGreeting("hey, how's it going"))
	assert.False(t, isGreeting("the chart is heylike")) // no such word, boundary check
	assert.False(t, isGreeting("charts look rough"))
	assert.False(t, isGreeting(""))
}

func TestDetectTopic(t *testing.T) {
	assert.Equal(t, "price", detectTopic("huge pump incoming"))
	assert.Equal(t, "gas", detectTopic("fees are wild today"))
	assert.Equal(t, "nft", detectTopic("floor is dropping on that collection"))
	assert.Equal(t, "defi", detectTopic("where do you stake these days"))
	assert.Equal(t, "airdrop", detectTopic("farming points for the airdrop"))
	assert.Equal(t, "memecoin", detectTopic("full degen mode"))
	assert.Equal(t, "general", detectTopic("how was your weekend"))
}

func TestDetectSentiment(t *testing.T) {
	assert.Equal(t, "positive", detectSentiment("bullish af, lfg"))
	assert.Equal(t, "negative", detectSentiment("got rekt on that rug"))
	assert.Equal(t, "neutral", detectSentiment("sol is a chain"))
	// Mixed signals cancel out.
	assert.Equal(t, "neutral", detectSentiment("pump then dump"))
}

func TestExtractTokens(t *testing.T) {
	assert.Equal(t, []string{"sol", "bonk"}, extractTokens("sol and $bonk looking good"))
	// Word boundaries: "solution" must not match "sol".
	assert.Empty(t, extractTokens("the solution is obvious"))
	assert.Equal(t, []string{"wif"}, extractTokens("WIF just did a 2x"))
}

func TestExtractProtocols(t *testing.T) {
	assert.Equal(t, []string{"jupiter", "raydium"}, extractProtocols("swapped on Jupiter then Raydium"))
	assert.Empty(t, extractProtocols("no protocols here"))
}

func TestExtractKeywords(t *testing.T) {
	kws := extractKeywords("the staking yields on that validator look suspicious honestly speaking today")
	assert.Len(t, kws, 5)
	assert.NotContains(t, kws, "the")
	assert.Contains(t, kws, "staking")
}

func TestDayPart(t *testing.T) {
	assert.Equal(t, "morning", dayPart(5))
	assert.Equal(t, "morning", dayPart(9))
	assert.Equal(t, "afternoon", dayPart(12))
	assert.Equal(t, "evening", dayPart(17))
	assert.Equal(t, "night", dayPart(22))
	assert.Equal(t, "night", dayPart(3))
}

func TestIsNight(t *testing.T) {
	assert.True(t, isNight(23))
	assert.True(t, isNight(4))
	assert.False(t, isNight(5))
	assert.False(t, isNight(21))
}

func TestHasURLAndEmoji(t *testing.T) {
	assert.True(t, hasURL("look https://example.com"))
	assert.False(t, hasURL("no links"))
	assert.True(t, hasEmoji("to the moon \U0001F680"))
	assert.False(t, hasEmoji("plain text"))
}

func TestTopicRelevance(t *testing.T) {
	assert.Zero(t, topicRelevance("general", nil, nil, false))
	assert.InDelta(t, 0.4, topicRelevance("price", nil, nil, false), 1e-9)
	assert.InDelta(t, 0.7, topicRelevance("price", []string{"sol"}, nil, false), 1e-9)
	assert.Equal(t, 1.0, topicRelevance("price", []string{"sol"}, []string{"jupiter"}, true))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, isWeekend(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)))  // Saturday
	assert.False(t, isWeekend(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))) // Monday
}
