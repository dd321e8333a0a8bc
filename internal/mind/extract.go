package mind

import (
	"strings"
	"time"
	"unicode"
)

// Keyword tables for the fixed keyword-matching extraction. Intentionally
// small; this is not NLP.
var (
	greetingWords = []string{"gm", "gn", "hey", "hello", "hi", "yo", "sup", "wassup", "good morning"}

	topicKeywords = map[string][]string{
		"price":    {"price", "pump", "dump", "chart", "candle", "ath", "dip", "moon"},
		"gas":      {"gas", "fee", "fees", "priority fee"},
		"nft":      {"nft", "mint", "floor", "pfp", "collection"},
		"defi":     {"defi", "yield", "stake", "staking", "lend", "borrow", "lp", "liquidity"},
		"airdrop":  {"airdrop", "drop", "claim", "points", "farming"},
		"memecoin": {"memecoin", "meme", "degen", "rug", "shitcoin", "ape"},
	}

	positiveWords = []string{"bullish", "lfg", "moon", "pump", "up", "nice", "love", "great", "based", "win"}
	negativeWords = []string{"bearish", "dump", "down", "rekt", "rug", "loss", "hate", "scam", "pain", "crash"}

	knownTokens    = []string{"sol", "btc", "eth", "bonk", "wif", "jup", "jto", "pyth", "usdc", "ray"}
	knownProtocols = []string{"jupiter", "raydium", "orca", "drift", "marginfi", "tensor", "phantom", "magic eden", "solend"}

	stopwords = map[string]bool{
		"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
		"to": true, "of": true, "in": true, "on": true, "it": true, "this": true,
		"that": true, "and": true, "or": true, "for": true, "with": true, "you": true,
		"i": true, "my": true, "we": true, "be": true, "do": true, "at": true,
	}
)

func isQuestion(text string) bool {
	t := strings.TrimSpace(text)
	if strings.HasSuffix(t, "?") {
		return true
	}
	lower := strings.ToLower(t)
	for _, w := range []string{"what ", "why ", "how ", "when ", "where ", "who ", "is it ", "should i "} {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}

func isGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	first := lower
	if i := strings.IndexAny(lower, " ,!."); i > 0 {
		first = lower[:i]
	}
	for _, g := range greetingWords {
		if first == g || strings.HasPrefix(lower, g+" ") {
			return true
		}
	}
	return false
}

// detectTopic returns the first topic whose keywords match, "general"
// otherwise.
func detectTopic(text string) string {
	lower := strings.ToLower(text)
	for _, topic := range []string{"price", "gas", "nft", "defi", "airdrop", "memecoin"} {
		for _, kw := range topicKeywords[topic] {
			if containsWord(lower, kw) {
				return topic
			}
		}
	}
	return "general"
}

// detectSentiment counts positive vs negative keyword hits.
func detectSentiment(text string) string {
	lower := strings.ToLower(text)
	var pos, neg int
	for _, w := range positiveWords {
		if containsWord(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if containsWord(lower, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

func extractTokens(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, t := range knownTokens {
		if containsWord(lower, t) || strings.Contains(lower, "$"+t) {
			out = append(out, t)
		}
	}
	return out
}

func extractProtocols(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, p := range knownProtocols {
		if strings.Contains(lower, p) {
			out = append(out, p)
		}
	}
	return out
}

// extractKeywords returns up to five non-stopword words of length >= 4.
func extractKeywords(text string) []string {
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len(w) < 4 || stopwords[w] {
			continue
		}
		out = append(out, w)
		if len(out) == 5 {
			break
		}
	}
	return out
}

func hasURL(text string) bool {
	return strings.Contains(text, "http://") || strings.Contains(text, "https://")
}

func hasEmoji(text string) bool {
	for _, r := range text {
		if r >= 0x1F300 || (r >= 0x2600 && r <= 0x27BF) {
			return true
		}
	}
	return false
}

// containsWord matches kw on rough word boundaries so "sol" does not hit
// "solution".
func containsWord(lower, kw string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

// dayPart buckets an hour into morning/afternoon/evening/night.
func dayPart(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

func isNight(hour int) bool {
	return hour >= 22 || hour < 5
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// topicRelevance scores how much the message overlaps our interests, for
// the engagement decision.
func topicRelevance(topic string, tokens, protocols []string, mentioned bool) float64 {
	var score float64
	if topic != "general" {
		score += 0.4
	}
	if len(tokens) > 0 {
		score += 0.3
	}
	if len(protocols) > 0 {
		score += 0.2
	}
	if mentioned {
		score += 0.3
	}
	return clamp01(score)
}
