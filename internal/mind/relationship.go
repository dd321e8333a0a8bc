package mind

import (
	"strings"
	"time"
)

// Relationship levels by interaction count.
const (
	LevelStranger     = "stranger"
	LevelAcquaintance = "acquaintance"
	LevelRegular      = "regular"
	LevelFriend       = "friend"
)

// Level buckets a person's interaction count.
func (p *Person) Level() string {
	switch {
	case p == nil || p.Interactions < 3:
		return LevelStranger
	case p.Interactions < 15:
		return LevelAcquaintance
	case p.Interactions < 50:
		return LevelRegular
	default:
		return LevelFriend
	}
}

// Score folds affinity and irritation into one 0..1 standing value.
func (p *Person) Score() float64 {
	if p == nil {
		return 0
	}
	return clamp01(p.Affinity - p.Irritation*0.5)
}

// MessageKind classifies a message for relationship updates. Heuristic
// only, no NLP.
type MessageKind int

const (
	MessageNeutral MessageKind = iota
	MessagePositive
	MessageNegative
	MessageAggressive
)

// ClassifyMessage returns the update kind from caps ratio and keyword
// matching.
func ClassifyMessage(content string) MessageKind {
	content = strings.TrimSpace(content)
	if content == "" {
		return MessageNeutral
	}
	upper, letters := 0, 0
	for _, r := range content {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			letters++
			if r >= 'A' && r <= 'Z' {
				upper++
			}
		}
	}
	if letters > 6 && upper*100/letters > 60 {
		return MessageAggressive
	}
	lower := strings.ToLower(content)
	for _, kw := range []string{"thanks", "thank you", "nice one", "love it", "lfg", "based"} {
		if strings.Contains(lower, kw) {
			return MessagePositive
		}
	}
	for _, kw := range []string{"shut up", "stupid", "scam bot", "trash", "annoying"} {
		if strings.Contains(lower, kw) {
			return MessageNegative
		}
	}
	return MessageNeutral
}

// UpdatePerson applies one interaction to a person record and returns the
// updated copy. Deltas are small so standing moves slowly.
func UpdatePerson(p *Person, kind MessageKind, username string, now time.Time) *Person {
	out := Person{}
	if p != nil {
		out = *p
	}
	if username != "" {
		out.Username = username
	}
	if out.FirstSeen.IsZero() {
		out.FirstSeen = now
	}
	out.LastSeen = now
	out.Interactions++

	const delta = 0.05
	switch kind {
	case MessagePositive:
		out.Affinity = clamp01(out.Affinity + delta)
		out.Irritation = clamp01(out.Irritation - delta*0.5)
	case MessageNegative:
		out.Irritation = clamp01(out.Irritation + delta)
		out.Affinity = clamp01(out.Affinity - delta*0.5)
	case MessageAggressive:
		out.Irritation = clamp01(out.Irritation + delta*1.5)
	default:
		// Neutral contact still builds a sliver of affinity.
		out.Affinity = clamp01(out.Affinity + delta*0.2)
	}
	return &out
}
