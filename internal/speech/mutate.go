package speech

import (
	"math/rand"
	"strings"
)

// MutatorConfig holds per-mutation probabilities, all 0..1.
type MutatorConfig struct {
	LowercaseChance float64
	TypoChance      float64
	DropPunctChance float64
	FillerChance    float64
}

// DefaultMutatorConfig returns moderate chat-casual rates.
func DefaultMutatorConfig() MutatorConfig {
	return MutatorConfig{
		LowercaseChance: 0.6,
		TypoChance:      0.08,
		DropPunctChance: 0.5,
		FillerChance:    0.1,
	}
}

var fillers = []string{" lol", " ngl", " fr", " tbh"}

// Mutator applies probability-gated cosmetic noise to rendered text:
// lowercasing, one injected typo, trailing punctuation drop, filler suffix.
type Mutator struct {
	rng *rand.Rand
	cfg MutatorConfig
}

// NewMutator creates a mutator with the given rng and rates.
func NewMutator(rng *rand.Rand, cfg MutatorConfig) *Mutator {
	return &Mutator{rng: rng, cfg: cfg}
}

// Apply mutates s. The result is never empty when s is not.
func (m *Mutator) Apply(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	if m.rng.Float64() < m.cfg.LowercaseChance {
		s = strings.ToLower(s)
	}
	if m.rng.Float64() < m.cfg.DropPunctChance {
		s = strings.TrimRight(s, ".!")
		if s == "" {
			return "."
		}
	}
	if m.rng.Float64() < m.cfg.TypoChance {
		s = m.injectTypo(s)
	}
	if m.rng.Float64() < m.cfg.FillerChance && !strings.HasSuffix(s, "?") {
		s += fillers[m.rng.Intn(len(fillers))]
	}
	return s
}

// injectTypo swaps two adjacent letters at a random position. Short strings
// come back unchanged.
func (m *Mutator) injectTypo(s string) string {
	r := []rune(s)
	if len(r) < 4 {
		return s
	}
	i := 1 + m.rng.Intn(len(r)-2)
	if !isLetter(r[i]) || !isLetter(r[i+1]) {
		return s
	}
	r[i], r[i+1] = r[i+1], r[i]
	return string(r)
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
