package speech

import (
	"math/rand"
	"sync"
)

// Selector picks one template from an applicable set: roulette-wheel over
// weights, with a small anti-repetition window of recently chosen ids. The
// window is lifted for a call when honoring it would leave no candidates.
type Selector struct {
	mu     sync.Mutex
	rng    *rand.Rand
	window int
	recent []string
}

// NewSelector creates a selector. window is the number of most recent
// selections excluded from re-selection; 0 disables anti-repetition.
func NewSelector(rng *rand.Rand, window int) *Selector {
	if window < 0 {
		window = 0
	}
	return &Selector{rng: rng, window: window}
}

// Pick returns one template chosen with probability proportional to weight
// and records its id in the selection memory. ok is false only for an empty
// candidate set.
func (s *Selector) Pick(cands []Template) (Template, bool) {
	if len(cands) == 0 {
		return Template{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := cands
	if s.window > 0 && len(s.recent) > 0 {
		filtered := make([]Template, 0, len(cands))
		for _, t := range cands {
			if !s.recentlyChosen(t.ID) {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			eligible = filtered
		}
		// All candidates were recent: lift the exclusion for this call.
	}

	chosen := s.roulette(eligible)
	s.remember(chosen.ID)
	return chosen, true
}

// Recent returns a copy of the selection memory, newest last.
func (s *Selector) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

// roulette draws r in [0, sum) and walks candidates accumulating weight.
// Ties on float equality go to the earlier candidate, so >= not >.
func (s *Selector) roulette(cands []Template) Template {
	var total float64
	for _, t := range cands {
		total += t.Weight
	}
	r := s.rng.Float64() * total
	var acc float64
	for _, t := range cands {
		acc += t.Weight
		if acc >= r {
			return t
		}
	}
	// Float accumulation can land short of total.
	return cands[len(cands)-1]
}

func (s *Selector) recentlyChosen(id string) bool {
	for _, r := range s.recent {
		if r == id {
			return true
		}
	}
	return false
}

func (s *Selector) remember(id string) {
	if s.window == 0 {
		return
	}
	s.recent = append(s.recent, id)
	if len(s.recent) > s.window {
		s.recent = s.recent[len(s.recent)-s.window:]
	}
}
