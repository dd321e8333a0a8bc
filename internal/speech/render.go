package speech

import (
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
)

// FallbackSet holds the utterances used when no template is applicable,
// bucketed by context. Every bucket must stay non-empty.
type FallbackSet struct {
	Question []string
	Excited  []string
	Night    []string
	Neutral  []string
}

// DefaultFallbacks returns the stock fallback set.
func DefaultFallbacks() FallbackSet {
	return FallbackSet{
		Question: []string{
			"hmm not sure on that one",
			"good question, no idea honestly",
			"couldn't tell you, i just watch charts",
		},
		Excited: []string{
			"lfg!!",
			"yooo",
			"we are so back",
		},
		Night: []string{
			"man i should sleep",
			"late night trenches huh",
			"still up watching candles",
		},
		Neutral: []string{
			"fair enough",
			"real",
			"yeah i hear you",
		},
	}
}

// Options tune a Renderer. AntiRepeatWindow is the number of recently
// chosen template ids excluded from re-selection; 0 disables anti-repetition
// and negative values are treated as 0. A nil Fallbacks uses the defaults.
type Options struct {
	AntiRepeatWindow int
	Fallbacks        *FallbackSet
	Logger           zerolog.Logger
}

// Renderer turns a variable context plus optional intent into one utterance.
// It never fails and never returns an empty string.
type Renderer struct {
	reg       *Registry
	conds     *Conditions
	sel       *Selector
	rng       *rand.Rand
	fallbacks FallbackSet
	log       zerolog.Logger
}

// NewRenderer wires the registries, the selector and the rng.
func NewRenderer(reg *Registry, conds *Conditions, rng *rand.Rand, opts Options) *Renderer {
	window := opts.AntiRepeatWindow
	if window < 0 {
		window = 0
	}
	fb := DefaultFallbacks()
	if opts.Fallbacks != nil {
		fb = *opts.Fallbacks
	}
	return &Renderer{
		reg:       reg,
		conds:     conds,
		sel:       NewSelector(rng, window),
		rng:       rng,
		fallbacks: fb,
		log:       opts.Logger,
	}
}

// Render filters templates by intent and applicability, picks one by weight,
// picks one of its patterns uniformly, and fills it in. With no applicable
// template it produces a context-sensitive fallback.
func (r *Renderer) Render(v Vars, intent string) string {
	applicable := r.applicable(v, intent)
	if len(applicable) == 0 {
		r.log.Debug().Str("intent", intent).Msg("no applicable template, using fallback")
		return r.fallback(v)
	}

	t, ok := r.sel.Pick(applicable)
	if !ok {
		return r.fallback(v)
	}
	pattern := t.Patterns[r.rng.Intn(len(t.Patterns))]
	out := strings.TrimSpace(Fill(pattern, v, r.log))
	if out == "" {
		// Every placeholder resolved empty; still owe the caller words.
		r.log.Warn().Str("template", t.ID).Msg("template rendered empty")
		return r.fallback(v)
	}
	return out
}

// applicable returns intent-matching templates whose conditions all hold.
// An unknown condition name makes its template inapplicable and is logged.
func (r *Renderer) applicable(v Vars, intent string) []Template {
	cands := r.reg.ByIntent(intent)
	out := cands[:0]
	for _, t := range cands {
		ok := true
		for _, name := range t.Conditions {
			value, known := r.conds.Eval(name, v)
			if !known {
				r.log.Warn().Str("template", t.ID).Str("condition", name).Msg("unknown condition name")
				ok = false
				break
			}
			if !value {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// fallback picks from the bucket matching the context: question beats mood
// beats night beats neutral.
func (r *Renderer) fallback(v Vars) string {
	bucket := r.fallbacks.Neutral
	switch {
	case pathTruthy(v, "conversation.is_question") && len(r.fallbacks.Question) > 0:
		bucket = r.fallbacks.Question
	case pathText(v, "emotional.current_mood") == "excited" && len(r.fallbacks.Excited) > 0:
		bucket = r.fallbacks.Excited
	case pathTruthy(v, "time.is_night") && len(r.fallbacks.Night) > 0:
		bucket = r.fallbacks.Night
	}
	if len(bucket) == 0 {
		return "hm"
	}
	return bucket[r.rng.Intn(len(bucket))]
}

func pathTruthy(v Vars, path string) bool {
	val, ok := v.Resolve(path)
	return ok && truthy(val)
}

func pathText(v Vars, path string) string {
	val, ok := v.Resolve(path)
	if !ok {
		return ""
	}
	return valueText(val)
}
