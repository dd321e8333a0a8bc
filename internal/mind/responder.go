package mind

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/marketmind/internal/speech"
)

// Responder wires the whole pipeline: ingest a message, decide whether to
// speak, build the variable context, render, mutate, and track the social
// state. One Responder serves all rooms.
type Responder struct {
	store    *Store
	builder  *Builder
	renderer *speech.Renderer
	mutator  *speech.Mutator
	gate     *RateGate
	cfg      EngagementConfig
	identity Identity
	rng      *rand.Rand
	log      zerolog.Logger
	now      func() time.Time
}

// ResponderDeps bundles the collaborators for NewResponder.
type ResponderDeps struct {
	Store    *Store
	Builder  *Builder
	Renderer *speech.Renderer
	Mutator  *speech.Mutator
	Gate     *RateGate
	Config   EngagementConfig
	Identity Identity
	Rng      *rand.Rand
	Logger   zerolog.Logger
}

// NewResponder assembles a responder from its parts.
func NewResponder(d ResponderDeps) *Responder {
	gate := d.Gate
	if gate == nil {
		gate = NewRateGate()
	}
	return &Responder{
		store:    d.Store,
		builder:  d.Builder,
		renderer: d.Renderer,
		mutator:  d.Mutator,
		gate:     gate,
		cfg:      d.Config,
		identity: d.Identity,
		rng:      d.Rng,
		log:      d.Logger,
		now:      time.Now,
	}
}

// SetIdentity installs the bot identity once the platform session knows it.
func (r *Responder) SetIdentity(id Identity) {
	r.identity = id
}

// Respond ingests msg and returns a reply when the engine chooses to speak.
// The message is always recorded in room state regardless of the outcome.
func (r *Responder) Respond(ctx context.Context, msg Message) (string, bool) {
	now := r.now()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	msg.Role = "user"

	room := r.store.Room(msg.RoomID)
	person := r.updatePerson(room, msg, now)
	emo := r.updateEmotions(room, msg, now)
	history := room.History()
	room.PushMessage(msg)

	if !r.shouldRespond(room, msg, emo, now) {
		return "", false
	}
	if !r.gate.Allow(msg.RoomID, now) {
		r.log.Debug().Str("room", msg.RoomID).Msg("rate gate closed")
		return "", false
	}

	vc := r.builder.BuildContext(ctx, msg, history, &r.identity, emo, person)

	// A big market move colors the mood for the next turn.
	room.SetEmotions(ApplyMarketEvent(emo, vc.Market.SolChange24h, now))

	intent := classifyIntent(vc)
	reply := r.renderer.Render(vc, intent)
	if r.mutator != nil {
		reply = r.mutator.Apply(reply)
	}

	room.PushMessage(Message{
		Text:      reply,
		SenderID:  r.identity.PlatformUserID,
		RoomID:    msg.RoomID,
		Role:      "assistant",
		Timestamp: r.now(),
	})
	room.MarkSpoke(now)
	r.store.RecordReply(msg.RoomID, now)

	r.log.Info().
		Str("room", msg.RoomID).
		Str("intent", intent).
		Str("mood", emo.Current).
		Msg("rendered reply")
	return reply, true
}

// shouldRespond applies the engagement decision. Mentions and DMs always
// pass; everything else goes through the weighted score.
func (r *Responder) shouldRespond(room *RoomState, msg Message, emo EmotionalState, now time.Time) bool {
	if msg.MentionsBot || msg.IsDM {
		return true
	}
	topic := detectTopic(msg.Text)
	relevance := topicRelevance(topic, extractTokens(msg.Text), extractProtocols(msg.Text), false)
	desire := DesireToRespond(r.cfg, DesireInput{
		ActivityNorm:          room.ActivityNorm(now),
		EmotionalActivation:   EmotionalActivation(emo),
		TopicRelevance:        relevance,
		LastSpokeAt:           room.LastSpokeAt(),
		ConsecutiveBotReplies: room.ConsecutiveBotReplies(),
		Now:                   now,
	}, r.rng)
	if desire < r.cfg.ResponseThreshold {
		r.log.Debug().Str("room", msg.RoomID).Float64("desire", desire).Msg("staying quiet")
		return false
	}
	return true
}

// updatePerson applies the interaction to the sender's record, persists it,
// and returns the updated copy.
func (r *Responder) updatePerson(room *RoomState, msg Message, now time.Time) *Person {
	if msg.SenderID == "" {
		return nil
	}
	p := room.Person(msg.SenderID)
	if p == nil {
		p = &Person{UserID: msg.SenderID}
	}
	updated := UpdatePerson(p, ClassifyMessage(msg.Text), msg.SenderName, now)
	room.SetPerson(updated)
	r.store.PersistPerson(msg.RoomID, updated)
	return updated
}

// updateEmotions decays the room mood, applies the message sentiment and
// the time of day, and stores the result.
func (r *Responder) updateEmotions(room *RoomState, msg Message, now time.Time) EmotionalState {
	emo := DecayMood(room.Emotions(), now)
	emo = ApplyMessageEvent(emo, detectSentiment(msg.Text), now)
	emo = ApplyTimeOfDay(emo, now.Hour(), now)
	room.SetEmotions(emo)
	return emo
}

// classifyIntent maps the snapshot to a template intent. Greeting beats
// question beats market beats generic reply.
func classifyIntent(vc *VariableContext) string {
	switch {
	case vc.Conversation.IsGreeting:
		return "greeting"
	case vc.Conversation.IsQuestion:
		return "question"
	case len(vc.Content.MentionedTokens) > 0 || vc.Conversation.Topic == "price" || vc.Conversation.Topic == "gas":
		return "market"
	default:
		return "reply"
	}
}
