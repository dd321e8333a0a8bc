// Package discord is the transport layer: it feeds incoming messages to the
// responder and delivers rendered replies, nothing more.
package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/marketmind/internal/config"
	"github.com/keshon/marketmind/internal/mind"
)

// Bot is the Discord front of the responder.
type Bot struct {
	dg        *discordgo.Session
	cfg       *config.Config
	responder *mind.Responder
	log       zerolog.Logger
}

// NewBot creates the bot. Run opens the session.
func NewBot(cfg *config.Config, responder *mind.Responder, log zerolog.Logger) *Bot {
	return &Bot{cfg: cfg, responder: responder, log: log}
}

// Run opens the Discord session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.responder.SetIdentity(mind.Identity{
		PlatformUsername: r.User.Username,
		DisplayName:      r.User.Username,
		PlatformUserID:   r.User.ID,
		Platform:         "discord",
	})
	b.log.Info().Str("user", r.User.Username).Msg("discord session ready")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	msg := mind.Message{
		Text:        m.Content,
		SenderID:    m.Author.ID,
		SenderName:  m.Author.Username,
		RoomID:      m.ChannelID,
		IsDM:        m.GuildID == "",
		MentionsBot: b.mentionsBot(s, m),
		Timestamp:   m.Timestamp,
	}

	reply, ok := b.responder.Respond(context.Background(), msg)
	if !ok {
		return
	}

	// Pretend to type for a moment so replies do not land instantly.
	_ = s.ChannelTyping(m.ChannelID)
	time.Sleep(typingDelay(reply))

	for _, chunk := range splitMessage(reply, 2000) {
		if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
			b.log.Error().Err(err).Str("channel", m.ChannelID).Msg("send failed")
			return
		}
	}
}

func (b *Bot) mentionsBot(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if s.State.User == nil {
		return false
	}
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			return true
		}
	}
	return strings.Contains(strings.ToLower(m.Content), strings.ToLower(s.State.User.Username))
}

// typingDelay scales with reply length, capped at 2.5s.
func typingDelay(reply string) time.Duration {
	d := time.Duration(len(reply)) * 30 * time.Millisecond
	if d > 2500*time.Millisecond {
		d = 2500 * time.Millisecond
	}
	return d
}

func splitMessage(msg string, limit int) []string {
	var result []string
	for len(msg) > limit {
		cut := strings.LastIndex(msg[:limit], "\n")
		if cut == -1 {
			cut = limit
		}
		result = append(result, strings.TrimSpace(msg[:cut]))
		msg = strings.TrimSpace(msg[cut:])
	}
	if msg != "" {
		result = append(result, msg)
	}
	return result
}
