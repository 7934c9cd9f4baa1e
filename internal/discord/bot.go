package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/mbd888/warchest/internal/approval"
	"github.com/mbd888/warchest/internal/ingest"
	"github.com/mbd888/warchest/internal/parser"
)

// Intents returns the gateway intents the workflow requires.
func Intents() discordgo.Intent {
	return discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent
}

// Bot translates gateway events into ingestion and approval calls.
// Each handler runs in its own goroutine (discordgo default) and recovers
// its own panics, so one bad event cannot take down the session.
type Bot struct {
	session  *discordgo.Session
	ingestor *ingest.Ingestor
	gate     *approval.Gate
	logger   *slog.Logger
}

// NewBot registers the event handlers on an open session.
func NewBot(session *discordgo.Session, ingestor *ingest.Ingestor, gate *approval.Gate, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		session:  session,
		ingestor: ingestor,
		gate:     gate,
		logger:   logger,
	}
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onReactionAdd)
	return b
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	defer b.recoverPanic("message create")

	if m.Author == nil {
		return
	}

	msg := parser.Message{
		ID:              m.ID,
		AuthorID:        m.Author.ID,
		AuthorBot:       m.Author.Bot,
		ChannelID:       m.ChannelID,
		Content:         m.Content,
		TimestampMillis: m.Timestamp.UnixMilli(),
	}
	for _, att := range m.Attachments {
		msg.Attachments = append(msg.Attachments, att.URL)
	}

	// Damage reports live in threads; resolve the thread's parent category.
	if ch, err := b.channel(m.ChannelID); err == nil && ch.IsThread() {
		msg.InThread = true
		msg.ThreadTitle = ch.Name
		if parent, err := b.channel(ch.ParentID); err == nil {
			msg.ParentCategoryID = parent.ParentID
		} else {
			b.logger.Warn("could not resolve thread parent", "channel_id", ch.ParentID, "error", err)
		}
	}

	b.ingestor.HandleMessage(context.Background(), msg)
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	defer b.recoverPanic("reaction add")

	actorBot := r.Member != nil && r.Member.User != nil && r.Member.User.Bot
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		actorBot = true
	}

	b.gate.HandleReaction(context.Background(), approval.Gesture{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Emoji:     r.Emoji.Name,
		ActorID:   r.UserID,
		ActorBot:  actorBot,
	})
}

func (b *Bot) channel(id string) (*discordgo.Channel, error) {
	if ch, err := b.session.State.Channel(id); err == nil {
		return ch, nil
	}
	return b.session.Channel(id)
}

func (b *Bot) recoverPanic(event string) {
	if rec := recover(); rec != nil {
		b.logger.Error("panic in event handler", "event", event, "panic", rec)
	}
}
