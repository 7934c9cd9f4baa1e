// Package approval gates pending records behind a reviewer's reaction and
// drives the one-shot delivery to the spreadsheet webhook.
package approval

import (
	"context"
	"log/slog"

	"github.com/mbd888/warchest/internal/metrics"
	"github.com/mbd888/warchest/internal/pending"
	"github.com/mbd888/warchest/internal/relay"
	"github.com/mbd888/warchest/internal/sheet"
)

// Gesture is a reaction-added event as seen by the gate.
type Gesture struct {
	GuildID   string
	ChannelID string
	MessageID string
	Emoji     string
	ActorID   string
	ActorBot  bool
}

// ChatService is the slice of chat-platform operations the gate needs.
// Implemented by internal/discord.
type ChatService interface {
	// Member resolves a guild member's display name and role IDs.
	Member(ctx context.Context, guildID, userID string) (displayName string, roleIDs []string, err error)
	// Message fetches a message's current text content.
	Message(ctx context.Context, channelID, messageID string) (content string, err error)
	EditMessage(ctx context.Context, channelID, messageID, content string) error
	RemoveAllReactions(ctx context.Context, channelID, messageID string) error
	SendMessage(ctx context.Context, channelID, content string) (messageID string, err error)
}

// Appender delivers one entry to the external ledger.
type Appender interface {
	Append(ctx context.Context, entry sheet.Entry) error
}

// Gate authorizes approval gestures and finalizes or re-queues records.
type Gate struct {
	table           *pending.Table
	ledger          Appender
	chat            ChatService
	reviewChannelID string
	approvalEmoji   string
	authorizedRoles map[string]struct{}
	logger          *slog.Logger
}

// New creates the approval gate. authorizedRoleIDs must be non-empty; config
// validation enforces that before we get here.
func New(table *pending.Table, ledger Appender, chat ChatService, reviewChannelID, approvalEmoji string, authorizedRoleIDs []string, logger *slog.Logger) *Gate {
	roles := make(map[string]struct{}, len(authorizedRoleIDs))
	for _, id := range authorizedRoleIDs {
		roles[id] = struct{}{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		table:           table,
		ledger:          ledger,
		chat:            chat,
		reviewChannelID: reviewChannelID,
		approvalEmoji:   approvalEmoji,
		authorizedRoles: roles,
		logger:          logger,
	}
}

// HandleReaction processes one approval gesture. Faults never propagate; the
// worst outcome is a logged warning and an unchanged pending entry.
func (g *Gate) HandleReaction(ctx context.Context, gst Gesture) {
	if gst.ActorBot || gst.Emoji != g.approvalEmoji {
		return
	}
	if gst.ChannelID != g.reviewChannelID {
		return
	}

	displayName, roleIDs, err := g.chat.Member(ctx, gst.GuildID, gst.ActorID)
	if err != nil {
		g.logger.Warn("could not resolve reacting member",
			"actor_id", gst.ActorID, "error", err)
		return
	}

	if !g.authorized(roleIDs) {
		metrics.ApprovalsTotal.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
		g.logger.Info("unauthorized approval attempt",
			"actor", displayName, "actor_id", gst.ActorID, "message_id", gst.MessageID)
		return
	}

	// Claim removes the entry before the delivery attempt, so a racing
	// duplicate gesture sees an empty slot instead of double-delivering.
	rec, ok := g.table.Claim(gst.MessageID)
	if !ok {
		// Already verified, or never a relay message. No way to tell; no-op.
		return
	}

	if err := g.ledger.Append(ctx, sheet.NewEntry(rec, displayName)); err != nil {
		g.table.Put(gst.MessageID, rec)
		metrics.ApprovalsTotal.WithLabelValues(metrics.OutcomeDeliveryFailed).Inc()
		g.logger.Error("sheet delivery failed",
			"subject", rec.Subject, "amount", rec.Amount, "error", err)
		if _, serr := g.chat.SendMessage(ctx, g.reviewChannelID, relay.DeliveryWarning(rec, err)); serr != nil {
			g.logger.Warn("could not post delivery warning", "error", serr)
		}
		return
	}

	metrics.ApprovalsTotal.WithLabelValues(metrics.OutcomeDelivered).Inc()
	g.logger.Info("record verified",
		"kind", rec.Kind, "subject", rec.Subject, "amount", rec.Amount, "verifier", displayName)

	g.finalize(ctx, gst, displayName)
}

func (g *Gate) authorized(roleIDs []string) bool {
	for _, id := range roleIDs {
		if _, ok := g.authorizedRoles[id]; ok {
			return true
		}
	}
	return false
}

// finalize marks the relay message verified and strips its reactions. These
// are best-effort housekeeping steps; the record is already in the sheet.
func (g *Gate) finalize(ctx context.Context, gst Gesture, verifier string) {
	content, err := g.chat.Message(ctx, gst.ChannelID, gst.MessageID)
	if err != nil {
		g.logger.Warn("could not fetch relay message for edit", "message_id", gst.MessageID, "error", err)
		content = ""
	}
	if err := g.chat.EditMessage(ctx, gst.ChannelID, gst.MessageID, relay.Verified(content, verifier)); err != nil {
		g.logger.Warn("could not edit relay message", "message_id", gst.MessageID, "error", err)
	}
	if err := g.chat.RemoveAllReactions(ctx, gst.ChannelID, gst.MessageID); err != nil {
		g.logger.Warn("could not clear reactions", "message_id", gst.MessageID, "error", err)
	}
}
