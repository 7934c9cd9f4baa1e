// Package ingest turns accepted submissions into relay messages awaiting
// approval: post to the review channel, register the pending entry, attach
// the approval reaction, and clean up the gold-channel original.
package ingest

import (
	"context"
	"log/slog"

	"github.com/mbd888/warchest/internal/metrics"
	"github.com/mbd888/warchest/internal/parser"
	"github.com/mbd888/warchest/internal/pending"
	"github.com/mbd888/warchest/internal/record"
	"github.com/mbd888/warchest/internal/relay"
)

// ChatService is the slice of chat-platform operations ingestion needs.
// Implemented by internal/discord.
type ChatService interface {
	SendMessage(ctx context.Context, channelID, content string) (messageID string, err error)
	React(ctx context.Context, channelID, messageID, emoji string) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// Ingestor drives a submission from classification to pending entry.
type Ingestor struct {
	parser          *parser.Parser
	table           *pending.Table
	chat            ChatService
	reviewChannelID string
	approvalEmoji   string
	logger          *slog.Logger
}

// New creates the ingestor.
func New(p *parser.Parser, table *pending.Table, chat ChatService, reviewChannelID, approvalEmoji string, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		parser:          p,
		table:           table,
		chat:            chat,
		reviewChannelID: reviewChannelID,
		approvalEmoji:   approvalEmoji,
		logger:          logger,
	}
}

// HandleMessage classifies one inbound message and, if it is a submission,
// relays it into the review channel. Failures short of posting the relay
// message abort the submission; everything after is best-effort.
func (i *Ingestor) HandleMessage(ctx context.Context, msg parser.Message) {
	rec, ok := i.parser.Parse(msg)
	if !ok {
		return
	}
	metrics.SubmissionsTotal.WithLabelValues(string(rec.Kind)).Inc()

	var attachmentURL string
	if rec.Kind == record.KindDamage && len(msg.Attachments) > 0 {
		attachmentURL = msg.Attachments[0]
	}

	relayID, err := i.chat.SendMessage(ctx, i.reviewChannelID, relay.Pending(rec, attachmentURL))
	if err != nil {
		// Without a relay message there is nothing to approve; the player
		// still has their original message and can resubmit.
		i.logger.Error("could not post relay message",
			"kind", rec.Kind, "subject", rec.Subject, "error", err)
		return
	}

	i.table.Put(relayID, rec)
	i.logger.Info("submission relayed",
		"kind", rec.Kind, "subject", rec.Subject, "amount", rec.Amount, "relay_message_id", relayID)

	if err := i.chat.React(ctx, i.reviewChannelID, relayID, i.approvalEmoji); err != nil {
		i.logger.Warn("could not attach approval reaction", "relay_message_id", relayID, "error", err)
	}

	// Gold originals are housekeeping noise once relayed. Damage originals
	// stay put: the screenshot is the audit trail.
	if rec.Kind == record.KindGold {
		if err := i.chat.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
			i.logger.Warn("could not delete original gold message", "message_id", msg.ID, "error", err)
		}
	}
}
