package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbd888/warchest/internal/parser"
	"github.com/mbd888/warchest/internal/pending"
	"github.com/mbd888/warchest/internal/record"
)

const (
	goldChannel    = "chan_gold"
	damageCategory = "cat_damage"
	reviewChannel  = "chan_review"
	approveEmoji   = "✅"
)

type sentMessage struct {
	channelID string
	content   string
}

type fakeChat struct {
	sendErr error

	sent      []sentMessage
	reactions []string
	deleted   []string
}

func (f *fakeChat) SendMessage(_ context.Context, channelID, content string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	return "relay_1", nil
}

func (f *fakeChat) React(_ context.Context, _, messageID, emoji string) error {
	f.reactions = append(f.reactions, messageID+":"+emoji)
	return nil
}

func (f *fakeChat) DeleteMessage(_ context.Context, _, messageID string) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func newIngestor(chat *fakeChat, table *pending.Table) *Ingestor {
	p := parser.New(goldChannel, damageCategory, "bot_self")
	return New(p, table, chat, reviewChannel, approveEmoji, nil)
}

func TestHandleMessage_GoldEndToEnd(t *testing.T) {
	chat := &fakeChat{}
	table := pending.NewTable(nil)
	ing := newIngestor(chat, table)

	ing.HandleMessage(context.Background(), parser.Message{
		ID:              "orig_1",
		AuthorID:        "user_1",
		ChannelID:       goldChannel,
		Content:         "gold: Alice 500",
		TimestampMillis: 1700000000000,
	})

	// Relay posted into the review channel, naming subject and amount.
	require.Len(t, chat.sent, 1)
	assert.Equal(t, reviewChannel, chat.sent[0].channelID)
	assert.Contains(t, chat.sent[0].content, "Alice")
	assert.Contains(t, chat.sent[0].content, "500")

	// Pending entry keyed by the relay message ID.
	rec, ok := table.Get("relay_1")
	require.True(t, ok)
	assert.Equal(t, record.KindGold, rec.Kind)
	assert.Equal(t, int64(1700000000000), rec.SubmittedAtMillis)

	// Approval affordance attached; original cleaned up.
	assert.Equal(t, []string{"relay_1:" + approveEmoji}, chat.reactions)
	assert.Equal(t, []string{"orig_1"}, chat.deleted)
}

func TestHandleMessage_DamageKeepsOriginal(t *testing.T) {
	chat := &fakeChat{}
	table := pending.NewTable(nil)
	ing := newIngestor(chat, table)

	ing.HandleMessage(context.Background(), parser.Message{
		ID:               "orig_2",
		AuthorID:         "user_2",
		ChannelID:        "thread_9",
		InThread:         true,
		ThreadTitle:      "Bob",
		ParentCategoryID: damageCategory,
		Content:          "103T",
		Attachments:      []string{"https://cdn.example/shot.png"},
		TimestampMillis:  1700000000000,
	})

	require.Len(t, chat.sent, 1)
	assert.Contains(t, chat.sent[0].content, "Bob")
	assert.Contains(t, chat.sent[0].content, "103T")
	assert.Contains(t, chat.sent[0].content, "https://cdn.example/shot.png")

	rec, ok := table.Get("relay_1")
	require.True(t, ok)
	assert.Equal(t, record.KindDamage, rec.Kind)

	// The screenshot is the audit trail; nothing is deleted.
	assert.Empty(t, chat.deleted)
}

func TestHandleMessage_IgnorableMessageDoesNothing(t *testing.T) {
	chat := &fakeChat{}
	table := pending.NewTable(nil)
	ing := newIngestor(chat, table)

	ing.HandleMessage(context.Background(), parser.Message{
		ID:        "orig_3",
		AuthorID:  "user_3",
		ChannelID: goldChannel,
		Content:   "gold 123", // no colon
	})

	assert.Empty(t, chat.sent)
	assert.Empty(t, chat.deleted)
	assert.Zero(t, table.Len())
}

func TestHandleMessage_RelayPostFailureAbortsSubmission(t *testing.T) {
	chat := &fakeChat{sendErr: errors.New("channel unavailable")}
	table := pending.NewTable(nil)
	ing := newIngestor(chat, table)

	ing.HandleMessage(context.Background(), parser.Message{
		ID:              "orig_4",
		AuthorID:        "user_4",
		ChannelID:       goldChannel,
		Content:         "gold: Alice 500",
		TimestampMillis: 1700000000000,
	})

	assert.Zero(t, table.Len(), "no pending entry without a relay message")
	assert.Empty(t, chat.deleted, "original must survive a failed relay")
}
