// Package parser classifies inbound chat messages into candidate records.
//
// Two submission contexts are recognized:
//   - the gold channel, where messages look like "gold: <player> <amount>"
//   - threads under the damage category, where a screenshot attachment plus
//     a leading amount ("103T", "50 T") make up a damage report
//
// Everything else is ignorable noise.
package parser

import (
	"strings"
	"unicode"

	"github.com/mbd888/warchest/internal/record"
)

// Message is the subset of an inbound chat message the parser inspects.
type Message struct {
	ID        string
	AuthorID  string
	AuthorBot bool
	ChannelID string

	// Thread context, set when the message was posted inside a thread.
	InThread         bool
	ThreadTitle      string
	ParentCategoryID string

	Content         string
	Attachments     []string // attachment URLs
	TimestampMillis int64
}

// Parser applies the channel-specific classification rules.
type Parser struct {
	goldChannelID    string
	damageCategoryID string
	selfID           string
}

// New creates a parser bound to the configured submission contexts.
// selfID is the bot's own user ID; its messages are never records.
func New(goldChannelID, damageCategoryID, selfID string) *Parser {
	return &Parser{
		goldChannelID:    goldChannelID,
		damageCategoryID: damageCategoryID,
		selfID:           selfID,
	}
}

// Parse classifies msg. ok is false when the message is not a submission.
func (p *Parser) Parse(msg Message) (rec record.Record, ok bool) {
	if msg.AuthorBot || msg.AuthorID == p.selfID {
		return record.Record{}, false
	}

	switch {
	case msg.ChannelID == p.goldChannelID:
		return p.parseGold(msg)
	case msg.InThread && msg.ParentCategoryID == p.damageCategoryID:
		return p.parseDamage(msg)
	}
	return record.Record{}, false
}

// parseGold expects "<label>:<subject> <amount>" where label is "gold".
func (p *Parser) parseGold(msg Message) (record.Record, bool) {
	label, rest, found := strings.Cut(msg.Content, ":")
	if !found {
		return record.Record{}, false
	}
	if strings.ToLower(strings.TrimSpace(label)) != "gold" {
		return record.Record{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return record.Record{}, false
	}

	return record.Record{
		Kind:              record.KindGold,
		Subject:           fields[0],
		Amount:            fields[1],
		SubmittedAtMillis: msg.TimestampMillis,
	}, true
}

// parseDamage accepts a thread message only when it carries the evidentiary
// screenshot. The thread title names the player; the message text leads with
// the damage amount.
func (p *Parser) parseDamage(msg Message) (record.Record, bool) {
	if len(msg.Attachments) == 0 {
		return record.Record{}, false
	}

	subject := strings.TrimSpace(msg.ThreadTitle)
	amount := leadingAmount(msg.Content)
	if subject == "" || amount == "" {
		return record.Record{}, false
	}

	return record.Record{
		Kind:              record.KindDamage,
		Subject:           subject,
		Amount:            amount,
		SubmittedAtMillis: msg.TimestampMillis,
	}, true
}

// leadingAmount extracts the amount at the start of the text: a numeric run
// plus its unit suffix, with any whitespace between them stripped, so
// "50 T extra" and "50T extra" both yield "50T".
func leadingAmount(text string) string {
	s := strings.TrimSpace(text)

	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || c == ',' {
			b.WriteByte(c)
			i++
			continue
		}
		break
	}
	if b.Len() == 0 {
		// No numeric lead; fall back to the bare first token.
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	}

	// Skip whitespace between value and unit ("50 T" -> "50T").
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for i < len(s) {
		r := rune(s[i])
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			break
		}
		b.WriteByte(s[i])
		i++
	}

	return b.String()
}
