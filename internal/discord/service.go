// Package discord adapts a discordgo session to the chat-platform operations
// the workflow needs, and translates gateway events into domain events.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Service wraps a discordgo session behind the ingest and approval ports.
type Service struct {
	session *discordgo.Session
}

// NewService creates the adapter.
func NewService(session *discordgo.Session) *Service {
	return &Service{session: session}
}

// SendMessage posts plain text to a channel and returns the new message ID.
func (s *Service) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	msg, err := s.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send message to %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// React adds a reaction to a message.
func (s *Service) React(ctx context.Context, channelID, messageID, emoji string) error {
	if err := s.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to react to message %s: %w", messageID, err)
	}
	return nil
}

// DeleteMessage removes a message from its channel.
func (s *Service) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := s.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

// EditMessage replaces a message's text content.
func (s *Service) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	if _, err := s.session.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	return nil
}

// RemoveAllReactions strips every reaction from a message.
func (s *Service) RemoveAllReactions(ctx context.Context, channelID, messageID string) error {
	if err := s.session.MessageReactionsRemoveAll(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to clear reactions on message %s: %w", messageID, err)
	}
	return nil
}

// Message fetches a message's current text content.
func (s *Service) Message(ctx context.Context, channelID, messageID string) (string, error) {
	msg, err := s.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	return msg.Content, nil
}

// Member resolves a guild member's display name and role IDs, preferring the
// session state cache over a REST fetch.
func (s *Service) Member(ctx context.Context, guildID, userID string) (string, []string, error) {
	member, err := s.session.State.Member(guildID, userID)
	if err != nil {
		member, err = s.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			return "", nil, fmt.Errorf("failed to fetch member %s: %w", userID, err)
		}
	}
	return memberDisplayName(member), member.Roles, nil
}

func memberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		if member.User.GlobalName != "" {
			return member.User.GlobalName
		}
		return member.User.Username
	}
	return ""
}
