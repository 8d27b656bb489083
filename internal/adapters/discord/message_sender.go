package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// ErrNoSendMethod is returned when neither a bot session nor a webhook is configured
var ErrNoSendMethod = errors.New("neither bot token nor webhook URL is configured")

// MessageSender handles Discord message sending (both bot and webhook)
type MessageSender struct {
	config     *config.DiscordConfig
	logger     logger.Logger
	httpClient *http.Client
	session    *discordgo.Session
}

// NewMessageSender creates a new message sender. session may be nil for webhook delivery.
func NewMessageSender(cfg *config.DiscordConfig, log logger.Logger, session *discordgo.Session) *MessageSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &MessageSender{
		config: cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		session: session,
	}
}

// SendMessage sends a Discord message, preferring the bot session over the webhook
func (s *MessageSender) SendMessage(ctx context.Context, message DiscordMessage) error {
	switch {
	case s.config.BotToken != "" && s.session != nil:
		return s.sendBotMessage(ctx, message)
	case s.config.WebhookURL != "":
		return s.sendWebhookMessage(ctx, message)
	default:
		return ErrNoSendMethod
	}
}

// sendBotMessage sends a message using the Discord bot API
func (s *MessageSender) sendBotMessage(ctx context.Context, message DiscordMessage) error {
	if s.config.ChannelID == "" {
		return fmt.Errorf("channel ID not configured")
	}

	_, err := s.session.ChannelMessageSendComplex(s.config.ChannelID, toMessageSend(message), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send bot message: %w", err)
	}
	return nil
}

// sendWebhookMessage sends a message using Discord webhooks
func (s *MessageSender) sendWebhookMessage(ctx context.Context, message DiscordMessage) error {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(messageJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook request failed with status: %d", resp.StatusCode)
	}
	return nil
}

// toMessageSend converts a webhook message to the bot API representation
func toMessageSend(message DiscordMessage) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: message.Content}

	for _, embed := range message.Embeds {
		fields := make([]*discordgo.MessageEmbedField, len(embed.Fields))
		for i, field := range embed.Fields {
			fields[i] = &discordgo.MessageEmbedField{
				Name:   field.Name,
				Value:  field.Value,
				Inline: field.Inline,
			}
		}

		converted := &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			URL:         embed.URL,
			Color:       embed.Color,
			Fields:      fields,
			Timestamp:   embed.Timestamp,
		}
		if embed.Footer != nil {
			converted.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer.Text}
		}
		send.Embeds = append(send.Embeds, converted)
	}

	return send
}
