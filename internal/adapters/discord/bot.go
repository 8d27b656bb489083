package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// Notifier implements domain.NotificationRepository on top of Discord
type Notifier struct {
	config        *config.DiscordConfig
	logger        logger.Logger
	session       *discordgo.Session
	messageSender *MessageSender
	embedBuilder  *EmbedBuilder
}

// NewNotifier creates a notifier. A bot token takes precedence over the webhook URL.
func NewNotifier(cfg *config.DiscordConfig, log logger.Logger) (*Notifier, error) {
	var session *discordgo.Session
	if cfg.BotToken != "" {
		var err error
		session, err = discordgo.New(BotTokenPrefix + cfg.BotToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create discord session: %w", err)
		}
		if cfg.Timeout > 0 {
			session.Client.Timeout = cfg.Timeout
		}
	}

	log = log.WithField("component", "discord")
	return &Notifier{
		config:        cfg,
		logger:        log,
		session:       session,
		messageSender: NewMessageSender(cfg, log, session),
		embedBuilder:  NewEmbedBuilder(cfg),
	}, nil
}

// SendPoolNotification announces a target pool
func (n *Notifier) SendPoolNotification(ctx context.Context, pool *domain.PoolMetadata) error {
	n.logger.WithField("pool_id", pool.ID.String()).Info("Sending pool notification to Discord")

	return n.send(ctx, n.embedBuilder.CreatePoolEmbed(pool))
}

// SendSnipeNotification sends a submitted bundle notification to Discord
func (n *Notifier) SendSnipeNotification(ctx context.Context, keys *domain.MarketKeys, result *domain.SnipeResult) error {
	n.logger.WithFields(map[string]interface{}{
		"pool_id":   keys.ID.String(),
		"bundle_id": result.BundleID,
	}).Info("Sending snipe notification to Discord")

	return n.send(ctx, n.embedBuilder.CreateSnipeEmbed(keys, result))
}

// SendFailureNotification sends a failed snipe notification to Discord
func (n *Notifier) SendFailureNotification(ctx context.Context, pool *domain.PoolMetadata, stage string, reason string) error {
	n.logger.WithFields(map[string]interface{}{
		"pool_id": pool.ID.String(),
		"stage":   stage,
	}).Info("Sending failure notification to Discord")

	return n.send(ctx, n.embedBuilder.CreateFailureEmbed(pool, stage, reason))
}

// IsHealthy checks that the notifier has a way to deliver messages
func (n *Notifier) IsHealthy(ctx context.Context) error {
	if n.session == nil && n.config.WebhookURL == "" {
		return ErrNoSendMethod
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, embed DiscordEmbed) error {
	return n.messageSender.SendMessage(ctx, DiscordMessage{
		Username:  n.config.Username,
		AvatarURL: n.config.AvatarURL,
		Embeds:    []DiscordEmbed{embed},
	})
}
