package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
)

// EmbedBuilder handles Discord embed creation
type EmbedBuilder struct {
	config *config.DiscordConfig
	now    func() time.Time
}

// NewEmbedBuilder creates a new embed builder
func NewEmbedBuilder(cfg *config.DiscordConfig) *EmbedBuilder {
	return &EmbedBuilder{
		config: cfg,
		now:    time.Now,
	}
}

// CreateSnipeEmbed creates an embed for a submitted bundle
func (b *EmbedBuilder) CreateSnipeEmbed(keys *domain.MarketKeys, result *domain.SnipeResult) DiscordEmbed {
	description := fmt.Sprintf(
		"🎯 **Bundle Submitted**\n\n"+
			"**Pool:** [`%s`](%s)\n"+
			"**Token:** `%s`\n"+
			"**Opens:** <t:%d:f>",
		keys.ID,
		accountURL(keys.ID),
		keys.TradedMint(),
		keys.OpenTime,
	)

	embed := DiscordEmbed{
		Title:       "🚀 Raydium Pool Sniped",
		Description: description,
		URL:         accountURL(keys.ID),
		Color:       b.getEmbedColor(),
		Timestamp:   result.SubmittedAt.UTC().Format(time.RFC3339),
		Fields: []EmbedField{
			{Name: "📦 Bundle", Value: fmt.Sprintf("`%s`", result.BundleID)},
			{Name: "💰 Amount In", Value: formatSOL(result.AmountIn), Inline: true},
			{Name: "💸 Tip", Value: formatSOL(result.TipLamports), Inline: true},
			{Name: "🔍 Source", Value: string(keys.Source), Inline: true},
			{Name: "📡 Status", Value: bundleStatus(result)},
		},
		Footer: &EmbedFooter{Text: fmt.Sprintf("slot %d", keys.Slot)},
	}

	if len(result.Signatures) > 0 {
		links := make([]string, 0, len(result.Signatures))
		for _, signature := range result.Signatures {
			links = append(links, fmt.Sprintf("[%s](%s/tx/%s)", shorten(signature.String()), explorerURL, signature))
		}
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "✍️ Transactions",
			Value: strings.Join(links, "\n"),
		})
	}

	return embed
}

// CreatePoolEmbed creates an embed for a pool that matched the target and is about to be bought
func (b *EmbedBuilder) CreatePoolEmbed(pool *domain.PoolMetadata) DiscordEmbed {
	description := fmt.Sprintf(
		"**Pool:** [`%s`](%s)\n**Token:** `%s`\n**Opens:** <t:%d:f>",
		pool.ID, accountURL(pool.ID), pool.TradedMint(), pool.OpenTime,
	)

	return DiscordEmbed{
		Title:       "🔔 Target Pool Found",
		Description: description,
		URL:         accountURL(pool.ID),
		Color:       EmbedColorPool,
		Timestamp:   b.now().UTC().Format(time.RFC3339),
		Fields: []EmbedField{
			{Name: "🔍 Source", Value: string(pool.Source), Inline: true},
			{Name: "Market", Value: fmt.Sprintf("`%s`", pool.MarketID), Inline: true},
		},
	}
}

// CreateFailureEmbed creates an embed for a pool that could not be sniped
func (b *EmbedBuilder) CreateFailureEmbed(pool *domain.PoolMetadata, stage, reason string) DiscordEmbed {
	return DiscordEmbed{
		Title:       "⚠️ Snipe Failed",
		Description: fmt.Sprintf("**Pool:** [`%s`](%s)\n**Token:** `%s`", pool.ID, accountURL(pool.ID), pool.TradedMint()),
		URL:         accountURL(pool.ID),
		Color:       EmbedColorFailure,
		Timestamp:   b.now().UTC().Format(time.RFC3339),
		Fields: []EmbedField{
			{Name: "Stage", Value: stage, Inline: true},
			{Name: "Reason", Value: reason},
		},
	}
}

// getEmbedColor returns the configured embed color or default
func (b *EmbedBuilder) getEmbedColor() int {
	if b.config.EmbedColor != 0 {
		return b.config.EmbedColor
	}
	return EmbedColorDefault
}

func bundleStatus(result *domain.SnipeResult) string {
	switch result.Status {
	case domain.BundleStatusLanded:
		return fmt.Sprintf("landed in slot %d", result.LandedSlot)
	case domain.BundleStatusFailed:
		return "failed: " + result.StatusError
	case "":
		return string(domain.BundleStatusPending)
	default:
		return string(result.Status)
	}
}

func accountURL(account solana.PublicKey) string {
	return fmt.Sprintf("%s/account/%s", explorerURL, account)
}

func formatSOL(lamports uint64) string {
	return fmt.Sprintf("%.4f SOL", float64(lamports)/float64(solana.LAMPORTS_PER_SOL))
}

func shorten(value string) string {
	if len(value) <= 16 {
		return value
	}
	return value[:8] + "…" + value[len(value)-8:]
}
