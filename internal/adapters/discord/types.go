package discord

import "time"

const (
	// DefaultTimeout is the default HTTP timeout for Discord requests
	DefaultTimeout = 30 * time.Second

	// EmbedColorDefault is the default color of snipe embeds
	EmbedColorDefault = 0x00ff00

	// EmbedColorFailure is the color of failure embeds
	EmbedColorFailure = 0xe74c3c

	// EmbedColorPool is the color of target pool embeds
	EmbedColorPool = 0x3498db

	// BotTokenPrefix is the prefix for Discord bot tokens
	BotTokenPrefix = "Bot "

	explorerURL = "https://solscan.io"
)

// DiscordMessage represents a Discord webhook message
type DiscordMessage struct {
	Content   string         `json:"content,omitempty"`
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

// DiscordEmbed represents a Discord embed
type DiscordEmbed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       int          `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedFooter represents a Discord embed footer
type EmbedFooter struct {
	Text string `json:"text,omitempty"`
}

// EmbedField represents a Discord embed field
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}
