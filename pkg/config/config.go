package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of every environment variable read by Load
	EnvPrefix = "SNIPING_BOT"

	// EncodingBase64 and EncodingBase58 are the bundle encodings accepted by the relay
	EncodingBase64 = "base64"
	EncodingBase58 = "base58"
)

// DefaultTipAccounts are the Jito tip payment accounts.
var DefaultTipAccounts = []string{
	"Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY",
	"96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5",
	"HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe",
	"ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49",
	"DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh",
	"ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt",
	"DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL",
	"3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT",
}

// Config holds the application configuration
type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Wallet      WalletConfig    `mapstructure:"wallet"`
	Solana      SolanaConfig    `mapstructure:"solana"`
	Detection   DetectionConfig `mapstructure:"detection"`
	Sniper      SniperConfig    `mapstructure:"sniper"`
	Relay       RelayConfig     `mapstructure:"relay"`
	Discord     DiscordConfig   `mapstructure:"discord"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
}

// WalletConfig holds the signing wallet
type WalletConfig struct {
	// SecretKey is the base58 encoded 64 byte ed25519 secret key
	SecretKey string `mapstructure:"secret_key"`
}

// SolanaConfig holds Solana-related configuration
type SolanaConfig struct {
	RPC            string        `mapstructure:"rpc_url"`
	WSEndpoint     string        `mapstructure:"ws_endpoint"`
	Commitment     string        `mapstructure:"commitment"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DetectionConfig controls the two pool detectors and their subscriptions
type DetectionConfig struct {
	LogsEnabled     bool          `mapstructure:"logs_enabled"`
	AccountsEnabled bool          `mapstructure:"accounts_enabled"`
	SeenTTL         time.Duration `mapstructure:"seen_ttl"`
	SeenCapacity    int           `mapstructure:"seen_capacity"`
	MaxInFlight     int           `mapstructure:"max_in_flight"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	MaxRetryDelay   time.Duration `mapstructure:"max_retry_delay"`
}

// SniperConfig holds the purchase parameters
type SniperConfig struct {
	// TargetToken is the base mint to snipe; empty means any WSOL quoted pool
	TargetToken      string  `mapstructure:"target_token"`
	SnipeAmountSOL   float64 `mapstructure:"snipe_amount_sol"`
	MinAmountOut     uint64  `mapstructure:"min_amount_out"`
	ComputeUnitLimit uint32  `mapstructure:"compute_unit_limit"`
	ComputeUnitPrice uint64  `mapstructure:"compute_unit_price"`
}

// RelayConfig holds the Jito block engine configuration
type RelayConfig struct {
	BlockEngineURLs        []string      `mapstructure:"block_engine_urls"`
	AuthToken              string        `mapstructure:"auth_token"`
	TipAmountSOL           float64       `mapstructure:"tip_amount_sol"`
	TipAccounts            []string      `mapstructure:"tip_accounts"`
	SeparateTipTransaction bool          `mapstructure:"separate_tip_transaction"`
	Encoding               string        `mapstructure:"encoding"`
	Timeout                time.Duration `mapstructure:"timeout"`

	// StatusTimeout bounds how long a submitted bundle is polled for its result
	StatusTimeout      time.Duration `mapstructure:"status_timeout"`
	StatusPollInterval time.Duration `mapstructure:"status_poll_interval"`
}

// DiscordConfig holds Discord notification configuration
type DiscordConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BotToken   string        `mapstructure:"bot_token"`
	WebhookURL string        `mapstructure:"webhook_url"`
	ChannelID  string        `mapstructure:"channel_id"`
	Username   string        `mapstructure:"username"`
	AvatarURL  string        `mapstructure:"avatar_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	EmbedColor int           `mapstructure:"embed_color"`
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/raydium-sniper")

		if err := v.MergeInConfig(); err != nil {
			// Config file is optional when using environment variables
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Lists may arrive comma separated from the environment
	if urls := os.Getenv(EnvPrefix + "_RELAY_BLOCK_ENGINE_URLS"); urls != "" {
		config.Relay.BlockEngineURLs = splitList(urls)
	}
	if tips := os.Getenv(EnvPrefix + "_RELAY_TIP_ACCOUNTS"); tips != "" {
		config.Relay.TipAccounts = splitList(tips)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotEnv exports a local .env file into the process environment.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	keys := []string{
		"environment",
		"log_level",
		"wallet.secret_key",
		"solana.rpc_url",
		"solana.ws_endpoint",
		"solana.commitment",
		"solana.request_timeout",
		"detection.logs_enabled",
		"detection.accounts_enabled",
		"detection.seen_ttl",
		"detection.seen_capacity",
		"detection.max_in_flight",
		"sniper.target_token",
		"sniper.snipe_amount_sol",
		"sniper.min_amount_out",
		"sniper.compute_unit_limit",
		"sniper.compute_unit_price",
		"relay.auth_token",
		"relay.tip_amount_sol",
		"relay.separate_tip_transaction",
		"relay.encoding",
		"relay.timeout",
		"relay.status_timeout",
		"relay.status_poll_interval",
		"discord.enabled",
		"discord.bot_token",
		"discord.webhook_url",
		"discord.channel_id",
		"metrics.enabled",
		"metrics.port",
	}
	for _, key := range keys {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envName)
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	// Solana
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.ws_endpoint", "wss://api.mainnet-beta.solana.com")
	v.SetDefault("solana.commitment", "confirmed")
	v.SetDefault("solana.request_timeout", "15s")

	// Detection
	v.SetDefault("detection.logs_enabled", true)
	v.SetDefault("detection.accounts_enabled", true)
	v.SetDefault("detection.seen_ttl", "30m")
	v.SetDefault("detection.seen_capacity", 50000)
	v.SetDefault("detection.max_in_flight", 32)
	v.SetDefault("detection.max_retries", 10)
	v.SetDefault("detection.retry_delay", "1s")
	v.SetDefault("detection.max_retry_delay", "30s")

	// Sniper
	v.SetDefault("sniper.target_token", "")
	v.SetDefault("sniper.snipe_amount_sol", 0.1)
	v.SetDefault("sniper.min_amount_out", 0)
	v.SetDefault("sniper.compute_unit_limit", 0)
	v.SetDefault("sniper.compute_unit_price", 0)

	// Relay
	v.SetDefault("relay.block_engine_urls", []string{"https://mainnet.block-engine.jito.wtf"})
	v.SetDefault("relay.tip_amount_sol", 0.015)
	v.SetDefault("relay.tip_accounts", DefaultTipAccounts)
	v.SetDefault("relay.separate_tip_transaction", false)
	v.SetDefault("relay.encoding", EncodingBase64)
	v.SetDefault("relay.timeout", "10s")
	v.SetDefault("relay.status_timeout", "30s")
	v.SetDefault("relay.status_poll_interval", "1s")

	// Discord
	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.username", "Raydium Sniper")
	v.SetDefault("discord.timeout", "30s")
	v.SetDefault("discord.embed_color", 0x00ff00)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9092)
}

// Validate checks the loaded configuration for values the bot cannot run without
func (c *Config) Validate() error {
	if c.Wallet.SecretKey == "" {
		return fmt.Errorf("%s_WALLET_SECRET_KEY must be set", EnvPrefix)
	}
	if _, err := c.PrivateKey(); err != nil {
		return err
	}

	if c.Solana.RPC == "" {
		return fmt.Errorf("solana.rpc_url must be set")
	}
	if c.Solana.WSEndpoint == "" {
		return fmt.Errorf("solana.ws_endpoint must be set")
	}

	if !c.Detection.LogsEnabled && !c.Detection.AccountsEnabled {
		return fmt.Errorf("at least one of detection.logs_enabled or detection.accounts_enabled must be true")
	}

	if _, err := c.TargetMint(); err != nil {
		return err
	}
	if c.Sniper.SnipeAmountSOL <= 0 {
		return fmt.Errorf("sniper.snipe_amount_sol must be positive, got %v", c.Sniper.SnipeAmountSOL)
	}

	if len(c.Relay.BlockEngineURLs) == 0 {
		return fmt.Errorf("relay.block_engine_urls must contain at least one URL")
	}
	if c.Relay.TipAmountSOL < 0 {
		return fmt.Errorf("relay.tip_amount_sol must not be negative, got %v", c.Relay.TipAmountSOL)
	}
	if _, err := c.TipAccountKeys(); err != nil {
		return err
	}
	if c.Relay.Encoding != EncodingBase64 && c.Relay.Encoding != EncodingBase58 {
		return fmt.Errorf("relay.encoding must be %q or %q, got %q", EncodingBase64, EncodingBase58, c.Relay.Encoding)
	}
	if c.Relay.StatusTimeout < 0 {
		return fmt.Errorf("relay.status_timeout must not be negative, got %s", c.Relay.StatusTimeout)
	}

	if c.Discord.Enabled {
		if c.Discord.BotToken == "" && c.Discord.WebhookURL == "" {
			return fmt.Errorf("either %s_DISCORD_BOT_TOKEN or %s_DISCORD_WEBHOOK_URL must be set", EnvPrefix, EnvPrefix)
		}
		if c.Discord.BotToken != "" && c.Discord.ChannelID == "" && c.Discord.WebhookURL == "" {
			return fmt.Errorf("%s_DISCORD_CHANNEL_ID must be set when using bot token", EnvPrefix)
		}
	}

	return nil
}

// PrivateKey decodes the wallet secret key
func (c *Config) PrivateKey() (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromBase58(c.Wallet.SecretKey)
	if err != nil {
		// The decode error is not wrapped so the key material cannot leak into logs
		return nil, errors.New("wallet.secret_key is not a valid base58 secret key")
	}
	if len(key) != 64 {
		return nil, fmt.Errorf("wallet.secret_key must decode to 64 bytes, got %d", len(key))
	}
	return key, nil
}

// TargetMint returns the configured target token, or the zero key when sniping any pool
func (c *Config) TargetMint() (solana.PublicKey, error) {
	if strings.TrimSpace(c.Sniper.TargetToken) == "" {
		return solana.PublicKey{}, nil
	}
	mint, err := solana.PublicKeyFromBase58(strings.TrimSpace(c.Sniper.TargetToken))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("sniper.target_token is not a valid public key: %w", err)
	}
	return mint, nil
}

// TipAccountKeys parses the configured tip accounts, falling back to DefaultTipAccounts
func (c *Config) TipAccountKeys() ([]solana.PublicKey, error) {
	accounts := c.Relay.TipAccounts
	if len(accounts) == 0 {
		accounts = DefaultTipAccounts
	}
	keys := make([]solana.PublicKey, 0, len(accounts))
	for _, account := range accounts {
		key, err := solana.PublicKeyFromBase58(account)
		if err != nil {
			return nil, fmt.Errorf("relay.tip_accounts contains invalid key %q: %w", account, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// SnipeLamports returns the purchase amount in lamports
func (c *Config) SnipeLamports() uint64 {
	return solToLamports(c.Sniper.SnipeAmountSOL)
}

// TipLamports returns the relay tip in lamports
func (c *Config) TipLamports() uint64 {
	return solToLamports(c.Relay.TipAmountSOL)
}

// BlockEngineURL returns the block engine bundles are sent to.
// Bundles are forwarded to the other regions by the engine itself.
func (c *Config) BlockEngineURL() string {
	if len(c.Relay.BlockEngineURLs) == 0 {
		return ""
	}
	return c.Relay.BlockEngineURLs[0]
}

func solToLamports(sol float64) uint64 {
	return uint64(math.Round(sol * float64(solana.LAMPORTS_PER_SOL)))
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
