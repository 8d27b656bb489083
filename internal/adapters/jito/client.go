package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/mr-tron/base58"

	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

const (
	bundlesPath = "/api/v1/bundles"
	authHeader  = "x-jito-auth"

	// MaxBundleTransactions is the largest bundle a block engine accepts
	MaxBundleTransactions = 5

	noConnectedLeader = "Bundle Dropped, no connected leader up soon"
	defaultTimeout    = 5 * time.Second

	defaultStatusTimeout      = 30 * time.Second
	defaultStatusPollInterval = time.Second
)

var (
	// ErrNoConnectedLeader is returned when the block engine has no leader to forward the bundle to
	ErrNoConnectedLeader = domain.ErrNoConnectedLeader
	// ErrInvalidBundle is returned for empty or oversized bundles
	ErrInvalidBundle = errors.New("invalid bundle")

	errBundleUnresolved = errors.New("bundle has no status yet")
)

// Client submits bundles to a Jito block engine over JSON-RPC
type Client struct {
	rpcClient jsonrpc.RPCClient
	endpoint  string
	encoding  string
	logger    logger.Logger

	statusTimeout time.Duration
	pollInterval  time.Duration
}

// NewClient creates a client for the first configured block engine
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	timeout := cfg.Relay.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	headers := map[string]string{}
	if cfg.Relay.AuthToken != "" {
		headers[authHeader] = cfg.Relay.AuthToken
	}

	encoding := cfg.Relay.Encoding
	if encoding == "" {
		encoding = config.EncodingBase64
	}

	statusTimeout := cfg.Relay.StatusTimeout
	if statusTimeout <= 0 {
		statusTimeout = defaultStatusTimeout
	}
	pollInterval := cfg.Relay.StatusPollInterval
	if pollInterval <= 0 {
		pollInterval = defaultStatusPollInterval
	}

	endpoint := strings.TrimRight(cfg.BlockEngineURL(), "/") + bundlesPath
	return &Client{
		rpcClient: jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
			HTTPClient:    &http.Client{Timeout: timeout},
			CustomHeaders: headers,
		}),
		endpoint:      endpoint,
		encoding:      encoding,
		logger:        log.WithField("component", "jito"),
		statusTimeout: statusTimeout,
		pollInterval:  pollInterval,
	}
}

// SendBundle implements domain.BundleRelay and returns the bundle id
func (c *Client) SendBundle(ctx context.Context, transactions []*solana.Transaction) (string, error) {
	if len(transactions) == 0 || len(transactions) > MaxBundleTransactions {
		return "", fmt.Errorf("%w: %d transactions", ErrInvalidBundle, len(transactions))
	}

	encoded := make([]string, 0, len(transactions))
	for i, tx := range transactions {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return "", fmt.Errorf("failed to serialize transaction %d: %w", i, err)
		}
		encoded = append(encoded, c.encode(raw))
	}

	var bundleID string
	err := c.rpcClient.CallForInto(ctx, &bundleID, "sendBundle", []interface{}{
		encoded,
		map[string]string{"encoding": c.encoding},
	})
	if err != nil {
		if strings.Contains(err.Error(), noConnectedLeader) {
			c.logger.WithField("endpoint", c.endpoint).Warn("Bundle dropped, no connected leader up soon")
			return "", ErrNoConnectedLeader
		}
		c.logger.WithError(err).WithField("endpoint", c.endpoint).Error("Failed to send bundle")
		return "", fmt.Errorf("failed to send bundle: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"bundle_id":    bundleID,
		"transactions": len(transactions),
	}).Info("Bundle sent")

	return bundleID, nil
}

// BundleStatusEntry is one element of a getBundleStatuses response.
// The block engine only reports bundles that reached a block.
type BundleStatusEntry struct {
	BundleID           string          `json:"bundle_id"`
	Transactions       []string        `json:"transactions"`
	Slot               uint64          `json:"slot"`
	ConfirmationStatus string          `json:"confirmation_status"`
	Err                json.RawMessage `json:"err"`
}

// Failed reports whether the bundle executed with an error. Success is {"Ok":null}.
func (e *BundleStatusEntry) Failed() bool {
	if len(e.Err) == 0 || string(e.Err) == "null" {
		return false
	}
	var result map[string]json.RawMessage
	if err := json.Unmarshal(e.Err, &result); err != nil {
		return true
	}
	_, ok := result["Ok"]
	return !ok
}

func (e *BundleStatusEntry) outcome() *domain.BundleOutcome {
	if e.Failed() {
		return &domain.BundleOutcome{Status: domain.BundleStatusFailed, Slot: e.Slot, Error: string(e.Err)}
	}
	return &domain.BundleOutcome{Status: domain.BundleStatusLanded, Slot: e.Slot}
}

type bundleStatusesResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value []*BundleStatusEntry `json:"value"`
}

// GetBundleStatuses returns the status of each bundle id, nil for bundles that have not landed
func (c *Client) GetBundleStatuses(ctx context.Context, bundleIDs []string) ([]*BundleStatusEntry, error) {
	var result bundleStatusesResult
	if err := c.rpcClient.CallForInto(ctx, &result, "getBundleStatuses", []interface{}{bundleIDs}); err != nil {
		return nil, fmt.Errorf("failed to get bundle statuses: %w", err)
	}
	return result.Value, nil
}

// AwaitBundleStatus implements domain.BundleRelay by polling getBundleStatuses
func (c *Client) AwaitBundleStatus(ctx context.Context, bundleID string) (*domain.BundleOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	log := c.logger.WithField("bundle_id", bundleID)

	var lastErr error
	poll := func() (*domain.BundleOutcome, error) {
		statuses, err := c.GetBundleStatuses(ctx, []string{bundleID})
		if err != nil {
			lastErr = err
			return nil, err
		}
		lastErr = nil
		if len(statuses) == 0 || statuses[0] == nil {
			return nil, errBundleUnresolved
		}
		return statuses[0].outcome(), nil
	}

	outcome, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.pollInterval)),
		backoff.WithMaxElapsedTime(c.statusTimeout))
	if err != nil {
		log.WithField("timeout", c.statusTimeout.String()).Warn("Bundle result unknown, still pending")
		return &domain.BundleOutcome{Status: domain.BundleStatusPending}, lastErr
	}

	entry := log.WithFields(map[string]interface{}{
		"status": string(outcome.Status),
		"slot":   outcome.Slot,
	})
	if outcome.Status == domain.BundleStatusFailed {
		entry.WithField("error", outcome.Error).Warn("Bundle failed on chain")
	} else {
		entry.Info("Bundle landed")
	}
	return outcome, nil
}

func (c *Client) encode(raw []byte) string {
	if c.encoding == config.EncodingBase58 {
		return base58.Encode(raw)
	}
	return base64.StdEncoding.EncodeToString(raw)
}
