package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

var (
	// ErrTransactionNotFound is returned when the node does not know the signature yet
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrAccountNotFound is returned for accounts that do not exist
	ErrAccountNotFound = errors.New("account not found")
)

const defaultRequestTimeout = 10 * time.Second

// ChainClient reads transactions, accounts and blockhashes over Solana JSON-RPC
type ChainClient struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
	logger     logger.Logger
}

// NewChainClient creates a client for the configured RPC endpoint
func NewChainClient(cfg *config.Config, log logger.Logger) *ChainClient {
	timeout := cfg.Solana.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := &ChainClient{
		rpcClient:  rpc.New(cfg.Solana.RPC),
		commitment: rpc.CommitmentType(cfg.Solana.Commitment),
		timeout:    timeout,
		logger:     log.WithField("component", "rpc"),
	}
	client.logger.WithField("rpc_url", cfg.Solana.RPC).Info("RPC client initialized")
	return client
}

// GetRPCClient returns the underlying RPC client
func (c *ChainClient) GetRPCClient() *rpc.Client {
	return c.rpcClient
}

// FetchTransaction implements domain.TransactionFetcher
func (c *ChainClient) FetchTransaction(ctx context.Context, signature solana.Signature) (*domain.ConfirmedTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	maxVersion := uint64(0)
	result, err := c.rpcClient.GetTransaction(ctx, signature, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     c.transactionCommitment(),
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, signature)
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", signature, err)
	}
	if result == nil || result.Transaction == nil {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, signature)
	}

	tx, err := result.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction %s: %w", signature, err)
	}

	return &domain.ConfirmedTransaction{
		Slot:        result.Slot,
		Transaction: tx,
		Meta:        result.Meta,
	}, nil
}

// FetchAccountData implements domain.AccountFetcher
func (c *ChainClient) FetchAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", account, err)
	}
	if result == nil || result.Value == nil || result.Value.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}

	return result.Value.Data.GetBinary(), nil
}

// LatestBlockhash implements domain.BlockhashFetcher
func (c *ChainClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.rpcClient.GetLatestBlockhash(ctx, c.transactionCommitment())
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, errors.New("empty latest blockhash response")
	}
	return result.Value.Blockhash, nil
}

// Health reports whether the RPC node considers itself healthy
func (c *ChainClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.rpcClient.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("rpc health check failed: %w", err)
	}
	if status != rpc.HealthOk {
		return fmt.Errorf("rpc node reports %q", status)
	}
	return nil
}

// transactionCommitment returns the commitment used for transaction and
// blockhash reads, which do not accept processed
func (c *ChainClient) transactionCommitment() rpc.CommitmentType {
	if c.commitment == "" || c.commitment == rpc.CommitmentProcessed {
		return rpc.CommitmentConfirmed
	}
	return c.commitment
}
