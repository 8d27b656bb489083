package solana

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/supesu/raydium-sniper/internal/adapters"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

// Stream names used for logging and metrics labels
const (
	StreamLogs     = "logs"
	StreamAccounts = "accounts"
)

// LogHandler receives every log notification of a stream
type LogHandler func(ctx context.Context, notification *domain.LogNotification)

// AccountHandler receives every account notification of a stream
type AccountHandler func(ctx context.Context, notification *domain.AccountNotification)

// StreamClient runs websocket subscriptions that reconnect until their context is cancelled
type StreamClient struct {
	endpoint   string
	commitment rpc.CommitmentType
	connConfig adapters.ConnectionConfig
	metrics    *metrics.SniperMetrics
	logger     logger.Logger

	mu       sync.RWMutex
	managers map[string]*adapters.BaseConnectionManager
}

// NewStreamClient creates a stream client for the configured websocket endpoint
func NewStreamClient(cfg *config.Config, sniperMetrics *metrics.SniperMetrics, log logger.Logger) *StreamClient {
	connConfig := adapters.DefaultConnectionConfig()
	if cfg.Detection.MaxRetries > 0 {
		connConfig.MaxRetries = cfg.Detection.MaxRetries
	}
	if cfg.Detection.RetryDelay > 0 {
		connConfig.BaseRetryDelay = cfg.Detection.RetryDelay
	}
	if cfg.Detection.MaxRetryDelay > 0 {
		connConfig.MaxRetryDelay = cfg.Detection.MaxRetryDelay
	}

	commitment := rpc.CommitmentType(cfg.Solana.Commitment)
	if commitment == "" {
		commitment = rpc.CommitmentProcessed
	}

	return &StreamClient{
		endpoint:   cfg.Solana.WSEndpoint,
		commitment: commitment,
		connConfig: connConfig,
		metrics:    sniperMetrics,
		logger:     log.WithField("component", "stream"),
		managers:   make(map[string]*adapters.BaseConnectionManager),
	}
}

// StreamLogs subscribes to the logs of every transaction mentioning program
// and calls handle for each of them. It blocks until ctx is cancelled or
// reconnecting gives up.
func (s *StreamClient) StreamLogs(ctx context.Context, program solana.PublicKey, handle LogHandler) error {
	var (
		client *ws.Client
		sub    *ws.LogSubscription
	)

	connect := func(ctx context.Context) error {
		c, err := ws.Connect(ctx, s.endpoint)
		if err != nil {
			return fmt.Errorf("failed to connect to websocket: %w", err)
		}
		subscription, err := c.LogsSubscribeMentions(program, s.commitment)
		if err != nil {
			c.Close()
			return fmt.Errorf("failed to subscribe to program logs: %w", err)
		}
		client, sub = c, subscription
		s.logger.WithFields(map[string]interface{}{
			"program_id": program.String(),
			"commitment": s.commitment,
		}).Info("Subscribed to program logs")
		return nil
	}

	disconnect := func() error {
		if sub != nil {
			sub.Unsubscribe()
			sub = nil
		}
		if client != nil {
			client.Close()
			client = nil
		}
		return nil
	}

	manager := s.register(StreamLogs, connect, disconnect)
	return manager.Run(ctx, func(ctx context.Context) error {
		for {
			msg, err := sub.Recv(ctx)
			if err != nil {
				return err
			}
			if msg == nil {
				continue
			}
			handle(ctx, &domain.LogNotification{
				Signature: msg.Value.Signature,
				Slot:      msg.Context.Slot,
				Logs:      msg.Value.Logs,
				Failed:    msg.Value.Err != nil,
			})
		}
	})
}

// StreamAccounts subscribes to changes of program accounts of exactly
// dataSize bytes and calls handle for each of them. Account changes are
// always streamed at processed commitment.
func (s *StreamClient) StreamAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64, handle AccountHandler) error {
	var (
		client *ws.Client
		sub    *ws.ProgramSubscription
	)

	connect := func(ctx context.Context) error {
		c, err := ws.Connect(ctx, s.endpoint)
		if err != nil {
			return fmt.Errorf("failed to connect to websocket: %w", err)
		}
		subscription, err := c.ProgramSubscribeWithOpts(
			program,
			rpc.CommitmentProcessed,
			solana.EncodingBase64,
			[]rpc.RPCFilter{{DataSize: dataSize}},
		)
		if err != nil {
			c.Close()
			return fmt.Errorf("failed to subscribe to program accounts: %w", err)
		}
		client, sub = c, subscription
		s.logger.WithFields(map[string]interface{}{
			"program_id": program.String(),
			"data_size":  dataSize,
		}).Info("Subscribed to program accounts")
		return nil
	}

	disconnect := func() error {
		if sub != nil {
			sub.Unsubscribe()
			sub = nil
		}
		if client != nil {
			client.Close()
			client = nil
		}
		return nil
	}

	manager := s.register(StreamAccounts, connect, disconnect)
	return manager.Run(ctx, func(ctx context.Context) error {
		for {
			msg, err := sub.Recv(ctx)
			if err != nil {
				return err
			}
			if msg == nil || msg.Value.Account == nil || msg.Value.Account.Data == nil {
				continue
			}
			handle(ctx, &domain.AccountNotification{
				Account: msg.Value.Pubkey,
				Slot:    msg.Context.Slot,
				Data:    msg.Value.Account.Data.GetBinary(),
			})
		}
	})
}

// IsHealthy fails when any started stream is not connected
func (s *StreamClient) IsHealthy(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, manager := range s.managers {
		if err := manager.IsHealthy(ctx); err != nil {
			return err
		}
	}
	return nil
}

// State returns the connection state of the named stream
func (s *StreamClient) State(name string) adapters.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manager, ok := s.managers[name]
	if !ok {
		return adapters.StateDisconnected
	}
	return manager.GetState()
}

func (s *StreamClient) register(name string, connect func(ctx context.Context) error, disconnect func() error) *adapters.BaseConnectionManager {
	manager := adapters.NewBaseConnectionManager(name, s.logger, s.connConfig, connect, disconnect, nil)
	manager.SetObserver(s.observe)

	s.mu.Lock()
	s.managers[name] = manager
	s.mu.Unlock()

	return manager
}

func (s *StreamClient) observe(name string, state adapters.ConnectionState) {
	s.metrics.UpdateSubscriptionStatus(name, state == adapters.StateConnected)
	if state == adapters.StateReconnecting {
		s.metrics.RecordReconnect(name)
	}
}
