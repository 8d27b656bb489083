package solana

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

const defaultMaxInFlight = 64

// LogPoolHandler processes one log notification of the pool program
type LogPoolHandler interface {
	HandleLog(ctx context.Context, notification *domain.LogNotification)
}

// AccountPoolHandler processes one account notification of the pool program
type AccountPoolHandler interface {
	HandleAccount(ctx context.Context, notification *domain.AccountNotification)
}

// ScannerConfig selects the streams a PoolScanner runs
type ScannerConfig struct {
	ProgramID     solana.PublicKey
	PoolStateSize uint64
	MaxInFlight   int

	// Logs and Accounts are optional; a nil handler disables its stream
	Logs     LogPoolHandler
	Accounts AccountPoolHandler
}

// PoolScanner feeds websocket notifications of the pool program to the detectors.
// Every notification is handled on its own goroutine, at most MaxInFlight per stream.
type PoolScanner struct {
	stream  *StreamClient
	config  ScannerConfig
	metrics *metrics.SniperMetrics
	logger  logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewPoolScanner creates a scanner reading from stream
func NewPoolScanner(stream *StreamClient, cfg ScannerConfig, sniperMetrics *metrics.SniperMetrics, log logger.Logger) *PoolScanner {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}
	return &PoolScanner{
		stream:  stream,
		config:  cfg,
		metrics: sniperMetrics,
		logger:  log.WithField("component", "pool_scanner"),
	}
}

// Start launches the enabled streams and returns immediately
func (s *PoolScanner) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.group != nil {
		return errors.New("pool scanner already started")
	}
	if s.config.Logs == nil && s.config.Accounts == nil {
		return errors.New("no detection stream enabled")
	}

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	s.cancel = cancel
	s.group = group

	s.logger.WithFields(map[string]interface{}{
		"program_id":    s.config.ProgramID.String(),
		"logs":          s.config.Logs != nil,
		"accounts":      s.config.Accounts != nil,
		"max_in_flight": s.config.MaxInFlight,
	}).Info("Starting pool scanner")

	if s.config.Logs != nil {
		group.Go(func() error {
			return s.runLogs(ctx)
		})
	}
	if s.config.Accounts != nil {
		group.Go(func() error {
			return s.runAccounts(ctx)
		})
	}
	return nil
}

// Wait blocks until every stream and in-flight notification has finished
func (s *PoolScanner) Wait() error {
	s.mu.Lock()
	group := s.group
	s.mu.Unlock()

	if group == nil {
		return nil
	}
	return group.Wait()
}

// Stop cancels the streams and waits for in-flight notifications
func (s *PoolScanner) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	s.logger.Info("Stopping pool scanner")
	cancel()
	if err := s.Wait(); err != nil {
		s.logger.WithError(err).Warn("Pool scanner stopped with error")
	}
}

// Run starts the scanner and blocks until ctx is cancelled or a stream fails
func (s *PoolScanner) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	return s.Wait()
}

// HealthCheck reports the health of the websocket streams
func (s *PoolScanner) HealthCheck(ctx context.Context) error {
	return s.stream.IsHealthy(ctx)
}

func (s *PoolScanner) runLogs(ctx context.Context) error {
	source := string(domain.DetectionSourceLogs)
	workers := s.newWorkers()

	err := s.stream.StreamLogs(ctx, s.config.ProgramID, func(ctx context.Context, notification *domain.LogNotification) {
		s.metrics.RecordNotification(source)
		workers.Go(func() error {
			done := s.metrics.TrackInFlight(source)
			defer done()
			s.config.Logs.HandleLog(ctx, notification)
			return nil
		})
	})

	_ = workers.Wait()
	if err != nil {
		return fmt.Errorf("log stream stopped: %w", err)
	}
	return nil
}

func (s *PoolScanner) runAccounts(ctx context.Context) error {
	source := string(domain.DetectionSourceAccounts)
	workers := s.newWorkers()

	err := s.stream.StreamAccounts(ctx, s.config.ProgramID, s.config.PoolStateSize, func(ctx context.Context, notification *domain.AccountNotification) {
		s.metrics.RecordNotification(source)
		workers.Go(func() error {
			done := s.metrics.TrackInFlight(source)
			defer done()
			s.config.Accounts.HandleAccount(ctx, notification)
			return nil
		})
	})

	_ = workers.Wait()
	if err != nil {
		return fmt.Errorf("account stream stopped: %w", err)
	}
	return nil
}

func (s *PoolScanner) newWorkers() *errgroup.Group {
	workers := new(errgroup.Group)
	workers.SetLimit(s.config.MaxInFlight)
	return workers
}
