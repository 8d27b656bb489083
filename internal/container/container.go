package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/supesu/raydium-sniper/internal/adapters/discord"
	"github.com/supesu/raydium-sniper/internal/adapters/jito"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium"
	"github.com/supesu/raydium-sniper/internal/adapters/solana"
	"github.com/supesu/raydium-sniper/internal/infrastructure/events"
	"github.com/supesu/raydium-sniper/internal/infrastructure/repository"
	"github.com/supesu/raydium-sniper/internal/usecase"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Container holds all application dependencies
type Container struct {
	// Configuration and infrastructure
	Config   *config.Config
	Logger   logger.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.SniperMetrics

	// Adapters
	ChainClient   *solana.ChainClient
	StreamClient  *solana.StreamClient
	BundleBuilder *solana.TransactionBuilder
	Relay         *jito.Client
	Notifier      *discord.Notifier

	// Event publisher
	EventPublisher domain.EventPublisher

	// Use cases (application layer)
	SnipePoolUC         *usecase.SnipePoolUseCase
	DetectLogPoolUC     *usecase.DetectLogPoolUseCase
	DetectAccountPoolUC *usecase.DetectAccountPoolUseCase
	NotifySnipeUC       *usecase.NotifySnipeUseCase

	// Services
	Scanner       *solana.PoolScanner
	MetricsServer *metrics.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log logger.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: log,
	}

	container.setupMetrics()
	if err := container.setupAdapters(); err != nil {
		return nil, err
	}
	container.setupEventPublisher()
	if err := container.setupUseCases(); err != nil {
		return nil, err
	}
	container.setupServices()

	return container, nil
}

func (c *Container) setupMetrics() {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewSniperMetrics(c.Registry)
}

// setupAdapters initializes the chain, relay and notification adapters
func (c *Container) setupAdapters() error {
	c.Logger.Info("Setting up adapters")

	wallet, err := c.Config.PrivateKey()
	if err != nil {
		return err
	}

	c.ChainClient = solana.NewChainClient(c.Config, c.Logger)
	c.StreamClient = solana.NewStreamClient(c.Config, c.Metrics, c.Logger)

	c.BundleBuilder, err = solana.NewTransactionBuilder(c.Config, wallet, c.ChainClient, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create transaction builder: %w", err)
	}

	c.Relay = jito.NewClient(c.Config, c.Logger)

	if c.Config.Discord.Enabled {
		c.Notifier, err = discord.NewNotifier(&c.Config.Discord, c.Logger)
		if err != nil {
			return err
		}
	}

	c.Logger.WithField("wallet", wallet.PublicKey().String()).Info("Adapters initialized")
	return nil
}

// setupEventPublisher initializes the event publisher
func (c *Container) setupEventPublisher() {
	c.EventPublisher = events.NewMemoryEventPublisher(c.Logger)
}

// setupUseCases initializes use case implementations
func (c *Container) setupUseCases() error {
	c.Logger.Info("Setting up use cases")

	target, err := c.Config.TargetMint()
	if err != nil {
		return err
	}
	criterion := domain.NewEligibilityCriterion(target)
	detection := c.Config.Detection

	// pools stay claimed for the life of the process
	c.SnipePoolUC = usecase.NewSnipePoolUseCase(
		repository.NewClaimRepository(),
		raydium.NewMarketKeysProvider(c.ChainClient),
		c.BundleBuilder,
		c.Relay,
		c.EventPublisher,
		c.Metrics,
		c.Logger,
	)

	if detection.LogsEnabled {
		c.DetectLogPoolUC = usecase.NewDetectLogPoolUseCase(
			repository.NewSeenRepository(detection.SeenTTL, detection.SeenCapacity),
			c.ChainClient,
			raydium.NewTransactionParser(raydium.LiquidityPoolV4ProgramID),
			criterion,
			c.SnipePoolUC,
			c.Metrics,
			c.Logger,
			raydium.InitLogMarker,
		)
	}

	if detection.AccountsEnabled {
		c.DetectAccountPoolUC = usecase.NewDetectAccountPoolUseCase(
			repository.NewSeenRepository(detection.SeenTTL, detection.SeenCapacity),
			raydium.NewPoolStateDecoder(raydium.LiquidityPoolV4ProgramID),
			criterion,
			c.SnipePoolUC,
			c.Metrics,
			c.Logger,
		)
	}

	if c.Notifier != nil {
		c.NotifySnipeUC = usecase.NewNotifySnipeUseCase(c.Notifier, c.Logger)
		if err := c.NotifySnipeUC.Subscribe(context.Background(), c.EventPublisher); err != nil {
			return err
		}
	}

	c.Logger.WithFields(map[string]interface{}{
		"target_mint": target.String(),
		"logs":        detection.LogsEnabled,
		"accounts":    detection.AccountsEnabled,
		"discord":     c.Notifier != nil,
	}).Info("Use cases initialized")
	return nil
}

// setupServices initializes the scanner and the metrics server
func (c *Container) setupServices() {
	scannerConfig := solana.ScannerConfig{
		ProgramID:     raydium.LiquidityPoolV4ProgramID,
		PoolStateSize: raydium.PoolStateSize,
		MaxInFlight:   c.Config.Detection.MaxInFlight,
	}
	// assigned separately so a disabled detector leaves a nil interface
	if c.DetectLogPoolUC != nil {
		scannerConfig.Logs = c.DetectLogPoolUC
	}
	if c.DetectAccountPoolUC != nil {
		scannerConfig.Accounts = c.DetectAccountPoolUC
	}
	c.Scanner = solana.NewPoolScanner(c.StreamClient, scannerConfig, c.Metrics, c.Logger)

	if c.Config.Metrics.Enabled {
		c.MetricsServer = metrics.NewServer(c.Config.Metrics.Port, c.Registry, c.Logger)
		c.MetricsServer.SetHealthCheck(c.HealthCheck)
	}
}

// HealthCheck reports unhealthy when the RPC node or any stream is down
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.ChainClient.Health(ctx); err != nil {
		return err
	}
	return c.Scanner.HealthCheck(ctx)
}

// Run blocks until ctx is cancelled or the scanner gives up
func (c *Container) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.Scanner.Run(ctx)
	})
	if c.MetricsServer != nil {
		group.Go(func() error {
			return c.MetricsServer.Run(ctx)
		})
	}

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Shutdown performs cleanup of container resources
func (c *Container) Shutdown() {
	c.Logger.Info("Shutting down container")

	c.Scanner.Stop()

	if c.MetricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.MetricsServer.Stop(ctx); err != nil {
			c.Logger.WithError(err).Error("Error stopping metrics server")
		}
	}

	c.Logger.Info("Container shutdown complete")
}
