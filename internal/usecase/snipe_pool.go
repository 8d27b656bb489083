package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

// Snipe stages reported in failure events
const (
	SnipeStageMarketKeys = "market_keys"
	SnipeStageBuild      = "build"
	SnipeStageSubmit     = "submit"
)

// ErrPoolAlreadyClaimed is returned when a pool was already handed to the sniper
var ErrPoolAlreadyClaimed = errors.New("pool already claimed")

// SnipePoolUseCase buys into accepted pools through a bundle relay
type SnipePoolUseCase struct {
	claims    domain.SeenRepository
	keys      domain.MarketKeysProvider
	builder   domain.BundleBuilder
	relay     domain.BundleRelay
	publisher domain.EventPublisher
	metrics   *metrics.SniperMetrics
	logger    logger.Logger
	now       func() time.Time
}

// NewSnipePoolUseCase creates the purchase flow. claims is shared by every
// detector and must remember a pool for the life of the process, otherwise a
// pool still trading after the window is bought again.
func NewSnipePoolUseCase(
	claims domain.SeenRepository,
	keys domain.MarketKeysProvider,
	builder domain.BundleBuilder,
	relay domain.BundleRelay,
	publisher domain.EventPublisher,
	sniperMetrics *metrics.SniperMetrics,
	logger logger.Logger,
) *SnipePoolUseCase {
	return &SnipePoolUseCase{
		claims:    claims,
		keys:      keys,
		builder:   builder,
		relay:     relay,
		publisher: publisher,
		metrics:   sniperMetrics,
		logger:    logger.WithField("component", "sniper"),
		now:       time.Now,
	}
}

// Snipe implements domain.PoolSniper
func (uc *SnipePoolUseCase) Snipe(ctx context.Context, pool *domain.PoolMetadata) (*domain.SnipeResult, error) {
	if !uc.claims.MarkSeen(pool.ID.String()) {
		return nil, fmt.Errorf("%w: %s", ErrPoolAlreadyClaimed, pool.ID)
	}

	started := uc.now()
	log := uc.logger.WithFields(map[string]interface{}{
		"pool_id": pool.ID.String(),
		"source":  string(pool.Source),
	})

	log.WithField("opens_at", pool.OpensAt()).Info("Target pool found")

	keys, err := uc.keys.DeriveMarketKeys(ctx, pool)
	if err != nil {
		return nil, uc.fail(ctx, log, pool, SnipeStageMarketKeys, err)
	}

	bundle, err := uc.builder.BuildBundle(ctx, keys)
	if err != nil {
		return nil, uc.fail(ctx, log, pool, SnipeStageBuild, err)
	}

	bundleID, err := uc.relay.SendBundle(ctx, bundle.Transactions)
	if err != nil {
		return nil, uc.fail(ctx, log, pool, SnipeStageSubmit, err)
	}
	uc.announce(ctx, log, pool)

	result := &domain.SnipeResult{
		PoolID:      pool.ID,
		BundleID:    bundleID,
		Signatures:  bundle.Signatures(),
		TipAccount:  bundle.TipAccount,
		TipLamports: bundle.TipLamports,
		AmountIn:    bundle.AmountIn,
		SubmittedAt: uc.now(),
	}
	uc.metrics.RecordSnipeSubmitted(result.SubmittedAt.Sub(started))

	log.WithFields(map[string]interface{}{
		"bundle_id":    bundleID,
		"transactions": len(bundle.Transactions),
		"tip_lamports": bundle.TipLamports,
	}).Info("Bundle submitted")

	uc.awaitResult(ctx, log, result)

	if err := uc.publisher.PublishSnipeSubmitted(ctx, keys, result); err != nil {
		log.WithError(err).Warn("Failed to publish snipe submitted event")
	}

	return result, nil
}

// awaitResult waits for the block engine to report the bundle and records the outcome on result
func (uc *SnipePoolUseCase) awaitResult(ctx context.Context, log logger.Logger, result *domain.SnipeResult) {
	outcome, err := uc.relay.AwaitBundleStatus(ctx, result.BundleID)
	if err != nil {
		log.WithError(err).WithField("bundle_id", result.BundleID).Warn("Failed to query bundle status")
	}
	if outcome == nil {
		outcome = &domain.BundleOutcome{Status: domain.BundleStatusPending}
	}

	result.Status = outcome.Status
	result.LandedSlot = outcome.Slot
	result.StatusError = outcome.Error
	uc.metrics.RecordBundleResult(string(outcome.Status))
}

// announce publishes pool.detected. It is called once per claim, after the
// bundle was sent or the attempt failed.
func (uc *SnipePoolUseCase) announce(ctx context.Context, log logger.Logger, pool *domain.PoolMetadata) {
	if err := uc.publisher.PublishPoolDetected(ctx, pool); err != nil {
		log.WithError(err).Warn("Failed to publish pool detected event")
	}
}

func (uc *SnipePoolUseCase) fail(ctx context.Context, log logger.Logger, pool *domain.PoolMetadata, stage string, err error) error {
	uc.announce(ctx, log, pool)

	noLeader := errors.Is(err, domain.ErrNoConnectedLeader)
	uc.metrics.RecordSnipeFailure(stage, noLeader)

	if noLeader {
		log.WithField("stage", stage).Warn("No connected leader, bundle dropped")
	} else {
		log.WithError(err).WithField("stage", stage).Error("Snipe failed")
	}

	if pubErr := uc.publisher.PublishSnipeFailed(ctx, pool, stage, err.Error()); pubErr != nil {
		log.WithError(pubErr).Warn("Failed to publish snipe failed event")
	}
	return fmt.Errorf("snipe %s failed at %s: %w", pool.ID, stage, err)
}
