package usecase

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

// PoolStateDecoder decodes pool state accounts
type PoolStateDecoder interface {
	StateSize() int
	DecodePool(id solana.PublicKey, data []byte) (*domain.PoolMetadata, error)
}

// DetectAccountPoolUseCase detects new pools from program account changes
type DetectAccountPoolUseCase struct {
	seen      domain.SeenRepository
	decoder   PoolStateDecoder
	criterion domain.EligibilityCriterion
	sniper    domain.PoolSniper
	metrics   *metrics.SniperMetrics
	logger    logger.Logger
}

// NewDetectAccountPoolUseCase creates an account detector. seen must not be shared with other detectors.
func NewDetectAccountPoolUseCase(
	seen domain.SeenRepository,
	decoder PoolStateDecoder,
	criterion domain.EligibilityCriterion,
	sniper domain.PoolSniper,
	sniperMetrics *metrics.SniperMetrics,
	logger logger.Logger,
) *DetectAccountPoolUseCase {
	return &DetectAccountPoolUseCase{
		seen:      seen,
		decoder:   decoder,
		criterion: criterion,
		sniper:    sniper,
		metrics:   sniperMetrics,
		logger:    logger.WithField("detector", string(domain.DetectionSourceAccounts)),
	}
}

// HandleAccount processes one notification, logging instead of returning errors
func (uc *DetectAccountPoolUseCase) HandleAccount(ctx context.Context, notification *domain.AccountNotification) {
	if _, err := uc.Execute(ctx, notification); err != nil {
		uc.logger.WithError(err).WithField("account", notification.Account.String()).Error("Failed to process account notification")
	}
}

// Execute runs the detection steps for one account notification
func (uc *DetectAccountPoolUseCase) Execute(ctx context.Context, notification *domain.AccountNotification) (*DetectionResult, error) {
	started := time.Now()
	source := string(domain.DetectionSourceAccounts)

	if len(notification.Data) != uc.decoder.StateSize() {
		uc.metrics.RecordSkipped(source, OutcomeInvalidSize)
		return &DetectionResult{Outcome: OutcomeInvalidSize}, nil
	}

	if !uc.seen.MarkSeen(notification.Account.String()) {
		uc.metrics.RecordSkipped(source, OutcomeDuplicate)
		return &DetectionResult{Outcome: OutcomeDuplicate}, nil
	}

	pool, err := uc.decoder.DecodePool(notification.Account, notification.Data)
	if err != nil {
		uc.metrics.RecordEventError(source, StageDecode)
		return nil, err
	}
	pool.Slot = notification.Slot

	uc.logger.WithFields(map[string]interface{}{
		"pool_id": pool.ID.String(),
		"slot":    notification.Slot,
	}).Infof("New pool account, pool opens at %s", pool.OpensAt().Format(time.RFC3339))

	return handOff(ctx, handOffDeps{
		criterion: uc.criterion,
		sniper:    uc.sniper,
		metrics:   uc.metrics,
		logger:    uc.logger,
	}, pool, started)
}
