package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

// Detection outcomes
const (
	OutcomeDuplicate   = "duplicate"
	OutcomeNotPoolInit = "not_pool_init"
	OutcomeFailedTx    = "failed_transaction"
	OutcomeInvalidSize = "invalid_size"
	OutcomeRejected    = "rejected"
	OutcomeHandedOff   = "handed_off"
)

// Failure stages reported in metrics
const (
	StageFetch  = "fetch"
	StageParse  = "parse"
	StageDecode = "decode"
	StageSnipe  = "snipe"
)

// TransactionParser reconstructs pool metadata from a pool initialization transaction
type TransactionParser interface {
	Parse(tx *domain.ConfirmedTransaction) (*domain.PoolMetadata, error)
}

// DetectionResult describes what a detector did with one notification
type DetectionResult struct {
	Outcome  string
	Pool     *domain.PoolMetadata
	Decision domain.Decision
	Snipe    *domain.SnipeResult
}

// DetectLogPoolUseCase detects new pools from the logs of their initialization transaction
type DetectLogPoolUseCase struct {
	seen      domain.SeenRepository
	fetcher   domain.TransactionFetcher
	parser    TransactionParser
	criterion domain.EligibilityCriterion
	sniper    domain.PoolSniper
	metrics   *metrics.SniperMetrics
	logger    logger.Logger

	initMarker string
}

// NewDetectLogPoolUseCase creates a log detector. seen must not be shared with other detectors.
func NewDetectLogPoolUseCase(
	seen domain.SeenRepository,
	fetcher domain.TransactionFetcher,
	parser TransactionParser,
	criterion domain.EligibilityCriterion,
	sniper domain.PoolSniper,
	sniperMetrics *metrics.SniperMetrics,
	logger logger.Logger,
	initMarker string,
) *DetectLogPoolUseCase {
	return &DetectLogPoolUseCase{
		seen:       seen,
		fetcher:    fetcher,
		parser:     parser,
		criterion:  criterion,
		sniper:     sniper,
		metrics:    sniperMetrics,
		logger:     logger.WithField("detector", string(domain.DetectionSourceLogs)),
		initMarker: initMarker,
	}
}

// HandleLog processes one notification and never returns an error, so the
// subscription keeps running whatever happens to a single event
func (uc *DetectLogPoolUseCase) HandleLog(ctx context.Context, notification *domain.LogNotification) {
	if _, err := uc.Execute(ctx, notification); err != nil {
		uc.logger.WithError(err).WithField("signature", notification.Signature.String()).Error("Failed to process log notification")
	}
}

// Execute runs the detection steps for one log notification
func (uc *DetectLogPoolUseCase) Execute(ctx context.Context, notification *domain.LogNotification) (*DetectionResult, error) {
	started := time.Now()
	source := string(domain.DetectionSourceLogs)
	signature := notification.Signature.String()

	if !uc.seen.MarkSeen(signature) {
		uc.metrics.RecordSkipped(source, OutcomeDuplicate)
		return &DetectionResult{Outcome: OutcomeDuplicate}, nil
	}

	if !containsMarker(notification.Logs, uc.initMarker) {
		uc.metrics.RecordSkipped(source, OutcomeNotPoolInit)
		return &DetectionResult{Outcome: OutcomeNotPoolInit}, nil
	}

	if notification.Failed {
		uc.logger.WithField("signature", signature).Debug("Pool initialization transaction failed, skipping")
		uc.metrics.RecordSkipped(source, OutcomeFailedTx)
		return &DetectionResult{Outcome: OutcomeFailedTx}, nil
	}

	uc.logger.WithFields(map[string]interface{}{
		"signature": signature,
		"slot":      notification.Slot,
	}).Info("Pool initialization detected")

	tx, err := uc.fetcher.FetchTransaction(ctx, notification.Signature)
	if err != nil {
		uc.metrics.RecordEventError(source, StageFetch)
		return nil, err
	}

	pool, err := uc.parser.Parse(tx)
	if err != nil {
		uc.metrics.RecordEventError(source, StageParse)
		return nil, err
	}

	return handOff(ctx, handOffDeps{
		criterion: uc.criterion,
		sniper:    uc.sniper,
		metrics:   uc.metrics,
		logger:    uc.logger,
	}, pool, started)
}

func containsMarker(logs []string, marker string) bool {
	for _, line := range logs {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
