package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
	"github.com/supesu/raydium-sniper/pkg/metrics"
)

type handOffDeps struct {
	criterion domain.EligibilityCriterion
	sniper    domain.PoolSniper
	metrics   *metrics.SniperMetrics
	logger    logger.Logger
}

// handOff applies the eligibility decision to pool and passes accepted pools to the sniper
func handOff(ctx context.Context, deps handOffDeps, pool *domain.PoolMetadata, started time.Time) (*DetectionResult, error) {
	source := string(pool.Source)
	decision := deps.criterion.Decide(pool)
	deps.metrics.RecordDecision(source, decision.Accept, decision.Reason)

	log := deps.logger.WithFields(map[string]interface{}{
		"pool_id":    pool.ID.String(),
		"base_mint":  pool.BaseMint.String(),
		"quote_mint": pool.QuoteMint.String(),
	})

	if !decision.Accept {
		log.WithField("reason", decision.Reason).Debug("Pool rejected")
		return &DetectionResult{Outcome: OutcomeRejected, Pool: pool, Decision: decision}, nil
	}

	log.WithField("opens_at", pool.OpensAt()).Info("Pool accepted")

	result, err := deps.sniper.Snipe(ctx, pool)
	deps.metrics.ObserveDetection(source, started)
	if err != nil {
		if errors.Is(err, ErrPoolAlreadyClaimed) {
			log.Debug("Pool already handed off by another detector")
			return &DetectionResult{Outcome: OutcomeDuplicate, Pool: pool, Decision: decision}, nil
		}
		deps.metrics.RecordEventError(source, StageSnipe)
		return nil, err
	}

	return &DetectionResult{Outcome: OutcomeHandedOff, Pool: pool, Decision: decision, Snipe: result}, nil
}
