package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium/raydiumtest"
	"github.com/supesu/raydium-sniper/internal/infrastructure/repository"
	"github.com/supesu/raydium-sniper/internal/mocks"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/metrics"
	"go.uber.org/mock/gomock"
)

type snipeFixture struct {
	keys      *mocks.MockMarketKeysProvider
	builder   *mocks.MockBundleBuilder
	relay     *mocks.MockBundleRelay
	publisher *mocks.MockEventPublisher
	metrics   *metrics.SniperMetrics
	useCase   *SnipePoolUseCase
}

func newSnipeFixture(t *testing.T) *snipeFixture {
	ctrl := gomock.NewController(t)

	f := &snipeFixture{
		keys:      mocks.NewMockMarketKeysProvider(ctrl),
		builder:   mocks.NewMockBundleBuilder(ctrl),
		relay:     mocks.NewMockBundleRelay(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
		metrics:   metrics.NewSniperMetrics(prometheus.NewRegistry()),
	}
	f.useCase = NewSnipePoolUseCase(repository.NewClaimRepository(), f.keys, f.builder, f.relay, f.publisher, f.metrics, newTestLogger())
	return f
}

func testBundle() *domain.Bundle {
	tx := &solana.Transaction{Signatures: []solana.Signature{{9, 9}}}
	return &domain.Bundle{
		Transactions: []*solana.Transaction{tx},
		TipAccount:   randomKey(),
		TipLamports:  1_000_000,
		AmountIn:     500_000_000,
	}
}

func TestSnipePoolUseCase_Snipe_Success(t *testing.T) {
	f := newSnipeFixture(t)
	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)
	keys := &domain.MarketKeys{PoolMetadata: *pool, MarketBids: randomKey()}
	bundle := testBundle()
	submittedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f.useCase.now = func() time.Time { return submittedAt }

	f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), pool).Return(nil)
	f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), pool).Return(keys, nil)
	f.builder.EXPECT().BuildBundle(gomock.Any(), keys).Return(bundle, nil)
	f.relay.EXPECT().SendBundle(gomock.Any(), bundle.Transactions).Return("bundle-123", nil)
	f.relay.EXPECT().
		AwaitBundleStatus(gomock.Any(), "bundle-123").
		Return(&domain.BundleOutcome{Status: domain.BundleStatusLanded, Slot: 321}, nil)
	f.publisher.EXPECT().
		PublishSnipeSubmitted(gomock.Any(), keys, gomock.Any()).
		DoAndReturn(func(ctx context.Context, k *domain.MarketKeys, result *domain.SnipeResult) error {
			assert.Equal(t, "bundle-123", result.BundleID)
			assert.Equal(t, domain.BundleStatusLanded, result.Status)
			return nil
		})

	result, err := f.useCase.Snipe(context.Background(), pool)

	require.NoError(t, err)
	assert.Equal(t, pool.ID, result.PoolID)
	assert.Equal(t, "bundle-123", result.BundleID)
	assert.Equal(t, bundle.Signatures(), result.Signatures)
	assert.Equal(t, bundle.TipAccount, result.TipAccount)
	assert.Equal(t, uint64(1_000_000), result.TipLamports)
	assert.Equal(t, uint64(500_000_000), result.AmountIn)
	assert.Equal(t, submittedAt, result.SubmittedAt)
	assert.Equal(t, uint64(321), result.LandedSlot)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SnipesSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BundleResults.WithLabelValues("landed")))
}

func TestSnipePoolUseCase_Snipe_BundleResult(t *testing.T) {
	tests := []struct {
		name       string
		outcome    *domain.BundleOutcome
		err        error
		wantStatus domain.BundleStatus
		wantError  string
	}{
		{
			name:       "failed on chain",
			outcome:    &domain.BundleOutcome{Status: domain.BundleStatusFailed, Slot: 77, Error: `{"Err":"InsufficientFunds"}`},
			wantStatus: domain.BundleStatusFailed,
			wantError:  `{"Err":"InsufficientFunds"}`,
		},
		{
			name:       "still pending",
			outcome:    &domain.BundleOutcome{Status: domain.BundleStatusPending},
			wantStatus: domain.BundleStatusPending,
		},
		{
			name:       "status query error",
			err:        errors.New("block engine unreachable"),
			wantStatus: domain.BundleStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSnipeFixture(t)
			pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceAccounts)

			f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), pool).Return(nil)
			f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), pool).Return(&domain.MarketKeys{PoolMetadata: *pool}, nil)
			f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(testBundle(), nil)
			f.relay.EXPECT().SendBundle(gomock.Any(), gomock.Any()).Return("bundle-9", nil)
			f.relay.EXPECT().AwaitBundleStatus(gomock.Any(), "bundle-9").Return(tt.outcome, tt.err)
			f.publisher.EXPECT().PublishSnipeSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			result, err := f.useCase.Snipe(context.Background(), pool)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantError, result.StatusError)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BundleResults.WithLabelValues(string(tt.wantStatus))))
		})
	}
}

func TestSnipePoolUseCase_Snipe_ClaimsPoolOnce(t *testing.T) {
	f := newSnipeFixture(t)
	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)
	fromAccounts := *pool
	fromAccounts.Source = domain.DetectionSourceAccounts

	f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(&domain.MarketKeys{PoolMetadata: *pool}, nil).Times(1)
	f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(testBundle(), nil).Times(1)
	f.relay.EXPECT().SendBundle(gomock.Any(), gomock.Any()).Return("bundle-1", nil).Times(1)
	f.relay.EXPECT().AwaitBundleStatus(gomock.Any(), "bundle-1").Return(&domain.BundleOutcome{Status: domain.BundleStatusPending}, nil).Times(1)
	f.publisher.EXPECT().PublishSnipeSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := f.useCase.Snipe(context.Background(), pool)
	require.NoError(t, err)

	_, err = f.useCase.Snipe(context.Background(), &fromAccounts)
	assert.ErrorIs(t, err, ErrPoolAlreadyClaimed)
}

func TestSnipePoolUseCase_Snipe_Failures(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		setup func(f *snipeFixture, err error)
	}{
		{
			name:  "market keys",
			stage: SnipeStageMarketKeys,
			setup: func(f *snipeFixture, err error) {
				f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(nil, err)
			},
		},
		{
			name:  "build",
			stage: SnipeStageBuild,
			setup: func(f *snipeFixture, err error) {
				f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(&domain.MarketKeys{}, nil)
				f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(nil, err)
			},
		},
		{
			name:  "submit",
			stage: SnipeStageSubmit,
			setup: func(f *snipeFixture, err error) {
				f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(&domain.MarketKeys{}, nil)
				f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(testBundle(), nil)
				f.relay.EXPECT().SendBundle(gomock.Any(), gomock.Any()).Return("", err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSnipeFixture(t)
			pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)
			cause := errors.New("boom")
			f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), pool).Return(nil)
			tt.setup(f, cause)

			f.publisher.EXPECT().
				PublishSnipeFailed(gomock.Any(), pool, tt.stage, gomock.Any()).
				Return(nil)

			result, err := f.useCase.Snipe(context.Background(), pool)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, cause)
			assert.Contains(t, err.Error(), tt.stage)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SnipeFailures.WithLabelValues(tt.stage)))
			assert.Zero(t, testutil.ToFloat64(f.metrics.NoLeaderDrops))
		})
	}
}

func TestSnipePoolUseCase_Snipe_NoConnectedLeader(t *testing.T) {
	f := newSnipeFixture(t)
	pool := testPool(randomKey(), domain.WrappedSOLMint, domain.DetectionSourceLogs)

	f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), pool).Return(nil)
	f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(&domain.MarketKeys{}, nil)
	f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(testBundle(), nil)
	f.relay.EXPECT().SendBundle(gomock.Any(), gomock.Any()).Return("", domain.ErrNoConnectedLeader)
	f.publisher.EXPECT().PublishSnipeFailed(gomock.Any(), gomock.Any(), SnipeStageSubmit, gomock.Any()).Return(nil)

	_, err := f.useCase.Snipe(context.Background(), pool)

	assert.ErrorIs(t, err, domain.ErrNoConnectedLeader)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.NoLeaderDrops))
}

func TestSnipePoolUseCase_PoolStaysClaimedAfterSeenWindow(t *testing.T) {
	f := newSnipeFixture(t)
	now := time.Unix(1_700_000_000, 0)
	seen := repository.NewSeenRepository(30*time.Minute, 100, repository.WithClock(func() time.Time { return now }))
	detector := NewDetectAccountPoolUseCase(
		seen,
		raydium.NewPoolStateDecoder(raydiumtest.PoolProgramID),
		domain.EligibilityCriterion{},
		f.useCase,
		f.metrics,
		newTestLogger(),
	)

	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), domain.WrappedSOLMint)
	notification := &domain.AccountNotification{Account: fixture.Amm, Slot: 5, Data: fixture.PoolAccountData()}

	f.publisher.EXPECT().PublishPoolDetected(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.keys.EXPECT().DeriveMarketKeys(gomock.Any(), gomock.Any()).Return(&domain.MarketKeys{}, nil).Times(1)
	f.builder.EXPECT().BuildBundle(gomock.Any(), gomock.Any()).Return(testBundle(), nil).Times(1)
	f.relay.EXPECT().SendBundle(gomock.Any(), gomock.Any()).Return("bundle-once", nil).Times(1)
	f.relay.EXPECT().AwaitBundleStatus(gomock.Any(), "bundle-once").Return(&domain.BundleOutcome{Status: domain.BundleStatusLanded}, nil).Times(1)
	f.publisher.EXPECT().PublishSnipeSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	first, err := detector.Execute(context.Background(), notification)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHandedOff, first.Outcome)

	// the pool keeps trading, so its state account is pushed again long after
	// the detector window has forgotten it
	now = now.Add(31 * time.Minute)
	require.False(t, seen.Seen(fixture.Amm.String()))

	second, err := detector.Execute(context.Background(), notification)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, second.Outcome)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SnipesSubmitted))
}
