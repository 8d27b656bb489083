package usecase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium/raydiumtest"
	"github.com/supesu/raydium-sniper/internal/mocks"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func newAccountDetector(t *testing.T, criterion domain.EligibilityCriterion) (*DetectAccountPoolUseCase, *mocks.MockPoolSniper, *metrics.SniperMetrics) {
	ctrl := gomock.NewController(t)

	sniper := mocks.NewMockPoolSniper(ctrl)
	sniperMetrics := metrics.NewSniperMetrics(prometheus.NewRegistry())
	decoder := raydium.NewPoolStateDecoder(raydiumtest.PoolProgramID)

	useCase := NewDetectAccountPoolUseCase(newTestSeen(), decoder, criterion, sniper, sniperMetrics, newTestLogger())
	return useCase, sniper, sniperMetrics
}

func TestDetectAccountPoolUseCase_Execute_HandsOffDecodedPool(t *testing.T) {
	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), domain.WrappedSOLMint)
	useCase, sniper, _ := newAccountDetector(t, domain.EligibilityCriterion{})

	sniper.EXPECT().
		Snipe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, pool *domain.PoolMetadata) (*domain.SnipeResult, error) {
			assert.Equal(t, fixture.Amm, pool.ID)
			assert.Equal(t, fixture.BaseMint, pool.BaseMint)
			assert.Equal(t, fixture.MarketID, pool.MarketID)
			assert.Equal(t, domain.DetectionSourceAccounts, pool.Source)
			assert.Equal(t, uint64(42), pool.Slot)
			return &domain.SnipeResult{PoolID: pool.ID}, nil
		})

	result, err := useCase.Execute(context.Background(), &domain.AccountNotification{
		Account: fixture.Amm,
		Slot:    42,
		Data:    fixture.PoolAccountData(),
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeHandedOff, result.Outcome)
}

func TestDetectAccountPoolUseCase_Execute_RejectsWrongSizeBeforeSeen(t *testing.T) {
	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), domain.WrappedSOLMint)
	useCase, sniper, sniperMetrics := newAccountDetector(t, domain.EligibilityCriterion{})

	result, err := useCase.Execute(context.Background(), &domain.AccountNotification{
		Account: fixture.Amm,
		Data:    fixture.PoolAccountData()[:751],
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalidSize, result.Outcome)
	assert.Equal(t, 1.0, testutil.ToFloat64(sniperMetrics.NotificationsSkipped.WithLabelValues("accounts", OutcomeInvalidSize)))

	// the undersized update must not have claimed the account
	sniper.EXPECT().Snipe(gomock.Any(), gomock.Any()).Return(&domain.SnipeResult{}, nil)

	result, err = useCase.Execute(context.Background(), &domain.AccountNotification{
		Account: fixture.Amm,
		Data:    fixture.PoolAccountData(),
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHandedOff, result.Outcome)
}

func TestDetectAccountPoolUseCase_Execute_ReplayIsNoOp(t *testing.T) {
	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), domain.WrappedSOLMint)
	useCase, sniper, _ := newAccountDetector(t, domain.EligibilityCriterion{})
	notification := &domain.AccountNotification{Account: fixture.Amm, Data: fixture.PoolAccountData()}

	sniper.EXPECT().Snipe(gomock.Any(), gomock.Any()).Return(&domain.SnipeResult{}, nil).Times(1)

	_, err := useCase.Execute(context.Background(), notification)
	require.NoError(t, err)

	result, err := useCase.Execute(context.Background(), notification)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, result.Outcome)
}

func TestDetectAccountPoolUseCase_Execute_RejectsNonNativeQuote(t *testing.T) {
	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), raydiumtest.RandomKey())
	useCase, _, sniperMetrics := newAccountDetector(t, domain.EligibilityCriterion{})

	result, err := useCase.Execute(context.Background(), &domain.AccountNotification{
		Account: fixture.Amm,
		Data:    fixture.PoolAccountData(),
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, domain.ReasonQuoteNotNative, result.Decision.Reason)
	assert.Equal(t, 1.0, testutil.ToFloat64(sniperMetrics.PoolsRejected.WithLabelValues("accounts", domain.ReasonQuoteNotNative)))
}

func TestDetectAccountPoolUseCase_Execute_TargetMint(t *testing.T) {
	target := raydiumtest.RandomKey()
	fixture := raydiumtest.NewInitFixture(target, domain.WrappedSOLMint)
	useCase, sniper, _ := newAccountDetector(t, domain.NewEligibilityCriterion(target))

	sniper.EXPECT().Snipe(gomock.Any(), gomock.Any()).Return(&domain.SnipeResult{}, nil)

	result, err := useCase.Execute(context.Background(), &domain.AccountNotification{
		Account: fixture.Amm,
		Data:    fixture.PoolAccountData(),
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeHandedOff, result.Outcome)
}
