package usecase

import (
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/supesu/raydium-sniper/internal/infrastructure/repository"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

func newTestLogger() logger.Logger {
	return logger.NewWithWriter("debug", "test", io.Discard)
}

func newTestSeen() *repository.SeenRepository {
	return repository.NewSeenRepository(time.Minute, 100)
}

func randomKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func testPool(base, quote solana.PublicKey, source domain.DetectionSource) *domain.PoolMetadata {
	return &domain.PoolMetadata{
		ID:              randomKey(),
		BaseMint:        base,
		QuoteMint:       quote,
		LpMint:          randomKey(),
		BaseDecimals:    6,
		QuoteDecimals:   domain.NativeDecimals,
		ProgramID:       randomKey(),
		Authority:       randomKey(),
		OpenOrders:      randomKey(),
		TargetOrders:    randomKey(),
		BaseVault:       randomKey(),
		QuoteVault:      randomKey(),
		MarketProgramID: randomKey(),
		MarketID:        randomKey(),
		OpenTime:        1_700_000_000,
		Source:          source,
	}
}
