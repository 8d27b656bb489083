package raydium

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MarketStateV3 is the on-chain state of an order book market
type MarketStateV3 struct {
	Blob5                  [5]byte
	AccountFlags           [8]byte
	OwnAddress             solana.PublicKey
	VaultSignerNonce       uint64
	BaseMint               solana.PublicKey
	QuoteMint              solana.PublicKey
	BaseVault              solana.PublicKey
	BaseDepositsTotal      uint64
	BaseFeesAccrued        uint64
	QuoteVault             solana.PublicKey
	QuoteDepositsTotal     uint64
	QuoteFeesAccrued       uint64
	QuoteDustThreshold     uint64
	RequestQueue           solana.PublicKey
	EventQueue             solana.PublicKey
	Bids                   solana.PublicKey
	Asks                   solana.PublicKey
	BaseLotSize            uint64
	QuoteLotSize           uint64
	FeeRateBps             uint64
	ReferrerRebatesAccrued uint64
	Blob7                  [7]byte
}

// DecodeMarketState decodes a market state v3 account
func DecodeMarketState(data []byte) (*MarketStateV3, error) {
	if len(data) < MarketStateSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidAccountSize, len(data), MarketStateSize)
	}

	var state MarketStateV3
	if err := bin.NewBinDecoder(data[:MarketStateSize]).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode market state: %w", err)
	}
	return &state, nil
}
