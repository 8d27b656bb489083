package raydium

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/supesu/raydium-sniper/pkg/domain"
)

// LiquidityStateV4 is the on-chain state of a liquidity pool v4 account
type LiquidityStateV4 struct {
	Status                 uint64
	Nonce                  uint64
	MaxOrder               uint64
	Depth                  uint64
	BaseDecimal            uint64
	QuoteDecimal           uint64
	State                  uint64
	ResetFlag              uint64
	MinSize                uint64
	VolMaxCutRatio         uint64
	AmountWaveRatio        uint64
	BaseLotSize            uint64
	QuoteLotSize           uint64
	MinPriceMultiplier     uint64
	MaxPriceMultiplier     uint64
	SystemDecimalValue     uint64
	MinSeparateNumerator   uint64
	MinSeparateDenominator uint64
	TradeFeeNumerator      uint64
	TradeFeeDenominator    uint64
	PnlNumerator           uint64
	PnlDenominator         uint64
	SwapFeeNumerator       uint64
	SwapFeeDenominator     uint64
	BaseNeedTakePnl        uint64
	QuoteNeedTakePnl       uint64
	QuoteTotalPnl          uint64
	BaseTotalPnl           uint64
	PoolOpenTime           uint64
	PunishPcAmount         uint64
	PunishCoinAmount       uint64
	OrderbookToInitTime    uint64

	SwapBaseInAmount   bin.Uint128
	SwapQuoteOutAmount bin.Uint128
	SwapBase2QuoteFee  uint64
	SwapQuoteInAmount  bin.Uint128
	SwapBaseOutAmount  bin.Uint128
	SwapQuote2BaseFee  uint64

	BaseVault       solana.PublicKey
	QuoteVault      solana.PublicKey
	BaseMint        solana.PublicKey
	QuoteMint       solana.PublicKey
	LpMint          solana.PublicKey
	OpenOrders      solana.PublicKey
	MarketID        solana.PublicKey
	MarketProgramID solana.PublicKey
	TargetOrders    solana.PublicKey
	WithdrawQueue   solana.PublicKey
	LpVault         solana.PublicKey
	Owner           solana.PublicKey

	LpReserve uint64
	Padding   [3]uint64
}

// DecodeLiquidityState decodes a liquidity state v4 account. The size is
// checked before any field is read.
func DecodeLiquidityState(data []byte) (*LiquidityStateV4, error) {
	if len(data) != PoolStateSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidAccountSize, len(data), PoolStateSize)
	}

	var state LiquidityStateV4
	if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode liquidity state: %w", err)
	}
	return &state, nil
}

// ToPoolMetadata converts the state of pool id into pool metadata.
// Reserves are not part of the account and are left at zero.
func (s *LiquidityStateV4) ToPoolMetadata(id solana.PublicKey, programID solana.PublicKey) (*domain.PoolMetadata, error) {
	authority, err := AmmAuthority(programID)
	if err != nil {
		return nil, err
	}

	return &domain.PoolMetadata{
		ID:              id,
		BaseMint:        s.BaseMint,
		QuoteMint:       s.QuoteMint,
		LpMint:          s.LpMint,
		BaseDecimals:    uint8(s.BaseDecimal),
		QuoteDecimals:   uint8(s.QuoteDecimal),
		LpDecimals:      uint8(s.BaseDecimal),
		ProgramID:       programID,
		Authority:       authority,
		OpenOrders:      s.OpenOrders,
		TargetOrders:    s.TargetOrders,
		BaseVault:       s.BaseVault,
		QuoteVault:      s.QuoteVault,
		WithdrawQueue:   s.WithdrawQueue,
		LpVault:         s.LpVault,
		MarketProgramID: s.MarketProgramID,
		MarketID:        s.MarketID,
		LpReserve:       s.LpReserve,
		OpenTime:        s.PoolOpenTime,
		Source:          domain.DetectionSourceAccounts,
	}, nil
}

// PoolStateDecoder turns pool accounts of one program into pool metadata
type PoolStateDecoder struct {
	programID solana.PublicKey
}

// NewPoolStateDecoder creates a decoder for pools owned by programID
func NewPoolStateDecoder(programID solana.PublicKey) *PoolStateDecoder {
	return &PoolStateDecoder{programID: programID}
}

// StateSize returns the only account size DecodePool accepts
func (d *PoolStateDecoder) StateSize() int {
	return PoolStateSize
}

// DecodePool decodes the pool account id
func (d *PoolStateDecoder) DecodePool(id solana.PublicKey, data []byte) (*domain.PoolMetadata, error) {
	state, err := DecodeLiquidityState(data)
	if err != nil {
		return nil, err
	}
	return state.ToPoolMetadata(id, d.programID)
}
