package domain

import (
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
)

// NativeDecimals is the decimal precision of SOL and wrapped SOL
const NativeDecimals uint8 = 9

// WrappedSOLMint is the mint of the wrapped native asset
var WrappedSOLMint = solana.WrappedSol

// DetectionSource identifies which detector produced a pool
type DetectionSource string

const (
	DetectionSourceLogs     DetectionSource = "logs"
	DetectionSourceAccounts DetectionSource = "accounts"
)

// ErrIncompletePool is returned when parsed pool metadata misses a required key
var ErrIncompletePool = errors.New("pool metadata is incomplete")

// PoolMetadata identifies a Raydium liquidity pool v4 and its order book market
type PoolMetadata struct {
	ID            solana.PublicKey
	BaseMint      solana.PublicKey
	QuoteMint     solana.PublicKey
	LpMint        solana.PublicKey
	BaseDecimals  uint8
	QuoteDecimals uint8
	LpDecimals    uint8

	ProgramID     solana.PublicKey
	Authority     solana.PublicKey
	OpenOrders    solana.PublicKey
	TargetOrders  solana.PublicKey
	BaseVault     solana.PublicKey
	QuoteVault    solana.PublicKey
	WithdrawQueue solana.PublicKey
	LpVault       solana.PublicKey

	MarketProgramID solana.PublicKey
	MarketID        solana.PublicKey

	BaseReserve  uint64
	QuoteReserve uint64
	LpReserve    uint64
	// OpenTime is the unix time the pool accepts swaps from
	OpenTime uint64

	Source    DetectionSource
	Signature solana.Signature
	Slot      uint64
}

// Validate checks that every key needed to trade against the pool is set
func (p *PoolMetadata) Validate() error {
	required := map[string]solana.PublicKey{
		"id":                p.ID,
		"base_mint":         p.BaseMint,
		"quote_mint":        p.QuoteMint,
		"lp_mint":           p.LpMint,
		"program_id":        p.ProgramID,
		"authority":         p.Authority,
		"open_orders":       p.OpenOrders,
		"target_orders":     p.TargetOrders,
		"base_vault":        p.BaseVault,
		"quote_vault":       p.QuoteVault,
		"market_program_id": p.MarketProgramID,
		"market_id":         p.MarketID,
	}
	for name, key := range required {
		if key.IsZero() {
			return &MissingFieldError{Field: name}
		}
	}
	return nil
}

// IsSwapped reports whether the base side of the pool is wrapped SOL
func (p *PoolMetadata) IsSwapped() bool {
	return p.BaseMint.Equals(WrappedSOLMint)
}

// TradedMint returns the non native side of the pool
func (p *PoolMetadata) TradedMint() solana.PublicKey {
	if p.IsSwapped() {
		return p.QuoteMint
	}
	return p.BaseMint
}

// OpensAt returns the pool open time
func (p *PoolMetadata) OpensAt() time.Time {
	return time.Unix(int64(p.OpenTime), 0).UTC()
}

// MarketKeys joins a pool with the accounts of its order book market
type MarketKeys struct {
	PoolMetadata

	MarketAuthority  solana.PublicKey
	MarketBaseVault  solana.PublicKey
	MarketQuoteVault solana.PublicKey
	MarketBids       solana.PublicKey
	MarketAsks       solana.PublicKey
	MarketEventQueue solana.PublicKey
}

// Validate checks the pool and every market account
func (m *MarketKeys) Validate() error {
	if err := m.PoolMetadata.Validate(); err != nil {
		return err
	}
	required := map[string]solana.PublicKey{
		"market_authority":   m.MarketAuthority,
		"market_base_vault":  m.MarketBaseVault,
		"market_quote_vault": m.MarketQuoteVault,
		"market_bids":        m.MarketBids,
		"market_asks":        m.MarketAsks,
		"market_event_queue": m.MarketEventQueue,
	}
	for name, key := range required {
		if key.IsZero() {
			return &MissingFieldError{Field: name}
		}
	}
	return nil
}

// MissingFieldError names the first empty key found by Validate
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing " + e.Field
}

// Unwrap lets callers match ErrIncompletePool
func (e *MissingFieldError) Unwrap() error {
	return ErrIncompletePool
}

// SnipeResult describes a submitted purchase bundle
type SnipeResult struct {
	PoolID      solana.PublicKey
	BundleID    string
	Signatures  []solana.Signature
	TipAccount  solana.PublicKey
	TipLamports uint64
	AmountIn    uint64
	SubmittedAt time.Time

	// Status is pending until the block engine reports the bundle landed or failed
	Status      BundleStatus
	LandedSlot  uint64
	StatusError string
}
