package raydium

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// LiquidityPoolV4ProgramID is the Raydium liquidity pool v4 program
	LiquidityPoolV4ProgramID = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")

	// OpenBookProgramID is the order book program new pools are usually paired with
	OpenBookProgramID = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
)

const (
	// InitLogMarker appears only in the log line emitted by pool initialization
	InitLogMarker = "init_pc_amount"

	// PoolStateSize is the size of a liquidity state v4 account
	PoolStateSize = 752

	// MarketStateSize is the size of a market state v3 account
	MarketStateSize = 388

	ammAuthoritySeed = "amm authority"

	// searched when the stored vault signer nonce does not produce a valid address
	maxMarketAuthorityNonce = 100
)

// Pool program instruction discriminators
const (
	instructionInitialize2 uint8 = 1
	instructionSwapBaseIn  uint8 = 9
)

// SPL token instruction discriminators
const (
	tokenInitializeMint  uint8 = 0
	tokenTransfer        uint8 = 3
	tokenMintTo          uint8 = 7
	tokenTransferChecked uint8 = 12
	tokenInitializeMint2 uint8 = 20
)

// ErrInvalidAccountSize is returned when account data does not match the expected layout size
var ErrInvalidAccountSize = errors.New("unexpected account data size")
