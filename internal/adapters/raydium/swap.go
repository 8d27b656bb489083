package raydium

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/supesu/raydium-sniper/pkg/domain"
)

// swapBaseInData is the argument block of a swapBaseIn instruction
type swapBaseInData struct {
	Discriminator uint8
	AmountIn      uint64
	MinAmountOut  uint64
}

// SwapBaseInParams describes a swap of an exact input amount
type SwapBaseInParams struct {
	Keys             *domain.MarketKeys
	UserSource       solana.PublicKey
	UserDestination  solana.PublicKey
	Owner            solana.PublicKey
	AmountIn         uint64
	MinimumAmountOut uint64
}

// NewSwapBaseInInstruction builds a swapBaseIn instruction against the pool program
func NewSwapBaseInInstruction(params SwapBaseInParams) (solana.Instruction, error) {
	keys := params.Keys
	if keys == nil {
		return nil, domain.ErrIncompletePool
	}

	buf := new(bytes.Buffer)
	err := bin.NewBinEncoder(buf).Encode(&swapBaseInData{
		Discriminator: instructionSwapBaseIn,
		AmountIn:      params.AmountIn,
		MinAmountOut:  params.MinimumAmountOut,
	})
	if err != nil {
		return nil, fmt.Errorf("encode swap data: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(solana.TokenProgramID),
		solana.Meta(keys.ID).WRITE(),
		solana.Meta(keys.Authority),
		solana.Meta(keys.OpenOrders).WRITE(),
		solana.Meta(keys.TargetOrders).WRITE(),
		solana.Meta(keys.BaseVault).WRITE(),
		solana.Meta(keys.QuoteVault).WRITE(),
		solana.Meta(keys.MarketProgramID),
		solana.Meta(keys.MarketID).WRITE(),
		solana.Meta(keys.MarketBids).WRITE(),
		solana.Meta(keys.MarketAsks).WRITE(),
		solana.Meta(keys.MarketEventQueue).WRITE(),
		solana.Meta(keys.MarketBaseVault).WRITE(),
		solana.Meta(keys.MarketQuoteVault).WRITE(),
		solana.Meta(keys.MarketAuthority),
		solana.Meta(params.UserSource).WRITE(),
		solana.Meta(params.UserDestination).WRITE(),
		solana.Meta(params.Owner).SIGNER(),
	}

	return solana.NewInstruction(keys.ProgramID, accounts, buf.Bytes()), nil
}
