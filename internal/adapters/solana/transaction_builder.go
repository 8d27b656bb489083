package solana

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// MaxTransactionSize is the largest serialized transaction that fits in a packet
const MaxTransactionSize = 1232

var (
	// ErrTransactionTooLarge is returned when a signed transaction does not fit in a packet
	ErrTransactionTooLarge = errors.New("transaction exceeds packet size")
	// ErrNoTipAccounts is returned when a tip is configured without tip accounts
	ErrNoTipAccounts = errors.New("no tip accounts configured")
)

// create idempotent instruction of the associated token account program
const ataCreateIdempotent uint8 = 1

// TransactionBuilder builds the signed purchase bundle for a pool
type TransactionBuilder struct {
	wallet      solana.PrivateKey
	blockhashes domain.BlockhashFetcher
	logger      logger.Logger

	amountIn         uint64
	minAmountOut     uint64
	tipLamports      uint64
	tipAccounts      []solana.PublicKey
	separateTip      bool
	computeUnitLimit uint32
	computeUnitPrice uint64

	pickTip func(n int) int
}

// NewTransactionBuilder creates a builder signing with wallet
func NewTransactionBuilder(cfg *config.Config, wallet solana.PrivateKey, blockhashes domain.BlockhashFetcher, log logger.Logger) (*TransactionBuilder, error) {
	tipAccounts, err := cfg.TipAccountKeys()
	if err != nil {
		return nil, err
	}
	if cfg.TipLamports() > 0 && len(tipAccounts) == 0 {
		return nil, ErrNoTipAccounts
	}

	return &TransactionBuilder{
		wallet:           wallet,
		blockhashes:      blockhashes,
		logger:           log.WithField("component", "transaction_builder"),
		amountIn:         cfg.SnipeLamports(),
		minAmountOut:     cfg.Sniper.MinAmountOut,
		tipLamports:      cfg.TipLamports(),
		tipAccounts:      tipAccounts,
		separateTip:      cfg.Relay.SeparateTipTransaction,
		computeUnitLimit: cfg.Sniper.ComputeUnitLimit,
		computeUnitPrice: cfg.Sniper.ComputeUnitPrice,
		pickTip:          rand.Intn,
	}, nil
}

// BuildBundle implements domain.BundleBuilder
func (b *TransactionBuilder) BuildBundle(ctx context.Context, keys *domain.MarketKeys) (*domain.Bundle, error) {
	if keys == nil {
		return nil, domain.ErrIncompletePool
	}

	owner := b.wallet.PublicKey()

	wsolAccount, _, err := solana.FindAssociatedTokenAddress(owner, domain.WrappedSOLMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive wrapped SOL account: %w", err)
	}
	tokenMint := keys.TradedMint()
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(owner, tokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token account for %s: %w", tokenMint, err)
	}

	swap, err := raydium.NewSwapBaseInInstruction(raydium.SwapBaseInParams{
		Keys:             keys,
		UserSource:       wsolAccount,
		UserDestination:  tokenAccount,
		Owner:            owner,
		AmountIn:         b.amountIn,
		MinimumAmountOut: b.minAmountOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build swap instruction: %w", err)
	}

	instructions := b.computeBudgetInstructions()
	instructions = append(instructions,
		createAssociatedTokenAccountIdempotent(owner, wsolAccount, owner, domain.WrappedSOLMint),
		system.NewTransferInstruction(b.amountIn, owner, wsolAccount).Build(),
		token.NewSyncNativeInstruction(wsolAccount).Build(),
		createAssociatedTokenAccountIdempotent(owner, tokenAccount, owner, tokenMint),
		swap,
	)

	bundle := &domain.Bundle{AmountIn: b.amountIn}

	var tipInstruction solana.Instruction
	if b.tipLamports > 0 {
		bundle.TipAccount = b.tipAccounts[b.pickTip(len(b.tipAccounts))]
		bundle.TipLamports = b.tipLamports
		tipInstruction = system.NewTransferInstruction(b.tipLamports, owner, bundle.TipAccount).Build()
		if !b.separateTip {
			instructions = append(instructions, tipInstruction)
		}
	}

	blockhash, err := b.blockhashes.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	purchase, err := b.sign(instructions, blockhash)
	if err != nil {
		return nil, err
	}
	bundle.Transactions = append(bundle.Transactions, purchase)

	if tipInstruction != nil && b.separateTip {
		tip, err := b.sign([]solana.Instruction{tipInstruction}, blockhash)
		if err != nil {
			return nil, err
		}
		bundle.Transactions = append(bundle.Transactions, tip)
	}

	b.logger.WithFields(map[string]interface{}{
		"pool_id":      keys.ID.String(),
		"token_mint":   tokenMint.String(),
		"amount_in":    b.amountIn,
		"tip_account":  bundle.TipAccount.String(),
		"transactions": len(bundle.Transactions),
	}).Debug("Bundle built")

	return bundle, nil
}

func (b *TransactionBuilder) computeBudgetInstructions() []solana.Instruction {
	var instructions []solana.Instruction
	if b.computeUnitLimit > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitLimitInstruction(b.computeUnitLimit).Build())
	}
	if b.computeUnitPrice > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitPriceInstruction(b.computeUnitPrice).Build())
	}
	return instructions
}

// sign compiles, signs and size checks a transaction paid by the wallet
func (b *TransactionBuilder) sign(instructions []solana.Instruction, blockhash solana.Hash) (*solana.Transaction, error) {
	owner := b.wallet.PublicKey()

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(owner) {
			return &b.wallet
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := checkSize(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// checkSize fails when tx does not fit in MaxTransactionSize bytes
func checkSize(tx *solana.Transaction) error {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to serialize transaction: %w", err)
	}
	if len(raw) > MaxTransactionSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrTransactionTooLarge, len(raw), MaxTransactionSize)
	}
	return nil
}

// createAssociatedTokenAccountIdempotent creates account for owner and mint
// unless it already exists
func createAssociatedTokenAccountIdempotent(payer, account, owner, mint solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.SPLAssociatedTokenAccountProgramID,
		solana.AccountMetaSlice{
			solana.Meta(payer).WRITE().SIGNER(),
			solana.Meta(account).WRITE(),
			solana.Meta(owner),
			solana.Meta(mint),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.TokenProgramID),
		},
		[]byte{ataCreateIdempotent},
	)
}
