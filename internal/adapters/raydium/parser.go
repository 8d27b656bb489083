package raydium

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/supesu/raydium-sniper/pkg/domain"
)

var (
	ErrMissingTransaction      = errors.New("transaction or meta is missing")
	ErrInitInstructionNotFound = errors.New("pool initialization instruction not found")
	ErrLpMintInitNotFound      = errors.New("lp mint initialization not found")
	ErrLpMintToNotFound        = errors.New("lp mint to not found")
	ErrBaseTransferNotFound    = errors.New("base vault transfer not found")
	ErrQuoteTransferNotFound   = errors.New("quote vault transfer not found")
	ErrInitLogNotFound         = errors.New("pool initialization log not found")
	ErrBalanceNotFound         = errors.New("pre token balance not found")
	ErrAccountIndexOutOfRange  = errors.New("account index out of range")
)

// instruction is a compiled instruction with its account indexes resolved
type instruction struct {
	programID solana.PublicKey
	accounts  []solana.PublicKey
	data      []byte
}

// tokenTransferInfo is the part of a token transfer the parser needs
type tokenTransferInfo struct {
	destination solana.PublicKey
	amount      uint64
}

// TransactionParser reconstructs pool metadata from a pool initialization transaction
type TransactionParser struct {
	programID solana.PublicKey
}

// NewTransactionParser creates a parser for pools of programID
func NewTransactionParser(programID solana.PublicKey) *TransactionParser {
	return &TransactionParser{programID: programID}
}

// Parse extracts the pool created by tx. Every missing piece is an error;
// a partially filled pool is never returned.
func (p *TransactionParser) Parse(tx *domain.ConfirmedTransaction) (*domain.PoolMetadata, error) {
	if tx == nil || tx.Transaction == nil || tx.Meta == nil {
		return nil, ErrMissingTransaction
	}

	accountKeys := resolveAccountKeys(tx.Transaction, tx.Meta)

	initIx, err := p.findInitInstruction(tx.Transaction, accountKeys)
	if err != nil {
		return nil, err
	}

	initAccounts, err := DecodeInitializeAccounts(initIx.accounts)
	if err != nil {
		return nil, err
	}

	inner, err := flattenInnerInstructions(tx.Meta, accountKeys)
	if err != nil {
		return nil, err
	}

	lpDecimals, ok := findInitializeMint(inner, initAccounts.LpMint)
	if !ok {
		return nil, ErrLpMintInitNotFound
	}

	lpMintTo, ok := findMintTo(inner, initAccounts.LpMint)
	if !ok {
		return nil, ErrLpMintToNotFound
	}

	baseTransfer, ok := findTransferTo(inner, initAccounts.PoolCoinTokenAccount)
	if !ok {
		return nil, ErrBaseTransferNotFound
	}

	quoteTransfer, ok := findTransferTo(inner, initAccounts.PoolPcTokenAccount)
	if !ok {
		return nil, ErrQuoteTransferNotFound
	}

	logLine, ok := FindLogEntry(InitLogMarker, tx.Meta.LogMessages)
	if !ok {
		return nil, ErrInitLogNotFound
	}
	logEntry, err := DecodeInitLogEntry(logLine)
	if err != nil {
		return nil, err
	}

	baseDecimals, quoteDecimals, err := resolveDecimals(tx.Meta.PreTokenBalances, initAccounts.CoinMint, initAccounts.PcMint)
	if err != nil {
		return nil, err
	}

	pool := &domain.PoolMetadata{
		ID:              initAccounts.Amm,
		BaseMint:        initAccounts.CoinMint,
		QuoteMint:       initAccounts.PcMint,
		LpMint:          initAccounts.LpMint,
		BaseDecimals:    baseDecimals,
		QuoteDecimals:   quoteDecimals,
		LpDecimals:      lpDecimals,
		ProgramID:       p.programID,
		Authority:       initAccounts.AmmAuthority,
		OpenOrders:      initAccounts.AmmOpenOrders,
		TargetOrders:    initAccounts.AmmTargetOrders,
		BaseVault:       initAccounts.PoolCoinTokenAccount,
		QuoteVault:      initAccounts.PoolPcTokenAccount,
		WithdrawQueue:   solana.SystemProgramID,
		LpVault:         lpMintTo.destination,
		MarketProgramID: initAccounts.SerumProgram,
		MarketID:        initAccounts.SerumMarket,
		BaseReserve:     baseTransfer.amount,
		QuoteReserve:    quoteTransfer.amount,
		LpReserve:       lpMintTo.amount,
		OpenTime:        logEntry.OpenTime,
		Source:          domain.DetectionSourceLogs,
		Slot:            tx.Slot,
	}
	if len(tx.Transaction.Signatures) > 0 {
		pool.Signature = tx.Transaction.Signatures[0]
	}

	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return pool, nil
}

// findInitInstruction returns the first top-level instruction of the pool
// program that carries initialize2 data
func (p *TransactionParser) findInitInstruction(tx *solana.Transaction, accountKeys solana.PublicKeySlice) (*instruction, error) {
	for _, compiled := range tx.Message.Instructions {
		ix, err := resolveInstruction(compiled, accountKeys)
		if err != nil {
			return nil, err
		}
		if !ix.programID.Equals(p.programID) {
			continue
		}
		if _, err := DecodeInitialize2Data(ix.data); err != nil {
			continue
		}
		return ix, nil
	}
	return nil, ErrInitInstructionNotFound
}

// resolveAccountKeys returns static keys followed by keys loaded from lookup tables
func resolveAccountKeys(tx *solana.Transaction, meta *rpc.TransactionMeta) solana.PublicKeySlice {
	keys := make(solana.PublicKeySlice, 0, len(tx.Message.AccountKeys)+len(meta.LoadedAddresses.Writable)+len(meta.LoadedAddresses.ReadOnly))
	keys = append(keys, tx.Message.AccountKeys...)
	keys = append(keys, meta.LoadedAddresses.Writable...)
	keys = append(keys, meta.LoadedAddresses.ReadOnly...)
	return keys
}

func resolveInstruction(compiled solana.CompiledInstruction, accountKeys solana.PublicKeySlice) (*instruction, error) {
	return resolve(compiled.ProgramIDIndex, compiled.Accounts, compiled.Data, accountKeys)
}

func resolve(programIndex uint16, accountIndexes []uint16, data []byte, accountKeys solana.PublicKeySlice) (*instruction, error) {
	if int(programIndex) >= len(accountKeys) {
		return nil, fmt.Errorf("%w: program index %d", ErrAccountIndexOutOfRange, programIndex)
	}

	accounts := make([]solana.PublicKey, len(accountIndexes))
	for i, index := range accountIndexes {
		if int(index) >= len(accountKeys) {
			return nil, fmt.Errorf("%w: account index %d", ErrAccountIndexOutOfRange, index)
		}
		accounts[i] = accountKeys[index]
	}

	return &instruction{
		programID: accountKeys[programIndex],
		accounts:  accounts,
		data:      data,
	}, nil
}

// flattenInnerInstructions resolves every inner instruction of the transaction
func flattenInnerInstructions(meta *rpc.TransactionMeta, accountKeys solana.PublicKeySlice) ([]*instruction, error) {
	var result []*instruction
	for _, set := range meta.InnerInstructions {
		for _, compiled := range set.Instructions {
			ix, err := resolve(compiled.ProgramIDIndex, compiled.Accounts, compiled.Data, accountKeys)
			if err != nil {
				return nil, err
			}
			result = append(result, ix)
		}
	}
	return result, nil
}

func isTokenInstruction(ix *instruction, opcode uint8, minData, minAccounts int) bool {
	return ix.programID.Equals(solana.TokenProgramID) &&
		len(ix.data) >= minData &&
		ix.data[0] == opcode &&
		len(ix.accounts) >= minAccounts
}

// findInitializeMint returns the decimals of the InitializeMint for mint
func findInitializeMint(inner []*instruction, mint solana.PublicKey) (uint8, bool) {
	for _, ix := range inner {
		if !isTokenInstruction(ix, tokenInitializeMint, 2, 1) && !isTokenInstruction(ix, tokenInitializeMint2, 2, 1) {
			continue
		}
		if ix.accounts[0].Equals(mint) {
			return ix.data[1], true
		}
	}
	return 0, false
}

// findMintTo returns the destination and amount of the MintTo for mint
func findMintTo(inner []*instruction, mint solana.PublicKey) (tokenTransferInfo, bool) {
	for _, ix := range inner {
		if !isTokenInstruction(ix, tokenMintTo, 9, 2) {
			continue
		}
		if ix.accounts[0].Equals(mint) {
			return tokenTransferInfo{
				destination: ix.accounts[1],
				amount:      binary.LittleEndian.Uint64(ix.data[1:9]),
			}, true
		}
	}
	return tokenTransferInfo{}, false
}

// findTransferTo returns the first token transfer into destination
func findTransferTo(inner []*instruction, destination solana.PublicKey) (tokenTransferInfo, bool) {
	for _, ix := range inner {
		var dest solana.PublicKey
		switch {
		case isTokenInstruction(ix, tokenTransfer, 9, 2):
			dest = ix.accounts[1]
		case isTokenInstruction(ix, tokenTransferChecked, 9, 3):
			dest = ix.accounts[2]
		default:
			continue
		}
		if dest.Equals(destination) {
			return tokenTransferInfo{
				destination: dest,
				amount:      binary.LittleEndian.Uint64(ix.data[1:9]),
			}, true
		}
	}
	return tokenTransferInfo{}, false
}

// resolveDecimals returns base and quote decimals. The wrapped SOL side is
// always native precision and the other side comes from the pre-balance snapshot.
func resolveDecimals(balances []rpc.TokenBalance, baseMint, quoteMint solana.PublicKey) (uint8, uint8, error) {
	if baseMint.Equals(domain.WrappedSOLMint) {
		quoteDecimals, err := balanceDecimals(balances, quoteMint)
		if err != nil {
			return 0, 0, err
		}
		return domain.NativeDecimals, quoteDecimals, nil
	}

	baseDecimals, err := balanceDecimals(balances, baseMint)
	if err != nil {
		return 0, 0, err
	}
	return baseDecimals, domain.NativeDecimals, nil
}

func balanceDecimals(balances []rpc.TokenBalance, mint solana.PublicKey) (uint8, error) {
	for _, balance := range balances {
		if balance.Mint.Equals(mint) && balance.UiTokenAmount != nil {
			return balance.UiTokenAmount.Decimals, nil
		}
	}
	return 0, fmt.Errorf("%w: mint %s", ErrBalanceNotFound, mint)
}
