package raydium

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// initialize2AccountCount is the number of accounts of an initialize2 instruction
const initialize2AccountCount = 21

// ErrShortAccountList is returned when an instruction carries fewer accounts than its layout names
var ErrShortAccountList = errors.New("instruction account list too short")

// InitializeAccounts names the accounts of a pool initialize2 instruction
type InitializeAccounts struct {
	TokenProgram           solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	SystemProgram          solana.PublicKey
	Rent                   solana.PublicKey
	Amm                    solana.PublicKey
	AmmAuthority           solana.PublicKey
	AmmOpenOrders          solana.PublicKey
	LpMint                 solana.PublicKey
	CoinMint               solana.PublicKey
	PcMint                 solana.PublicKey
	PoolCoinTokenAccount   solana.PublicKey
	PoolPcTokenAccount     solana.PublicKey
	PoolWithdrawQueue      solana.PublicKey
	AmmTargetOrders        solana.PublicKey
	PoolTempLp             solana.PublicKey
	SerumProgram           solana.PublicKey
	SerumMarket            solana.PublicKey
	UserWallet             solana.PublicKey
	UserTokenCoin          solana.PublicKey
	UserTokenPc            solana.PublicKey
	UserLpTokenAccount     solana.PublicKey
}

// DecodeInitializeAccounts maps the ordered account list of an initialize2 instruction
func DecodeInitializeAccounts(accounts []solana.PublicKey) (*InitializeAccounts, error) {
	if len(accounts) < initialize2AccountCount {
		return nil, fmt.Errorf("%w: initialize2 has %d accounts, want %d", ErrShortAccountList, len(accounts), initialize2AccountCount)
	}

	return &InitializeAccounts{
		TokenProgram:           accounts[0],
		AssociatedTokenProgram: accounts[1],
		SystemProgram:          accounts[2],
		Rent:                   accounts[3],
		Amm:                    accounts[4],
		AmmAuthority:           accounts[5],
		AmmOpenOrders:          accounts[6],
		LpMint:                 accounts[7],
		CoinMint:               accounts[8],
		PcMint:                 accounts[9],
		PoolCoinTokenAccount:   accounts[10],
		PoolPcTokenAccount:     accounts[11],
		PoolWithdrawQueue:      accounts[12],
		AmmTargetOrders:        accounts[13],
		PoolTempLp:             accounts[14],
		SerumProgram:           accounts[15],
		SerumMarket:            accounts[16],
		UserWallet:             accounts[17],
		UserTokenCoin:          accounts[18],
		UserTokenPc:            accounts[19],
		UserLpTokenAccount:     accounts[20],
	}, nil
}

// Initialize2Data is the argument block of an initialize2 instruction
type Initialize2Data struct {
	Discriminator  uint8
	Nonce          uint8
	OpenTime       uint64
	InitPcAmount   uint64
	InitCoinAmount uint64
}

// DecodeInitialize2Data decodes instruction data and checks the discriminator
func DecodeInitialize2Data(data []byte) (*Initialize2Data, error) {
	var args Initialize2Data
	if err := bin.NewBinDecoder(data).Decode(&args); err != nil {
		return nil, fmt.Errorf("decode initialize2 data: %w", err)
	}
	if args.Discriminator != instructionInitialize2 {
		return nil, fmt.Errorf("unexpected instruction discriminator %d", args.Discriminator)
	}
	return &args, nil
}
