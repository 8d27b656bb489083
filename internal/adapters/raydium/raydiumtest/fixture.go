// Package raydiumtest builds synthetic pool initialization data for tests.
package raydiumtest

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/supesu/raydium-sniper/pkg/domain"
)

var (
	PoolProgramID   = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	MarketProgramID = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
	AmmAuthority    = solana.MustPublicKeyFromBase58("5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1")
	ComputeBudgetID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
)

// Top-level instruction index of initialize2 in Transaction
const initInstructionIndex = 1

// RandomKey returns a fresh public key
func RandomKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// InitFixture describes one pool initialization
type InitFixture struct {
	Wallet       solana.PublicKey
	Amm          solana.PublicKey
	OpenOrders   solana.PublicKey
	LpMint       solana.PublicKey
	BaseMint     solana.PublicKey
	QuoteMint    solana.PublicKey
	BaseVault    solana.PublicKey
	QuoteVault   solana.PublicKey
	TargetOrders solana.PublicKey
	PoolTempLp   solana.PublicKey
	MarketID     solana.PublicKey
	UserBase     solana.PublicKey
	UserQuote    solana.PublicKey
	UserLp       solana.PublicKey

	MarketNonce      uint64
	MarketAuthority  solana.PublicKey
	MarketBaseVault  solana.PublicKey
	MarketQuoteVault solana.PublicKey
	MarketBids       solana.PublicKey
	MarketAsks       solana.PublicKey
	MarketEventQueue solana.PublicKey

	// TokenDecimals is the precision of the non native mint
	TokenDecimals uint8
	LpDecimals    uint8
	BaseAmount    uint64
	QuoteAmount   uint64
	LpAmount      uint64
	OpenTime      uint64
	Nonce         uint8

	Signature solana.Signature
	Slot      uint64
}

// NewInitFixture creates a fixture for a pool of baseMint and quoteMint
func NewInitFixture(baseMint, quoteMint solana.PublicKey) *InitFixture {
	f := &InitFixture{
		Wallet:           RandomKey(),
		Amm:              RandomKey(),
		OpenOrders:       RandomKey(),
		LpMint:           RandomKey(),
		BaseMint:         baseMint,
		QuoteMint:        quoteMint,
		BaseVault:        RandomKey(),
		QuoteVault:       RandomKey(),
		TargetOrders:     RandomKey(),
		PoolTempLp:       RandomKey(),
		UserBase:         RandomKey(),
		UserQuote:        RandomKey(),
		UserLp:           RandomKey(),
		MarketBaseVault:  RandomKey(),
		MarketQuoteVault: RandomKey(),
		MarketBids:       RandomKey(),
		MarketAsks:       RandomKey(),
		MarketEventQueue: RandomKey(),
		TokenDecimals:    6,
		LpDecimals:       6,
		BaseAmount:       1_000_000_000_000,
		QuoteAmount:      5_000_000_000,
		LpAmount:         70_710_678_118,
		OpenTime:         1_700_000_000,
		Nonce:            254,
		Signature:        solana.Signature{7, 7, 7},
		Slot:             250_000_000,
	}

	// the market id must admit a valid vault signer for the stored nonce
	for {
		f.MarketID = RandomKey()
		if authority, nonce, ok := findMarketAuthority(f.MarketID); ok {
			f.MarketAuthority = authority
			f.MarketNonce = nonce
			break
		}
	}
	return f
}

func findMarketAuthority(marketID solana.PublicKey) (solana.PublicKey, uint64, bool) {
	for nonce := uint64(0); nonce < 100; nonce++ {
		seed := make([]byte, 8)
		binary.LittleEndian.PutUint64(seed, nonce)
		authority, err := solana.CreateProgramAddress([][]byte{marketID[:], seed}, MarketProgramID)
		if err == nil {
			return authority, nonce, true
		}
	}
	return solana.PublicKey{}, 0, false
}

// LogLine is the program log line carrying the initialization arguments
func (f *InitFixture) LogLine() string {
	return fmt.Sprintf("Program log: initialize2: InitializeInstruction2 { nonce: %d, open_time: %d, init_pc_amount: %d, init_coin_amount: %d }",
		f.Nonce, f.OpenTime, f.QuoteAmount, f.BaseAmount)
}

// Logs returns the log messages of the initialization transaction
func (f *InitFixture) Logs() []string {
	return []string{
		"Program ComputeBudget111111111111111111111111111111 invoke [1]",
		"Program ComputeBudget111111111111111111111111111111 success",
		"Program " + PoolProgramID.String() + " invoke [1]",
		f.LogLine(),
		"Program " + PoolProgramID.String() + " success",
	}
}

// initAccounts returns the 21 accounts of initialize2 in instruction order
func (f *InitFixture) initAccounts() []solana.PublicKey {
	return []solana.PublicKey{
		solana.TokenProgramID,
		solana.SPLAssociatedTokenAccountProgramID,
		solana.SystemProgramID,
		solana.SysVarRentPubkey,
		f.Amm,
		AmmAuthority,
		f.OpenOrders,
		f.LpMint,
		f.BaseMint,
		f.QuoteMint,
		f.BaseVault,
		f.QuoteVault,
		RandomKey(),
		f.TargetOrders,
		f.PoolTempLp,
		MarketProgramID,
		f.MarketID,
		f.Wallet,
		f.UserBase,
		f.UserQuote,
		f.UserLp,
	}
}

// Transaction builds the confirmed initialization transaction
func (f *InitFixture) Transaction() *domain.ConfirmedTransaction {
	keys := solana.PublicKeySlice(f.initAccounts())
	poolProgramIndex := uint16(len(keys))
	keys = append(keys, PoolProgramID)
	computeBudgetIndex := uint16(len(keys))
	keys = append(keys, ComputeBudgetID)

	const (
		tokenProgramIndex = 0
		rentIndex         = 3
		authorityIndex    = 5
		lpMintIndex       = 7
		quoteMintIndex    = 9
		baseVaultIndex    = 10
		quoteVaultIndex   = 11
		walletIndex       = 17
		userBaseIndex     = 18
		userQuoteIndex    = 19
		userLpIndex       = 20
	)

	initAccountIndexes := make([]uint16, 21)
	for i := range initAccountIndexes {
		initAccountIndexes[i] = uint16(i)
	}

	tx := &solana.Transaction{
		Signatures: []solana.Signature{f.Signature},
		Message: solana.Message{
			AccountKeys: keys,
			Instructions: []solana.CompiledInstruction{
				{
					ProgramIDIndex: computeBudgetIndex,
					Data:           []byte{2, 0x40, 0x0d, 0x03, 0x00},
				},
				{
					ProgramIDIndex: poolProgramIndex,
					Accounts:       initAccountIndexes,
					Data:           f.initializeData(),
				},
			},
		},
	}

	initializeMint := append([]byte{0, f.LpDecimals}, AmmAuthority[:]...)

	meta := &rpc.TransactionMeta{
		LogMessages: f.Logs(),
		PreTokenBalances: []rpc.TokenBalance{
			{AccountIndex: userBaseIndex, Mint: f.BaseMint, UiTokenAmount: &rpc.UiTokenAmount{Decimals: f.decimalsOf(f.BaseMint)}},
			{AccountIndex: userQuoteIndex, Mint: f.QuoteMint, UiTokenAmount: &rpc.UiTokenAmount{Decimals: f.decimalsOf(f.QuoteMint)}},
		},
		InnerInstructions: []rpc.InnerInstruction{
			{
				Index: initInstructionIndex,
				Instructions: []rpc.CompiledInstruction{
					{ProgramIDIndex: tokenProgramIndex, Accounts: []uint16{lpMintIndex, rentIndex}, Data: initializeMint},
					{ProgramIDIndex: tokenProgramIndex, Accounts: []uint16{userBaseIndex, baseVaultIndex, walletIndex}, Data: amountData(3, f.BaseAmount)},
					{ProgramIDIndex: tokenProgramIndex, Accounts: []uint16{userQuoteIndex, quoteMintIndex, quoteVaultIndex, walletIndex}, Data: append(amountData(12, f.QuoteAmount), f.decimalsOf(f.QuoteMint))},
					{ProgramIDIndex: tokenProgramIndex, Accounts: []uint16{lpMintIndex, userLpIndex, authorityIndex}, Data: amountData(7, f.LpAmount)},
				},
			},
		},
	}

	return &domain.ConfirmedTransaction{
		Slot:        f.Slot,
		Transaction: tx,
		Meta:        meta,
	}
}

func (f *InitFixture) decimalsOf(mint solana.PublicKey) uint8 {
	if mint.Equals(solana.WrappedSol) {
		return 9
	}
	return f.TokenDecimals
}

func (f *InitFixture) initializeData() []byte {
	data := make([]byte, 26)
	data[0] = 1
	data[1] = f.Nonce
	binary.LittleEndian.PutUint64(data[2:], f.OpenTime)
	binary.LittleEndian.PutUint64(data[10:], f.QuoteAmount)
	binary.LittleEndian.PutUint64(data[18:], f.BaseAmount)
	return data
}

func amountData(opcode uint8, amount uint64) []byte {
	data := make([]byte, 9)
	data[0] = opcode
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

// MarketAccountData encodes the market state v3 account of the fixture
func (f *InitFixture) MarketAccountData() []byte {
	data := make([]byte, 388)
	copy(data[0:5], "serum")
	copy(data[13:45], f.MarketID[:])
	binary.LittleEndian.PutUint64(data[45:], f.MarketNonce)
	copy(data[53:85], f.BaseMint[:])
	copy(data[85:117], f.QuoteMint[:])
	copy(data[117:149], f.MarketBaseVault[:])
	copy(data[165:197], f.MarketQuoteVault[:])
	copy(data[221:253], RandomKey().Bytes())
	copy(data[253:285], f.MarketEventQueue[:])
	copy(data[285:317], f.MarketBids[:])
	copy(data[317:349], f.MarketAsks[:])
	binary.LittleEndian.PutUint64(data[349:], 1_000_000)
	binary.LittleEndian.PutUint64(data[357:], 100)
	copy(data[381:388], "padding")
	return data
}

// PoolAccountData encodes the liquidity state v4 account of the fixture
func (f *InitFixture) PoolAccountData() []byte {
	data := make([]byte, 752)
	binary.LittleEndian.PutUint64(data[0:], 6)
	binary.LittleEndian.PutUint64(data[8:], uint64(f.Nonce))
	binary.LittleEndian.PutUint64(data[32:], uint64(f.decimalsOf(f.BaseMint)))
	binary.LittleEndian.PutUint64(data[40:], uint64(f.decimalsOf(f.QuoteMint)))
	binary.LittleEndian.PutUint64(data[224:], f.OpenTime)
	copy(data[336:368], f.BaseVault[:])
	copy(data[368:400], f.QuoteVault[:])
	copy(data[400:432], f.BaseMint[:])
	copy(data[432:464], f.QuoteMint[:])
	copy(data[464:496], f.LpMint[:])
	copy(data[496:528], f.OpenOrders[:])
	copy(data[528:560], f.MarketID[:])
	copy(data[560:592], MarketProgramID[:])
	copy(data[592:624], f.TargetOrders[:])
	copy(data[624:656], solana.SystemProgramID[:])
	copy(data[656:688], f.UserLp[:])
	copy(data[688:720], f.Wallet[:])
	binary.LittleEndian.PutUint64(data[720:], f.LpAmount)
	return data
}
