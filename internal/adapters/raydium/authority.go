package raydium

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AmmAuthority derives the authority that owns the vaults of every pool of programID
func AmmAuthority(programID solana.PublicKey) (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress([][]byte{[]byte(ammAuthoritySeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive amm authority: %w", err)
	}
	return authority, nil
}

// MarketAuthority derives the vault signer of an order book market.
// The stored nonce is tried first, then nonces are searched the way market
// clients do when the stored one is unusable.
func MarketAuthority(marketProgramID, marketID solana.PublicKey, nonce uint64) (solana.PublicKey, error) {
	if authority, err := marketAuthorityWithNonce(marketProgramID, marketID, nonce); err == nil {
		return authority, nil
	}

	for candidate := uint64(0); candidate < maxMarketAuthorityNonce; candidate++ {
		if authority, err := marketAuthorityWithNonce(marketProgramID, marketID, candidate); err == nil {
			return authority, nil
		}
	}
	return solana.PublicKey{}, fmt.Errorf("derive market authority for %s: no valid nonce", marketID)
}

func marketAuthorityWithNonce(marketProgramID, marketID solana.PublicKey, nonce uint64) (solana.PublicKey, error) {
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, nonce)
	return solana.CreateProgramAddress([][]byte{marketID[:], seed}, marketProgramID)
}
