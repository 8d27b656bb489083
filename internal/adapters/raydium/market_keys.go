package raydium

import (
	"context"
	"errors"
	"fmt"

	"github.com/supesu/raydium-sniper/pkg/domain"
)

// ErrMarketMismatch is returned when the fetched market account describes another market
var ErrMarketMismatch = errors.New("market account does not match pool")

// MarketKeysProvider derives the order book accounts of a pool from its market account
type MarketKeysProvider struct {
	accounts domain.AccountFetcher
}

// NewMarketKeysProvider creates a provider reading market accounts through accounts
func NewMarketKeysProvider(accounts domain.AccountFetcher) *MarketKeysProvider {
	return &MarketKeysProvider{accounts: accounts}
}

// DeriveMarketKeys fetches and decodes the market of pool. Results are not cached.
func (p *MarketKeysProvider) DeriveMarketKeys(ctx context.Context, pool *domain.PoolMetadata) (*domain.MarketKeys, error) {
	if pool == nil {
		return nil, domain.ErrIncompletePool
	}

	data, err := p.accounts.FetchAccountData(ctx, pool.MarketID)
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", pool.MarketID, err)
	}

	market, err := DecodeMarketState(data)
	if err != nil {
		return nil, fmt.Errorf("market %s: %w", pool.MarketID, err)
	}

	if !market.OwnAddress.IsZero() && !market.OwnAddress.Equals(pool.MarketID) {
		return nil, fmt.Errorf("%w: market %s reports address %s", ErrMarketMismatch, pool.MarketID, market.OwnAddress)
	}

	authority, err := MarketAuthority(pool.MarketProgramID, pool.MarketID, market.VaultSignerNonce)
	if err != nil {
		return nil, err
	}

	keys := &domain.MarketKeys{
		PoolMetadata:     *pool,
		MarketAuthority:  authority,
		MarketBaseVault:  market.BaseVault,
		MarketQuoteVault: market.QuoteVault,
		MarketBids:       market.Bids,
		MarketAsks:       market.Asks,
		MarketEventQueue: market.EventQueue,
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return keys, nil
}
