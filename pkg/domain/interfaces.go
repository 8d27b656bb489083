package domain

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

//go:generate mockgen -destination=../../internal/mocks/mock_domain.go -package=mocks github.com/supesu/raydium-sniper/pkg/domain TransactionFetcher,AccountFetcher,BlockhashFetcher,PoolSniper,MarketKeysProvider,BundleBuilder,BundleRelay,EventPublisher,NotificationRepository

// ConfirmedTransaction is a decoded transaction together with its execution metadata
type ConfirmedTransaction struct {
	Slot        uint64
	Transaction *solana.Transaction
	Meta        *rpc.TransactionMeta
}

// TransactionFetcher loads a transaction by signature
type TransactionFetcher interface {
	FetchTransaction(ctx context.Context, signature solana.Signature) (*ConfirmedTransaction, error)
}

// AccountFetcher loads the raw data of an account
type AccountFetcher interface {
	FetchAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
}

// BlockhashFetcher returns a recent blockhash for signing
type BlockhashFetcher interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// PoolSniper takes an accepted pool and attempts to buy into it
type PoolSniper interface {
	Snipe(ctx context.Context, pool *PoolMetadata) (*SnipeResult, error)
}

// MarketKeysProvider derives the order book accounts of a pool
type MarketKeysProvider interface {
	DeriveMarketKeys(ctx context.Context, pool *PoolMetadata) (*MarketKeys, error)
}

// Bundle is an ordered list of signed transactions relayed atomically
type Bundle struct {
	Transactions []*solana.Transaction
	TipAccount   solana.PublicKey
	TipLamports  uint64
	AmountIn     uint64
}

// Signatures returns the first signature of every transaction in the bundle
func (b *Bundle) Signatures() []solana.Signature {
	signatures := make([]solana.Signature, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		if len(tx.Signatures) > 0 {
			signatures = append(signatures, tx.Signatures[0])
		}
	}
	return signatures
}

// BundleBuilder builds and signs the purchase bundle for a pool
type BundleBuilder interface {
	BuildBundle(ctx context.Context, keys *MarketKeys) (*Bundle, error)
}

// BundleStatus is the state a block engine reports for a submitted bundle
type BundleStatus string

const (
	BundleStatusLanded  BundleStatus = "landed"
	BundleStatusFailed  BundleStatus = "failed"
	BundleStatusPending BundleStatus = "pending"
)

// BundleOutcome is the last known state of a submitted bundle
type BundleOutcome struct {
	Status BundleStatus
	Slot   uint64
	Error  string
}

// BundleRelay submits a bundle to a block engine and returns its id
type BundleRelay interface {
	SendBundle(ctx context.Context, transactions []*solana.Transaction) (string, error)

	// AwaitBundleStatus polls the bundle until it lands, fails or ctx is done.
	// A bundle still unresolved when ctx ends is reported as pending.
	AwaitBundleStatus(ctx context.Context, bundleID string) (*BundleOutcome, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	PublishPoolDetected(ctx context.Context, pool *PoolMetadata) error
	PublishSnipeSubmitted(ctx context.Context, keys *MarketKeys, result *SnipeResult) error
	PublishSnipeFailed(ctx context.Context, pool *PoolMetadata, stage string, reason string) error

	// Subscribe registers handler for eventType
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// NotificationRepository delivers human facing notifications
type NotificationRepository interface {
	SendPoolNotification(ctx context.Context, pool *PoolMetadata) error
	SendSnipeNotification(ctx context.Context, keys *MarketKeys, result *SnipeResult) error
	SendFailureNotification(ctx context.Context, pool *PoolMetadata, stage string, reason string) error
}

// ErrNoConnectedLeader is returned by a BundleRelay when no leader can receive the bundle soon
var ErrNoConnectedLeader = errors.New("bundle dropped: no connected leader up soon")
