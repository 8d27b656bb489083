package domain

import (
	"github.com/gagliardetto/solana-go"
)

// EligibilityCriterion selects which new pools are bought.
// The zero value accepts any pool quoted in wrapped SOL.
type EligibilityCriterion struct {
	TargetMint solana.PublicKey
}

// NewEligibilityCriterion creates a criterion for target, which may be the zero key
func NewEligibilityCriterion(target solana.PublicKey) EligibilityCriterion {
	return EligibilityCriterion{TargetMint: target}
}

// HasTarget reports whether a specific token was configured
func (c EligibilityCriterion) HasTarget() bool {
	return !c.TargetMint.IsZero()
}

// Decision is the outcome of applying the criterion to a pool
type Decision struct {
	Accept bool
	Reason string
}

// Rejection reasons
const (
	ReasonAccepted        = "pool matches criterion"
	ReasonQuoteNotNative  = "invalid quote mint"
	ReasonBaseNotTarget   = "not the desired pool"
	ReasonMissingMetadata = "no pool metadata"
)

// Decide applies the criterion to pool. It performs no I/O.
func (c EligibilityCriterion) Decide(pool *PoolMetadata) Decision {
	if pool == nil {
		return Decision{Reason: ReasonMissingMetadata}
	}

	if !c.HasTarget() {
		if !pool.QuoteMint.Equals(WrappedSOLMint) {
			return Decision{Reason: ReasonQuoteNotNative}
		}
		return Decision{Accept: true, Reason: ReasonAccepted}
	}

	if !pool.BaseMint.Equals(c.TargetMint) {
		return Decision{Reason: ReasonBaseNotTarget}
	}
	return Decision{Accept: true, Reason: ReasonAccepted}
}
