package repository

import (
	"sync"
)

// ClaimRepository is a domain.SeenRepository that never forgets a key.
// It holds the pools handed to the sniper, which are few and must stay
// claimed for the life of the process.
type ClaimRepository struct {
	claims map[string]struct{}
	mu     sync.RWMutex
}

// NewClaimRepository creates an empty claim set
func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{
		claims: make(map[string]struct{}),
	}
}

// MarkSeen claims key and reports whether it was unclaimed
func (r *ClaimRepository) MarkSeen(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.claims[key]; exists {
		return false
	}
	r.claims[key] = struct{}{}
	return true
}

// Seen reports whether key was claimed
func (r *ClaimRepository) Seen(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.claims[key]
	return exists
}

// Len returns the number of claimed keys
func (r *ClaimRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.claims)
}
