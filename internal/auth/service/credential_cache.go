// Package service implements the in-memory credential cache slot.
package service

import (
	"sync"
	"sync/atomic"
	"time"

	authDomain "github.com/meshpay/meshpay-go/internal/auth/domain"
)

// DefaultRefreshMargin is subtracted from a credential's expiry when judging
// freshness, forcing a refresh before the token can expire mid-request.
const DefaultRefreshMargin = 60 * time.Second

// CredentialCache holds at most one credential plus the mutual-exclusion
// guard for the refresh path. Reads are lock-free and stores are immediately
// visible to all subsequent readers; the guard serializes refreshes so at
// most one token exchange is in flight for this slot.
//
// The cache is owned exclusively by the credential lifecycle use case; no
// other component may mutate it. It is process-lifetime only and must not be
// assumed durable.
type CredentialCache struct {
	slot      atomic.Pointer[authDomain.Credential]
	refreshMu sync.Mutex
	margin    time.Duration
}

// NewCredentialCache creates an empty cache slot with the given refresh
// margin. A non-positive margin falls back to DefaultRefreshMargin.
func NewCredentialCache(margin time.Duration) *CredentialCache {
	if margin <= 0 {
		margin = DefaultRefreshMargin
	}
	return &CredentialCache{margin: margin}
}

// Read returns the cached credential if present, regardless of freshness.
// Freshness is the caller's responsibility.
func (c *CredentialCache) Read() (*authDomain.Credential, bool) {
	cred := c.slot.Load()
	return cred, cred != nil
}

// Store atomically replaces the cached credential. Readers never observe a
// partially written value.
func (c *CredentialCache) Store(cred *authDomain.Credential) {
	c.slot.Store(cred)
}

// Fresh reports whether cred is still usable at now given the cache's margin.
func (c *CredentialCache) Fresh(cred *authDomain.Credential, now time.Time) bool {
	return cred.Fresh(now, c.margin)
}

// LockRefresh acquires the refresh guard. The guard covers only the
// compare-and-refresh critical section; readers of a fresh credential never
// block on it.
func (c *CredentialCache) LockRefresh() {
	c.refreshMu.Lock()
}

// UnlockRefresh releases the refresh guard.
func (c *CredentialCache) UnlockRefresh() {
	c.refreshMu.Unlock()
}
