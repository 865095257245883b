// Package usecase implements the bearer credential lifecycle.
package usecase

import (
	"context"
	"fmt"
	"time"

	authDomain "github.com/meshpay/meshpay-go/internal/auth/domain"
	authService "github.com/meshpay/meshpay-go/internal/auth/service"
)

// credentialUseCase implements CredentialUseCase on top of a single
// CredentialCache slot and a TokenExchanger collaborator.
type credentialUseCase struct {
	cache        *authService.CredentialCache
	exchanger    TokenExchanger
	clientID     string
	clientSecret string
	scope        string
	now          func() time.Time
}

// NewCredentialUseCase creates a lifecycle manager that owns the given cache
// slot. Multiple independently configured managers may coexist; there is no
// ambient shared state.
func NewCredentialUseCase(
	cache *authService.CredentialCache,
	exchanger TokenExchanger,
	clientID string,
	clientSecret string,
	scope string,
) CredentialUseCase {
	return &credentialUseCase{
		cache:        cache,
		exchanger:    exchanger,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		now:          time.Now,
	}
}

// BearerToken returns a valid bearer header value, refreshing at most once
// per expiry window regardless of caller concurrency.
//
// The hot path is a lock-free read of the cache slot. The refresh path
// acquires the slot's guard and re-checks freshness before exchanging,
// because another caller may have completed a refresh while this one waited.
func (u *credentialUseCase) BearerToken(ctx context.Context) (string, error) {
	if cred, ok := u.cache.Read(); ok && u.cache.Fresh(cred, u.now()) {
		return cred.Bearer(), nil
	}

	u.cache.LockRefresh()
	defer u.cache.UnlockRefresh()

	if cred, ok := u.cache.Read(); ok && u.cache.Fresh(cred, u.now()) {
		return cred.Bearer(), nil
	}

	grant, err := u.exchanger.Exchange(ctx, u.clientID, u.clientSecret, u.scope)
	if err != nil {
		return "", fmt.Errorf("%w: %w", authDomain.ErrCredentialUnavailable, err)
	}

	issuedAt := u.now()
	cred, err := authDomain.NewCredential(grant.AccessToken, issuedAt, issuedAt.Add(grant.ExpiresIn))
	if err != nil {
		// Malformed exchange response: cache nothing.
		return "", fmt.Errorf("%w: %w", authDomain.ErrCredentialUnavailable, err)
	}

	u.cache.Store(cred)

	return cred.Bearer(), nil
}
