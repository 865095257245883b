package usecase

import (
	"context"

	authDomain "github.com/meshpay/meshpay-go/internal/auth/domain"
)

// TokenExchanger performs the OAuth2 client-credentials exchange against the
// platform's token endpoint. Implementations must impose a bounded timeout;
// the lifecycle manager holds its refresh guard for the duration of the call.
type TokenExchanger interface {
	Exchange(ctx context.Context, clientID, clientSecret, scope string) (*authDomain.TokenGrant, error)
}

// CredentialUseCase manages the cached bearer credential for outbound calls.
type CredentialUseCase interface {
	// BearerToken returns a currently valid "Bearer <token>" header value,
	// transparently refreshing the cached credential when it is missing or
	// inside the refresh margin. Returns ErrCredentialUnavailable if the
	// exchange fails; it never serves a stale credential as a fallback.
	BearerToken(ctx context.Context) (string, error)
}
