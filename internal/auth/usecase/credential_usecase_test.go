package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authDomain "github.com/meshpay/meshpay-go/internal/auth/domain"
	authService "github.com/meshpay/meshpay-go/internal/auth/service"
	apperrors "github.com/meshpay/meshpay-go/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeExchanger is a counting TokenExchanger test double.
type fakeExchanger struct {
	calls  atomic.Int64
	grant  *authDomain.TokenGrant
	err    error
	tokens []string // optional: successive tokens per call
}

func (f *fakeExchanger) Exchange(ctx context.Context, clientID, clientSecret, scope string) (*authDomain.TokenGrant, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.tokens) > 0 {
		idx := int(n-1) % len(f.tokens)
		return &authDomain.TokenGrant{AccessToken: f.tokens[idx], ExpiresIn: f.grant.ExpiresIn}, nil
	}
	return f.grant, nil
}

func newUseCase(exchanger TokenExchanger, margin time.Duration) *credentialUseCase {
	cache := authService.NewCredentialCache(margin)
	uc := NewCredentialUseCase(cache, exchanger, "client-id", "client-secret", "payments")
	return uc.(*credentialUseCase)
}

func TestBearerToken_ExchangesOnEmptyCache(t *testing.T) {
	exchanger := &fakeExchanger{
		grant: &authDomain.TokenGrant{AccessToken: "first-token", ExpiresIn: time.Hour},
	}
	uc := newUseCase(exchanger, time.Minute)

	bearer, err := uc.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first-token", bearer)
	assert.EqualValues(t, 1, exchanger.calls.Load())
}

func TestBearerToken_HotPathSkipsExchange(t *testing.T) {
	exchanger := &fakeExchanger{
		grant: &authDomain.TokenGrant{AccessToken: "cached-token", ExpiresIn: time.Hour},
	}
	uc := newUseCase(exchanger, time.Minute)

	for i := 0; i < 10; i++ {
		bearer, err := uc.BearerToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer cached-token", bearer)
	}

	// Only the first call hits the token endpoint.
	assert.EqualValues(t, 1, exchanger.calls.Load())
}

func TestBearerToken_RefreshesWhenInsideMargin(t *testing.T) {
	exchanger := &fakeExchanger{
		grant:  &authDomain.TokenGrant{ExpiresIn: 30 * time.Second},
		tokens: []string{"first-token", "second-token"},
	}
	uc := newUseCase(exchanger, time.Minute)

	// Lifetime 30s with a 60s margin: every call finds the slot stale.
	bearer, err := uc.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first-token", bearer)

	bearer, err = uc.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer second-token", bearer)
	assert.EqualValues(t, 2, exchanger.calls.Load())
}

func TestBearerToken_ExchangeFailureCachesNothing(t *testing.T) {
	exchanger := &fakeExchanger{err: apperrors.New("connection refused")}
	uc := newUseCase(exchanger, time.Minute)

	_, err := uc.BearerToken(context.Background())
	assert.ErrorIs(t, err, authDomain.ErrCredentialUnavailable)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)

	cred, ok := uc.cache.Read()
	assert.Nil(t, cred)
	assert.False(t, ok)

	// Recovery: a later successful exchange populates the slot.
	exchanger.err = nil
	exchanger.grant = &authDomain.TokenGrant{AccessToken: "recovered", ExpiresIn: time.Hour}

	bearer, err := uc.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer recovered", bearer)
}

func TestBearerToken_MalformedGrantCachesNothing(t *testing.T) {
	// Zero lifetime violates the credential invariant.
	exchanger := &fakeExchanger{
		grant: &authDomain.TokenGrant{AccessToken: "bad-grant", ExpiresIn: 0},
	}
	uc := newUseCase(exchanger, time.Minute)

	_, err := uc.BearerToken(context.Background())
	assert.ErrorIs(t, err, authDomain.ErrCredentialUnavailable)

	_, ok := uc.cache.Read()
	assert.False(t, ok)
}

func TestBearerToken_ConcurrentCallersSingleRefresh(t *testing.T) {
	exchanger := &fakeExchanger{
		grant: &authDomain.TokenGrant{AccessToken: "shared-token", ExpiresIn: time.Hour},
	}
	uc := newUseCase(exchanger, time.Minute)

	const callers = 50
	results := make([]string, callers)
	errs := make([]error, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = uc.BearerToken(context.Background())
		}(i)
	}
	start.Done()
	done.Wait()

	// Exactly one exchange regardless of caller concurrency, and every
	// caller observes the same token.
	assert.EqualValues(t, 1, exchanger.calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "Bearer shared-token", results[i])
	}
}

func TestBearerToken_DoubleCheckAfterGuard(t *testing.T) {
	exchanger := &fakeExchanger{
		grant: &authDomain.TokenGrant{AccessToken: "warm-token", ExpiresIn: time.Hour},
	}
	uc := newUseCase(exchanger, time.Minute)

	// Simulate another caller completing a refresh while this caller is
	// about to enter the refresh path.
	now := time.Now()
	cred, err := authDomain.NewCredential("warm-token", now, now.Add(time.Hour))
	require.NoError(t, err)
	uc.cache.Store(cred)

	bearer, err := uc.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer warm-token", bearer)
	assert.EqualValues(t, 0, exchanger.calls.Load())
}
