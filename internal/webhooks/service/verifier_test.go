package service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

const testSecret = "xPpcHHoAOM"

// newTestVerifier pins the verifier clock so tolerance checks are stable.
func newTestVerifier(t *testing.T, tolerance time.Duration, now time.Time) (*hmacVerifier, Signer) {
	t.Helper()
	signer := NewSigner()
	verifier := NewVerifier(signer, tolerance).(*hmacVerifier)
	verifier.now = func() time.Time { return now }
	return verifier, signer
}

func signedHeader(t *testing.T, signer Signer, payload []byte, secret string, timestamp int64) string {
	t.Helper()
	signature, err := signer.Sign(payload, secret, timestamp)
	require.NoError(t, err)
	return fmt.Sprintf("t=%d,v=%s", timestamp, signature)
}

func TestVerifier_RoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
	payload := []byte(`{"event": "status_updated"}`)

	header := signedHeader(t, signer, payload, testSecret, now.Unix())

	ok, err := verifier.Verify(payload, header, testSecret)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifier_TamperedPayloadFails(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
	payload := []byte(`{"event": "status_updated"}`)

	header := signedHeader(t, signer, payload, testSecret, now.Unix())

	// Flip a single byte of the payload after signing.
	tampered := append([]byte(nil), payload...)
	tampered[12] ^= 0x01

	ok, err := verifier.Verify(tampered, header, testSecret)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifier_WrongSecretIsNotAnError(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
	payload := []byte(`{"event": "status_updated"}`)

	header := signedHeader(t, signer, payload, "a-different-secret", now.Unix())

	ok, err := verifier.Verify(payload, header, testSecret)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifier_ToleranceBoundary(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tolerance := 300 * time.Second
	payload := []byte(`{"event": "status_updated"}`)

	tests := []struct {
		name      string
		timestamp int64
		wantOK    bool
		wantErr   error
	}{
		{name: "exactly at tolerance passes", timestamp: now.Unix() - 300, wantOK: true},
		{name: "one second past tolerance fails", timestamp: now.Unix() - 301, wantErr: webhooksDomain.ErrTimestampOutOfTolerance},
		{name: "future timestamp within tolerance passes", timestamp: now.Unix() + 300, wantOK: true},
		{name: "future timestamp past tolerance fails", timestamp: now.Unix() + 301, wantErr: webhooksDomain.ErrTimestampOutOfTolerance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, signer := newTestVerifier(t, tolerance, now)
			header := signedHeader(t, signer, payload, testSecret, tt.timestamp)

			ok, err := verifier.Verify(payload, header, testSecret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestVerifier_ExtremeTimestampsAreOutOfTolerance(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload := []byte(`{"event": "status_updated"}`)

	// Skews this large overflow int64 nanoseconds if they are ever converted
	// to a Duration, which can wrap the value back inside the window.
	tests := []struct {
		name      string
		timestamp int64
	}{
		{name: "far future wrap-around", timestamp: now.Unix() + 18_446_744_073_709_552},
		{name: "far past wrap-around", timestamp: now.Unix() - 18_446_744_073_709_552},
		{name: "max int64", timestamp: math.MaxInt64},
		{name: "min int64", timestamp: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
			header := signedHeader(t, signer, payload, testSecret, tt.timestamp)

			ok, err := verifier.Verify(payload, header, testSecret)
			assert.ErrorIs(t, err, webhooksDomain.ErrTimestampOutOfTolerance)
			assert.False(t, ok)
		})
	}
}

func TestVerifier_AnyCandidateMatches(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
	payload := []byte(`{"event": "status_updated"}`)

	correct, err := signer.Sign(payload, testSecret, now.Unix())
	require.NoError(t, err)

	header := fmt.Sprintf("t=%d,v=wrong1,v=%s,v=wrong2", now.Unix(), correct)
	ok, err := verifier.Verify(payload, header, testSecret)
	require.NoError(t, err)
	assert.True(t, ok)

	allWrong := fmt.Sprintf("t=%d,v=wrong1,v=wrong2", now.Unix())
	ok, err = verifier.Verify(payload, allWrong, testSecret)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifier_PropagatesParseErrors(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, _ := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)

	ok, err := verifier.Verify([]byte("{}"), "v=abc123", testSecret)
	assert.False(t, ok)
	assert.ErrorIs(t, err, webhooksDomain.ErrHeaderMissingTimestamp)
}

func TestVerifier_ConcurrentUse(t *testing.T) {
	now := time.Unix(1700000000, 0)
	verifier, signer := newTestVerifier(t, webhooksDomain.DefaultTolerance, now)
	payload := []byte(`{"event": "status_updated"}`)
	header := signedHeader(t, signer, payload, testSecret, now.Unix())

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			ok, err := verifier.Verify(payload, header, testSecret)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}
