package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

func TestSigner_SignKnownVector(t *testing.T) {
	signer := NewSigner()

	// Fixed regression anchor from the platform documentation.
	signature, err := signer.Sign(
		[]byte(`{"event": "status_updated"}`),
		"xPpcHHoAOM",
		1257894000,
	)
	require.NoError(t, err)
	assert.Equal(t, "MHs6orLEJg1W1wPqkL_8X24UjUVe-ZiAXtk2ICHotuQ", signature)
}

func TestSigner_SignIsDeterministic(t *testing.T) {
	signer := NewSigner()
	payload := []byte(`{"event": "payment_created", "amount": 1250}`)

	first, err := signer.Sign(payload, "some-signing-secret", 1700000000)
	require.NoError(t, err)

	second, err := signer.Sign(payload, "some-signing-secret", 1700000000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSigner_SignRequiresPayloadAndSecret(t *testing.T) {
	signer := NewSigner()

	_, err := signer.Sign(nil, "secret", 1700000000)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = signer.Sign([]byte("{}"), "", 1700000000)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestSigner_ParseSignatureHeader(t *testing.T) {
	signer := NewSigner()

	tests := []struct {
		name           string
		header         string
		wantTimestamp  int64
		wantSignatures []string
		wantErr        error
	}{
		{
			name:           "single signature",
			header:         "t=1257894000,v=abc123",
			wantTimestamp:  1257894000,
			wantSignatures: []string{"abc123"},
		},
		{
			name:           "multiple signatures preserve order",
			header:         "t=1257894000,v=first,v=second,v=third",
			wantTimestamp:  1257894000,
			wantSignatures: []string{"first", "second", "third"},
		},
		{
			name:           "unknown keys are ignored",
			header:         "t=1257894000,k=rotation-2,v=abc123",
			wantTimestamp:  1257894000,
			wantSignatures: []string{"abc123"},
		},
		{
			name:           "spaces around segments are tolerated",
			header:         "t=1257894000, v=abc123",
			wantTimestamp:  1257894000,
			wantSignatures: []string{"abc123"},
		},
		{
			name:    "missing timestamp",
			header:  "v=abc123",
			wantErr: webhooksDomain.ErrHeaderMissingTimestamp,
		},
		{
			name:    "non-numeric timestamp",
			header:  "t=tomorrow,v=abc123",
			wantErr: webhooksDomain.ErrHeaderMissingTimestamp,
		},
		{
			name:    "duplicate timestamp",
			header:  "t=1257894000,t=1257894001,v=abc123",
			wantErr: webhooksDomain.ErrHeaderMissingTimestamp,
		},
		{
			name:    "no signature values",
			header:  "t=1257894000",
			wantErr: webhooksDomain.ErrHeaderMissingSignatures,
		},
		{
			name:    "empty signature value",
			header:  "t=1257894000,v=",
			wantErr: webhooksDomain.ErrHeaderMissingSignatures,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := signer.ParseSignatureHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTimestamp, parsed.Timestamp)
			assert.Equal(t, tt.wantSignatures, parsed.Signatures)
		})
	}
}

func TestSigner_MalformedHeaderKindsAreDistinguishable(t *testing.T) {
	signer := NewSigner()

	_, tsErr := signer.ParseSignatureHeader("v=abc123")
	_, sigErr := signer.ParseSignatureHeader("t=1257894000")

	// Both are malformed-header failures...
	assert.ErrorIs(t, tsErr, webhooksDomain.ErrMalformedHeader)
	assert.ErrorIs(t, sigErr, webhooksDomain.ErrMalformedHeader)

	// ...but remain distinguishable for diagnostics.
	assert.NotErrorIs(t, tsErr, webhooksDomain.ErrHeaderMissingSignatures)
	assert.NotErrorIs(t, sigErr, webhooksDomain.ErrHeaderMissingTimestamp)
}
