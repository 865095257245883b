// Package platform contains the HTTP transport for the MeshPay REST API:
// the OAuth2 token endpoint client and the authenticated API client.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/meshpay/meshpay-go/internal/auth/domain"
	"github.com/meshpay/meshpay-go/internal/errors"
)

var (
	// ErrExchangeFailed indicates the token endpoint rejected the
	// client-credentials exchange.
	ErrExchangeFailed = errors.New("token exchange failed")

	// ErrRequestFailed indicates an API call returned a non-success status.
	ErrRequestFailed = errors.New("platform request failed")
)

// TokenSource yields a currently valid Authorization header value.
type TokenSource interface {
	BearerToken(ctx context.Context) (string, error)
}

// TokenClient exchanges client credentials for access tokens at the
// platform's token endpoint.
type TokenClient struct {
	httpClient *http.Client
	tokenURL   string
}

// NewTokenClient creates a token endpoint client. The timeout bounds every
// exchange; the credential refresh guard is held for the duration of the call.
func NewTokenClient(tokenURL string, timeout time.Duration) *TokenClient {
	return &TokenClient{
		httpClient: &http.Client{Timeout: timeout},
		tokenURL:   tokenURL,
	}
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Exchange performs the OAuth2 client-credentials grant. The client id and
// secret travel as HTTP Basic credentials, the grant type and scope as a
// form body.
func (c *TokenClient) Exchange(
	ctx context.Context,
	clientID, clientSecret, scope string,
) (*authDomain.TokenGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if scope != "" {
		form.Set("scope", scope)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(url.QueryEscape(clientID), url.QueryEscape(clientSecret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"%w: status %d: %s",
			ErrExchangeFailed, resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %w", ErrExchangeFailed, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: response missing access_token", ErrExchangeFailed)
	}
	if tr.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: response missing expires_in", ErrExchangeFailed)
	}

	return &authDomain.TokenGrant{
		AccessToken: tr.AccessToken,
		ExpiresIn:   time.Duration(tr.ExpiresIn) * time.Second,
	}, nil
}

// APIClient performs authenticated calls against the platform REST API.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// NewAPIClient creates an authenticated API client. The base URL must not
// include a trailing slash.
func NewAPIClient(baseURL string, timeout time.Duration, tokens TokenSource) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
	}
}

// registerSecretRequest is the body for the signing-secret registration call.
type registerSecretRequest struct {
	SigningSecret string `json:"signing_secret"`
}

// RegisterSecret registers a webhook signing secret with the platform. Every
// call carries a fresh Idempotency-Key so the platform can deduplicate
// retried requests.
func (c *APIClient) RegisterSecret(ctx context.Context, secret string) error {
	bearer, err := c.tokens.BearerToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(registerSecretRequest{SigningSecret: secret})
	if err != nil {
		return errors.Wrap(err, "failed to encode secret registration body")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/webhooks/secret",
		bytes.NewReader(payload),
	)
	if err != nil {
		return errors.Wrap(err, "failed to build secret registration request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"%w: status %d: %s",
			ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}
	return nil
}
