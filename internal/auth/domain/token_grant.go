package domain

import "time"

// TokenGrant is the structured result of an OAuth2 client-credentials
// exchange: the raw token and its lifetime. The wire format of the exchange
// belongs to the transport layer; the core only consumes this result.
type TokenGrant struct {
	AccessToken string
	ExpiresIn   time.Duration
}
