package commands

import (
	"fmt"
	"io"
	"time"

	webhooksService "github.com/meshpay/meshpay-go/internal/webhooks/service"
)

// RunVerify checks a signature header against a payload and secret.
// When payload is empty the payload is read from the IOTuple reader. Returns
// an error for an invalid signature so the process exits non-zero, which
// makes the command usable in scripts.
func RunVerify(payload, header, secret string, tolerance time.Duration, ioTuple IOTuple) error {
	if secret == "" {
		return fmt.Errorf("--secret is required (or set WEBHOOK_SECRET)")
	}
	if header == "" {
		return fmt.Errorf("--header is required")
	}

	body := []byte(payload)
	if payload == "" {
		data, err := io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		body = data
	}

	verifier := webhooksService.NewVerifier(webhooksService.NewSigner(), tolerance)
	valid, err := verifier.Verify(body, header, secret)
	if err != nil {
		return fmt.Errorf("failed to verify signature: %w", err)
	}
	if !valid {
		return fmt.Errorf("signature is invalid")
	}

	fmt.Fprintln(ioTuple.Writer, "signature is valid")
	return nil
}
