package commands

import (
	"fmt"
	"io"
	"time"

	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
	webhooksService "github.com/meshpay/meshpay-go/internal/webhooks/service"
)

// RunSign computes a signature header for a payload and prints it.
// When payload is empty the payload is read from the IOTuple reader, so a
// body can be piped in. When timestamp is zero the current time is used.
//
// The output is the full header value ("t=<ts>,v=<sig>") ready to be sent as
// the Webhooks-Signature header.
func RunSign(payload, secret string, timestamp int64, ioTuple IOTuple) error {
	if secret == "" {
		return fmt.Errorf("--secret is required (or set WEBHOOK_SECRET)")
	}

	body := []byte(payload)
	if payload == "" {
		data, err := io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		body = data
	}

	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	signer := webhooksService.NewSigner()
	signature, err := signer.Sign(body, secret, timestamp)
	if err != nil {
		return fmt.Errorf("failed to sign payload: %w", err)
	}

	fmt.Fprintf(ioTuple.Writer, "%s: t=%d,v=%s\n", webhooksDomain.SignatureHeaderName, timestamp, signature)
	return nil
}
