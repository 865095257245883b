package commands

import (
	"crypto/rand"
	"fmt"

	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

// secretAlphabet is the character set for generated signing secrets. All
// characters are printable ASCII, which the registration policy requires.
const secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RunGenerateSecret generates a cryptographically secure signing secret and
// prints it. The length must be at least the registration policy minimum.
func RunGenerateSecret(length int, io IOTuple) error {
	if length < webhooksDomain.MinSecretLength {
		return fmt.Errorf(
			"secret length must be at least %d characters, got %d",
			webhooksDomain.MinSecretLength, length,
		)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	for i, b := range buf {
		buf[i] = secretAlphabet[int(b)%len(secretAlphabet)]
	}

	fmt.Fprintln(io.Writer, "# Generated signing secret")
	fmt.Fprintln(io.Writer, "# Register it with: app register-secret --secret <value>")
	fmt.Fprintln(io.Writer)
	fmt.Fprintf(io.Writer, "WEBHOOK_SECRET=\"%s\"\n", string(buf))
	return nil
}
