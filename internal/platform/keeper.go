package platform

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all secret keeper drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// DecryptClientSecret decrypts a base64-encoded client secret ciphertext
// using the keeper identified by keeperURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func DecryptClientSecret(ctx context.Context, keeperURI, ciphertext string) (string, error) {
	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return "", fmt.Errorf("failed to open secret keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode client secret ciphertext: %w", err)
	}

	plaintext, err := keeper.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt client secret: %w", err)
	}
	return string(plaintext), nil
}
