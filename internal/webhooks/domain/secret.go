package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/meshpay/meshpay-go/internal/validation"
)

// ValidateSigningSecret checks that a secret satisfies the platform's
// registration policy: at least MinSecretLength characters, all within the
// printable ASCII range.
//
// This policy applies to secret creation only. Verification accepts any
// non-empty secret since the caller already holds it.
func ValidateSigningSecret(secret string) error {
	return validation.Validate(secret,
		validation.Required,
		customValidation.PrintableASCII,
		validation.Length(MinSecretLength, 0),
	)
}
