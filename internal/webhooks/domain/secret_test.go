package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSigningSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{
			name:   "32 ascii characters is valid",
			secret: strings.Repeat("a", 32),
		},
		{
			name:   "longer secrets are valid",
			secret: strings.Repeat("Zx9!", 12),
		},
		{
			name:    "31 ascii characters is too short",
			secret:  strings.Repeat("a", 31),
			wantErr: true,
		},
		{
			name:    "32 characters with one non-ascii code point is rejected",
			secret:  strings.Repeat("a", 31) + "é",
			wantErr: true,
		},
		{
			name:    "control characters are rejected",
			secret:  strings.Repeat("a", 31) + "\n",
			wantErr: true,
		},
		{
			name:    "empty secret is rejected",
			secret:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSigningSecret(tt.secret)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
