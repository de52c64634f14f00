package password_test

import (
	"testing"

	"github.com/magabrotheeeer/parking-permits/internal/lib/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("Secret#123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret#123", hash)

	assert.NoError(t, password.CompareHash(hash, "Secret#123"))
	assert.Error(t, password.CompareHash(hash, "wrong-password"))
}

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Secret#123", ""},
		{"too short", "S#1a", "at least 8 characters"},
		{"no uppercase", "secret#123", "uppercase"},
		{"no lowercase", "SECRET#123", "lowercase"},
		{"no digit", "Secret#abc", "number"},
		{"no special", "Secret1234", "special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.ValidatePolicy(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.ErrorIs(t, err, password.ErrPolicyViolation)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
