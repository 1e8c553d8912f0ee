package security_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenlease-backend/internal/security"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := security.NewTokenManager("test-secret", 60)

	tokenString, err := manager.GenerateAccountToken("GACCOUNT123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := manager.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "GACCOUNT123", claims.Account)
	assert.Equal(t, "GACCOUNT123", claims.Subject)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	manager := security.NewTokenManager("test-secret", 60)
	other := security.NewTokenManager("other-secret", 60)

	tokenString, err := manager.GenerateAccountToken("GACCOUNT123")
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := security.NewTokenManager("test-secret", 60)
	_, err := manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestAccountContext(t *testing.T) {
	ctx := context.Background()

	_, ok := security.AccountFromContext(ctx)
	assert.False(t, ok)

	ctx = security.WithAccount(ctx, "GACCOUNT123")
	account, ok := security.AccountFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "GACCOUNT123", account)
}
